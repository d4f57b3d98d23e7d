package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/pepeccz/atrevete-bot-sub002/config"
	"github.com/pepeccz/atrevete-bot-sub002/internal/api/handler"
	"github.com/pepeccz/atrevete-bot-sub002/internal/api/router"
	"github.com/pepeccz/atrevete-bot-sub002/internal/repository"
	"github.com/pepeccz/atrevete-bot-sub002/internal/service"
	"github.com/pepeccz/atrevete-bot-sub002/internal/webhook"
	"github.com/pepeccz/atrevete-bot-sub002/pkg/database"
	"github.com/pepeccz/atrevete-bot-sub002/pkg/jwt"
	applogger "github.com/pepeccz/atrevete-bot-sub002/pkg/logger"
	"github.com/pepeccz/atrevete-bot-sub002/pkg/redis"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	// 2. Logger
	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("starting",
		zap.Int("port", cfg.Server.Port),
		zap.String("salon", cfg.Salon.Name),
		zap.String("timezone", cfg.Salon.Timezone),
	)

	// 3. Database and migrations
	db, err := database.NewDB(&cfg.Database, logger)
	if err != nil {
		logger.Fatal("database connection failed", zap.Error(err))
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("unwrap sql.DB failed", zap.Error(err))
	}
	if err := database.RunMigrations(sqlDB, logger); err != nil {
		logger.Fatal("migrations failed", zap.Error(err))
	}

	// 4. Redis, optional: without it the token blacklist and the stylist
	// context cache are disabled but the service keeps running.
	rdb, err := redis.NewClient(&cfg.Redis, logger)
	if err != nil {
		logger.Warn("redis unavailable, running degraded", zap.Error(err))
		rdb = nil
	}

	// 5. JWT manager
	jwtMgr := jwt.NewManager(&cfg.Auth)

	// 6. Dependency wiring: repository → service → handler
	repo := repository.NewRepository(db)
	svc, err := service.NewService(cfg, repo, jwtMgr, rdb, logger)
	if err != nil {
		logger.Fatal("service wiring failed", zap.Error(err))
	}

	// The configured provider handles real traffic; noop stays registered
	// for local smoke tests against /webhook/noop.
	providers := []webhook.Provider{webhook.NewNoop(logger)}
	if cfg.WhatsApp.Provider == "whatsapp" {
		providers = append(providers, webhook.NewWhatsApp(cfg.WhatsApp.VerifyToken, logger))
	}
	registry := webhook.NewRegistry(providers...)
	h := handler.NewHandler(svc, registry)

	// 7. Router
	engine := router.Setup(cfg, h, jwtMgr, rdb, logger)

	// 8. Background sweep of never-confirmed bookings
	sweepCtx, stopSweep := context.WithCancel(context.Background())
	go expirePendingLoop(sweepCtx, svc, logger)

	// 9. HTTP server with graceful shutdown
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("http server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("http server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	logger.Info("shutdown signal received", zap.String("signal", sig.String()))
	stopSweep()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown failed", zap.Error(err))
	}

	if closeDB, _ := db.DB(); closeDB != nil {
		closeDB.Close()
	}
	if rdb != nil {
		rdb.Close()
	}

	logger.Info("server stopped")
}

// expirePendingLoop periodically expires pending appointments whose slot
// has passed without confirmation.
func expirePendingLoop(ctx context.Context, svc *service.Service, logger *zap.Logger) {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := svc.Appointment.ExpireStalePending(ctx); err != nil {
				logger.Warn("pending sweep failed", zap.Error(err))
			}
		}
	}
}
