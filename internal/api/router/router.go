package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pepeccz/atrevete-bot-sub002/config"
	"github.com/pepeccz/atrevete-bot-sub002/internal/api/handler"
	"github.com/pepeccz/atrevete-bot-sub002/internal/api/middleware"
	"github.com/pepeccz/atrevete-bot-sub002/internal/model"
	"github.com/pepeccz/atrevete-bot-sub002/pkg/jwt"
	"github.com/pepeccz/atrevete-bot-sub002/pkg/redis"
)

// maxBodyBytes request body cap for the JSON API.
const maxBodyBytes = 1 << 20

// Per-minute rate limits for the unauthenticated surfaces.
const (
	loginRateLimit   = 10
	webhookRateLimit = 120
)

// Setup builds the Gin engine with all routes.
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── Global middleware ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(maxBodyBytes))

	// ── Health check ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── Messaging webhooks (platform-authenticated, no JWT) ──
	r.GET("/webhook/:provider", h.Webhook.Verify)
	r.POST("/webhook/:provider", middleware.RateLimit(rdb, webhookRateLimit, time.Minute), h.Webhook.Receive)

	// ── Calendar subscriptions (calendar apps cannot send JWT headers) ──
	r.GET("/feeds/stylists/:id/calendar.ics", h.CalendarFeed.StylistFeed)

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// Auth (public)
		auth := v1.Group("/auth")
		{
			auth.POST("/login", middleware.RateLimit(rdb, loginRateLimit, time.Minute), h.Auth.Login)
			auth.POST("/refresh", h.Auth.Refresh)
		}

		// Authenticated routes
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, rdb))
		{
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.GET("/auth/me", h.Auth.Me)

			// Stylists
			stylists := authorized.Group("/stylists")
			{
				stylists.GET("", h.Stylist.List)
				stylists.GET("/:id", h.Stylist.Get)
				stylists.GET("/:id/context", h.Stylist.Context)
				stylists.GET("/:id/series", h.Series.ListByStylist)
				stylists.POST("", middleware.RoleAuth(model.RoleAdmin), h.Stylist.Create)
				stylists.PUT("/:id", middleware.RoleAuth(model.RoleAdmin), h.Stylist.Update)
				stylists.DELETE("/:id", middleware.RoleAuth(model.RoleAdmin), h.Stylist.Delete)
			}

			// Business hours
			hours := authorized.Group("/business-hours")
			{
				hours.GET("", h.BusinessHours.Summary)
				hours.GET("/remaining-days", h.BusinessHours.RemainingOpenDays)
				hours.PUT("", middleware.RoleAuth(model.RoleAdmin), h.BusinessHours.Upsert)
			}

			// Appointments
			appointments := authorized.Group("/appointments")
			{
				appointments.GET("", h.Appointment.List)
				appointments.GET("/:id", h.Appointment.Get)
				appointments.POST("", h.Appointment.Create)
				appointments.PUT("/:id/status", h.Appointment.UpdateStatus)
			}

			// Recurring blocked-time series
			series := authorized.Group("/series")
			{
				series.POST("/preview", h.Series.Preview)
				series.POST("", middleware.RoleAuth(model.RoleAdmin), h.Series.Create)
				series.GET("/:id", h.Series.Get)
				series.GET("/:id/occurrences", h.Series.ListOccurrences)
				series.PUT("/:id", middleware.RoleAuth(model.RoleAdmin), h.Series.Update)
				series.POST("/:id/append", middleware.RoleAuth(model.RoleAdmin), h.Series.Append)
				series.POST("/:id/trim", middleware.RoleAuth(model.RoleAdmin), h.Series.Trim)
				series.DELETE("/:id", middleware.RoleAuth(model.RoleAdmin), h.Series.Delete)
			}

			// Individual occurrences
			occurrences := authorized.Group("/occurrences")
			{
				occurrences.PUT("/:id", middleware.RoleAuth(model.RoleAdmin), h.Series.UpdateOccurrence)
				occurrences.DELETE("/:id", middleware.RoleAuth(model.RoleAdmin), h.Series.CancelOccurrence)
			}

			// Exports
			exports := authorized.Group("/exports")
			{
				exports.GET("/appointments", middleware.RoleAuth(model.RoleAdmin), h.Export.AppointmentBook)
			}
		}
	}

	return r
}
