// Package service implements the business rules of the salon agenda:
// booking, business hours, recurring blocked time and its conflict
// detection, plus dashboard auth and exports.
package service

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/pepeccz/atrevete-bot-sub002/config"
	"github.com/pepeccz/atrevete-bot-sub002/internal/repository"
	"github.com/pepeccz/atrevete-bot-sub002/pkg/jwt"
	"github.com/pepeccz/atrevete-bot-sub002/pkg/redis"
)

// Service aggregates every business service.
type Service struct {
	Auth          AuthService
	Stylist       StylistService
	BusinessHours BusinessHoursService
	Conflict      ConflictService
	Series        SeriesService
	Appointment   AppointmentService
	CalendarFeed  CalendarFeedService
	Export        ExportService

	// Location is the salon timezone every wall-clock value is resolved in.
	Location *time.Location
}

// NewService wires the service layer. rdb may be nil; the caches and token
// revocation then degrade gracefully.
func NewService(cfg *config.Config, repo *repository.Repository, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) (*Service, error) {
	loc, err := time.LoadLocation(cfg.Salon.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load salon timezone %q: %w", cfg.Salon.Timezone, err)
	}

	stylistCache := redis.NewContextCache(rdb, "stylist:context:", cfg.Redis.ContextCacheTTL)

	hours := NewBusinessHoursService(repo, loc, logger)
	conflict := NewConflictService(repo, loc, logger)

	return &Service{
		Auth:          NewAuthService(repo, jwtMgr, rdb, cfg.Auth.AccessTokenTTL, logger),
		Stylist:       NewStylistService(repo, stylistCache, logger),
		BusinessHours: hours,
		Conflict:      conflict,
		Series:        NewSeriesService(repo, hours, conflict, loc, logger),
		Appointment:   NewAppointmentService(repo, hours, loc, logger),
		CalendarFeed:  NewCalendarFeedService(repo, loc, cfg.Salon.Name, logger),
		Export:        NewExportService(repo, loc, logger),
		Location:      loc,
	}, nil
}
