package handler

import (
	"github.com/pepeccz/atrevete-bot-sub002/internal/service"
	"github.com/pepeccz/atrevete-bot-sub002/internal/webhook"
)

// Handler aggregate entry point for all HTTP handlers.
type Handler struct {
	Auth          *AuthHandler
	Stylist       *StylistHandler
	BusinessHours *BusinessHoursHandler
	Appointment   *AppointmentHandler
	Series        *SeriesHandler
	CalendarFeed  *CalendarFeedHandler
	Export        *ExportHandler
	Webhook       *WebhookHandler
}

// NewHandler creates the handler aggregate.
func NewHandler(svc *service.Service, registry *webhook.Registry) *Handler {
	return &Handler{
		Auth:          NewAuthHandler(svc.Auth),
		Stylist:       NewStylistHandler(svc.Stylist),
		BusinessHours: NewBusinessHoursHandler(svc.BusinessHours),
		Appointment:   NewAppointmentHandler(svc.Appointment),
		Series:        NewSeriesHandler(svc.Series),
		CalendarFeed:  NewCalendarFeedHandler(svc.CalendarFeed),
		Export:        NewExportHandler(svc.Export),
		Webhook:       NewWebhookHandler(registry),
	}
}
