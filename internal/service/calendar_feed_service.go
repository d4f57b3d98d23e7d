package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/pepeccz/atrevete-bot-sub002/internal/model"
	"github.com/pepeccz/atrevete-bot-sub002/internal/repository"
)

// Feeds cover this many days ahead of now.
const feedHorizonDays = 90

// CalendarFeedService renders a stylist's agenda as an iCalendar feed that
// external calendar apps can subscribe to.
type CalendarFeedService interface {
	// StylistFeed serializes the stylist's upcoming appointments and
	// blocking events as an ics document.
	StylistFeed(ctx context.Context, stylistID string) (string, error)
}

type calendarFeedService struct {
	repo      *repository.Repository
	loc       *time.Location
	salonName string
	logger    *zap.Logger
}

// NewCalendarFeedService creates a CalendarFeedService.
func NewCalendarFeedService(repo *repository.Repository, loc *time.Location, salonName string, logger *zap.Logger) CalendarFeedService {
	return &calendarFeedService{repo: repo, loc: loc, salonName: salonName, logger: logger}
}

func (s *calendarFeedService) StylistFeed(ctx context.Context, stylistID string) (string, error) {
	stylist, err := s.repo.Stylist.GetByID(ctx, stylistID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrStylistNotFound
		}
		return "", err
	}

	from := time.Now().In(s.loc)
	to := from.AddDate(0, 0, feedHorizonDays)

	appts, err := s.repo.Appointment.ListByStylistAndRange(ctx, stylistID, from, to)
	if err != nil {
		return "", err
	}
	events, err := s.repo.BlockingEvent.ListByStylistAndRange(ctx, stylistID, from, to)
	if err != nil {
		return "", err
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//" + s.salonName + "//agenda//ES")
	cal.SetName(s.salonName + " · " + stylist.DisplayName)
	cal.SetTimezoneId(s.loc.String())

	for i := range appts {
		a := &appts[i]
		if a.Status == model.AppointmentCancelled || a.Status == model.AppointmentExpired {
			continue
		}
		ev := cal.AddEvent("appt-" + a.AppointmentID)
		ev.SetCreatedTime(a.CreatedAt)
		ev.SetDtStampTime(a.UpdatedAt)
		ev.SetStartAt(a.StartTime.In(s.loc))
		ev.SetEndAt(a.EndTime().In(s.loc))
		ev.SetSummary(a.ServiceName)
		if a.Customer != nil {
			ev.SetDescription(fmt.Sprintf("Cliente: %s", a.Customer.FirstName))
		}
		ev.SetLocation(s.salonName)
		if a.Status == model.AppointmentPending {
			ev.SetStatus(ics.ObjectStatusTentative)
		} else {
			ev.SetStatus(ics.ObjectStatusConfirmed)
		}
	}

	for i := range events {
		e := &events[i]
		ev := cal.AddEvent("block-" + e.EventID)
		ev.SetCreatedTime(e.CreatedAt)
		ev.SetDtStampTime(e.UpdatedAt)
		ev.SetStartAt(e.StartTime.In(s.loc))
		ev.SetEndAt(e.EndTime.In(s.loc))
		ev.SetSummary(e.Title)
		ev.SetStatus(ics.ObjectStatusConfirmed)
	}

	s.logger.Debug("calendar feed rendered",
		zap.String("stylist_id", stylistID),
		zap.Int("appointments", len(appts)),
		zap.Int("blocking_events", len(events)),
	)
	return cal.Serialize(), nil
}
