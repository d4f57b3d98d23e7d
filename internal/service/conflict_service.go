package service

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/pepeccz/atrevete-bot-sub002/internal/repository"
)

// ConflictKind what kind of agenda item an overlap was found against.
type ConflictKind string

const (
	ConflictAppointment   ConflictKind = "appointment"
	ConflictBlockingEvent ConflictKind = "blocking_event"
)

// ConflictRecord one detected overlap. Reporting-only, never persisted.
type ConflictRecord struct {
	Date      time.Time
	StylistID string
	Kind      ConflictKind
	Label     string // customer first name or blocking-event title
	Start     time.Time
	End       time.Time
}

// maxConcurrentDateQueries bounds the per-date read fan-out.
const maxConcurrentDateQueries = 4

// ConflictService overlap detection for a stylist's agenda.
type ConflictService interface {
	// Detect reports every appointment (pending/confirmed only) and
	// blocking event of the stylist overlapping [date+startClock,
	// date+endClock) on each candidate date, under half-open interval
	// semantics: back-to-back items do not conflict.
	//
	// Dates are checked concurrently but the result is ordered by date,
	// then discovery order within a date. On any query failure the whole
	// call fails; a partial report is never returned.
	Detect(ctx context.Context, stylistID string, dates []time.Time, startClock, endClock string) ([]ConflictRecord, error)
}

type conflictService struct {
	repo   *repository.Repository
	loc    *time.Location
	logger *zap.Logger
}

// NewConflictService creates a ConflictService.
func NewConflictService(repo *repository.Repository, loc *time.Location, logger *zap.Logger) ConflictService {
	return &conflictService{repo: repo, loc: loc, logger: logger}
}

func (s *conflictService) Detect(ctx context.Context, stylistID string, dates []time.Time, startClock, endClock string) ([]ConflictRecord, error) {
	startH, startM, err := parseClock(startClock)
	if err != nil {
		return nil, err
	}
	endH, endM, err := parseClock(endClock)
	if err != nil {
		return nil, err
	}

	perDate := make([][]ConflictRecord, len(dates))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentDateQueries)

	for i, d := range dates {
		i, d := i, d
		g.Go(func() error {
			day := d.In(s.loc)
			winStart := withClock(day, startH, startM, s.loc)
			winEnd := withClock(day, endH, endM, s.loc)

			records, err := s.detectOne(gctx, stylistID, day, winStart, winEnd)
			if err != nil {
				return err
			}
			perDate[i] = records
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		s.logger.Error("conflict detection failed",
			zap.String("stylist_id", stylistID),
			zap.Int("dates", len(dates)),
			zap.Error(err),
		)
		return nil, err
	}

	var all []ConflictRecord
	for _, records := range perDate {
		all = append(all, records...)
	}
	return all, nil
}

// detectOne runs both overlap queries for a single candidate date. Records
// keep discovery order: appointments first, blocking events second, each in
// start-time order.
func (s *conflictService) detectOne(ctx context.Context, stylistID string, day, winStart, winEnd time.Time) ([]ConflictRecord, error) {
	var records []ConflictRecord

	appts, err := s.repo.Appointment.ListOverlapping(ctx, stylistID, winStart, winEnd)
	if err != nil {
		return nil, err
	}
	for _, a := range appts {
		label := a.ServiceName
		if a.Customer != nil && a.Customer.FirstName != "" {
			label = a.Customer.FirstName
		}
		records = append(records, ConflictRecord{
			Date:      day,
			StylistID: stylistID,
			Kind:      ConflictAppointment,
			Label:     label,
			Start:     a.StartTime.In(s.loc),
			End:       a.EndTime().In(s.loc),
		})
	}

	events, err := s.repo.BlockingEvent.ListOverlapping(ctx, stylistID, winStart, winEnd)
	if err != nil {
		return nil, err
	}
	for _, e := range events {
		records = append(records, ConflictRecord{
			Date:      day,
			StylistID: stylistID,
			Kind:      ConflictBlockingEvent,
			Label:     e.Title,
			Start:     e.StartTime.In(s.loc),
			End:       e.EndTime.In(s.loc),
		})
	}

	return records, nil
}
