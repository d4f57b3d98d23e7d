package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/pepeccz/atrevete-bot-sub002/internal/dto"
	"github.com/pepeccz/atrevete-bot-sub002/internal/model"
	"github.com/pepeccz/atrevete-bot-sub002/internal/repository"
)

// BusinessHoursService per-weekday opening configuration and window
// validation against it.
type BusinessHoursService interface {
	// Summary returns the opening window of every one of the 7 weekdays
	// (0=Monday .. 6=Sunday). Weekdays without a configuration row and rows
	// flagged closed both map to nil.
	Summary(ctx context.Context) (map[int]*dto.DayWindow, error)
	// OpenWeekdays filters the summary down to the weekday indices the
	// salon opens.
	OpenWeekdays(summary map[int]*dto.DayWindow) []int
	// RemainingOpenDays enumerates the open days from the day after `after`
	// through the Sunday closing that ISO week.
	RemainingOpenDays(ctx context.Context, after time.Time) ([]dto.OpenDayResponse, error)
	// ValidateWindow checks a wall-clock window against one weekday's
	// opening hours. Failures carry a localized reason naming the closed
	// day or the exact boundary crossed.
	ValidateWindow(startClock, endClock string, weekday int, summary map[int]*dto.DayWindow) error
	Upsert(ctx context.Context, req *dto.UpsertBusinessHoursRequest, callerID string) error
}

type businessHoursService struct {
	repo   *repository.Repository
	loc    *time.Location
	logger *zap.Logger
}

// NewBusinessHoursService creates a BusinessHoursService.
func NewBusinessHoursService(repo *repository.Repository, loc *time.Location, logger *zap.Logger) BusinessHoursService {
	return &businessHoursService{repo: repo, loc: loc, logger: logger}
}

func (s *businessHoursService) Summary(ctx context.Context) (map[int]*dto.DayWindow, error) {
	rows, err := s.repo.BusinessHours.ListAll(ctx)
	if err != nil {
		s.logger.Error("list business hours failed", zap.Error(err))
		return nil, err
	}

	summary := make(map[int]*dto.DayWindow, 7)
	for i := 0; i < 7; i++ {
		summary[i] = nil // closed unless configured open
	}
	for _, row := range rows {
		if row.WeekdayIndex < 0 || row.WeekdayIndex > 6 || row.IsClosed {
			continue
		}
		summary[row.WeekdayIndex] = &dto.DayWindow{Open: row.OpenTime, Close: row.CloseTime}
	}
	return summary, nil
}

func (s *businessHoursService) OpenWeekdays(summary map[int]*dto.DayWindow) []int {
	open := make([]int, 0, 7)
	for i := 0; i < 7; i++ {
		if summary[i] != nil {
			open = append(open, i)
		}
	}
	return open
}

func (s *businessHoursService) RemainingOpenDays(ctx context.Context, after time.Time) ([]dto.OpenDayResponse, error) {
	summary, err := s.Summary(ctx)
	if err != nil {
		return nil, err
	}

	days := make([]dto.OpenDayResponse, 0, 6)
	day := after.In(s.loc)
	if mondayIndex(day) == 6 {
		return days, nil // a Sunday has no days left in its ISO week
	}
	for {
		day = day.AddDate(0, 0, 1)
		idx := mondayIndex(day)
		if summary[idx] != nil {
			days = append(days, dto.OpenDayResponse{
				Date:    day.Format("2006-01-02"),
				Weekday: idx,
				Name:    dayNames[idx],
			})
		}
		if idx == 6 { // Sunday closes the ISO week
			break
		}
	}
	return days, nil
}

func (s *businessHoursService) ValidateWindow(startClock, endClock string, weekday int, summary map[int]*dto.DayWindow) error {
	if weekday < 0 || weekday > 6 {
		return newValidationError("día de la semana no válido: %d", weekday)
	}

	startH, startM, err := parseClock(startClock)
	if err != nil {
		return err
	}
	endH, endM, err := parseClock(endClock)
	if err != nil {
		return err
	}
	if clockMinutes(endH, endM) <= clockMinutes(startH, startM) {
		return newValidationError("la hora de fin %s debe ser posterior a la de inicio %s", endClock, startClock)
	}

	window := summary[weekday]
	if window == nil {
		return newValidationError("el salón está cerrado el %s", dayNames[weekday])
	}

	openH, openM, err := parseClock(window.Open)
	if err != nil {
		return err
	}
	closeH, closeM, err := parseClock(window.Close)
	if err != nil {
		return err
	}

	if clockMinutes(startH, startM) < clockMinutes(openH, openM) {
		return newValidationError("la hora de inicio %s es anterior a la apertura del %s (%s)", startClock, dayNames[weekday], window.Open)
	}
	if clockMinutes(endH, endM) > clockMinutes(closeH, closeM) {
		return newValidationError("la hora de fin %s es posterior al cierre del %s (%s)", endClock, dayNames[weekday], window.Close)
	}
	return nil
}

func (s *businessHoursService) Upsert(ctx context.Context, req *dto.UpsertBusinessHoursRequest, callerID string) error {
	row := &model.BusinessHours{
		WeekdayIndex: *req.Weekday,
		IsClosed:     req.Closed,
		OpenTime:     req.OpenTime,
		CloseTime:    req.CloseTime,
	}
	if row.OpenTime == "" {
		row.OpenTime = "10:00"
	}
	if row.CloseTime == "" {
		row.CloseTime = "20:00"
	}

	if !row.IsClosed {
		openH, openM, err := parseClock(row.OpenTime)
		if err != nil {
			return err
		}
		closeH, closeM, err := parseClock(row.CloseTime)
		if err != nil {
			return err
		}
		if clockMinutes(closeH, closeM) <= clockMinutes(openH, openM) {
			return newValidationError("el cierre %s debe ser posterior a la apertura %s", row.CloseTime, row.OpenTime)
		}
	}

	row.UpdatedBy = &callerID
	if err := s.repo.BusinessHours.Upsert(ctx, row); err != nil {
		s.logger.Error("upsert business hours failed", zap.Int("weekday", row.WeekdayIndex), zap.Error(err))
		return err
	}
	return nil
}
