package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/pepeccz/atrevete-bot-sub002/internal/dto"
	"github.com/pepeccz/atrevete-bot-sub002/internal/model"
	"github.com/pepeccz/atrevete-bot-sub002/internal/recurrence"
	"github.com/pepeccz/atrevete-bot-sub002/internal/repository"
)

// ── Series business errors ──

var (
	ErrSeriesNotFound = errors.New("la serie no existe")
	ErrEventNotFound  = errors.New("el bloqueo no existe")
)

// SeriesService the recurring blocked-time orchestrator: preview, validate
// and materialize a series, and manage individual occurrences afterwards.
type SeriesService interface {
	// Preview expands a draft and reports its dates and conflicts without
	// persisting anything. The whole preview fails if any occurrence falls
	// on a closed day or outside opening hours.
	Preview(ctx context.Context, req *dto.PreviewSeriesRequest) (*dto.PreviewSeriesResponse, error)
	// Create materializes a series after explicit confirmation: the
	// template plus one blocking event per occurrence, all-or-nothing.
	Create(ctx context.Context, req *dto.CreateSeriesRequest, callerID string) (*dto.SeriesResponse, error)
	GetByID(ctx context.Context, id string) (*dto.SeriesResponse, error)
	ListByStylist(ctx context.Context, stylistID string) ([]dto.SeriesResponse, error)
	ListOccurrences(ctx context.Context, seriesID string) ([]dto.BlockingEventResponse, error)
	// Update bulk-edits the template and its future instances, skipping
	// instances flagged as exceptions.
	Update(ctx context.Context, id string, req *dto.UpdateSeriesRequest, callerID string) (*dto.SeriesResponse, error)
	// Append extends the series with n trailing occurrences, validated the
	// same way Create validates.
	Append(ctx context.Context, id string, n int, callerID string) (*dto.SeriesResponse, error)
	// Trim drops the last n non-exception occurrences.
	Trim(ctx context.Context, id string, n int, callerID string) (*dto.SeriesResponse, error)
	// Delete removes the template. Instances are detached and survive as
	// standalone events.
	Delete(ctx context.Context, id string, callerID string) error
	// UpdateOccurrence edits one materialized instance and detaches it
	// from bulk edits.
	UpdateOccurrence(ctx context.Context, eventID string, req *dto.UpdateOccurrenceRequest, callerID string) (*dto.BlockingEventResponse, error)
	// CancelOccurrence cancels a single occurrence, leaving the rest of
	// the series untouched.
	CancelOccurrence(ctx context.Context, eventID string, callerID string) error
}

type seriesService struct {
	repo     *repository.Repository
	hours    BusinessHoursService
	conflict ConflictService
	loc      *time.Location
	logger   *zap.Logger
}

// NewSeriesService creates a SeriesService.
func NewSeriesService(repo *repository.Repository, hours BusinessHoursService, conflict ConflictService, loc *time.Location, logger *zap.Logger) SeriesService {
	return &seriesService{repo: repo, hours: hours, conflict: conflict, loc: loc, logger: logger}
}

// ────────────────────── rule construction ──────────────────────

// buildRule turns the request rule into the tagged recurrence rule,
// rejecting malformed input with localized reasons.
func (s *seriesService) buildRule(req *dto.RuleRequest) (recurrence.Rule, error) {
	start, err := time.ParseInLocation("2006-01-02", req.StartDate, s.loc)
	if err != nil {
		return recurrence.Rule{}, newValidationError("fecha de inicio no válida: %q", req.StartDate)
	}

	rule := recurrence.Rule{Start: start, Count: req.Count}

	switch recurrence.Frequency(req.Frequency) {
	case recurrence.FrequencyWeekly:
		if req.ByMonthDay != "" {
			return recurrence.Rule{}, newValidationError("una regla semanal no puede llevar días del mes")
		}
		days, err := recurrence.ParseByDay(req.ByDay)
		if err != nil {
			return recurrence.Rule{}, &ValidationError{Reason: "días de la semana no válidos: " + req.ByDay, Err: err}
		}
		rule.Pattern = recurrence.Weekly{Interval: req.Interval, Weekdays: days}
	case recurrence.FrequencyMonthly:
		if req.ByDay != "" {
			return recurrence.Rule{}, newValidationError("una regla mensual no puede llevar días de la semana")
		}
		days, err := recurrence.ParseByMonthDay(req.ByMonthDay)
		if err != nil {
			return recurrence.Rule{}, &ValidationError{Reason: "días del mes no válidos: " + req.ByMonthDay, Err: err}
		}
		rule.Pattern = recurrence.Monthly{Interval: req.Interval, MonthDays: days}
	default:
		return recurrence.Rule{}, newValidationError("frecuencia no soportada: %q", req.Frequency)
	}

	if err := rule.Validate(); err != nil {
		return recurrence.Rule{}, &ValidationError{Reason: "regla de repetición no válida", Err: err}
	}
	return rule, nil
}

// plan runs the full dry-run pipeline shared by Preview and Create: expand
// the rule, validate every occurrence against business hours (fail-fast) and
// collect conflicts. Returns the validated rule, the occurrence dates and
// the conflict list.
func (s *seriesService) plan(ctx context.Context, req *dto.PreviewSeriesRequest) (recurrence.Rule, []time.Time, []ConflictRecord, error) {
	if _, err := s.repo.Stylist.GetByID(ctx, req.StylistID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return recurrence.Rule{}, nil, nil, ErrStylistNotFound
		}
		return recurrence.Rule{}, nil, nil, err
	}

	rule, err := s.buildRule(&req.Rule)
	if err != nil {
		return recurrence.Rule{}, nil, nil, err
	}

	dates, err := recurrence.Expand(rule, s.loc)
	if err != nil {
		return recurrence.Rule{}, nil, nil, &ValidationError{Reason: "regla de repetición no válida", Err: err}
	}

	summary, err := s.hours.Summary(ctx)
	if err != nil {
		return recurrence.Rule{}, nil, nil, err
	}
	for _, d := range dates {
		if err := s.hours.ValidateWindow(req.StartTimeOfDay, req.EndTimeOfDay, mondayIndex(d), summary); err != nil {
			var vErr *ValidationError
			if errors.As(err, &vErr) {
				// Fail-fast: the first offending occurrence rejects the
				// whole series, naming the date.
				return recurrence.Rule{}, nil, nil, &ValidationError{
					Reason: d.Format("02/01/2006") + ": " + vErr.Reason,
					Err:    vErr,
				}
			}
			return recurrence.Rule{}, nil, nil, err
		}
	}

	conflicts, err := s.conflict.Detect(ctx, req.StylistID, dates, req.StartTimeOfDay, req.EndTimeOfDay)
	if err != nil {
		return recurrence.Rule{}, nil, nil, err
	}
	return rule, dates, conflicts, nil
}

// ────────────────────── Preview ──────────────────────

func (s *seriesService) Preview(ctx context.Context, req *dto.PreviewSeriesRequest) (*dto.PreviewSeriesResponse, error) {
	_, dates, conflicts, err := s.plan(ctx, req)
	if err != nil {
		return nil, err
	}
	return s.toPreviewResponse(dates, conflicts), nil
}

// ────────────────────── Create ──────────────────────

func (s *seriesService) Create(ctx context.Context, req *dto.CreateSeriesRequest, callerID string) (*dto.SeriesResponse, error) {
	rule, dates, conflicts, err := s.plan(ctx, &req.PreviewSeriesRequest)
	if err != nil {
		return nil, err
	}
	// Conflicts are reported to the caller by Preview; creation on top of
	// them is an explicit admin decision, so they do not block here.
	if len(conflicts) > 0 {
		s.logger.Warn("series created over existing conflicts",
			zap.String("stylist_id", req.StylistID),
			zap.Int("conflicts", len(conflicts)),
		)
	}

	eventType := req.EventType
	if eventType == "" {
		eventType = model.EventOther
	}

	series := &model.RecurringSeries{
		SeriesID:         uuid.New().String(),
		StylistID:        req.StylistID,
		Title:            req.Title,
		Description:      req.Description,
		EventType:        eventType,
		StartTimeOfDay:   req.StartTimeOfDay,
		EndTimeOfDay:     req.EndTimeOfDay,
		Frequency:        req.Rule.Frequency,
		RuleInterval:     req.Rule.Interval,
		StartDate:        dates[0],
		OccurrenceCount:  req.Rule.Count,
		InstancesCreated: len(dates),
	}
	// The persisted day columns come from the validated rule, so storage
	// always holds the canonical ascending form.
	switch p := rule.Pattern.(type) {
	case recurrence.Weekly:
		series.ByDay = recurrence.FormatByDay(p.Weekdays)
	case recurrence.Monthly:
		series.ByMonthDay = recurrence.FormatByMonthDay(p.MonthDays)
	}
	series.CreatedBy = &callerID
	series.UpdatedBy = &callerID

	events := s.buildInstances(series, dates, 0, callerID)

	err = s.repo.Transaction(ctx, func(txRepo *repository.Repository) error {
		if err := txRepo.RecurringSeries.Create(ctx, series); err != nil {
			return err
		}
		return txRepo.BlockingEvent.BatchCreate(ctx, events)
	})
	if err != nil {
		s.logger.Error("materialize series failed", zap.String("stylist_id", req.StylistID), zap.Error(err))
		return nil, err
	}

	return s.toSeriesResponse(series), nil
}

// buildInstances expands dates into blocking events stamped with their
// occurrence index, starting at firstIndex.
func (s *seriesService) buildInstances(series *model.RecurringSeries, dates []time.Time, firstIndex int, callerID string) []model.BlockingEvent {
	startH, startM, _ := parseClock(series.StartTimeOfDay)
	endH, endM, _ := parseClock(series.EndTimeOfDay)

	events := make([]model.BlockingEvent, 0, len(dates))
	for i, d := range dates {
		idx := firstIndex + i
		e := model.BlockingEvent{
			EventID:           uuid.New().String(),
			StylistID:         series.StylistID,
			Title:             series.Title,
			EventType:         series.EventType,
			StartTime:         withClock(d, startH, startM, s.loc),
			EndTime:           withClock(d, endH, endM, s.loc),
			RecurringSeriesID: &series.SeriesID,
			OccurrenceIndex:   &idx,
		}
		e.CreatedBy = &callerID
		e.UpdatedBy = &callerID
		events = append(events, e)
	}
	return events
}

// ────────────────────── Reads ──────────────────────

func (s *seriesService) GetByID(ctx context.Context, id string) (*dto.SeriesResponse, error) {
	series, err := s.repo.RecurringSeries.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSeriesNotFound
		}
		return nil, err
	}
	return s.toSeriesResponse(series), nil
}

func (s *seriesService) ListByStylist(ctx context.Context, stylistID string) ([]dto.SeriesResponse, error) {
	list, err := s.repo.RecurringSeries.ListByStylist(ctx, stylistID)
	if err != nil {
		s.logger.Error("list series failed", zap.String("stylist_id", stylistID), zap.Error(err))
		return nil, err
	}
	result := make([]dto.SeriesResponse, 0, len(list))
	for i := range list {
		result = append(result, *s.toSeriesResponse(&list[i]))
	}
	return result, nil
}

func (s *seriesService) ListOccurrences(ctx context.Context, seriesID string) ([]dto.BlockingEventResponse, error) {
	if _, err := s.repo.RecurringSeries.GetByID(ctx, seriesID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSeriesNotFound
		}
		return nil, err
	}
	events, err := s.repo.BlockingEvent.ListBySeries(ctx, seriesID)
	if err != nil {
		return nil, err
	}
	result := make([]dto.BlockingEventResponse, 0, len(events))
	for i := range events {
		result = append(result, *s.toEventResponse(&events[i]))
	}
	return result, nil
}

// ────────────────────── Update (bulk) ──────────────────────

func (s *seriesService) Update(ctx context.Context, id string, req *dto.UpdateSeriesRequest, callerID string) (*dto.SeriesResponse, error) {
	series, err := s.repo.RecurringSeries.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSeriesNotFound
		}
		return nil, err
	}

	if req.Title != nil {
		series.Title = *req.Title
	}
	if req.Description != nil {
		series.Description = *req.Description
	}
	if req.EventType != nil {
		series.EventType = *req.EventType
	}
	if req.StartTimeOfDay != nil {
		series.StartTimeOfDay = *req.StartTimeOfDay
	}
	if req.EndTimeOfDay != nil {
		series.EndTimeOfDay = *req.EndTimeOfDay
	}

	startH, startM, err := parseClock(series.StartTimeOfDay)
	if err != nil {
		return nil, err
	}
	endH, endM, err := parseClock(series.EndTimeOfDay)
	if err != nil {
		return nil, err
	}
	if clockMinutes(endH, endM) <= clockMinutes(startH, startM) {
		return nil, newValidationError("la hora de fin %s debe ser posterior a la de inicio %s", series.EndTimeOfDay, series.StartTimeOfDay)
	}

	// A re-windowed series must keep every affected instance inside
	// opening hours, same check Create and Append run.
	rewindowed := req.StartTimeOfDay != nil || req.EndTimeOfDay != nil
	var summary map[int]*dto.DayWindow
	if rewindowed {
		summary, err = s.hours.Summary(ctx)
		if err != nil {
			return nil, err
		}
	}

	series.UpdatedBy = &callerID
	now := time.Now().In(s.loc)

	err = s.repo.Transaction(ctx, func(txRepo *repository.Repository) error {
		if err := txRepo.RecurringSeries.Update(ctx, series); err != nil {
			return err
		}
		instances, err := txRepo.BlockingEvent.ListBySeries(ctx, id)
		if err != nil {
			return err
		}
		for i := range instances {
			e := &instances[i]
			// Exceptions stay detached from bulk edits; past instances
			// keep their history.
			if e.IsException || e.StartTime.Before(now) {
				continue
			}
			day := e.StartTime.In(s.loc)
			if rewindowed {
				if err := s.hours.ValidateWindow(series.StartTimeOfDay, series.EndTimeOfDay, mondayIndex(day), summary); err != nil {
					var vErr *ValidationError
					if errors.As(err, &vErr) {
						return &ValidationError{Reason: day.Format("02/01/2006") + ": " + vErr.Reason, Err: vErr}
					}
					return err
				}
			}
			e.Title = series.Title
			e.EventType = series.EventType
			e.StartTime = withClock(day, startH, startM, s.loc)
			e.EndTime = withClock(day, endH, endM, s.loc)
			e.UpdatedBy = &callerID
			if err := txRepo.BlockingEvent.Update(ctx, e); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		s.logger.Error("bulk series update failed", zap.String("series_id", id), zap.Error(err))
		return nil, err
	}

	return s.toSeriesResponse(series), nil
}

// ────────────────────── Append / Trim ──────────────────────

func (s *seriesService) Append(ctx context.Context, id string, n int, callerID string) (*dto.SeriesResponse, error) {
	series, err := s.repo.RecurringSeries.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSeriesNotFound
		}
		return nil, err
	}

	newCount := series.OccurrenceCount + n
	if newCount > recurrence.MaxCount {
		return nil, newValidationError("una serie no puede superar %d repeticiones", recurrence.MaxCount)
	}

	rule, err := s.hydrateRule(series, newCount)
	if err != nil {
		return nil, err
	}
	dates, err := recurrence.Expand(rule, s.loc)
	if err != nil {
		return nil, &ValidationError{Reason: "regla de repetición no válida", Err: err}
	}
	tail := dates[len(dates)-n:]

	summary, err := s.hours.Summary(ctx)
	if err != nil {
		return nil, err
	}
	for _, d := range tail {
		if err := s.hours.ValidateWindow(series.StartTimeOfDay, series.EndTimeOfDay, mondayIndex(d), summary); err != nil {
			var vErr *ValidationError
			if errors.As(err, &vErr) {
				return nil, &ValidationError{Reason: d.Format("02/01/2006") + ": " + vErr.Reason, Err: vErr}
			}
			return nil, err
		}
	}
	if _, err := s.conflict.Detect(ctx, series.StylistID, tail, series.StartTimeOfDay, series.EndTimeOfDay); err != nil {
		return nil, err
	}

	events := s.buildInstances(series, tail, series.InstancesCreated, callerID)
	series.OccurrenceCount = newCount
	series.InstancesCreated += n
	series.UpdatedBy = &callerID

	err = s.repo.Transaction(ctx, func(txRepo *repository.Repository) error {
		if err := txRepo.BlockingEvent.BatchCreate(ctx, events); err != nil {
			return err
		}
		return txRepo.RecurringSeries.Update(ctx, series)
	})
	if err != nil {
		s.logger.Error("append occurrences failed", zap.String("series_id", id), zap.Error(err))
		return nil, err
	}

	return s.toSeriesResponse(series), nil
}

func (s *seriesService) Trim(ctx context.Context, id string, n int, callerID string) (*dto.SeriesResponse, error) {
	series, err := s.repo.RecurringSeries.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSeriesNotFound
		}
		return nil, err
	}

	if n >= series.InstancesCreated {
		return nil, newValidationError("no se pueden eliminar todas las repeticiones de la serie")
	}
	fromIndex := series.InstancesCreated - n

	series.UpdatedBy = &callerID

	err = s.repo.Transaction(ctx, func(txRepo *repository.Repository) error {
		if _, err := txRepo.BlockingEvent.DeleteTrailing(ctx, id, fromIndex, callerID); err != nil {
			return err
		}
		// Exceptions in the trimmed range survive and keep their index,
		// so the counters must stay past the highest live index or a
		// later append would reuse an occupied slot.
		instances, err := txRepo.BlockingEvent.ListBySeries(ctx, id)
		if err != nil {
			return err
		}
		next := fromIndex
		for i := range instances {
			if idx := instances[i].OccurrenceIndex; idx != nil && *idx >= next {
				next = *idx + 1
			}
		}
		series.InstancesCreated = next
		series.OccurrenceCount = next
		return txRepo.RecurringSeries.Update(ctx, series)
	})
	if err != nil {
		s.logger.Error("trim occurrences failed", zap.String("series_id", id), zap.Error(err))
		return nil, err
	}

	return s.toSeriesResponse(series), nil
}

// ────────────────────── Delete ──────────────────────

func (s *seriesService) Delete(ctx context.Context, id string, callerID string) error {
	if _, err := s.repo.RecurringSeries.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSeriesNotFound
		}
		return err
	}

	// Instances outlive the template: detach them instead of cascading.
	err := s.repo.Transaction(ctx, func(txRepo *repository.Repository) error {
		if err := txRepo.BlockingEvent.DetachSeries(ctx, id); err != nil {
			return err
		}
		return txRepo.RecurringSeries.Delete(ctx, id, callerID)
	})
	if err != nil {
		s.logger.Error("delete series failed", zap.String("series_id", id), zap.Error(err))
	}
	return err
}

// ────────────────────── Occurrence-level edits ──────────────────────

func (s *seriesService) UpdateOccurrence(ctx context.Context, eventID string, req *dto.UpdateOccurrenceRequest, callerID string) (*dto.BlockingEventResponse, error) {
	event, err := s.repo.BlockingEvent.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}

	if req.Title != nil {
		event.Title = *req.Title
	}
	if req.StartTime != nil {
		t, err := time.Parse(time.RFC3339, *req.StartTime)
		if err != nil {
			return nil, newValidationError("hora de inicio no válida: %q", *req.StartTime)
		}
		event.StartTime = t.In(s.loc)
	}
	if req.EndTime != nil {
		t, err := time.Parse(time.RFC3339, *req.EndTime)
		if err != nil {
			return nil, newValidationError("hora de fin no válida: %q", *req.EndTime)
		}
		event.EndTime = t.In(s.loc)
	}
	if !event.EndTime.After(event.StartTime) {
		return nil, newValidationError("la hora de fin debe ser posterior a la de inicio")
	}

	// Any individual edit detaches the occurrence from bulk-series
	// operations for good.
	event.IsException = true
	event.UpdatedBy = &callerID

	if err := s.repo.BlockingEvent.Update(ctx, event); err != nil {
		s.logger.Error("update occurrence failed", zap.String("event_id", eventID), zap.Error(err))
		return nil, err
	}
	return s.toEventResponse(event), nil
}

func (s *seriesService) CancelOccurrence(ctx context.Context, eventID string, callerID string) error {
	event, err := s.repo.BlockingEvent.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEventNotFound
		}
		return err
	}

	err = s.repo.Transaction(ctx, func(txRepo *repository.Repository) error {
		// Flag first so a trailing trim never counts the slot again.
		event.IsException = true
		event.UpdatedBy = &callerID
		if err := txRepo.BlockingEvent.Update(ctx, event); err != nil {
			return err
		}
		return txRepo.BlockingEvent.Delete(ctx, eventID, callerID)
	})
	if err != nil {
		s.logger.Error("cancel occurrence failed", zap.String("event_id", eventID), zap.Error(err))
	}
	return err
}

// ── Internal helpers ──

// hydrateRule rebuilds the tagged rule from the persisted template columns,
// overriding the occurrence count.
func (s *seriesService) hydrateRule(series *model.RecurringSeries, count int) (recurrence.Rule, error) {
	req := dto.RuleRequest{
		Frequency:  series.Frequency,
		Interval:   series.RuleInterval,
		ByDay:      series.ByDay,
		ByMonthDay: series.ByMonthDay,
		StartDate:  series.StartDate.In(s.loc).Format("2006-01-02"),
		Count:      count,
	}
	return s.buildRule(&req)
}

func (s *seriesService) toPreviewResponse(dates []time.Time, conflicts []ConflictRecord) *dto.PreviewSeriesResponse {
	resp := &dto.PreviewSeriesResponse{
		Dates:        make([]string, 0, len(dates)),
		Conflicts:    make([]dto.ConflictResponse, 0, len(conflicts)),
		HasConflicts: len(conflicts) > 0,
	}
	for _, d := range dates {
		resp.Dates = append(resp.Dates, d.Format("2006-01-02"))
	}
	for _, c := range conflicts {
		resp.Conflicts = append(resp.Conflicts, dto.ConflictResponse{
			Date:  c.Date.Format("2006-01-02"),
			Kind:  string(c.Kind),
			Label: c.Label,
			Start: c.Start.Format("15:04"),
			End:   c.End.Format("15:04"),
		})
	}
	return resp
}

func (s *seriesService) toSeriesResponse(series *model.RecurringSeries) *dto.SeriesResponse {
	return &dto.SeriesResponse{
		ID:               series.SeriesID,
		StylistID:        series.StylistID,
		Title:            series.Title,
		Description:      series.Description,
		EventType:        series.EventType,
		StartTimeOfDay:   series.StartTimeOfDay,
		EndTimeOfDay:     series.EndTimeOfDay,
		Frequency:        series.Frequency,
		Interval:         series.RuleInterval,
		ByDay:            series.ByDay,
		ByMonthDay:       series.ByMonthDay,
		StartDate:        series.StartDate.In(s.loc).Format("2006-01-02"),
		Count:            series.OccurrenceCount,
		InstancesCreated: series.InstancesCreated,
		CreatedAt:        series.CreatedAt.Format(time.RFC3339),
	}
}

func (s *seriesService) toEventResponse(event *model.BlockingEvent) *dto.BlockingEventResponse {
	return &dto.BlockingEventResponse{
		ID:              event.EventID,
		StylistID:       event.StylistID,
		Title:           event.Title,
		EventType:       event.EventType,
		StartTime:       event.StartTime.In(s.loc).Format(time.RFC3339),
		EndTime:         event.EndTime.In(s.loc).Format(time.RFC3339),
		SeriesID:        event.RecurringSeriesID,
		OccurrenceIndex: event.OccurrenceIndex,
		IsException:     event.IsException,
	}
}
