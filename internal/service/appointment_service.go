package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/pepeccz/atrevete-bot-sub002/internal/dto"
	"github.com/pepeccz/atrevete-bot-sub002/internal/model"
	"github.com/pepeccz/atrevete-bot-sub002/internal/repository"
)

// ── Appointment business errors ──

var (
	ErrAppointmentNotFound = errors.New("la cita no existe")
	ErrStylistNotFound     = errors.New("el profesional no existe")
	ErrSlotConflict        = errors.New("el horario solicitado ya está ocupado")
	ErrBadStatusTransition = errors.New("transición de estado no permitida")
)

// AppointmentService appointment booking and lifecycle.
type AppointmentService interface {
	// Create books a slot after checking opening hours and overlaps. The
	// customer record is resolved by WhatsApp phone, created on first
	// contact.
	Create(ctx context.Context, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error)
	GetByID(ctx context.Context, id string) (*dto.AppointmentResponse, error)
	List(ctx context.Context, req *dto.AppointmentListRequest) ([]dto.AppointmentResponse, error)
	// UpdateStatus advances the lifecycle: pending→confirmed|cancelled,
	// confirmed→completed|cancelled. Terminal states reject transitions.
	UpdateStatus(ctx context.Context, id, status, callerID string) (*dto.AppointmentResponse, error)
	// ExpireStalePending sweeps pending appointments whose slot has passed.
	ExpireStalePending(ctx context.Context) (int64, error)
}

type appointmentService struct {
	repo   *repository.Repository
	hours  BusinessHoursService
	loc    *time.Location
	logger *zap.Logger
}

// NewAppointmentService creates an AppointmentService.
func NewAppointmentService(repo *repository.Repository, hours BusinessHoursService, loc *time.Location, logger *zap.Logger) AppointmentService {
	return &appointmentService{repo: repo, hours: hours, loc: loc, logger: logger}
}

// allowed status transitions
var statusTransitions = map[string][]string{
	model.AppointmentPending:   {model.AppointmentConfirmed, model.AppointmentCancelled},
	model.AppointmentConfirmed: {model.AppointmentCompleted, model.AppointmentCancelled},
}

func (s *appointmentService) Create(ctx context.Context, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error) {
	stylist, err := s.repo.Stylist.GetByID(ctx, req.StylistID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStylistNotFound
		}
		return nil, err
	}
	if !stylist.IsActive {
		return nil, newValidationError("el profesional %s no está disponible", stylist.DisplayName)
	}

	start, err := time.Parse(time.RFC3339, req.StartTime)
	if err != nil {
		return nil, newValidationError("hora de inicio no válida: %q", req.StartTime)
	}
	start = start.In(s.loc)
	end := start.Add(time.Duration(req.DurationMinutes) * time.Minute)

	// Reject slots outside that weekday's opening window.
	summary, err := s.hours.Summary(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.hours.ValidateWindow(start.Format("15:04"), end.Format("15:04"), mondayIndex(start), summary); err != nil {
		return nil, err
	}

	// Overlap check against live appointments and blocking events on the
	// same stylist, half-open intervals.
	appts, err := s.repo.Appointment.ListOverlapping(ctx, req.StylistID, start, end)
	if err != nil {
		return nil, err
	}
	if len(appts) > 0 {
		return nil, ErrSlotConflict
	}
	events, err := s.repo.BlockingEvent.ListOverlapping(ctx, req.StylistID, start, end)
	if err != nil {
		return nil, err
	}
	if len(events) > 0 {
		return nil, ErrSlotConflict
	}

	source := req.Source
	if source == "" {
		source = "whatsapp"
	}

	appt := &model.Appointment{
		StylistID:       req.StylistID,
		ServiceName:     req.ServiceName,
		StartTime:       start,
		DurationMinutes: req.DurationMinutes,
		Status:          model.AppointmentPending,
		Source:          source,
	}

	err = s.repo.Transaction(ctx, func(txRepo *repository.Repository) error {
		customer, err := txRepo.Customer.UpsertByPhone(ctx, req.CustomerPhone, req.CustomerName)
		if err != nil {
			return err
		}
		appt.CustomerID = customer.CustomerID
		appt.Customer = customer
		return txRepo.Appointment.Create(ctx, appt)
	})
	if err != nil {
		s.logger.Error("create appointment failed",
			zap.String("stylist_id", req.StylistID),
			zap.String("customer_phone", req.CustomerPhone),
			zap.Error(err),
		)
		return nil, err
	}
	appt.Stylist = stylist

	s.logger.Info("appointment booked",
		zap.String("appointment_id", appt.AppointmentID),
		zap.String("stylist_id", appt.StylistID),
		zap.Time("start_time", appt.StartTime),
	)
	return s.toResponse(appt), nil
}

func (s *appointmentService) GetByID(ctx context.Context, id string) (*dto.AppointmentResponse, error) {
	appt, err := s.repo.Appointment.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAppointmentNotFound
		}
		return nil, err
	}
	return s.toResponse(appt), nil
}

func (s *appointmentService) List(ctx context.Context, req *dto.AppointmentListRequest) ([]dto.AppointmentResponse, error) {
	from, err := time.ParseInLocation("2006-01-02", req.From, s.loc)
	if err != nil {
		return nil, newValidationError("fecha inicial no válida: %q", req.From)
	}
	to, err := time.ParseInLocation("2006-01-02", req.To, s.loc)
	if err != nil {
		return nil, newValidationError("fecha final no válida: %q", req.To)
	}
	if !to.After(from) {
		return nil, newValidationError("el rango de fechas está vacío")
	}

	var appts []model.Appointment
	if req.StylistID != "" {
		appts, err = s.repo.Appointment.ListByStylistAndRange(ctx, req.StylistID, from, to)
	} else {
		appts, err = s.repo.Appointment.ListByRange(ctx, from, to)
	}
	if err != nil {
		s.logger.Error("list appointments failed", zap.Error(err))
		return nil, err
	}

	result := make([]dto.AppointmentResponse, 0, len(appts))
	for i := range appts {
		result = append(result, *s.toResponse(&appts[i]))
	}
	return result, nil
}

func (s *appointmentService) UpdateStatus(ctx context.Context, id, status, callerID string) (*dto.AppointmentResponse, error) {
	appt, err := s.repo.Appointment.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAppointmentNotFound
		}
		return nil, err
	}

	allowed := false
	for _, next := range statusTransitions[appt.Status] {
		if next == status {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, ErrBadStatusTransition
	}

	appt.Status = status
	appt.UpdatedBy = &callerID
	if err := s.repo.Appointment.Update(ctx, appt); err != nil {
		s.logger.Error("update appointment status failed", zap.String("appointment_id", id), zap.Error(err))
		return nil, err
	}

	s.logger.Info("appointment status changed",
		zap.String("appointment_id", id),
		zap.String("status", status),
	)
	return s.toResponse(appt), nil
}

func (s *appointmentService) ExpireStalePending(ctx context.Context) (int64, error) {
	n, err := s.repo.Appointment.ExpireStalePending(ctx, time.Now().In(s.loc))
	if err != nil {
		s.logger.Error("expire stale pending failed", zap.Error(err))
		return 0, err
	}
	if n > 0 {
		s.logger.Info("stale pending appointments expired", zap.Int64("count", n))
	}
	return n, nil
}

func (s *appointmentService) toResponse(appt *model.Appointment) *dto.AppointmentResponse {
	resp := &dto.AppointmentResponse{
		ID:              appt.AppointmentID,
		StylistID:       appt.StylistID,
		CustomerID:      appt.CustomerID,
		ServiceName:     appt.ServiceName,
		StartTime:       appt.StartTime.In(s.loc).Format(time.RFC3339),
		EndTime:         appt.EndTime().In(s.loc).Format(time.RFC3339),
		DurationMinutes: appt.DurationMinutes,
		Status:          appt.Status,
		Source:          appt.Source,
	}
	if appt.Stylist != nil {
		resp.StylistName = appt.Stylist.DisplayName
	}
	if appt.Customer != nil {
		resp.CustomerName = appt.Customer.FirstName
	}
	return resp
}
