package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/pepeccz/atrevete-bot-sub002/internal/model"
	pkgerrors "github.com/pepeccz/atrevete-bot-sub002/pkg/errors"
)

// AppointmentRepository appointment data access.
type AppointmentRepository interface {
	Create(ctx context.Context, appt *model.Appointment) error
	GetByID(ctx context.Context, id string) (*model.Appointment, error)
	// ListOverlapping returns appointments in live statuses for the stylist
	// whose derived interval intersects [start, end) under half-open
	// semantics, ordered by start time.
	ListOverlapping(ctx context.Context, stylistID string, start, end time.Time) ([]model.Appointment, error)
	ListByStylistAndRange(ctx context.Context, stylistID string, from, to time.Time) ([]model.Appointment, error)
	ListByRange(ctx context.Context, from, to time.Time) ([]model.Appointment, error)
	Update(ctx context.Context, appt *model.Appointment) error
	// ExpireStalePending marks pending appointments whose start instant has
	// passed as expired. Returns the number of rows touched.
	ExpireStalePending(ctx context.Context, now time.Time) (int64, error)
}

type appointmentRepo struct {
	db *gorm.DB
}

// NewAppointmentRepo creates an AppointmentRepository.
func NewAppointmentRepo(db *gorm.DB) AppointmentRepository {
	return &appointmentRepo{db: db}
}

func (r *appointmentRepo) Create(ctx context.Context, appt *model.Appointment) error {
	return r.db.WithContext(ctx).Create(appt).Error
}

func (r *appointmentRepo) GetByID(ctx context.Context, id string) (*model.Appointment, error) {
	var a model.Appointment
	err := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Stylist").
		Where("appointment_id = ?", id).
		First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *appointmentRepo) ListOverlapping(ctx context.Context, stylistID string, start, end time.Time) ([]model.Appointment, error) {
	var appts []model.Appointment
	err := r.db.WithContext(ctx).
		Preload("Customer").
		Where("stylist_id = ?", stylistID).
		Where("status IN ?", model.LiveAppointmentStatuses).
		Where("start_time < ?", end).
		Where("start_time + make_interval(mins => duration_minutes) > ?", start).
		Order("start_time ASC").
		Find(&appts).Error
	return appts, err
}

func (r *appointmentRepo) ListByStylistAndRange(ctx context.Context, stylistID string, from, to time.Time) ([]model.Appointment, error) {
	var appts []model.Appointment
	err := r.db.WithContext(ctx).
		Preload("Customer").
		Where("stylist_id = ?", stylistID).
		Where("start_time >= ? AND start_time < ?", from, to).
		Order("start_time ASC").
		Find(&appts).Error
	return appts, err
}

func (r *appointmentRepo) ListByRange(ctx context.Context, from, to time.Time) ([]model.Appointment, error) {
	var appts []model.Appointment
	err := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Stylist").
		Where("start_time >= ? AND start_time < ?", from, to).
		Order("start_time ASC").
		Find(&appts).Error
	return appts, err
}

// Update writes the row guarded by its version column. Two dashboard tabs
// racing on the same appointment lose deterministically instead of silently
// overwriting each other.
func (r *appointmentRepo) Update(ctx context.Context, appt *model.Appointment) error {
	currentVersion := appt.Version
	appt.Version++
	res := r.db.WithContext(ctx).
		Model(appt).
		Where("appointment_id = ? AND version = ?", appt.AppointmentID, currentVersion).
		Updates(map[string]interface{}{
			"status":     appt.Status,
			"updated_by": appt.UpdatedBy,
			"version":    appt.Version,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return pkgerrors.ErrOptimisticLock
	}
	return nil
}

func (r *appointmentRepo) ExpireStalePending(ctx context.Context, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&model.Appointment{}).
		Where("status = ?", model.AppointmentPending).
		Where("start_time < ?", now).
		Update("status", model.AppointmentExpired)
	return res.RowsAffected, res.Error
}
