package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/pepeccz/atrevete-bot-sub002/internal/model"
)

// BlockingEventRepository blocking-event data access.
type BlockingEventRepository interface {
	Create(ctx context.Context, event *model.BlockingEvent) error
	BatchCreate(ctx context.Context, events []model.BlockingEvent) error
	GetByID(ctx context.Context, id string) (*model.BlockingEvent, error)
	// ListOverlapping returns events for the stylist intersecting
	// [start, end) under half-open semantics, ordered by start time.
	ListOverlapping(ctx context.Context, stylistID string, start, end time.Time) ([]model.BlockingEvent, error)
	ListBySeries(ctx context.Context, seriesID string) ([]model.BlockingEvent, error)
	ListByStylistAndRange(ctx context.Context, stylistID string, from, to time.Time) ([]model.BlockingEvent, error)
	Update(ctx context.Context, event *model.BlockingEvent) error
	Delete(ctx context.Context, id string, deletedBy string) error
	// DetachSeries nulls the series reference on all instances of a series
	// and flags them as exceptions, leaving them standing as standalone
	// events. Exception instances already detached are unaffected.
	DetachSeries(ctx context.Context, seriesID string) error
	// DeleteTrailing soft-deletes the non-exception instances of a series
	// with occurrence_index >= fromIndex. Returns the number of rows touched.
	DeleteTrailing(ctx context.Context, seriesID string, fromIndex int, deletedBy string) (int64, error)
}

type blockingEventRepo struct {
	db *gorm.DB
}

// NewBlockingEventRepo creates a BlockingEventRepository.
func NewBlockingEventRepo(db *gorm.DB) BlockingEventRepository {
	return &blockingEventRepo{db: db}
}

func (r *blockingEventRepo) Create(ctx context.Context, event *model.BlockingEvent) error {
	return r.db.WithContext(ctx).Create(event).Error
}

func (r *blockingEventRepo) BatchCreate(ctx context.Context, events []model.BlockingEvent) error {
	if len(events) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&events).Error
}

func (r *blockingEventRepo) GetByID(ctx context.Context, id string) (*model.BlockingEvent, error) {
	var e model.BlockingEvent
	if err := r.db.WithContext(ctx).Where("event_id = ?", id).First(&e).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *blockingEventRepo) ListOverlapping(ctx context.Context, stylistID string, start, end time.Time) ([]model.BlockingEvent, error) {
	var events []model.BlockingEvent
	err := r.db.WithContext(ctx).
		Where("stylist_id = ?", stylistID).
		Where("start_time < ? AND end_time > ?", end, start).
		Order("start_time ASC").
		Find(&events).Error
	return events, err
}

func (r *blockingEventRepo) ListBySeries(ctx context.Context, seriesID string) ([]model.BlockingEvent, error) {
	var events []model.BlockingEvent
	err := r.db.WithContext(ctx).
		Where("recurring_series_id = ?", seriesID).
		Order("occurrence_index ASC").
		Find(&events).Error
	return events, err
}

func (r *blockingEventRepo) ListByStylistAndRange(ctx context.Context, stylistID string, from, to time.Time) ([]model.BlockingEvent, error) {
	var events []model.BlockingEvent
	err := r.db.WithContext(ctx).
		Where("stylist_id = ?", stylistID).
		Where("start_time < ? AND end_time > ?", to, from).
		Order("start_time ASC").
		Find(&events).Error
	return events, err
}

func (r *blockingEventRepo) Update(ctx context.Context, event *model.BlockingEvent) error {
	return r.db.WithContext(ctx).Save(event).Error
}

func (r *blockingEventRepo) Delete(ctx context.Context, id string, deletedBy string) error {
	return r.db.WithContext(ctx).
		Model(&model.BlockingEvent{}).
		Where("event_id = ?", id).
		Updates(map[string]interface{}{
			"deleted_by": deletedBy,
			"deleted_at": gorm.Expr("NOW()"),
		}).Error
}

func (r *blockingEventRepo) DetachSeries(ctx context.Context, seriesID string) error {
	return r.db.WithContext(ctx).
		Model(&model.BlockingEvent{}).
		Where("recurring_series_id = ?", seriesID).
		Updates(map[string]interface{}{
			"recurring_series_id": nil,
			"is_exception":        true,
		}).Error
}

func (r *blockingEventRepo) DeleteTrailing(ctx context.Context, seriesID string, fromIndex int, deletedBy string) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&model.BlockingEvent{}).
		Where("recurring_series_id = ?", seriesID).
		Where("occurrence_index >= ?", fromIndex).
		Where("is_exception = FALSE").
		Updates(map[string]interface{}{
			"deleted_by": deletedBy,
			"deleted_at": gorm.Expr("NOW()"),
		})
	return res.RowsAffected, res.Error
}
