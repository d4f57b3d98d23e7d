package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/pepeccz/atrevete-bot-sub002/internal/model"
)

// RecurringSeriesRepository recurring-series template data access.
type RecurringSeriesRepository interface {
	Create(ctx context.Context, series *model.RecurringSeries) error
	GetByID(ctx context.Context, id string) (*model.RecurringSeries, error)
	ListByStylist(ctx context.Context, stylistID string) ([]model.RecurringSeries, error)
	Update(ctx context.Context, series *model.RecurringSeries) error
	Delete(ctx context.Context, id string, deletedBy string) error
}

type recurringSeriesRepo struct {
	db *gorm.DB
}

// NewRecurringSeriesRepo creates a RecurringSeriesRepository.
func NewRecurringSeriesRepo(db *gorm.DB) RecurringSeriesRepository {
	return &recurringSeriesRepo{db: db}
}

func (r *recurringSeriesRepo) Create(ctx context.Context, series *model.RecurringSeries) error {
	return r.db.WithContext(ctx).Create(series).Error
}

func (r *recurringSeriesRepo) GetByID(ctx context.Context, id string) (*model.RecurringSeries, error) {
	var s model.RecurringSeries
	if err := r.db.WithContext(ctx).Where("series_id = ?", id).First(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *recurringSeriesRepo) ListByStylist(ctx context.Context, stylistID string) ([]model.RecurringSeries, error) {
	var series []model.RecurringSeries
	err := r.db.WithContext(ctx).
		Where("stylist_id = ?", stylistID).
		Order("start_date ASC").
		Find(&series).Error
	return series, err
}

func (r *recurringSeriesRepo) Update(ctx context.Context, series *model.RecurringSeries) error {
	return r.db.WithContext(ctx).Save(series).Error
}

func (r *recurringSeriesRepo) Delete(ctx context.Context, id string, deletedBy string) error {
	return r.db.WithContext(ctx).
		Model(&model.RecurringSeries{}).
		Where("series_id = ?", id).
		Updates(map[string]interface{}{
			"deleted_by": deletedBy,
			"deleted_at": gorm.Expr("NOW()"),
		}).Error
}
