package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pepeccz/atrevete-bot-sub002/internal/model"
)

// BusinessHoursRepository per-weekday opening configuration data access.
type BusinessHoursRepository interface {
	ListAll(ctx context.Context) ([]model.BusinessHours, error)
	GetByWeekday(ctx context.Context, weekdayIndex int) (*model.BusinessHours, error)
	// Upsert writes the configuration row for its weekday, replacing any
	// existing one.
	Upsert(ctx context.Context, hours *model.BusinessHours) error
}

type businessHoursRepo struct {
	db *gorm.DB
}

// NewBusinessHoursRepo creates a BusinessHoursRepository.
func NewBusinessHoursRepo(db *gorm.DB) BusinessHoursRepository {
	return &businessHoursRepo{db: db}
}

func (r *businessHoursRepo) ListAll(ctx context.Context) ([]model.BusinessHours, error) {
	var rows []model.BusinessHours
	err := r.db.WithContext(ctx).Order("weekday_index ASC").Find(&rows).Error
	return rows, err
}

func (r *businessHoursRepo) GetByWeekday(ctx context.Context, weekdayIndex int) (*model.BusinessHours, error) {
	var row model.BusinessHours
	if err := r.db.WithContext(ctx).Where("weekday_index = ?", weekdayIndex).First(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *businessHoursRepo) Upsert(ctx context.Context, hours *model.BusinessHours) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "weekday_index"}},
			DoUpdates: clause.AssignmentColumns([]string{"is_closed", "open_time", "close_time", "updated_at", "updated_by"}),
		}).
		Create(hours).Error
}
