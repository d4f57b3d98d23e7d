package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/pepeccz/atrevete-bot-sub002/internal/model"
)

// StylistRepository stylist data access.
type StylistRepository interface {
	Create(ctx context.Context, stylist *model.Stylist) error
	GetByID(ctx context.Context, id string) (*model.Stylist, error)
	List(ctx context.Context, includeInactive bool) ([]model.Stylist, error)
	Update(ctx context.Context, stylist *model.Stylist) error
	Delete(ctx context.Context, id string, deletedBy string) error
}

type stylistRepo struct {
	db *gorm.DB
}

// NewStylistRepo creates a StylistRepository.
func NewStylistRepo(db *gorm.DB) StylistRepository {
	return &stylistRepo{db: db}
}

func (r *stylistRepo) Create(ctx context.Context, stylist *model.Stylist) error {
	return r.db.WithContext(ctx).Create(stylist).Error
}

func (r *stylistRepo) GetByID(ctx context.Context, id string) (*model.Stylist, error) {
	var s model.Stylist
	if err := r.db.WithContext(ctx).Where("stylist_id = ?", id).First(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *stylistRepo) List(ctx context.Context, includeInactive bool) ([]model.Stylist, error) {
	var stylists []model.Stylist
	q := r.db.WithContext(ctx).Order("display_name ASC")
	if !includeInactive {
		q = q.Where("is_active = TRUE")
	}
	err := q.Find(&stylists).Error
	return stylists, err
}

func (r *stylistRepo) Update(ctx context.Context, stylist *model.Stylist) error {
	return r.db.WithContext(ctx).Save(stylist).Error
}

func (r *stylistRepo) Delete(ctx context.Context, id string, deletedBy string) error {
	return r.db.WithContext(ctx).
		Model(&model.Stylist{}).
		Where("stylist_id = ?", id).
		Updates(map[string]interface{}{
			"deleted_by": deletedBy,
			"deleted_at": gorm.Expr("NOW()"),
		}).Error
}
