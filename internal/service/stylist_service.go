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
	"github.com/pepeccz/atrevete-bot-sub002/pkg/redis"
)

// StylistService stylist management plus the cached conversational context
// the WhatsApp flow reads on every message.
type StylistService interface {
	Create(ctx context.Context, req *dto.CreateStylistRequest, callerID string) (*dto.StylistResponse, error)
	GetByID(ctx context.Context, id string) (*dto.StylistResponse, error)
	List(ctx context.Context, includeInactive bool) ([]dto.StylistResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateStylistRequest, callerID string) (*dto.StylistResponse, error)
	Delete(ctx context.Context, id string, callerID string) error
	// Context returns the lightweight stylist snapshot, served from the TTL
	// cache when warm. A cold or disabled cache falls through to the
	// database.
	Context(ctx context.Context, id string) (*dto.StylistContext, error)
}

type stylistService struct {
	repo   *repository.Repository
	cache  *redis.ContextCache
	logger *zap.Logger
}

// NewStylistService creates a StylistService.
func NewStylistService(repo *repository.Repository, cache *redis.ContextCache, logger *zap.Logger) StylistService {
	return &stylistService{repo: repo, cache: cache, logger: logger}
}

func (s *stylistService) Create(ctx context.Context, req *dto.CreateStylistRequest, callerID string) (*dto.StylistResponse, error) {
	stylist := &model.Stylist{
		DisplayName: req.DisplayName,
		Phone:       req.Phone,
		Color:       req.Color,
		IsActive:    true,
	}
	stylist.CreatedBy = &callerID
	stylist.UpdatedBy = &callerID

	if err := s.repo.Stylist.Create(ctx, stylist); err != nil {
		s.logger.Error("create stylist failed", zap.Error(err))
		return nil, err
	}
	return toStylistResponse(stylist), nil
}

func (s *stylistService) GetByID(ctx context.Context, id string) (*dto.StylistResponse, error) {
	stylist, err := s.repo.Stylist.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStylistNotFound
		}
		return nil, err
	}
	return toStylistResponse(stylist), nil
}

func (s *stylistService) List(ctx context.Context, includeInactive bool) ([]dto.StylistResponse, error) {
	stylists, err := s.repo.Stylist.List(ctx, includeInactive)
	if err != nil {
		s.logger.Error("list stylists failed", zap.Error(err))
		return nil, err
	}
	result := make([]dto.StylistResponse, 0, len(stylists))
	for i := range stylists {
		result = append(result, *toStylistResponse(&stylists[i]))
	}
	return result, nil
}

func (s *stylistService) Update(ctx context.Context, id string, req *dto.UpdateStylistRequest, callerID string) (*dto.StylistResponse, error) {
	stylist, err := s.repo.Stylist.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStylistNotFound
		}
		return nil, err
	}

	if req.DisplayName != nil {
		stylist.DisplayName = *req.DisplayName
	}
	if req.Phone != nil {
		stylist.Phone = *req.Phone
	}
	if req.Color != nil {
		stylist.Color = *req.Color
	}
	if req.IsActive != nil {
		stylist.IsActive = *req.IsActive
	}
	stylist.UpdatedBy = &callerID

	if err := s.repo.Stylist.Update(ctx, stylist); err != nil {
		s.logger.Error("update stylist failed", zap.String("stylist_id", id), zap.Error(err))
		return nil, err
	}
	s.invalidateContext(ctx, id)
	return toStylistResponse(stylist), nil
}

func (s *stylistService) Delete(ctx context.Context, id string, callerID string) error {
	if _, err := s.repo.Stylist.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrStylistNotFound
		}
		return err
	}
	if err := s.repo.Stylist.Delete(ctx, id, callerID); err != nil {
		s.logger.Error("delete stylist failed", zap.String("stylist_id", id), zap.Error(err))
		return err
	}
	s.invalidateContext(ctx, id)
	return nil
}

func (s *stylistService) Context(ctx context.Context, id string) (*dto.StylistContext, error) {
	var cached dto.StylistContext
	if err := s.cache.Get(ctx, id, &cached); err == nil {
		return &cached, nil
	} else if !errors.Is(err, redis.ErrCacheMiss) {
		// A broken cache degrades to the database, it never fails the read.
		s.logger.Warn("stylist context cache read failed", zap.String("stylist_id", id), zap.Error(err))
	}

	stylist, err := s.repo.Stylist.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStylistNotFound
		}
		return nil, err
	}

	sc := &dto.StylistContext{
		ID:          stylist.StylistID,
		DisplayName: stylist.DisplayName,
		Color:       stylist.Color,
		IsActive:    stylist.IsActive,
	}
	if err := s.cache.Set(ctx, id, sc); err != nil {
		s.logger.Warn("stylist context cache write failed", zap.String("stylist_id", id), zap.Error(err))
	}
	return sc, nil
}

func (s *stylistService) invalidateContext(ctx context.Context, id string) {
	if err := s.cache.Invalidate(ctx, id); err != nil {
		s.logger.Warn("stylist context cache invalidate failed", zap.String("stylist_id", id), zap.Error(err))
	}
}

func toStylistResponse(stylist *model.Stylist) *dto.StylistResponse {
	return &dto.StylistResponse{
		ID:          stylist.StylistID,
		DisplayName: stylist.DisplayName,
		Phone:       stylist.Phone,
		Color:       stylist.Color,
		IsActive:    stylist.IsActive,
		CreatedAt:   stylist.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   stylist.UpdatedAt.Format(time.RFC3339),
	}
}
