package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/pepeccz/atrevete-bot-sub002/internal/dto"
	"github.com/pepeccz/atrevete-bot-sub002/internal/repository"
	"github.com/pepeccz/atrevete-bot-sub002/pkg/jwt"
	"github.com/pepeccz/atrevete-bot-sub002/pkg/redis"
)

// ── Auth business errors ──

var (
	ErrInvalidCredentials = errors.New("credenciales no válidas")
	ErrUserNotFound       = errors.New("el usuario no existe")
	ErrTokenRevoked       = errors.New("el token ha sido revocado")
)

// AuthService dashboard authentication.
type AuthService interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	// Refresh exchanges a valid, unrevoked refresh token for a fresh pair.
	Refresh(ctx context.Context, refreshToken string) (*dto.TokenResponse, error)
	// Logout revokes the presented token's ID until its natural expiry.
	Logout(ctx context.Context, claims *jwt.Claims) error
	Me(ctx context.Context, userID string) (*dto.UserResponse, error)
}

type authService struct {
	repo           *repository.Repository
	jwtMgr         *jwt.Manager
	rdb            *redis.Client
	accessTokenTTL time.Duration
	logger         *zap.Logger
}

// NewAuthService creates an AuthService. rdb may be nil; revocation then
// degrades to expiry-only logout.
func NewAuthService(repo *repository.Repository, jwtMgr *jwt.Manager, rdb *redis.Client, accessTokenTTL time.Duration, logger *zap.Logger) AuthService {
	return &authService{repo: repo, jwtMgr: jwtMgr, rdb: rdb, accessTokenTTL: accessTokenTTL, logger: logger}
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	user, err := s.repo.User.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Same answer for unknown email and wrong password.
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		s.logger.Warn("login rejected", zap.String("email", req.Email))
		return nil, ErrInvalidCredentials
	}

	pair, err := s.issuePair(user.UserID, user.Role, user.StylistID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("user logged in", zap.String("user_id", user.UserID), zap.String("role", user.Role))
	return pair, nil
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (*dto.TokenResponse, error) {
	claims, err := s.jwtMgr.ParseToken(refreshToken)
	if err != nil {
		return nil, err
	}
	if claims.TokenType != "refresh" {
		return nil, jwt.ErrTokenInvalid
	}

	if s.rdb != nil {
		revoked, err := s.rdb.IsBlacklisted(ctx, claims.ID)
		if err != nil {
			s.logger.Warn("blacklist lookup failed", zap.Error(err))
		} else if revoked {
			return nil, ErrTokenRevoked
		}
	}

	// The account may have been disabled since the token was issued.
	user, err := s.repo.User.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	// One refresh token, one use: revoke the presented one.
	if s.rdb != nil && claims.ExpiresAt != nil {
		if err := s.rdb.BlacklistToken(ctx, claims.ID, time.Until(claims.ExpiresAt.Time)); err != nil {
			s.logger.Warn("refresh token revocation failed", zap.Error(err))
		}
	}

	return s.issuePair(user.UserID, user.Role, user.StylistID)
}

func (s *authService) Logout(ctx context.Context, claims *jwt.Claims) error {
	if s.rdb == nil || claims.ExpiresAt == nil {
		return nil
	}
	if err := s.rdb.BlacklistToken(ctx, claims.ID, time.Until(claims.ExpiresAt.Time)); err != nil {
		s.logger.Error("logout revocation failed", zap.String("user_id", claims.UserID), zap.Error(err))
		return err
	}
	return nil
}

func (s *authService) Me(ctx context.Context, userID string) (*dto.UserResponse, error) {
	user, err := s.repo.User.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &dto.UserResponse{
		ID:          user.UserID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
		Role:        user.Role,
		StylistID:   user.StylistID,
	}, nil
}

func (s *authService) issuePair(userID, role string, stylistID *string) (*dto.TokenResponse, error) {
	sid := ""
	if stylistID != nil {
		sid = *stylistID
	}
	access, err := s.jwtMgr.GenerateAccessToken(userID, role, sid)
	if err != nil {
		return nil, err
	}
	refresh, err := s.jwtMgr.GenerateRefreshToken(userID, role, sid)
	if err != nil {
		return nil, err
	}
	return &dto.TokenResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    int(s.accessTokenTTL.Seconds()),
	}, nil
}
