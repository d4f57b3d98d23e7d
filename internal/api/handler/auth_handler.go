package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/pepeccz/atrevete-bot-sub002/internal/dto"
	"github.com/pepeccz/atrevete-bot-sub002/internal/service"
	"github.com/pepeccz/atrevete-bot-sub002/pkg/jwt"
	"github.com/pepeccz/atrevete-bot-sub002/pkg/response"
)

// AuthHandler dashboard authentication endpoints.
type AuthHandler struct {
	authSvc service.AuthService
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(authSvc service.AuthService) *AuthHandler {
	return &AuthHandler{authSvc: authSvc}
}

// Login issues a token pair.
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "parámetros no válidos")
		return
	}

	pair, err := h.authSvc.Login(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			response.Unauthorized(c, 11001, service.ErrInvalidCredentials.Error())
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, pair)
}

// Refresh exchanges a refresh token for a fresh pair.
// POST /api/v1/auth/refresh
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req dto.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "parámetros no válidos")
		return
	}

	pair, err := h.authSvc.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired), errors.Is(err, jwt.ErrTokenInvalid),
			errors.Is(err, service.ErrTokenRevoked), errors.Is(err, service.ErrUserNotFound):
			response.Unauthorized(c, 11002, "token de refresco no válido")
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, pair)
}

// Logout revokes the presented access token.
// POST /api/v1/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	v, exists := c.Get("claims")
	if !exists {
		response.Unauthorized(c, 10002, "no autenticado")
		return
	}
	claims, ok := v.(*jwt.Claims)
	if !ok {
		response.Unauthorized(c, 10002, "no autenticado")
		return
	}

	if err := h.authSvc.Logout(c.Request.Context(), claims); err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, nil)
}

// Me returns the authenticated account.
// GET /api/v1/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	me, err := h.authSvc.Me(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.NotFound(c, 11003, service.ErrUserNotFound.Error())
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, me)
}
