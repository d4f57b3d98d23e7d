package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/pepeccz/atrevete-bot-sub002/internal/service"
	"github.com/pepeccz/atrevete-bot-sub002/pkg/response"
)

// MustGetUserID extracts user_id from the Gin context. When the JWT
// middleware did not inject it, writes a 401 and returns false; the caller
// should return immediately.
func MustGetUserID(c *gin.Context) (string, bool) {
	v, exists := c.Get("user_id")
	if !exists {
		response.Unauthorized(c, 10002, "no autenticado")
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		response.Unauthorized(c, 10002, "no autenticado")
		return "", false
	}
	return s, true
}

// MustGetRole extracts role from the Gin context.
func MustGetRole(c *gin.Context) (string, bool) {
	v, exists := c.Get("role")
	if !exists {
		response.Unauthorized(c, 10002, "no autenticado")
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		response.Unauthorized(c, 10002, "no autenticado")
		return "", false
	}
	return s, true
}

// handleValidationError writes business validation failures as 422 with
// their localized reason. Returns false when err is not a ValidationError.
func handleValidationError(c *gin.Context, err error) bool {
	var vErr *service.ValidationError
	if errors.As(err, &vErr) {
		response.UnprocessableEntity(c, 42200, vErr.Reason)
		return true
	}
	return false
}
