package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/pepeccz/atrevete-bot-sub002/pkg/jwt"
	"github.com/pepeccz/atrevete-bot-sub002/pkg/redis"
	"github.com/pepeccz/atrevete-bot-sub002/pkg/response"
)

// JWTAuth extracts and verifies the access token from
// Authorization: Bearer <token>, then rejects revoked token IDs. A nil rdb
// skips the revocation check.
func JWTAuth(jwtMgr *jwt.Manager, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, 10002, "falta la cabecera de autenticación")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Unauthorized(c, 10002, "cabecera de autenticación no válida")
			c.Abort()
			return
		}

		claims, err := jwtMgr.ParseToken(parts[1])
		if err != nil {
			response.Unauthorized(c, 10002, "token no válido o caducado")
			c.Abort()
			return
		}

		if claims.TokenType != "access" {
			response.Unauthorized(c, 10002, "tipo de token no válido")
			c.Abort()
			return
		}

		if rdb != nil {
			revoked, err := rdb.IsBlacklisted(c.Request.Context(), claims.ID)
			if err == nil && revoked {
				response.Unauthorized(c, 10002, "el token ha sido revocado")
				c.Abort()
				return
			}
			// A redis outage degrades to expiry-only validation.
		}

		c.Set("user_id", claims.UserID)
		c.Set("role", claims.Role)
		c.Set("stylist_id", claims.StylistID)
		c.Set("claims", claims)

		c.Next()
	}
}

// RoleAuth allows only the listed roles through.
func RoleAuth(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("role")
		if !exists {
			response.Unauthorized(c, 10002, "no autenticado")
			c.Abort()
			return
		}

		userRole := role.(string)
		for _, r := range allowedRoles {
			if userRole == r {
				c.Next()
				return
			}
		}

		response.Forbidden(c, 10003, "acceso no permitido")
		c.Abort()
	}
}
