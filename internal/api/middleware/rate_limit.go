package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pepeccz/atrevete-bot-sub002/pkg/redis"
	"github.com/pepeccz/atrevete-bot-sub002/pkg/response"
)

// RateLimit bounds requests per client IP and route over a sliding window.
// A nil client or a redis failure lets traffic through, same degraded mode
// as JWTAuth.
func RateLimit(rdb *redis.Client, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rdb == nil {
			c.Next()
			return
		}

		key := fmt.Sprintf("%s:%s", c.ClientIP(), c.FullPath())
		allowed, err := rdb.CheckRateLimit(c.Request.Context(), key, limit, window)
		if err != nil {
			c.Next()
			return
		}

		if !allowed {
			response.Error(c, http.StatusTooManyRequests, 10004, "demasiadas solicitudes, inténtalo más tarde")
			c.Abort()
			return
		}

		c.Next()
	}
}
