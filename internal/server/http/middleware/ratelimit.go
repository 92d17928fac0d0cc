package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/prizelab/giveawayd/internal/ratelimit"
)

const rateLimitWindow = time.Minute

// RateLimit throttles clients to perMinute requests per minute. Requests are
// keyed by authenticated user when available, by client address otherwise.
// Store failures let the request through rather than taking the API down.
func RateLimit(store ratelimit.Store, perMinute int, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if perMinute <= 0 {
			c.Next()
			return
		}

		count, err := store.Incr(c.Request.Context(), rateLimitKey(c), rateLimitWindow)
		if err != nil {
			logger.Warn("rate limit store unavailable", "error", err)
			c.Next()
			return
		}
		if count > int64(perMinute) {
			c.Header("Retry-After", "60")
			c.AbortWithStatus(http.StatusTooManyRequests)
			return
		}
		c.Next()
	}
}

func rateLimitKey(c *gin.Context) string {
	if val, ok := c.Get(UserIDContextKey); ok {
		if id, ok := val.(int64); ok {
			return fmt.Sprintf("rl:user:%d", id)
		}
	}
	return "rl:addr:" + c.ClientIP()
}
