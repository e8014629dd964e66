package middleware

import (
	"net/http"
	"time"

	"event-management-api/internal/ratelimit"
	"event-management-api/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RateLimit rejects clients exceeding limit hits per window, keyed by
// client IP and route path. A failing store lets the request through:
// registration availability wins over strict limiting.
func RateLimit(store ratelimit.Store, limit int64, window time.Duration) gin.HandlerFunc {
	log := logger.WithComponent("ratelimit")

	return func(c *gin.Context) {
		key := c.ClientIP() + ":" + c.FullPath()

		count, err := store.Incr(c.Request.Context(), key, window)
		if err != nil {
			log.Warn("rate limit store unavailable", zap.Error(err))
			c.Next()
			return
		}

		if count > limit {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "Too many requests",
			})
			return
		}

		c.Next()
	}
}
