// internal/api/middleware/ratelimit.go
package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/BigDaddyAman/webhook-catcher/internal/constants"
	"github.com/BigDaddyAman/webhook-catcher/internal/ratelimit"
	"github.com/gin-gonic/gin"
)

func RateLimitMiddleware(rl *ratelimit.RateLimiter, key string, limit int, window time.Duration) gin.HandlerFunc {
	// No limiter configured, skip rate limiting
	if rl == nil {
		return func(c *gin.Context) {
			c.Next()
		}
	}

	return func(c *gin.Context) {
		allowed, count, err := rl.Allow(key, limit, window)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Rate limit check failed"})
			c.Abort()
			return
		}

		// Set rate limit headers
		c.Header("X-RateLimit-Limit", fmt.Sprintf("%d", limit))
		c.Header("X-RateLimit-Remaining", fmt.Sprintf("%d", limit-count))
		c.Header("X-RateLimit-Reset", fmt.Sprintf("%d", time.Now().Add(window).Unix()))

		if !allowed {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":       "Rate limit exceeded",
				"retry_after": window.Seconds(),
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

// Specific rate limit middlewares
func IngestRateLimit(rl *ratelimit.RateLimiter) gin.HandlerFunc {
	return RateLimitMiddleware(rl, "global:ingest", constants.IngestLimit, time.Minute)
}

func AdminRateLimit(rl *ratelimit.RateLimiter) gin.HandlerFunc {
	return RateLimitMiddleware(rl, "global:admin", constants.AdminLimit, time.Minute)
}
