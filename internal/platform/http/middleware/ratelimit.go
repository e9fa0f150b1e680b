package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"account_backend/internal/shared/ratelimiter"
)

// RateLimitPerIP rejects requests once the client IP has exhausted its bucket.
func RateLimitPerIP(limiter *ratelimiter.KeyedLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limiter.Allow(c.ClientIP()) {
			c.Next()
			return
		}
		c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too many requests"})
	}
}
