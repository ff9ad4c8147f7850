package middleware

import (
	"strconv"

	"stream-gateway/internal/redis"
	gateway_errors "stream-gateway/pkg/errors"
	"stream-gateway/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RateLimitMiddleware limits requests per client IP within scope. A nil
// limiter disables limiting. Limiter failures let the request through.
func RateLimitMiddleware(limiter *redis.RateLimiter, scope redis.Scope, l *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limiter == nil {
			c.Next()
			return
		}

		result, err := limiter.Allow(c.Request.Context(), scope, c.ClientIP())
		if err != nil {
			if l != nil {
				l.WithContext(c.Request.Context()).Warn("rate limiter unavailable",
					zap.String("scope", string(scope)),
					zap.Error(err),
				)
			}
			c.Next()
			return
		}

		setRateLimitHeaders(c, result)

		if !result.Allowed {
			_ = c.Error(gateway_errors.ErrRateLimited)
			c.Abort()
			return
		}

		c.Next()
	}
}

// setRateLimitHeaders sets standard rate limit response headers
func setRateLimitHeaders(c *gin.Context, result *redis.RateLimitResult) {
	c.Header("X-RateLimit-Limit", strconv.Itoa(result.Limit))
	c.Header("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))
	c.Header("X-RateLimit-Reset", strconv.FormatInt(int64(result.ResetIn.Seconds()), 10))
}
