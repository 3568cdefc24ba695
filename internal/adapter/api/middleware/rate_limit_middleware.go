package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"sharebin/internal/infrastructure/ratelimit"
	"sharebin/pkg/logger"
)

type RateLimitMiddleware struct {
	limiter *ratelimit.RateLimiter
}

func NewRateLimitMiddleware(limiter *ratelimit.RateLimiter) *RateLimitMiddleware {
	return &RateLimitMiddleware{limiter: limiter}
}

// Limit throttles the named action per caller. Authenticated requests
// are keyed by user ID, anonymous ones by IP.
func (m *RateLimitMiddleware) Limit(action string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key := c.RealIP()
			if uid, ok := c.Get("uid").(string); ok && uid != "" {
				key = uid
			}

			allowed, retryAfter := m.limiter.Allow(key, action)
			if !allowed {
				logger.Warn("Rate limit hit for %s on %s", key, action)
				return c.JSON(http.StatusTooManyRequests, map[string]interface{}{
					"error":       "Rate limit exceeded",
					"retry_after": int(retryAfter.Seconds()),
				})
			}
			return next(c)
		}
	}
}
