package middleware

import (
	"math"
	"net/http"
	"strconv"

	"github.com/osa911/contactform/internal/api/dto/common"
	"github.com/osa911/contactform/internal/metrics"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// RateLimitConfig defines configuration for the process-wide burst guard.
// Per-client limits are enforced by the contact pipeline itself.
type RateLimitConfig struct {
	// Requests per second
	RPS float64
	// Burst size (number of requests that can be made in a single burst)
	Burst int
}

// RateLimitMiddleware rejects requests once the shared token bucket is empty
func RateLimitMiddleware(config RateLimitConfig, m *metrics.Metrics) gin.HandlerFunc {
	limiter := rate.NewLimiter(rate.Limit(config.RPS), config.Burst)

	return func(c *gin.Context) {
		r := limiter.Reserve()
		if !r.OK() {
			m.IncrementGlobalThrottled()
			abortThrottled(c, 1)
			return
		}
		if delay := r.Delay(); delay > 0 {
			// Give the token back, the caller is told to retry instead
			r.Cancel()
			m.IncrementGlobalThrottled()
			abortThrottled(c, int(math.Ceil(delay.Seconds())))
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(config.Burst))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(int(limiter.Tokens())))

		c.Next()
	}
}

func abortThrottled(c *gin.Context, retryAfter int) {
	if retryAfter < 1 {
		retryAfter = 1
	}
	c.Header("Retry-After", strconv.Itoa(retryAfter))
	c.AbortWithStatusJSON(http.StatusTooManyRequests, common.NewRateLimitResponse("Rate limit exceeded. Please try again later.", retryAfter))
}
