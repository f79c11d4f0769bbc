package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"go-studio-backend/config"
	"go-studio-backend/internal/delivery/http/response"
	"go-studio-backend/pkg/logger"
	"go-studio-backend/pkg/ratelimit"

	"github.com/gin-gonic/gin"
)

// RateLimitConfig holds configuration for rate limiting
type RateLimitConfig struct {
	// Requests per window
	Limit int
	// Time window duration
	Window time.Duration
	// Custom key extractor (default: IP-based)
	KeyFunc func(*gin.Context) string
	// Key prefix so multiple limiters can share one store
	KeyPrefix string
}

// ContactRateLimitConfig returns the submission limit for the public contact
// endpoint: 5 per rolling hour per client IP by default
func ContactRateLimitConfig(cfg *config.Config) RateLimitConfig {
	return RateLimitConfig{
		Limit:     cfg.RateLimitContactThreshold,
		Window:    time.Duration(cfg.RateLimitWindowSeconds) * time.Second,
		KeyPrefix: "rl:contact:",
		KeyFunc: func(c *gin.Context) string {
			return c.ClientIP()
		},
	}
}

// RateLimit creates a rate limiting middleware backed by the given store.
// When the store errors (e.g. Redis unavailable) the middleware fails open
// onto a process-local fallback so the public endpoint stays reachable.
func RateLimit(store ratelimit.Store, config RateLimitConfig) gin.HandlerFunc {
	if config.KeyFunc == nil {
		config.KeyFunc = func(c *gin.Context) string { return c.ClientIP() }
	}

	limiter := ratelimit.NewLimiter(store, config.Limit, config.Window, config.KeyPrefix)

	var fallbackOnce sync.Once
	var fallback *ratelimit.Limiter

	return func(c *gin.Context) {
		identity := config.KeyFunc(c)

		result, err := limiter.Allow(c.Request.Context(), identity)
		if err != nil {
			logger.Log.Warn("rate limit store error, using in-memory fallback", "error", err)
			fallbackOnce.Do(func() {
				fallback = ratelimit.NewLimiter(ratelimit.NewMemoryStore(), config.Limit, config.Window, config.KeyPrefix)
			})
			result, _ = fallback.Allow(c.Request.Context(), identity)
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(config.Limit))
		c.Header("X-RateLimit-Reset", result.ResetAt.Format(time.RFC3339))

		if !result.Allowed {
			retryAfter := int(time.Until(result.ResetAt).Seconds())
			if retryAfter < 1 {
				retryAfter = 1
			}
			c.Header("X-RateLimit-Remaining", "0")
			c.Header("Retry-After", strconv.Itoa(retryAfter))

			logger.Log.Info("rate limit exceeded", "client_ip", c.ClientIP(), "path", c.FullPath())

			response.Error(c, http.StatusTooManyRequests, "Too many submissions. Please try again later.")
			c.Abort()
			return
		}

		remaining := config.Limit - result.Count
		if remaining < 0 {
			remaining = 0
		}
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))

		c.Next()
	}
}
