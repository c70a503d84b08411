// Package middleware carries the HTTP cross-cutting concerns: rate limiting,
// request-size capping and security headers.
package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"infraghost/backend/internal/logger"
)

// RateLimiter applies fixed-window per-client limits backed by redis, so the
// window survives restarts and is shared across replicas.
type RateLimiter struct {
	Redis  *redis.Client
	Window time.Duration
}

// NewRateLimiter creates a limiter with the given window.
func NewRateLimiter(rdb *redis.Client, window time.Duration) *RateLimiter {
	return &RateLimiter{Redis: rdb, Window: window}
}

// Limit caps requests per client IP within the window for one scope. Over the
// cap the request is rejected with 429. If redis is unreachable the request
// passes; availability wins over throttling here.
func (rl *RateLimiter) Limit(scope string, max int, message string) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := "ratelimit:" + scope + ":" + c.ClientIP()
		ctx := c.Request.Context()

		count, err := rl.Redis.Incr(ctx, key).Result()
		if err != nil {
			logger.Log.Warnf("rate limiter unavailable: %v", err)
			c.Next()
			return
		}
		if count == 1 {
			if err := rl.Redis.Expire(ctx, key, rl.Window).Err(); err != nil {
				// Without a TTL the counter would outlive the window and
				// throttle the client forever. Drop it and let the request
				// through; availability wins over throttling here too.
				logger.Log.Warnf("rate limiter expire failed: %v", err)
				rl.Redis.Del(ctx, key)
				c.Next()
				return
			}
		}
		if count > int64(max) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": message})
			return
		}
		c.Next()
	}
}
