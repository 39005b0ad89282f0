package middleware

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

// RateLimiter bounds requests per client IP on the routes it wraps. With a
// redis client the counters are shared across instances (fixed window via
// INCR+EXPIRE); without one it degrades to per-process token buckets.
type RateLimiter struct {
	client *redis.Client
	limit  int
	window time.Duration

	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

func NewRateLimiter(client *redis.Client, limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		client:   client,
		limit:    limit,
		window:   window,
		limiters: make(map[string]*rate.Limiter),
	}
}

func (rl *RateLimiter) Middleware(name string) gin.HandlerFunc {
	return func(c *gin.Context) {
		allowed, err := rl.allow(c, name, c.ClientIP())
		if err != nil {
			// limiter backend failure should not take the route down
			c.Next()
			return
		}
		if !allowed {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "too many requests, slow down"})
			c.Abort()
			return
		}
		c.Next()
	}
}

func (rl *RateLimiter) allow(c *gin.Context, name, ip string) (bool, error) {
	if rl.client == nil {
		return rl.allowLocal(ip), nil
	}

	key := fmt.Sprintf("ratelimit:%s:%s", name, ip)
	count, err := rl.client.Incr(c.Request.Context(), key).Result()
	if err != nil {
		return false, err
	}
	if count == 1 {
		rl.client.Expire(c.Request.Context(), key, rl.window)
	}
	return count <= int64(rl.limit), nil
}

func (rl *RateLimiter) allowLocal(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	limiter, ok := rl.limiters[ip]
	if !ok {
		limiter = rate.NewLimiter(rate.Every(rl.window/time.Duration(rl.limit)), rl.limit)
		rl.limiters[ip] = limiter
	}
	return limiter.Allow()
}
