package middleware

import (
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/denisAlshanov/learnoverse/internal/config"
	"github.com/denisAlshanov/learnoverse/internal/models"
	"github.com/denisAlshanov/learnoverse/internal/utils"
)

const visitorTTL = 5 * time.Minute

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// rateLimiter hands out a token bucket per client key and forgets keys that
// have been idle for longer than ttl.
type rateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	limit    rate.Limit
	burst    int
	ttl      time.Duration
	now      func() time.Time
}

// newRateLimiter allows requests events per window plus burst.
func newRateLimiter(requests int, window time.Duration, burst int, ttl time.Duration) *rateLimiter {
	if requests <= 0 {
		requests = 1
	}
	if window <= 0 {
		window = time.Minute
	}
	if burst <= 0 {
		burst = 1
	}

	return &rateLimiter{
		visitors: make(map[string]*visitor),
		limit:    rate.Every(window / time.Duration(requests)),
		burst:    burst,
		ttl:      ttl,
		now:      time.Now,
	}
}

func (rl *rateLimiter) isAllowed(key string) bool {
	if key == "" {
		key = "unknown"
	}

	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	for k, v := range rl.visitors {
		if now.Sub(v.lastSeen) > rl.ttl {
			delete(rl.visitors, k)
		}
	}

	v, ok := rl.visitors[key]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.visitors[key] = v
	}
	v.lastSeen = now

	return v.limiter.AllowN(now, 1)
}

func RateLimitMiddleware(cfg *config.APIConfig) gin.HandlerFunc {
	limiter := newRateLimiter(cfg.RateLimitRequests, cfg.RateLimitWindow, cfg.RateLimitBurst, visitorTTL)
	return rateLimitHandler(limiter)
}

func rateLimitHandler(limiter *rateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !limiter.isAllowed(c.ClientIP()) {
			appErr := utils.NewRateLimitError()
			utils.LogWarn(c.Request.Context(), "Rate limit exceeded", utils.Fields{"ip": c.ClientIP()})
			c.AbortWithStatusJSON(appErr.StatusCode, models.ErrorResponse{
				Success:   false,
				Message:   appErr.Message,
				RequestID: c.GetString("request_id"),
			})
			return
		}

		c.Next()
	}
}
