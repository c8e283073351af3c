package middleware

import (
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
)

const limiterIdleTTL = 10 * time.Minute

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter limita requisições por IP.
type RateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	limit    rate.Limit
	burst    int
	log      *zap.Logger
	now      func() time.Time
}

func NewRateLimiter(perMinute, burst int, log *zap.Logger) *RateLimiter {
	if perMinute <= 0 {
		perMinute = 60
	}
	if burst <= 0 {
		burst = 1
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &RateLimiter{
		visitors: make(map[string]*visitor),
		limit:    rate.Every(time.Minute / time.Duration(perMinute)),
		burst:    burst,
		log:      log,
		now:      time.Now,
	}
}

func (rl *RateLimiter) getLimiter(ip string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	v, ok := rl.visitors[ip]
	if !ok {
		rl.evict(now)
		v = &visitor{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.visitors[ip] = v
	}
	v.lastSeen = now
	return v.limiter
}

// evict remove IPs parados há mais de limiterIdleTTL.
func (rl *RateLimiter) evict(now time.Time) {
	for ip, v := range rl.visitors {
		if now.Sub(v.lastSeen) > limiterIdleTTL {
			delete(rl.visitors, ip)
		}
	}
}

func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		if !rl.getLimiter(ip).Allow() {
			rl.log.Warn("rate limit exceeded", zap.String("ip", ip), zap.String("path", c.FullPath()))
			httperr.TooManyRequests(c, "rate_limited", "Muitas requisições. Tente novamente em instantes.")
			c.Abort()
			return
		}
		c.Next()
	}
}
