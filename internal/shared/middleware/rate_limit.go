package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

// FormRateLimiter throttles state-changing requests per client IP.
type FormRateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*visitor
	limit    rate.Limit
	burst    int
	idleTTL  time.Duration
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func NewFormRateLimiter(perSecond float64, burst int) *FormRateLimiter {
	return &FormRateLimiter{
		limiters: make(map[string]*visitor),
		limit:    rate.Limit(perSecond),
		burst:    burst,
		idleTTL:  10 * time.Minute,
	}
}

// Allow reports whether key may proceed now.
func (l *FormRateLimiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	v, ok := l.limiters[key]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.limiters[key] = v
	}
	v.lastSeen = now

	// Sweep idle visitors once the map grows large.
	if len(l.limiters) > 1024 {
		for k, other := range l.limiters {
			if now.Sub(other.lastSeen) > l.idleTTL {
				delete(l.limiters, k)
			}
		}
	}
	return v.limiter.Allow()
}

// Middleware limits POST requests; reads pass through untouched.
func (l *FormRateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodPost {
			c.Next()
			return
		}
		if !l.Allow(c.ClientIP()) {
			log.Warn().
				Str("request_id", c.GetString("request_id")).
				Str("ip", c.ClientIP()).
				Str("path", c.Request.URL.Path).
				Msg("form submission rate limited")
			c.String(http.StatusTooManyRequests, "Too many submissions, slow down.")
			c.Abort()
			return
		}
		c.Next()
	}
}
