package api

import (
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/nekogravitycat/shareit-backend/internal/metrics"
)

// limiterIdleTTL is how long a client's bucket survives without requests.
const limiterIdleTTL = 10 * time.Minute

type limiterEntry struct {
	lim      *rate.Limiter
	lastSeen atomic.Int64 // unix nanos
}

type rateLimiter struct {
	limiters sync.Map // map[string]*limiterEntry
	rps      float64
	burst    int
	idleTTL  time.Duration
	now      func() time.Time

	lastSweep atomic.Int64
}

func newRateLimiter(rps float64, burst int) *rateLimiter {
	l := &rateLimiter{
		rps:     rps,
		burst:   burst,
		idleTTL: limiterIdleTTL,
		now:     time.Now,
	}
	l.lastSweep.Store(l.now().UnixNano())
	return l
}

func (l *rateLimiter) getLimiter(key string) *rate.Limiter {
	now := l.now()
	l.sweep(now)

	if v, ok := l.limiters.Load(key); ok {
		if e, ok := v.(*limiterEntry); ok {
			e.lastSeen.Store(now.UnixNano())
			return e.lim
		}
	}

	burst := l.burst
	if burst <= 0 {
		burst = 5
	}

	e := &limiterEntry{lim: rate.NewLimiter(rate.Limit(l.rps), burst)}
	e.lastSeen.Store(now.UnixNano())
	actual, loaded := l.limiters.LoadOrStore(key, e)
	if loaded {
		if actualEntry, ok := actual.(*limiterEntry); ok {
			actualEntry.lastSeen.Store(now.UnixNano())
			return actualEntry.lim
		}
	}
	return e.lim
}

// sweep drops buckets idle for longer than idleTTL. It runs at most once per idleTTL.
func (l *rateLimiter) sweep(now time.Time) {
	last := l.lastSweep.Load()
	if now.UnixNano()-last < int64(l.idleTTL) {
		return
	}
	if !l.lastSweep.CompareAndSwap(last, now.UnixNano()) {
		return
	}

	cutoff := now.Add(-l.idleTTL).UnixNano()
	l.limiters.Range(func(k, v any) bool {
		if e, ok := v.(*limiterEntry); ok && e.lastSeen.Load() < cutoff {
			l.limiters.Delete(k)
		}
		return true
	})
}

func (l *rateLimiter) size() int {
	n := 0
	l.limiters.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}

// RateLimit throttles callers by client address. A non-positive rps disables it.
func RateLimit(rps float64, burst int) gin.HandlerFunc {
	if rps <= 0 {
		return func(c *gin.Context) { c.Next() }
	}
	return newRateLimiter(rps, burst).middleware()
}

func (l *rateLimiter) middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !l.getLimiter(c.ClientIP()).Allow() {
			metrics.IncRateLimited()
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			return
		}
		c.Next()
	}
}
