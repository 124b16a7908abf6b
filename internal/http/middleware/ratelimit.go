package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

type limiterEntry struct {
	l        *rate.Limiter
	lastSeen time.Time
}

// LimiterPool hands out one token bucket per key. Idle keys are evicted by Sweep.
type LimiterPool struct {
	mu    sync.Mutex
	m     map[string]*limiterEntry
	rps   rate.Limit
	burst int
	now   func() time.Time
}

func NewLimiterPool(rps float64, burst int) *LimiterPool {
	if rps <= 0 {
		rps = 5
	}
	if burst <= 0 {
		burst = 20
	}
	return &LimiterPool{
		m:     make(map[string]*limiterEntry),
		rps:   rate.Limit(rps),
		burst: burst,
		now:   time.Now,
	}
}

func (p *LimiterPool) Allow(key string) bool {
	p.mu.Lock()
	e, ok := p.m[key]
	if !ok {
		e = &limiterEntry{l: rate.NewLimiter(p.rps, p.burst)}
		p.m[key] = e
	}
	now := p.now()
	e.lastSeen = now
	p.mu.Unlock()
	return e.l.AllowN(now, 1)
}

// Sweep drops keys not seen within ttl and returns how many remain.
func (p *LimiterPool) Sweep(ttl time.Duration) int {
	cutoff := p.now().Add(-ttl)
	p.mu.Lock()
	defer p.mu.Unlock()
	for k, e := range p.m {
		if e.lastSeen.Before(cutoff) {
			delete(p.m, k)
		}
	}
	return len(p.m)
}

// RunSweeper evicts idle keys every period until stop is closed.
func (p *LimiterPool) RunSweeper(period, ttl time.Duration, stop <-chan struct{}) {
	ticker := time.NewTicker(period)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			p.Sweep(ttl)
		case <-stop:
			return
		}
	}
}

// RateLimit throttles mutating requests per signed-in user, falling back to the client IP.
// It must run after the auth middleware to see the user.
func RateLimit(pool *LimiterPool) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := "ip:" + c.ClientIP()
		if userID := UserID(c.Request.Context()); userID != 0 {
			key = "user:" + strconv.FormatInt(userID, 10)
		}
		if !pool.Allow(key) {
			c.Header("Retry-After", "1")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too many requests"})
			return
		}
		c.Next()
	}
}
