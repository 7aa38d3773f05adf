package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/kasuganosora/topdownrpg/sim/config"
)

const (
	limiterIdle  = 10 * time.Minute
	limiterSweep = 5 * time.Minute
)

type ipLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// limiterSet holds one token bucket per client IP.
type limiterSet struct {
	mu    sync.Mutex
	r     rate.Limit
	b     int
	byIP  map[string]*ipLimiter
	clock func() time.Time
}

func newLimiterSet(r rate.Limit, b int) *limiterSet {
	return &limiterSet{r: r, b: b, byIP: make(map[string]*ipLimiter), clock: time.Now}
}

func (s *limiterSet) allow(ip string) bool {
	s.mu.Lock()
	il, ok := s.byIP[ip]
	if !ok {
		il = &ipLimiter{limiter: rate.NewLimiter(s.r, s.b)}
		s.byIP[ip] = il
	}
	il.lastSeen = s.clock()
	s.mu.Unlock()
	return il.limiter.Allow()
}

// prune drops buckets idle since before cutoff and returns how many remain.
func (s *limiterSet) prune(cutoff time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	for ip, il := range s.byIP {
		if il.lastSeen.Before(cutoff) {
			delete(s.byIP, ip)
		}
	}
	return len(s.byIP)
}

// RateLimit provides per-IP token-bucket rate limiting.
// r = requests per second, b = burst size.
func RateLimit(r rate.Limit, b int) gin.HandlerFunc {
	set := newLimiterSet(r, b)

	go func() {
		ticker := time.NewTicker(limiterSweep)
		defer ticker.Stop()
		for now := range ticker.C {
			set.prune(now.Add(-limiterIdle))
		}
	}()

	return func(c *gin.Context) {
		if !set.allow(c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			return
		}
		c.Next()
	}
}

// RateLimitFromConfig applies the security section's limits.
func RateLimitFromConfig(cfg config.SecurityConfig) gin.HandlerFunc {
	return RateLimit(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst)
}
