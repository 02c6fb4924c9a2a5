// internal/middleware/rate_limit.go
package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/the-exchanger/exchanger-backend/internal/config"
)

// ipLimiter hands out one token bucket per client IP and forgets buckets
// that sit idle for a few minutes.
type ipLimiter struct {
	mu      sync.Mutex
	buckets map[string]*bucket
	rate    rate.Limit
	burst   int
}

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func newIPLimiter(r rate.Limit, burst int) *ipLimiter {
	l := &ipLimiter{
		buckets: make(map[string]*bucket),
		rate:    r,
		burst:   burst,
	}
	go l.sweep()
	return l
}

func (l *ipLimiter) sweep() {
	for {
		time.Sleep(time.Minute)
		l.mu.Lock()
		for ip, b := range l.buckets {
			if time.Since(b.lastSeen) > 3*time.Minute {
				delete(l.buckets, ip)
			}
		}
		l.mu.Unlock()
	}
}

func (l *ipLimiter) allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	b, ok := l.buckets[ip]
	if !ok {
		b = &bucket{limiter: rate.NewLimiter(l.rate, l.burst)}
		l.buckets[ip] = b
	}
	b.lastSeen = time.Now()
	return b.limiter.Allow()
}

func (l *ipLimiter) handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !l.allow(c.ClientIP()) {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error": "Rate limit exceeded. Please try again later.",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

// RateLimiters groups the three request tiers: the general API budget and
// the tighter auth and upload budgets. Budgets come from the server config;
// zero or negative values fall back to the defaults.
type RateLimiters struct {
	general *ipLimiter
	auth    *ipLimiter
	upload  *ipLimiter
}

func NewRateLimiters(cfg config.ServerConfig) *RateLimiters {
	rps := cfg.RateLimitRPS
	if rps <= 0 {
		rps = 10
	}
	authPerMin := cfg.AuthRateLimitPerMin
	if authPerMin <= 0 {
		authPerMin = 5
	}
	uploadPerMin := cfg.UploadRateLimitPerMin
	if uploadPerMin <= 0 {
		uploadPerMin = 10
	}

	return &RateLimiters{
		general: newIPLimiter(rate.Limit(rps), rps),
		auth:    newIPLimiter(rate.Every(time.Minute/time.Duration(authPerMin)), authPerMin),
		upload:  newIPLimiter(rate.Every(time.Minute/time.Duration(uploadPerMin)), uploadPerMin),
	}
}

func (rl *RateLimiters) General() gin.HandlerFunc { return rl.general.handler() }

func (rl *RateLimiters) Auth() gin.HandlerFunc { return rl.auth.handler() }

func (rl *RateLimiters) Upload() gin.HandlerFunc { return rl.upload.handler() }
