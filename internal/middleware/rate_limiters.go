package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/windoze95/mixlist/internal/logger"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// limiterInfo is a struct that holds a rate limiter and the last time it was seen.
type limiterInfo struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// IPRateLimiter hands out one token bucket per client IP.
type IPRateLimiter struct {
	rps      rate.Limit
	burst    int
	limiters sync.Map
	mu       sync.Mutex
}

// NewIPRateLimiter creates a limiter allowing rps requests per second per IP
// with bursts of the same size. rps <= 0 disables limiting.
func NewIPRateLimiter(rps int) *IPRateLimiter {
	return &IPRateLimiter{rps: rate.Limit(rps), burst: rps}
}

// Allow reports whether ip may make a request now.
func (l *IPRateLimiter) Allow(ip string) bool {
	if l.rps <= 0 {
		return true
	}
	// Use LoadOrStore to ensure thread safety
	actual, _ := l.limiters.LoadOrStore(ip, &limiterInfo{
		limiter:  rate.NewLimiter(l.rps, l.burst),
		lastSeen: time.Now(),
	})

	info := actual.(*limiterInfo)
	l.mu.Lock()
	info.lastSeen = time.Now()
	l.mu.Unlock()
	return info.limiter.Allow()
}

// Cleanup drops limiters for IPs not seen within expiration.
func (l *IPRateLimiter) Cleanup(expiration time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.limiters.Range(func(key, value interface{}) bool {
		if time.Since(value.(*limiterInfo).lastSeen) > expiration {
			l.limiters.Delete(key)
		}
		return true
	})
}

// RunCleanup calls Cleanup every interval until stop is closed.
func (l *IPRateLimiter) RunCleanup(interval, expiration time.Duration, stop <-chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			l.Cleanup(expiration)
		}
	}
}

// RateLimitByIP applies rate limiting to requests per IP address.
func RateLimitByIP(l *IPRateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		if !l.Allow(ip) {
			logger.Get().Warn("rate limit exceeded", zap.String("ip", ip), zap.String("path", c.FullPath()))
			c.Header("Retry-After", "1")
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests"})
			c.Abort()
			return
		}

		c.Next()
	}
}
