// Package ratelimiter provides a fixed-window request limiter keyed by
// caller identity.
package ratelimiter

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"orgair_backend/internal/api"
)

// window tracks request counts for one key inside the current window.
type window struct {
	start time.Time
	count int
}

// Limiter allows at most limit requests per key within each interval.
type Limiter struct {
	limit    int
	interval time.Duration

	mu      sync.Mutex
	windows map[string]*window
}

// NewLimiter creates a limiter allowing limit requests per interval.
func NewLimiter(limit int, interval time.Duration) *Limiter {
	return &Limiter{
		limit:    limit,
		interval: interval,
		windows:  make(map[string]*window),
	}
}

// Allow reports whether another request from key fits in the current
// window and counts it if so.
func (l *Limiter) Allow(key string) bool {
	now := time.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	w, ok := l.windows[key]
	if !ok || now.Sub(w.start) >= l.interval {
		l.prune(now)
		l.windows[key] = &window{start: now, count: 1}
		return true
	}

	if w.count >= l.limit {
		return false
	}
	w.count++
	return true
}

// prune drops windows that have already rolled over. Called with the
// lock held.
func (l *Limiter) prune(now time.Time) {
	for key, w := range l.windows {
		if now.Sub(w.start) >= l.interval {
			delete(l.windows, key)
		}
	}
}

// Middleware returns a Gin middleware that rejects requests above the
// per-client limit with 429. A nil limiter disables limiting.
func Middleware(l *Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if l != nil && !l.Allow(c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, api.ErrorResponse{Error: "too many requests"})
			return
		}
		c.Next()
	}
}
