package middleware

import (
	"math"
	"strconv"
	"sync"
	"time"

	"github.com/KRaymonne/appli-sitinfra-sub004/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// RateLimiter is an in-memory sliding window limiter. Each key keeps the
// count of the current and the previous fixed window; the previous count is
// weighted by how much of it still overlaps the sliding window.
type RateLimiter struct {
	mu      sync.Mutex
	clients map[string]*window
	limit   int
	window  time.Duration
	now     func() time.Time
	stop    chan struct{}
	once    sync.Once
}

type window struct {
	start    time.Time
	current  int
	previous int
}

// NewRateLimiter creates a limiter allowing limit requests per window and
// starts its cleanup loop. Call Stop to end the loop.
func NewRateLimiter(limit int, windowSize time.Duration) *RateLimiter {
	rl := newRateLimiter(limit, windowSize, time.Now)
	go rl.cleanup(windowSize * 2)
	return rl
}

func newRateLimiter(limit int, windowSize time.Duration, now func() time.Time) *RateLimiter {
	if limit < 1 {
		limit = 1
	}
	if windowSize <= 0 {
		windowSize = time.Minute
	}
	return &RateLimiter{
		clients: make(map[string]*window),
		limit:   limit,
		window:  windowSize,
		now:     now,
		stop:    make(chan struct{}),
	}
}

// Stop ends the cleanup loop
func (rl *RateLimiter) Stop() {
	rl.once.Do(func() { close(rl.stop) })
}

// Limit returns the number of requests allowed per window
func (rl *RateLimiter) Limit() int {
	return rl.limit
}

func (rl *RateLimiter) cleanup(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-rl.stop:
			return
		case <-ticker.C:
			rl.mu.Lock()
			now := rl.now()
			for key, w := range rl.clients {
				if now.Sub(w.start) > rl.window*2 {
					delete(rl.clients, key)
				}
			}
			rl.mu.Unlock()
		}
	}
}

// Allow reports whether a request from key fits in the window and records
// it when it does. The second result is the number of requests left.
func (rl *RateLimiter) Allow(key string) (bool, int) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	w, ok := rl.clients[key]
	if !ok {
		w = &window{start: now.Truncate(rl.window)}
		rl.clients[key] = w
	}
	rl.advance(w, now)

	used := rl.estimate(w, now)
	if used >= rl.limit {
		return false, 0
	}
	w.current++
	return true, rl.limit - used - 1
}

// advance rolls the fixed windows forward to the one containing now
func (rl *RateLimiter) advance(w *window, now time.Time) {
	elapsed := now.Sub(w.start)
	switch {
	case elapsed < rl.window:
	case elapsed < 2*rl.window:
		w.previous = w.current
		w.current = 0
		w.start = w.start.Add(rl.window)
	default:
		w.previous = 0
		w.current = 0
		w.start = now.Truncate(rl.window)
	}
}

func (rl *RateLimiter) estimate(w *window, now time.Time) int {
	overlap := 1 - float64(now.Sub(w.start))/float64(rl.window)
	if overlap < 0 {
		overlap = 0
	}
	return int(math.Floor(float64(w.previous)*overlap)) + w.current
}

// RateLimit returns a rate limiting middleware keyed by client IP
func RateLimit(limiter *RateLimiter) gin.HandlerFunc {
	return RateLimitByKey(limiter, func(c *gin.Context) string {
		return c.ClientIP()
	})
}

// RateLimitByKey returns a rate limiting middleware with custom key extractor
func RateLimitByKey(limiter *RateLimiter, keyFunc func(*gin.Context) string) gin.HandlerFunc {
	return func(c *gin.Context) {
		allowed, remaining := limiter.Allow(keyFunc(c))

		c.Header("X-RateLimit-Limit", strconv.Itoa(limiter.Limit()))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))

		if !allowed {
			c.Header("Retry-After", strconv.Itoa(int(limiter.window.Seconds())))
			abortWithError(c, dto.ErrCodeRateLimited, "Too many requests. Please try again later.")
			return
		}
		c.Next()
	}
}
