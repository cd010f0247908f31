package http

import (
	"sync"
	"time"

	"github.com/benbjohnson/clock"
)

// rateLimiter counts frames in fixed one-minute windows.
type rateLimiter struct {
	limit int
	clock clock.Clock

	mu        sync.Mutex
	counter   int
	windowEnd time.Time
}

func newRateLimiter(limit int, clk clock.Clock) *rateLimiter {
	if clk == nil {
		clk = clock.New()
	}
	return &rateLimiter{limit: limit, clock: clk}
}

func (r *rateLimiter) allow() bool {
	if r == nil || r.limit <= 0 {
		return true
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	now := r.clock.Now()
	if !now.Before(r.windowEnd) {
		r.windowEnd = now.Add(time.Minute)
		r.counter = 0
	}
	r.counter++
	return r.counter <= r.limit
}
