package backend

import (
	"context"
	"sync"
	"time"
)

// RateLimiter is a token bucket bounding pressure on the backend. The
// enrichment fan-out issues O(connections x accounts x 3) calls per batch;
// the bucket smooths those bursts into roughly one call per refill period.
type RateLimiter struct {
	mu       sync.Mutex
	capacity float64
	tokens   float64
	refill   time.Duration
	last     time.Time
}

// NewRateLimiter creates a bucket holding up to capacity tokens, regaining
// one token per refill period. The bucket starts full.
func NewRateLimiter(capacity int, refill time.Duration) *RateLimiter {
	return &RateLimiter{
		capacity: float64(capacity),
		tokens:   float64(capacity),
		refill:   refill,
		last:     time.Now(),
	}
}

// Wait blocks until a token is available or ctx is done.
func (l *RateLimiter) Wait(ctx context.Context) error {
	for {
		wait := l.take()
		if wait == 0 {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}
}

// take consumes a token if one is available, otherwise returns how long
// until the next token accrues.
func (l *RateLimiter) take() time.Duration {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	l.tokens += float64(now.Sub(l.last)) / float64(l.refill)
	if l.tokens > l.capacity {
		l.tokens = l.capacity
	}
	l.last = now

	if l.tokens >= 1 {
		l.tokens--
		return 0
	}
	return time.Duration((1 - l.tokens) * float64(l.refill))
}
