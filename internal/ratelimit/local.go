package ratelimit

import (
	"context"
	"math"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// entry holds a rate limiter and last seen timestamp for cleanup
type entry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// Local is a per-process token bucket per key. A full bucket holds one
// minute of requests and refills continuously.
type Local struct {
	mu       sync.Mutex
	limiters map[string]*entry
	limit    rate.Limit
	burst    int
	interval time.Duration
	now      func() time.Time
}

var _ Limiter = (*Local)(nil)

// NewLocal creates a limiter allowing requestsPerMinute per key.
func NewLocal(requestsPerMinute int) *Local {
	interval := time.Minute / time.Duration(requestsPerMinute)
	return &Local{
		limiters: make(map[string]*entry),
		limit:    rate.Every(interval),
		burst:    requestsPerMinute,
		interval: interval,
		now:      time.Now,
	}
}

// getLimiter returns the rate limiter for the given key, creating one if it doesn't exist
func (l *Local) getLimiter(key string, now time.Time) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	e, exists := l.limiters[key]
	if !exists {
		e = &entry{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.limiters[key] = e
	}
	e.lastSeen = now
	return e.limiter
}

func (l *Local) Check(_ context.Context, key string) (Decision, error) {
	now := l.now()
	limiter := l.getLimiter(key, now)

	allowed := limiter.AllowN(now, 1)
	tokens := limiter.TokensAt(now)

	missing := float64(l.burst) - tokens
	resetAt := now.Add(time.Duration(math.Ceil(missing * float64(l.interval))))

	return Decision{
		Allowed:   allowed,
		Limit:     l.burst,
		Remaining: max(0, int(tokens)),
		ResetAt:   resetAt,
	}, nil
}

// Len reports how many keys are tracked.
func (l *Local) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.limiters)
}

// StartCleanup drops keys idle for longer than maxIdle every interval until
// ctx is done.
func (l *Local) StartCleanup(ctx context.Context, interval, maxIdle time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				l.sweep(maxIdle)
			}
		}
	}()
}

func (l *Local) sweep(maxIdle time.Duration) {
	now := l.now()
	l.mu.Lock()
	defer l.mu.Unlock()
	for key, e := range l.limiters {
		if now.Sub(e.lastSeen) > maxIdle {
			delete(l.limiters, key)
		}
	}
}
