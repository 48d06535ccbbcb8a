// Package ratelimit decides whether a client key may make another request.
package ratelimit

import (
	"context"
	"time"
)

// Decision is the outcome of one Check. Limit, Remaining and ResetAt feed
// the X-RateLimit-* response headers.
type Decision struct {
	Allowed   bool
	Limit     int
	Remaining int
	ResetAt   time.Time
}

// Limiter is implemented by Local and Redis. An error means the decision
// could not be made; callers choose whether to fail open.
type Limiter interface {
	Check(ctx context.Context, key string) (Decision, error)
}
