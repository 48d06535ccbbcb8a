package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "ratelimit:"

// Redis is a fixed-window counter shared by every instance that points at
// the same Redis.
type Redis struct {
	rdb    *redis.Client
	limit  int
	window time.Duration
	now    func() time.Time
}

var _ Limiter = (*Redis)(nil)

// NewRedis creates a limiter allowing requestsPerMinute per key.
func NewRedis(rdb *redis.Client, requestsPerMinute int) *Redis {
	return &Redis{
		rdb:    rdb,
		limit:  requestsPerMinute,
		window: time.Minute,
		now:    time.Now,
	}
}

// Check counts the request in the current window. On a Redis error the
// returned Decision allows the request alongside the error.
func (l *Redis) Check(ctx context.Context, key string) (Decision, error) {
	now := l.now()
	windowStart := now.Truncate(l.window)
	resetAt := windowStart.Add(l.window)
	redisKey := fmt.Sprintf("%s%s:%d", redisKeyPrefix, key, windowStart.Unix())

	var incr *redis.IntCmd
	_, err := l.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, redisKey)
		pipe.Expire(ctx, redisKey, l.window+time.Second)
		return nil
	})
	if err != nil {
		return Decision{Allowed: true, Limit: l.limit, Remaining: l.limit, ResetAt: resetAt},
			fmt.Errorf("rate limit counter: %w", err)
	}

	count := int(incr.Val())
	return Decision{
		Allowed:   count <= l.limit,
		Limit:     l.limit,
		Remaining: max(0, l.limit-count),
		ResetAt:   resetAt,
	}, nil
}
