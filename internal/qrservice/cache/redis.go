package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// DefaultTTL matches the Cache-Control max-age of QR responses.
const DefaultTTL = time.Hour

// RedisCache stores rendered bodies in Redis with a TTL.
type RedisCache struct {
	rdb    *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewRedisCache creates a Redis-backed cache.
// Returns a no-op cache if the Redis client is nil.
func NewRedisCache(rdb *redis.Client, ttl time.Duration, logger *zap.Logger) Cache {
	if rdb == nil {
		return Noop{}
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisCache{
		rdb:    rdb,
		ttl:    ttl,
		logger: logger,
	}
}

// Get retrieves a body from Redis. Errors are treated as a miss.
func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool) {
	data, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("failed to read qr cache",
				zap.String("key", key),
				zap.Error(err),
			)
		}
		return nil, false
	}
	return data, true
}

// Put stores a body in Redis.
func (c *RedisCache) Put(ctx context.Context, key string, value []byte) {
	if err := c.rdb.Set(ctx, key, value, c.ttl).Err(); err != nil {
		c.logger.Warn("failed to write qr cache",
			zap.String("key", key),
			zap.Error(err),
		)
	}
}
