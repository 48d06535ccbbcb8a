package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"edge-shortener/internal/urlservice/domain"
	"edge-shortener/internal/urlservice/usecase"

	"github.com/redis/go-redis/v9"
)

const (
	linkKeyPrefix   = "link:"
	clicksKeySuffix = ":clicks"
)

// LinkStore implements usecase.LinkStore on Redis string keys. The record
// lives at link:{slug}, its click count at link:{slug}:clicks.
type LinkStore struct {
	rdb *redis.Client
}

// NewLinkStore creates a new Redis-backed link store
func NewLinkStore(rdb *redis.Client) *LinkStore {
	return &LinkStore{rdb: rdb}
}

// Ensure LinkStore implements usecase.LinkStore at compile time
var _ usecase.LinkStore = (*LinkStore)(nil)

func recordKey(slug string) string {
	return linkKeyPrefix + slug
}

func clicksKey(slug string) string {
	return linkKeyPrefix + slug + clicksKeySuffix
}

// Get loads the record and click count in one round trip
func (s *LinkStore) Get(ctx context.Context, slug string) (*domain.Link, error) {
	values, err := s.rdb.MGet(ctx, recordKey(slug), clicksKey(slug)).Result()
	if err != nil {
		return nil, err
	}

	raw, ok := values[0].(string)
	if !ok {
		return nil, domain.ErrSlugNotFound
	}

	record, err := domain.DecodeRecord(raw)
	if err != nil {
		return nil, err
	}

	var clicks int64
	if count, ok := values[1].(string); ok {
		clicks, _ = strconv.ParseInt(count, 10, 64)
	}

	return &domain.Link{
		Slug:       slug,
		Record:     record,
		ClickCount: clicks,
	}, nil
}

// Put stores the encoded record for slug
func (s *LinkStore) Put(ctx context.Context, slug string, record domain.Record) error {
	value, err := domain.EncodeRecord(record)
	if err != nil {
		return err
	}
	if err := s.rdb.Set(ctx, recordKey(slug), value, 0).Err(); err != nil {
		return fmt.Errorf("failed to save link: %w", err)
	}
	return nil
}

// incrementIfExists bumps the counter only while the record key exists.
var incrementIfExists = redis.NewScript(`
if redis.call("EXISTS", KEYS[1]) == 0 then
	return -1
end
return redis.call("INCR", KEYS[2])
`)

// IncrementClicks adds one to the click count of slug
func (s *LinkStore) IncrementClicks(ctx context.Context, slug string) error {
	n, err := incrementIfExists.Run(ctx, s.rdb, []string{recordKey(slug), clicksKey(slug)}).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domain.ErrSlugNotFound
		}
		return err
	}
	if n < 0 {
		return domain.ErrSlugNotFound
	}
	return nil
}

// Ping checks Redis connectivity
func (s *LinkStore) Ping(ctx context.Context) error {
	return s.rdb.Ping(ctx).Err()
}
