package cache

import (
	"context"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultMemoryEntries bounds the in-process cache when no size is configured.
const DefaultMemoryEntries = 512

// MemoryCache is a bounded in-process LRU. Safe for concurrent use.
type MemoryCache struct {
	entries *lru.Cache[string, []byte]
}

// NewMemoryCache creates an LRU holding at most size bodies.
func NewMemoryCache(size int) (*MemoryCache, error) {
	if size <= 0 {
		size = DefaultMemoryEntries
	}
	entries, err := lru.New[string, []byte](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create lru: %w", err)
	}
	return &MemoryCache{entries: entries}, nil
}

func (c *MemoryCache) Get(_ context.Context, key string) ([]byte, bool) {
	return c.entries.Get(key)
}

// Put stores a private copy so callers may reuse value.
func (c *MemoryCache) Put(_ context.Context, key string, value []byte) {
	c.entries.Add(key, append([]byte(nil), value...))
}

// Len reports the number of cached bodies.
func (c *MemoryCache) Len() int {
	return c.entries.Len()
}
