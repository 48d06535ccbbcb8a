// Package cache memoizes rendered QR images. Every implementation treats
// backend failures as misses so a broken cache never fails a render.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"
)

// Cache is a read-through memo for rendered QR bodies.
type Cache interface {
	// Get returns the cached body and true on a hit.
	Get(ctx context.Context, key string) ([]byte, bool)

	// Put stores a body. Failures are logged and swallowed.
	Put(ctx context.Context, key string, value []byte)
}

// Compile-time interface checks
var (
	_ Cache = (*RedisCache)(nil)
	_ Cache = (*MemoryCache)(nil)
	_ Cache = Noop{}
)

const keyVersion = "qr:v1"

// Key builds the cache key for a render. logoIdentity is the resolved logo
// URL, or empty when no usable logo was requested; it is hashed so keys stay
// short and never echo user input.
func Key(slug string, sizePx int, format string, ratio float64, logoIdentity string) string {
	logo := "-"
	if logoIdentity != "" {
		sum := sha256.Sum256([]byte(logoIdentity))
		logo = hex.EncodeToString(sum[:8])
	}

	return strings.Join([]string{
		keyVersion,
		slug,
		strconv.Itoa(sizePx),
		format,
		strconv.FormatFloat(ratio, 'f', 4, 64),
		logo,
	}, ":")
}

// Noop never hits.
type Noop struct{}

func (Noop) Get(context.Context, string) ([]byte, bool) { return nil, false }

func (Noop) Put(context.Context, string, []byte) {}
