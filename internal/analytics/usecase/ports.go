package usecase

import (
	"context"
	"time"

	"edge-shortener/internal/analytics/domain"
)

// ClickStore persists enriched clicks.
type ClickStore interface {
	InsertClick(ctx context.Context, click domain.ClickEvent) error
	// ListClicks returns clicks in [q.Since, q.Until], oldest first, at
	// most q.Limit of them.
	ListClicks(ctx context.Context, q domain.ClickQuery) ([]domain.ClickEvent, error)
	Ping(ctx context.Context) error
}

type GeoIPResolver interface {
	Resolve(ip string) (country, city string)
}

type DeviceDetector interface {
	DetectDevice(userAgent string) domain.UserAgentInfo
}

type RefererClassifier interface {
	ClassifySource(referer string) string
}

type VisitorHasher interface {
	Hash(ip string, at time.Time) string
}

// OwnerLookup returns who created slug, or "" when that is unknown.
type OwnerLookup interface {
	Owner(ctx context.Context, slug string) (string, error)
}
