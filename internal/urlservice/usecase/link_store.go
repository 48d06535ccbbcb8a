package usecase

import (
	"context"

	"edge-shortener/internal/urlservice/domain"
)

// LinkStore is the slug to record store. Get returns domain.ErrSlugNotFound
// for unknown slugs.
type LinkStore interface {
	Get(ctx context.Context, slug string) (*domain.Link, error)
	Put(ctx context.Context, slug string, record domain.Record) error
	IncrementClicks(ctx context.Context, slug string) error
	Ping(ctx context.Context) error
}
