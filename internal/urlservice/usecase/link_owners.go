package usecase

import (
	"context"
	"errors"

	"edge-shortener/internal/urlservice/domain"
)

// LinkOwners answers who created a link, for the analytics owner join.
type LinkOwners struct {
	store LinkStore
}

func NewLinkOwners(store LinkStore) *LinkOwners {
	return &LinkOwners{store: store}
}

// Owner returns "" for links that no longer exist, have a corrupt record,
// or predate structured records.
func (o *LinkOwners) Owner(ctx context.Context, slug string) (string, error) {
	link, err := o.store.Get(ctx, slug)
	if errors.Is(err, domain.ErrSlugNotFound) || errors.Is(err, domain.ErrCorruptRecord) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return link.CreatedBy(), nil
}
