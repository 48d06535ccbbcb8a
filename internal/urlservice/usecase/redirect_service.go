package usecase

import (
	"context"
	"errors"
	"fmt"

	"edge-shortener/internal/urlsafety"
	"edge-shortener/internal/urlservice/domain"

	"go.uber.org/zap"
)

// RedirectService resolves slugs to destinations that are safe to redirect to.
type RedirectService struct {
	store  LinkStore
	logger *zap.Logger
}

// NewRedirectService creates a new redirect service
func NewRedirectService(store LinkStore, logger *zap.Logger) *RedirectService {
	return &RedirectService{
		store:  store,
		logger: logger,
	}
}

// Resolve returns the link for slug. Malformed and reserved slugs are
// reported as domain.ErrSlugNotFound without touching the store. A stored
// destination that fails the safety check is an anomaly: it is logged and
// reported as domain.ErrDestinationUnsafe.
func (s *RedirectService) Resolve(ctx context.Context, slug string) (*domain.Link, error) {
	if err := domain.ValidateSlug(slug); err != nil {
		return nil, domain.ErrSlugNotFound
	}

	link, err := s.store.Get(ctx, slug)
	if err != nil {
		if errors.Is(err, domain.ErrSlugNotFound) {
			return nil, domain.ErrSlugNotFound
		}
		if errors.Is(err, domain.ErrCorruptRecord) {
			s.logger.Warn("stored link record is corrupt",
				zap.String("slug", slug),
				zap.Error(err),
			)
			return nil, domain.ErrSlugNotFound
		}
		return nil, fmt.Errorf("failed to load link: %w", err)
	}

	if err := urlsafety.Validate(link.Destination()); err != nil {
		s.logger.Warn("stored destination failed safety check",
			zap.String("slug", slug),
			zap.String("created_by", link.CreatedBy()),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%w: %w", domain.ErrDestinationUnsafe, err)
	}

	return link, nil
}
