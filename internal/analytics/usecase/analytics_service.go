package usecase

import (
	"context"
	"fmt"

	"edge-shortener/internal/analytics/domain"
	"edge-shortener/internal/shared/events"

	"github.com/samber/lo"
	"go.uber.org/zap"
)

type AnalyticsService struct {
	store   ClickStore
	geo     GeoIPResolver
	device  DeviceDetector
	referer RefererClassifier
	hasher  VisitorHasher
	owners  OwnerLookup
	logger  *zap.Logger
}

func NewAnalyticsService(
	store ClickStore,
	geo GeoIPResolver,
	device DeviceDetector,
	referer RefererClassifier,
	hasher VisitorHasher,
	owners OwnerLookup,
	logger *zap.Logger,
) *AnalyticsService {
	return &AnalyticsService{
		store:   store,
		geo:     geo,
		device:  device,
		referer: referer,
		hasher:  hasher,
		owners:  owners,
		logger:  logger,
	}
}

// Enrich derives the stored click from a raw click event. The client IP
// is only used for the geo lookup and the visitor hash; it is not kept.
func (s *AnalyticsService) Enrich(evt *events.LinkClicked) domain.ClickEvent {
	country, city := s.geo.Resolve(evt.ClientIP)
	info := s.device.DetectDevice(evt.UserAgent)

	return domain.ClickEvent{
		Slug:          evt.Slug,
		ClickedAt:     evt.ClickedAt.UTC(),
		Referrer:      events.Truncate(evt.Referrer, events.MaxHeaderBytes),
		Country:       country,
		City:          city,
		DeviceType:    info.DeviceType,
		Browser:       info.Browser,
		OS:            info.OS,
		VisitorHash:   s.hasher.Hash(evt.ClientIP, evt.ClickedAt),
		UserAgentRaw:  events.Truncate(evt.UserAgent, events.MaxHeaderBytes),
		TrafficSource: s.referer.ClassifySource(evt.Referrer),
	}
}

// RecordClick enriches and stores a click event
func (s *AnalyticsService) RecordClick(ctx context.Context, evt *events.LinkClicked) error {
	if err := s.store.InsertClick(ctx, s.Enrich(evt)); err != nil {
		return fmt.Errorf("failed to insert click: %w", err)
	}
	return nil
}

// ListClicks returns the clicks selected by q, each joined with the owner of
// its link. Owners are looked up once per distinct slug.
func (s *AnalyticsService) ListClicks(ctx context.Context, q domain.ClickQuery) ([]domain.ClickWithOwner, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	clicks, err := s.store.ListClicks(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("failed to list clicks: %w", err)
	}

	slugs := lo.Uniq(lo.Map(clicks, func(c domain.ClickEvent, _ int) string { return c.Slug }))
	owners := make(map[string]string, len(slugs))
	for _, slug := range slugs {
		owner, err := s.owners.Owner(ctx, slug)
		if err != nil {
			return nil, fmt.Errorf("failed to look up owner of %q: %w", slug, err)
		}
		owners[slug] = owner
	}

	return lo.Map(clicks, func(c domain.ClickEvent, _ int) domain.ClickWithOwner {
		return domain.ClickWithOwner{ClickEvent: c, CreatedBy: owners[c.Slug]}
	}), nil
}

// Ping reports whether the click store is reachable.
func (s *AnalyticsService) Ping(ctx context.Context) error {
	return s.store.Ping(ctx)
}
