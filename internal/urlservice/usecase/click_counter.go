package usecase

import (
	"context"
	"errors"
	"fmt"

	"edge-shortener/internal/infra/eventbus"
	"edge-shortener/internal/shared/events"
	"edge-shortener/internal/urlservice/domain"

	"go.uber.org/zap"
)

// ClickCounter keeps the denormalized click count on link records. It
// consumes the same click events as analytics.
type ClickCounter struct {
	store  LinkStore
	logger *zap.Logger
}

var _ eventbus.EventHandler = (*ClickCounter)(nil)

// NewClickCounter creates a new click counter handler
func NewClickCounter(store LinkStore, logger *zap.Logger) *ClickCounter {
	return &ClickCounter{
		store:  store,
		logger: logger,
	}
}

func (c *ClickCounter) HandlerName() string {
	return "link_click_counter"
}

func (c *ClickCounter) EventName() string {
	return events.LinkClickedEventName
}

// Handle increments the click count of the clicked slug. A slug that has
// vanished since the redirect is skipped.
func (c *ClickCounter) Handle(ctx context.Context, envelope *eventbus.EventEnvelope) error {
	var evt events.LinkClicked
	if err := envelope.Decode(&evt); err != nil {
		c.logger.Error("failed to decode click event",
			zap.String("event_id", envelope.EventID),
			zap.Error(err),
		)
		return nil
	}

	if err := c.store.IncrementClicks(ctx, evt.Slug); err != nil {
		if errors.Is(err, domain.ErrSlugNotFound) {
			c.logger.Warn("click for unknown slug", zap.String("slug", evt.Slug))
			return nil
		}
		return fmt.Errorf("failed to increment clicks: %w", err)
	}
	return nil
}
