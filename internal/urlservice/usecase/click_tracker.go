package usecase

import (
	"context"
	"sync"
	"time"

	"edge-shortener/internal/shared/events"

	"go.uber.org/zap"
)

const publishTimeout = 5 * time.Second

// EventPublisher publishes events to the bus.
type EventPublisher interface {
	Publish(ctx context.Context, e events.Event) error
}

// ClickTracker publishes click events off the request path. Every publish is
// tracked so shutdown can wait for them.
type ClickTracker struct {
	publisher EventPublisher // may be nil
	logger    *zap.Logger
	wg        sync.WaitGroup
	now       func() time.Time
}

// NewClickTracker creates a new click tracker. A nil publisher drops clicks.
func NewClickTracker(publisher EventPublisher, logger *zap.Logger) *ClickTracker {
	return &ClickTracker{
		publisher: publisher,
		logger:    logger,
		now:       time.Now,
	}
}

// Track publishes a click for slug in the background. Failures are logged
// and never reach the caller.
func (t *ClickTracker) Track(slug, clientIP, userAgent, referrer string) {
	if t.publisher == nil {
		return
	}

	evt := events.NewLinkClicked(slug, t.now(), clientIP, userAgent, referrer)

	t.wg.Add(1)
	go func() {
		defer t.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
		defer cancel()

		if err := t.publisher.Publish(ctx, evt); err != nil {
			t.logger.Error("failed to publish click event",
				zap.String("slug", slug),
				zap.String("event_id", evt.EventID()),
				zap.Error(err),
			)
		}
	}()
}

// Drain waits for in-flight publishes or until ctx is done.
func (t *ClickTracker) Drain(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		t.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
