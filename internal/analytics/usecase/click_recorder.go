package usecase

import (
	"context"

	"edge-shortener/internal/infra/eventbus"
	"edge-shortener/internal/shared/events"

	"go.uber.org/zap"
)

// ClickRecorder feeds click events from the bus into the analytics store.
type ClickRecorder struct {
	service *AnalyticsService
	logger  *zap.Logger
}

var _ eventbus.EventHandler = (*ClickRecorder)(nil)

func NewClickRecorder(service *AnalyticsService, logger *zap.Logger) *ClickRecorder {
	return &ClickRecorder{
		service: service,
		logger:  logger,
	}
}

func (r *ClickRecorder) HandlerName() string {
	return "analytics_click_recorder"
}

func (r *ClickRecorder) EventName() string {
	return events.LinkClickedEventName
}

func (r *ClickRecorder) Handle(ctx context.Context, envelope *eventbus.EventEnvelope) error {
	var evt events.LinkClicked
	if err := envelope.Decode(&evt); err != nil {
		r.logger.Error("failed to decode click event",
			zap.String("event_id", envelope.EventID),
			zap.Error(err),
		)
		return nil
	}

	if err := r.service.RecordClick(ctx, &evt); err != nil {
		return err
	}

	r.logger.Debug("click recorded", zap.String("slug", evt.Slug))
	return nil
}
