package eventbus

import (
	"context"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
)

// EventHandler handles events from the event bus.
type EventHandler interface {
	// HandlerName returns the name of the handler.
	HandlerName() string
	// EventName returns the event name this handler handles.
	EventName() string
	// Handle processes the event envelope.
	Handle(ctx context.Context, envelope *EventEnvelope) error
}

// RetryPolicy bounds redelivery of a failing event to one handler.
type RetryPolicy struct {
	MaxRetries      int
	InitialInterval time.Duration
}

// DefaultRetryPolicy retries a failing handler three times before dropping.
var DefaultRetryPolicy = RetryPolicy{MaxRetries: 3, InitialInterval: 100 * time.Millisecond}

// Router fans link events out to every registered handler. Each handler gets
// its own subscription, so a slow consumer never delays another.
type Router struct {
	router   *message.Router
	eventBus *EventBus
	retry    RetryPolicy
	logger   watermill.LoggerAdapter
}

// NewRouter creates a new event router.
func NewRouter(eventBus *EventBus, retry RetryPolicy, logger watermill.LoggerAdapter) (*Router, error) {
	router, err := message.NewRouter(message.RouterConfig{CloseTimeout: 10 * time.Second}, logger)
	if err != nil {
		return nil, err
	}
	router.AddMiddleware(middleware.Recoverer)

	return &Router{
		router:   router,
		eventBus: eventBus,
		retry:    retry,
		logger:   logger,
	}, nil
}

// AddHandler registers handler. Handlers must be added before Run.
func (r *Router) AddHandler(handler EventHandler) {
	r.router.AddNoPublisherHandler(
		handler.HandlerName(),
		LinkEventsTopic,
		r.eventBus.Subscriber(),
		r.createHandlerFunc(handler),
	)
}

// createHandlerFunc wraps handler with bounded retries. An event that still
// fails is logged and acked so it cannot block the topic.
func (r *Router) createHandlerFunc(handler EventHandler) message.NoPublishHandlerFunc {
	retry := middleware.Retry{
		MaxRetries:      r.retry.MaxRetries,
		InitialInterval: r.retry.InitialInterval,
		MaxInterval:     time.Second,
		Multiplier:      2,
		Logger:          r.logger,
	}

	handle := retry.Middleware(func(msg *message.Message) ([]*message.Message, error) {
		envelope, err := MessageToEnvelope(msg)
		if err != nil {
			r.logger.Error("skipping undecodable message", err, watermill.LogFields{
				"handler":  handler.HandlerName(),
				"event_id": msg.UUID,
			})
			return nil, nil
		}
		return nil, handler.Handle(msg.Context(), envelope)
	})

	return func(msg *message.Message) error {
		// every handler sees the whole topic; skip other events before decoding
		if msg.Metadata.Get(MetadataEventName) != handler.EventName() {
			return nil
		}
		if _, err := handle(msg); err != nil {
			r.logger.Error("dropping event after retries", err, watermill.LogFields{
				"handler":    handler.HandlerName(),
				"event_name": msg.Metadata.Get(MetadataEventName),
				"event_id":   msg.UUID,
			})
		}
		return nil
	}
}

// Run starts the router.
func (r *Router) Run(ctx context.Context) error {
	return r.router.Run(ctx)
}

// Running returns a channel that is closed when the router is running.
func (r *Router) Running() chan struct{} {
	return r.router.Running()
}

// Close stops the router.
func (r *Router) Close() error {
	return r.router.Close()
}
