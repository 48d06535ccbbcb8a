package eventbus

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"edge-shortener/internal/shared/events"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

const (
	// LinkEventsTopic carries every event raised by the redirect path.
	LinkEventsTopic = "link.events"

	// Metadata keys set on every message so routing does not need the payload.
	MetadataEventName   = "event_name"
	MetadataAggregateID = "aggregate_id"

	outputBuffer = 256
)

// ErrClosed is returned by Publish once the bus has been closed.
var ErrClosed = errors.New("event bus closed")

// EventBus is an in-process Watermill pub/sub for link events. Delivery is
// at-most-once: nothing survives a restart.
type EventBus struct {
	pubsub *gochannel.GoChannel
	closed atomic.Bool
}

// NewEventBus creates a new event bus using Go channels.
func NewEventBus(logger watermill.LoggerAdapter) *EventBus {
	return &EventBus{
		pubsub: gochannel.NewGoChannel(
			gochannel.Config{OutputChannelBuffer: outputBuffer},
			logger,
		),
	}
}

// Subscriber returns the Watermill subscriber.
func (b *EventBus) Subscriber() message.Subscriber {
	return b.pubsub
}

// Publish serializes e onto the link topic.
func (b *EventBus) Publish(ctx context.Context, e events.Event) error {
	if b.closed.Load() {
		return ErrClosed
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	msg, err := EventToMessage(e)
	if err != nil {
		return err
	}
	if err := b.pubsub.Publish(LinkEventsTopic, msg); err != nil {
		return fmt.Errorf("failed to publish %s: %w", e.EventName(), err)
	}
	return nil
}

// Close closes the event bus. It is safe to call more than once.
func (b *EventBus) Close() error {
	if b.closed.Swap(true) {
		return nil
	}
	return b.pubsub.Close()
}

// EventEnvelope is the wire form of an event.
type EventEnvelope struct {
	EventID     string          `json:"event_id"`
	EventName   string          `json:"event_name"`
	AggregateID string          `json:"aggregate_id"`
	OccurredAt  time.Time       `json:"occurred_at"`
	Payload     json.RawMessage `json:"payload"`
}

// Decode unmarshals the envelope payload into v.
func (e *EventEnvelope) Decode(v any) error {
	if err := json.Unmarshal(e.Payload, v); err != nil {
		return fmt.Errorf("failed to decode %s payload: %w", e.EventName, err)
	}
	return nil
}

// EventToMessage wraps e in an envelope keyed by its event ID.
func EventToMessage(e events.Event) (*message.Message, error) {
	payload, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s: %w", e.EventName(), err)
	}

	data, err := json.Marshal(EventEnvelope{
		EventID:     e.EventID(),
		EventName:   e.EventName(),
		AggregateID: e.AggregateID(),
		OccurredAt:  e.OccurredAt(),
		Payload:     payload,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal envelope: %w", err)
	}

	msg := message.NewMessage(e.EventID(), data)
	msg.Metadata.Set(MetadataEventName, e.EventName())
	msg.Metadata.Set(MetadataAggregateID, e.AggregateID())
	return msg, nil
}

// MessageToEnvelope extracts the event envelope from a Watermill message.
func MessageToEnvelope(msg *message.Message) (*EventEnvelope, error) {
	var envelope EventEnvelope
	if err := json.Unmarshal(msg.Payload, &envelope); err != nil {
		return nil, fmt.Errorf("failed to unmarshal envelope %s: %w", msg.UUID, err)
	}
	return &envelope, nil
}
