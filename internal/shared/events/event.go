package events

import (
	"time"

	"github.com/google/uuid"
)

// Event is the base interface for all events on the bus.
type Event interface {
	// EventID returns the unique identifier of the event.
	EventID() string
	// EventName returns the name of the event.
	EventName() string
	// OccurredAt returns when the event occurred.
	OccurredAt() time.Time
	// AggregateID returns the ID of the entity that raised the event.
	AggregateID() string
}

// Base contains common fields for all events.
type Base struct {
	ID          string    `json:"event_id"`
	OccurredAtT time.Time `json:"occurred_at"`
	AggregateId string    `json:"aggregate_id"`
}

// NewBase creates a new base event with a time-ordered ID.
func NewBase(aggregateID string, occurredAt time.Time) Base {
	return Base{
		ID:          uuid.Must(uuid.NewV7()).String(),
		OccurredAtT: occurredAt.UTC(),
		AggregateId: aggregateID,
	}
}

func (e Base) EventID() string {
	return e.ID
}

func (e Base) OccurredAt() time.Time {
	return e.OccurredAtT
}

func (e Base) AggregateID() string {
	return e.AggregateId
}
