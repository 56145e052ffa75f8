package shared

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// DomainEvent is implemented by every event embedding BaseDomainEvent
type DomainEvent interface {
	EventID() uuid.UUID
	EventType() string
	OccurredAt() time.Time
	AggregateID() uuid.UUID
	AggregateType() string
}

// EventMeta identifies one occurrence of an event. It is serialized under
// "event" so payload fields never collide with it.
type EventMeta struct {
	ID            uuid.UUID `json:"id"`
	Type          string    `json:"type"`
	OccurredAt    time.Time `json:"occurredAt"`
	AggregateType string    `json:"aggregateType"`
	AggregateID   uuid.UUID `json:"aggregateId"`
}

type BaseDomainEvent struct {
	Meta EventMeta `json:"event"`
}

func NewBaseDomainEvent(eventType, aggregateType string, aggregateID uuid.UUID) BaseDomainEvent {
	return BaseDomainEvent{Meta: EventMeta{
		ID:            uuid.New(),
		Type:          eventType,
		OccurredAt:    Now(),
		AggregateType: aggregateType,
		AggregateID:   aggregateID,
	}}
}

func (e *BaseDomainEvent) EventID() uuid.UUID     { return e.Meta.ID }
func (e *BaseDomainEvent) EventType() string      { return e.Meta.Type }
func (e *BaseDomainEvent) OccurredAt() time.Time  { return e.Meta.OccurredAt }
func (e *BaseDomainEvent) AggregateID() uuid.UUID { return e.Meta.AggregateID }
func (e *BaseDomainEvent) AggregateType() string  { return e.Meta.AggregateType }

// EventPublisher delivers domain events. Topic is the unprefixed event name,
// e.g. "alert.created".
type EventPublisher interface {
	Publish(ctx context.Context, topic string, event any) error
}
