// Package events provides the in-process event bus infrastructure. The
// concrete lifecycle and feedback events live in internal/events; this
// package only knows about events in the abstract.
package events

import (
	"context"
	"time"
)

// Event is implemented by every domain event published on the bus.
type Event interface {
	// EventName identifies the event type, e.g. "jobs.status.changed".
	EventName() string
	// OccurredAt returns when the event occurred.
	OccurredAt() time.Time
}

// BaseEvent carries the occurrence timestamp shared by all events.
type BaseEvent struct {
	Timestamp time.Time `json:"timestamp"`
}

func (e BaseEvent) OccurredAt() time.Time {
	return e.Timestamp
}

// NewBaseEvent stamps a new event with the current time.
func NewBaseEvent() BaseEvent {
	return BaseEvent{Timestamp: time.Now()}
}

// Handler processes events of a specific type.
type Handler interface {
	Handle(ctx context.Context, event Event) error
}

// HandlerFunc adapts a plain function to the Handler interface.
type HandlerFunc func(ctx context.Context, event Event) error

func (f HandlerFunc) Handle(ctx context.Context, event Event) error {
	return f(ctx, event)
}

// Bus publishes domain events to registered observers. Handlers observe;
// they never participate in the publishing operation's invariants — the
// cancellation cascade, for instance, is a direct repository call, not a
// subscriber.
type Bus interface {
	// Publish sends an event to all handlers registered for its name.
	// Handlers run asynchronously; errors are logged, never returned.
	Publish(ctx context.Context, event Event)

	// PublishSync runs the handlers inline and returns the first error.
	PublishSync(ctx context.Context, event Event) error

	// Subscribe registers a handler for the event name, matching the value
	// the event's EventName returns.
	Subscribe(eventName string, handler Handler)
}
