package testutil

import (
	"context"
	"sync"

	"github.com/fintrack/backend/internal/domain/shared"
)

// EventRecorder captures domain events. It is both a shared.EventPublisher,
// for handing to services, and a shared.EventHandler, for subscribing to a bus.
type EventRecorder struct {
	mu     sync.Mutex
	events []shared.DomainEvent
	types  []string
	err    error
}

// NewEventRecorder returns a recorder. With eventTypes it subscribes only to
// those; otherwise to every event.
func NewEventRecorder(eventTypes ...string) *EventRecorder {
	return &EventRecorder{types: eventTypes}
}

func (r *EventRecorder) Publish(_ context.Context, events ...shared.DomainEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, events...)
	return r.err
}

func (r *EventRecorder) Handle(ctx context.Context, event shared.DomainEvent) error {
	return r.Publish(ctx, event)
}

func (r *EventRecorder) EventTypes() []string {
	return r.types
}

// FailWith makes later Publish and Handle calls record the event and return err
func (r *EventRecorder) FailWith(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.err = err
}

// Events returns a copy of everything recorded so far
func (r *EventRecorder) Events() []shared.DomainEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]shared.DomainEvent(nil), r.events...)
}

// Types lists recorded event types in order, e.g. "expense.created"
func (r *EventRecorder) Types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.events))
	for i, e := range r.events {
		out[i] = e.EventType()
	}
	return out
}

// Reset forgets recorded events
func (r *EventRecorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
}
