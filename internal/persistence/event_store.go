package persistence

import (
	"context"
	"errors"

	"github.com/petrijr/flowlight/pkg/api"
)

// ErrEmptyInstanceID is returned when an event carries no instance id.
var ErrEmptyInstanceID = errors.New("event has no instance id")

// EventStore is an append-only history store for transition events.
type EventStore interface {
	AppendEvent(ctx context.Context, ev api.TransitionEvent) error
	ListEvents(ctx context.Context, instanceID string) ([]api.TransitionEvent, error)
}

// NoopEventStore discards all events.
type NoopEventStore struct{}

func (NoopEventStore) AppendEvent(ctx context.Context, ev api.TransitionEvent) error { return nil }
func (NoopEventStore) ListEvents(ctx context.Context, instanceID string) ([]api.TransitionEvent, error) {
	return nil, nil
}
