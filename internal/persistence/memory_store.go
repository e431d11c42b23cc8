package persistence

import (
	"context"
	"sync"
	"time"

	"github.com/petrijr/flowlight/pkg/api"
)

// InMemoryEventStore is a simple, goroutine-safe EventStore backed by a map
// of per-instance slices.
type InMemoryEventStore struct {
	mu     sync.RWMutex
	events map[string][]api.TransitionEvent
}

// NewInMemoryEventStore creates a new InMemoryEventStore.
func NewInMemoryEventStore() *InMemoryEventStore {
	return &InMemoryEventStore{
		events: make(map[string][]api.TransitionEvent),
	}
}

// Ensure InMemoryEventStore implements the interface.
var _ EventStore = (*InMemoryEventStore)(nil)

func (s *InMemoryEventStore) AppendEvent(ctx context.Context, ev api.TransitionEvent) error {
	if ev.InstanceID == "" {
		return ErrEmptyInstanceID
	}
	if ev.At.IsZero() {
		ev.At = time.Now()
	}
	ev.ToStates = append([]api.StateKind(nil), ev.ToStates...)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.events[ev.InstanceID] = append(s.events[ev.InstanceID], ev)
	return nil
}

func (s *InMemoryEventStore) ListEvents(ctx context.Context, instanceID string) ([]api.TransitionEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	src := s.events[instanceID]
	out := make([]api.TransitionEvent, len(src))
	for i, ev := range src {
		ev.ToStates = append([]api.StateKind(nil), ev.ToStates...)
		out[i] = ev
	}
	return out, nil
}
