package api

import "context"

// HistoryReader allows reading an instance's transition history.
type HistoryReader interface {
	// ListEvents returns all events for an instance in chronological order.
	ListEvents(ctx context.Context, instanceID string) ([]TransitionEvent, error)
}

// AsyncExecutor is implemented by runners that accept transition requests and
// execute them later on a worker goroutine.
type AsyncExecutor interface {
	// ExecuteAsync schedules transitionName on inst. The returned channel
	// receives the result of Execute exactly once.
	ExecuteAsync(ctx context.Context, inst *ProcessInstance, transitionName string) (<-chan error, error)
}
