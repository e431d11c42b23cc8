package api

import "time"

// EventType identifies a transition history event.
type EventType string

const (
	EventTransitionStarted   EventType = "transition.started"
	EventBranchCommitted     EventType = "branch.committed"
	EventHookInvoked         EventType = "hook.invoked"
	EventTransitionCompleted EventType = "transition.completed"
	EventTransitionFailed    EventType = "transition.failed"
)

// TransitionEvent is a small append-only history record for audit and
// debugging. It records what happened to an instance; it is not enough to
// rebuild one.
type TransitionEvent struct {
	InstanceID string
	At         time.Time
	Type       EventType

	DefinitionType string
	Transition     string

	// FromState and ToStates are set for EventBranchCommitted.
	FromState StateKind
	ToStates  []StateKind

	// Small, human-oriented details (e.g. hook name, error string).
	Detail string
}
