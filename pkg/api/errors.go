package api

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidArgument is returned for malformed call arguments such as an
	// empty transition name.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrInvalidDefinition matches every definition error. Definition errors
	// are programming mistakes in a workflow definition and are never retried.
	ErrInvalidDefinition = errors.New("invalid workflow definition")

	// ErrInvalidTransitionDefinition is returned when a single named
	// transition tries to merge several from-states into one to-state.
	// Joins must be expressed with post-transition processors.
	ErrInvalidTransitionDefinition = errors.New("invalid transition definition")

	// ErrTransitionNotFound is returned when a definition declares no
	// transition with the requested name.
	ErrTransitionNotFound = errors.New("transition not found")

	// ErrDefinitionNotFound is returned when no definition is registered for
	// a definition type.
	ErrDefinitionNotFound = errors.New("workflow definition not found")

	// ErrStateNotActive is returned when a transition leaves a state the
	// process instance does not occupy.
	ErrStateNotActive = errors.New("state not active")

	// ErrDuplicateFromStates is returned when a state-set transition names the
	// same from-state more than once.
	ErrDuplicateFromStates = errors.New("duplicate from states")

	// ErrNotSupported is returned by capabilities that are declared but not
	// implemented, such as looking up process instances by id.
	ErrNotSupported = errors.New("not supported")
)

// DefinitionError describes a malformed workflow definition.
type DefinitionError struct {
	DefinitionType string
	Transition     string
	Reason         string

	// Err is an optional, more specific cause such as
	// ErrInvalidTransitionDefinition.
	Err error
}

func (e *DefinitionError) Error() string {
	var b strings.Builder
	b.WriteString("workflow definition ")
	fmt.Fprintf(&b, "%q", e.DefinitionType)
	if e.Transition != "" {
		fmt.Fprintf(&b, ", transition %q", e.Transition)
	}
	b.WriteString(": ")
	b.WriteString(e.Reason)
	return b.String()
}

// Is makes every DefinitionError match ErrInvalidDefinition.
func (e *DefinitionError) Is(target error) bool {
	return target == ErrInvalidDefinition
}

func (e *DefinitionError) Unwrap() error { return e.Err }

// TransitionError is a caller error raised when the active-state set does not
// allow the requested move. The instance is left unchanged.
type TransitionError struct {
	InstanceID string
	States     []*WorkflowState
	Err        error
}

func (e *TransitionError) Error() string {
	names := make([]string, 0, len(e.States))
	for _, s := range e.States {
		names = append(names, s.String())
	}
	return fmt.Sprintf("process instance %s: %v: [%s]", e.InstanceID, e.Err, strings.Join(names, ", "))
}

func (e *TransitionError) Unwrap() error { return e.Err }

// ExecutionError wraps a failure returned (or panicked) by a transition
// handler.
type ExecutionError struct {
	Transition     string
	DefinitionType string
	Err            error
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("executing transition %q of workflow %q: %v", e.Transition, e.DefinitionType, e.Err)
}

func (e *ExecutionError) Unwrap() error { return e.Err }

// IsDefinitionError reports whether err is (or wraps) a definition error.
func IsDefinitionError(err error) bool {
	return errors.Is(err, ErrInvalidDefinition)
}
