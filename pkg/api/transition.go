package api

import (
	"context"
	"fmt"
)

// HandlerFunc is the side-effecting callback bound to a transition or a
// post-transition processor.
type HandlerFunc func(ctx context.Context, inst *ProcessInstance) error

// TransitionType tells the engine which endpoints of a transition are
// synthesized.
type TransitionType int

const (
	// TransitionNormal requires both FromState and ToState.
	TransitionNormal TransitionType = iota
	// TransitionFromStart leaves the Start state; FromState is ignored.
	TransitionFromStart
	// TransitionToCompleted enters the Completed state; ToState is ignored.
	TransitionToCompleted
)

func (t TransitionType) String() string {
	switch t {
	case TransitionNormal:
		return "Normal"
	case TransitionFromStart:
		return "FromStart"
	case TransitionToCompleted:
		return "ToCompleted"
	default:
		return fmt.Sprintf("TransitionType(%d)", int(t))
	}
}

// WorkflowTransition is a named, directed edge between two state kinds.
// Several transitions may share a name: each represents one branch or one
// alternative source affected by that name.
type WorkflowTransition struct {
	Name      string
	FromState StateKind
	ToState   StateKind
	Type      TransitionType
	Handler   HandlerFunc
}

// Resolved returns a copy of t with the endpoints implied by its Type filled
// in.
func (t WorkflowTransition) Resolved() WorkflowTransition {
	switch t.Type {
	case TransitionFromStart:
		t.FromState = KindStart
	case TransitionToCompleted:
		t.ToState = KindCompleted
	}
	return t
}

// From returns the interned from-state.
func (t WorkflowTransition) From() *WorkflowState { return OfType(t.Resolved().FromState) }

// To returns the interned to-state.
func (t WorkflowTransition) To() *WorkflowState { return OfType(t.Resolved().ToState) }

// Invoke runs the handler. Any error or panic is wrapped in an
// *ExecutionError naming the transition and the definition type.
func (t WorkflowTransition) Invoke(ctx context.Context, inst *ProcessInstance) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &ExecutionError{
				Transition:     t.Name,
				DefinitionType: inst.DefinitionType(),
				Err:            fmt.Errorf("panic: %v", r),
			}
		}
	}()

	if herr := t.Handler(ctx, inst); herr != nil {
		return &ExecutionError{
			Transition:     t.Name,
			DefinitionType: inst.DefinitionType(),
			Err:            herr,
		}
	}
	return nil
}

func (t WorkflowTransition) String() string {
	r := t.Resolved()
	return fmt.Sprintf("Name = [%s], From = [%s], To = [%s], Type = [%s]", t.Name, r.FromState, r.ToState, t.Type)
}

// PostTransitProcessor is a hook run after every committed branch of every
// named transition on its definition. Hooks are typically used for AND-joins:
// they inspect the active states and call TransitionState when every branch of
// a join has arrived.
type PostTransitProcessor struct {
	// Name is used in diagnostics only.
	Name    string
	Handler HandlerFunc
}

// Invoke runs the hook. Errors are returned unwrapped and panics propagate.
func (p PostTransitProcessor) Invoke(ctx context.Context, inst *ProcessInstance) error {
	return p.Handler(ctx, inst)
}
