package api

import (
	"fmt"
	"sync"
)

// StateKind identifies a named point in a workflow graph. Workflow authors
// declare their kinds as constants:
//
//	const (
//	    Working api.StateKind = "Working"
//	    Review  api.StateKind = "Review"
//	)
type StateKind string

const (
	// KindStart is the implicit entry point of every process instance.
	KindStart StateKind = "Start"

	// KindCompleted is the conventional terminal marker. It is not enforced
	// as terminal: transitions may leave it again.
	KindCompleted StateKind = "Completed"
)

// StateAttribute distinguishes otherwise identical state kinds that must be
// cached separately.
type StateAttribute int

const (
	AttributeNormal StateAttribute = iota
)

func (a StateAttribute) String() string {
	if a == AttributeNormal {
		return "Normal"
	}
	return fmt.Sprintf("Attribute(%d)", int(a))
}

// WorkflowState is an interned state handle. For a given (kind, attribute)
// pair there is exactly one *WorkflowState for the lifetime of the process,
// so states can be compared with ==.
type WorkflowState struct {
	kind      StateKind
	attribute StateAttribute
}

// Kind returns the state kind.
func (s *WorkflowState) Kind() StateKind { return s.kind }

// Attribute returns the secondary tag of the state.
func (s *WorkflowState) Attribute() StateAttribute { return s.attribute }

// Equal reports whether s and other share kind and attribute.
func (s *WorkflowState) Equal(other *WorkflowState) bool {
	if s == nil || other == nil {
		return s == other
	}
	return s.kind == other.kind && s.attribute == other.attribute
}

func (s *WorkflowState) String() string {
	if s == nil {
		return "<nil>"
	}
	if s.attribute == AttributeNormal {
		return string(s.kind)
	}
	return fmt.Sprintf("%s[%s]", s.kind, s.attribute)
}

// stateCache is keyed first by kind, then by attribute. Both levels are
// sync.Maps so concurrent first access from many processes is safe.
var stateCache sync.Map // StateKind -> *sync.Map (StateAttribute -> *WorkflowState)

var (
	// Start is the state every fresh process instance occupies.
	Start = OfType(KindStart)

	// Completed is the conventional end state.
	Completed = OfType(KindCompleted)
)

// OfType returns the interned state for kind with AttributeNormal.
func OfType(kind StateKind) *WorkflowState {
	return OfTypeWithAttribute(kind, AttributeNormal)
}

// OfTypeWithAttribute returns the interned state for (kind, attribute),
// creating it on first use. Racing first callers all receive the same value.
func OfTypeWithAttribute(kind StateKind, attribute StateAttribute) *WorkflowState {
	inner, ok := stateCache.Load(kind)
	if !ok {
		inner, _ = stateCache.LoadOrStore(kind, &sync.Map{})
	}
	byAttr := inner.(*sync.Map)

	if s, ok := byAttr.Load(attribute); ok {
		return s.(*WorkflowState)
	}
	s, _ := byAttr.LoadOrStore(attribute, &WorkflowState{kind: kind, attribute: attribute})
	return s.(*WorkflowState)
}

// OfTypes maps kinds to their interned AttributeNormal states.
func OfTypes(kinds ...StateKind) []*WorkflowState {
	out := make([]*WorkflowState, 0, len(kinds))
	for _, k := range kinds {
		out = append(out, OfType(k))
	}
	return out
}
