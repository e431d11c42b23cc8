package api

import (
	"sort"
	"sync"

	"github.com/google/uuid"
)

// ProcessInstance is a running workflow. It occupies a set of active states
// at once; AND-branching grows the set and joins shrink it.
//
// The active-state set is only mutated under the instance mutex, through
// TransitionState. Handlers and hooks run outside that lock.
type ProcessInstance struct {
	id             string
	definitionType string
	definition     WorkflowDefinition
	context        *WorkflowContext

	mu     sync.Mutex
	active map[*WorkflowState]struct{}
}

// NewProcessInstance creates an instance occupying only Start. An empty id is
// replaced by a fresh UUID.
func NewProcessInstance(id, definitionType string, definition WorkflowDefinition) *ProcessInstance {
	if id == "" {
		id = uuid.NewString()
	}
	if definition == nil {
		definition = NamedDefinition(definitionType)
	}
	return &ProcessInstance{
		id:             id,
		definitionType: definitionType,
		definition:     definition,
		context:        NewWorkflowContext(),
		active:         map[*WorkflowState]struct{}{Start: {}},
	}
}

// ID returns the process identifier.
func (p *ProcessInstance) ID() string { return p.id }

// DefinitionType returns the registered type of the bound definition.
func (p *ProcessInstance) DefinitionType() string { return p.definitionType }

// Definition returns the bound definition value.
func (p *ProcessInstance) Definition() WorkflowDefinition { return p.definition }

// Context returns the instance's value bag.
func (p *ProcessInstance) Context() *WorkflowContext { return p.context }

// ActiveStates returns a snapshot of the active states ordered by kind and
// attribute. Mutating the returned slice does not affect the instance.
func (p *ProcessInstance) ActiveStates() []*WorkflowState {
	p.mu.Lock()
	out := make([]*WorkflowState, 0, len(p.active))
	for s := range p.active {
		out = append(out, s)
	}
	p.mu.Unlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].kind != out[j].kind {
			return out[i].kind < out[j].kind
		}
		return out[i].attribute < out[j].attribute
	})
	return out
}

// IsActive reports whether the instance currently occupies state.
func (p *ProcessInstance) IsActive(state *WorkflowState) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, ok := p.active[state]
	return ok
}

// AllActive reports whether every given state is active.
func (p *ProcessInstance) AllActive(states ...*WorkflowState) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, s := range states {
		if _, ok := p.active[s]; !ok {
			return false
		}
	}
	return true
}
