package flowlight

import (
	"context"

	"github.com/petrijr/flowlight/pkg/api"
)

// DefinitionBuilder provides a fluent API for declaring a workflow
// definition's transitions and post-transition processors:
//
//	const Working flowlight.StateKind = "Working"
//
//	def := flowlight.New("Simple").
//	    FromStart("Start", Working, startWorking).
//	    ToCompleted("Stop", Working, stopWorking)
//
//	if err := def.Register(engine); err != nil {
//	    log.Fatal(err)
//	}
//
//	inst, _ := engine.CreateProcessInstance(ctx, def.Type())
//	_ = engine.Execute(ctx, inst, "Start")
//
// The builder only records declarations. Validation happens when the engine
// first builds the transition table for the definition type, and problems
// surface from Execute as definition errors.
type DefinitionBuilder struct {
	def api.Definition
}

// New creates a new definition builder for the given definition type.
func New(definitionType string) *DefinitionBuilder {
	return &DefinitionBuilder{
		def: api.Definition{
			Type: definitionType,
		},
	}
}

// Type returns the definition type name.
func (b *DefinitionBuilder) Type() string {
	return b.def.Type
}

// Definition returns a copy of the underlying Definition.
// Typically used when interacting with lower-level APIs.
func (b *DefinitionBuilder) Definition() Definition {
	def := b.def
	def.Transitions = append([]api.WorkflowTransition(nil), b.def.Transitions...)
	def.PostTransitProcessors = append([]api.PostTransitProcessor(nil), b.def.PostTransitProcessors...)
	return def
}

// Factory sets the function creating the per-instance definition value.
func (b *DefinitionBuilder) Factory(f DefinitionFactory) *DefinitionBuilder {
	b.def.Factory = f
	return b
}

// Transition declares a normal transition from one state kind to another.
// Declaring several transitions with the same name makes that name affect
// several branches at once.
func (b *DefinitionBuilder) Transition(name string, from, to StateKind, fn HandlerFunc) *DefinitionBuilder {
	return b.add(api.WorkflowTransition{
		Name:      name,
		FromState: from,
		ToState:   to,
		Type:      api.TransitionNormal,
		Handler:   fn,
	})
}

// FromStart declares a transition leaving the implicit Start state.
func (b *DefinitionBuilder) FromStart(name string, to StateKind, fn HandlerFunc) *DefinitionBuilder {
	return b.add(api.WorkflowTransition{
		Name:    name,
		ToState: to,
		Type:    api.TransitionFromStart,
		Handler: fn,
	})
}

// ToCompleted declares a transition entering the Completed state.
func (b *DefinitionBuilder) ToCompleted(name string, from StateKind, fn HandlerFunc) *DefinitionBuilder {
	return b.add(api.WorkflowTransition{
		Name:      name,
		FromState: from,
		Type:      api.TransitionToCompleted,
		Handler:   fn,
	})
}

// WithTransition appends a fully specified transition descriptor.
func (b *DefinitionBuilder) WithTransition(t WorkflowTransition) *DefinitionBuilder {
	return b.add(t)
}

func (b *DefinitionBuilder) add(t api.WorkflowTransition) *DefinitionBuilder {
	b.def.Transitions = append(b.def.Transitions, t)
	return b
}

// PostTransit registers a hook run after every committed branch of every
// transition of this definition, in registration order.
func (b *DefinitionBuilder) PostTransit(name string, fn HandlerFunc) *DefinitionBuilder {
	b.def.PostTransitProcessors = append(b.def.PostTransitProcessors, api.PostTransitProcessor{
		Name:    name,
		Handler: fn,
	})
	return b
}

// Join registers a post-transition processor that replaces the given states
// with to as soon as all of them are active at once.
func (b *DefinitionBuilder) Join(name string, to StateKind, from ...StateKind) *DefinitionBuilder {
	fromStates := api.OfTypes(from...)
	toState := api.OfType(to)

	return b.PostTransit(name, func(ctx context.Context, inst *ProcessInstance) error {
		if !inst.AllActive(fromStates...) {
			return nil
		}
		return api.TransitionState(inst, fromStates, []*api.WorkflowState{toState})
	})
}

// Register registers the built definition with the given engine.
func (b *DefinitionBuilder) Register(eng Engine) error {
	return eng.RegisterWorkflow(b.Definition())
}

// MustRegister is like Register but panics on error.
// Useful for initialization in main().
func (b *DefinitionBuilder) MustRegister(eng Engine) {
	if err := b.Register(eng); err != nil {
		panic(err)
	}
}
