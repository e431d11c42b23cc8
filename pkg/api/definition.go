package api

// WorkflowDefinition is the value bound to a process instance. Handlers can
// type-assert ProcessInstance.Definition to reach per-instance definition
// state.
type WorkflowDefinition interface {
	// DefinitionType names the definition. It keys the transition table.
	DefinitionType() string
}

// DefinitionFactory creates a fresh definition value for a new process
// instance.
type DefinitionFactory func() WorkflowDefinition

// Definition is an explicit registration of a workflow definition type: the
// transitions and post-transition processors it declares, and an optional
// factory for the per-instance definition value.
type Definition struct {
	Type                  string
	Factory               DefinitionFactory
	Transitions           []WorkflowTransition
	PostTransitProcessors []PostTransitProcessor
}

// Metadata returns the declared transitions and hooks.
func (d Definition) Metadata() DefinitionMetadata {
	return DefinitionMetadata{
		Transitions:           append([]WorkflowTransition(nil), d.Transitions...),
		PostTransitProcessors: append([]PostTransitProcessor(nil), d.PostTransitProcessors...),
	}
}

// NewDefinitionValue returns a value from the factory, or a plain value
// carrying only the type name when no factory is set.
func (d Definition) NewDefinitionValue() WorkflowDefinition {
	if d.Factory != nil {
		if v := d.Factory(); v != nil {
			return v
		}
	}
	return NamedDefinition(d.Type)
}

// NamedDefinition is a definition value with no state of its own.
type NamedDefinition string

func (n NamedDefinition) DefinitionType() string { return string(n) }

// DefinitionMetadata is what a MetadataProvider reports for one definition
// type.
type DefinitionMetadata struct {
	Transitions           []WorkflowTransition
	PostTransitProcessors []PostTransitProcessor
}

// MetadataProvider reports the transitions and hooks a definition type
// declares. The engine queries it at most once per successfully built type.
type MetadataProvider interface {
	WorkflowMetadata(definitionType string) (DefinitionMetadata, error)
}

// MetadataProviderFunc adapts a function to MetadataProvider.
type MetadataProviderFunc func(definitionType string) (DefinitionMetadata, error)

func (f MetadataProviderFunc) WorkflowMetadata(definitionType string) (DefinitionMetadata, error) {
	return f(definitionType)
}
