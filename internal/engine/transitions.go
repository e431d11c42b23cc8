package engine

import (
	"fmt"
	"sync"

	"github.com/petrijr/flowlight/pkg/api"
)

// transitionTable is the validated, resolved view of one definition type.
type transitionTable struct {
	definitionType string
	byName         map[string][]api.WorkflowTransition
	hooks          []api.PostTransitProcessor
}

func (t *transitionTable) Transitions(name string) ([]api.WorkflowTransition, error) {
	list, ok := t.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q in workflow %q", api.ErrTransitionNotFound, name, t.definitionType)
	}
	return list, nil
}

func (t *transitionTable) PostTransitProcessors() []api.PostTransitProcessor {
	return t.hooks
}

// transitionManager builds a transitionTable per definition type on first
// request and keeps it for the lifetime of the manager. The provider is
// queried once per type; failed builds are not cached.
type transitionManager struct {
	provider api.MetadataProvider
	tables   sync.Map // string -> *transitionTable
}

func newTransitionManager(provider api.MetadataProvider) *transitionManager {
	return &transitionManager{provider: provider}
}

func (m *transitionManager) Table(definitionType string) (*transitionTable, error) {
	if t, ok := m.tables.Load(definitionType); ok {
		return t.(*transitionTable), nil
	}

	meta, err := m.provider.WorkflowMetadata(definitionType)
	if err != nil {
		return nil, err
	}

	table, err := buildTransitionTable(definitionType, meta)
	if err != nil {
		return nil, err
	}

	// Racing builders produce equivalent tables; keep whichever landed first.
	actual, _ := m.tables.LoadOrStore(definitionType, table)
	return actual.(*transitionTable), nil
}

func buildTransitionTable(definitionType string, meta api.DefinitionMetadata) (*transitionTable, error) {
	if len(meta.Transitions) == 0 {
		return nil, &api.DefinitionError{
			DefinitionType: definitionType,
			Reason:         "no transitions found",
		}
	}

	table := &transitionTable{
		definitionType: definitionType,
		byName:         make(map[string][]api.WorkflowTransition),
	}

	for _, tr := range meta.Transitions {
		if tr.Name == "" {
			return nil, &api.DefinitionError{
				DefinitionType: definitionType,
				Reason:         "transition name must not be empty",
			}
		}
		if tr.Handler == nil {
			return nil, &api.DefinitionError{
				DefinitionType: definitionType,
				Transition:     tr.Name,
				Reason:         "transition has no handler",
			}
		}

		resolved := tr.Resolved()
		if resolved.FromState == "" {
			return nil, &api.DefinitionError{
				DefinitionType: definitionType,
				Transition:     tr.Name,
				Reason:         "from state not defined",
			}
		}
		if resolved.ToState == "" {
			return nil, &api.DefinitionError{
				DefinitionType: definitionType,
				Transition:     tr.Name,
				Reason:         "to state not defined",
			}
		}

		table.byName[tr.Name] = append(table.byName[tr.Name], resolved)
	}

	for i, p := range meta.PostTransitProcessors {
		if p.Handler == nil {
			return nil, &api.DefinitionError{
				DefinitionType: definitionType,
				Reason:         fmt.Sprintf("post transition processor #%d (%q) has no handler", i, p.Name),
			}
		}
		if p.Name == "" {
			p.Name = fmt.Sprintf("post-transit-%d", i)
		}
		table.hooks = append(table.hooks, p)
	}

	return table, nil
}
