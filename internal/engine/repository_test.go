package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petrijr/flowlight/pkg/api"
)

type counterDefinition struct {
	Count int
}

func (*counterDefinition) DefinitionType() string { return "Counter" }

func TestCreateProcessInstance_UsesFactory(t *testing.T) {
	ctx := context.Background()
	def := api.Definition{
		Type:    "Counter",
		Factory: func() api.WorkflowDefinition { return &counterDefinition{} },
		Transitions: []api.WorkflowTransition{
			{Name: "Inc", ToState: working, Type: api.TransitionFromStart, Handler: func(ctx context.Context, inst *api.ProcessInstance) error {
				inst.Definition().(*counterDefinition).Count++
				return nil
			}},
		},
	}
	eng := newTestEngine(t, nil, def)

	a := newInstance(t, eng, "Counter")
	b := newInstance(t, eng, "Counter")

	assert.NotEqual(t, a.ID(), b.ID())
	assert.NotSame(t, a.Definition(), b.Definition())

	require.NoError(t, eng.Execute(ctx, a, "Inc"))
	assert.Equal(t, 1, a.Definition().(*counterDefinition).Count)
	assert.Equal(t, 0, b.Definition().(*counterDefinition).Count)
}

func TestCreateProcessInstance_Errors(t *testing.T) {
	ctx := context.Background()
	eng := NewInMemoryEngine()

	_, err := eng.CreateProcessInstance(ctx, "")
	assert.ErrorIs(t, err, api.ErrInvalidArgument)

	_, err = eng.CreateProcessInstance(ctx, "Unknown")
	assert.ErrorIs(t, err, api.ErrDefinitionNotFound)
}

func TestCreateProcessInstance_ExternalProviderAllowsUnregisteredTypes(t *testing.T) {
	provider := api.MetadataProviderFunc(func(definitionType string) (api.DefinitionMetadata, error) {
		return simpleDefinition(&recorder{}).Metadata(), nil
	})
	eng := NewEngineWithConfig(Config{Provider: provider})

	inst, err := eng.CreateProcessInstance(context.Background(), "Simple")
	require.NoError(t, err)
	assert.Equal(t, api.NamedDefinition("Simple"), inst.Definition())
	assert.Equal(t, []*api.WorkflowState{api.Start}, inst.ActiveStates())
}

func TestGetProcessInstance_NotSupported(t *testing.T) {
	eng := NewInMemoryEngine()

	_, err := eng.GetProcessInstance(context.Background(), "id")
	assert.ErrorIs(t, err, api.ErrNotSupported)
}

func TestServiceAccessors(t *testing.T) {
	eng := NewInMemoryEngine()

	assert.IsType(t, &executionService{}, ExecutionService(eng))
	assert.IsType(t, &repositoryService{}, RepositoryService(eng))
}
