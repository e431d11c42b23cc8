package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petrijr/flowlight/pkg/api"
)

func TestDefinitionRegistry_RegisterAndGet(t *testing.T) {
	r := newDefinitionRegistry()
	def := simpleDefinition(&recorder{})

	require.NoError(t, r.Register(def))

	got, err := r.Get("Simple")
	require.NoError(t, err)
	assert.Equal(t, "Simple", got.Type)

	meta, err := r.WorkflowMetadata("Simple")
	require.NoError(t, err)
	assert.Len(t, meta.Transitions, len(def.Transitions))
}

func TestDefinitionRegistry_RejectsDuplicatesAndEmptyType(t *testing.T) {
	r := newDefinitionRegistry()
	require.NoError(t, r.Register(simpleDefinition(&recorder{})))

	assert.ErrorIs(t, r.Register(simpleDefinition(&recorder{})), api.ErrDefinitionAlreadyRegistered)
	assert.ErrorIs(t, r.Register(api.Definition{}), api.ErrInvalidArgument)
}

func TestDefinitionRegistry_UnknownType(t *testing.T) {
	r := newDefinitionRegistry()

	_, err := r.Get("missing")
	assert.ErrorIs(t, err, api.ErrDefinitionNotFound)

	_, err = r.WorkflowMetadata("missing")
	assert.ErrorIs(t, err, api.ErrDefinitionNotFound)
}

func TestTransitionTable_GroupsByName(t *testing.T) {
	table, err := buildTransitionTable("Branched", branchedDefinition(&recorder{}).Metadata())
	require.NoError(t, err)

	start, err := table.Transitions("Start")
	require.NoError(t, err)
	require.Len(t, start, 2)
	assert.Equal(t, api.KindStart, start[0].FromState)
	assert.Equal(t, workingA, start[0].ToState)
	assert.Equal(t, workingB, start[1].ToState)

	_, err = table.Transitions("Nope")
	assert.ErrorIs(t, err, api.ErrTransitionNotFound)

	require.Len(t, table.PostTransitProcessors(), 1)
}

func TestTransitionTable_NamesAnonymousHooks(t *testing.T) {
	meta := simpleDefinition(&recorder{}).Metadata()
	meta.PostTransitProcessors = []api.PostTransitProcessor{{Handler: noop}}

	table, err := buildTransitionTable("Simple", meta)
	require.NoError(t, err)
	assert.Equal(t, "post-transit-0", table.PostTransitProcessors()[0].Name)
}

func TestTransitionManager_CachesPerType(t *testing.T) {
	r := newDefinitionRegistry()
	require.NoError(t, r.Register(simpleDefinition(&recorder{})))
	m := newTransitionManager(r)

	first, err := m.Table("Simple")
	require.NoError(t, err)
	second, err := m.Table("Simple")
	require.NoError(t, err)

	assert.Same(t, first, second)
}
