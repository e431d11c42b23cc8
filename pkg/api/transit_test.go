package api

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	transitA = OfType("transit-A")
	transitB = OfType("transit-B")
	transitC = OfType("transit-C")
)

func TestNewProcessInstance_StartsInStart(t *testing.T) {
	inst := NewProcessInstance("", "wf", nil)

	assert.NotEmpty(t, inst.ID())
	assert.Equal(t, "wf", inst.DefinitionType())
	assert.Equal(t, NamedDefinition("wf"), inst.Definition())
	assert.Equal(t, []*WorkflowState{Start}, inst.ActiveStates())
	assert.NotNil(t, inst.Context())
}

func TestTransitionState_ReplacesFromWithTo(t *testing.T) {
	inst := NewProcessInstance("i1", "wf", nil)

	require.NoError(t, TransitionState(inst, []*WorkflowState{Start}, []*WorkflowState{transitA, transitB}))

	assert.Equal(t, []*WorkflowState{transitA, transitB}, inst.ActiveStates())
	assert.False(t, inst.IsActive(Start))
	assert.True(t, inst.AllActive(transitA, transitB))
}

func TestTransitionState_JoinRemovesAllSources(t *testing.T) {
	inst := NewProcessInstance("i1", "wf", nil)
	require.NoError(t, TransitionState(inst, []*WorkflowState{Start}, []*WorkflowState{transitA, transitB}))

	require.NoError(t, TransitionState(inst, []*WorkflowState{transitA, transitB}, []*WorkflowState{transitC}))

	assert.Equal(t, []*WorkflowState{transitC}, inst.ActiveStates())
}

func TestTransitionState_AddingActiveStateIsNoop(t *testing.T) {
	inst := NewProcessInstance("i1", "wf", nil)
	require.NoError(t, TransitionState(inst, []*WorkflowState{Start}, []*WorkflowState{transitA, transitB}))

	require.NoError(t, TransitionState(inst, []*WorkflowState{transitA}, []*WorkflowState{transitB}))

	assert.Equal(t, []*WorkflowState{transitB}, inst.ActiveStates())
}

func TestTransitionState_SelfLoop(t *testing.T) {
	inst := NewProcessInstance("i1", "wf", nil)
	require.NoError(t, TransitionState(inst, []*WorkflowState{Start}, []*WorkflowState{transitA}))

	require.NoError(t, TransitionState(inst, []*WorkflowState{transitA}, []*WorkflowState{transitA}))

	assert.Equal(t, []*WorkflowState{transitA}, inst.ActiveStates())
}

func TestTransitionState_InactiveFromStateLeavesSetUnchanged(t *testing.T) {
	inst := NewProcessInstance("i1", "wf", nil)
	require.NoError(t, TransitionState(inst, []*WorkflowState{Start}, []*WorkflowState{transitA}))

	err := TransitionState(inst, []*WorkflowState{transitA, transitB}, []*WorkflowState{transitC})

	require.ErrorIs(t, err, ErrStateNotActive)
	var terr *TransitionError
	require.True(t, errors.As(err, &terr))
	assert.Equal(t, "i1", terr.InstanceID)
	assert.Equal(t, []*WorkflowState{transitB}, terr.States)
	assert.Equal(t, []*WorkflowState{transitA}, inst.ActiveStates())
}

func TestTransitionState_DuplicateFromStates(t *testing.T) {
	inst := NewProcessInstance("i1", "wf", nil)

	err := TransitionState(inst, []*WorkflowState{Start, Start}, []*WorkflowState{transitA})

	require.ErrorIs(t, err, ErrDuplicateFromStates)
	assert.Equal(t, []*WorkflowState{Start}, inst.ActiveStates())
}

func TestTransitionState_EmptyToStatesEmptiesSet(t *testing.T) {
	inst := NewProcessInstance("i1", "wf", nil)

	require.NoError(t, TransitionState(inst, []*WorkflowState{Start}, nil))

	assert.Empty(t, inst.ActiveStates())
}

func TestTransitionState_ConcurrentCallersOnlyOneWins(t *testing.T) {
	inst := NewProcessInstance("i1", "wf", nil)

	const goroutines = 32
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		success  int
		inactive int
	)
	for range goroutines {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := TransitionState(inst, []*WorkflowState{Start}, []*WorkflowState{transitA})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				success++
			case errors.Is(err, ErrStateNotActive):
				inactive++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, success)
	assert.Equal(t, goroutines-1, inactive)
	assert.Equal(t, []*WorkflowState{transitA}, inst.ActiveStates())
}

func TestActiveStates_ReturnsCopy(t *testing.T) {
	inst := NewProcessInstance("i1", "wf", nil)

	states := inst.ActiveStates()
	states[0] = transitA

	assert.Equal(t, []*WorkflowState{Start}, inst.ActiveStates())
}
