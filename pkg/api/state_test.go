package api

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOfType_ReturnsInternedState(t *testing.T) {
	a := OfType("state-test-a")
	b := OfType("state-test-a")

	require.Same(t, a, b)
	assert.Equal(t, StateKind("state-test-a"), a.Kind())
	assert.Equal(t, AttributeNormal, a.Attribute())
	assert.Equal(t, "state-test-a", a.String())
}

func TestOfTypeWithAttribute_DistinctPerAttribute(t *testing.T) {
	normal := OfType("state-test-attr")
	tagged := OfTypeWithAttribute("state-test-attr", StateAttribute(7))

	assert.NotSame(t, normal, tagged)
	assert.False(t, normal.Equal(tagged))
	assert.Same(t, tagged, OfTypeWithAttribute("state-test-attr", StateAttribute(7)))
	assert.Equal(t, "state-test-attr[Attribute(7)]", tagged.String())
}

func TestWellKnownStates(t *testing.T) {
	assert.Same(t, Start, OfType(KindStart))
	assert.Same(t, Completed, OfType(KindCompleted))
	assert.NotSame(t, Start, Completed)
}

func TestWorkflowState_EqualHandlesNil(t *testing.T) {
	var nilState *WorkflowState

	assert.True(t, nilState.Equal(nil))
	assert.False(t, Start.Equal(nil))
	assert.False(t, nilState.Equal(Start))
	assert.Equal(t, "<nil>", nilState.String())
}

func TestOfTypes_PreservesOrder(t *testing.T) {
	states := OfTypes("state-test-x", "state-test-y", "state-test-x")

	require.Len(t, states, 3)
	assert.Same(t, OfType("state-test-x"), states[0])
	assert.Same(t, OfType("state-test-y"), states[1])
	assert.Same(t, states[0], states[2])
}

func TestOfType_ConcurrentFirstAccess(t *testing.T) {
	const goroutines = 64

	results := make([]*WorkflowState, goroutines)
	var wg sync.WaitGroup
	start := make(chan struct{})

	for i := range goroutines {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			results[i] = OfType("state-test-concurrent")
		}(i)
	}
	close(start)
	wg.Wait()

	for i := 1; i < goroutines; i++ {
		require.Same(t, results[0], results[i], "goroutine %d got a different state", i)
	}
}
