package api

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkflowTransition_ResolvedFillsSynthesizedEndpoints(t *testing.T) {
	fromStart := WorkflowTransition{Name: "Start", FromState: "ignored", ToState: "Working", Type: TransitionFromStart}
	toCompleted := WorkflowTransition{Name: "Stop", FromState: "Working", ToState: "ignored", Type: TransitionToCompleted}
	normal := WorkflowTransition{Name: "Go", FromState: "A", ToState: "B"}

	assert.Equal(t, KindStart, fromStart.Resolved().FromState)
	assert.Equal(t, StateKind("Working"), fromStart.Resolved().ToState)
	assert.Equal(t, KindCompleted, toCompleted.Resolved().ToState)
	assert.Equal(t, normal, normal.Resolved())

	assert.Same(t, Start, fromStart.From())
	assert.Same(t, Completed, toCompleted.To())
	assert.Equal(t, "Name = [Stop], From = [Working], To = [Completed], Type = [ToCompleted]", toCompleted.String())
}

func TestWorkflowTransition_InvokeWrapsErrors(t *testing.T) {
	inst := NewProcessInstance("i1", "wf", nil)
	boom := errors.New("boom")

	tr := WorkflowTransition{
		Name:    "Go",
		Handler: func(ctx context.Context, inst *ProcessInstance) error { return boom },
	}

	err := tr.Invoke(context.Background(), inst)

	require.ErrorIs(t, err, boom)
	var exec *ExecutionError
	require.ErrorAs(t, err, &exec)
	assert.Equal(t, "Go", exec.Transition)
	assert.Equal(t, "wf", exec.DefinitionType)
}

func TestWorkflowTransition_InvokeRecoversPanic(t *testing.T) {
	inst := NewProcessInstance("i1", "wf", nil)
	tr := WorkflowTransition{
		Name:    "Go",
		Handler: func(ctx context.Context, inst *ProcessInstance) error { panic("kaboom") },
	}

	err := tr.Invoke(context.Background(), inst)

	var exec *ExecutionError
	require.ErrorAs(t, err, &exec)
	assert.Contains(t, err.Error(), "panic: kaboom")
}

func TestPostTransitProcessor_InvokeReturnsErrorUnwrapped(t *testing.T) {
	boom := errors.New("boom")
	p := PostTransitProcessor{
		Name:    "join",
		Handler: func(ctx context.Context, inst *ProcessInstance) error { return boom },
	}

	err := p.Invoke(context.Background(), NewProcessInstance("i1", "wf", nil))
	assert.Same(t, boom, err)
}

func TestDefinitionError_MatchesInvalidDefinition(t *testing.T) {
	err := &DefinitionError{
		DefinitionType: "wf",
		Transition:     "Go",
		Reason:         "merging",
		Err:            ErrInvalidTransitionDefinition,
	}

	assert.True(t, IsDefinitionError(err))
	assert.ErrorIs(t, err, ErrInvalidTransitionDefinition)
	assert.Equal(t, `workflow definition "wf", transition "Go": merging`, err.Error())
	assert.False(t, IsDefinitionError(ErrStateNotActive))
}

func TestDefinition_NewDefinitionValue(t *testing.T) {
	plain := Definition{Type: "plain"}
	assert.Equal(t, NamedDefinition("plain"), plain.NewDefinitionValue())

	custom := Definition{
		Type:    "custom",
		Factory: func() WorkflowDefinition { return NamedDefinition("from-factory") },
	}
	assert.Equal(t, NamedDefinition("from-factory"), custom.NewDefinitionValue())
}
