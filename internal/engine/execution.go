package engine

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/petrijr/flowlight/pkg/api"
)

// executionService is the synchronous state machine core. It holds no
// per-instance state: everything it mutates lives on the ProcessInstance.
type executionService struct {
	transitions *transitionManager
	observer    api.Observer
}

var _ api.ExecutionService = (*executionService)(nil)

// branch is the set of transitions of one named transition that leave the
// same from-state.
type branch struct {
	from        api.StateKind
	transitions []api.WorkflowTransition
}

func (s *executionService) Execute(ctx context.Context, inst *api.ProcessInstance, transitionName string) (err error) {
	if inst == nil {
		return fmt.Errorf("%w: process instance is nil", api.ErrInvalidArgument)
	}
	if transitionName == "" {
		return fmt.Errorf("%w: transition name is required", api.ErrInvalidArgument)
	}

	started := time.Now()
	s.observer.OnTransitionStart(ctx, inst, transitionName)
	defer func() {
		if err != nil {
			s.observer.OnTransitionFailed(ctx, inst, transitionName, err)
		}
	}()

	table, err := s.transitions.Table(inst.DefinitionType())
	if err != nil {
		return err
	}

	transitions, err := table.Transitions(transitionName)
	if err != nil {
		return err
	}

	if err := detectStateMerging(inst.DefinitionType(), transitionName, transitions); err != nil {
		return err
	}

	// A failing group aborts the call. Groups committed before it stay
	// committed.
	for _, b := range groupByFromState(transitions) {
		for _, tr := range b.transitions {
			if err := tr.Invoke(ctx, inst); err != nil {
				return err
			}
		}

		from := api.OfType(b.from)
		to := distinctToStates(b.transitions)

		if err := api.TransitionState(inst, []*api.WorkflowState{from}, to); err != nil {
			return err
		}
		s.observer.OnBranchCommitted(ctx, inst, transitionName, from, to)

		for _, hook := range table.PostTransitProcessors() {
			hookStarted := time.Now()
			herr := hook.Invoke(ctx, inst)
			s.observer.OnHookInvoked(ctx, inst, transitionName, hook.Name, herr, time.Since(hookStarted))
			if herr != nil {
				return herr
			}
		}
	}

	s.observer.OnTransitionCompleted(ctx, inst, transitionName, time.Since(started))
	return nil
}

// detectStateMerging rejects named transitions in which one to-state is
// reached from more than one distinct from-state. Joins have to be expressed
// through post-transition processors instead.
func detectStateMerging(definitionType, transitionName string, transitions []api.WorkflowTransition) error {
	var order []api.StateKind
	sources := make(map[api.StateKind][]api.StateKind)

	for _, tr := range transitions {
		if _, seen := sources[tr.ToState]; !seen {
			order = append(order, tr.ToState)
		}
		if !slices.Contains(sources[tr.ToState], tr.FromState) {
			sources[tr.ToState] = append(sources[tr.ToState], tr.FromState)
		}
	}

	for _, to := range order {
		from := sources[to]
		if len(from) <= 1 {
			continue
		}
		names := make([]string, 0, len(from))
		for _, f := range from {
			names = append(names, string(f))
		}
		return &api.DefinitionError{
			DefinitionType: definitionType,
			Transition:     transitionName,
			Reason: fmt.Sprintf("merging state transitions not supported: to state [%s] reached from [%s]",
				to, strings.Join(names, ", ")),
			Err: api.ErrInvalidTransitionDefinition,
		}
	}
	return nil
}

// groupByFromState keeps the order in which from-states first appear.
func groupByFromState(transitions []api.WorkflowTransition) []branch {
	var out []branch
	index := make(map[api.StateKind]int)

	for _, tr := range transitions {
		i, ok := index[tr.FromState]
		if !ok {
			i = len(out)
			index[tr.FromState] = i
			out = append(out, branch{from: tr.FromState})
		}
		out[i].transitions = append(out[i].transitions, tr)
	}
	return out
}

func distinctToStates(transitions []api.WorkflowTransition) []*api.WorkflowState {
	var kinds []api.StateKind
	for _, tr := range transitions {
		if !slices.Contains(kinds, tr.ToState) {
			kinds = append(kinds, tr.ToState)
		}
	}
	return api.OfTypes(kinds...)
}
