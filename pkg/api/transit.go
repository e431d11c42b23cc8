package api

// TransitionState atomically replaces fromStates with toStates in the
// instance's active-state set.
//
// All fromStates must be distinct and currently active; otherwise a
// *TransitionError is returned and the set is left untouched. Adding a state
// that is already active is a no-op.
//
// The engine uses it to commit each branch of a named transition, and
// post-transition processors call it directly to implement joins:
//
//	if inst.AllActive(doneA, doneB) {
//	    return api.TransitionState(inst, []*api.WorkflowState{doneA, doneB}, []*api.WorkflowState{api.Completed})
//	}
func TransitionState(inst *ProcessInstance, fromStates, toStates []*WorkflowState) error {
	inst.mu.Lock()
	defer inst.mu.Unlock()

	seen := make(map[*WorkflowState]struct{}, len(fromStates))
	var duplicated []*WorkflowState
	for _, s := range fromStates {
		if _, dup := seen[s]; dup {
			duplicated = append(duplicated, s)
			continue
		}
		seen[s] = struct{}{}
	}
	if len(duplicated) > 0 {
		return &TransitionError{InstanceID: inst.id, States: duplicated, Err: ErrDuplicateFromStates}
	}

	var missing []*WorkflowState
	for _, s := range fromStates {
		if _, ok := inst.active[s]; !ok {
			missing = append(missing, s)
		}
	}
	if len(missing) > 0 {
		return &TransitionError{InstanceID: inst.id, States: missing, Err: ErrStateNotActive}
	}

	for _, s := range fromStates {
		delete(inst.active, s)
	}
	for _, s := range toStates {
		if s != nil {
			inst.active[s] = struct{}{}
		}
	}
	return nil
}
