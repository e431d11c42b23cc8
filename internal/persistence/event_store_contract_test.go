package persistence

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/petrijr/flowlight/pkg/api"
)

// runEventStoreContract exercises behavior every EventStore must share.
// instancePrefix keeps ids unique for stores that outlive one test.
func runEventStoreContract(t *testing.T, store EventStore, instancePrefix string) {
	t.Helper()
	ctx := context.Background()

	id := instancePrefix + "inst-1"
	other := instancePrefix + "inst-2"
	at := time.Unix(1700000000, 0)

	events := []api.TransitionEvent{
		{InstanceID: id, At: at, Type: api.EventTransitionStarted, DefinitionType: "Branched", Transition: "Start"},
		{InstanceID: id, At: at.Add(time.Millisecond), Type: api.EventBranchCommitted, DefinitionType: "Branched", Transition: "Start",
			FromState: api.KindStart, ToStates: []api.StateKind{"WorkingA", "WorkingB"}},
		{InstanceID: id, At: at.Add(2 * time.Millisecond), Type: api.EventHookInvoked, DefinitionType: "Branched", Transition: "Start", Detail: "join"},
		{InstanceID: id, At: at.Add(3 * time.Millisecond), Type: api.EventBranchCommitted, DefinitionType: "Branched", Transition: "Route",
			FromState: "Intake", ToStates: []api.StateKind{"Review,Legal", ""}},
		{InstanceID: other, At: at, Type: api.EventTransitionFailed, DefinitionType: "Simple", Transition: "Stop", Detail: "state not active"},
	}
	for _, ev := range events {
		if err := store.AppendEvent(ctx, ev); err != nil {
			t.Fatalf("AppendEvent failed: %v", err)
		}
	}

	got, err := store.ListEvents(ctx, id)
	if err != nil {
		t.Fatalf("ListEvents failed: %v", err)
	}
	if len(got) != 4 {
		t.Fatalf("expected 4 events for %s, got %d", id, len(got))
	}
	for i, ev := range got {
		want := events[i]
		if ev.Type != want.Type || ev.Transition != want.Transition || ev.DefinitionType != want.DefinitionType {
			t.Fatalf("event %d mismatch: got %+v, want %+v", i, ev, want)
		}
		if !ev.At.Equal(want.At) {
			t.Fatalf("event %d timestamp mismatch: got %v, want %v", i, ev.At, want.At)
		}
	}
	if got[1].FromState != api.KindStart || !reflect.DeepEqual(got[1].ToStates, []api.StateKind{"WorkingA", "WorkingB"}) {
		t.Fatalf("branch event states mismatch: %+v", got[1])
	}
	if got[2].Detail != "join" {
		t.Fatalf("expected detail join, got %q", got[2].Detail)
	}
	if !reflect.DeepEqual(got[3].ToStates, []api.StateKind{"Review,Legal", ""}) {
		t.Fatalf("state kinds not preserved: got %q", got[3].ToStates)
	}

	otherEvents, err := store.ListEvents(ctx, other)
	if err != nil {
		t.Fatalf("ListEvents(other) failed: %v", err)
	}
	if len(otherEvents) != 1 || otherEvents[0].Detail != "state not active" {
		t.Fatalf("unexpected events for %s: %+v", other, otherEvents)
	}

	none, err := store.ListEvents(ctx, instancePrefix+"missing")
	if err != nil {
		t.Fatalf("ListEvents(missing) failed: %v", err)
	}
	if len(none) != 0 {
		t.Fatalf("expected no events for unknown instance, got %d", len(none))
	}

	if err := store.AppendEvent(ctx, api.TransitionEvent{Type: api.EventTransitionStarted}); !errors.Is(err, ErrEmptyInstanceID) {
		t.Fatalf("expected ErrEmptyInstanceID, got %v", err)
	}
}
