package persistence

import (
	"context"
	"log/slog"
	"time"

	"github.com/petrijr/flowlight/pkg/api"
)

// HistoryObserver is an api.Observer that appends a TransitionEvent to an
// EventStore for every execution callback. Append failures never fail the
// transition; they are logged and dropped.
type HistoryObserver struct {
	Store  EventStore
	Logger *slog.Logger

	now func() time.Time
}

var (
	_ api.Observer      = (*HistoryObserver)(nil)
	_ api.HistoryReader = (*HistoryObserver)(nil)
)

// NewHistoryObserver records into store. A nil logger means slog.Default().
func NewHistoryObserver(store EventStore, logger *slog.Logger) *HistoryObserver {
	if store == nil {
		store = NoopEventStore{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &HistoryObserver{Store: store, Logger: logger, now: time.Now}
}

// ListEvents reads back the history of one instance.
func (h *HistoryObserver) ListEvents(ctx context.Context, instanceID string) ([]api.TransitionEvent, error) {
	return h.Store.ListEvents(ctx, instanceID)
}

func (h *HistoryObserver) append(ctx context.Context, ev api.TransitionEvent) {
	ev.At = h.now()
	if err := h.Store.AppendEvent(ctx, ev); err != nil {
		h.Logger.WarnContext(ctx, "history_append_failed",
			slog.String("instance_id", ev.InstanceID),
			slog.String("event", string(ev.Type)),
			slog.Any("error", err),
		)
	}
}

func newEvent(inst *api.ProcessInstance, typ api.EventType, transition string) api.TransitionEvent {
	return api.TransitionEvent{
		InstanceID:     inst.ID(),
		Type:           typ,
		DefinitionType: inst.DefinitionType(),
		Transition:     transition,
	}
}

func (h *HistoryObserver) OnTransitionStart(ctx context.Context, inst *api.ProcessInstance, transition string) {
	h.append(ctx, newEvent(inst, api.EventTransitionStarted, transition))
}

func (h *HistoryObserver) OnBranchCommitted(ctx context.Context, inst *api.ProcessInstance, transition string, from *api.WorkflowState, to []*api.WorkflowState) {
	ev := newEvent(inst, api.EventBranchCommitted, transition)
	ev.FromState = from.Kind()
	for _, s := range to {
		ev.ToStates = append(ev.ToStates, s.Kind())
	}
	h.append(ctx, ev)
}

func (h *HistoryObserver) OnHookInvoked(ctx context.Context, inst *api.ProcessInstance, transition string, hook string, err error, d time.Duration) {
	ev := newEvent(inst, api.EventHookInvoked, transition)
	ev.Detail = hook
	if err != nil {
		ev.Detail = hook + ": " + err.Error()
	}
	h.append(ctx, ev)
}

func (h *HistoryObserver) OnTransitionCompleted(ctx context.Context, inst *api.ProcessInstance, transition string, d time.Duration) {
	h.append(ctx, newEvent(inst, api.EventTransitionCompleted, transition))
}

func (h *HistoryObserver) OnTransitionFailed(ctx context.Context, inst *api.ProcessInstance, transition string, err error) {
	ev := newEvent(inst, api.EventTransitionFailed, transition)
	ev.Detail = err.Error()
	h.append(ctx, ev)
}
