package api

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"
)

// Observer receives callbacks from the execution service for logging,
// metrics and history.
//
// Callbacks run synchronously on the goroutine calling Execute, so
// implementations should be fast; heavy work belongs on another goroutine.
type Observer interface {
	// OnTransitionStart is called once per Execute call, before the
	// transition list is loaded.
	OnTransitionStart(ctx context.Context, inst *ProcessInstance, transition string)

	// OnBranchCommitted is called after one from-state group has been
	// committed to the active-state set.
	OnBranchCommitted(ctx context.Context, inst *ProcessInstance, transition string, from *WorkflowState, to []*WorkflowState)

	// OnHookInvoked is called after a post-transition processor returns,
	// for both successes and failures (err != nil).
	OnHookInvoked(ctx context.Context, inst *ProcessInstance, transition string, hook string, err error, duration time.Duration)

	// OnTransitionCompleted is called when every group of the transition
	// has been committed.
	OnTransitionCompleted(ctx context.Context, inst *ProcessInstance, transition string, duration time.Duration)

	// OnTransitionFailed is called when Execute returns an error.
	OnTransitionFailed(ctx context.Context, inst *ProcessInstance, transition string, err error)
}

// NoopObserver is an Observer that does nothing.
// It is used as the default when no observer is configured.
type NoopObserver struct{}

func (NoopObserver) OnTransitionStart(ctx context.Context, inst *ProcessInstance, transition string) {}
func (NoopObserver) OnBranchCommitted(ctx context.Context, inst *ProcessInstance, transition string, from *WorkflowState, to []*WorkflowState) {
}
func (NoopObserver) OnHookInvoked(ctx context.Context, inst *ProcessInstance, transition string, hook string, err error, d time.Duration) {
}
func (NoopObserver) OnTransitionCompleted(ctx context.Context, inst *ProcessInstance, transition string, d time.Duration) {
}
func (NoopObserver) OnTransitionFailed(ctx context.Context, inst *ProcessInstance, transition string, err error) {
}

// CompositeObserver fans out events to multiple observers.
type CompositeObserver struct {
	observers []Observer
}

// NewCompositeObserver creates an Observer that forwards events to each
// non-nil observer in obs.
func NewCompositeObserver(obs ...Observer) Observer {
	filtered := make([]Observer, 0, len(obs))
	for _, o := range obs {
		if o != nil {
			filtered = append(filtered, o)
		}
	}
	if len(filtered) == 0 {
		return NoopObserver{}
	}
	if len(filtered) == 1 {
		return filtered[0]
	}
	return &CompositeObserver{observers: filtered}
}

func (c *CompositeObserver) OnTransitionStart(ctx context.Context, inst *ProcessInstance, transition string) {
	for _, o := range c.observers {
		o.OnTransitionStart(ctx, inst, transition)
	}
}

func (c *CompositeObserver) OnBranchCommitted(ctx context.Context, inst *ProcessInstance, transition string, from *WorkflowState, to []*WorkflowState) {
	for _, o := range c.observers {
		o.OnBranchCommitted(ctx, inst, transition, from, to)
	}
}

func (c *CompositeObserver) OnHookInvoked(ctx context.Context, inst *ProcessInstance, transition string, hook string, err error, d time.Duration) {
	for _, o := range c.observers {
		o.OnHookInvoked(ctx, inst, transition, hook, err, d)
	}
}

func (c *CompositeObserver) OnTransitionCompleted(ctx context.Context, inst *ProcessInstance, transition string, d time.Duration) {
	for _, o := range c.observers {
		o.OnTransitionCompleted(ctx, inst, transition, d)
	}
}

func (c *CompositeObserver) OnTransitionFailed(ctx context.Context, inst *ProcessInstance, transition string, err error) {
	for _, o := range c.observers {
		o.OnTransitionFailed(ctx, inst, transition, err)
	}
}

// LoggingObserver writes structured logs using log/slog.
type LoggingObserver struct {
	Logger *slog.Logger
}

// NewLoggingObserver creates an Observer that logs transition lifecycle
// events using the provided slog.Logger. If logger is nil, slog.Default()
// is used.
func NewLoggingObserver(logger *slog.Logger) Observer {
	if logger == nil {
		logger = slog.Default()
	}
	return &LoggingObserver{Logger: logger}
}

func (o *LoggingObserver) OnTransitionStart(ctx context.Context, inst *ProcessInstance, transition string) {
	o.Logger.DebugContext(ctx, "transition_start",
		slog.String("workflow", inst.DefinitionType()),
		slog.String("instance_id", inst.ID()),
		slog.String("transition", transition),
	)
}

func (o *LoggingObserver) OnBranchCommitted(ctx context.Context, inst *ProcessInstance, transition string, from *WorkflowState, to []*WorkflowState) {
	o.Logger.DebugContext(ctx, "branch_committed",
		slog.String("workflow", inst.DefinitionType()),
		slog.String("instance_id", inst.ID()),
		slog.String("transition", transition),
		slog.String("from", from.String()),
		slog.Any("to", stateNames(to)),
	)
}

func (o *LoggingObserver) OnHookInvoked(ctx context.Context, inst *ProcessInstance, transition string, hook string, err error, d time.Duration) {
	level := slog.LevelDebug
	if err != nil {
		level = slog.LevelError
	}
	o.Logger.Log(ctx, level, "hook_invoked",
		slog.String("workflow", inst.DefinitionType()),
		slog.String("instance_id", inst.ID()),
		slog.String("transition", transition),
		slog.String("hook", hook),
		slog.Duration("duration", d),
		slog.Any("error", err),
	)
}

func (o *LoggingObserver) OnTransitionCompleted(ctx context.Context, inst *ProcessInstance, transition string, d time.Duration) {
	o.Logger.InfoContext(ctx, "transition_completed",
		slog.String("workflow", inst.DefinitionType()),
		slog.String("instance_id", inst.ID()),
		slog.String("transition", transition),
		slog.Any("active_states", stateNames(inst.ActiveStates())),
		slog.Duration("duration", d),
	)
}

func (o *LoggingObserver) OnTransitionFailed(ctx context.Context, inst *ProcessInstance, transition string, err error) {
	o.Logger.ErrorContext(ctx, "transition_failed",
		slog.String("workflow", inst.DefinitionType()),
		slog.String("instance_id", inst.ID()),
		slog.String("transition", transition),
		slog.Any("error", err),
	)
}

func stateNames(states []*WorkflowState) []string {
	out := make([]string, 0, len(states))
	for _, s := range states {
		out = append(out, s.String())
	}
	return out
}

// BasicMetrics collects simple counters. It implements Observer, and can be
// combined with LoggingObserver via NewCompositeObserver.
type BasicMetrics struct {
	NoopObserver

	transitionsStarted   atomic.Int64
	transitionsCompleted atomic.Int64
	transitionsFailed    atomic.Int64
	branchesCommitted    atomic.Int64
	hooksInvoked         atomic.Int64
	totalDuration        atomic.Int64 // nanoseconds
}

// BasicMetricsSnapshot is an immutable snapshot of BasicMetrics.
type BasicMetricsSnapshot struct {
	TransitionsStarted   int64
	TransitionsCompleted int64
	TransitionsFailed    int64

	BranchesCommitted     int64
	HooksInvoked          int64
	AvgTransitionDuration time.Duration
}

func (m *BasicMetrics) OnTransitionStart(ctx context.Context, inst *ProcessInstance, transition string) {
	m.transitionsStarted.Add(1)
}

func (m *BasicMetrics) OnBranchCommitted(ctx context.Context, inst *ProcessInstance, transition string, from *WorkflowState, to []*WorkflowState) {
	m.branchesCommitted.Add(1)
}

func (m *BasicMetrics) OnHookInvoked(ctx context.Context, inst *ProcessInstance, transition string, hook string, err error, d time.Duration) {
	m.hooksInvoked.Add(1)
}

func (m *BasicMetrics) OnTransitionCompleted(ctx context.Context, inst *ProcessInstance, transition string, d time.Duration) {
	m.transitionsCompleted.Add(1)
	m.totalDuration.Add(d.Nanoseconds())
}

func (m *BasicMetrics) OnTransitionFailed(ctx context.Context, inst *ProcessInstance, transition string, err error) {
	m.transitionsFailed.Add(1)
}

// Snapshot returns a snapshot of the current metrics.
func (m *BasicMetrics) Snapshot() BasicMetricsSnapshot {
	completed := m.transitionsCompleted.Load()
	totalNs := m.totalDuration.Load()

	var avg time.Duration
	if completed > 0 {
		avg = time.Duration(totalNs / completed)
	}

	return BasicMetricsSnapshot{
		TransitionsStarted:    m.transitionsStarted.Load(),
		TransitionsCompleted:  completed,
		TransitionsFailed:     m.transitionsFailed.Load(),
		BranchesCommitted:     m.branchesCommitted.Load(),
		HooksInvoked:          m.hooksInvoked.Load(),
		AvgTransitionDuration: avg,
	}
}
