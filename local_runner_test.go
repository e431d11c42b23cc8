package flowlight

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petrijr/flowlight/pkg/worker"
)

func TestLocalRunner_SerializesRequestsPerInstance(t *testing.T) {
	ctx := context.Background()
	runner := NewLocalRunner(4)
	defer runner.Stop()

	New("Counter").
		FromStart("Start", testWorking, noopHandler).
		Transition("Tick", testWorking, testWorking, func(ctx context.Context, inst *ProcessInstance) error {
			// Read-modify-write without locking: only safe when requests for
			// one instance never overlap.
			n, _ := ContextValue[int](inst, "count")
			inst.Context().Set("count", n+1)
			return nil
		}).
		MustRegister(runner.Engine)

	const (
		instances = 8
		ticks     = 50
	)

	insts := make([]*ProcessInstance, instances)
	var results []<-chan error
	for i := range insts {
		inst, err := runner.Engine.CreateProcessInstance(ctx, "Counter")
		require.NoError(t, err)
		insts[i] = inst

		done, err := runner.ExecuteAsync(ctx, inst, "Start")
		require.NoError(t, err)
		results = append(results, done)
	}

	var mu sync.Mutex
	var wg sync.WaitGroup
	for _, inst := range insts {
		wg.Add(1)
		go func(inst *ProcessInstance) {
			defer wg.Done()
			for range ticks {
				done, err := runner.ExecuteAsync(ctx, inst, "Tick")
				if !assert.NoError(t, err) {
					return
				}
				mu.Lock()
				results = append(results, done)
				mu.Unlock()
			}
		}(inst)
	}
	wg.Wait()

	for _, done := range results {
		require.NoError(t, <-done)
	}
	for _, inst := range insts {
		n, ok := ContextValue[int](inst, "count")
		require.True(t, ok)
		assert.Equal(t, ticks, n)
	}
}

func TestLocalRunner_ReportsErrors(t *testing.T) {
	ctx := context.Background()
	runner := NewLocalRunner(1)
	defer runner.Stop()

	New("Simple").FromStart("Start", testWorking, noopHandler).MustRegister(runner.Engine)

	inst, err := runner.Engine.CreateProcessInstance(ctx, "Simple")
	require.NoError(t, err)

	done, err := runner.ExecuteAsync(ctx, inst, "Missing")
	require.NoError(t, err)
	assert.ErrorIs(t, <-done, ErrTransitionNotFound)

	_, err = runner.ExecuteAsync(ctx, nil, "Start")
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestLocalRunner_StopDrainsAndRejects(t *testing.T) {
	ctx := context.Background()
	runner := NewLocalRunnerWithConfig(LocalRunnerConfig{Shards: 2, QueueCapacity: 16})

	New("Simple").
		FromStart("Start", testWorking, noopHandler).
		ToCompleted("Stop", testWorking, noopHandler).
		MustRegister(runner.Engine)

	inst, err := runner.Engine.CreateProcessInstance(ctx, "Simple")
	require.NoError(t, err)

	start, err := runner.ExecuteAsync(ctx, inst, "Start")
	require.NoError(t, err)
	stop, err := runner.ExecuteAsync(ctx, inst, "Stop")
	require.NoError(t, err)

	runner.Stop()
	runner.Stop()

	require.NoError(t, <-start)
	require.NoError(t, <-stop)
	assert.Equal(t, []*WorkflowState{Completed}, inst.ActiveStates())
	assert.Zero(t, runner.Pending())

	_, err = runner.ExecuteAsync(ctx, inst, "Start")
	assert.ErrorIs(t, err, ErrRunnerStopped)
}

func TestLocalRunner_HookPanicIsReported(t *testing.T) {
	ctx := context.Background()
	runner := NewLocalRunner(1)
	defer runner.Stop()

	New("Panicky").
		FromStart("Start", testWorking, noopHandler).
		ToCompleted("Stop", testWorking, noopHandler).
		PostTransit("explode", func(ctx context.Context, inst *ProcessInstance) error {
			if inst.IsActive(Completed) {
				panic("boom")
			}
			return nil
		}).
		MustRegister(runner.Engine)

	inst, err := runner.Engine.CreateProcessInstance(ctx, "Panicky")
	require.NoError(t, err)

	start, err := runner.ExecuteAsync(ctx, inst, "Start")
	require.NoError(t, err)
	require.NoError(t, <-start)

	stop, err := runner.ExecuteAsync(ctx, inst, "Stop")
	require.NoError(t, err)
	err = <-stop
	require.ErrorIs(t, err, worker.ErrTaskPanicked)
	assert.Contains(t, err.Error(), "boom")

	// The shard keeps serving requests after the panic.
	inst2, err := runner.Engine.CreateProcessInstance(ctx, "Panicky")
	require.NoError(t, err)
	again, err := runner.ExecuteAsync(ctx, inst2, "Start")
	require.NoError(t, err)
	assert.NoError(t, <-again)
}
