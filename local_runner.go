package flowlight

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"log/slog"
	"sync"

	"github.com/petrijr/flowlight/internal/taskqueue"
	"github.com/petrijr/flowlight/pkg/worker"
)

// ErrRunnerStopped is returned by ExecuteAsync after Stop.
var ErrRunnerStopped = errors.New("flowlight: local runner stopped")

// LocalRunner executes transitions asynchronously on a fixed set of worker
// goroutines. Requests are sharded by instance ID, so requests for one
// instance run one at a time and in submission order while different
// instances proceed in parallel.
//
// Typical usage:
//
//	runner := flowlight.NewLocalRunner(4)
//	flowlight.New("Simple").
//	    FromStart("Start", Working, startWorking).
//	    MustRegister(runner.Engine)
//
//	inst, _ := runner.Engine.CreateProcessInstance(ctx, "Simple")
//	done, _ := runner.ExecuteAsync(ctx, inst, "Start")
//	err := <-done
//	...
//	runner.Stop()
type LocalRunner struct {
	// Engine is the workflow engine used by this runner.
	Engine Engine

	queues  []*taskqueue.InMemoryQueue
	workers []*worker.Worker
	logger  *slog.Logger

	mu      sync.Mutex
	wg      sync.WaitGroup
	cancel  context.CancelFunc
	stopped bool
}

var _ AsyncExecutor = (*LocalRunner)(nil)

// LocalRunnerConfig controls NewLocalRunnerWithConfig.
type LocalRunnerConfig struct {
	// Engine to run transitions on. Defaults to NewEngine().
	Engine Engine

	// Shards is the number of worker goroutines. Defaults to 1.
	Shards int

	// QueueCapacity bounds each shard's queue. Defaults to 1024.
	QueueCapacity int

	// Logger receives worker failures. Defaults to slog.Default().
	Logger *slog.Logger
}

// NewLocalRunner constructs a LocalRunner backed by a fresh in-memory engine
// and the given number of shards. Workers start immediately.
func NewLocalRunner(shards int) *LocalRunner {
	return NewLocalRunnerWithConfig(LocalRunnerConfig{Shards: shards})
}

// NewLocalRunnerWithConfig constructs a LocalRunner and starts its workers.
func NewLocalRunnerWithConfig(cfg LocalRunnerConfig) *LocalRunner {
	eng := cfg.Engine
	if eng == nil {
		eng = NewEngine()
	}
	shards := cfg.Shards
	if shards <= 0 {
		shards = 1
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r := &LocalRunner{
		Engine:  eng,
		queues:  make([]*taskqueue.InMemoryQueue, shards),
		workers: make([]*worker.Worker, shards),
		logger:  logger,
	}

	ctx, cancel := context.WithCancel(context.Background())
	r.cancel = cancel

	for i := range shards {
		q := taskqueue.NewInMemoryQueue(cfg.QueueCapacity)
		w := worker.NewWithConfig(eng, q, worker.Config{Logger: logger})
		r.queues[i] = q
		r.workers[i] = w

		r.wg.Add(1)
		go func(shard int, w *worker.Worker) {
			defer r.wg.Done()
			if err := w.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				r.logger.Error("local_runner_worker_stopped",
					slog.Int("shard", shard),
					slog.Any("error", err),
				)
			}
		}(i, w)
	}

	return r
}

// ExecuteAsync schedules transitionName on inst. The returned channel receives
// the result of Execute exactly once.
func (r *LocalRunner) ExecuteAsync(ctx context.Context, inst *ProcessInstance, transitionName string) (<-chan error, error) {
	if inst == nil {
		return nil, fmt.Errorf("%w: process instance is nil", ErrInvalidArgument)
	}

	r.mu.Lock()
	stopped := r.stopped
	r.mu.Unlock()
	if stopped {
		return nil, ErrRunnerStopped
	}

	done, err := r.workers[r.shard(inst.ID())].EnqueueTransition(ctx, inst, transitionName)
	if errors.Is(err, taskqueue.ErrQueueClosed) {
		return nil, ErrRunnerStopped
	}
	return done, err
}

// Pending returns the number of queued requests across all shards.
func (r *LocalRunner) Pending() int {
	n := 0
	for _, q := range r.queues {
		n += q.Len()
	}
	return n
}

// Stop closes every shard queue and waits for the workers to finish the
// requests already queued. Stop is idempotent.
func (r *LocalRunner) Stop() {
	r.mu.Lock()
	if r.stopped {
		r.mu.Unlock()
		return
	}
	r.stopped = true
	r.mu.Unlock()

	for _, q := range r.queues {
		q.Close()
	}
	r.wg.Wait()
	r.cancel()
}

func (r *LocalRunner) shard(instanceID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(instanceID))
	return int(h.Sum32() % uint32(len(r.queues)))
}
