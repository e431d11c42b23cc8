package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/petrijr/flowlight/internal/taskqueue"
	"github.com/petrijr/flowlight/pkg/api"
)

// ErrInvalidPayload is returned when a task carries a payload of the wrong
// type for its TaskType.
var ErrInvalidPayload = errors.New("invalid task payload")

// ErrTaskPanicked wraps a panic raised while executing a task, such as one
// from a post-transition processor.
var ErrTaskPanicked = errors.New("task panicked")

// Config controls Worker behavior.
type Config struct {
	// Logger receives task failures. Defaults to slog.Default().
	Logger *slog.Logger
}

// Worker pulls transition requests from a Queue and runs them with an
// ExecutionService. Execute failures are reported to the requester and
// logged; they are never retried.
type Worker struct {
	exec   api.ExecutionService
	queue  taskqueue.Queue
	logger *slog.Logger
}

// New creates a new Worker with default config.
func New(exec api.ExecutionService, queue taskqueue.Queue) *Worker {
	return NewWithConfig(exec, queue, Config{})
}

// NewWithConfig creates a new Worker.
func NewWithConfig(exec api.ExecutionService, queue taskqueue.Queue, cfg Config) *Worker {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Worker{
		exec:   exec,
		queue:  queue,
		logger: logger,
	}
}

// EnqueueTransition enqueues a request to execute transitionName on inst.
// It does NOT execute the transition itself; that is done by ProcessOne.
// The returned channel receives the Execute result exactly once.
func (w *Worker) EnqueueTransition(ctx context.Context, inst *api.ProcessInstance, transitionName string) (<-chan error, error) {
	if inst == nil {
		return nil, fmt.Errorf("%w: process instance is nil", api.ErrInvalidArgument)
	}

	result := make(chan error, 1)
	t := taskqueue.Task{
		Type:       taskqueue.TaskTypeExecuteTransition,
		InstanceID: inst.ID(),
		Payload: api.TransitionRequestPayload{
			Instance:   inst,
			Transition: transitionName,
			Result:     result,
		},
	}
	if err := w.queue.Enqueue(ctx, t); err != nil {
		return nil, err
	}
	return result, nil
}

// ProcessOne pulls a single task from the queue and processes it.
// Returns (processed, error):
//   - processed == false: no task was obtained (ctx cancelled or queue closed)
//   - processed == true: a task was processed; err is the Execute result.
func (w *Worker) ProcessOne(ctx context.Context) (bool, error) {
	task, err := w.queue.Dequeue(ctx)
	if err != nil {
		return false, err
	}
	if task == nil {
		return false, nil
	}

	switch task.Type {
	case taskqueue.TaskTypeExecuteTransition:
		payload, ok := task.Payload.(api.TransitionRequestPayload)
		if !ok {
			return true, fmt.Errorf("%w: %T for task %s", ErrInvalidPayload, task.Payload, task.ID)
		}

		execErr := w.execute(ctx, payload)
		if execErr != nil {
			w.logger.ErrorContext(ctx, "transition_task_failed",
				slog.String("task_id", task.ID),
				slog.String("instance_id", task.InstanceID),
				slog.String("transition", payload.Transition),
				slog.Any("error", execErr),
			)
		}
		if payload.Result != nil {
			payload.Result <- execErr
		}
		return true, execErr

	default:
		// Unknown task type; mark as processed but return an error so this isn't silently ignored.
		return true, errors.New("unknown task type: " + string(task.Type))
	}
}

// execute runs the transition and turns a panic into an error, so the
// requester always gets a result and the worker goroutine survives.
func (w *Worker) execute(ctx context.Context, payload api.TransitionRequestPayload) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: transition %q: %v", ErrTaskPanicked, payload.Transition, r)
		}
	}()
	return w.exec.Execute(ctx, payload.Instance, payload.Transition)
}

// Run calls ProcessOne until ctx is cancelled or the queue is closed and
// drained. Task failures do not stop the loop.
func (w *Worker) Run(ctx context.Context) error {
	for {
		processed, err := w.ProcessOne(ctx)
		if !processed {
			if errors.Is(err, taskqueue.ErrQueueClosed) {
				return nil
			}
			return err
		}
	}
}
