package taskqueue

import (
	"context"
	"time"
)

// TaskType identifies what the worker should do.
type TaskType string

const (
	TaskTypeExecuteTransition TaskType = "execute-transition"
)

// Task represents a unit of work for the worker.
type Task struct {
	ID   string
	Type TaskType

	// InstanceID is the target process instance. Runners use it to shard
	// tasks so one instance is always handled by the same worker.
	InstanceID string

	// Payload is task-type specific:
	//   - execute-transition: api.TransitionRequestPayload
	Payload any

	EnqueuedAt time.Time
}

// Queue is a simple async task queue interface.
type Queue interface {
	// Enqueue adds a task to the queue. It should respect ctx for cancellation.
	Enqueue(ctx context.Context, t Task) error

	// Dequeue removes and returns the next task, blocking until one is available
	// or the context is cancelled.
	Dequeue(ctx context.Context) (*Task, error)

	// Len returns the approximate number of tasks queued.
	Len() int
}
