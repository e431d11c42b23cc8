package taskqueue

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrQueueClosed is returned by Enqueue after Close, and by Dequeue once a
// closed queue has been drained.
var ErrQueueClosed = errors.New("task queue closed")

// InMemoryQueue is a FIFO Queue backed by a buffered channel.
// It is safe for concurrent use.
type InMemoryQueue struct {
	ch chan Task

	mu     sync.RWMutex
	closed bool
}

// NewInMemoryQueue creates a new queue with the given capacity.
// Enqueue blocks while the queue is full.
func NewInMemoryQueue(capacity int) *InMemoryQueue {
	if capacity <= 0 {
		capacity = 1024
	}
	return &InMemoryQueue{
		ch: make(chan Task, capacity),
	}
}

// Ensure InMemoryQueue implements Queue.
var _ Queue = (*InMemoryQueue)(nil)

// Enqueue assigns an ID and enqueue time when missing.
func (q *InMemoryQueue) Enqueue(ctx context.Context, t Task) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if t.EnqueuedAt.IsZero() {
		t.EnqueuedAt = time.Now()
	}

	q.mu.RLock()
	defer q.mu.RUnlock()
	if q.closed {
		return ErrQueueClosed
	}

	select {
	case q.ch <- t:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (q *InMemoryQueue) Dequeue(ctx context.Context) (*Task, error) {
	select {
	case t, ok := <-q.ch:
		if !ok {
			return nil, ErrQueueClosed
		}
		return &t, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (q *InMemoryQueue) Len() int {
	return len(q.ch)
}

// Close stops accepting tasks. Tasks already queued can still be dequeued.
// Close is idempotent.
func (q *InMemoryQueue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return
	}
	q.closed = true
	close(q.ch)
}
