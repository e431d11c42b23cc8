package api

import (
	"sort"
	"sync"
)

// WorkflowContext is a free-form, goroutine-safe bag of values attached to a
// process instance. Handlers use it to pass data between transitions.
type WorkflowContext struct {
	mu     sync.RWMutex
	values map[string]any
}

// NewWorkflowContext returns an empty context bag.
func NewWorkflowContext() *WorkflowContext {
	return &WorkflowContext{values: make(map[string]any)}
}

// Get returns the value stored under key, or nil.
func (c *WorkflowContext) Get(key string) any {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.values[key]
}

// Lookup returns the value stored under key and whether it was present.
func (c *WorkflowContext) Lookup(key string) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.values[key]
	return v, ok
}

// Set stores value under key, replacing any previous value.
func (c *WorkflowContext) Set(key string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values[key] = value
}

// Delete removes key. Deleting a missing key is a no-op.
func (c *WorkflowContext) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.values, key)
}

// Keys returns the stored keys in sorted order.
func (c *WorkflowContext) Keys() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	keys := make([]string, 0, len(c.values))
	for k := range c.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ContextValue returns the value under key converted to T. The boolean is
// false when the key is missing or holds a value of another type; the zero
// value of T is returned in that case.
func ContextValue[T any](c *WorkflowContext, key string) (T, bool) {
	var zero T
	v, ok := c.Lookup(key)
	if !ok {
		return zero, false
	}
	typed, ok := v.(T)
	if !ok {
		return zero, false
	}
	return typed, true
}
