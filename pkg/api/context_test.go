package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWorkflowContext_SetGetDelete(t *testing.T) {
	c := NewWorkflowContext()

	assert.Nil(t, c.Get("missing"))
	_, ok := c.Lookup("missing")
	assert.False(t, ok)

	c.Set("b", 2)
	c.Set("a", "one")

	assert.Equal(t, "one", c.Get("a"))
	assert.Equal(t, []string{"a", "b"}, c.Keys())

	c.Delete("a")
	c.Delete("not-there")
	assert.Equal(t, []string{"b"}, c.Keys())
}

func TestContextValue_TypedLookup(t *testing.T) {
	c := NewWorkflowContext()
	c.Set("count", 3)

	n, ok := ContextValue[int](c, "count")
	assert.True(t, ok)
	assert.Equal(t, 3, n)

	s, ok := ContextValue[string](c, "count")
	assert.False(t, ok)
	assert.Empty(t, s)

	_, ok = ContextValue[int](c, "missing")
	assert.False(t, ok)
}
