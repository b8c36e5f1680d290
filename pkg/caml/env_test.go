package caml

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrameDefineAndGet(t *testing.T) {
	f := NewFrame(nil)
	f.Define("x", IntValue{Val: 1})

	v, ok := f.Get("x")
	require.True(t, ok)
	assert.Equal(t, IntValue{Val: 1}, v)

	_, ok = f.Get("y")
	assert.False(t, ok)
}

func TestFrameChainLookup(t *testing.T) {
	parent := NewFrame(nil)
	parent.Define("x", IntValue{Val: 1})
	child := NewFrame(parent)

	v, ok := child.Get("x")
	require.True(t, ok)
	assert.Equal(t, IntValue{Val: 1}, v)

	// shadowing is local to the child
	child.Define("x", IntValue{Val: 2})
	v, _ = child.Get("x")
	assert.Equal(t, IntValue{Val: 2}, v)
	v, _ = parent.Get("x")
	assert.Equal(t, IntValue{Val: 1}, v)
}

func TestFrameGetLocal(t *testing.T) {
	parent := NewFrame(nil)
	parent.Define("x", IntValue{Val: 1})
	child := NewFrame(parent)

	_, ok := child.GetLocal("x")
	assert.False(t, ok)
	_, ok = parent.GetLocal("x")
	assert.True(t, ok)
}

func TestFrameBindingsInsertionOrder(t *testing.T) {
	f := NewFrame(nil)
	f.Define("b", IntValue{Val: 1})
	f.Define("a", IntValue{Val: 2})
	f.Define("b", IntValue{Val: 3}) // rebind keeps position

	var names []string
	var vals []Value
	f.Bindings(func(name string, v Value) {
		names = append(names, name)
		vals = append(vals, v)
	})
	assert.Equal(t, []string{"b", "a"}, names)
	assert.Equal(t, IntValue{Val: 3}, vals[0])
}
