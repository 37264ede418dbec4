package history

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func snap(i int) []byte {
	return []byte(fmt.Sprintf("state-%d", i))
}

func TestUndoRedo(t *testing.T) {
	m := New(0)
	assert.Equal(t, DefaultSteps, m.Max())

	_, ok := m.Undo()
	assert.False(t, ok)
	_, ok = m.Current()
	assert.False(t, ok)

	for i := 0; i < 4; i++ {
		m.Push(snap(i))
	}
	assert.Equal(t, 3, m.Index())
	assert.False(t, m.CanRedo())

	for i := 2; i >= 0; i-- {
		got, ok := m.Undo()
		require.True(t, ok)
		assert.Equal(t, snap(i), got)
	}
	_, ok = m.Undo()
	assert.False(t, ok)

	for i := 1; i <= 3; i++ {
		got, ok := m.Redo()
		require.True(t, ok)
		assert.Equal(t, snap(i), got)
	}
	_, ok = m.Redo()
	assert.False(t, ok)
}

func TestPushDropsRedoBranch(t *testing.T) {
	m := New(10)
	m.Push(snap(0))
	m.Push(snap(1))
	m.Push(snap(2))
	m.Undo()
	m.Undo()

	m.Push(snap(9))
	assert.Equal(t, 2, m.Len())
	assert.False(t, m.CanRedo())
	cur, _ := m.Current()
	assert.Equal(t, snap(9), cur)

	prev, ok := m.Undo()
	require.True(t, ok)
	assert.Equal(t, snap(0), prev)
}

func TestEviction(t *testing.T) {
	m := New(3)
	for i := 0; i < 5; i++ {
		m.Push(snap(i))
	}
	assert.Equal(t, 3, m.Len())
	assert.Equal(t, 2, m.Index())

	got, _ := m.Undo()
	assert.Equal(t, snap(3), got)
	got, _ = m.Undo()
	assert.Equal(t, snap(2), got)
	assert.False(t, m.CanUndo())
}

func TestPushCopiesSnapshot(t *testing.T) {
	m := New(5)
	buf := []byte("abc")
	m.Push(buf)
	buf[0] = 'x'
	cur, _ := m.Current()
	assert.Equal(t, "abc", string(cur))
}

func TestClear(t *testing.T) {
	m := New(5)
	m.Push(snap(0))
	m.Push(snap(1))
	m.Clear()
	assert.Equal(t, 0, m.Len())
	assert.Equal(t, -1, m.Index())
	assert.False(t, m.CanUndo())
	assert.False(t, m.CanRedo())
}
