// Package history keeps serialized document snapshots for undo and redo.
package history

import "slices"

// DefaultSteps is the number of snapshots kept before the oldest is evicted.
const DefaultSteps = 50

type Manager struct {
	snapshots [][]byte
	index     int
	max       int
}

// New returns an empty manager keeping at most steps snapshots. A
// non-positive value uses DefaultSteps.
func New(steps int) *Manager {
	if steps <= 0 {
		steps = DefaultSteps
	}
	return &Manager{index: -1, max: steps}
}

// Push records a new snapshot after the current one. Snapshots ahead of the
// current index are discarded.
func (m *Manager) Push(snapshot []byte) {
	m.snapshots = append(m.snapshots[:m.index+1], slices.Clone(snapshot))
	m.index++
	for len(m.snapshots) > m.max {
		m.snapshots[0] = nil
		m.snapshots = m.snapshots[1:]
		m.index--
	}
}

// Undo steps back and returns the snapshot to restore.
func (m *Manager) Undo() ([]byte, bool) {
	if !m.CanUndo() {
		return nil, false
	}
	m.index--
	return m.snapshots[m.index], true
}

// Redo steps forward and returns the snapshot to restore.
func (m *Manager) Redo() ([]byte, bool) {
	if !m.CanRedo() {
		return nil, false
	}
	m.index++
	return m.snapshots[m.index], true
}

// Current returns the snapshot at the current index.
func (m *Manager) Current() ([]byte, bool) {
	if m.index < 0 {
		return nil, false
	}
	return m.snapshots[m.index], true
}

func (m *Manager) CanUndo() bool {
	return m.index > 0
}

func (m *Manager) CanRedo() bool {
	return m.index < len(m.snapshots)-1
}

func (m *Manager) Clear() {
	m.snapshots = nil
	m.index = -1
}

func (m *Manager) Len() int {
	return len(m.snapshots)
}

func (m *Manager) Index() int {
	return m.index
}

func (m *Manager) Max() int {
	return m.max
}
