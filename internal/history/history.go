// Package history keeps bounded undo/redo stacks of full canvas snapshots.
//
// Every entry is an independent deep copy of a layer.Stack captured after
// the action it describes. The top of the undo stack therefore mirrors the
// live canvas, and the entry beneath it is the state before that action.
// The oldest entry (the initial canvas) is never undone past.
package history

import (
	"errors"
	"fmt"

	"github.com/ha1tch/deluxepaint/internal/layer"
)

// DefaultLimit is the maximum number of undo entries kept.
const DefaultLimit = 50

// ErrHistoryExhausted marks the normal boundary of the history: there is
// nothing left to undo or redo. It is a status, not a fault.
var ErrHistoryExhausted = errors.New("history exhausted")

// Boundary errors, both wrapping ErrHistoryExhausted.
var (
	ErrNothingToUndo = fmt.Errorf("nothing to undo: %w", ErrHistoryExhausted)
	ErrNothingToRedo = fmt.Errorf("nothing to redo: %w", ErrHistoryExhausted)
)

// ActionKind tags what produced a history entry.
type ActionKind int

const (
	General ActionKind = iota
	AddLayer
	DeleteLayer
	MergeLayer
	ColorChange
	EraseModeToggle
	SelectLayer
	ChangeVisibility
	ChangeOpacity
	MoveLayer
)

func (k ActionKind) String() string {
	switch k {
	case General:
		return "general"
	case AddLayer:
		return "add-layer"
	case DeleteLayer:
		return "delete-layer"
	case MergeLayer:
		return "merge-layer"
	case ColorChange:
		return "color-change"
	case EraseModeToggle:
		return "erase-mode-toggle"
	case SelectLayer:
		return "select-layer"
	case ChangeVisibility:
		return "change-visibility"
	case ChangeOpacity:
		return "change-opacity"
	case MoveLayer:
		return "move-layer"
	default:
		return "unknown"
	}
}

// Snapshot is a frozen copy of a canvas.
type Snapshot struct {
	stack       *layer.Stack
	Description string
	Kind        ActionKind
}

// Stack returns a deep copy of the captured canvas.
func (s *Snapshot) Stack() *layer.Stack { return s.stack.Clone() }

// Manager owns the undo and redo stacks.
type Manager struct {
	limit int
	undo  []*Snapshot // oldest first
	redo  []*Snapshot // most recently undone last
}

// New returns an empty manager keeping at most limit undo entries.
// A limit below 2 falls back to DefaultLimit.
func New(limit int) *Manager {
	if limit < 2 {
		limit = DefaultLimit
	}
	return &Manager{limit: limit}
}

// Limit returns the undo capacity.
func (m *Manager) Limit() int { return m.limit }

// Record captures the current canvas as a new entry. It invalidates every
// redo entry and evicts the oldest undo entry once the limit is exceeded.
func (m *Manager) Record(s *layer.Stack, description string, kind ActionKind) {
	m.undo = append(m.undo, &Snapshot{
		stack:       s.Clone(),
		Description: description,
		Kind:        kind,
	})
	clear(m.redo)
	m.redo = m.redo[:0]
	if n := len(m.undo) - m.limit; n > 0 {
		copy(m.undo, m.undo[n:])
		clear(m.undo[len(m.undo)-n:])
		m.undo = m.undo[:len(m.undo)-n]
	}
}

// Undo reverts the most recent entry, restoring the previous one into s.
// It returns the description of the entry that was undone.
func (m *Manager) Undo(s *layer.Stack) (string, error) {
	if !m.CanUndo() {
		return "", ErrNothingToUndo
	}
	top := m.undo[len(m.undo)-1]
	m.undo[len(m.undo)-1] = nil
	m.undo = m.undo[:len(m.undo)-1]
	m.redo = append(m.redo, top)

	s.Restore(m.undo[len(m.undo)-1].stack)
	return top.Description, nil
}

// Redo re-applies the most recently undone entry and restores it into s.
func (m *Manager) Redo(s *layer.Stack) (string, error) {
	if !m.CanRedo() {
		return "", ErrNothingToRedo
	}
	e := m.redo[len(m.redo)-1]
	m.redo[len(m.redo)-1] = nil
	m.redo = m.redo[:len(m.redo)-1]
	m.undo = append(m.undo, e)

	s.Restore(e.stack)
	return e.Description, nil
}

// CanUndo reports whether an entry beyond the initial state exists.
func (m *Manager) CanUndo() bool { return len(m.undo) > 1 }

// CanRedo reports whether an undone entry can be re-applied.
func (m *Manager) CanRedo() bool { return len(m.redo) > 0 }

// UndoLen returns the number of undo entries, including the initial state.
func (m *Manager) UndoLen() int { return len(m.undo) }

// RedoLen returns the number of redo entries.
func (m *Manager) RedoLen() int { return len(m.redo) }

// Top returns the newest undo entry, or nil before anything is recorded.
func (m *Manager) Top() *Snapshot {
	if len(m.undo) == 0 {
		return nil
	}
	return m.undo[len(m.undo)-1]
}

// Reset drops both stacks.
func (m *Manager) Reset() {
	m.undo = nil
	m.redo = nil
}
