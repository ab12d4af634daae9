package history

import (
	"sync"

	"github.com/David-Pjs/code4fun/internal/engine/snapshot"
)

// DefaultCapacity is the bound on each stack. Pushing past it drops the
// oldest entry (sliding window, not an error).
const DefaultCapacity = 60

// RecordOptions controls how a snapshot is recorded.
type RecordOptions struct {
	// ReplaceLatest overwrites the top undo entry instead of pushing a new
	// one. Used for settle semantics: a burst of keystrokes collapses to one
	// entry per pause rather than one per change. Replacing does not clear
	// the redo stack.
	ReplaceLatest bool
}

// History manages the undo/redo state for one editing session.
//
// Thread-safety: all methods are safe for concurrent use.
type History struct {
	mu       sync.Mutex
	undo     []snapshot.Snapshot
	redo     []snapshot.Snapshot
	capacity int
}

// Option configures a History during creation.
type Option func(*History)

// WithCapacity overrides the stack bound. Non-positive values keep the
// default.
func WithCapacity(n int) Option {
	return func(h *History) {
		if n > 0 {
			h.capacity = n
		}
	}
}

// New creates a history seeded with the initial snapshot. The seed entry is
// the floor of the undo stack; Undo never removes it.
func New(initial snapshot.Snapshot, opts ...Option) *History {
	h := &History{
		capacity: DefaultCapacity,
		undo:     []snapshot.Snapshot{initial},
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Record stores a snapshot on the undo stack.
//
// With ReplaceLatest set and a non-empty stack, the top entry is overwritten
// in place. Otherwise the snapshot is pushed, the capacity bound is enforced
// by dropping the oldest entry, and the redo stack is cleared. A non-replacing
// record whose value already matches the top is skipped entirely; it neither
// grows the stack nor clears redo.
//
// Record never fails; oversized or malformed strings are stored as-is.
func (h *History) Record(snap snapshot.Snapshot, opts RecordOptions) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if opts.ReplaceLatest && len(h.undo) > 0 {
		h.undo[len(h.undo)-1] = snap
		return
	}

	if len(h.undo) > 0 && h.undo[len(h.undo)-1].Equal(snap) {
		return
	}

	h.undo = append(h.undo, snap)
	if len(h.undo) > h.capacity {
		excess := len(h.undo) - h.capacity
		h.undo = append(h.undo[:0], h.undo[excess:]...)
	}
	h.redo = nil
}

// Undo steps back one entry. It returns the snapshot to restore and true,
// or the zero snapshot and false when the undo stack has one or fewer
// entries (the initial state is never undone away).
func (h *History) Undo() (snapshot.Snapshot, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.undo) <= 1 {
		return snapshot.Snapshot{}, false
	}

	top := h.undo[len(h.undo)-1]
	h.undo = h.undo[:len(h.undo)-1]
	h.redo = append(h.redo, top)
	return h.undo[len(h.undo)-1], true
}

// Redo re-applies the most recently undone entry. It returns the snapshot to
// restore and true, or the zero snapshot and false when the redo stack is
// empty.
func (h *History) Redo() (snapshot.Snapshot, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.redo) == 0 {
		return snapshot.Snapshot{}, false
	}

	top := h.redo[len(h.redo)-1]
	h.redo = h.redo[:len(h.redo)-1]
	h.undo = append(h.undo, top)
	return top, true
}

// Reset discards both stacks and reseeds the undo floor with snap.
func (h *History) Reset(snap snapshot.Snapshot) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.undo = append(h.undo[:0], snap)
	h.redo = nil
}

// Current returns the top of the undo stack.
func (h *History) Current() snapshot.Snapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.undo[len(h.undo)-1]
}

// UndoDepth returns the number of entries on the undo stack.
func (h *History) UndoDepth() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.undo)
}

// RedoDepth returns the number of entries on the redo stack.
func (h *History) RedoDepth() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.redo)
}

// CanUndo reports whether Undo would restore a state.
func (h *History) CanUndo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.undo) > 1
}

// CanRedo reports whether Redo would restore a state.
func (h *History) CanRedo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.redo) > 0
}
