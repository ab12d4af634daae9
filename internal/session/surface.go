package session

import "github.com/David-Pjs/code4fun/internal/engine/snapshot"

// Surface is the input surface collaborator: the UI layer owning the three
// editable text areas. The session uses it to read caret selections, to
// reposition the caret after insertions and undo/redo, and to restore
// focus.
type Surface interface {
	// Selection returns the selection bounds of a buffer's input surface,
	// or ok=false when no selection is known (the session then falls back
	// to end-of-text).
	Selection(kind snapshot.BufferKind) (start, end int, ok bool)
	// SetSelection moves the caret (collapsed when start == end).
	SetSelection(kind snapshot.BufferKind, start, end int)
	// Focus gives keyboard focus to a buffer's input surface.
	Focus(kind snapshot.BufferKind)
}

// nopSurface is used when no surface is attached (headless tests, detached
// sessions).
type nopSurface struct{}

func (nopSurface) Selection(snapshot.BufferKind) (int, int, bool) { return 0, 0, false }
func (nopSurface) SetSelection(snapshot.BufferKind, int, int)     {}
func (nopSurface) Focus(snapshot.BufferKind)                      {}
