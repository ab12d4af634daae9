// Package input routes keystrokes for the editing session: keyboard
// shortcut dispatch, the modal panel state machine, and composition (IME)
// awareness.
package input

import (
	"sync"

	"github.com/David-Pjs/code4fun/internal/engine/snapshot"
)

// Panel identifies the modal panels. Snippets and docs are mutually
// exclusive; opening one closes the other.
type Panel int

const (
	PanelNone Panel = iota
	PanelSnippets
	PanelDocs
)

// String returns the panel name.
func (p Panel) String() string {
	switch p {
	case PanelSnippets:
		return "snippets"
	case PanelDocs:
		return "docs"
	default:
		return "none"
	}
}

// Coordinator owns the transient per-session input state. It is created with
// the session and discarded with it; nothing here survives across sessions.
type Coordinator struct {
	mu        sync.Mutex
	active    snapshot.BufferKind
	panel     Panel
	composing bool
	keymap    map[Chord]Action
}

// New creates a coordinator with markup active, no panel open, and the
// default keymap.
func New() *Coordinator {
	return &Coordinator{
		active: snapshot.Markup,
		keymap: defaultKeymap(),
	}
}

// ActiveBuffer returns the buffer edits currently target.
func (c *Coordinator) ActiveBuffer() snapshot.BufferKind {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active
}

// SetActiveBuffer switches the edit target.
func (c *Coordinator) SetActiveBuffer(kind snapshot.BufferKind) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.active = kind
}

// Panel returns the currently open panel.
func (c *Coordinator) Panel() Panel {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.panel
}

// TogglePanel opens the panel if closed and closes it if open. Opening a
// panel closes the other one.
func (c *Coordinator) TogglePanel(p Panel) Panel {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.panel == p {
		c.panel = PanelNone
	} else {
		c.panel = p
	}
	return c.panel
}

// ClosePanel closes whichever panel is open.
func (c *Coordinator) ClosePanel() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.panel = PanelNone
}

// StartComposition marks an IME composition as in progress. While composing,
// shortcut dispatch is suspended and edits must not reach history or
// diagnostics.
func (c *Coordinator) StartComposition() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.composing = true
}

// EndComposition marks the composition finished.
func (c *Coordinator) EndComposition() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.composing = false
}

// Composing reports whether an IME composition is in progress.
func (c *Coordinator) Composing() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.composing
}

// Dispatch maps a key chord to a command, applying panel and buffer state
// transitions. While composing it always returns ActionNone: committed
// shortcuts must not fire on intermediate composition keys.
func (c *Coordinator) Dispatch(chord Chord) Command {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.composing {
		return Command{Action: ActionNone}
	}

	action, ok := c.keymap[chord]
	if !ok {
		return Command{Action: ActionNone}
	}

	switch action {
	case ActionToggleSnippets:
		c.togglePanelLocked(PanelSnippets)
		return Command{Action: action}
	case ActionToggleDocs:
		c.togglePanelLocked(PanelDocs)
		return Command{Action: action}
	case ActionClosePanel:
		if c.panel == PanelNone {
			return Command{Action: ActionNone}
		}
		c.panel = PanelNone
		return Command{Action: action}
	case ActionBufferMarkup, ActionBufferStyle, ActionBufferScript:
		kind := bufferForAction(action)
		c.active = kind
		return Command{Action: ActionSwitchBuffer, Buffer: kind}
	case ActionInsertTop, ActionInsertTopKeepOpen:
		// Confirm keys only mean insertion while the snippet panel is open.
		if c.panel != PanelSnippets {
			return Command{Action: ActionNone}
		}
		return Command{Action: action}
	default:
		return Command{Action: action}
	}
}

func (c *Coordinator) togglePanelLocked(p Panel) {
	if c.panel == p {
		c.panel = PanelNone
	} else {
		c.panel = p
	}
}

func bufferForAction(a Action) snapshot.BufferKind {
	switch a {
	case ActionBufferStyle:
		return snapshot.Style
	case ActionBufferScript:
		return snapshot.Script
	default:
		return snapshot.Markup
	}
}
