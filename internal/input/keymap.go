package input

import "github.com/David-Pjs/code4fun/internal/engine/snapshot"

// Chord is one key press with modifiers. Key holds a lower-case letter,
// digit, or a named key ("enter", "escape").
type Chord struct {
	Key   string
	Ctrl  bool
	Alt   bool
	Shift bool
}

// Action is what a dispatched chord asks the session to do.
type Action int

const (
	ActionNone Action = iota
	ActionToggleSnippets
	ActionToggleDocs
	ActionClosePanel
	ActionSwitchBuffer
	ActionUndo
	ActionRedo
	// ActionInsertTop inserts the top-ranked snippet search result and
	// closes the panel; the keep-open variant leaves it open for repeated
	// insertion.
	ActionInsertTop
	ActionInsertTopKeepOpen

	// Internal keymap targets resolved to ActionSwitchBuffer by Dispatch.
	ActionBufferMarkup
	ActionBufferStyle
	ActionBufferScript
)

// Command is the result of dispatching a chord. Buffer is set for
// ActionSwitchBuffer.
type Command struct {
	Action Action
	Buffer snapshot.BufferKind
}

// defaultKeymap is the fixed shortcut table.
func defaultKeymap() map[Chord]Action {
	return map[Chord]Action{
		{Key: "k", Ctrl: true}:              ActionToggleSnippets,
		{Key: "d", Ctrl: true, Shift: true}: ActionToggleDocs,
		{Key: "escape"}:                     ActionClosePanel,
		{Key: "1", Ctrl: true}:              ActionBufferMarkup,
		{Key: "2", Ctrl: true}:              ActionBufferStyle,
		{Key: "3", Ctrl: true}:              ActionBufferScript,
		{Key: "z", Ctrl: true}:              ActionUndo,
		{Key: "z", Ctrl: true, Shift: true}: ActionRedo,
		{Key: "y", Ctrl: true}:              ActionRedo,
		{Key: "enter"}:                      ActionInsertTop,
		{Key: "enter", Shift: true}:         ActionInsertTopKeepOpen,
	}
}
