// Package history provides bounded undo/redo stacks of editing snapshots.
//
// The timeline is linear: recording a new state clears the redo lane, so
// there is no branching history. The undo stack always retains at least the
// initial snapshot at the bottom; undo never empties it.
package history
