// Package snippet provides the reusable-fragment library: the built-in
// catalogue, user favorites and recents, ranking search, and the
// beginner-normalization rules applied before insertion.
package snippet

import (
	"github.com/zeebo/xxh3"

	"github.com/David-Pjs/code4fun/internal/engine/snapshot"
)

// Kind says which buffer a snippet targets. KindAll targets the markup
// buffer but represents a full scaffold.
type Kind string

const (
	KindMarkup Kind = "markup"
	KindStyle  Kind = "style"
	KindScript Kind = "script"
	KindAll    Kind = "all"
)

// Buffer resolves the target buffer for this kind. KindAll targets markup.
func (k Kind) Buffer() snapshot.BufferKind {
	switch k {
	case KindStyle:
		return snapshot.Style
	case KindScript:
		return snapshot.Script
	default:
		return snapshot.Markup
	}
}

// Matches reports whether the kind targets the given active buffer directly.
func (k Kind) Matches(active snapshot.BufferKind) bool {
	return k != KindAll && k.Buffer() == active
}

// Snippet is one reusable fragment.
type Snippet struct {
	ID          string   `json:"id,omitempty"`
	Label       string   `json:"label"`
	Body        string   `json:"body"`
	Kind        Kind     `json:"kind"`
	Description string   `json:"description,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

// BodyKey is the deduplication key for a snippet body.
func BodyKey(body string) uint64 {
	return xxh3.HashString(body)
}
