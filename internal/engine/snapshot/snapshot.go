// Package snapshot defines the immutable three-buffer value at the core of
// an editing session: the markup, style, and script sources at one instant.
package snapshot

// BufferKind identifies one of the three coupled source buffers.
type BufferKind int

const (
	// Markup is the structure buffer.
	Markup BufferKind = iota
	// Style is the presentation buffer.
	Style
	// Script is the behavior buffer.
	Script
)

// Kinds lists all buffer kinds in canonical order (markup, style, script).
// Diagnostics ordering and tab indexing both follow this order.
var Kinds = [3]BufferKind{Markup, Style, Script}

// String returns the buffer name used in diagnostics and persistence.
func (k BufferKind) String() string {
	switch k {
	case Markup:
		return "markup"
	case Style:
		return "style"
	case Script:
		return "script"
	default:
		return "unknown"
	}
}

// KindByIndex maps a tab index (0-based) to a buffer kind.
// Out-of-range indices return Markup and false.
func KindByIndex(i int) (BufferKind, bool) {
	if i < 0 || i >= len(Kinds) {
		return Markup, false
	}
	return Kinds[i], true
}

// Snapshot is the immutable value of all three buffers at a point in time.
// All fields are always defined; empty string is a valid buffer value.
// No validation is performed: any string is accepted, including malformed
// fragments.
type Snapshot struct {
	Markup string `json:"markup"`
	Style  string `json:"style"`
	Script string `json:"script"`
}

// Empty returns the snapshot with all three buffers empty.
func Empty() Snapshot {
	return Snapshot{}
}

// Get returns the text of the given buffer.
func (s Snapshot) Get(kind BufferKind) string {
	switch kind {
	case Style:
		return s.Style
	case Script:
		return s.Script
	default:
		return s.Markup
	}
}

// Set returns a new snapshot with the given buffer replaced.
// The receiver is unchanged; no other field changes.
func (s Snapshot) Set(kind BufferKind, text string) Snapshot {
	switch kind {
	case Style:
		s.Style = text
	case Script:
		s.Script = text
	default:
		s.Markup = text
	}
	return s
}

// Equal reports whether two snapshots hold identical buffer contents.
func (s Snapshot) Equal(other Snapshot) bool {
	return s == other
}
