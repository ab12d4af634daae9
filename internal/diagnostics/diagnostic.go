// Package diagnostics runs the per-buffer heuristic validators and the
// debounced pipeline that publishes their findings.
//
// Validators are best-effort: they surface likely problems as diagnostics
// and never fail the editing session. None of them executes buffer content.
package diagnostics

import "github.com/David-Pjs/code4fun/internal/engine/snapshot"

// Level is the severity of a finding.
type Level string

const (
	// LevelError marks findings that indicate broken structure.
	LevelError Level = "error"
	// LevelWarning marks heuristic findings that may be false positives.
	LevelWarning Level = "warning"
)

// Diagnostic is one validator finding.
type Diagnostic struct {
	Level   Level  `json:"level"`
	Message string `json:"message"`
	// Source names the buffer the finding came from.
	Source string `json:"source"`
}

// MaxFindings caps the combined list across all three buffers.
const MaxFindings = 6

// Validator produces findings for one buffer's text.
type Validator interface {
	Validate(text string) []Diagnostic
}

// ValidatorFor returns the validator for a buffer kind.
func ValidatorFor(kind snapshot.BufferKind) Validator {
	switch kind {
	case snapshot.Style:
		return StyleValidator{}
	case snapshot.Script:
		return NewScriptValidator()
	default:
		return NewMarkupValidator()
	}
}
