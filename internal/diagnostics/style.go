package diagnostics

import "unicode"

// unbalancedGuard stops the scan once the running brace balance drops this
// far below zero, so runaway input cannot generate a wall of findings.
const unbalancedGuard = -5

// StyleValidator scans the style buffer character by character tracking
// brace balance, plus a crude case-sensitivity heuristic.
//
// The uppercase warning flags any run of two or more uppercase letters. It
// will false-positive on comments and class names; that is accepted behavior
// for this heuristic, not something to correct.
type StyleValidator struct{}

// Validate implements Validator.
func (StyleValidator) Validate(text string) []Diagnostic {
	out := scanBraces(text)
	if hasUppercaseRun(text) {
		out = append(out, Diagnostic{
			Level:   LevelWarning,
			Message: "Style rules are case-sensitive; check uppercase sequences",
			Source:  "style",
		})
	}
	return out
}

// scanBraces tracks the running brace balance. A positive balance at end of
// scan means an unclosed block; crossing the guard threshold means stray
// closers, and scanning stops there.
func scanBraces(text string) []Diagnostic {
	balance := 0
	for _, r := range text {
		switch r {
		case '{':
			balance++
		case '}':
			balance--
		}
		if balance < unbalancedGuard {
			return []Diagnostic{{
				Level:   LevelError,
				Message: "Unexpected '}'",
				Source:  "style",
			}}
		}
	}
	if balance > 0 {
		return []Diagnostic{{
			Level:   LevelError,
			Message: "Missing closing '}'",
			Source:  "style",
		}}
	}
	return nil
}

// hasUppercaseRun reports whether text contains two or more consecutive
// uppercase letters.
func hasUppercaseRun(text string) bool {
	run := 0
	for _, r := range text {
		if unicode.IsUpper(r) {
			run++
			if run >= 2 {
				return true
			}
		} else {
			run = 0
		}
	}
	return false
}
