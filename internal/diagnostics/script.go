package diagnostics

import (
	"sync"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
)

// ScriptValidator parses the script buffer as a freestanding block of
// statements. The buffer is only ever parsed, never executed.
type ScriptValidator struct {
	mu     sync.Mutex
	parser *sitter.Parser
}

// NewScriptValidator creates a script validator.
func NewScriptValidator() *ScriptValidator {
	p := sitter.NewParser()
	p.SetLanguage(javascript.GetLanguage())
	return &ScriptValidator{parser: p}
}

// Validate implements Validator.
func (v *ScriptValidator) Validate(text string) []Diagnostic {
	if text == "" {
		return nil
	}

	v.mu.Lock()
	tree := v.parser.Parse(nil, []byte(text))
	v.mu.Unlock()
	if tree == nil {
		return nil
	}
	defer tree.Close()

	root := tree.RootNode()
	if root == nil || !root.HasError() {
		return nil
	}

	return []Diagnostic{{
		Level:   LevelError,
		Message: parseErrorMessage(root),
		Source:  "script",
	}}
}
