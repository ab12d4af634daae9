package diagnostics

import (
	"fmt"
	"sync"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/html"
)

// MarkupValidator runs a tolerant parse over the markup buffer. It is a
// binary well-formedness check: one error diagnostic when the parser reports
// a structural problem, no findings otherwise. It is not a linter.
type MarkupValidator struct {
	mu     sync.Mutex
	parser *sitter.Parser
}

// NewMarkupValidator creates a markup validator.
func NewMarkupValidator() *MarkupValidator {
	p := sitter.NewParser()
	p.SetLanguage(html.GetLanguage())
	return &MarkupValidator{parser: p}
}

// Validate implements Validator.
func (v *MarkupValidator) Validate(text string) []Diagnostic {
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
		Source:  "markup",
	}}
}

// parseErrorMessage locates the first error node and describes it.
func parseErrorMessage(root *sitter.Node) string {
	if n := firstErrorNode(root); n != nil {
		if n.IsMissing() {
			return fmt.Sprintf("missing %s near line %d", n.Type(), n.StartPoint().Row+1)
		}
		return fmt.Sprintf("unexpected input near line %d", n.StartPoint().Row+1)
	}
	return "malformed input"
}

// firstErrorNode walks the tree depth-first for the first ERROR or missing
// node.
func firstErrorNode(n *sitter.Node) *sitter.Node {
	if n.Type() == "ERROR" || n.IsMissing() {
		return n
	}
	if !n.HasError() {
		return nil
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		if found := firstErrorNode(n.Child(i)); found != nil {
			return found
		}
	}
	return nil
}
