package snippet

import (
	"fmt"
	"regexp"
	"strings"
)

// voidElements never take a closing tag; their opening tags are rewritten to
// the self-closing form.
var voidElements = []string{"img", "input", "br", "hr", "meta", "link"}

var (
	voidClosers  = make(map[string]*regexp.Regexp, len(voidElements))
	voidOpeners  = make(map[string]*regexp.Regexp, len(voidElements))
	leadingTagRe = regexp.MustCompile(`^<([a-zA-Z][a-zA-Z0-9-]*)`)
)

func init() {
	for _, tag := range voidElements {
		voidClosers[tag] = regexp.MustCompile(fmt.Sprintf(`(?i)</\s*%s\s*>`, tag))
		voidOpeners[tag] = regexp.MustCompile(fmt.Sprintf(`(?i)<(%s)(\s[^>]*?)?\s*/?>`, tag))
	}
}

// Normalize applies the beginner-normalization rules for the target kind.
//
// Non-markup kinds pass through unchanged. For markup:
//   - a body not starting with "<" is wrapped in a generic container,
//     indented one level;
//   - void-element closing tags are stripped and their opening tags
//     rewritten to the self-closing form;
//   - when the outermost element is not void and its closing tag is not
//     already at the end of the body, one is appended;
//   - the result always ends with exactly one trailing newline.
func Normalize(body string, kind Kind) string {
	if kind != KindMarkup && kind != KindAll {
		return body
	}
	return normalizeMarkup(body)
}

func normalizeMarkup(body string) string {
	trimmed := strings.TrimSpace(body)

	if !strings.HasPrefix(trimmed, "<") {
		return "<div>\n  " + trimmed + "\n</div>\n"
	}

	out := trimmed
	for _, tag := range voidElements {
		out = voidClosers[tag].ReplaceAllString(out, "")
		out = voidOpeners[tag].ReplaceAllString(out, "<${1}${2} />")
	}
	out = strings.TrimRight(out, " \t\n")

	if tag, ok := outermostTag(out); ok && !isVoid(tag) && !hasTrailingCloser(out, tag) {
		out += "</" + tag + ">"
	}

	return out + "\n"
}

// outermostTag extracts the first element name of the body.
func outermostTag(body string) (string, bool) {
	m := leadingTagRe.FindStringSubmatch(body)
	if m == nil {
		return "", false
	}
	return strings.ToLower(m[1]), true
}

func isVoid(tag string) bool {
	for _, v := range voidElements {
		if v == tag {
			return true
		}
	}
	return false
}

// hasTrailingCloser reports whether body already ends with the closing tag.
func hasTrailingCloser(body, tag string) bool {
	return strings.HasSuffix(strings.ToLower(body), "</"+tag+">")
}
