// Package dialects defines how transpiled DOM statements are spelled in each target language.
package dialects

import (
	"fmt"
	"strings"

	"github.com/robbyt/go-werb/dialects/types"
)

// Dialect renders individual DOM statements. Every method except Finish returns a single
// newline-terminated statement.
type Dialect interface {
	// Type returns the dialect's name.
	Type() types.Type

	// Handle decorates the n-th generated element identifier, e.g. "el1" or "@el1".
	Handle(prefix string, n int) string

	// CreateElement binds handle to a new element named tag, created through document.
	CreateElement(document, handle, tag string) string

	// AppendChild attaches child to parent.
	AppendChild(parent, child string) string

	// SetAttribute sets a static attribute on handle.
	SetAttribute(handle, key, value string) string

	// AppendText concatenates a text literal onto target's content property.
	AppendText(target string, mode ContentMode, text string) string

	// AppendExpression concatenates the string form of expr onto target's content property.
	AppendExpression(target string, mode ContentMode, expr string) string

	// Code splices raw scripting code verbatim.
	Code(source string) string

	// Finish runs once over the complete statement sequence.
	Finish(code string) (string, error)
}

// ContentMode selects the content property mutated by text and output directives.
type ContentMode int

const (
	// ContentText appends plain text through innerText.
	ContentText ContentMode = iota

	// ContentHTML appends markup through innerHTML.
	ContentHTML
)

func (m ContentMode) String() string {
	switch m {
	case ContentText:
		return "text"
	case ContentHTML:
		return "html"
	default:
		return fmt.Sprintf("ContentMode(%d)", int(m))
	}
}

// Property returns the DOM property name mutated in this mode.
func (m ContentMode) Property() string {
	if m == ContentHTML {
		return "innerHTML"
	}
	return "innerText"
}

// ParseContentMode converts "text" or "html" into a ContentMode.
func ParseContentMode(s string) (ContentMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "text", "innertext":
		return ContentText, nil
	case "html", "innerhtml":
		return ContentHTML, nil
	default:
		return ContentText, fmt.Errorf("unknown content mode %q", s)
	}
}
