// Package ast defines the node contract between the template parser and the transpiler.
//
// The parser emits opening and closing tags as separate sibling nodes, so a Document is a
// flat list in which element nesting is implied by the order of Tag nodes.
package ast

// Node is implemented by every AST node. The set of node types is closed.
type Node interface {
	node()
}

// Document is the root of a parsed template.
type Document struct {
	Children []Node
}

func (*Document) node() {}

// Container groups nodes without introducing an element of its own.
type Container struct {
	Children []Node
}

func (*Container) node() {}

// Text is literal character data. Value is already unescaped.
type Text struct {
	Value string
}

func (*Text) node() {}

// Attr is a static tag attribute. Value is empty for boolean attributes.
type Attr struct {
	Key   string
	Value string
}

// Tag is either the opening or the closing occurrence of an element.
type Tag struct {
	Name    string
	Attrs   []Attr
	Closing bool
}

func (*Tag) node() {}

// IsClosing reports whether the tag finishes the innermost open element.
func (t *Tag) IsClosing() bool {
	return t.Closing
}

// Code is raw scripting code with no markup meaning.
type Code struct {
	Source string
}

func (*Code) node() {}

// OutputIndicator marks a directive whose value is rendered as content.
const OutputIndicator = "="

// Directive is an embedded scripting fragment such as <%= name %> or <% for x in xs: %>.
type Directive struct {
	// Indicator is the marker following "<%", for example "=". Empty when absent.
	Indicator string

	// TrimLeft and TrimRight record the "-" delimiter variants "<%-" and "-%>".
	TrimLeft  bool
	TrimRight bool

	// Code holds the fragment between the delimiters.
	Code *Code

	// Children holds markup nested in a statement directive's body, if the parser nests it.
	Children []Node
}

func (*Directive) node() {}

// IsOutput reports whether the directive's evaluated result is rendered as content.
// Any other directive is a statement directive spliced into the output verbatim.
func (d *Directive) IsOutput() bool {
	return d.Indicator == OutputIndicator
}
