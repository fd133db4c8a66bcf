// Package dom is a small browser-like DOM for rendering compiled templates in-process.
//
// Nodes are golang.org/x/net/html nodes, exposed to Starlark through Document, Element
// and TextNode values. Only the part of the DOM used by compiled templates is provided:
// creating nodes, appending children, attributes, and the innerText, textContent and
// innerHTML properties.
package dom

import (
	"errors"
	"fmt"
	"strings"

	"go.starlark.net/starlark"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var (
	ErrFrozen         = errors.New("cannot modify frozen node")
	ErrInvalidTagName = errors.New("invalid tag name")
	ErrHierarchy      = errors.New("node cannot be inserted here")
)

// Document creates nodes. Its body holds every element attached to the page.
type Document struct {
	body   *html.Node
	frozen bool
}

var (
	_ starlark.HasAttrs = (*Document)(nil)
	_ starlark.HasAttrs = (*Element)(nil)
	_ starlark.HasAttrs = (*TextNode)(nil)

	_ starlark.HasSetField = (*Element)(nil)
	_ starlark.HasSetField = (*TextNode)(nil)
)

// NewDocument returns an empty document.
func NewDocument() *Document {
	return &Document{body: newElementNode("body")}
}

// Body returns the body element.
func (d *Document) Body() *Element {
	return &Element{node: d.body}
}

// CreateElement returns a detached element. Tag names are case-insensitive.
func (d *Document) CreateElement(tag string) (*Element, error) {
	tag = strings.ToLower(tag)
	if !validTagName(tag) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTagName, tag)
	}
	return &Element{node: newElementNode(tag)}, nil
}

// CreateTextNode returns a detached text node.
func (d *Document) CreateTextNode(data string) *TextNode {
	return &TextNode{node: &html.Node{Type: html.TextNode, Data: data}}
}

// GetElementByID returns the first element below the body with the given id, or nil.
func (d *Document) GetElementByID(id string) *Element {
	var found *html.Node
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil && found == nil; c = c.NextSibling {
			if c.Type != html.ElementNode {
				continue
			}
			if v, ok := getAttr(c, "id"); ok && v == id {
				found = c
				return
			}
			walk(c)
		}
	}
	walk(d.body)
	if found == nil {
		return nil
	}
	return &Element{node: found}
}

func (d *Document) String() string        { return "<document>" }
func (d *Document) Type() string          { return "document" }
func (d *Document) Freeze()               { d.frozen = true }
func (d *Document) Truth() starlark.Bool  { return starlark.True }
func (d *Document) Hash() (uint32, error) { return 0, fmt.Errorf("unhashable type: %s", d.Type()) }

func (d *Document) AttrNames() []string {
	return []string{"body", "createElement", "createTextNode", "getElementById"}
}

func (d *Document) Attr(name string) (starlark.Value, error) {
	switch name {
	case "body":
		return d.Body(), nil
	case "createElement":
		return method(d, name, func(args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
			var tag string
			if err := starlark.UnpackPositionalArgs(name, args, kwargs, 1, &tag); err != nil {
				return nil, err
			}
			return d.CreateElement(tag)
		}), nil
	case "createTextNode":
		return method(d, name, func(args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
			var data string
			if err := starlark.UnpackPositionalArgs(name, args, kwargs, 1, &data); err != nil {
				return nil, err
			}
			return d.CreateTextNode(data), nil
		}), nil
	case "getElementById":
		return method(d, name, func(args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
			var id string
			if err := starlark.UnpackPositionalArgs(name, args, kwargs, 1, &id); err != nil {
				return nil, err
			}
			if el := d.GetElementByID(id); el != nil {
				return el, nil
			}
			return starlark.None, nil
		}), nil
	default:
		return nil, nil
	}
}

// method binds fn as a builtin method of recv.
func method(
	recv starlark.Value,
	name string,
	fn func(args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error),
) *starlark.Builtin {
	return starlark.NewBuiltin(name, func(
		_ *starlark.Thread,
		_ *starlark.Builtin,
		args starlark.Tuple,
		kwargs []starlark.Tuple,
	) (starlark.Value, error) {
		return fn(args, kwargs)
	}).BindReceiver(recv)
}

func newElementNode(tag string) *html.Node {
	return &html.Node{Type: html.ElementNode, Data: tag, DataAtom: atom.Lookup([]byte(tag))}
}

func validTagName(tag string) bool {
	if tag == "" {
		return false
	}
	for i, r := range tag {
		switch {
		case r >= 'a' && r <= 'z':
		case i > 0 && (r >= '0' && r <= '9' || r == '-' || r == '_' || r == '.'):
		default:
			return false
		}
	}
	return true
}
