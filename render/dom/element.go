package dom

import (
	"fmt"
	"slices"
	"strings"

	"go.starlark.net/starlark"
	"golang.org/x/net/html"
)

// Element is an element node.
type Element struct {
	node   *html.Node
	frozen bool
}

// Node returns the underlying HTML node.
func (e *Element) Node() *html.Node {
	return e.node
}

// TagName returns the lowercase tag name.
func (e *Element) TagName() string {
	return e.node.Data
}

// AppendChild moves child, an *Element or *TextNode, to the end of e's children.
func (e *Element) AppendChild(child starlark.Value) error {
	if e.frozen {
		return fmt.Errorf("%w: %s", ErrFrozen, e)
	}

	var n *html.Node
	switch c := child.(type) {
	case *Element:
		n = c.node
	case *TextNode:
		n = c.node
	default:
		return fmt.Errorf("%w: appendChild: cannot append %s", ErrHierarchy, child.Type())
	}
	for p := e.node; p != nil; p = p.Parent {
		if p == n {
			return fmt.Errorf("%w: appendChild: %s is an ancestor of %s", ErrHierarchy, child, e)
		}
	}

	if n.Parent != nil {
		n.Parent.RemoveChild(n)
	}
	e.node.AppendChild(n)
	return nil
}

// SetAttribute sets or replaces an attribute.
func (e *Element) SetAttribute(key, value string) error {
	if e.frozen {
		return fmt.Errorf("%w: %s", ErrFrozen, e)
	}
	key = strings.ToLower(key)
	for i := range e.node.Attr {
		if e.node.Attr[i].Key == key && e.node.Attr[i].Namespace == "" {
			e.node.Attr[i].Val = value
			return nil
		}
	}
	e.node.Attr = append(e.node.Attr, html.Attribute{Key: key, Val: value})
	return nil
}

// GetAttribute returns the value of an attribute and whether it is set.
func (e *Element) GetAttribute(key string) (string, bool) {
	return getAttr(e.node, strings.ToLower(key))
}

// RemoveAttribute deletes an attribute if present.
func (e *Element) RemoveAttribute(key string) error {
	if e.frozen {
		return fmt.Errorf("%w: %s", ErrFrozen, e)
	}
	key = strings.ToLower(key)
	e.node.Attr = slices.DeleteFunc(e.node.Attr, func(a html.Attribute) bool {
		return a.Key == key && a.Namespace == ""
	})
	return nil
}

// TextContent returns the concatenated text of all descendant text nodes.
func (e *Element) TextContent() string {
	var b strings.Builder
	collectText(e.node, &b)
	return b.String()
}

// SetTextContent replaces every child with a single text node holding s.
func (e *Element) SetTextContent(s string) error {
	if e.frozen {
		return fmt.Errorf("%w: %s", ErrFrozen, e)
	}
	removeChildren(e.node)
	if s != "" {
		e.node.AppendChild(&html.Node{Type: html.TextNode, Data: s})
	}
	return nil
}

// InnerHTML serializes the children of e.
func (e *Element) InnerHTML() (string, error) {
	var b strings.Builder
	for c := e.node.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&b, c); err != nil {
			return "", err
		}
	}
	return b.String(), nil
}

// SetInnerHTML replaces the children of e with the parsed markup, using e as the
// parsing context the way a browser does.
func (e *Element) SetInnerHTML(markup string) error {
	if e.frozen {
		return fmt.Errorf("%w: %s", ErrFrozen, e)
	}
	nodes, err := html.ParseFragment(strings.NewReader(markup), e.node)
	if err != nil {
		return fmt.Errorf("innerHTML: %w", err)
	}
	removeChildren(e.node)
	for _, n := range nodes {
		if n.Parent != nil {
			n.Parent.RemoveChild(n)
		}
		e.node.AppendChild(n)
	}
	return nil
}

// HTML serializes e including its own tags.
func (e *Element) HTML() (string, error) {
	var b strings.Builder
	if err := html.Render(&b, e.node); err != nil {
		return "", err
	}
	return b.String(), nil
}

func (e *Element) String() string {
	return fmt.Sprintf("<%s element>", e.node.Data)
}

func (e *Element) Type() string          { return "element" }
func (e *Element) Freeze()               { e.frozen = true }
func (e *Element) Truth() starlark.Bool  { return starlark.True }
func (e *Element) Hash() (uint32, error) { return 0, fmt.Errorf("unhashable type: %s", e.Type()) }

func (e *Element) AttrNames() []string {
	return []string{
		"appendChild", "getAttribute", "id", "innerHTML", "innerText",
		"removeAttribute", "setAttribute", "tagName", "textContent",
	}
}

func (e *Element) Attr(name string) (starlark.Value, error) {
	switch name {
	case "tagName":
		return starlark.String(strings.ToUpper(e.node.Data)), nil
	case "id":
		v, _ := e.GetAttribute("id")
		return starlark.String(v), nil
	case "innerText", "textContent":
		return starlark.String(e.TextContent()), nil
	case "innerHTML":
		s, err := e.InnerHTML()
		if err != nil {
			return nil, err
		}
		return starlark.String(s), nil
	case "appendChild":
		return method(e, name, func(args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
			var child starlark.Value
			if err := starlark.UnpackPositionalArgs(name, args, kwargs, 1, &child); err != nil {
				return nil, err
			}
			if err := e.AppendChild(child); err != nil {
				return nil, err
			}
			return child, nil
		}), nil
	case "setAttribute":
		return method(e, name, func(args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
			var key string
			var value starlark.Value
			if err := starlark.UnpackPositionalArgs(name, args, kwargs, 2, &key, &value); err != nil {
				return nil, err
			}
			return starlark.None, e.SetAttribute(key, toText(value))
		}), nil
	case "getAttribute":
		return method(e, name, func(args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
			var key string
			if err := starlark.UnpackPositionalArgs(name, args, kwargs, 1, &key); err != nil {
				return nil, err
			}
			if v, ok := e.GetAttribute(key); ok {
				return starlark.String(v), nil
			}
			return starlark.None, nil
		}), nil
	case "removeAttribute":
		return method(e, name, func(args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
			var key string
			if err := starlark.UnpackPositionalArgs(name, args, kwargs, 1, &key); err != nil {
				return nil, err
			}
			return starlark.None, e.RemoveAttribute(key)
		}), nil
	default:
		return nil, nil
	}
}

// SetField assigns innerText, textContent, innerHTML or id. Non-string values are
// converted with str(), as a browser would coerce them.
func (e *Element) SetField(name string, val starlark.Value) error {
	switch name {
	case "innerText", "textContent":
		return e.SetTextContent(toText(val))
	case "innerHTML":
		return e.SetInnerHTML(toText(val))
	case "id":
		return e.SetAttribute("id", toText(val))
	default:
		return starlark.NoSuchAttrError(fmt.Sprintf("element has no writable field .%s", name))
	}
}

func toText(v starlark.Value) string {
	if s, ok := starlark.AsString(v); ok {
		return s
	}
	if v == starlark.None {
		return ""
	}
	return v.String()
}

func getAttr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key && a.Namespace == "" {
			return a.Val, true
		}
	}
	return "", false
}

func collectText(n *html.Node, b *strings.Builder) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.TextNode:
			b.WriteString(c.Data)
		case html.ElementNode:
			collectText(c, b)
		}
	}
}

func removeChildren(n *html.Node) {
	for c := n.FirstChild; c != nil; c = n.FirstChild {
		n.RemoveChild(c)
	}
}
