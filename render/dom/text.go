package dom

import (
	"fmt"
	"strconv"

	"go.starlark.net/starlark"
	"golang.org/x/net/html"
)

// TextNode is a text node.
type TextNode struct {
	node   *html.Node
	frozen bool
}

// Data returns the text.
func (t *TextNode) Data() string {
	return t.node.Data
}

func (t *TextNode) String() string        { return "<text " + strconv.Quote(t.node.Data) + ">" }
func (t *TextNode) Type() string          { return "text" }
func (t *TextNode) Freeze()               { t.frozen = true }
func (t *TextNode) Truth() starlark.Bool  { return starlark.True }
func (t *TextNode) Hash() (uint32, error) { return 0, fmt.Errorf("unhashable type: %s", t.Type()) }

func (t *TextNode) AttrNames() []string {
	return []string{"data", "textContent"}
}

func (t *TextNode) Attr(name string) (starlark.Value, error) {
	switch name {
	case "data", "textContent":
		return starlark.String(t.node.Data), nil
	default:
		return nil, nil
	}
}

func (t *TextNode) SetField(name string, val starlark.Value) error {
	switch name {
	case "data", "textContent":
		if t.frozen {
			return fmt.Errorf("%w: %s", ErrFrozen, t)
		}
		t.node.Data = toText(val)
		return nil
	default:
		return starlark.NoSuchAttrError(fmt.Sprintf("text has no writable field .%s", name))
	}
}
