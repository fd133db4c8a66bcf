// Package ruby spells DOM statements for ruby.wasm, where the page's DOM is reached
// through the js gem (JS.global[:document]).
package ruby

import (
	"fmt"
	"html"
	"strings"

	"github.com/robbyt/go-werb/dialects"
	"github.com/robbyt/go-werb/dialects/types"
)

// Dialect implements dialects.Dialect for Ruby. Handles are instance variables so they
// stay reachable from the view model's other methods.
type Dialect struct{}

// New returns the Ruby dialect.
func New() *Dialect {
	return &Dialect{}
}

func (d *Dialect) String() string {
	return "ruby.Dialect"
}

// Type returns types.Ruby.
func (d *Dialect) Type() types.Type {
	return types.Ruby
}

func (d *Dialect) Handle(prefix string, n int) string {
	return fmt.Sprintf("@%s%d", prefix, n)
}

func (d *Dialect) CreateElement(document, handle, tag string) string {
	return fmt.Sprintf("%s = %s.createElement(%s)\n", handle, document, singleQuote(tag))
}

func (d *Dialect) AppendChild(parent, child string) string {
	return fmt.Sprintf("%s.appendChild(%s)\n", parent, child)
}

func (d *Dialect) SetAttribute(handle, key, value string) string {
	return fmt.Sprintf("%s.setAttribute(%s, %s)\n", handle, doubleQuote(key), doubleQuote(value))
}

// AppendText in text mode reads the current innerText through to_s, since ruby.wasm
// hands back a JS::Object rather than a Ruby String.
func (d *Dialect) AppendText(target string, mode dialects.ContentMode, text string) string {
	if mode == dialects.ContentHTML {
		return appendHTML(target, doubleQuote(html.EscapeString(text)))
	}
	return appendText(target, doubleQuote(text))
}

func (d *Dialect) AppendExpression(target string, mode dialects.ContentMode, expr string) string {
	interpolated := `"#{` + expr + `}"`
	if mode == dialects.ContentHTML {
		return appendHTML(target, interpolated)
	}
	return appendText(target, interpolated)
}

func (d *Dialect) Code(source string) string {
	return source + "\n"
}

// Finish returns code unchanged; Ruby blocks are closed by explicit "end" keywords.
func (d *Dialect) Finish(code string) (string, error) {
	return code, nil
}

func appendText(target, value string) string {
	return fmt.Sprintf("%s[:innerText] = %s[:innerText].to_s + %s\n", target, target, value)
}

func appendHTML(target, value string) string {
	return fmt.Sprintf("%s[:innerHTML] += %s\n", target, value)
}

// doubleQuote returns s as a Ruby double-quoted literal. "#" is escaped so literal
// template text never starts an interpolation.
func doubleQuote(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '#':
			b.WriteString(`\#`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			if r < 0x20 || r == 0x7f {
				fmt.Fprintf(&b, `\u{%x}`, r)
				continue
			}
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}

func singleQuote(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `'`, `\'`)
	return "'" + s + "'"
}
