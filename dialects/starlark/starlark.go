// Package starlark spells DOM statements in Starlark.
//
// Starlark delimits blocks by indentation, which a flat statement sequence cannot carry.
// Code directives therefore follow the "end" convention of Tornado templates: a code line
// ending in ":" opens a block, a line reading "end" closes it, and Finish re-indents
// the sequence.
package starlark

import (
	"fmt"
	"html"
	"strconv"

	"github.com/robbyt/go-werb/dialects"
	"github.com/robbyt/go-werb/dialects/types"
)

// Option configures a Dialect.
type Option func(*Dialect)

// WithIndent sets the string used for one level of block indentation.
func WithIndent(indent string) Option {
	return func(d *Dialect) {
		if indent != "" {
			d.indent = indent
		}
	}
}

// WithoutValidation makes Finish skip the syntax check of the laid out code.
func WithoutValidation() Option {
	return func(d *Dialect) {
		d.skipValidation = true
	}
}

// Dialect implements dialects.Dialect for Starlark.
type Dialect struct {
	indent         string
	skipValidation bool
}

// New returns the Starlark dialect, indenting blocks with four spaces.
func New(opts ...Option) *Dialect {
	d := &Dialect{indent: "    "}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func (d *Dialect) String() string {
	return "starlark.Dialect"
}

// Type returns types.Starlark.
func (d *Dialect) Type() types.Type {
	return types.Starlark
}

func (d *Dialect) Handle(prefix string, n int) string {
	return fmt.Sprintf("%s%d", prefix, n)
}

func (d *Dialect) CreateElement(document, handle, tag string) string {
	return fmt.Sprintf("%s = %s.createElement(%s)\n", handle, document, strconv.Quote(tag))
}

func (d *Dialect) AppendChild(parent, child string) string {
	return fmt.Sprintf("%s.appendChild(%s)\n", parent, child)
}

func (d *Dialect) SetAttribute(handle, key, value string) string {
	return fmt.Sprintf("%s.setAttribute(%s, %s)\n", handle, strconv.Quote(key), strconv.Quote(value))
}

func (d *Dialect) AppendText(target string, mode dialects.ContentMode, text string) string {
	if mode == dialects.ContentHTML {
		text = html.EscapeString(text)
	}
	return concat(target, mode.Property(), strconv.Quote(text))
}

func (d *Dialect) AppendExpression(target string, mode dialects.ContentMode, expr string) string {
	return concat(target, mode.Property(), "str("+expr+")")
}

func (d *Dialect) Code(source string) string {
	return source + "\n"
}

// Finish re-indents code so spliced block directives form valid Starlark, then parses
// the result with FileOptions.
func (d *Dialect) Finish(code string) (string, error) {
	out, err := layout(code, d.indent)
	if err != nil || d.skipValidation {
		return out, err
	}
	if _, err := FileOptions().Parse("template.star", out, 0); err != nil {
		return "", fmt.Errorf("%w: %w", ErrSyntax, err)
	}
	return out, nil
}

func concat(target, property, value string) string {
	return fmt.Sprintf("%s.%s = %s.%s + %s\n", target, property, target, property, value)
}
