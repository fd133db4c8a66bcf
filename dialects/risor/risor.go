// Package risor spells DOM statements in Risor. Risor blocks are brace delimited, so
// code directives splice in verbatim; Finish compiles the result to catch mistakes early.
package risor

import (
	"fmt"
	"html"
	"slices"
	"strconv"

	"github.com/robbyt/go-werb/dialects"
	"github.com/robbyt/go-werb/dialects/types"
)

// Option configures a Dialect.
type Option func(*Dialect)

// WithGlobals declares names that the compiled code may reference, such as the document
// and root element names and any data passed at evaluation time.
func WithGlobals(names ...string) Option {
	return func(d *Dialect) {
		for _, name := range names {
			if name != "" && !slices.Contains(d.globals, name) {
				d.globals = append(d.globals, name)
			}
		}
	}
}

// WithoutValidation makes Finish return code without compiling it.
func WithoutValidation() Option {
	return func(d *Dialect) {
		d.skipValidation = true
	}
}

// Dialect implements dialects.Dialect for Risor.
type Dialect struct {
	globals        []string
	skipValidation bool
}

// New returns the Risor dialect. "document" and "root" are always declared.
func New(opts ...Option) *Dialect {
	d := &Dialect{globals: []string{"document", "root"}}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func (d *Dialect) String() string {
	return "risor.Dialect"
}

// Type returns types.Risor.
func (d *Dialect) Type() types.Type {
	return types.Risor
}

// Globals returns the names declared to the validating compiler.
func (d *Dialect) Globals() []string {
	return slices.Clone(d.globals)
}

func (d *Dialect) Handle(prefix string, n int) string {
	return fmt.Sprintf("%s%d", prefix, n)
}

func (d *Dialect) CreateElement(document, handle, tag string) string {
	return fmt.Sprintf("%s := %s.createElement(%s)\n", handle, document, strconv.Quote(tag))
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
	return concat(target, mode.Property(), "string("+expr+")")
}

func (d *Dialect) Code(source string) string {
	return source + "\n"
}

// Finish compiles code with the Risor compiler and returns it unchanged when it is valid.
func (d *Dialect) Finish(code string) (string, error) {
	if d.skipValidation || code == "" {
		return code, nil
	}
	if err := validate(code, d.globals); err != nil {
		return "", err
	}
	return code, nil
}

func concat(target, property, value string) string {
	return fmt.Sprintf("%s.%s = %s.%s + %s\n", target, property, target, property, value)
}
