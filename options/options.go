// Package options configures the top-level werb API: which dialect to target, how to
// compile, where the template comes from and where render data is read from.
package options

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/robbyt/go-werb/dialects"
	"github.com/robbyt/go-werb/dialects/ruby"
	"github.com/robbyt/go-werb/dialects/risor"
	"github.com/robbyt/go-werb/dialects/starlark"
	"github.com/robbyt/go-werb/dialects/types"
	"github.com/robbyt/go-werb/parser"
	"github.com/robbyt/go-werb/platform/data"
	"github.com/robbyt/go-werb/platform/loader"
	"github.com/robbyt/go-werb/transpiler"
)

var (
	ErrNoLoader       = errors.New("no loader specified")
	ErrNoDialect      = errors.New("no dialect specified")
	ErrInvalidSetting = errors.New("invalid setting")
)

// Config holds everything needed to compile or render one template.
type Config struct {
	handler      slog.Handler
	dialect      types.Type
	loader       loader.Loader
	dataProvider data.Provider

	rootName     string
	documentName string
	handlePrefix string
	contentMode  dialects.ContentMode
	appendMode   transpiler.AppendMode
	attributes   bool

	keepWhitespace bool
	globals        []string
	rootID         string
}

// Option modifies a Config.
type Option func(*Config) error

// WithLogHandler sets the log handler shared by every component.
func WithLogHandler(handler slog.Handler) Option {
	return func(c *Config) error {
		if handler != nil {
			c.handler = handler
		}
		return nil
	}
}

// WithDialect sets the target dialect.
func WithDialect(t types.Type) Option {
	return func(c *Config) error {
		parsed, err := types.Parse(string(t))
		if err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidSetting, err)
		}
		c.dialect = parsed
		return nil
	}
}

// WithLoader sets the template source.
func WithLoader(l loader.Loader) Option {
	return func(c *Config) error {
		if l != nil {
			c.loader = l
		}
		return nil
	}
}

// WithDataProvider sets where render data is read from.
func WithDataProvider(p data.Provider) Option {
	return func(c *Config) error {
		if p != nil {
			c.dataProvider = p
		}
		return nil
	}
}

// WithRootName sets the name of the root element in the generated code.
func WithRootName(name string) Option {
	return func(c *Config) error {
		c.rootName = name
		return nil
	}
}

// WithDocumentName sets the name of the document global in the generated code.
func WithDocumentName(name string) Option {
	return func(c *Config) error {
		c.documentName = name
		return nil
	}
}

// WithHandlePrefix sets the prefix of generated element handles.
func WithHandlePrefix(prefix string) Option {
	return func(c *Config) error {
		c.handlePrefix = prefix
		return nil
	}
}

// WithContentMode selects innerText or innerHTML for content.
func WithContentMode(mode dialects.ContentMode) Option {
	return func(c *Config) error {
		c.contentMode = mode
		return nil
	}
}

// WithAppendMode selects eager or deferred appends.
func WithAppendMode(mode transpiler.AppendMode) Option {
	return func(c *Config) error {
		c.appendMode = mode
		return nil
	}
}

// WithAttributes emits static tag attributes.
func WithAttributes(enabled bool) Option {
	return func(c *Config) error {
		c.attributes = enabled
		return nil
	}
}

// WithKeepWhitespace keeps whitespace-only text between tags.
func WithKeepWhitespace(enabled bool) Option {
	return func(c *Config) error {
		c.keepWhitespace = enabled
		return nil
	}
}

// WithGlobals declares extra global names for dialects that check them at compile
// time, such as the data keys of a Risor template.
func WithGlobals(names ...string) Option {
	return func(c *Config) error {
		c.globals = append(c.globals, names...)
		return nil
	}
}

// WithRootID sets the id attribute of the root element used when rendering.
func WithRootID(id string) Option {
	return func(c *Config) error {
		c.rootID = id
		return nil
	}
}

// Validate checks the settings that cannot be defaulted.
func (c *Config) Validate() error {
	if c.dialect == "" {
		return ErrNoDialect
	}
	if _, err := types.Parse(string(c.dialect)); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidSetting, err)
	}
	return nil
}

// ValidateLoader checks that a template source is configured.
func (c *Config) ValidateLoader() error {
	if c.loader == nil {
		return ErrNoLoader
	}
	return nil
}

func (c *Config) GetHandler() slog.Handler {
	return c.handler
}

func (c *Config) GetDialectType() types.Type {
	return c.dialect
}

func (c *Config) GetLoader() loader.Loader {
	return c.loader
}

func (c *Config) GetDataProvider() data.Provider {
	return c.dataProvider
}

func (c *Config) GetRootID() string {
	return c.rootID
}

// NewDialect returns the configured dialect. Risor is told about the root, document and
// extra global names so its compile check accepts them.
func (c *Config) NewDialect() (dialects.Dialect, error) {
	switch c.dialect {
	case types.Ruby:
		return ruby.New(), nil
	case types.Starlark:
		return starlark.New(), nil
	case types.Risor:
		names := append([]string{c.rootName, c.documentName}, c.globals...)
		return risor.New(risor.WithGlobals(names...)), nil
	default:
		return nil, fmt.Errorf("%w: dialect %q", ErrInvalidSetting, c.dialect)
	}
}

// TranspilerOptions translates the compile settings, without the dialect.
func (c *Config) TranspilerOptions() []transpiler.FunctionalOption {
	opts := []transpiler.FunctionalOption{
		transpiler.WithRootName(c.rootName),
		transpiler.WithDocumentName(c.documentName),
		transpiler.WithHandlePrefix(c.handlePrefix),
		transpiler.WithContentMode(c.contentMode),
		transpiler.WithAppendMode(c.appendMode),
	}
	if c.handler != nil {
		opts = append(opts, transpiler.WithLogHandler(c.handler))
	}
	if c.attributes {
		opts = append(opts, transpiler.WithAttributes())
	}
	return opts
}

// ParserOptions translates the parse settings.
func (c *Config) ParserOptions() []parser.Option {
	if c.keepWhitespace {
		return []parser.Option{parser.WithKeepWhitespace()}
	}
	return nil
}
