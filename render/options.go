package render

import (
	"fmt"
	"log/slog"
	"os"
	"regexp"

	"github.com/robbyt/go-werb/internal/helpers"
	"github.com/robbyt/go-werb/parser"
	"github.com/robbyt/go-werb/platform/data"
	"github.com/robbyt/go-werb/platform/loader"
	"github.com/robbyt/go-werb/transpiler"
)

// DefaultRootID is the id attribute of the element templates render into.
const DefaultRootID = "root"

var identifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// FunctionalOption configures a Renderer.
type FunctionalOption func(*Renderer) error

// WithLoader sets the template source.
func WithLoader(l loader.Loader) FunctionalOption {
	return func(r *Renderer) error {
		if l == nil {
			return fmt.Errorf("%w: loader cannot be nil", ErrInvalidOption)
		}
		r.loader = l
		return nil
	}
}

// WithDataProvider sets where render data is read from. Every top-level key becomes a
// global of the template.
func WithDataProvider(p data.Provider) FunctionalOption {
	return func(r *Renderer) error {
		if p == nil {
			return fmt.Errorf("%w: data provider cannot be nil", ErrInvalidOption)
		}
		r.dataProvider = p
		return nil
	}
}

// WithRootID sets the id attribute of the root element.
func WithRootID(id string) FunctionalOption {
	return func(r *Renderer) error {
		if id == "" {
			return fmt.Errorf("%w: root id cannot be empty", ErrInvalidOption)
		}
		r.rootID = id
		return nil
	}
}

// WithCompileOptions passes options to the transpiler. The dialect is always Starlark,
// so any WithDialect among opts is overridden.
func WithCompileOptions(opts ...transpiler.FunctionalOption) FunctionalOption {
	return func(r *Renderer) error {
		r.compileOpts = append(r.compileOpts, opts...)
		return nil
	}
}

// WithParseOptions passes options to the template parser.
func WithParseOptions(opts ...parser.Option) FunctionalOption {
	return func(r *Renderer) error {
		r.parseOpts = append(r.parseOpts, opts...)
		return nil
	}
}

// WithLogHandler sets the log handler for the renderer and its transpiler.
func WithLogHandler(handler slog.Handler) FunctionalOption {
	return func(r *Renderer) error {
		if handler == nil {
			return fmt.Errorf("%w: log handler cannot be nil", ErrInvalidOption)
		}
		r.logHandler = handler
		r.logger = nil
		return nil
	}
}

// WithLogger sets a specific logger for the renderer.
func WithLogger(logger *slog.Logger) FunctionalOption {
	return func(r *Renderer) error {
		if logger == nil {
			return fmt.Errorf("%w: logger cannot be nil", ErrInvalidOption)
		}
		r.logger = logger
		r.logHandler = nil
		return nil
	}
}

func (r *Renderer) applyDefaults() {
	r.dataProvider = data.NewContextProvider(data.RenderData)
	r.rootID = DefaultRootID
	r.logHandler = slog.NewTextHandler(os.Stderr, nil)
}

func (r *Renderer) setupLogger() {
	if r.logger != nil {
		r.logHandler = r.logger.Handler()
		return
	}
	r.logHandler, r.logger = helpers.SetupLogger(r.logHandler, "render", "Renderer")
}

func (r *Renderer) validate() error {
	if r.loader == nil {
		return ErrNoLoader
	}
	return nil
}
