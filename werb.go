// Package werb compiles ERB-style HTML templates into imperative DOM statements for
// embedded scripting languages, and renders them in-process through Starlark.
package werb

import (
	"context"
	"fmt"

	"github.com/robbyt/go-werb/dialects/types"
	"github.com/robbyt/go-werb/options"
	"github.com/robbyt/go-werb/parser"
	"github.com/robbyt/go-werb/platform/data"
	"github.com/robbyt/go-werb/platform/loader"
	"github.com/robbyt/go-werb/render"
	"github.com/robbyt/go-werb/transpiler"
)

// Compile parses src and returns the DOM statements that rebuild it. The target dialect
// defaults to Ruby.
func Compile(ctx context.Context, src string, opts ...options.Option) (string, error) {
	cfg, err := newConfig(types.Ruby, opts...)
	if err != nil {
		return "", err
	}
	return compile(ctx, cfg, src)
}

// CompileString is Compile with a background context.
func CompileString(src string, opts ...options.Option) (string, error) {
	return Compile(context.Background(), src, opts...)
}

// CompileLoader compiles the template provided by l.
func CompileLoader(ctx context.Context, l loader.Loader, opts ...options.Option) (string, error) {
	cfg, err := newConfig(types.Ruby, append(opts, options.WithLoader(l))...)
	if err != nil {
		return "", err
	}
	if err := cfg.ValidateLoader(); err != nil {
		return "", err
	}
	src, err := loader.ReadAll(cfg.GetLoader())
	if err != nil {
		return "", fmt.Errorf("failed to load template %s: %w", l.GetSourceURL(), err)
	}
	return compile(ctx, cfg, src)
}

// CompileFile compiles the template file at path.
func CompileFile(ctx context.Context, path string, opts ...options.Option) (string, error) {
	l, err := loader.NewFromDisk(path)
	if err != nil {
		return "", err
	}
	return CompileLoader(ctx, l, opts...)
}

// NewRenderer creates a Renderer for the template given with options.WithLoader. The
// dialect setting is ignored: rendering always goes through Starlark.
func NewRenderer(opts ...options.Option) (*render.Renderer, error) {
	cfg, err := newConfig(types.Starlark, opts...)
	if err != nil {
		return nil, err
	}
	if err := cfg.ValidateLoader(); err != nil {
		return nil, err
	}
	return render.New(
		render.WithLoader(cfg.GetLoader()),
		render.WithDataProvider(cfg.GetDataProvider()),
		render.WithRootID(cfg.GetRootID()),
		render.WithLogHandler(cfg.GetHandler()),
		render.WithCompileOptions(cfg.TranspilerOptions()...),
		render.WithParseOptions(cfg.ParserOptions()...),
	)
}

// RenderString renders src once with vars as its globals.
func RenderString(
	ctx context.Context,
	src string,
	vars map[string]any,
	opts ...options.Option,
) (*render.Result, error) {
	l, err := loader.NewFromString(src)
	if err != nil {
		return nil, err
	}
	opts = append(opts, options.WithLoader(l), options.WithDataProvider(data.NewStaticProvider(vars)))
	r, err := NewRenderer(opts...)
	if err != nil {
		return nil, err
	}
	return r.Render(ctx)
}

func newConfig(dialect types.Type, opts ...options.Option) (*options.Config, error) {
	cfg := options.DefaultConfig(dialect)
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, fmt.Errorf("error applying option: %w", err)
		}
	}
	if err := options.WithDefaults()(cfg); err != nil {
		return nil, fmt.Errorf("error applying defaults: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func compile(ctx context.Context, cfg *options.Config, src string) (string, error) {
	doc, err := parser.Parse(src, cfg.ParserOptions()...)
	if err != nil {
		return "", err
	}
	d, err := cfg.NewDialect()
	if err != nil {
		return "", err
	}
	t, err := transpiler.New(append(cfg.TranspilerOptions(), transpiler.WithDialect(d))...)
	if err != nil {
		return "", err
	}
	return t.Compile(ctx, doc)
}
