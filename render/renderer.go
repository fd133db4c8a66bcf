// Package render compiles a template to Starlark and runs it against an in-memory DOM,
// producing the HTML a browser would show after running the compiled code.
package render

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	starlarkLib "go.starlark.net/starlark"

	starlarkDialect "github.com/robbyt/go-werb/dialects/starlark"
	"github.com/robbyt/go-werb/parser"
	"github.com/robbyt/go-werb/platform/data"
	"github.com/robbyt/go-werb/platform/loader"
	"github.com/robbyt/go-werb/render/dom"
	"github.com/robbyt/go-werb/transpiler"
)

// Result is the outcome of one Render call.
type Result struct {
	// HTML is the serialized content of the root element.
	HTML string

	// Statements is the compiled Starlark that produced HTML.
	Statements string

	ExecTime time.Duration
}

func (r *Result) String() string {
	return fmt.Sprintf("render.Result{HTML: %d bytes, Statements: %d bytes, ExecTime: %s}",
		len(r.HTML), len(r.Statements), r.ExecTime)
}

// Renderer renders one template. It is safe for concurrent use; each Render call gets
// its own document and Starlark thread.
type Renderer struct {
	loader       loader.Loader
	dataProvider data.Provider
	rootID       string
	compileOpts  []transpiler.FunctionalOption
	parseOpts    []parser.Option

	transpiler *transpiler.Transpiler

	logHandler slog.Handler
	logger     *slog.Logger
}

// New creates a Renderer. WithLoader is required.
func New(opts ...FunctionalOption) (*Renderer, error) {
	r := &Renderer{}
	r.applyDefaults()

	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, fmt.Errorf("error applying renderer option: %w", err)
		}
	}
	if err := r.validate(); err != nil {
		return nil, err
	}
	r.setupLogger()

	compileOpts := append([]transpiler.FunctionalOption{transpiler.WithLogHandler(r.logHandler)}, r.compileOpts...)
	compileOpts = append(compileOpts, transpiler.WithDialect(starlarkDialect.New()))
	t, err := transpiler.New(compileOpts...)
	if err != nil {
		return nil, err
	}
	r.transpiler = t
	return r, nil
}

func (r *Renderer) String() string {
	return fmt.Sprintf("render.Renderer{Source: %s}", r.loader.GetSourceURL())
}

// AddDataToContext stores render data in ctx for a later Render call.
func (r *Renderer) AddDataToContext(ctx context.Context, d ...map[string]any) (context.Context, error) {
	return data.AddDataToContextHelper(ctx, r.logger, r.dataProvider, d...)
}

// Compile loads, parses and compiles the template without running it.
func (r *Renderer) Compile(ctx context.Context) (string, error) {
	src, err := loader.ReadAll(r.loader)
	if err != nil {
		return "", fmt.Errorf("failed to load template: %w", err)
	}
	doc, err := parser.Parse(src, r.parseOpts...)
	if err != nil {
		return "", err
	}
	return r.transpiler.Compile(ctx, doc)
}

// Render compiles the template and executes it with the data available in ctx.
func (r *Renderer) Render(ctx context.Context) (*Result, error) {
	logger := r.logger.WithGroup("Render")

	statements, err := r.Compile(ctx)
	if err != nil {
		return nil, err
	}

	page := dom.NewDocument()
	root, err := page.CreateElement("div")
	if err != nil {
		return nil, err
	}
	if err := root.SetAttribute("id", r.rootID); err != nil {
		return nil, err
	}
	if err := page.Body().AppendChild(root); err != nil {
		return nil, err
	}

	globals, err := r.globals(ctx)
	if err != nil {
		return nil, err
	}
	globals[r.transpiler.DocumentName()] = page
	globals[r.transpiler.RootName()] = root

	execTime, err := r.exec(ctx, logger, statements, globals)
	if err != nil {
		return nil, err
	}

	out, err := root.InnerHTML()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecFailed, err)
	}
	logger.DebugContext(ctx, "render complete", "bytes", len(out), "execTime", execTime)
	return &Result{HTML: out, Statements: statements, ExecTime: execTime}, nil
}

// globals converts render data into predeclared Starlark values.
func (r *Renderer) globals(ctx context.Context) (starlarkLib.StringDict, error) {
	input, err := r.dataProvider.GetData(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get render data: %w", err)
	}

	reserved := map[string]bool{r.transpiler.DocumentName(): true, r.transpiler.RootName(): true}
	globals := standardModules()

	var errs []error
	for k, v := range input {
		if !identifier.MatchString(k) || reserved[k] {
			errs = append(errs, fmt.Errorf("%w: %q cannot be used as a global name", ErrInvalidGlobal, k))
			continue
		}
		sv, err := toStarlark(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%w: %q: %w", ErrInvalidGlobal, k, err))
			continue
		}
		globals[k] = sv
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return globals, nil
}

func (r *Renderer) exec(
	ctx context.Context,
	logger *slog.Logger,
	statements string,
	globals starlarkLib.StringDict,
) (time.Duration, error) {
	thread := &starlarkLib.Thread{
		Name: "render",
		Print: func(thread *starlarkLib.Thread, msg string) {
			logger.InfoContext(ctx, msg, "starlark-thread", thread.Name)
		},
	}
	stop := context.AfterFunc(ctx, func() {
		thread.Cancel(context.Cause(ctx).Error())
	})
	defer stop()

	filename := "template.star"
	if u := r.loader.GetSourceURL(); u != nil {
		filename = u.String()
	}

	start := time.Now()
	_, err := starlarkLib.ExecFileOptions(starlarkDialect.FileOptions(), thread, filename, statements, globals)
	elapsed := time.Since(start)
	if err != nil {
		var evalErr *starlarkLib.EvalError
		if errors.As(err, &evalErr) {
			logger.DebugContext(ctx, "starlark backtrace", "backtrace", evalErr.Backtrace())
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return elapsed, fmt.Errorf("%w: %w", ErrExecFailed, ctxErr)
		}
		return elapsed, fmt.Errorf("%w: %w", ErrExecFailed, err)
	}
	return elapsed, nil
}
