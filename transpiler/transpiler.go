// Package transpiler flattens a template AST into a sequence of DOM statements.
//
// Every open container is tracked by a frame on a per-call stack. Opening tags push a
// frame and closing tags pop it, so the flat sibling list produced by the parser is
// re-nested while it is walked. When a frame is popped its children are flattened into
// one code string, and any element created in it is appended to the frame below.
package transpiler

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/robbyt/go-werb/ast"
	"github.com/robbyt/go-werb/dialects"
)

// Transpiler holds compile configuration. It keeps no state between calls and is safe
// for concurrent use.
type Transpiler struct {
	dialect      dialects.Dialect
	rootName     string
	documentName string
	handlePrefix string
	contentMode  dialects.ContentMode
	appendMode   AppendMode
	attributes   bool

	logHandler slog.Handler
	logger     *slog.Logger
}

// New creates a Transpiler. Without options it targets Ruby, appends content through
// innerText, and attaches elements eagerly to a root element named "root".
func New(opts ...FunctionalOption) (*Transpiler, error) {
	t := &Transpiler{}
	t.applyDefaults()

	for _, opt := range opts {
		if err := opt(t); err != nil {
			return nil, fmt.Errorf("error applying transpiler option: %w", err)
		}
	}

	if err := t.validate(); err != nil {
		return nil, err
	}
	t.setupLogger()
	return t, nil
}

func (t *Transpiler) String() string {
	return fmt.Sprintf("transpiler.Transpiler{Dialect: %s, Root: %s}", t.dialect.Type(), t.rootName)
}

// Dialect returns the target dialect.
func (t *Transpiler) Dialect() dialects.Dialect {
	return t.dialect
}

// RootName returns the name of the element receiving top-level content.
func (t *Transpiler) RootName() string {
	return t.rootName
}

// DocumentName returns the name of the global used to create elements.
func (t *Transpiler) DocumentName() string {
	return t.documentName
}

// Compile returns the statements that rebuild doc below the root element. Any error
// aborts the whole compilation and no partial output is returned.
func (t *Transpiler) Compile(ctx context.Context, doc *ast.Document) (string, error) {
	logger := t.logger.WithGroup("Compile")
	if doc == nil {
		return "", ErrNilDocument
	}
	start := time.Now()

	c := &compilation{Transpiler: t, logger: logger}
	c.frames.push(newFrame(t.rootName, t.rootName, rootFrame))

	result, err := c.visit(ctx, doc)
	if err != nil {
		logger.DebugContext(ctx, "compilation failed", "error", err)
		return "", err
	}
	body, ok := result.(containerChild)
	if !ok {
		return "", &RenderError{Child: fmt.Sprintf("%#v", result), Frame: t.rootName}
	}

	code, err := t.dialect.Finish(body.code)
	if err != nil {
		return "", fmt.Errorf("%s dialect: %w", t.dialect.Type(), err)
	}

	logger.DebugContext(ctx, "compilation complete",
		"dialect", t.dialect.Type(),
		"handles", c.ids.issued(),
		"bytes", len(code),
		"duration", time.Since(start))
	return code, nil
}

// compilation is the mutable state of one Compile call.
type compilation struct {
	*Transpiler
	frames frameStack
	ids    counter
	logger *slog.Logger
}

func (c *compilation) visit(ctx context.Context, node ast.Node) (child, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if isNilNode(node) {
		return nil, &NodeError{Node: node, Reason: "nil node"}
	}

	switch n := node.(type) {
	case *ast.Document:
		return c.container(ctx, n.Children)
	case *ast.Container:
		return c.container(ctx, n.Children)
	case *ast.Text:
		return c.text(n)
	case *ast.Tag:
		if n.IsClosing() {
			return c.closeTag(n)
		}
		return c.openTag(n)
	case *ast.Directive:
		if n.IsOutput() {
			return c.output(n)
		}
		return c.statement(ctx, n)
	case *ast.Code:
		return literalChild{code: c.dialect.Code(n.Source)}, nil
	default:
		return nil, &NodeError{Node: node}
	}
}

// compileInto visits each node in order and pushes the result onto the frame that is
// current once the node has been visited.
func (c *compilation) compileInto(ctx context.Context, nodes []ast.Node) error {
	for _, n := range nodes {
		result, err := c.visit(ctx, n)
		if err != nil {
			return err
		}
		top, err := c.frames.top()
		if err != nil {
			return err
		}
		top.push(result)
	}
	return nil
}

func (c *compilation) container(ctx context.Context, nodes []ast.Node) (child, error) {
	current, err := c.frames.top()
	if err != nil {
		return nil, err
	}
	c.frames.push(newFrame(current.name, current.target, containerFrame))
	depth := c.frames.depth()

	if err := c.compileInto(ctx, nodes); err != nil {
		return nil, err
	}
	return c.finish(ctx, depth)
}

func (c *compilation) text(n *ast.Text) (child, error) {
	current, err := c.frames.top()
	if err != nil {
		return nil, err
	}
	return literalChild{code: c.dialect.AppendText(current.target, c.contentMode, n.Value)}, nil
}

func (c *compilation) openTag(n *ast.Tag) (child, error) {
	handle := c.dialect.Handle(c.handlePrefix, c.ids.next())

	var create strings.Builder
	create.WriteString(c.dialect.CreateElement(c.documentName, handle, n.Name))
	if c.attributes {
		for _, attr := range n.Attrs {
			create.WriteString(c.dialect.SetAttribute(handle, attr.Key, attr.Value))
		}
	}

	c.frames.push(newFrame(handle, handle, elementFrame))
	return elementChild{handle: handle, create: create.String()}, nil
}

func (c *compilation) closeTag(n *ast.Tag) (child, error) {
	current, err := c.frames.top()
	if err != nil {
		return nil, err
	}
	if current.kind != elementFrame {
		return nil, fmt.Errorf("%w: </%s> in %s", ErrUnexpectedClose, n.Name, current)
	}

	code, err := c.pop()
	if err != nil {
		return nil, err
	}
	return containerChild{code: code}, nil
}

func (c *compilation) output(n *ast.Directive) (child, error) {
	if n.Code == nil || strings.TrimSpace(n.Code.Source) == "" {
		return nil, &NodeError{Node: n, Reason: "output directive has no expression"}
	}
	current, err := c.frames.top()
	if err != nil {
		return nil, err
	}
	expr := strings.TrimSpace(n.Code.Source)
	return literalChild{code: c.dialect.AppendExpression(current.target, c.contentMode, expr)}, nil
}

// statement scopes a statement directive in a frame named by a fresh handle. Content
// nested in the directive still addresses the enclosing element.
func (c *compilation) statement(ctx context.Context, n *ast.Directive) (child, error) {
	current, err := c.frames.top()
	if err != nil {
		return nil, err
	}
	handle := c.dialect.Handle(c.handlePrefix, c.ids.next())
	c.frames.push(newFrame(handle, current.target, directiveFrame))
	depth := c.frames.depth()

	slots := make([]ast.Node, 0, len(n.Children)+1)
	if n.Code != nil {
		slots = append(slots, n.Code)
	}
	for _, nested := range n.Children {
		if nested != nil {
			slots = append(slots, nested)
		}
	}

	if err := c.compileInto(ctx, slots); err != nil {
		return nil, err
	}
	return c.finish(ctx, depth)
}

// finish closes any element left open above depth, then pops the frame at depth.
func (c *compilation) finish(ctx context.Context, depth int) (child, error) {
	for c.frames.depth() > depth {
		open, err := c.frames.top()
		if err != nil {
			return nil, err
		}
		c.logger.WarnContext(ctx, "closing unclosed element", "frame", open.name)

		code, err := c.pop()
		if err != nil {
			return nil, err
		}
		parent, err := c.frames.top()
		if err != nil {
			return nil, err
		}
		parent.push(containerChild{code: code})
	}

	code, err := c.pop()
	if err != nil {
		return nil, err
	}
	return containerChild{code: code}, nil
}

// pop finalizes the current frame against the frame that becomes current after it.
func (c *compilation) pop() (string, error) {
	f, err := c.frames.pop()
	if err != nil {
		return "", err
	}
	parent, err := c.frames.top()
	if err != nil {
		return "", fmt.Errorf("%w: popping %s", err, f)
	}
	return f.flatten(parent.target, c.dialect, c.appendMode)
}

func isNilNode(node ast.Node) bool {
	switch n := node.(type) {
	case nil:
		return true
	case *ast.Document:
		return n == nil
	case *ast.Container:
		return n == nil
	case *ast.Text:
		return n == nil
	case *ast.Tag:
		return n == nil
	case *ast.Directive:
		return n == nil
	case *ast.Code:
		return n == nil
	default:
		return false
	}
}
