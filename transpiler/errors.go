package transpiler

import (
	"errors"
	"fmt"
)

var (
	ErrNilDocument     = errors.New("document is nil")
	ErrNoActiveFrame   = errors.New("no active frame")
	ErrFrameFinalized  = errors.New("frame already finalized")
	ErrUnrenderable    = errors.New("cannot render child")
	ErrUnknownNode     = errors.New("failed to transpile")
	ErrUnexpectedClose = errors.New("closing tag without an open element")
	ErrInvalidOption   = errors.New("invalid transpiler option")
)

// NodeError reports an AST node the transpiler cannot handle.
type NodeError struct {
	Node   any
	Reason string
}

func (e *NodeError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("%s: unsupported node %T", ErrUnknownNode, e.Node)
	}
	return fmt.Sprintf("%s: %T: %s", ErrUnknownNode, e.Node, e.Reason)
}

func (e *NodeError) Unwrap() error {
	return ErrUnknownNode
}

// RenderError reports a frame child that has no rendering.
type RenderError struct {
	Child string
	Frame string
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("%s %s in frame %q", ErrUnrenderable, e.Child, e.Frame)
}

func (e *RenderError) Unwrap() error {
	return ErrUnrenderable
}
