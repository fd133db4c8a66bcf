package transpiler

import (
	"fmt"
	"strings"

	"github.com/robbyt/go-werb/dialects"
)

type frameKind int

const (
	rootFrame frameKind = iota
	containerFrame
	elementFrame
	directiveFrame
)

func (k frameKind) String() string {
	switch k {
	case rootFrame:
		return "root"
	case containerFrame:
		return "container"
	case elementFrame:
		return "element"
	case directiveFrame:
		return "directive"
	default:
		return fmt.Sprintf("frameKind(%d)", int(k))
	}
}

// child is a pending entry of a frame. The set of implementations is closed.
type child interface {
	isChild()
}

// literalChild is a complete statement: text, an output directive or raw code.
type literalChild struct {
	code string
}

// containerChild is the flattened code of a finished frame.
type containerChild struct {
	code string
}

// elementChild is an element whose append to its parent is still pending.
type elementChild struct {
	handle string
	create string
}

func (literalChild) isChild()   {}
func (containerChild) isChild() {}
func (elementChild) isChild()   {}

// frame accumulates the children of one open container until it is popped.
type frame struct {
	// name identifies the frame: an element handle or the inherited container name.
	name string
	// target is the element that text and appends in this frame address.
	target string
	kind   frameKind

	children  []child
	finalized bool
}

func newFrame(name, target string, kind frameKind) *frame {
	return &frame{name: name, target: target, kind: kind}
}

func (f *frame) String() string {
	return fmt.Sprintf("frame{name: %s, target: %s, kind: %s, children: %d}", f.name, f.target, f.kind, len(f.children))
}

func (f *frame) push(c child) {
	f.children = append(f.children, c)
}

// flatten consumes the frame and returns its statements in order. Pending elements are
// appended to parent, either right after their creation or, in deferred mode, after
// everything else the frame emits.
func (f *frame) flatten(parent string, d dialects.Dialect, mode AppendMode) (string, error) {
	if f.finalized {
		return "", fmt.Errorf("%w: %s", ErrFrameFinalized, f)
	}
	f.finalized = true

	var out, appends strings.Builder
	for _, c := range f.children {
		switch c := c.(type) {
		case literalChild:
			out.WriteString(c.code)
		case containerChild:
			out.WriteString(c.code)
		case elementChild:
			out.WriteString(c.create)
			stmt := d.AppendChild(parent, c.handle)
			if mode == AppendDeferred {
				appends.WriteString(stmt)
			} else {
				out.WriteString(stmt)
			}
		default:
			return "", &RenderError{Child: fmt.Sprintf("%#v", c), Frame: f.name}
		}
	}
	f.children = nil

	out.WriteString(appends.String())
	return out.String(), nil
}

// frameStack is the per-compilation stack of open frames.
type frameStack struct {
	frames []*frame
}

func (s *frameStack) push(f *frame) {
	s.frames = append(s.frames, f)
}

func (s *frameStack) pop() (*frame, error) {
	if len(s.frames) == 0 {
		return nil, ErrNoActiveFrame
	}
	f := s.frames[len(s.frames)-1]
	s.frames = s.frames[:len(s.frames)-1]
	return f, nil
}

func (s *frameStack) top() (*frame, error) {
	if len(s.frames) == 0 {
		return nil, ErrNoActiveFrame
	}
	return s.frames[len(s.frames)-1], nil
}

func (s *frameStack) depth() int {
	return len(s.frames)
}
