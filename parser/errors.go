package parser

import (
	"errors"
	"fmt"
)

// ErrSyntax is wrapped by every *Error.
var ErrSyntax = errors.New("template syntax error")

// Error reports malformed template input at a 1-based line and column.
type Error struct {
	Line int
	Col  int
	Msg  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s at line %d, column %d: %s", ErrSyntax, e.Line, e.Col, e.Msg)
}

func (e *Error) Unwrap() error {
	return ErrSyntax
}

// errorAt builds an *Error for the byte offset pos of src.
func errorAt(src string, pos int, format string, args ...any) *Error {
	line, col := 1, 1
	for i, r := range src {
		if i >= pos {
			break
		}
		if r == '\n' {
			line++
			col = 1
			continue
		}
		col++
	}
	return &Error{Line: line, Col: col, Msg: fmt.Sprintf(format, args...)}
}
