package starlark

import (
	"errors"

	"go.starlark.net/syntax"
)

// ErrSyntax is returned when the laid out statements do not parse.
var ErrSyntax = errors.New("starlark syntax error")

// FileOptions returns the dialect the generated code is written in. Templates loop and
// branch at top level and assign handles more than once, which the default Starlark
// dialect forbids.
func FileOptions() *syntax.FileOptions {
	return &syntax.FileOptions{
		Set:             true,
		While:           true,
		TopLevelControl: true,
		GlobalReassign:  true,
		Recursion:       true,
	}
}
