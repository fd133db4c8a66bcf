package starlark

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnbalancedBlock is returned when "end" lines do not match block openers.
var ErrUnbalancedBlock = errors.New("unbalanced block")

const blockEnd = "end"

// layout indents every statement by its block depth. Leading whitespace already on a
// line is discarded; empty lines are dropped. A block that is closed without a body
// gets a "pass" statement.
func layout(code, indent string) (string, error) {
	var (
		out   strings.Builder
		depth int
		// open is true while the innermost block has no statements yet
		open bool
	)

	write := func(level int, stmt string) {
		out.WriteString(strings.Repeat(indent, level))
		out.WriteString(stmt)
		out.WriteByte('\n')
	}

	for i, line := range strings.Split(code, "\n") {
		stmt := strings.TrimSpace(line)
		switch {
		case stmt == "":
			continue

		case stmt == blockEnd:
			if depth == 0 {
				return "", fmt.Errorf("%w: line %d: %q without an open block", ErrUnbalancedBlock, i+1, blockEnd)
			}
			if open {
				write(depth, "pass")
			}
			depth--
			open = false

		case continuesBlock(stmt):
			if depth == 0 {
				return "", fmt.Errorf("%w: line %d: %q without an open block", ErrUnbalancedBlock, i+1, stmt)
			}
			if open {
				write(depth, "pass")
			}
			write(depth-1, stmt)
			open = true

		default:
			write(depth, stmt)
			open = false
			if opensBlock(stmt) {
				depth++
				open = true
			}
		}
	}

	if depth != 0 {
		return "", fmt.Errorf("%w: %d block(s) not closed with %q", ErrUnbalancedBlock, depth, blockEnd)
	}
	return out.String(), nil
}

func opensBlock(stmt string) bool {
	return !strings.HasPrefix(stmt, "#") && strings.HasSuffix(stmt, ":")
}

// continuesBlock matches the clauses that close one block and open its sibling.
func continuesBlock(stmt string) bool {
	if !strings.HasSuffix(stmt, ":") {
		return false
	}
	return stmt == "else:" || strings.HasPrefix(stmt, "elif ") || strings.HasPrefix(stmt, "elif(")
}
