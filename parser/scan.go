package parser

import (
	"strconv"
	"strings"

	"github.com/robbyt/go-werb/ast"
)

const (
	openDelim  = "<%"
	closeDelim = "%>"

	commentIndicator = "#"
	trimMarker       = "-"
)

// Directives are masked in the markup handed to the HTML tokenizer as
// placeholderOpen + index + placeholderClose, so they survive tokenization as text.
const (
	placeholderOpen  = '\uE000'
	placeholderClose = '\uE001'
)

// segment is a directive found in the source, with its byte offset.
type segment struct {
	directive *ast.Directive
	pos       int
}

// scan splits src into masked markup and the directives it references. "<%%" writes a
// literal "<%" to the markup and "%%>" a literal "%>" inside directive code. Comment
// directives are dropped, and trim markers remove the indentation before "<%-" and the
// newline after "-%>".
func scan(src string) (string, []segment, error) {
	if i := strings.IndexAny(src, string([]rune{placeholderOpen, placeholderClose})); i >= 0 {
		return "", nil, errorAt(src, i, "reserved character %U in template", []rune(src[i:])[0])
	}

	var (
		markup   strings.Builder
		segments []segment
		rest     = src
		offset   = 0
	)

	for {
		i := strings.Index(rest, openDelim)
		if i < 0 {
			markup.WriteString(rest)
			break
		}

		if strings.HasPrefix(rest[i:], openDelim+"%") {
			markup.WriteString(rest[:i])
			markup.WriteString(openDelim)
			rest = rest[i+len(openDelim)+1:]
			offset += i + len(openDelim) + 1
			continue
		}

		start := offset + i
		body := rest[i+len(openDelim):]
		end := findClose(body)
		if end < 0 {
			return "", nil, errorAt(src, start, "unterminated directive, missing %q", closeDelim)
		}
		inner := body[:end]
		after := body[end+len(closeDelim):]

		d := &ast.Directive{}
		if strings.HasPrefix(inner, trimMarker) {
			d.TrimLeft = true
			inner = inner[len(trimMarker):]
		}
		if strings.HasSuffix(inner, trimMarker) {
			d.TrimRight = true
			inner = inner[:len(inner)-len(trimMarker)]
		}

		text := rest[:i]
		if d.TrimLeft {
			text = trimIndent(text)
		}
		markup.WriteString(text)

		switch {
		case strings.HasPrefix(inner, commentIndicator):
		case strings.HasPrefix(inner, ast.OutputIndicator):
			d.Indicator = ast.OutputIndicator
			inner = inner[len(ast.OutputIndicator):]
			fallthrough
		default:
			d.Code = &ast.Code{Source: strings.TrimSpace(strings.ReplaceAll(inner, "%%>", closeDelim))}
			markup.WriteRune(placeholderOpen)
			markup.WriteString(strconv.Itoa(len(segments)))
			markup.WriteRune(placeholderClose)
			segments = append(segments, segment{directive: d, pos: start})
		}

		consumed := len(rest) - len(after)
		if d.TrimRight {
			switch {
			case strings.HasPrefix(after, "\r\n"):
				after = after[2:]
				consumed += 2
			case strings.HasPrefix(after, "\n"):
				after = after[1:]
				consumed++
			}
		}
		rest = after
		offset += consumed
	}

	return markup.String(), segments, nil
}

// findClose returns the index of the first "%>" in body that is not written as "%%>".
func findClose(body string) int {
	for from := 0; ; {
		i := strings.Index(body[from:], closeDelim)
		if i < 0 {
			return -1
		}
		i += from
		if i > 0 && body[i-1] == '%' {
			from = i + len(closeDelim)
			continue
		}
		return i
	}
}

// trimIndent drops spaces and tabs that follow the last newline of text, or all of text
// when it has no newline and is blank.
func trimIndent(text string) string {
	trimmed := strings.TrimRight(text, " \t")
	if trimmed == "" || strings.HasSuffix(trimmed, "\n") {
		return trimmed
	}
	return text
}
