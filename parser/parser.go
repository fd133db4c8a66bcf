// Package parser turns an HTML template with embedded <% %> directives into the flat
// ast.Document consumed by the transpiler.
//
// Directives are cut out of the source first and replaced by placeholders, so the HTML
// tokenizer from golang.org/x/net/html never sees scripting code, however much markup
// the code itself contains. Opening and closing tags are returned as separate siblings.
package parser

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"

	"github.com/robbyt/go-werb/ast"
)

// voidElements never have content or an end tag.
var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true, "hr": true,
	"img": true, "input": true, "link": true, "meta": true, "source": true,
	"track": true, "wbr": true,
}

// Option configures Parse.
type Option func(*config)

type config struct {
	keepWhitespace bool
}

// WithKeepWhitespace keeps text nodes that only contain whitespace. By default they are
// dropped, since indentation between tags is rarely meaningful in a template.
func WithKeepWhitespace() Option {
	return func(c *config) {
		c.keepWhitespace = true
	}
}

// Parse parses src. Malformed directives are reported as *Error. Invalid UTF-8 is replaced
// with U+FFFD so every dialect quotes the same text.
func Parse(src string, opts ...Option) (*ast.Document, error) {
	cfg := &config{}
	for _, opt := range opts {
		opt(cfg)
	}
	src = strings.ToValidUTF8(src, string(utf8.RuneError))

	markup, segments, err := scan(src)
	if err != nil {
		return nil, err
	}

	b := &builder{config: cfg, src: src, segments: segments}
	z := html.NewTokenizer(strings.NewReader(markup))
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			if errors.Is(z.Err(), io.EOF) {
				break
			}
			return nil, fmt.Errorf("%w: %w", ErrSyntax, z.Err())
		}
		if err := b.token(tt, z.Token()); err != nil {
			return nil, err
		}
	}
	return &ast.Document{Children: b.nodes}, nil
}

// ParseReader reads the whole template from r and parses it.
func ParseReader(r io.Reader, opts ...Option) (*ast.Document, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read template: %w", err)
	}
	return Parse(string(src), opts...)
}

type builder struct {
	*config
	src      string
	segments []segment
	nodes    []ast.Node
}

func (b *builder) token(tt html.TokenType, tok html.Token) error {
	switch tt {
	case html.TextToken:
		return b.text(tok.Data)

	case html.StartTagToken, html.SelfClosingTagToken:
		if err := b.checkTag(tok); err != nil {
			return err
		}
		attrs := make([]ast.Attr, 0, len(tok.Attr))
		for _, a := range tok.Attr {
			attrs = append(attrs, ast.Attr{Key: a.Key, Value: a.Val})
		}
		b.nodes = append(b.nodes, &ast.Tag{Name: tok.Data, Attrs: attrs})
		if tt == html.SelfClosingTagToken || voidElements[tok.Data] {
			b.nodes = append(b.nodes, &ast.Tag{Name: tok.Data, Closing: true})
		}

	case html.EndTagToken:
		if err := b.checkTag(tok); err != nil {
			return err
		}
		if !voidElements[tok.Data] {
			b.nodes = append(b.nodes, &ast.Tag{Name: tok.Data, Closing: true})
		}

	case html.CommentToken:
		return b.comment(tok.Data)

	case html.DoctypeToken:
	}
	return nil
}

// comment drops the comment text but keeps the directives inside it, since they still
// run: "<!-- <% if x %> -->" opens a block like any other statement.
func (b *builder) comment(s string) error {
	for {
		i := strings.IndexRune(s, placeholderOpen)
		if i < 0 {
			return nil
		}
		seg, rest, err := b.placeholder(s[i:])
		if err != nil {
			return err
		}
		b.nodes = append(b.nodes, seg.directive)
		s = rest
	}
}

// text splits tokenizer text around directive placeholders.
func (b *builder) text(s string) error {
	for {
		i := strings.IndexRune(s, placeholderOpen)
		if i < 0 {
			b.addText(s)
			return nil
		}
		b.addText(s[:i])

		seg, rest, err := b.placeholder(s[i:])
		if err != nil {
			return err
		}
		b.nodes = append(b.nodes, seg.directive)
		s = rest
	}
}

func (b *builder) addText(s string) {
	if s == "" || (!b.keepWhitespace && strings.TrimSpace(s) == "") {
		return
	}
	b.nodes = append(b.nodes, &ast.Text{Value: s})
}

// placeholder decodes the placeholder at the start of s.
func (b *builder) placeholder(s string) (segment, string, error) {
	s = strings.TrimPrefix(s, string(placeholderOpen))
	j := strings.IndexRune(s, placeholderClose)
	if j < 0 {
		return segment{}, "", fmt.Errorf("%w: truncated directive placeholder", ErrSyntax)
	}
	n, err := strconv.Atoi(s[:j])
	if err != nil || n < 0 || n >= len(b.segments) {
		return segment{}, "", fmt.Errorf("%w: invalid directive placeholder %q", ErrSyntax, s[:j])
	}
	return b.segments[n], s[j+len(string(placeholderClose)):], nil
}

// checkTag rejects directives inside a tag. Attributes only ever become literal
// setAttribute values, so a directive there has no statement to lower into, and dropping
// it would lose its code.
func (b *builder) checkTag(tok html.Token) error {
	fields := []string{tok.Data}
	for _, a := range tok.Attr {
		fields = append(fields, a.Key, a.Val)
	}
	for _, f := range fields {
		i := strings.IndexRune(f, placeholderOpen)
		if i < 0 {
			continue
		}
		seg, _, err := b.placeholder(f[i:])
		if err != nil {
			return err
		}
		return errorAt(b.src, seg.pos, "directive inside <%s> tag is not supported", tok.Data)
	}
	return nil
}
