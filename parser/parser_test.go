package parser

import (
	"errors"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robbyt/go-werb/ast"
)

func open(name string, attrs ...ast.Attr) *ast.Tag {
	return &ast.Tag{Name: name, Attrs: attrs}
}

func closing(name string) *ast.Tag {
	return &ast.Tag{Name: name, Closing: true}
}

func code(indicator, src string) *ast.Directive {
	return &ast.Directive{Indicator: indicator, Code: &ast.Code{Source: src}}
}

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
		opts []Option
		want []ast.Node
	}{
		{
			name: "empty",
			src:  "",
			want: nil,
		},
		{
			name: "element with text",
			src:  "<h1>Hello World</h1>",
			want: []ast.Node{open("h1"), &ast.Text{Value: "Hello World"}, closing("h1")},
		},
		{
			name: "tag names are lowercased",
			src:  "<H1></H1>",
			want: []ast.Node{open("h1"), closing("h1")},
		},
		{
			name: "entities are unescaped",
			src:  "<p>a &amp; b &lt;c&gt;</p>",
			want: []ast.Node{open("p"), &ast.Text{Value: "a & b <c>"}, closing("p")},
		},
		{
			name: "attributes",
			src:  `<a href="/x" hidden>go</a>`,
			want: []ast.Node{
				open("a", ast.Attr{Key: "href", Value: "/x"}, ast.Attr{Key: "hidden"}),
				&ast.Text{Value: "go"},
				closing("a"),
			},
		},
		{
			name: "void and self closing elements",
			src:  "<p>a<br>b<br/></p><img src=x></img><div/>",
			want: []ast.Node{
				open("p"), &ast.Text{Value: "a"}, open("br"), closing("br"),
				&ast.Text{Value: "b"}, open("br"), closing("br"), closing("p"),
				open("img", ast.Attr{Key: "src", Value: "x"}), closing("img"),
				open("div"), closing("div"),
			},
		},
		{
			name: "comments and doctype are dropped",
			src:  "<!DOCTYPE html><!-- note --><p></p>",
			want: []ast.Node{open("p"), closing("p")},
		},
		{
			name: "directives inside comments are kept",
			src:  "<div><!-- <% if x %> note <%= y %> --></div><% end %>",
			want: []ast.Node{open("div"), code("", "if x"), code("=", "y"), closing("div"), code("", "end")},
		},
		{
			name: "invalid utf-8 is replaced",
			src:  "<p>caf\xe9<%= x\xff %></p>",
			want: []ast.Node{open("p"), &ast.Text{Value: "caf\uFFFD"}, code("=", "x\uFFFD"), closing("p")},
		},
		{
			name: "whitespace between tags is dropped",
			src:  "<ul>\n  <li>x</li>\n</ul>\n",
			want: []ast.Node{open("ul"), open("li"), &ast.Text{Value: "x"}, closing("li"), closing("ul")},
		},
		{
			name: "whitespace kept on request",
			src:  "<ul>\n</ul>",
			opts: []Option{WithKeepWhitespace()},
			want: []ast.Node{open("ul"), &ast.Text{Value: "\n"}, closing("ul")},
		},
		{
			name: "output directive",
			src:  "<p>Hi <%= user.name %>!</p>",
			want: []ast.Node{
				open("p"), &ast.Text{Value: "Hi "}, code("=", "user.name"), &ast.Text{Value: "!"}, closing("p"),
			},
		},
		{
			name: "statement directives",
			src:  "<ul><% items.each do |item| %><li><%= item %></li><% end %></ul>",
			want: []ast.Node{
				open("ul"), code("", "items.each do |item|"),
				open("li"), code("=", "item"), closing("li"),
				code("", "end"), closing("ul"),
			},
		},
		{
			name: "markup inside directive code",
			src:  `<p><%= "<b>" + x + "</b>" %></p>`,
			want: []ast.Node{open("p"), code("=", `"<b>" + x + "</b>"`), closing("p")},
		},
		{
			name: "comment directive is dropped",
			src:  "<p><%# ignored %>x</p>",
			want: []ast.Node{open("p"), &ast.Text{Value: "x"}, closing("p")},
		},
		{
			name: "trim markers",
			src:  "<p>\n  <%- if a -%>\nx\n<% end %></p>",
			opts: []Option{WithKeepWhitespace()},
			want: []ast.Node{
				open("p"), &ast.Text{Value: "\n"},
				&ast.Directive{TrimLeft: true, TrimRight: true, Code: &ast.Code{Source: "if a"}},
				&ast.Text{Value: "x\n"}, code("", "end"), closing("p"),
			},
		},
		{
			name: "escaped delimiters",
			src:  "<p><%% literal %%></p><%= \"%%>\" %>",
			want: []ast.Node{open("p"), &ast.Text{Value: "<% literal %%>"}, closing("p"), code("=", `"%>"`)},
		},
		{
			name: "directives inside script text",
			src:  "<script>var x = <%= n %>;</script>",
			want: []ast.Node{
				open("script"), &ast.Text{Value: "var x = "}, code("=", "n"), &ast.Text{Value: ";"}, closing("script"),
			},
		},
		{
			name: "stray end tag is kept",
			src:  "</div>",
			want: []ast.Node{closing("div")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Parse(tt.src, tt.opts...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, doc.Children)
		})
	}
}

func TestParseErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
		line int
		col  int
		msg  string
	}{
		{name: "unterminated directive", src: "<p>\n  <%= name </p>", line: 2, col: 3, msg: "unterminated"},
		{name: "directive in attribute", src: `<a href="<%= url %>">x</a>`, line: 1, col: 10, msg: "inside <a> tag"},
		{name: "directive as attribute name", src: "<p>\n<p <% x %>>", line: 2, col: 4, msg: "inside <p> tag"},
		{name: "reserved character", src: "ab\uE000", line: 1, col: 3, msg: "reserved character"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Parse(tt.src)
			require.Error(t, err)
			assert.Nil(t, doc)
			require.ErrorIs(t, err, ErrSyntax)

			var perr *Error
			require.ErrorAs(t, err, &perr)
			assert.Equal(t, tt.line, perr.Line)
			assert.Equal(t, tt.col, perr.Col)
			assert.Contains(t, perr.Error(), tt.msg)
		})
	}
}

func TestParseReader(t *testing.T) {
	t.Parallel()

	doc, err := ParseReader(strings.NewReader("<p><%= x %></p>"))
	require.NoError(t, err)
	assert.Len(t, doc.Children, 3)

	_, err = ParseReader(iotest.ErrReader(errors.New("boom")))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
}
