package render

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robbyt/go-werb/dialects"
	"github.com/robbyt/go-werb/platform/data"
	"github.com/robbyt/go-werb/platform/loader"
	"github.com/robbyt/go-werb/transpiler"
)

func newRenderer(t *testing.T, src string, opts ...FunctionalOption) *Renderer {
	t.Helper()
	l, err := loader.NewFromString(src)
	require.NoError(t, err)

	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelWarn})
	base := []FunctionalOption{WithLoader(l), WithLogHandler(handler)}
	r, err := New(append(base, opts...)...)
	require.NoError(t, err)
	return r
}

func TestRender(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
		data map[string]any
		opts []FunctionalOption
		want string
	}{
		{
			name: "static markup",
			src:  "<h1>Hello World</h1>",
			want: "<h1>Hello World</h1>",
		},
		{
			name: "loop",
			src:  "<ul><% for item in items: %><li><%= item %></li><% end %></ul>",
			data: map[string]any{"items": []any{"milk", "eggs"}},
			want: "<ul><li>milk</li><li>eggs</li></ul>",
		},
		{
			name: "conditional",
			src:  "<% if user['admin']: %><b>admin</b><% else: %><i><%= user['name'] %></i><% end %>",
			data: map[string]any{"user": map[string]any{"name": "ada", "admin": false}},
			want: "<i>ada</i>",
		},
		{
			name: "nested loops",
			src: `<table>
<% for row in rows: %>
  <tr><% for cell in row: %><td><%= cell %></td><% end %></tr>
<% end %>
</table>`,
			data: map[string]any{"rows": []any{[]any{1, 2}, []any{3}}},
			want: "<table><tr><td>1</td><td>2</td></tr><tr><td>3</td></tr></table>",
		},
		{
			name: "text content is escaped",
			src:  "<p><%= snippet %></p>",
			data: map[string]any{"snippet": "<script>x</script>"},
			want: "<p>&lt;script&gt;x&lt;/script&gt;</p>",
		},
		{
			name: "html content mode",
			src:  "<p>a &amp; <%= snippet %></p>",
			data: map[string]any{"snippet": "<b>bold</b>"},
			opts: []FunctionalOption{WithCompileOptions(transpiler.WithContentMode(dialects.ContentHTML))},
			want: "<p>a &amp; <b>bold</b></p>",
		},
		{
			name: "deferred append",
			src:  "<div><p>x</p></div>",
			opts: []FunctionalOption{WithCompileOptions(transpiler.WithAppendMode(transpiler.AppendDeferred))},
			want: "<div><p>x</p></div>",
		},
		{
			name: "attributes",
			src:  `<a href="/home" class="nav">home</a>`,
			opts: []FunctionalOption{WithCompileOptions(transpiler.WithAttributes())},
			want: `<a href="/home" class="nav">home</a>`,
		},
		{
			name: "standard modules",
			src:  "<p><%= json.encode(cfg) %>, <%= math.floor(2.5) %></p>",
			data: map[string]any{"cfg": map[string]any{"b": 2, "a": 1}},
			want: "<p>{&#34;a&#34;:1,&#34;b&#34;:2}, 2</p>",
		},
		{
			name: "root element lookup",
			src:  `<p><%= document.getElementById("app").tagName %></p>`,
			opts: []FunctionalOption{WithRootID("app")},
			want: "<p>DIV</p>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newRenderer(t, tt.src, tt.opts...)
			ctx, err := r.AddDataToContext(t.Context(), tt.data)
			require.NoError(t, err)

			result, err := r.Render(ctx)
			require.NoError(t, err)
			assert.Equal(t, tt.want, result.HTML)
			assert.NotEmpty(t, result.Statements)
			assert.Contains(t, result.String(), "render.Result")
		})
	}
}

func TestRenderStaticData(t *testing.T) {
	t.Parallel()

	provider := data.NewStaticProvider(map[string]any{"name": "ada"})
	r := newRenderer(t, "<p>Hi <%= name %></p>", WithDataProvider(provider))

	result, err := r.Render(t.Context())
	require.NoError(t, err)
	assert.Equal(t, "<p>Hi ada</p>", result.HTML)

	_, err = r.AddDataToContext(t.Context(), map[string]any{"name": "bob"})
	require.ErrorIs(t, err, data.ErrStaticProviderNoRuntimeUpdates)
}

func TestRenderErrors(t *testing.T) {
	t.Parallel()

	t.Run("undefined global", func(t *testing.T) {
		_, err := newRenderer(t, "<p><%= missing %></p>").Render(t.Context())
		require.ErrorIs(t, err, ErrExecFailed)
		assert.Contains(t, err.Error(), "missing")
	})

	t.Run("runtime error", func(t *testing.T) {
		_, err := newRenderer(t, "<p><%= 1 // 0 %></p>").Render(t.Context())
		require.ErrorIs(t, err, ErrExecFailed)
	})

	t.Run("invalid global name", func(t *testing.T) {
		r := newRenderer(t, "<p></p>", WithDataProvider(data.NewStaticProvider(map[string]any{"not-valid": 1})))
		_, err := r.Render(t.Context())
		require.ErrorIs(t, err, ErrInvalidGlobal)
	})

	t.Run("reserved global name", func(t *testing.T) {
		r := newRenderer(t, "<p></p>", WithDataProvider(data.NewStaticProvider(map[string]any{"root": 1})))
		_, err := r.Render(t.Context())
		require.ErrorIs(t, err, ErrInvalidGlobal)
	})

	t.Run("unsupported data type", func(t *testing.T) {
		r := newRenderer(t, "<p></p>", WithDataProvider(data.NewStaticProvider(map[string]any{"ch": make(chan int)})))
		_, err := r.Render(t.Context())
		require.ErrorIs(t, err, ErrInvalidGlobal)
	})

	t.Run("unbalanced block", func(t *testing.T) {
		_, err := newRenderer(t, "<% for x in xs: %><p></p>").Render(t.Context())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unbalanced block")
	})

	t.Run("cancelled while running", func(t *testing.T) {
		r := newRenderer(t, "<% while True: %><% end %>")
		ctx, cancel := context.WithTimeout(t.Context(), 50*time.Millisecond)
		defer cancel()

		_, err := r.Render(ctx)
		require.ErrorIs(t, err, ErrExecFailed)
		require.ErrorIs(t, err, context.DeadlineExceeded)
	})

	t.Run("missing loader", func(t *testing.T) {
		_, err := New()
		require.ErrorIs(t, err, ErrNoLoader)
	})

	t.Run("nil options", func(t *testing.T) {
		for _, opt := range []FunctionalOption{
			WithLoader(nil), WithDataProvider(nil), WithRootID(""), WithLogHandler(nil), WithLogger(nil),
		} {
			_, err := New(opt)
			require.ErrorIs(t, err, ErrInvalidOption)
		}
	})
}

func TestRenderCompile(t *testing.T) {
	t.Parallel()

	r := newRenderer(t, "<h1>Hi</h1>", WithCompileOptions(transpiler.WithRootName("app")))
	got, err := r.Compile(t.Context())
	require.NoError(t, err)
	assert.Equal(t, "el1 = document.createElement(\"h1\")\n"+
		"app.appendChild(el1)\n"+
		"el1.innerText = el1.innerText + \"Hi\"\n", got)
	assert.Contains(t, r.String(), "string://inline/")

	result, err := r.Render(t.Context())
	require.NoError(t, err)
	assert.Equal(t, "<h1>Hi</h1>", result.HTML)
}
