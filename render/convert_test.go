package render

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	starlarkLib "go.starlark.net/starlark"
)

func TestToStarlark(t *testing.T) {
	t.Parallel()

	u, err := url.Parse("https://example.com/a?b=c")
	require.NoError(t, err)

	tests := []struct {
		name string
		in   any
		want string
	}{
		{name: "nil", in: nil, want: "None"},
		{name: "bool", in: true, want: "True"},
		{name: "int", in: 42, want: "42"},
		{name: "int64", in: int64(-7), want: "-7"},
		{name: "uint64", in: uint64(7), want: "7"},
		{name: "float", in: 1.5, want: "1.5"},
		{name: "string", in: "hi", want: `"hi"`},
		{name: "bytes", in: []byte("hi"), want: `b"hi"`},
		{name: "url", in: u, want: `"https://example.com/a?b=c"`},
		{name: "duration", in: 2 * time.Second, want: "2s"},
		{name: "string slice", in: []string{"a", "b"}, want: `["a", "b"]`},
		{name: "nested", in: []any{1, map[string]any{"z": nil, "a": []any{}}}, want: `[1, {"a": [], "z": None}]`},
		{name: "set", in: map[string]struct{}{"y": {}, "x": {}}, want: `set(["x", "y"])`},
		{name: "records", in: []map[string]any{{"n": 1}}, want: `[{"n": 1}]`},
		{name: "starlark value", in: starlarkLib.String("raw"), want: `"raw"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := toStarlark(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}

	_, err = toStarlark(struct{}{})
	require.Error(t, err)
	_, err = toStarlark(map[string]any{"k": []any{func() {}}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `key "k"`)
}
