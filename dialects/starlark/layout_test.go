package starlark

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLayout(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "flat statements are untouched",
			in:   "el1 = document.createElement(\"p\")\nroot.appendChild(el1)\n",
			want: "el1 = document.createElement(\"p\")\nroot.appendChild(el1)\n",
		},
		{
			name: "for block",
			in: "for item in items:\n" +
				"el2 = document.createElement(\"li\")\n" +
				"el1.appendChild(el2)\n" +
				"end\n" +
				"root.appendChild(el1)\n",
			want: "for item in items:\n" +
				"    el2 = document.createElement(\"li\")\n" +
				"    el1.appendChild(el2)\n" +
				"root.appendChild(el1)\n",
		},
		{
			name: "if elif else",
			in:   "if a:\nx()\nelif b:\ny()\nelse:\nz()\nend\n",
			want: "if a:\n    x()\nelif b:\n    y()\nelse:\n    z()\n",
		},
		{
			name: "nested blocks",
			in:   "for row in rows:\nfor cell in row:\nf(cell)\nend\nend\n",
			want: "for row in rows:\n    for cell in row:\n        f(cell)\n",
		},
		{
			name: "empty block gets pass",
			in:   "if a:\nend\n",
			want: "if a:\n    pass\n",
		},
		{
			name: "empty branch gets pass",
			in:   "if a:\nelse:\nz()\nend\n",
			want: "if a:\n    pass\nelse:\n    z()\n",
		},
		{
			name: "existing indentation is normalized",
			in:   "  if a:\n\t\tx()\n end\n\n",
			want: "if a:\n    x()\n",
		},
		{
			name: "comments ending in colon do not open blocks",
			in:   "# note:\nx()\n",
			want: "# note:\nx()\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := layout(tt.in, "    ")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLayoutErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
	}{
		{name: "end without block", in: "x()\nend\n"},
		{name: "else without block", in: "else:\nx()\n"},
		{name: "unclosed block", in: "for x in xs:\nf(x)\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := layout(tt.in, "    ")
			require.ErrorIs(t, err, ErrUnbalancedBlock)
		})
	}
}

func TestFinish(t *testing.T) {
	t.Parallel()

	got, err := New().Finish("if ok:\nprint(1)\nend\n")
	require.NoError(t, err)
	assert.Equal(t, "if ok:\n    print(1)\n", got)
}
