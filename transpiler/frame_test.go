package transpiler

import (
	"testing"

	"github.com/robbyt/go-werb/dialects/ruby"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrameFlatten(t *testing.T) {
	t.Parallel()
	d := ruby.New()

	build := func() *frame {
		f := newFrame("@el1", "@el1", elementFrame)
		f.push(elementChild{handle: "@el1", create: "@el1 = document.createElement('p')\n"})
		f.push(literalChild{code: "@el1[:innerHTML] += \"a\"\n"})
		f.push(containerChild{code: "@el2 = document.createElement('b')\n@el1.appendChild(@el2)\n"})
		return f
	}

	t.Run("eager appends follow creation", func(t *testing.T) {
		got, err := build().flatten("root", d, AppendEager)
		require.NoError(t, err)
		assert.Equal(t,
			"@el1 = document.createElement('p')\n"+
				"root.appendChild(@el1)\n"+
				"@el1[:innerHTML] += \"a\"\n"+
				"@el2 = document.createElement('b')\n"+
				"@el1.appendChild(@el2)\n",
			got)
	})

	t.Run("deferred appends come last", func(t *testing.T) {
		got, err := build().flatten("root", d, AppendDeferred)
		require.NoError(t, err)
		assert.Equal(t,
			"@el1 = document.createElement('p')\n"+
				"@el1[:innerHTML] += \"a\"\n"+
				"@el2 = document.createElement('b')\n"+
				"@el1.appendChild(@el2)\n"+
				"root.appendChild(@el1)\n",
			got)
	})

	t.Run("frames are single use", func(t *testing.T) {
		f := build()
		_, err := f.flatten("root", d, AppendEager)
		require.NoError(t, err)

		_, err = f.flatten("root", d, AppendEager)
		require.ErrorIs(t, err, ErrFrameFinalized)
	})

	t.Run("unrenderable child", func(t *testing.T) {
		f := newFrame("@el3", "@el3", elementFrame)
		f.push(nil)

		_, err := f.flatten("root", d, AppendEager)
		require.ErrorIs(t, err, ErrUnrenderable)

		var renderErr *RenderError
		require.ErrorAs(t, err, &renderErr)
		assert.Equal(t, "@el3", renderErr.Frame)
		assert.Contains(t, err.Error(), `"@el3"`)
	})

	t.Run("empty frame", func(t *testing.T) {
		got, err := newFrame("root", "root", containerFrame).flatten("root", d, AppendEager)
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

func TestFrameStack(t *testing.T) {
	t.Parallel()

	var s frameStack
	_, err := s.top()
	require.ErrorIs(t, err, ErrNoActiveFrame)
	_, err = s.pop()
	require.ErrorIs(t, err, ErrNoActiveFrame)

	root := newFrame("root", "root", rootFrame)
	el := newFrame("el1", "el1", elementFrame)
	s.push(root)
	s.push(el)
	assert.Equal(t, 2, s.depth())

	top, err := s.top()
	require.NoError(t, err)
	assert.Same(t, el, top)

	popped, err := s.pop()
	require.NoError(t, err)
	assert.Same(t, el, popped)
	assert.Equal(t, 1, s.depth())
}

func TestCounter(t *testing.T) {
	t.Parallel()

	var c counter
	assert.Equal(t, 0, c.issued())
	assert.Equal(t, 1, c.next())
	assert.Equal(t, 2, c.next())
	assert.Equal(t, 2, c.issued())
}

func TestFrameKindString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "element", elementFrame.String())
	assert.Equal(t, "directive", directiveFrame.String())
	assert.Equal(t, "frameKind(9)", frameKind(9).String())
}
