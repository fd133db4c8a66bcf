package loader

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const template = "<ul><% items.each do |item| %><li><%= item %></li><% end %></ul>\n"

func readAll(t *testing.T, l Loader) string {
	t.Helper()
	got, err := ReadAll(l)
	require.NoError(t, err)
	return got
}

func TestInlineLoaders(t *testing.T) {
	t.Parallel()

	t.Run("string", func(t *testing.T) {
		l, err := NewFromString(template)
		require.NoError(t, err)
		assert.Equal(t, template, readAll(t, l))
		assert.Equal(t, template, readAll(t, l), "readable twice")
		assert.Equal(t, "string", l.GetSourceURL().Scheme)
		assert.Contains(t, l.String(), "loader.FromString")
	})

	t.Run("bytes", func(t *testing.T) {
		l, err := NewFromBytes([]byte(template))
		require.NoError(t, err)
		assert.Equal(t, template, readAll(t, l))
		assert.Equal(t, "bytes", l.GetSourceURL().Scheme)
	})

	t.Run("reader", func(t *testing.T) {
		l, err := NewFromIoReader(strings.NewReader(template), "stdin")
		require.NoError(t, err)
		assert.Equal(t, template, readAll(t, l))
		assert.Equal(t, "stdin", l.GetSourceURL().Host)
		assert.Contains(t, l.String(), "reader://stdin/")
	})

	t.Run("same content same url", func(t *testing.T) {
		a, err := NewFromString(template)
		require.NoError(t, err)
		b, err := NewFromBytes([]byte(template))
		require.NoError(t, err)
		assert.Equal(t, a.GetSourceURL().Path, b.GetSourceURL().Path)
	})

	empty := []struct {
		name string
		make func() error
	}{
		{name: "blank string", make: func() error { _, err := NewFromString(" \n"); return err }},
		{name: "empty bytes", make: func() error { _, err := NewFromBytes(nil); return err }},
		{name: "nil reader", make: func() error { _, err := NewFromIoReader(nil, ""); return err }},
		{name: "blank reader", make: func() error { _, err := NewFromIoReader(bytes.NewBufferString("\t"), ""); return err }},
	}
	for _, tt := range empty {
		t.Run(tt.name, func(t *testing.T) {
			require.ErrorIs(t, tt.make(), ErrTemplateNotAvailable)
		})
	}

	t.Run("failing reader", func(t *testing.T) {
		_, err := NewFromIoReader(io.MultiReader(strings.NewReader("x"), errReader{}), "")
		require.Error(t, err)
	})
}

type errReader struct{}

func (errReader) Read([]byte) (int, error) {
	return 0, errors.New("read failed")
}

func TestFromDisk(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "index.html.erb")
	require.NoError(t, os.WriteFile(path, []byte(template), 0o600))

	l, err := NewFromDisk("file://" + path)
	require.NoError(t, err)
	assert.Equal(t, template, readAll(t, l))
	assert.Equal(t, "file", l.GetSourceURL().Scheme)
	assert.Contains(t, l.String(), "SHA256")

	require.NoError(t, os.WriteFile(path, []byte("<p></p>"), 0o600))
	assert.Equal(t, "<p></p>", readAll(t, l), "file is re-read")

	missing, err := NewFromDisk(filepath.Join(dir, "missing.erb"))
	require.NoError(t, err)
	_, err = missing.GetReader()
	require.ErrorIs(t, err, ErrTemplateNotAvailable)
	assert.NotContains(t, missing.String(), "SHA256")

	_, err = NewFromDisk("https://example.com/index.erb")
	require.ErrorIs(t, err, ErrSchemeUnsupported)

	_, err = NewFromDisk("")
	require.ErrorIs(t, err, ErrTemplateNotAvailable)
}

func TestInferLoader(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "page.erb")
	require.NoError(t, os.WriteFile(path, []byte(template), 0o600))

	mockLoader := new(MockLoader)

	tests := []struct {
		name    string
		input   any
		want    any
		wantErr error
	}{
		{name: "loader", input: mockLoader, want: mockLoader},
		{name: "inline template", input: template, want: &FromString{}},
		{name: "plain words", input: "hello world", want: &FromString{}},
		{name: "existing file", input: path, want: &FromDisk{}},
		{name: "file url", input: "file://" + path, want: &FromDisk{}},
		{name: "bytes", input: []byte(template), want: &FromBytes{}},
		{name: "reader", input: strings.NewReader(template), want: &FromIoReader{}},
		{name: "http url", input: "https://example.com/x.erb", want: &FromHTTP{}},
		{name: "other scheme", input: "ftp://example.com/x.erb", wantErr: ErrSchemeUnsupported},
		{name: "empty", input: "  ", wantErr: ErrTemplateNotAvailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := InferLoader(tt.input)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			if ml, ok := tt.want.(*MockLoader); ok {
				assert.Same(t, ml, l)
				return
			}
			assert.IsType(t, tt.want, l)
		})
	}

	_, err := InferLoader(42)
	require.Error(t, err)
}

func TestReadAllErrors(t *testing.T) {
	t.Parallel()

	m := new(MockLoader)
	m.On("GetReader").Return(nil, ErrTemplateNotAvailable)
	_, err := ReadAll(m)
	require.ErrorIs(t, err, ErrTemplateNotAvailable)
	m.AssertExpectations(t)

	m = new(MockLoader)
	m.On("GetReader").Return(io.NopCloser(errReader{}), nil)
	_, err = ReadAll(m)
	require.Error(t, err)
}
