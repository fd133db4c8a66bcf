package loader

import (
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/robbyt/go-werb/internal/helpers"
)

// FromDisk serves a template file. The file is opened on every GetReader call, so edits
// are picked up by the next compile.
type FromDisk struct {
	path      string
	sourceURL *url.URL
}

// NewFromDisk creates a loader for path, which may carry a file:// prefix. Relative
// paths are resolved against the working directory.
func NewFromDisk(path string) (*FromDisk, error) {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return nil, fmt.Errorf("%w: %s", ErrSchemeUnsupported, path)
	}
	path = strings.TrimPrefix(path, "file://")
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("%w: path is empty", ErrTemplateNotAvailable)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTemplateNotAvailable, err)
	}
	if abs == string(filepath.Separator) {
		return nil, fmt.Errorf("%w: path %q is a directory", ErrTemplateNotAvailable, path)
	}

	u := &url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}
	return &FromDisk{path: abs, sourceURL: u}, nil
}

func (l *FromDisk) String() string {
	plain := fmt.Sprintf("loader.FromDisk{Path: %s}", l.path)
	r, err := l.GetReader()
	if err != nil {
		return plain
	}
	defer func() { _ = r.Close() }()

	sum, err := helpers.SHA256Reader(r)
	if err != nil {
		return plain
	}
	return fmt.Sprintf("loader.FromDisk{Path: %s, SHA256: %s}", l.path, sum[:8])
}

func (l *FromDisk) GetReader() (io.ReadCloser, error) {
	f, err := os.Open(l.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTemplateNotAvailable, err)
	}
	return f, nil
}

func (l *FromDisk) GetSourceURL() *url.URL {
	return l.sourceURL
}
