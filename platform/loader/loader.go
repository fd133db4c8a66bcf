// Package loader reads template sources. Every loader can be read more than once and
// names its source with a URL, which is used in logs and error messages.
package loader

import (
	"errors"
	"io"
	"net/url"
)

var (
	ErrTemplateNotAvailable = errors.New("template not available")
	ErrSchemeUnsupported    = errors.New("unsupported scheme")
)

// Loader provides the template source.
type Loader interface {
	GetReader() (io.ReadCloser, error)
	GetSourceURL() *url.URL
}

// ReadAll reads the whole template from l.
func ReadAll(l Loader) (string, error) {
	r, err := l.GetReader()
	if err != nil {
		return "", err
	}
	defer func() { _ = r.Close() }()

	b, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
