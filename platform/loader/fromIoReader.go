package loader

import (
	"bytes"
	"fmt"
	"io"
	"net/url"

	"github.com/robbyt/go-werb/internal/helpers"
)

// FromIoReader serves a template read once from an io.Reader, such as stdin.
type FromIoReader struct {
	content   []byte
	sourceURL *url.URL
}

// NewFromIoReader reads reader to the end. sourceName becomes the host part of the
// source URL.
func NewFromIoReader(reader io.Reader, sourceName string) (*FromIoReader, error) {
	if reader == nil {
		return nil, fmt.Errorf("%w: reader is nil", ErrTemplateNotAvailable)
	}
	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read from reader: %w", err)
	}
	if len(bytes.TrimSpace(content)) == 0 {
		return nil, fmt.Errorf("%w: content is empty", ErrTemplateNotAvailable)
	}

	if sourceName == "" {
		sourceName = "unnamed"
	}
	u, err := url.Parse("reader://" + sourceName + "/" + helpers.ShortDigest(content))
	if err != nil {
		return nil, fmt.Errorf("failed to create source URL: %w", err)
	}
	return &FromIoReader{content: content, sourceURL: u}, nil
}

func (l *FromIoReader) String() string {
	return fmt.Sprintf("loader.FromIoReader{Bytes: %d, Source: %s}", len(l.content), l.sourceURL)
}

func (l *FromIoReader) GetReader() (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(l.content)), nil
}

func (l *FromIoReader) GetSourceURL() *url.URL {
	return l.sourceURL
}
