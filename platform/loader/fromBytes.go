package loader

import (
	"bytes"
	"fmt"
	"io"
	"net/url"

	"github.com/robbyt/go-werb/internal/helpers"
)

// FromBytes serves a template held in memory, such as one embedded with go:embed.
type FromBytes struct {
	content   []byte
	sourceURL *url.URL
}

// NewFromBytes creates a loader for content, which must not be blank.
func NewFromBytes(content []byte) (*FromBytes, error) {
	if len(bytes.TrimSpace(content)) == 0 {
		return nil, fmt.Errorf("%w: content is empty", ErrTemplateNotAvailable)
	}
	u, err := url.Parse("bytes://inline/" + helpers.ShortDigest(content))
	if err != nil {
		return nil, fmt.Errorf("failed to create source URL: %w", err)
	}
	return &FromBytes{content: content, sourceURL: u}, nil
}

func (l *FromBytes) String() string {
	return fmt.Sprintf("loader.FromBytes{Bytes: %d}", len(l.content))
}

func (l *FromBytes) GetReader() (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(l.content)), nil
}

func (l *FromBytes) GetSourceURL() *url.URL {
	return l.sourceURL
}
