package loader

import (
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/robbyt/go-werb/internal/helpers"
)

// FromString serves an inline template.
type FromString struct {
	content   string
	sourceURL *url.URL
}

// NewFromString creates a loader for content, which must not be blank. Content is kept
// as given, since leading whitespace can be significant in a template.
func NewFromString(content string) (*FromString, error) {
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("%w: content is empty", ErrTemplateNotAvailable)
	}
	u, err := url.Parse("string://inline/" + helpers.ShortDigest([]byte(content)))
	if err != nil {
		return nil, fmt.Errorf("failed to create source URL: %w", err)
	}
	return &FromString{content: content, sourceURL: u}, nil
}

func (l *FromString) String() string {
	return fmt.Sprintf("loader.FromString{Chars: %d}", len(l.content))
}

func (l *FromString) GetReader() (io.ReadCloser, error) {
	return io.NopCloser(strings.NewReader(l.content)), nil
}

func (l *FromString) GetSourceURL() *url.URL {
	return l.sourceURL
}
