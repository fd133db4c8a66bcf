package loader

import (
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"
)

// InferLoader picks a loader for input:
//   - a Loader is returned as is;
//   - []byte becomes FromBytes and an io.Reader becomes FromIoReader;
//   - a string with a file:// scheme, or naming an existing file, becomes FromDisk;
//   - a string with an http or https scheme becomes FromHTTP;
//   - a string with any other URL scheme fails with ErrSchemeUnsupported;
//   - any other string is the template itself.
func InferLoader(input any) (Loader, error) {
	switch v := input.(type) {
	case Loader:
		return v, nil
	case string:
		return inferFromString(v)
	case []byte:
		return NewFromBytes(v)
	case io.Reader:
		return NewFromIoReader(v, "inferred")
	default:
		return nil, fmt.Errorf("unsupported input type: %T", input)
	}
}

func inferFromString(input string) (Loader, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return nil, fmt.Errorf("%w: empty string input", ErrTemplateNotAvailable)
	}

	if !strings.ContainsAny(trimmed, "<\n") {
		if u, err := url.Parse(trimmed); err == nil && u.Scheme != "" && len(u.Scheme) > 1 {
			switch u.Scheme {
			case "file":
				return NewFromDisk(trimmed)
			case "http", "https":
				return NewFromHTTP(trimmed)
			}
			return nil, fmt.Errorf("%w: %s", ErrSchemeUnsupported, u.Scheme)
		}
		if info, err := os.Stat(trimmed); err == nil && !info.IsDir() {
			return NewFromDisk(trimmed)
		}
	}
	return NewFromString(input)
}
