package loader

import (
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/robbyt/go-werb/internal/helpers"
)

const (
	defaultHTTPTimeout = 30 * time.Second
	userAgent          = "go-werb/http-loader"
)

// HTTPOption configures a FromHTTP loader.
type HTTPOption func(*FromHTTP)

// WithTimeout limits each request. The default is 30 seconds.
func WithTimeout(d time.Duration) HTTPOption {
	return func(l *FromHTTP) {
		l.timeout = &d
	}
}

// WithBasicAuth sends the credentials with every request.
func WithBasicAuth(username, password string) HTTPOption {
	return func(l *FromHTTP) {
		l.username = username
		l.password = password
	}
}

// WithBearerToken sets the Authorization header.
func WithBearerToken(token string) HTTPOption {
	return WithHeader("Authorization", "Bearer "+token)
}

// WithHeader adds a request header.
func WithHeader(key, value string) HTTPOption {
	return func(l *FromHTTP) {
		l.headers.Set(key, value)
	}
}

// WithTLSConfig replaces the TLS configuration of the loader's transport.
func WithTLSConfig(cfg *tls.Config) HTTPOption {
	return func(l *FromHTTP) {
		l.tlsConfig = cfg
	}
}

// WithHTTPClient starts from a copy of client. The loader never modifies client itself,
// so it can be shared.
func WithHTTPClient(client *http.Client) HTTPOption {
	return func(l *FromHTTP) {
		l.base = client
	}
}

// FromHTTP fetches the template from an http or https URL on every read.
type FromHTTP struct {
	sourceURL *url.URL
	client    *http.Client
	headers   http.Header
	username  string
	password  string

	// settings applied by buildClient once every option has run
	base      *http.Client
	timeout   *time.Duration
	tlsConfig *tls.Config
}

// NewFromHTTP creates a loader for rawURL. Options apply in any order.
func NewFromHTTP(rawURL string, opts ...HTTPOption) (*FromHTTP, error) {
	sourceURL, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("unable to parse URL: %w", err)
	}
	if sourceURL.Scheme != "http" && sourceURL.Scheme != "https" {
		return nil, fmt.Errorf("%w: %s", ErrSchemeUnsupported, rawURL)
	}
	if sourceURL.Host == "" {
		return nil, fmt.Errorf("%w: missing host in %s", ErrTemplateNotAvailable, rawURL)
	}

	l := &FromHTTP{
		sourceURL: sourceURL,
		headers:   make(http.Header),
	}
	for _, opt := range opts {
		opt(l)
	}
	l.client = l.buildClient()
	return l, nil
}

func (l *FromHTTP) buildClient() *http.Client {
	client := &http.Client{Timeout: defaultHTTPTimeout}
	if l.base != nil {
		c := *l.base
		client = &c
	}
	if l.timeout != nil {
		client.Timeout = *l.timeout
	}
	if l.tlsConfig != nil {
		transport, ok := client.Transport.(*http.Transport)
		if !ok || transport == nil {
			transport = http.DefaultTransport.(*http.Transport)
		}
		transport = transport.Clone()
		transport.TLSClientConfig = l.tlsConfig
		client.Transport = transport
	}
	return client
}

// GetReader performs a GET request. The caller closes the body.
func (l *FromHTTP) GetReader() (io.ReadCloser, error) {
	req, err := http.NewRequest(http.MethodGet, l.sourceURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	for key, values := range l.headers {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}
	if l.username != "" {
		req.SetBasicAuth(l.username, l.password)
	}
	if req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", userAgent)
	}

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTemplateNotAvailable, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("%w: HTTP %s", ErrTemplateNotAvailable, resp.Status)
	}
	return resp.Body, nil
}

func (l *FromHTTP) GetSourceURL() *url.URL {
	return l.sourceURL
}

// String fetches the template to include its checksum, and leaves it out when the fetch
// fails.
func (l *FromHTTP) String() string {
	r, err := l.GetReader()
	if err != nil {
		return fmt.Sprintf("loader.FromHTTP{URL: %s}", l.sourceURL)
	}
	defer func() { _ = r.Close() }()

	sum, err := helpers.SHA256Reader(r)
	if err != nil {
		return fmt.Sprintf("loader.FromHTTP{URL: %s}", l.sourceURL)
	}
	return fmt.Sprintf("loader.FromHTTP{URL: %s, SHA256: %s}", l.sourceURL, sum[:8])
}
