package fileutil

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"

	"golang.org/x/text/encoding/ianaindex"

	"github.com/toolbelt/belt/logging"
)

const downloadTimeout = 10 * time.Second

// HTTPDoer performs a single HTTP request. *http.Client satisfies it; tests
// substitute their own.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// ReadOption adjusts how ReadText reads a file.
type ReadOption func(*readOptions)

type readOptions struct {
	encoding    string
	fallbackURL string
	client      HTTPDoer
	logger      *slog.Logger
}

// WithEncoding decodes the file from the named IANA character set instead of
// assuming UTF-8.
func WithEncoding(name string) ReadOption {
	return func(o *readOptions) {
		o.encoding = name
	}
}

// WithFallbackURL downloads the file from url when the local read fails, and
// caches the downloaded text at the original path.
func WithFallbackURL(url string) ReadOption {
	return func(o *readOptions) {
		o.fallbackURL = url
	}
}

// WithHTTPClient overrides the HTTP client used for fallback downloads.
func WithHTTPClient(client HTTPDoer) ReadOption {
	return func(o *readOptions) {
		o.client = client
	}
}

// WithLogger emits progress lines for reads and fallback downloads.
func WithLogger(logger *slog.Logger) ReadOption {
	return func(o *readOptions) {
		o.logger = logger
	}
}

// ReadText reads an entire file as a string. When a fallback URL is
// configured and the local read fails, the text is downloaded, cached back
// to path, and returned.
func ReadText(path string, opts ...ReadOption) (string, error) {
	o := &readOptions{}
	for _, opt := range opts {
		opt(o)
	}
	logger := o.logger
	if logger == nil {
		logger = logging.NewNop()
	}

	logger.Debug("reading file", slog.String("path", path))
	data, err := os.ReadFile(path)
	if err == nil {
		return decodeText(data, o.encoding)
	}
	if o.fallbackURL == "" {
		return "", fmt.Errorf("read %s: %w", path, err)
	}

	logger.Warn("local read failed, downloading",
		slog.String("path", path),
		slog.String("url", o.fallbackURL),
		slog.Any("error", err))
	text, err := download(o.client, o.fallbackURL)
	if err != nil {
		return "", fmt.Errorf("download %s: %w", o.fallbackURL, err)
	}
	if err := WriteText(path, text); err != nil {
		return "", fmt.Errorf("cache download to %s: %w", path, err)
	}
	return text, nil
}

func download(client HTTPDoer, url string) (string, error) {
	if client == nil {
		client = &http.Client{Timeout: downloadTimeout}
	}
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status %s", resp.Status)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func decodeText(data []byte, encoding string) (string, error) {
	if encoding == "" {
		return string(data), nil
	}
	enc, err := ianaindex.IANA.Encoding(encoding)
	if err != nil {
		return "", fmt.Errorf("encoding %q: %w", encoding, err)
	}
	if enc == nil {
		return "", fmt.Errorf("encoding %q is not supported", encoding)
	}
	decoded, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return "", fmt.Errorf("decode %s: %w", encoding, err)
	}
	return string(decoded), nil
}
