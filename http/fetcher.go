// Package http provides an HTTP-based implementation of docchain.Fetcher
// for static documentation sites, plus cover image download.
package http

import (
	"compress/gzip"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"mime"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/andybalholm/brotli"
	"github.com/fwojciec/docchain"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
// Kept consistent with rod.DefaultFetchTimeout (10s).
const DefaultFetchTimeout = 10 * time.Second

// DefaultUserAgent identifies requests as coming from a desktop browser.
// Several documentation hosts reject unknown clients.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"

// Body size limits.
const (
	DefaultMaxPageBytes  = 20 << 20
	DefaultMaxImageBytes = 5 << 20
)

// Ensure Fetcher implements docchain.Fetcher and docchain.ImageFetcher at
// compile time.
var (
	_ docchain.Fetcher      = (*Fetcher)(nil)
	_ docchain.ImageFetcher = (*Fetcher)(nil)
)

// Fetcher retrieves HTML content and images using plain HTTP requests.
// Unlike rod.Fetcher, this does not execute JavaScript and is suitable
// for static sites only.
type Fetcher struct {
	client        *http.Client
	timeout       time.Duration
	userAgent     string
	maxImageBytes int64
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout (10s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithUserAgent overrides DefaultUserAgent.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// WithMaxImageBytes caps the size of downloaded images.
func WithMaxImageBytes(n int64) Option {
	return func(f *Fetcher) {
		f.maxImageBytes = n
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:       DefaultFetchTimeout,
		userAgent:     DefaultUserAgent,
		maxImageBytes: DefaultMaxImageBytes,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
	}

	return f
}

// Fetch retrieves the HTML content from the given URL.
// Non-2xx responses fail with message "HTTP <status>" and expired
// deadlines with message "timeout".
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	body, _, err := f.get(ctx, url, "text/html,application/xhtml+xml;q=0.9,*/*;q=0.8", DefaultMaxPageBytes)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// FetchImage downloads an image and returns it as a base64 data URI.
// A data URI is returned unchanged.
func (f *Fetcher) FetchImage(ctx context.Context, url string) (string, error) {
	if strings.HasPrefix(url, "data:") {
		return url, nil
	}

	body, contentType, err := f.get(ctx, url, "image/*", f.maxImageBytes)
	if err != nil {
		return "", err
	}

	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil || !strings.HasPrefix(mediaType, "image/") {
		mediaType, _, _ = mime.ParseMediaType(http.DetectContentType(body))
	}
	if !strings.HasPrefix(mediaType, "image/") {
		return "", docchain.Errorf(docchain.EINVALID, "not an image: %s", mediaType)
	}

	return "data:" + mediaType + ";base64," + base64.StdEncoding.EncodeToString(body), nil
}

// Close releases resources. For HTTP fetcher this is a no-op since
// http.Client doesn't require explicit cleanup.
func (f *Fetcher) Close() error {
	return nil
}

// get performs a GET request and returns the decoded body and its content
// type.
func (f *Fetcher) get(ctx context.Context, url, accept string, limit int64) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", docchain.Errorf(docchain.EINVALID, "invalid URL %q: %v", url, err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", accept)
	req.Header.Set("Accept-Encoding", "gzip, br")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, "", classify(ctx, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, "", docchain.Errorf(docchain.EUNAVAILABLE, "HTTP %d", resp.StatusCode)
	}

	decoded, err := decoder(resp.Header.Get("Content-Encoding"), resp.Body)
	if err != nil {
		return nil, "", classify(ctx, err)
	}

	body, err := io.ReadAll(io.LimitReader(decoded, limit+1))
	if err != nil {
		return nil, "", classify(ctx, err)
	}
	if int64(len(body)) > limit {
		return nil, "", docchain.Errorf(docchain.EUNAVAILABLE, "response exceeds %d bytes", limit)
	}

	return body, resp.Header.Get("Content-Type"), nil
}

// decoder wraps body in a reader undoing a gzip or brotli content encoding.
func decoder(encoding string, body io.Reader) (io.Reader, error) {
	switch strings.ToLower(strings.TrimSpace(encoding)) {
	case "gzip":
		r, err := gzip.NewReader(body)
		if err != nil {
			return nil, fmt.Errorf("gzip: %w", err)
		}
		return r, nil
	case "br":
		return brotli.NewReader(body), nil
	default:
		return body, nil
	}
}

// classify maps transport errors to failure reasons. Caller cancellation is
// returned as is.
func classify(ctx context.Context, err error) error {
	if errors.Is(ctx.Err(), context.Canceled) {
		return ctx.Err()
	}
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return docchain.Errorf(docchain.EUNAVAILABLE, "timeout")
	}
	return docchain.Errorf(docchain.EUNAVAILABLE, "%v", err)
}
