package crawler

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"golang.org/x/net/html"
)

// Fetcher retrieves a URL and returns it as a parsed HTML document.
// The crawler treats any error as a single "page unavailable" outcome,
// whether it was a transport failure (FetchError) or malformed content
// (ParseError).
type Fetcher interface {
	Fetch(ctx context.Context, pageURL string) (*html.Node, error)
}

// HTTPFetcher fetches pages over HTTP.
//
// Design decision: We require an external *http.Client rather than building
// one because it keeps transport concerns (timeouts, proxies) with the
// caller and allows test servers to inject their own client.
type HTTPFetcher struct {
	// client performs the HTTP requests.
	client *http.Client

	// userAgent is the User-Agent header to send.
	userAgent string

	// maxBodySize limits how many response bytes are read.
	maxBodySize int64
}

// FetcherOption configures an HTTPFetcher.
type FetcherOption func(*HTTPFetcher)

// WithUserAgent sets a custom User-Agent header.
func WithUserAgent(ua string) FetcherOption {
	return func(f *HTTPFetcher) {
		f.userAgent = ua
	}
}

// WithMaxBodySize sets the maximum response body size to read.
func WithMaxBodySize(size int64) FetcherOption {
	return func(f *HTTPFetcher) {
		f.maxBodySize = size
	}
}

// NewHTTPFetcher creates an HTTPFetcher using the given client.
// If client is nil, http.DefaultClient is used.
func NewHTTPFetcher(client *http.Client, opts ...FetcherOption) *HTTPFetcher {
	if client == nil {
		client = http.DefaultClient
	}

	f := &HTTPFetcher{
		client:      client,
		userAgent:   "geoscraper/1.0 (+https://github.com/NoamNol/geoscraper)",
		maxBodySize: 5 * 1024 * 1024, // 5MB
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// Fetch retrieves a page and parses it as HTML.
// HTTP status codes of 400 and above count as fetch failures.
func (f *HTTPFetcher) Fetch(ctx context.Context, pageURL string) (*html.Node, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, &FetchError{URL: pageURL, Err: err}
	}

	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &FetchError{URL: pageURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, &FetchError{URL: pageURL, Err: fmt.Errorf("unexpected status %s", resp.Status)}
	}

	doc, err := html.Parse(io.LimitReader(resp.Body, f.maxBodySize))
	if err != nil {
		return nil, &ParseError{URL: pageURL, Err: err}
	}

	return doc, nil
}
