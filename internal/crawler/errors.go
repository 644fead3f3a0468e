package crawler

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by Run when the search name does not match any
// entry on the start page's listing. It is the only error that aborts a
// crawl; per-page failures are recorded and recovered.
var ErrNotFound = errors.New("search name not found")

// FetchError reports a network or HTTP failure while retrieving a page.
type FetchError struct {
	// URL is the page that could not be fetched.
	URL string

	// Err is the underlying transport or status error.
	Err error
}

// Error implements the error interface.
func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

// Unwrap returns the underlying error.
func (e *FetchError) Unwrap() error { return e.Err }

// ParseError reports malformed content that could not be parsed as HTML.
type ParseError struct {
	// URL is the page whose content could not be parsed.
	URL string

	// Err is the underlying parse error.
	Err error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %v", e.URL, e.Err)
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error { return e.Err }
