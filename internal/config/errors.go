package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() and provide specific
// information about what is wrong with the configuration.
//
// Design decision: We use package-level sentinel errors rather than
// creating new error instances in Validate(). This allows callers to use
// errors.Is() for programmatic error handling while still providing
// human-readable messages. Using errors.New() here rather than fmt.Errorf()
// because we don't need to include dynamic values in these messages.
var (
	// ErrNoSearchName is returned when no region name is given.
	// This error occurs when neither the positional argument, the
	// WIKI_SEARCHNAME environment variable nor the config file provides one.
	ErrNoSearchName = errors.New("no search name specified: provide a region name to look up")

	// ErrInvalidStartURL is returned when the start URL is not an absolute
	// http or https URL. Relative links on crawled pages cannot be resolved
	// against a relative or schemeless base.
	ErrInvalidStartURL = errors.New("invalid start URL: must be an absolute http(s) URL")

	// ErrInvalidWorkers is returned when the worker count is not positive.
	// A worker count of zero would mean no concurrent fetches, effectively
	// stopping the crawl.
	ErrInvalidWorkers = errors.New("invalid worker count: must be positive")

	// ErrInvalidTimeout is returned when the timeout is not positive.
	// A timeout of zero or negative would cause immediate request failures.
	ErrInvalidTimeout = errors.New("invalid timeout: must be positive")

	// ErrInvalidMaxBodySize is returned when the max body size is negative.
	// A negative body size is invalid; use 0 to use the default limit.
	ErrInvalidMaxBodySize = errors.New("invalid max body size: must be non-negative")
)
