// Package log provides logging for the scraper, built on top of the
// standard slog package.
//
// This package extends slog to provide:
//   - Automatic truncation of oversized attribute values (scraped page text)
//   - Configurable log levels with verbose mode support
//   - Consistent log formatting across the application
//
// # Truncation
//
// Scraped pages carry free-form text of arbitrary length; a single
// description attribute can run to many kilobytes. The TruncateHandler caps
// string attribute values so one noisy page cannot flood the log, while
// short operational attributes (URLs, counts, names) pass through untouched.
//
// # Usage
//
//	// Create a logger
//	logger := log.NewLogger(os.Stderr, true) // verbose=true
//
//	// Use as a standard slog.Logger
//	logger.Info("location enriched",
//	    "url", "https://wikimapia.org/15002/Arad",
//	    "description", longText, // truncated if oversized
//	)
//
//	// Set as default logger
//	slog.SetDefault(logger)
package log
