// Package report provides output generation for crawl results.
//
// This package contains writers for different output formats:
//   - GeoJSONWriter: GeoJSON feature collection output, the primary artifact
//   - SimpleWriter: Human-readable text summary for terminal display
//   - MarkdownWriter: GitHub Flavored Markdown summary for sharing
//
// Design decision: We separate result writing from result data structures
// (which are in the model package) to follow the single responsibility
// principle. This allows adding new output formats without modifying
// the core data structures.
//
// Writers implement the Writer interface, allowing them to be used
// interchangeably and composed for multi-format output.
package report
