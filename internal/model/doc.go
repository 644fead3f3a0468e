// Package model defines the core data structures used throughout geoscraper.
//
// This package contains the following main types:
//   - GeoPoint: A single longitude/latitude coordinate pair
//   - Location: A discovered point of interest with coordinates and metadata
//   - Feature / FeatureCollection: The GeoJSON output structures (RFC 7946)
//   - CrawlReport: Summary of a single crawl run
//
// Design decision: We separate models into their own package to avoid circular
// dependencies. Multiple packages (crawler, report, database) need to use these
// types, so centralizing them prevents import cycles.
//
// The models are designed to be serializable to JSON for report output and
// database storage.
package model
