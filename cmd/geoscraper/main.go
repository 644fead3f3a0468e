// Package main provides the entry point for the geoscraper CLI.
//
// geoscraper extracts location data from a public geography directory site.
// It finds a named region, crawls its subtree, and writes the discovered
// locations as a GeoJSON feature collection.
//
// Usage:
//
//	geoscraper crawl <region-name>
//	geoscraper history <region-name>
//
// See --help for all available options.
package main

// main is the entry point for geoscraper.
func main() {
	Execute()
}
