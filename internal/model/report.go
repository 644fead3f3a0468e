package model

import "time"

// Crawl phases in which a per-item failure can occur.
const (
	// PhaseDiscovery is the breadth-first traversal phase.
	PhaseDiscovery = "discovery"

	// PhaseEnrichment is the per-location detail fetch phase.
	PhaseEnrichment = "enrichment"
)

// CrawlFailure records a single recovered per-item failure.
// Failures are diagnostic only: the item is skipped and the crawl continues.
type CrawlFailure struct {
	// URL is the page or location URL that could not be fetched.
	URL string `json:"url"`

	// Phase is the crawl phase in which the failure occurred,
	// either PhaseDiscovery or PhaseEnrichment.
	Phase string `json:"phase"`

	// Error is the failure message.
	Error string `json:"error"`
}

// CrawlReport summarizes a single crawl run.
// It is rendered by the markdown writer and persisted to the crawl database.
type CrawlReport struct {
	// SearchName is the region name that was searched for.
	SearchName string `json:"search_name"`

	// StartURL is the directory root the search started from.
	StartURL string `json:"start_url"`

	// TargetURL is the resolved page of the matched region.
	TargetURL string `json:"target_url"`

	// DateCrawled is when the crawl started.
	DateCrawled time.Time `json:"date_crawled"`

	// Duration is the total wall-clock time of the crawl.
	Duration time.Duration `json:"duration"`

	// PagesVisited is the number of URLs that completed the discovery
	// phase, whether their fetch succeeded or failed.
	PagesVisited int `json:"pages_visited"`

	// LocationCount is the number of unique locations discovered.
	LocationCount int `json:"location_count"`

	// EnrichedCount is the number of locations whose detail page
	// contributed extra metadata.
	EnrichedCount int `json:"enriched_count"`

	// Failures lists all recovered per-item failures.
	Failures []CrawlFailure `json:"failures,omitempty"`
}

// FailureCount returns the total number of recovered failures.
func (r *CrawlReport) FailureCount() int {
	return len(r.Failures)
}

// CrawlResult bundles everything a completed crawl hands back to the caller:
// the GeoJSON feature collection and the run summary.
type CrawlResult struct {
	// Collection is the output feature collection. It may be empty when the
	// matched region has no sub-locations; that is not an error.
	Collection *FeatureCollection `json:"collection"`

	// Report is the crawl run summary.
	Report *CrawlReport `json:"report"`
}
