// Package crawler implements the concurrent traversal engine of geoscraper.
//
// # Architecture
//
// The crawler package is designed around the Crawler type, which sequences
// the four stages of a run: resolving the searched region on the start page,
// breadth-first discovery of sub-pages, per-location enrichment, and building
// the output feature collection.
//
// # Components
//
//   - Frontier: deduplicating work queue that drives the discovery phase
//   - Parser: HTML scanner that extracts in-scope links and location records
//   - Fetcher: fetch-and-parse collaborator over net/http and x/net/html
//   - LocationStore: concurrency-safe, append-only store of discovered locations
//   - Crawler: the orchestrator that owns the worker pool and shared state
//
// # Concurrency
//
// Discovery runs a fixed pool of workers that block on the Frontier and feed
// newly found links back into it; the pool stops when the queue drains.
// Enrichment runs afterwards with the same fan-out bound via errgroup.
// The two phases never interleave: no enrichment fetch starts before the last
// discovery item is acknowledged.
//
// # Failure isolation
//
// A page that cannot be fetched or parsed is recorded and skipped; it never
// halts the pool. Only a missing search name aborts the run (ErrNotFound).
//
// # Usage
//
//	c := crawler.New(fetcher, crawler.WithWorkers(10))
//	result, err := c.Run(ctx, "Arad")
package crawler
