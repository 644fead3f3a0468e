package crawler

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/NoamNol/geoscraper/internal/model"
)

// Crawler runs the full pipeline: resolve the searched region on the start
// page, crawl its subtree breadth-first with a fixed worker pool, enrich
// every discovered location from its own page, and build the output
// feature collection.
type Crawler struct {
	// fetcher retrieves and parses pages.
	fetcher Fetcher

	// workers is the pool size for both discovery and enrichment.
	// Too many concurrent workers risks the source site throttling or
	// blocking the crawler, so the count is operator-tunable.
	workers int

	// directoryPrefix marks directory/listing URLs. Locations whose path
	// starts with it are skipped during enrichment: only leaf detail pages
	// carry a description.
	directoryPrefix string

	// logger receives per-URL progress and failure diagnostics.
	logger *slog.Logger

	// queue and store are the shared state of one run,
	// recreated at the start of each Run.
	queue *Frontier
	store *LocationStore

	// mu protects visited, failures and the counters below.
	mu           sync.Mutex
	visited      map[string]struct{}
	failures     []model.CrawlFailure
	pagesVisited int
	enriched     int
}

// Option configures a Crawler.
type Option func(*Crawler)

// WithWorkers sets the worker pool size for discovery and enrichment.
// Values below one are ignored.
func WithWorkers(n int) Option {
	return func(c *Crawler) {
		if n > 0 {
			c.workers = n
		}
	}
}

// WithDirectoryPrefix sets the URL path prefix identifying directory pages,
// which are excluded from enrichment.
func WithDirectoryPrefix(prefix string) Option {
	return func(c *Crawler) {
		c.directoryPrefix = prefix
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Crawler) {
		c.logger = logger
	}
}

// New creates a Crawler using the given fetcher.
func New(fetcher Fetcher, opts ...Option) *Crawler {
	c := &Crawler{
		fetcher:         fetcher,
		workers:         10,
		directoryPrefix: "/country/",
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.logger == nil {
		c.logger = slog.Default()
	}

	return c
}

// Run crawls the subtree of the region named searchName under startURL and
// returns the resulting feature collection and run report.
//
// It returns an error wrapping ErrNotFound when the search name matches no
// entry on the start page's listing. Per-page failures during discovery and
// enrichment never fail the run; they are recorded in the report.
// An empty feature collection is a valid result, not an error.
//
// Cancelling the context abandons in-flight fetches and returns whatever
// was collected so far.
func (c *Crawler) Run(ctx context.Context, startURL, searchName string) (*model.CrawlResult, error) {
	started := time.Now()

	c.queue = NewFrontier()
	c.store = NewLocationStore()
	c.mu.Lock()
	c.visited = make(map[string]struct{})
	c.failures = nil
	c.pagesVisited = 0
	c.enriched = 0
	c.mu.Unlock()

	targetURL, err := c.findTarget(ctx, startURL, searchName)
	if err != nil {
		return nil, err
	}
	c.logger.Info("resolved search target", "name", searchName, "url", targetURL)

	c.queue.Put(targetURL)
	c.discover(ctx)
	c.enrich(ctx)

	locations := c.store.Locations()

	c.mu.Lock()
	report := &model.CrawlReport{
		SearchName:    searchName,
		StartURL:      startURL,
		TargetURL:     targetURL,
		DateCrawled:   started,
		Duration:      time.Since(started),
		PagesVisited:  c.pagesVisited,
		LocationCount: len(locations),
		EnrichedCount: c.enriched,
		Failures:      c.failures,
	}
	c.mu.Unlock()

	return &model.CrawlResult{
		Collection: model.NewFeatureCollection(locations),
		Report:     report,
	}, nil
}

// findTarget fetches the start page and scans its navigation listing for an
// anchor matching the search name, ignoring case and encoding form.
func (c *Crawler) findTarget(ctx context.Context, startURL, searchName string) (string, error) {
	doc, err := c.fetcher.Fetch(ctx, startURL)
	if err != nil {
		return "", fmt.Errorf("fetch start page: %w", err)
	}

	parser, err := NewParser(startURL)
	if err != nil {
		return "", fmt.Errorf("invalid start URL: %w", err)
	}

	target, ok := parser.FindListingLink(doc, searchName)
	if !ok {
		return "", fmt.Errorf("%q not listed on %s: %w", searchName, startURL, ErrNotFound)
	}
	return target, nil
}

// discover runs the breadth-first traversal until the frontier drains or
// the context is cancelled, then stops all workers.
func (c *Crawler) discover(ctx context.Context) {
	var wg sync.WaitGroup
	for i := 0; i < c.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.worker(ctx)
		}()
	}

	drained := make(chan struct{})
	go func() {
		c.queue.Join()
		close(drained)
	}()

	select {
	case <-drained:
	case <-ctx.Done():
	}

	// Closing the queue is the shutdown signal: workers blocked in Get
	// return immediately, and in-flight fetches are abandoned through
	// context cancellation without retry.
	c.queue.Close()
	wg.Wait()
}

// worker is the loop of one discovery goroutine: dequeue, fetch, extract,
// feed back. Whether the page succeeds or fails, the URL is marked visited
// and the queue item acknowledged exactly once.
func (c *Crawler) worker(ctx context.Context) {
	for {
		pageURL, ok := c.queue.Get()
		if !ok {
			return
		}

		if ctx.Err() == nil {
			c.logger.Info("crawling", "url", pageURL)
			if err := c.crawlPage(ctx, pageURL); err != nil {
				c.logger.Warn("failed to crawl", "url", pageURL, "error", err)
				c.recordFailure(pageURL, model.PhaseDiscovery, err)
			}
		}

		c.markVisited(pageURL)
		c.queue.Done()
	}
}

// crawlPage fetches one page and runs both extraction scans: child links go
// back into the frontier, location records into the shared store.
func (c *Crawler) crawlPage(ctx context.Context, pageURL string) error {
	doc, err := c.fetcher.Fetch(ctx, pageURL)
	if err != nil {
		return err
	}

	parser, err := NewParser(pageURL)
	if err != nil {
		return err
	}

	result := parser.Parse(doc)
	for _, link := range result.Links {
		c.addURL(link)
	}
	for _, loc := range result.Locations {
		c.store.Add(loc)
	}
	return nil
}

// addURL enqueues a URL unless it has already completed crawling or is
// currently pending. The visited check and the enqueue share one critical
// section, and Put itself is atomic, so two workers discovering the same
// URL simultaneously enqueue it once.
func (c *Crawler) addURL(rawURL string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, seen := c.visited[rawURL]; seen {
		return
	}
	c.queue.Put(rawURL)
}

// markVisited records completion of a URL, success or failure.
func (c *Crawler) markVisited(pageURL string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.visited[pageURL] = struct{}{}
	c.pagesVisited++
}

// enrich fetches each location's own page and merges extra metadata into it.
// It runs strictly after discovery has drained, with fan-out bounded by the
// worker count. Individual failures are recorded and never abort the batch.
func (c *Crawler) enrich(ctx context.Context) {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(c.workers)

	for _, loc := range c.store.Locations() {
		loc := loc
		g.Go(func() error {
			if !c.isDetailPageURL(loc.URL) {
				return nil
			}
			if err := c.enrichLocation(ctx, loc); err != nil {
				c.logger.Warn("failed to enrich location", "url", loc.URL, "error", err)
				c.recordFailure(loc.URL, model.PhaseEnrichment, err)
			}
			// Errors are recorded, not returned: returning one would
			// cancel the remaining enrichment goroutines.
			return nil
		})
	}

	_ = g.Wait() //nolint:errcheck // goroutines never return errors
}

// enrichLocation fetches a location's detail page and merges its description
// into the location's metadata. A page without a description region leaves
// the location untouched.
func (c *Crawler) enrichLocation(ctx context.Context, loc *model.Location) error {
	doc, err := c.fetcher.Fetch(ctx, loc.URL)
	if err != nil {
		return err
	}

	parser, err := NewParser(loc.URL)
	if err != nil {
		return err
	}

	if desc, ok := parser.DescriptionText(doc); ok {
		loc.Merge(map[string]string{"description": desc})
		c.mu.Lock()
		c.enriched++
		c.mu.Unlock()
	}
	return nil
}

// isDetailPageURL reports whether a URL looks like a leaf detail page
// rather than a directory listing. Detail pages are the only ones worth an
// enrichment fetch.
func (c *Crawler) isDetailPageURL(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	return !strings.HasPrefix(u.Path, c.directoryPrefix)
}

// recordFailure appends a recovered per-item failure to the run diagnostics.
func (c *Crawler) recordFailure(itemURL, phase string, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.failures = append(c.failures, model.CrawlFailure{
		URL:   itemURL,
		Phase: phase,
		Error: err.Error(),
	})
}
