package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/NoamNol/geoscraper/internal/model"
)

// SimpleWriter outputs human-readable text summaries.
// This format is designed for terminal display after a crawl finishes.
//
// Design decision: We use plain text with ASCII formatting rather than
// ANSI colors by default because:
// 1. It works in all terminals without compatibility issues
// 2. It's easier to pipe to files or other tools
// 3. Color can be added as an option later if needed
type SimpleWriter struct {
	baseWriter

	// showEmpty controls whether sections with no entries are shown.
	showEmpty bool

	// verbose enables the per-location listing in the output.
	verbose bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithShowEmpty configures the writer to show empty sections.
func WithShowEmpty(show bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.showEmpty = show
	}
}

// WithVerbose enables verbose output listing every discovered location.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.verbose = verbose
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
		showEmpty:  false,
		verbose:    false,
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the full crawl result in human-readable format.
func (w *SimpleWriter) Write(result *model.CrawlResult) (int, error) {
	var sb strings.Builder

	w.writeHeader(&sb, result.Report)
	w.writeCounts(&sb, result.Report)
	if w.verbose {
		w.writeLocations(&sb, result.Collection)
	}
	w.writeFailures(&sb, result.Report)

	return w.output.Write([]byte(sb.String()))
}

// WriteReport outputs only the run summary in human-readable format.
func (w *SimpleWriter) WriteReport(report *model.CrawlReport) (int, error) {
	var sb strings.Builder

	w.writeHeader(&sb, report)
	w.writeCounts(&sb, report)
	w.writeFailures(&sb, report)

	return w.output.Write([]byte(sb.String()))
}

// writeHeader writes the summary header with crawl information.
func (w *SimpleWriter) writeHeader(sb *strings.Builder, report *model.CrawlReport) {
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	sb.WriteString("                         CRAWL SUMMARY\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n\n")

	sb.WriteString(fmt.Sprintf("Search Name: %s\n", report.SearchName))
	sb.WriteString(fmt.Sprintf("Target URL:  %s\n", report.TargetURL))
	sb.WriteString(fmt.Sprintf("Crawl Date:  %s\n", report.DateCrawled.Format("2006-01-02 15:04:05 MST")))
	sb.WriteString(fmt.Sprintf("Duration:    %.2fs\n", report.Duration.Seconds()))

	if report.FailureCount() > 0 {
		sb.WriteString(fmt.Sprintf("Status:      Complete with %d failed page(s)\n", report.FailureCount()))
	} else {
		sb.WriteString("Status:      Complete\n")
	}

	sb.WriteString("\n")
}

// writeCounts writes the result counters section.
func (w *SimpleWriter) writeCounts(sb *strings.Builder, report *model.CrawlReport) {
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString("RESULTS\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")

	sb.WriteString(fmt.Sprintf("  Pages visited: %d\n", report.PagesVisited))
	sb.WriteString(fmt.Sprintf("  Locations:     %d\n", report.LocationCount))
	sb.WriteString(fmt.Sprintf("  Enriched:      %d\n", report.EnrichedCount))
	sb.WriteString("\n")
}

// writeLocations writes the per-location listing.
func (w *SimpleWriter) writeLocations(sb *strings.Builder, collection *model.FeatureCollection) {
	if collection == nil || (len(collection.Features) == 0 && !w.showEmpty) {
		return
	}

	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString("LOCATIONS\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")

	if len(collection.Features) == 0 {
		sb.WriteString("  No locations found\n")
	} else {
		for _, f := range collection.Features {
			name := f.Properties["name"]
			if name == "" {
				name = "(unnamed)"
			}
			if len(f.Geometry.Coordinates) == 2 {
				sb.WriteString(fmt.Sprintf("  [+] %s (%v, %v)\n",
					name, f.Geometry.Coordinates[0], f.Geometry.Coordinates[1]))
			} else {
				sb.WriteString(fmt.Sprintf("  [+] %s\n", name))
			}
		}
	}
	sb.WriteString("\n")
}

// writeFailures writes the per-page failure section.
func (w *SimpleWriter) writeFailures(sb *strings.Builder, report *model.CrawlReport) {
	if report.FailureCount() == 0 && !w.showEmpty {
		return
	}

	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString("FAILED PAGES\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")

	if report.FailureCount() == 0 {
		sb.WriteString("  No failures\n")
	} else {
		for _, f := range report.Failures {
			sb.WriteString(fmt.Sprintf("  [%s] %s\n", f.Phase, f.URL))
			if w.verbose && f.Error != "" {
				sb.WriteString(fmt.Sprintf("      %s\n", f.Error))
			}
		}
	}
	sb.WriteString("\n")
}
