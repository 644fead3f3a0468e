package report

import (
	"io"
	"strconv"
	"time"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"

	"github.com/NoamNol/geoscraper/internal/model"
)

// maxLocationRows caps the per-location table in the Markdown summary.
// Large regions can yield thousands of locations; the full data lives in
// the GeoJSON file, the summary only needs a sample.
const maxLocationRows = 100

// MarkdownWriter outputs crawl summaries in Markdown format.
// This format is designed for documentation and sharing.
//
// Design decision: We use the nao1215/markdown library for fluent markdown
// generation which provides:
// 1. Type-safe markdown generation
// 2. Support for tables, lists, and code blocks
// 3. GitHub-flavored markdown alerts
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the full crawl result in Markdown format, including a table
// of discovered locations.
func (w *MarkdownWriter) Write(result *model.CrawlResult) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, result.Report)
	w.writeCounts(md, result.Report)
	w.writeLocations(md, result.Collection)
	w.writeFailures(md, result.Report)
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// WriteReport outputs only the run summary in Markdown format.
func (w *MarkdownWriter) WriteReport(report *model.CrawlReport) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, report)
	w.writeCounts(md, report)
	w.writeFailures(md, report)
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// writeHeader writes the summary header with crawl information.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, report *model.CrawlReport) {
	md.H1("Crawl Summary")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Search Name", report.SearchName},
			{"Start URL", "`" + report.StartURL + "`"},
			{"Target URL", "`" + report.TargetURL + "`"},
			{"Crawl Date", report.DateCrawled.Format("2006-01-02 15:04:05 MST")},
			{"Duration", report.Duration.Round(10 * time.Millisecond).String()},
			{"Status", w.getStatusText(report)},
		},
	})
	md.PlainText("")
}

// getStatusText returns the status text based on report state.
func (w *MarkdownWriter) getStatusText(report *model.CrawlReport) string {
	if report.FailureCount() > 0 {
		return "⚠️ Complete with " + strconv.Itoa(report.FailureCount()) + " failed page(s)"
	}
	return "✅ Complete"
}

// writeCounts writes the result counters section.
func (w *MarkdownWriter) writeCounts(md *markdown.Markdown, report *model.CrawlReport) {
	md.H2("Results")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Metric", "Count"},
		Rows: [][]string{
			{"Pages visited", strconv.Itoa(report.PagesVisited)},
			{"Locations", strconv.Itoa(report.LocationCount)},
			{"Enriched", strconv.Itoa(report.EnrichedCount)},
			{"Failed pages", strconv.Itoa(report.FailureCount())},
		},
	})
	md.PlainText("")

	if report.LocationCount > 0 {
		w.writePieChart(md, report)
	}

	w.writeAlert(md, report)
}

// writePieChart writes a mermaid pie chart of enriched vs. plain locations.
func (w *MarkdownWriter) writePieChart(md *markdown.Markdown, report *model.CrawlReport) {
	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Location Enrichment"),
		piechart.WithShowData(true),
	)

	if report.EnrichedCount > 0 {
		chart.LabelAndIntValue("Enriched", uint64(report.EnrichedCount))
	}
	if plain := report.LocationCount - report.EnrichedCount; plain > 0 {
		chart.LabelAndIntValue("Without description", uint64(plain))
	}

	md.PlainText("")
	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

// writeAlert writes an appropriate alert based on the crawl outcome.
func (w *MarkdownWriter) writeAlert(md *markdown.Markdown, report *model.CrawlReport) {
	switch {
	case report.FailureCount() > 0:
		md.Warningf(
			"%d page(s) could not be crawled or enriched. The output contains everything collected from the remaining pages.",
			report.FailureCount(),
		)
	case report.LocationCount == 0:
		md.Note("The crawl completed but found no locations under the searched region.")
	default:
		md.Tip("The crawl completed without errors.")
	}
	md.PlainText("")
}

// writeLocations writes the discovered locations table.
func (w *MarkdownWriter) writeLocations(md *markdown.Markdown, collection *model.FeatureCollection) {
	md.H2("Locations")
	md.PlainText("")

	if collection == nil || len(collection.Features) == 0 {
		md.PlainText("No locations found.")
		md.PlainText("")
		return
	}

	features := collection.Features
	truncated := false
	if len(features) > maxLocationRows {
		features = features[:maxLocationRows]
		truncated = true
	}

	rows := make([][]string, len(features))
	for i, f := range features {
		name := f.Properties["name"]
		if name == "" {
			name = "-"
		}
		lon, lat := "-", "-"
		if len(f.Geometry.Coordinates) == 2 {
			lon = strconv.FormatFloat(f.Geometry.Coordinates[0], 'f', -1, 64)
			lat = strconv.FormatFloat(f.Geometry.Coordinates[1], 'f', -1, 64)
		}
		rows[i] = []string{name, lon, lat}
	}

	md.Table(markdown.TableSet{
		Header: []string{"Name", "Longitude", "Latitude"},
		Rows:   rows,
	})
	md.PlainText("")

	if truncated {
		md.PlainTextf("Showing the first %d of %d locations. The full set is in the GeoJSON output.",
			maxLocationRows, len(collection.Features))
		md.PlainText("")
	}
}

// writeFailures writes the per-page failure table.
func (w *MarkdownWriter) writeFailures(md *markdown.Markdown, report *model.CrawlReport) {
	if report.FailureCount() == 0 {
		return
	}

	md.H2("Failed Pages")
	md.PlainText("")

	rows := make([][]string, len(report.Failures))
	for i, f := range report.Failures {
		rows[i] = []string{f.Phase, "`" + f.URL + "`", truncateString(f.Error, 80)}
	}

	md.Table(markdown.TableSet{
		Header: []string{"Phase", "URL", "Error"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeFooter writes the summary footer.
func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainTextf("*Generated by [geoscraper](https://github.com/NoamNol/geoscraper)*")
}

// truncateString truncates a string to maxLen characters with ellipsis.
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
