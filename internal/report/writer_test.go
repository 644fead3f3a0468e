package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/NoamNol/geoscraper/internal/model"
)

// createTestResult creates a crawl result with sample data for testing.
func createTestResult() *model.CrawlResult {
	alpha := model.NewLocation("https://example.org/1/Alpha", "Alpha", model.GeoPoint{Lon: -170.649948, Lat: -14.260057})
	alpha.Merge(map[string]string{"description": "First place."})
	beta := model.NewLocation("https://example.org/2/Beta", "Beta", model.GeoPoint{Lon: 34.8, Lat: 31.25})

	return &model.CrawlResult{
		Collection: model.NewFeatureCollection([]*model.Location{alpha, beta}),
		Report: &model.CrawlReport{
			SearchName:    "Testland",
			StartURL:      "https://example.org/country/",
			TargetURL:     "https://example.org/country/testland",
			DateCrawled:   time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC),
			Duration:      1800 * time.Millisecond,
			PagesVisited:  3,
			LocationCount: 2,
			EnrichedCount: 1,
			Failures: []model.CrawlFailure{
				{URL: "https://example.org/country/testland/broken", Phase: model.PhaseDiscovery, Error: "fetch failed"},
			},
		},
	}
}

// TestGeoJSONWriter tests the GeoJSON output writer.
func TestGeoJSONWriter(t *testing.T) {
	t.Parallel()

	t.Run("writes a valid feature collection", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewGeoJSONWriter(&buf)

		n, err := w.Write(createTestResult())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if n != buf.Len() {
			t.Errorf("expected %d bytes reported, got %d", buf.Len(), n)
		}

		var fc model.FeatureCollection
		if err := json.Unmarshal(buf.Bytes(), &fc); err != nil {
			t.Fatalf("output is not valid JSON: %v", err)
		}
		if fc.Type != "FeatureCollection" {
			t.Errorf("expected FeatureCollection type, got %q", fc.Type)
		}
		if len(fc.Features) != 2 {
			t.Errorf("expected 2 features, got %d", len(fc.Features))
		}
	})

	t.Run("compact by default", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewGeoJSONWriter(&buf)

		if _, err := w.Write(createTestResult()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := strings.TrimSuffix(buf.String(), "\n")
		if strings.Contains(output, "\n") {
			t.Error("expected single-line output by default")
		}
	})

	t.Run("pretty print indents", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewGeoJSONWriter(&buf, WithPrettyPrint())

		if _, err := w.Write(createTestResult()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(buf.String(), "\n  ") {
			t.Error("expected indented output with pretty print")
		}
	})

	t.Run("ends with a newline", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewGeoJSONWriter(&buf)

		if _, err := w.Write(createTestResult()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.HasSuffix(buf.String(), "\n") {
			t.Error("expected trailing newline")
		}
	})

	t.Run("writes the run summary as JSON", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewGeoJSONWriter(&buf)

		if _, err := w.WriteReport(createTestResult().Report); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var report model.CrawlReport
		if err := json.Unmarshal(buf.Bytes(), &report); err != nil {
			t.Fatalf("summary is not valid JSON: %v", err)
		}
		if report.SearchName != "Testland" {
			t.Errorf("expected search name in summary, got %q", report.SearchName)
		}
	})
}

// TestSimpleWriter tests the human-readable summary writer.
func TestSimpleWriter(t *testing.T) {
	t.Parallel()

	t.Run("writes summary header", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewSimpleWriter(&buf)

		if _, err := w.Write(createTestResult()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		if !strings.Contains(output, "CRAWL SUMMARY") {
			t.Error("expected output to contain header")
		}
		if !strings.Contains(output, "Testland") {
			t.Error("expected output to contain search name")
		}
	})

	t.Run("writes result counters", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewSimpleWriter(&buf)

		if _, err := w.Write(createTestResult()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		if !strings.Contains(output, "Locations:     2") {
			t.Errorf("expected location count in output: %s", output)
		}
		if !strings.Contains(output, "Enriched:      1") {
			t.Errorf("expected enriched count in output: %s", output)
		}
	})

	t.Run("writes failed pages", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewSimpleWriter(&buf)

		if _, err := w.Write(createTestResult()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		if !strings.Contains(output, "FAILED PAGES") {
			t.Error("expected failure section")
		}
		if !strings.Contains(output, "/country/testland/broken") {
			t.Error("expected failing URL in output")
		}
	})

	t.Run("verbose lists locations", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewSimpleWriter(&buf, WithVerbose(true))

		if _, err := w.Write(createTestResult()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		if !strings.Contains(output, "Alpha") || !strings.Contains(output, "Beta") {
			t.Errorf("expected location names in verbose output: %s", output)
		}
	})

	t.Run("quiet output omits location listing", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewSimpleWriter(&buf)

		if _, err := w.Write(createTestResult()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if strings.Contains(buf.String(), "LOCATIONS") {
			t.Error("expected no location section without verbose")
		}
	})
}

// TestMarkdownWriter tests the Markdown summary writer.
func TestMarkdownWriter(t *testing.T) {
	t.Parallel()

	t.Run("writes header and tables", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewMarkdownWriter(&buf)

		if _, err := w.Write(createTestResult()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		if !strings.Contains(output, "# Crawl Summary") {
			t.Error("expected H1 header")
		}
		if !strings.Contains(output, "Testland") {
			t.Error("expected search name")
		}
		if !strings.Contains(output, "## Locations") {
			t.Error("expected locations section")
		}
		if !strings.Contains(output, "Alpha") {
			t.Error("expected location name in table")
		}
	})

	t.Run("writes failure table when failures exist", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewMarkdownWriter(&buf)

		if _, err := w.Write(createTestResult()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		if !strings.Contains(output, "## Failed Pages") {
			t.Error("expected failed pages section")
		}
		if !strings.Contains(output, "discovery") {
			t.Error("expected failure phase in table")
		}
	})

	t.Run("omits failure table on a clean run", func(t *testing.T) {
		t.Parallel()

		result := createTestResult()
		result.Report.Failures = nil

		var buf bytes.Buffer
		w := NewMarkdownWriter(&buf)

		if _, err := w.Write(result); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if strings.Contains(buf.String(), "## Failed Pages") {
			t.Error("expected no failure section on a clean run")
		}
	})

	t.Run("summary-only output has no locations table", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewMarkdownWriter(&buf)

		if _, err := w.WriteReport(createTestResult().Report); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if strings.Contains(buf.String(), "## Locations") {
			t.Error("expected no locations section in summary-only output")
		}
	})
}

// TestMultiWriter tests fan-out to multiple writers.
func TestMultiWriter(t *testing.T) {
	t.Parallel()

	var jsonBuf, textBuf bytes.Buffer
	mw := NewMultiWriter(
		NewGeoJSONWriter(&jsonBuf),
		NewSimpleWriter(&textBuf),
	)

	n, err := mw.Write(createTestResult())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != jsonBuf.Len()+textBuf.Len() {
		t.Errorf("expected total bytes across writers, got %d", n)
	}
	if jsonBuf.Len() == 0 || textBuf.Len() == 0 {
		t.Error("expected both writers to receive output")
	}
}
