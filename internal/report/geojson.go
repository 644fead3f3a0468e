package report

import (
	"encoding/json"
	"io"

	"github.com/NoamNol/geoscraper/internal/model"
)

// GeoJSONWriter outputs the crawl's feature collection in GeoJSON format
// (RFC 7946). This is the primary output artifact, consumed by mapping
// tools and downstream pipelines.
//
// Design decision: We use standard encoding/json rather than a third-party
// JSON library because:
// 1. It's part of the standard library (no extra dependencies)
// 2. It's sufficient for our needs
// 3. It provides consistent behavior across Go versions
type GeoJSONWriter struct {
	baseWriter

	// indent enables pretty-printed output.
	// When false, output is compact (no extra whitespace), which is what
	// downstream GeoJSON tooling expects by default.
	indent bool

	// indentPrefix is the prefix for each line in indented output.
	indentPrefix string

	// indentString is the indentation string (typically "  " or "\t").
	indentString string
}

// GeoJSONWriterOption configures a GeoJSONWriter.
type GeoJSONWriterOption func(*GeoJSONWriter)

// WithIndent enables pretty-printed output.
// The prefix is prepended to each line, and indent is used for each level.
func WithIndent(prefix, indent string) GeoJSONWriterOption {
	return func(w *GeoJSONWriter) {
		w.indent = true
		w.indentPrefix = prefix
		w.indentString = indent
	}
}

// WithPrettyPrint enables pretty-printed output with default indentation.
// This is a convenience wrapper for WithIndent("", "  ").
func WithPrettyPrint() GeoJSONWriterOption {
	return func(w *GeoJSONWriter) {
		w.indent = true
		w.indentPrefix = ""
		w.indentString = "  "
	}
}

// NewGeoJSONWriter creates a GeoJSONWriter that outputs to the given writer.
func NewGeoJSONWriter(output io.Writer, opts ...GeoJSONWriterOption) *GeoJSONWriter {
	w := &GeoJSONWriter{
		baseWriter:   newBaseWriter(output),
		indent:       false,
		indentPrefix: "",
		indentString: "",
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the result's feature collection in GeoJSON format.
func (w *GeoJSONWriter) Write(result *model.CrawlResult) (int, error) {
	return w.writeJSON(result.Collection)
}

// WriteReport outputs the run summary as plain JSON. The summary is not
// GeoJSON; this method exists so the writer can serve diagnostics output
// through the same interface.
func (w *GeoJSONWriter) WriteReport(report *model.CrawlReport) (int, error) {
	return w.writeJSON(report)
}

// writeJSON marshals the given value to JSON and writes it to the output.
func (w *GeoJSONWriter) writeJSON(v interface{}) (int, error) {
	var data []byte
	var err error

	if w.indent {
		data, err = json.MarshalIndent(v, w.indentPrefix, w.indentString)
	} else {
		data, err = json.Marshal(v)
	}

	if err != nil {
		return 0, err
	}

	// Add trailing newline for better terminal output
	data = append(data, '\n')

	return w.output.Write(data)
}
