package report

import (
	"encoding/json"
	"io"

	"github.com/nao1215/glyphcheck/internal/model"
)

// JSONWriter outputs reports in JSON format.
// This format is designed for tool integration and programmatic processing.
//
// Category keys are written by name (small_segment, close_nodes, ...)
// through model.Category's text marshaling, never as bare integers.
type JSONWriter struct {
	baseWriter

	// indent enables pretty-printed JSON output.
	indent bool

	indentPrefix string
	indentString string
}

// JSONWriterOption configures a JSONWriter.
type JSONWriterOption func(*JSONWriter)

// WithIndent enables pretty-printed JSON output.
// The prefix is prepended to each line, and indent is used for each level.
func WithIndent(prefix, indent string) JSONWriterOption {
	return func(w *JSONWriter) {
		w.indent = true
		w.indentPrefix = prefix
		w.indentString = indent
	}
}

// WithPrettyPrint enables pretty-printed JSON with two-space indentation.
func WithPrettyPrint() JSONWriterOption {
	return WithIndent("", "  ")
}

// NewJSONWriter creates a JSONWriter that outputs to the given writer.
func NewJSONWriter(output io.Writer, opts ...JSONWriterOption) *JSONWriter {
	w := &JSONWriter{
		baseWriter: newBaseWriter(output),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Write outputs the report in JSON format.
func (w *JSONWriter) Write(report *model.CheckReport) (int, error) {
	return w.writeJSON(report)
}

// WriteComparison outputs the comparison in JSON format.
func (w *JSONWriter) WriteComparison(comparison *model.Comparison) (int, error) {
	return w.writeJSON(comparison)
}

// writeJSON marshals the given value to JSON and writes it to the output.
func (w *JSONWriter) writeJSON(v any) (int, error) {
	var (
		data []byte
		err  error
	)
	if w.indent {
		data, err = json.MarshalIndent(v, w.indentPrefix, w.indentString)
	} else {
		data, err = json.Marshal(v)
	}
	if err != nil {
		return 0, err
	}

	data = append(data, '\n')
	return w.output.Write(data)
}

// JSONReport wraps a report with the tool version and a flat summary.
//
// Design decision: We wrap the report rather than adding fields to
// CheckReport, which is also the payload stored in the history database.
type JSONReport struct {
	// Version is the glyphcheck version that generated this report.
	Version string `json:"version"`

	// Report is the full check report.
	Report *model.CheckReport `json:"report"`

	// Summary gives totals without walking the glyph list.
	Summary JSONSummary `json:"summary"`
}

// JSONSummary holds the totals of a report.
type JSONSummary struct {
	Glyphs           int `json:"glyphs"`
	GlyphsWithIssues int `json:"glyphs_with_issues"`
	TotalIssues      int `json:"total_issues"`
}

// NewJSONReport creates a JSONReport wrapper with version information.
func NewJSONReport(report *model.CheckReport, version string) *JSONReport {
	return &JSONReport{
		Version: version,
		Report:  report,
		Summary: JSONSummary{
			Glyphs:           len(report.Glyphs),
			GlyphsWithIssues: report.GlyphsWithIssues(),
			TotalIssues:      report.TotalIssues(),
		},
	}
}

// FullJSONWriter outputs complete reports with metadata wrapper.
type FullJSONWriter struct {
	*JSONWriter

	version string
}

// NewFullJSONWriter creates a writer for complete reports with metadata.
func NewFullJSONWriter(output io.Writer, version string, opts ...JSONWriterOption) *FullJSONWriter {
	return &FullJSONWriter{
		JSONWriter: NewJSONWriter(output, opts...),
		version:    version,
	}
}

// Write outputs the full report wrapped with metadata.
func (w *FullJSONWriter) Write(report *model.CheckReport) (int, error) {
	return w.writeJSON(NewJSONReport(report, w.version))
}

// WriteAll outputs several reports as one JSON array of wrapped reports,
// in the given order.
func (w *FullJSONWriter) WriteAll(reports []*model.CheckReport) (int, error) {
	wrapped := make([]*JSONReport, 0, len(reports))
	for _, r := range reports {
		wrapped = append(wrapped, NewJSONReport(r, w.version))
	}
	return w.writeJSON(wrapped)
}
