package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/nao1215/glyphcheck/internal/model"
)

// createTestReport creates a report with sample data for testing.
func createTestReport() *model.CheckReport {
	report := model.NewCheckReport("Sans-Regular.yaml")
	report.FamilyName = "Test Sans"
	report.MasterID = "m01"
	report.MasterName = "Regular"
	report.Relaxed = true
	report.LengthTargets = []float64{50, 60}

	report.AddGlyph("A", nil)
	report.AddGlyph("B", []model.Issue{
		model.NewIssue(model.CategorySmallSegment, "Small segment from (0, 0) to (5, 0) [bbox 5×0]"),
		model.NewIssue(model.CategoryOpenPath, "Open path in glyph"),
	})
	report.AddGlyph("space", nil)

	report.WidthGroups = map[int][]string{
		500: {"A", "B"},
		0:   {"space"},
	}
	report.HeightGroups = map[int][]string{
		700: {"A", "B"},
		0:   {"space"},
	}
	return report
}

func createTestComparison() *model.Comparison {
	previous := createTestReport()
	previous.DateChecked = time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)

	current := model.NewCheckReport("Sans-Regular.yaml")
	current.DateChecked = time.Date(2026, 1, 2, 10, 0, 0, 0, time.UTC)
	current.AddGlyph("A", []model.Issue{
		model.NewIssue(model.CategoryCollinear, "Extra node at (52, 0)"),
	})
	current.AddGlyph("B", []model.Issue{
		model.NewIssue(model.CategoryOpenPath, "Open path in glyph"),
	})
	return model.Compare(previous, current)
}

func TestSimpleWriter(t *testing.T) {
	t.Parallel()

	t.Run("writes report header", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewSimpleWriter(&buf).Write(createTestReport()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		for _, want := range []string{
			"GLYPHCHECK REPORT",
			"Source:  Sans-Regular.yaml",
			"Family:  Test Sans",
			"Master:  Regular (m01)",
			"Mode:    relaxed",
			"Status:  Complete",
		} {
			if !strings.Contains(output, want) {
				t.Errorf("expected output to contain %q", want)
			}
		}
	})

	t.Run("writes category summary", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewSimpleWriter(&buf).Write(createTestReport()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		for _, want := range []string{
			"SUMMARY OF ISSUES",
			"  Small segments (<=10 units): 1\n",
			"  Near specific length segments (~50/60±3): 0\n",
			"  Very close nodes (<9 units apart): 0\n",
			"  Collinear extra points: 0\n",
			"  Open paths: 1\n",
			"  Isolated points or anchors: 0\n",
			"TOTAL: 2 issues in 1 of 3 glyphs",
		} {
			if !strings.Contains(output, want) {
				t.Errorf("expected output to contain %q", want)
			}
		}
	})

	t.Run("writes per-glyph entries in order", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewSimpleWriter(&buf).Write(createTestReport()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		want := "A: OK\nB:\n  - Small segment from (0, 0) to (5, 0) [bbox 5×0]\n  - Open path in glyph\nspace: OK\n"
		if !strings.Contains(buf.String(), want) {
			t.Errorf("expected glyph section %q, got:\n%s", want, buf.String())
		}
	})

	t.Run("writes size groups ascending", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewSimpleWriter(&buf).Write(createTestReport()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		if !strings.Contains(output, "OUTLINE WIDTH GROUPS (width: glyphs)") {
			t.Error("expected width groups section")
		}
		if !strings.Contains(output, "  0: space\n  500: A, B\n") {
			t.Error("expected width groups sorted ascending with comma-joined names")
		}
		if !strings.Contains(output, "  0: space\n  700: A, B\n") {
			t.Error("expected height groups sorted ascending with comma-joined names")
		}
	})

	t.Run("issues only hides clean glyphs", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewSimpleWriter(&buf, WithIssuesOnly(true))
		if _, err := w.Write(createTestReport()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		if strings.Contains(output, "A: OK") {
			t.Error("expected clean glyph to be hidden")
		}
		if !strings.Contains(output, "B:\n") {
			t.Error("expected glyph with issues to be listed")
		}
	})

	t.Run("verbose mode includes recommendations", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewSimpleWriter(&buf, WithVerbose(true))
		if _, err := w.Write(createTestReport()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		info := model.GetCategoryInfo(model.CategoryOpenPath)
		if !strings.Contains(buf.String(), "Fix: "+info.Recommendation) {
			t.Error("expected recommendation in verbose output")
		}
	})

	t.Run("strict mode and default length label", func(t *testing.T) {
		t.Parallel()

		report := model.NewCheckReport("x.ttf")
		var buf bytes.Buffer
		if _, err := NewSimpleWriter(&buf).Write(report); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		if !strings.Contains(output, "Mode:    strict") {
			t.Error("expected strict mode")
		}
		if !strings.Contains(output, "Near specific length segments (±3): 0") {
			t.Error("expected generic length label without targets")
		}
		if strings.Contains(output, "GLYPHS\n") {
			t.Error("expected no glyph section for an empty report")
		}
	})

	t.Run("shows error and cancellation status", func(t *testing.T) {
		t.Parallel()

		report := model.NewCheckReport("broken.ttf")
		report.ErrorMessage = "no font loaded"
		var buf bytes.Buffer
		if _, err := NewSimpleWriter(&buf).Write(report); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(buf.String(), "Status:  ERROR - no font loaded") {
			t.Error("expected error status")
		}

		report.Cancelled = true
		buf.Reset()
		if _, err := NewSimpleWriter(&buf).Write(report); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(buf.String(), "CANCELLED") {
			t.Error("expected cancelled status")
		}
	})
}

func TestSimpleWriterComparison(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if _, err := NewSimpleWriter(&buf).WriteComparison(createTestComparison()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	output := buf.String()
	for _, want := range []string{
		"Check Comparison: Sans-Regular.yaml",
		"Trend: UNCHANGED",
		"Previous run: 2026-01-01 10:00:00",
		"[+] A: Extra node at (52, 0)",
		"[-] B: Small segment from (0, 0) to (5, 0) [bbox 5×0]",
		"Unchanged: 1 issues",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("expected output to contain %q, got:\n%s", want, output)
		}
	}
}

func TestJSONWriter(t *testing.T) {
	t.Parallel()

	t.Run("outputs valid JSON with named categories", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewJSONWriter(&buf).Write(createTestReport()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var decoded model.CheckReport
		if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
			t.Fatalf("output is not valid JSON: %v", err)
		}
		if decoded.Source != "Sans-Regular.yaml" {
			t.Errorf("expected source to round-trip, got %q", decoded.Source)
		}
		if decoded.Counts[model.CategoryOpenPath] != 1 {
			t.Errorf("expected open_path count 1, got %d", decoded.Counts[model.CategoryOpenPath])
		}
		if !strings.Contains(buf.String(), `"small_segment":1`) {
			t.Error("expected category keys to be written by name")
		}
	})

	t.Run("compact output by default", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewJSONWriter(&buf).Write(createTestReport()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if strings.Count(buf.String(), "\n") != 1 {
			t.Error("expected compact JSON on a single line")
		}
	})

	t.Run("pretty print with indent", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewJSONWriter(&buf, WithPrettyPrint()).Write(createTestReport()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(buf.String(), "\n  \"source\"") {
			t.Error("expected indented JSON output")
		}
	})

	t.Run("writes comparison", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewJSONWriter(&buf).WriteComparison(createTestComparison()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var decoded model.Comparison
		if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
			t.Fatalf("output is not valid JSON: %v", err)
		}
		if len(decoded.NewIssues) != 1 || len(decoded.ResolvedIssues) != 1 {
			t.Errorf("expected 1 new and 1 resolved issue, got %d and %d",
				len(decoded.NewIssues), len(decoded.ResolvedIssues))
		}
		if decoded.Deltas[model.CategoryCollinear] != 1 {
			t.Errorf("expected collinear delta +1, got %d", decoded.Deltas[model.CategoryCollinear])
		}
	})
}

func TestFullJSONWriter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	w := NewFullJSONWriter(&buf, "1.2.3", WithPrettyPrint())
	if _, err := w.Write(createTestReport()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var decoded struct {
		Version string             `json:"version"`
		Report  *model.CheckReport `json:"report"`
		Summary JSONSummary        `json:"summary"`
	}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded.Version != "1.2.3" {
		t.Errorf("expected version 1.2.3, got %q", decoded.Version)
	}
	want := JSONSummary{Glyphs: 3, GlyphsWithIssues: 1, TotalIssues: 2}
	if decoded.Summary != want {
		t.Errorf("expected summary %+v, got %+v", want, decoded.Summary)
	}
	if decoded.Report == nil || len(decoded.Report.Glyphs) != 3 {
		t.Error("expected wrapped report with 3 glyphs")
	}
}

func TestFullJSONWriterWriteAll(t *testing.T) {
	t.Parallel()

	first := createTestReport()
	second := model.NewCheckReport("/fonts/Other.yaml")
	second.AddGlyph("space", nil)

	var buf bytes.Buffer
	w := NewFullJSONWriter(&buf, "1.2.3", WithPrettyPrint())
	if _, err := w.WriteAll([]*model.CheckReport{first, second}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var decoded []JSONReport
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not one JSON array: %v", err)
	}
	if len(decoded) != 2 {
		t.Fatalf("expected 2 reports, got %d", len(decoded))
	}
	if decoded[0].Report.Source != first.Source || decoded[1].Report.Source != second.Source {
		t.Errorf("unexpected order: %s, %s", decoded[0].Report.Source, decoded[1].Report.Source)
	}
	if decoded[1].Summary.Glyphs != 1 || decoded[1].Summary.TotalIssues != 0 {
		t.Errorf("unexpected summary %+v", decoded[1].Summary)
	}

	t.Run("multi writer", func(t *testing.T) {
		t.Parallel()

		var js, text bytes.Buffer
		m := NewMultiWriter(NewFullJSONWriter(&js, "1.2.3"), NewSimpleWriter(&text))
		if _, err := m.WriteAll([]*model.CheckReport{first, second}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		var arr []JSONReport
		if err := json.Unmarshal(js.Bytes(), &arr); err != nil || len(arr) != 2 {
			t.Errorf("expected a JSON array of 2, got %v (%v)", len(arr), err)
		}
		if strings.Count(text.String(), "GLYPHCHECK REPORT") != 2 {
			t.Error("expected two text reports")
		}
	})
}

func TestMarkdownWriter(t *testing.T) {
	t.Parallel()

	t.Run("writes header and summary", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewMarkdownWriter(&buf).Write(createTestReport()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		for _, want := range []string{
			"# Glyphcheck Report",
			"Sans-Regular.yaml",
			"## Summary of Issues",
			"### Small Segment",
			"## Outline Width Groups",
			"## Outline Height Groups",
		} {
			if !strings.Contains(output, want) {
				t.Errorf("expected output to contain %q", want)
			}
		}
	})

	t.Run("includes pie chart and caution for open paths", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewMarkdownWriter(&buf).Write(createTestReport()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		if !strings.Contains(output, "pie") {
			t.Error("expected output to contain mermaid pie chart")
		}
		if !strings.Contains(output, "Open Path") {
			t.Error("expected title-cased category in chart and headings")
		}
		if !strings.Contains(output, "[!CAUTION]") {
			t.Error("expected caution alert for open paths")
		}
	})

	t.Run("clean report gets a tip", func(t *testing.T) {
		t.Parallel()

		report := model.NewCheckReport("clean.yaml")
		report.AddGlyph("A", nil)

		var buf bytes.Buffer
		if _, err := NewMarkdownWriter(&buf).Write(report); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		if !strings.Contains(output, "[!TIP]") {
			t.Error("expected tip alert for a clean report")
		}
		if !strings.Contains(output, "No issues detected.") {
			t.Error("expected no-issues text")
		}
		if strings.Contains(output, "pie") {
			t.Error("expected no pie chart for a clean report")
		}
	})

	t.Run("writes comparison", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewMarkdownWriter(&buf).WriteComparison(createTestComparison()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		for _, want := range []string{
			"# Check Comparison: Sans-Regular.yaml",
			"## New Issues (1)",
			"## Resolved Issues (1)",
			"**A** [Collinear] Extra node at (52, 0)",
			"*1 issues unchanged*",
		} {
			if !strings.Contains(output, want) {
				t.Errorf("expected output to contain %q", want)
			}
		}
	})
}

func TestMultiWriter(t *testing.T) {
	t.Parallel()

	var text, js bytes.Buffer
	m := NewMultiWriter(NewSimpleWriter(&text), NewJSONWriter(&js))

	n, err := m.Write(createTestReport())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != text.Len()+js.Len() {
		t.Errorf("expected %d bytes, got %d", text.Len()+js.Len(), n)
	}
	if !strings.Contains(text.String(), "GLYPHCHECK REPORT") {
		t.Error("expected text output")
	}
	if !json.Valid(js.Bytes()) {
		t.Error("expected valid JSON output")
	}

	text.Reset()
	js.Reset()
	if _, err := m.WriteComparison(createTestComparison()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text.Len() == 0 || js.Len() == 0 {
		t.Error("expected comparison in both outputs")
	}
}

func TestFormatDelta(t *testing.T) {
	t.Parallel()

	tests := []struct {
		delta int
		want  string
	}{
		{3, "+3"},
		{0, "0"},
		{-2, "-2"},
	}
	for _, tt := range tests {
		if got := FormatDelta(tt.delta); got != tt.want {
			t.Errorf("FormatDelta(%d) = %q, want %q", tt.delta, got, tt.want)
		}
	}
}
