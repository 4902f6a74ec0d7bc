package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/nao1215/glyphcheck/internal/check"
	"github.com/nao1215/glyphcheck/internal/model"
)

// ruleWidth is the width of the section rules in text output.
const ruleWidth = 70

// SimpleWriter outputs human-readable text reports.
// The body follows the layout font designers already know from the
// outline-check macro: a summary of the six category counts, one entry per
// glyph (either "name: OK" or a bullet list of issues), then the width and
// height groups sorted by size.
type SimpleWriter struct {
	baseWriter

	// issuesOnly hides glyphs without issues from the per-glyph section.
	issuesOnly bool

	// verbose adds the category description and recommendation to the summary.
	verbose bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithIssuesOnly hides clean glyphs from the per-glyph section.
func WithIssuesOnly(issuesOnly bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.issuesOnly = issuesOnly
	}
}

// WithVerbose enables verbose output with additional details.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.verbose = verbose
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Write outputs the report in human-readable format.
func (w *SimpleWriter) Write(report *model.CheckReport) (int, error) {
	var sb strings.Builder

	w.writeHeader(&sb, report)
	w.writeSummary(&sb, report)
	w.writeGlyphs(&sb, report)
	w.writeGroups(&sb, "OUTLINE WIDTH GROUPS (width: glyphs)", report.WidthGroups)
	w.writeGroups(&sb, "OUTLINE HEIGHT GROUPS (height: glyphs)", report.HeightGroups)
	w.writeFooter(&sb)

	return io.WriteString(w.output, sb.String())
}

// writeHeader writes the report header with run information.
func (w *SimpleWriter) writeHeader(sb *strings.Builder, report *model.CheckReport) {
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", ruleWidth))
	sb.WriteString("\n")
	sb.WriteString("                        GLYPHCHECK REPORT\n")
	sb.WriteString(strings.Repeat("=", ruleWidth))
	sb.WriteString("\n\n")

	fmt.Fprintf(sb, "Source:  %s\n", report.Source)
	if report.FamilyName != "" {
		fmt.Fprintf(sb, "Family:  %s\n", report.FamilyName)
	}
	if master := masterLabel(report); master != "" {
		fmt.Fprintf(sb, "Master:  %s\n", master)
	}
	fmt.Fprintf(sb, "Checked: %s\n", report.DateChecked.Format("2006-01-02 15:04:05 MST"))
	fmt.Fprintf(sb, "Mode:    %s\n", modeText(report))
	fmt.Fprintf(sb, "Status:  %s\n", statusText(report))
	sb.WriteString("\n")
}

// writeSummary writes the per-category counts.
func (w *SimpleWriter) writeSummary(sb *strings.Builder, report *model.CheckReport) {
	writeSection(sb, "SUMMARY OF ISSUES")

	for _, c := range model.Categories() {
		fmt.Fprintf(sb, "  %s: %d\n", categoryLabel(c, report.LengthTargets), report.Count(c))
		if w.verbose {
			info := model.GetCategoryInfo(c)
			fmt.Fprintf(sb, "      %s\n", info.Description)
			fmt.Fprintf(sb, "      Fix: %s\n", info.Recommendation)
		}
	}
	sb.WriteString("\n")
	fmt.Fprintf(sb, "  TOTAL: %d issues in %d of %d glyphs\n\n",
		report.TotalIssues(), report.GlyphsWithIssues(), len(report.Glyphs))
}

// writeGlyphs writes one entry per checked glyph.
func (w *SimpleWriter) writeGlyphs(sb *strings.Builder, report *model.CheckReport) {
	if len(report.Glyphs) == 0 {
		return
	}
	writeSection(sb, "GLYPHS")

	for _, g := range report.Glyphs {
		if g.OK() {
			if !w.issuesOnly {
				fmt.Fprintf(sb, "%s: %s\n", g.Name, model.OKSentinel)
			}
			continue
		}
		fmt.Fprintf(sb, "%s:\n", g.Name)
		for _, is := range g.Issues {
			fmt.Fprintf(sb, "  - %s\n", is.Message)
		}
	}
	sb.WriteString("\n")
}

// writeGroups writes size groups in ascending order.
func (w *SimpleWriter) writeGroups(sb *strings.Builder, title string, groups map[int][]string) {
	if len(groups) == 0 {
		return
	}
	writeSection(sb, title)

	for _, size := range model.SortedSizes(groups) {
		fmt.Fprintf(sb, "  %d: %s\n", size, strings.Join(groups[size], ", "))
	}
	sb.WriteString("\n")
}

// writeFooter writes the report footer.
func (w *SimpleWriter) writeFooter(sb *strings.Builder) {
	sb.WriteString(strings.Repeat("=", ruleWidth))
	sb.WriteString("\n")
	sb.WriteString("Report generated by glyphcheck\n")
	sb.WriteString("https://github.com/nao1215/glyphcheck\n")
	sb.WriteString(strings.Repeat("=", ruleWidth))
	sb.WriteString("\n")
}

// WriteComparison outputs the comparison in human-readable format.
func (w *SimpleWriter) WriteComparison(c *model.Comparison) (int, error) {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Check Comparison: %s\n", c.Source)
	sb.WriteString(strings.Repeat("=", 60))
	sb.WriteString("\n")

	fmt.Fprintf(&sb, "\nTrend: %s\n", trendText(c.Trend))
	fmt.Fprintf(&sb, "\nPrevious run: %s\n", c.Previous.DateChecked.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&sb, "Current run:  %s\n", c.Current.DateChecked.Format("2006-01-02 15:04:05"))

	sb.WriteString("\nIssues Summary:\n")
	fmt.Fprintf(&sb, "  %-18s  %-8s  %-8s  %-8s\n", "Category", "Previous", "Current", "Change")
	sb.WriteString("  " + strings.Repeat("-", 50) + "\n")
	for _, cat := range model.Categories() {
		fmt.Fprintf(&sb, "  %-18s  %-8d  %-8d  %-8s\n", cat.String(),
			c.Previous.Counts[cat], c.Current.Counts[cat], FormatDelta(c.Deltas[cat]))
	}
	sb.WriteString("  " + strings.Repeat("-", 50) + "\n")
	fmt.Fprintf(&sb, "  %-18s  %-8d  %-8d  %-8s\n", "total",
		c.Previous.TotalIssues, c.Current.TotalIssues,
		FormatDelta(c.Current.TotalIssues-c.Previous.TotalIssues))

	if len(c.NewIssues) > 0 {
		fmt.Fprintf(&sb, "\nNew Issues (%d):\n", len(c.NewIssues))
		for _, gi := range c.NewIssues {
			fmt.Fprintf(&sb, "  [+] %s: %s\n", gi.Glyph, gi.Message)
		}
	}
	if len(c.ResolvedIssues) > 0 {
		fmt.Fprintf(&sb, "\nResolved Issues (%d):\n", len(c.ResolvedIssues))
		for _, gi := range c.ResolvedIssues {
			fmt.Fprintf(&sb, "  [-] %s: %s\n", gi.Glyph, gi.Message)
		}
	}
	if c.UnchangedCount > 0 {
		fmt.Fprintf(&sb, "\nUnchanged: %d issues\n", c.UnchangedCount)
	}

	return io.WriteString(w.output, sb.String())
}

func writeSection(sb *strings.Builder, title string) {
	sb.WriteString(strings.Repeat("-", ruleWidth))
	sb.WriteString("\n")
	sb.WriteString(title)
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("-", ruleWidth))
	sb.WriteString("\n\n")
}

// categoryLabel returns the summary label of a category. The length label
// lists the targets the run actually used.
func categoryLabel(c model.Category, targets []float64) string {
	if c != model.CategorySuspiciousLength || len(targets) == 0 {
		return model.GetCategoryInfo(c).Label
	}
	parts := make([]string, len(targets))
	for i, t := range targets {
		parts[i] = check.FormatCoord(t)
	}
	return "Near specific length segments (~" + strings.Join(parts, "/") + "±3)"
}

func masterLabel(report *model.CheckReport) string {
	switch {
	case report.MasterName != "" && report.MasterID != "" && report.MasterName != report.MasterID:
		return report.MasterName + " (" + report.MasterID + ")"
	case report.MasterName != "":
		return report.MasterName
	default:
		return report.MasterID
	}
}

func modeText(report *model.CheckReport) string {
	if report.Relaxed {
		return "relaxed"
	}
	return "strict"
}

// statusText returns the status text based on report state.
func statusText(report *model.CheckReport) string {
	switch {
	case report.Cancelled:
		return "CANCELLED (partial results)"
	case report.ErrorMessage != "":
		return "ERROR - " + report.ErrorMessage
	default:
		return "Complete"
	}
}

// trendText formats the comparison trend for display.
func trendText(trend string) string {
	switch trend {
	case model.TrendImproved:
		return "IMPROVED (fewer issues)"
	case model.TrendWorsened:
		return "WORSENED (more issues)"
	default:
		return "UNCHANGED"
	}
}

// FormatDelta formats a numeric delta with sign for display.
func FormatDelta(delta int) string {
	if delta > 0 {
		return "+" + strconv.Itoa(delta)
	}
	return strconv.Itoa(delta)
}
