package report

import (
	"io"
	"strconv"
	"strings"

	"github.com/nao1215/glyphcheck/internal/model"
	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// MarkdownWriter outputs reports in Markdown format.
// This format is designed for pull request comments and font project docs.
//
// Design decision: We use the nao1215/markdown library for fluent markdown
// generation, which gives us tables, lists, GitHub alerts and mermaid
// charts without hand-escaping.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the report in Markdown format.
func (w *MarkdownWriter) Write(report *model.CheckReport) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, report)
	w.writeSummary(md, report)
	w.writeIssues(md, report)
	w.writeGroups(md, "Outline Width Groups", "Width", report.WidthGroups)
	w.writeGroups(md, "Outline Height Groups", "Height", report.HeightGroups)
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// writeHeader writes the report header with run information.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, report *model.CheckReport) {
	md.H1("Glyphcheck Report")
	md.PlainText("")

	rows := [][]string{
		{"Source", "`" + report.Source + "`"},
	}
	if report.FamilyName != "" {
		rows = append(rows, []string{"Family", report.FamilyName})
	}
	if master := masterLabel(report); master != "" {
		rows = append(rows, []string{"Master", master})
	}
	rows = append(rows,
		[]string{"Check Date", report.DateChecked.Format("2006-01-02 15:04:05 MST")},
		[]string{"Glyphs", strconv.Itoa(len(report.Glyphs))},
		[]string{"Mode", modeText(report)},
		[]string{"Status", markdownStatus(report)},
	)

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows:   rows,
	})
	md.PlainText("")
}

func markdownStatus(report *model.CheckReport) string {
	switch {
	case report.Cancelled:
		return "⚠️ Cancelled (partial results)"
	case report.ErrorMessage != "":
		return "❌ Error - " + report.ErrorMessage
	default:
		return "✅ Complete"
	}
}

// writeSummary writes the category summary table, chart and alert.
func (w *MarkdownWriter) writeSummary(md *markdown.Markdown, report *model.CheckReport) {
	md.H2("Summary of Issues")
	md.PlainText("")

	rows := make([][]string, 0, len(model.Categories())+1)
	for _, c := range model.Categories() {
		rows = append(rows, []string{categoryLabel(c, report.LengthTargets), strconv.Itoa(report.Count(c))})
	}
	rows = append(rows, []string{"**Total**", "**" + strconv.Itoa(report.TotalIssues()) + "**"})

	md.Table(markdown.TableSet{
		Header: []string{"Category", "Count"},
		Rows:   rows,
	})
	md.PlainText("")

	if report.HasIssues() {
		w.writePieChart(md, report)
	}
	w.writeAlert(md, report)
}

// writePieChart writes a mermaid pie chart for the category distribution.
func (w *MarkdownWriter) writePieChart(md *markdown.Markdown, report *model.CheckReport) {
	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Issue Category Distribution"),
		piechart.WithShowData(true),
	)
	for _, c := range model.Categories() {
		if n := report.Count(c); n > 0 {
			chart.LabelAndIntValue(categoryTitle(c), uint64(n))
		}
	}

	md.PlainText("")
	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

// writeAlert writes an alert matching the most serious category present.
func (w *MarkdownWriter) writeAlert(md *markdown.Markdown, report *model.CheckReport) {
	switch {
	case report.Count(model.CategoryOpenPath) > 0:
		md.Cautionf("%d open path(s) found. Open contours do not fill when the font is rendered.",
			report.Count(model.CategoryOpenPath))
	case report.Count(model.CategoryCloseNodes)+report.Count(model.CategorySmallSegment) > 0:
		md.Warningf("%d glyph(s) contain nearly overlapping nodes or tiny segments.",
			report.GlyphsWithIssues())
	case report.HasIssues():
		md.Importantf("%d issue(s) in %d glyph(s) should be reviewed.",
			report.TotalIssues(), report.GlyphsWithIssues())
	case len(report.Glyphs) == 0:
		md.Note("No glyphs were checked.")
	default:
		md.Tip("All outlines passed the geometric checks.")
	}
	md.PlainText("")
}

// writeIssues writes a table per category plus the per-glyph bullet lists.
func (w *MarkdownWriter) writeIssues(md *markdown.Markdown, report *model.CheckReport) {
	md.H2("Issues")
	md.PlainText("")

	if !report.HasIssues() {
		md.PlainText("No issues detected.")
		md.PlainText("")
		return
	}

	for _, c := range model.Categories() {
		issues := report.IssuesByCategory(c)
		if len(issues) == 0 {
			continue
		}

		md.PlainText("### " + categoryTitle(c))
		md.PlainText("")

		rows := make([][]string, len(issues))
		for i, gi := range issues {
			rows[i] = []string{"`" + gi.Glyph + "`", gi.Message}
		}
		md.Table(markdown.TableSet{
			Header: []string{"Glyph", "Issue"},
			Rows:   rows,
		})
		md.PlainText("")

		info := model.GetCategoryInfo(c)
		md.Details(categoryTitle(c), info.Description+" "+info.Recommendation)
		md.PlainText("")
	}

	md.PlainText("### Per Glyph")
	md.PlainText("")
	for _, g := range report.Glyphs {
		if g.OK() {
			continue
		}
		md.PlainText("**" + g.Name + "**")
		md.PlainText("")
		md.BulletList(g.Messages()...)
		md.PlainText("")
	}
}

// writeGroups writes size groups as a two-column table.
func (w *MarkdownWriter) writeGroups(md *markdown.Markdown, title, column string, groups map[int][]string) {
	if len(groups) == 0 {
		return
	}
	md.H2(title)
	md.PlainText("")

	sizes := model.SortedSizes(groups)
	rows := make([][]string, len(sizes))
	for i, size := range sizes {
		rows[i] = []string{strconv.Itoa(size), strings.Join(groups[size], ", ")}
	}
	md.Table(markdown.TableSet{
		Header: []string{column, "Glyphs"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeFooter writes the report footer.
func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainTextf("*Report generated by [glyphcheck](https://github.com/nao1215/glyphcheck)*")
}

// WriteComparison outputs the comparison in Markdown format.
func (w *MarkdownWriter) WriteComparison(c *model.Comparison) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1("Check Comparison: " + c.Source)
	md.PlainText("")
	md.H2("Summary")
	md.PlainText("")
	md.PlainText("**Trend:** " + trendText(c.Trend))
	md.PlainText("")

	rows := [][]string{
		{"Date", c.Previous.DateChecked.Format("2006-01-02 15:04"), c.Current.DateChecked.Format("2006-01-02 15:04"), "-"},
	}
	for _, cat := range model.Categories() {
		rows = append(rows, []string{
			categoryTitle(cat),
			strconv.Itoa(c.Previous.Counts[cat]),
			strconv.Itoa(c.Current.Counts[cat]),
			FormatDelta(c.Deltas[cat]),
		})
	}
	rows = append(rows, []string{
		"**Total**",
		"**" + strconv.Itoa(c.Previous.TotalIssues) + "**",
		"**" + strconv.Itoa(c.Current.TotalIssues) + "**",
		"**" + FormatDelta(c.Current.TotalIssues-c.Previous.TotalIssues) + "**",
	})
	md.Table(markdown.TableSet{
		Header: []string{"Metric", "Previous", "Current", "Change"},
		Rows:   rows,
	})
	md.PlainText("")

	if len(c.NewIssues) > 0 {
		md.H2("New Issues (" + strconv.Itoa(len(c.NewIssues)) + ")")
		md.PlainText("")
		md.BulletList(glyphIssueLines(c.NewIssues, "")...)
		md.PlainText("")
	}
	if len(c.ResolvedIssues) > 0 {
		md.H2("Resolved Issues (" + strconv.Itoa(len(c.ResolvedIssues)) + ")")
		md.PlainText("")
		md.BulletList(glyphIssueLines(c.ResolvedIssues, "~~")...)
		md.PlainText("")
	}
	if c.UnchangedCount > 0 {
		md.HorizontalRule()
		md.PlainText("")
		md.PlainTextf("*%d issues unchanged*", c.UnchangedCount)
	}

	return len(md.String()), md.Build()
}

func glyphIssueLines(issues []model.GlyphIssue, wrap string) []string {
	lines := make([]string, len(issues))
	for i, gi := range issues {
		lines[i] = wrap + "**" + gi.Glyph + "** [" + categoryTitle(gi.Category) + "] " + gi.Message + wrap
	}
	return lines
}

// categoryTitle turns "small_segment" into "Small Segment".
// A new caser is built per call since cases.Caser keeps state.
func categoryTitle(c model.Category) string {
	return cases.Title(language.English).String(strings.ReplaceAll(c.String(), "_", " "))
}
