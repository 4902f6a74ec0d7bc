package model

import (
	"time"

	"github.com/nao1215/glyphcheck/internal/outline"
)

// CheckReport is the result of checking one font source.
// It contains the per-glyph issues, the per-category counters and the
// glyph groupings by outline size.
//
// Design decision: The counters are derived while glyphs are added rather
// than recomputed from the issue lists, mirroring how the report is built:
// a single pass that folds each glyph's result into the running totals.
// Nothing else writes to a CheckReport while a run is in progress.
type CheckReport struct {
	// === Basic Information ===

	// Source is the path (or other identifier) of the checked font.
	Source string `json:"source"`

	// FamilyName is the font family name, if the source provides one.
	FamilyName string `json:"family_name,omitempty"`

	// MasterID is the ID of the master whose layers were checked.
	MasterID string `json:"master_id,omitempty"`

	// MasterName is the display name of the checked master.
	MasterName string `json:"master_name,omitempty"`

	// DateChecked is when the run started.
	DateChecked time.Time `json:"date_checked"`

	// Relaxed records whether false-positive suppression was enabled.
	Relaxed bool `json:"relaxed"`

	// LengthTargets records the suspicious-length targets used.
	LengthTargets []float64 `json:"length_targets,omitempty"`

	// === Results ===

	// Glyphs lists every checked glyph in font order.
	Glyphs []GlyphReport `json:"glyphs"`

	// Counts holds the number of issues per category.
	Counts map[Category]int `json:"counts"`

	// WidthGroups maps a rounded outline width to the sorted glyph names
	// having that width.
	WidthGroups map[int][]string `json:"width_groups,omitempty"`

	// HeightGroups maps a rounded outline height to the sorted glyph names
	// having that height.
	HeightGroups map[int][]string `json:"height_groups,omitempty"`

	// === Run State ===

	// Font is the loaded outline snapshot. It is not serialized.
	Font *outline.Font `json:"-"`

	// PerformedSteps lists the pipeline steps that ran.
	PerformedSteps []string `json:"performed_steps,omitempty"`

	// Cancelled is true when the run stopped before completing.
	Cancelled bool `json:"cancelled,omitempty"`

	// Error is the error that stopped the run, if any.
	Error error `json:"-"`

	// ErrorMessage is the serializable form of Error.
	ErrorMessage string `json:"error,omitempty"`
}

// NewCheckReport creates an empty report for the given source.
func NewCheckReport(source string) *CheckReport {
	counts := make(map[Category]int, categoryCount)
	for _, c := range Categories() {
		counts[c] = 0
	}
	return &CheckReport{
		Source:      source,
		DateChecked: time.Now(),
		Glyphs:      make([]GlyphReport, 0),
		Counts:      counts,
	}
}

// AddGlyph appends a glyph's issues and updates the counters.
func (r *CheckReport) AddGlyph(name string, issues []Issue) {
	if r.Counts == nil {
		r.Counts = make(map[Category]int, categoryCount)
	}
	for _, is := range issues {
		r.Counts[is.Category]++
	}
	r.Glyphs = append(r.Glyphs, GlyphReport{Name: name, Issues: issues})
}

// Glyph returns the report of the named glyph.
func (r *CheckReport) Glyph(name string) (GlyphReport, bool) {
	for _, g := range r.Glyphs {
		if g.Name == name {
			return g, true
		}
	}
	return GlyphReport{}, false
}

// Issues returns the messages of the named glyph, or the OK sentinel when
// the glyph is clean or was not checked.
func (r *CheckReport) Issues(name string) []string {
	g, ok := r.Glyph(name)
	if !ok {
		return []string{OKSentinel}
	}
	return g.Messages()
}

// Count returns the number of issues in a category.
func (r *CheckReport) Count(c Category) int {
	return r.Counts[c]
}

// TotalIssues returns the number of issues across all categories.
func (r *CheckReport) TotalIssues() int {
	total := 0
	for _, n := range r.Counts {
		total += n
	}
	return total
}

// HasIssues returns true if any glyph has an issue.
func (r *CheckReport) HasIssues() bool {
	return r.TotalIssues() > 0
}

// GlyphsWithIssues returns the number of glyphs that have at least one issue.
func (r *CheckReport) GlyphsWithIssues() int {
	n := 0
	for _, g := range r.Glyphs {
		if !g.OK() {
			n++
		}
	}
	return n
}

// IssuesByCategory returns every issue of the given category, paired with
// the glyph it belongs to, in report order.
func (r *CheckReport) IssuesByCategory(c Category) []GlyphIssue {
	var out []GlyphIssue
	for _, g := range r.Glyphs {
		for _, is := range g.Issues {
			if is.Category == c {
				out = append(out, GlyphIssue{Glyph: g.Name, Issue: is})
			}
		}
	}
	return out
}

// GlyphIssue is an issue together with the glyph it was found in.
type GlyphIssue struct {
	Glyph string `json:"glyph"`
	Issue
}
