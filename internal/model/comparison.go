package model

import "time"

// Trend directions of a Comparison.
const (
	TrendWorsened  = "worsened"
	TrendImproved  = "improved"
	TrendUnchanged = "unchanged"
)

// Comparison holds the result of comparing two check runs of one source.
type Comparison struct {
	// Source is the checked font source.
	Source string `json:"source"`

	// Previous describes the older run.
	Previous RunMetadata `json:"previous"`

	// Current describes the newer run.
	Current RunMetadata `json:"current"`

	// NewIssues are issues present in the current run only.
	NewIssues []GlyphIssue `json:"new_issues,omitempty"`

	// ResolvedIssues are issues present in the previous run only.
	ResolvedIssues []GlyphIssue `json:"resolved_issues,omitempty"`

	// UnchangedCount is the number of issues present in both runs.
	UnchangedCount int `json:"unchanged_count"`

	// Trend is TrendImproved, TrendWorsened or TrendUnchanged.
	Trend string `json:"trend"`

	// Deltas holds current minus previous count per category.
	Deltas map[Category]int `json:"deltas"`
}

// RunMetadata contains summary information about one run.
type RunMetadata struct {
	DateChecked time.Time        `json:"date_checked"`
	MasterID    string           `json:"master_id,omitempty"`
	TotalIssues int              `json:"total_issues"`
	Counts      map[Category]int `json:"counts"`
}

// newRunMetadata extracts the metadata of a report.
func newRunMetadata(r *CheckReport) RunMetadata {
	counts := make(map[Category]int, categoryCount)
	for _, c := range Categories() {
		counts[c] = r.Count(c)
	}
	return RunMetadata{
		DateChecked: r.DateChecked,
		MasterID:    r.MasterID,
		TotalIssues: r.TotalIssues(),
		Counts:      counts,
	}
}

// Compare computes the difference between two runs.
// Issues are matched by glyph name, category and message; because messages
// carry coordinates, a moved node shows up as one resolved and one new issue.
// The order of NewIssues and ResolvedIssues follows report order.
func Compare(previous, current *CheckReport) *Comparison {
	result := &Comparison{
		Source:   current.Source,
		Previous: newRunMetadata(previous),
		Current:  newRunMetadata(current),
		Deltas:   make(map[Category]int, categoryCount),
	}

	// Each occurrence matches at most one occurrence on the other side, so
	// repeated messages are counted, not collapsed.
	unmatchedPrevious := issueKeys(previous)
	for _, g := range current.Glyphs {
		for _, is := range g.Issues {
			key := issueKey(g.Name, is)
			if unmatchedPrevious[key] > 0 {
				unmatchedPrevious[key]--
				continue
			}
			result.NewIssues = append(result.NewIssues, GlyphIssue{Glyph: g.Name, Issue: is})
		}
	}
	unmatchedCurrent := issueKeys(current)
	for _, g := range previous.Glyphs {
		for _, is := range g.Issues {
			key := issueKey(g.Name, is)
			if unmatchedCurrent[key] > 0 {
				unmatchedCurrent[key]--
				result.UnchangedCount++
				continue
			}
			result.ResolvedIssues = append(result.ResolvedIssues, GlyphIssue{Glyph: g.Name, Issue: is})
		}
	}

	for _, c := range Categories() {
		result.Deltas[c] = result.Current.Counts[c] - result.Previous.Counts[c]
	}

	switch {
	case result.Current.TotalIssues < result.Previous.TotalIssues:
		result.Trend = TrendImproved
	case result.Current.TotalIssues > result.Previous.TotalIssues:
		result.Trend = TrendWorsened
	default:
		result.Trend = TrendUnchanged
	}

	return result
}

// issueKey identifies an issue across runs.
func issueKey(glyph string, is Issue) string {
	return glyph + "|" + is.Category.String() + "|" + is.Message
}

// issueKeys counts issue keys of a report.
func issueKeys(r *CheckReport) map[string]int {
	keys := make(map[string]int)
	for _, g := range r.Glyphs {
		for _, is := range g.Issues {
			keys[issueKey(g.Name, is)]++
		}
	}
	return keys
}
