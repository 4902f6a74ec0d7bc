package model

// OKSentinel is the single entry reported for a glyph without issues.
const OKSentinel = "OK"

// Issue is one problem found in a glyph's outline.
type Issue struct {
	// Category is the detector that produced the issue.
	Category Category `json:"category"`

	// Message is the human-readable description, including coordinates.
	Message string `json:"message"`
}

// NewIssue creates an Issue.
func NewIssue(category Category, message string) Issue {
	return Issue{Category: category, Message: message}
}

// GlyphReport holds the ordered issues of a single glyph.
type GlyphReport struct {
	// Name is the glyph name.
	Name string `json:"name"`

	// Issues lists the detected problems in detector order.
	Issues []Issue `json:"issues,omitempty"`
}

// OK returns true when the glyph has no issues.
func (g GlyphReport) OK() bool {
	return len(g.Issues) == 0
}

// Messages returns the issue messages, or the OK sentinel when there are none.
func (g GlyphReport) Messages() []string {
	if g.OK() {
		return []string{OKSentinel}
	}
	out := make([]string, len(g.Issues))
	for i, is := range g.Issues {
		out[i] = is.Message
	}
	return out
}
