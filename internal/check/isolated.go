package check

import (
	"github.com/nao1215/glyphcheck/internal/model"
	"github.com/nao1215/glyphcheck/internal/outline"
)

// unnamedAnchor is shown for anchors without a name.
const unnamedAnchor = "(unnamed)"

// IsolatedDetector flags single-point paths and anchors. Both are reported
// in the isolated category.
type IsolatedDetector struct {
	relaxed    bool
	skipAnchor map[string]struct{}
}

// NewIsolatedDetector creates an IsolatedDetector.
func NewIsolatedDetector(opts Options) *IsolatedDetector {
	skip := make(map[string]struct{}, len(opts.AnchorDenylist))
	for _, name := range opts.AnchorDenylist {
		skip[name] = struct{}{}
	}
	return &IsolatedDetector{
		relaxed:    opts.Relaxed,
		skipAnchor: skip,
	}
}

// Name returns the detector name.
func (d *IsolatedDetector) Name() string {
	return "isolated"
}

// Category returns the detector category.
func (d *IsolatedDetector) Category() model.Category {
	return model.CategoryIsolated
}

// Detect reports isolated nodes first, then anchors, in layer order.
func (d *IsolatedDetector) Detect(_ string, layer outline.Layer) []model.Issue {
	var issues []model.Issue
	for _, path := range layer.Paths {
		if len(path.Points) == 1 {
			issues = append(issues, model.NewIssue(d.Category(),
				"Isolated node at "+formatPoint(path.Points[0])))
		}
	}

	for _, anchor := range layer.Anchors {
		name := unnamedAnchor
		if anchor.Name != nil && *anchor.Name != "" {
			name = *anchor.Name
		}
		if d.relaxed {
			if _, ok := d.skipAnchor[name]; ok {
				continue
			}
		}
		issues = append(issues, model.NewIssue(d.Category(),
			"Anchor '"+name+"' at "+formatXY(anchor.X, anchor.Y)))
	}
	return issues
}
