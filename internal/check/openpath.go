package check

import (
	"github.com/nao1215/glyphcheck/internal/model"
	"github.com/nao1215/glyphcheck/internal/outline"
)

// OpenPathDetector flags paths that are not closed and reports where they
// begin and end.
type OpenPathDetector struct{}

// NewOpenPathDetector creates an OpenPathDetector.
func NewOpenPathDetector(_ Options) *OpenPathDetector {
	return &OpenPathDetector{}
}

// Name returns the detector name.
func (d *OpenPathDetector) Name() string {
	return "open-path"
}

// Category returns the detector category.
func (d *OpenPathDetector) Category() model.Category {
	return model.CategoryOpenPath
}

// Detect reports each open path with more than one point. Endpoints that
// are off-curve resolve to the nearest on-curve point inward; a path with no
// on-curve point is skipped.
func (d *OpenPathDetector) Detect(_ string, layer outline.Layer) []model.Issue {
	var issues []model.Issue
	for _, path := range layer.Paths {
		if path.Closed || len(path.Points) <= 1 {
			continue
		}
		on := path.OnCurveIndices()
		if len(on) == 0 {
			continue
		}
		first := path.Points[on[0]]
		last := path.Points[on[len(on)-1]]
		issues = append(issues, model.NewIssue(d.Category(),
			"Open path (endpoints at "+formatPoint(first)+" and "+formatPoint(last)+")"))
	}
	return issues
}
