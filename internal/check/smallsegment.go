package check

import (
	"github.com/nao1215/glyphcheck/internal/model"
	"github.com/nao1215/glyphcheck/internal/outline"
)

// SmallSegmentDetector flags segments whose bounding box is tiny in at least
// one dimension. Such segments are usually leftovers of a stray click or a
// failed node merge.
type SmallSegmentDetector struct {
	min float64
	max float64
}

// NewSmallSegmentDetector creates a SmallSegmentDetector.
func NewSmallSegmentDetector(opts Options) *SmallSegmentDetector {
	return &SmallSegmentDetector{
		min: opts.SmallSegmentMin,
		max: opts.SmallSegmentMax,
	}
}

// Name returns the detector name.
func (d *SmallSegmentDetector) Name() string {
	return "small-segment"
}

// Category returns the detector category.
func (d *SmallSegmentDetector) Category() model.Category {
	return model.CategorySmallSegment
}

// Detect checks every segment of every path.
func (d *SmallSegmentDetector) Detect(_ string, layer outline.Layer) []model.Issue {
	var issues []model.Issue
	for _, path := range layer.Paths {
		for _, seg := range path.Segments() {
			bounds := seg.Bounds()
			if !d.inRange(bounds.Width) && !d.inRange(bounds.Height) {
				continue
			}
			bbox := "[bbox " + FormatCoord(bounds.Width) + "×" + FormatCoord(bounds.Height) + "]"
			if start, end, ok := seg.Endpoints(); ok {
				issues = append(issues, model.NewIssue(d.Category(),
					"Small segment from "+formatPoint(start)+" to "+formatPoint(end)+" "+bbox))
				continue
			}
			issues = append(issues, model.NewIssue(d.Category(), "Small segment "+bbox))
		}
	}
	return issues
}

func (d *SmallSegmentDetector) inRange(v float64) bool {
	return d.min <= v && v <= d.max
}
