package check

import (
	"math"
	"strings"

	"github.com/nao1215/glyphcheck/internal/model"
	"github.com/nao1215/glyphcheck/internal/outline"
)

// segmentHintPrefix is the hint name prefix of segment components.
const segmentHintPrefix = "_segment."

// CollinearDetector flags the middle point of three consecutive on-curve
// points joined by straight lines when the three lie on one line. The middle
// point adds nothing to the outline.
type CollinearDetector struct {
	epsilon float64
	relaxed bool
}

// NewCollinearDetector creates a CollinearDetector.
func NewCollinearDetector(opts Options) *CollinearDetector {
	return &CollinearDetector{
		epsilon: opts.CollinearEpsilon,
		relaxed: opts.Relaxed,
	}
}

// Name returns the detector name.
func (d *CollinearDetector) Name() string {
	return "collinear"
}

// Category returns the detector category.
func (d *CollinearDetector) Category() model.Category {
	return model.CategoryCollinear
}

// Detect walks the on-curve triples of every path. Open paths are walked
// from the start only; closed paths wrap around.
func (d *CollinearDetector) Detect(_ string, layer outline.Layer) []model.Issue {
	var skip map[outline.PointRef]struct{}
	if d.relaxed {
		skip = segmentComponentPoints(layer.Hints)
	}

	var issues []model.Issue
	for pi, path := range layer.Paths {
		on := path.OnCurveIndices()
		m := len(on)
		if m < 3 {
			continue
		}
		total := len(path.Points)

		for j := 0; j < m; j++ {
			if !path.Closed && j > m-3 {
				break
			}
			iA, iB, iC := on[j], on[(j+1)%m], on[(j+2)%m]

			if _, ok := skip[outline.PointRef{Path: pi, Point: iB}]; ok {
				continue
			}
			if _, ok := skip[outline.PointRef{Path: pi, Point: iC}]; ok {
				continue
			}
			// Only pure two-point lines count: no off-curve points between.
			if iB != (iA+1)%total || iC != (iB+1)%total {
				continue
			}

			a, b, c := path.Points[iA], path.Points[iB], path.Points[iC]
			cross := (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
			if math.Abs(cross) < d.epsilon {
				issues = append(issues, model.NewIssue(d.Category(),
					"Extra node at "+formatPoint(b)+" (collinear with neighbors)"))
			}
		}
	}
	return issues
}

// segmentComponentPoints collects the points referenced by segment
// component hints.
func segmentComponentPoints(hints []outline.Hint) map[outline.PointRef]struct{} {
	set := make(map[outline.PointRef]struct{})
	for _, h := range hints {
		if h.Type != outline.HintTypeSegment || !strings.HasPrefix(h.Name, segmentHintPrefix) {
			continue
		}
		if h.Origin != nil {
			set[*h.Origin] = struct{}{}
		}
		if h.Target != nil {
			set[*h.Target] = struct{}{}
		}
	}
	return set
}
