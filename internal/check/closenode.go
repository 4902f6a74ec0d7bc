package check

import (
	"math"

	"github.com/nao1215/glyphcheck/internal/model"
	"github.com/nao1215/glyphcheck/internal/outline"
)

// CloseNodeDetector flags pairs of on-curve points that lie closer together
// than a threshold anywhere in the layer, including across paths.
type CloseNodeDetector struct {
	threshold float64
	relaxed   bool
}

// NewCloseNodeDetector creates a CloseNodeDetector.
func NewCloseNodeDetector(opts Options) *CloseNodeDetector {
	return &CloseNodeDetector{
		threshold: opts.CloseNodeDistance,
		relaxed:   opts.Relaxed,
	}
}

// Name returns the detector name.
func (d *CloseNodeDetector) Name() string {
	return "close-node"
}

// Category returns the detector category.
func (d *CloseNodeDetector) Category() model.Category {
	return model.CategoryCloseNodes
}

// taggedPoint is an on-curve point with the index of its path.
type taggedPoint struct {
	outline.Point
	path int
}

// Detect compares every pair of on-curve points in path order.
func (d *CloseNodeDetector) Detect(_ string, layer outline.Layer) []model.Issue {
	var pts []taggedPoint
	for pi, path := range layer.Paths {
		for _, p := range path.Points {
			if p.OnCurve {
				pts = append(pts, taggedPoint{Point: p, path: pi})
			}
		}
	}

	limit := d.threshold * d.threshold
	var issues []model.Issue
	for i := 0; i < len(pts); i++ {
		for j := i + 1; j < len(pts); j++ {
			a, b := pts[i], pts[j]
			dx, dy := b.X-a.X, b.Y-a.Y
			distSq := dx*dx + dy*dy
			if !(distSq < limit) {
				continue
			}
			if d.relaxed && distSq == 0 && d.stitched(layer, a.path, b.path) {
				continue
			}
			issues = append(issues, model.NewIssue(d.Category(),
				"Nodes at "+formatPoint(a.Point)+" and "+formatPoint(b.Point)+
					" very close (dist="+FormatTenths(math.Sqrt(distSq))+")"))
		}
	}
	return issues
}

// stitched reports whether two different closed paths sit flush against each
// other, so that a shared node between them is intentional.
func (d *CloseNodeDetector) stitched(layer outline.Layer, pa, pb int) bool {
	if pa == pb {
		return false
	}
	a, b := layer.Paths[pa], layer.Paths[pb]
	if !a.Closed || !b.Closed {
		return false
	}
	ba, okA := a.Bounds()
	bb, okB := b.Bounds()
	if !okA || !okB {
		return false
	}
	return BoundsFlush(ba, bb)
}
