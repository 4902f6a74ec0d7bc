package outline

import "math"

// SegmentKind classifies a segment by the number of control points it has.
type SegmentKind int

const (
	// SegmentLine is a straight run between two on-curve points.
	SegmentLine SegmentKind = iota

	// SegmentQuad is a quadratic curve with one control point.
	SegmentQuad

	// SegmentCubic is a cubic curve with two control points.
	SegmentCubic

	// SegmentQuadSpline is a TrueType quadratic spline with two or more
	// control points and implied on-curve points between them. Three or
	// more control points always form one, whatever the path flavor.
	SegmentQuadSpline
)

// String returns the segment kind name.
func (k SegmentKind) String() string {
	switch k {
	case SegmentLine:
		return "line"
	case SegmentQuad:
		return "quad"
	case SegmentCubic:
		return "cubic"
	case SegmentQuadSpline:
		return "qspline"
	default:
		return "unknown"
	}
}

// Segment is the run between two consecutive on-curve points of a path.
type Segment struct {
	// Start is the on-curve point the segment begins at.
	Start Point

	// Controls holds the off-curve points between Start and End, in order.
	Controls []Point

	// End is the on-curve point the segment ends at.
	End Point

	// StartIndex and EndIndex are the positions of Start and End in
	// the owning path's point list.
	StartIndex int
	EndIndex   int

	// Quadratic is copied from the owning path.
	Quadratic bool
}

// Kind returns the segment classification.
func (s Segment) Kind() SegmentKind {
	switch len(s.Controls) {
	case 0:
		return SegmentLine
	case 1:
		return SegmentQuad
	case 2:
		if s.Quadratic {
			return SegmentQuadSpline
		}
		return SegmentCubic
	default:
		return SegmentQuadSpline
	}
}

// Endpoints returns the two boundary points of the segment.
// ok is false when either point has no usable coordinates.
func (s Segment) Endpoints() (start, end Point, ok bool) {
	if !s.Start.finite() || !s.End.finite() {
		return Point{}, Point{}, false
	}
	return s.Start, s.End, true
}

// Bounds returns the tight bounding box of the drawn segment, including
// curve extrema but not control points that lie outside the curve.
func (s Segment) Bounds() Rect {
	pieces := s.pieces()
	r := pieces[0].bounds()
	for _, pc := range pieces[1:] {
		r = r.Union(pc.bounds())
	}
	return r
}

// Length returns the arc length of the segment.
// ok is false when the length is undefined: a coordinate is not a finite
// number, or every point of the segment coincides.
func (s Segment) Length() (float64, bool) {
	if !s.Start.finite() || !s.End.finite() {
		return 0, false
	}
	degenerate := s.Start.X == s.End.X && s.Start.Y == s.End.Y
	for _, c := range s.Controls {
		if !c.finite() {
			return 0, false
		}
		if c.X != s.Start.X || c.Y != s.Start.Y {
			degenerate = false
		}
	}
	if degenerate {
		return 0, false
	}

	var total float64
	for _, pc := range s.pieces() {
		total += pc.length()
	}
	return total, true
}

// piece is a single line, quadratic or cubic Bézier.
type piece []Point

// pieces splits the segment into elementary Béziers. A quadratic spline is
// expanded with an implied on-curve point halfway between each pair of
// consecutive control points.
func (s Segment) pieces() []piece {
	switch s.Kind() {
	case SegmentLine:
		return []piece{{s.Start, s.End}}
	case SegmentQuad, SegmentCubic:
		pc := make(piece, 0, len(s.Controls)+2)
		pc = append(pc, s.Start)
		pc = append(pc, s.Controls...)
		return []piece{append(pc, s.End)}
	}

	out := make([]piece, 0, len(s.Controls))
	from := s.Start
	for i := 0; i < len(s.Controls)-1; i++ {
		implied := s.Controls[i].lerp(s.Controls[i+1], 0.5)
		out = append(out, piece{from, s.Controls[i], implied})
		from = implied
	}
	return append(out, piece{from, s.Controls[len(s.Controls)-1], s.End})
}

// eval evaluates the Bézier at t with de Casteljau's algorithm.
func (pc piece) eval(t float64) Point {
	pts := make([]Point, len(pc))
	copy(pts, pc)
	for n := len(pts) - 1; n > 0; n-- {
		for i := 0; i < n; i++ {
			pts[i] = pts[i].lerp(pts[i+1], t)
		}
	}
	return pts[0]
}

// bounds returns the tight bounding box of the piece.
func (pc piece) bounds() Rect {
	r := rectFromPoints(pc[0], pc[len(pc)-1])
	for _, t := range pc.extrema() {
		p := pc.eval(t)
		r = r.Union(rectFromPoints(p))
	}
	return r
}

// extrema returns parameter values in (0, 1) where dx/dt or dy/dt vanishes.
func (pc piece) extrema() []float64 {
	switch len(pc) {
	case 3:
		var ts []float64
		for _, axis := range [2]func(Point) float64{pointX, pointY} {
			d0 := axis(pc[1]) - axis(pc[0])
			d1 := axis(pc[2]) - axis(pc[1])
			if dd := d1 - d0; dd != 0 {
				if t := -d0 / dd; t > 0 && t < 1 {
					ts = append(ts, t)
				}
			}
		}
		return ts
	case 4:
		var ts []float64
		for _, axis := range [2]func(Point) float64{pointX, pointY} {
			d0 := axis(pc[1]) - axis(pc[0])
			d1 := axis(pc[2]) - axis(pc[1])
			d2 := axis(pc[3]) - axis(pc[2])
			ts = append(ts, quadraticRoots(d0-2*d1+d2, 2*(d1-d0), d0)...)
		}
		return ts
	default:
		return nil
	}
}

func pointX(p Point) float64 { return p.X }
func pointY(p Point) float64 { return p.Y }

// quadraticRoots returns the roots of a*t² + b*t + c in the open interval (0, 1).
func quadraticRoots(a, b, c float64) []float64 {
	const eps = 1e-12
	var roots []float64
	if math.Abs(a) < eps {
		if math.Abs(b) >= eps {
			roots = append(roots, -c/b)
		}
	} else {
		disc := b*b - 4*a*c
		switch {
		case disc > 0:
			sq := math.Sqrt(disc)
			roots = append(roots, (-b+sq)/(2*a), (-b-sq)/(2*a))
		case disc == 0:
			roots = append(roots, -b/(2*a))
		}
	}

	out := roots[:0]
	for _, t := range roots {
		if t > 0 && t < 1 {
			out = append(out, t)
		}
	}
	return out
}

// Arc length tolerances for adaptive subdivision.
const (
	lengthTolerance = 1e-4
	maxLengthDepth  = 24
)

// length returns the arc length of the piece.
func (pc piece) length() float64 {
	if len(pc) == 2 {
		return pc[0].distance(pc[1])
	}
	return pc.adaptiveLength(0)
}

// adaptiveLength compares the chord with the control polygon and subdivides
// until both agree within lengthTolerance.
func (pc piece) adaptiveLength(depth int) float64 {
	chord := pc[0].distance(pc[len(pc)-1])
	var poly float64
	for i := 0; i+1 < len(pc); i++ {
		poly += pc[i].distance(pc[i+1])
	}
	if poly-chord <= lengthTolerance || depth >= maxLengthDepth {
		return (chord + poly) / 2
	}
	left, right := pc.split()
	return left.adaptiveLength(depth+1) + right.adaptiveLength(depth+1)
}

// split divides the piece at t = 0.5.
func (pc piece) split() (piece, piece) {
	n := len(pc)
	left := make(piece, n)
	right := make(piece, n)
	work := make([]Point, n)
	copy(work, pc)
	for level := 0; level < n; level++ {
		left[level] = work[0]
		right[n-1-level] = work[n-1-level]
		for i := 0; i < n-1-level; i++ {
			work[i] = work[i].lerp(work[i+1], 0.5)
		}
	}
	return left, right
}
