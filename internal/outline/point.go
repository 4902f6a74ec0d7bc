package outline

import "math"

// Point is a single outline point.
type Point struct {
	// X is the horizontal coordinate in font units.
	X float64 `json:"x"`

	// Y is the vertical coordinate in font units (y grows upwards).
	Y float64 `json:"y"`

	// OnCurve is true for points lying on the drawn outline
	// (corners and curve end points) and false for curve handles.
	OnCurve bool `json:"on_curve"`
}

// On returns an on-curve point.
func On(x, y float64) Point {
	return Point{X: x, Y: y, OnCurve: true}
}

// Off returns an off-curve (control) point.
func Off(x, y float64) Point {
	return Point{X: x, Y: y}
}

// finite reports whether both coordinates are usable numbers.
func (p Point) finite() bool {
	return !math.IsNaN(p.X) && !math.IsNaN(p.Y) && !math.IsInf(p.X, 0) && !math.IsInf(p.Y, 0)
}

// lerp interpolates between p and q. The result is on-curve.
func (p Point) lerp(q Point, t float64) Point {
	return On(p.X+(q.X-p.X)*t, p.Y+(q.Y-p.Y)*t)
}

// distance returns the Euclidean distance between p and q.
func (p Point) distance(q Point) float64 {
	return math.Hypot(q.X-p.X, q.Y-p.Y)
}

// PointRef addresses a point inside a layer by path and point index.
type PointRef struct {
	// Path is the index of the path within Layer.Paths.
	Path int `json:"path"`

	// Point is the index of the point within Path.Points.
	Point int `json:"point"`
}

// Rect is an axis-aligned bounding box stored as origin plus size,
// the way font editors report bounds.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// rectFromPoints returns the smallest rectangle containing all points.
// It must be called with at least one point.
func rectFromPoints(pts ...Point) Rect {
	minX, minY := pts[0].X, pts[0].Y
	maxX, maxY := minX, minY
	for _, p := range pts[1:] {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// MinX returns the left edge.
func (r Rect) MinX() float64 { return r.X }

// MinY returns the bottom edge.
func (r Rect) MinY() float64 { return r.Y }

// MaxX returns the right edge.
func (r Rect) MaxX() float64 { return r.X + r.Width }

// MaxY returns the top edge.
func (r Rect) MaxY() float64 { return r.Y + r.Height }

// Union returns the smallest rectangle containing both r and other.
func (r Rect) Union(other Rect) Rect {
	minX := math.Min(r.MinX(), other.MinX())
	minY := math.Min(r.MinY(), other.MinY())
	maxX := math.Max(r.MaxX(), other.MaxX())
	maxY := math.Max(r.MaxY(), other.MaxY())
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}
