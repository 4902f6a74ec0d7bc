package check

import "github.com/nao1215/glyphcheck/internal/outline"

// BoundsFlush reports whether two rectangles share an edge coordinate on
// either axis: one's max meets the other's min, or their mins or maxes
// coincide. Coordinates are compared exactly.
func BoundsFlush(a, b outline.Rect) bool {
	flushX := a.MaxX() == b.MinX() || b.MaxX() == a.MinX() ||
		a.MaxX() == b.MaxX() || a.MinX() == b.MinX()
	flushY := a.MaxY() == b.MinY() || b.MaxY() == a.MinY() ||
		a.MaxY() == b.MaxY() || a.MinY() == b.MinY()
	return flushX || flushY
}
