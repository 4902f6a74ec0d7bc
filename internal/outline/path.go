package outline

// Path is an ordered sequence of points, open or closed.
type Path struct {
	// Closed is true when the last point connects back to the first.
	Closed bool `json:"closed"`

	// Points lists the path's points in drawing order.
	Points []Point `json:"points"`

	// Quadratic marks a TrueType contour: runs of off-curve points are
	// quadratic splines with implied on-curve points between them, never
	// cubic curves.
	Quadratic bool `json:"quadratic,omitempty"`
}

// OnCurveIndices returns the positions of all on-curve points in order.
func (p Path) OnCurveIndices() []int {
	idx := make([]int, 0, len(p.Points))
	for i, pt := range p.Points {
		if pt.OnCurve {
			idx = append(idx, i)
		}
	}
	return idx
}

// Segments decomposes the path into runs between consecutive on-curve
// points. A closed path yields one segment per on-curve point (the last one
// wraps to the first); an open path yields one fewer, and off-curve points
// before the first or after the last on-curve point are not part of any
// segment.
func (p Path) Segments() []Segment {
	on := p.OnCurveIndices()
	m := len(on)
	if m == 0 {
		return nil
	}

	n := len(p.Points)
	count := m - 1
	if p.Closed {
		count = m
	}
	if count <= 0 {
		return nil
	}

	segs := make([]Segment, 0, count)
	for k := 0; k < count; k++ {
		from := on[k]
		to := on[(k+1)%m]

		var controls []Point
		for i := (from + 1) % n; i != to; i = (i + 1) % n {
			controls = append(controls, p.Points[i])
		}

		segs = append(segs, Segment{
			Start:      p.Points[from],
			Controls:   controls,
			End:        p.Points[to],
			StartIndex: from,
			EndIndex:   to,
			Quadratic:  p.Quadratic,
		})
	}
	return segs
}

// Bounds returns the tight bounding box of the drawn path. A path without
// segments is bounded by its on-curve points. ok is false for a path
// without any on-curve point.
func (p Path) Bounds() (Rect, bool) {
	segs := p.Segments()
	if len(segs) == 0 {
		var on []Point
		for _, pt := range p.Points {
			if pt.OnCurve {
				on = append(on, pt)
			}
		}
		if len(on) == 0 {
			return Rect{}, false
		}
		return rectFromPoints(on...), true
	}

	r := segs[0].Bounds()
	for _, s := range segs[1:] {
		r = r.Union(s.Bounds())
	}
	return r, true
}
