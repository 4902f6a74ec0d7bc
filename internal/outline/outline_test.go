package outline

import (
	"math"
	"testing"
)

// square returns a closed 100x100 square starting at (x, y).
func square(x, y float64) Path {
	return Path{
		Closed: true,
		Points: []Point{On(x, y), On(x+100, y), On(x+100, y+100), On(x, y+100)},
	}
}

// TestPathSegments tests segment decomposition for open and closed paths.
func TestPathSegments(t *testing.T) {
	t.Parallel()

	t.Run("closed path has one segment per on-curve point", func(t *testing.T) {
		t.Parallel()

		segs := square(0, 0).Segments()
		if len(segs) != 4 {
			t.Fatalf("expected 4 segments, got %d", len(segs))
		}
		last := segs[3]
		if last.StartIndex != 3 || last.EndIndex != 0 {
			t.Errorf("expected closing segment 3->0, got %d->%d", last.StartIndex, last.EndIndex)
		}
	})

	t.Run("open path has one segment fewer", func(t *testing.T) {
		t.Parallel()

		p := square(0, 0)
		p.Closed = false
		if got := len(p.Segments()); got != 3 {
			t.Errorf("expected 3 segments, got %d", got)
		}
	})

	t.Run("off-curve points become controls", func(t *testing.T) {
		t.Parallel()

		p := Path{
			Closed: true,
			Points: []Point{On(0, 0), Off(0, 50), Off(50, 100), On(100, 100), On(100, 0)},
		}
		segs := p.Segments()
		if len(segs) != 3 {
			t.Fatalf("expected 3 segments, got %d", len(segs))
		}
		if segs[0].Kind() != SegmentCubic {
			t.Errorf("expected cubic, got %s", segs[0].Kind())
		}
		if segs[1].Kind() != SegmentLine {
			t.Errorf("expected line, got %s", segs[1].Kind())
		}
	})

	t.Run("two controls on a quadratic path form a spline", func(t *testing.T) {
		t.Parallel()

		p := Path{
			Quadratic: true,
			Points:    []Point{On(0, 0), Off(0, 100), Off(100, 100), On(100, 0)},
		}
		segs := p.Segments()
		if len(segs) != 1 {
			t.Fatalf("expected 1 segment, got %d", len(segs))
		}
		if segs[0].Kind() != SegmentQuadSpline {
			t.Fatalf("expected qspline, got %s", segs[0].Kind())
		}
		// The implied on-curve point (50, 100) is the top of the curve.
		if got := segs[0].Bounds().MaxY(); math.Abs(got-100) > 1e-9 {
			t.Errorf("expected top at 100, got %v", got)
		}

		p.Quadratic = false
		if got := p.Segments()[0].Bounds().MaxY(); math.Abs(got-75) > 1e-9 {
			t.Errorf("expected cubic top at 75, got %v", got)
		}
	})

	t.Run("controls wrap around the start of a closed path", func(t *testing.T) {
		t.Parallel()

		p := Path{
			Closed: true,
			Points: []Point{On(0, 0), On(100, 0), Off(100, 50), Off(50, 100)},
		}
		segs := p.Segments()
		if len(segs) != 2 {
			t.Fatalf("expected 2 segments, got %d", len(segs))
		}
		if len(segs[1].Controls) != 2 {
			t.Errorf("expected wrapped segment to carry 2 controls, got %d", len(segs[1].Controls))
		}
	})

	t.Run("open path ignores leading and trailing off-curve points", func(t *testing.T) {
		t.Parallel()

		p := Path{Points: []Point{Off(0, 0), On(10, 0), On(20, 0), Off(30, 0)}}
		segs := p.Segments()
		if len(segs) != 1 {
			t.Fatalf("expected 1 segment, got %d", len(segs))
		}
		if segs[0].StartIndex != 1 || segs[0].EndIndex != 2 {
			t.Errorf("unexpected segment %d->%d", segs[0].StartIndex, segs[0].EndIndex)
		}
	})

	t.Run("path without on-curve points has no segments", func(t *testing.T) {
		t.Parallel()

		p := Path{Closed: true, Points: []Point{Off(0, 0), Off(10, 10)}}
		if segs := p.Segments(); segs != nil {
			t.Errorf("expected nil segments, got %v", segs)
		}
	})
}

// TestSegmentBounds tests tight bounding boxes.
func TestSegmentBounds(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		seg  Segment
		want Rect
	}{
		{
			name: "vertical line",
			seg:  Segment{Start: On(0, 0), End: On(0, 6)},
			want: Rect{X: 0, Y: 0, Width: 0, Height: 6},
		},
		{
			name: "cubic arch excludes control points",
			seg:  Segment{Start: On(0, 0), Controls: []Point{Off(0, 100), Off(100, 100)}, End: On(100, 0)},
			want: Rect{X: 0, Y: 0, Width: 100, Height: 75},
		},
		{
			name: "quadratic arch",
			seg:  Segment{Start: On(0, 0), Controls: []Point{Off(50, 100)}, End: On(100, 0)},
			want: Rect{X: 0, Y: 0, Width: 100, Height: 50},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := tt.seg.Bounds()
			if math.Abs(got.X-tt.want.X) > 1e-9 || math.Abs(got.Y-tt.want.Y) > 1e-9 ||
				math.Abs(got.Width-tt.want.Width) > 1e-9 || math.Abs(got.Height-tt.want.Height) > 1e-9 {
				t.Errorf("expected %+v, got %+v", tt.want, got)
			}
		})
	}
}

// TestSegmentLength tests arc length computation.
func TestSegmentLength(t *testing.T) {
	t.Parallel()

	t.Run("line length is exact", func(t *testing.T) {
		t.Parallel()

		l, ok := Segment{Start: On(0, 0), End: On(30, 40)}.Length()
		if !ok {
			t.Fatal("expected defined length")
		}
		if l != 50 {
			t.Errorf("expected 50, got %v", l)
		}
	})

	t.Run("quarter circle approximation", func(t *testing.T) {
		t.Parallel()

		const k = 55.2284749831
		seg := Segment{
			Start:    On(0, 0),
			Controls: []Point{Off(0, k), Off(100-k, 100)},
			End:      On(100, 100),
		}
		// Arc from (0,0) to (100,100) around center (100,0).
		l, ok := seg.Length()
		if !ok {
			t.Fatal("expected defined length")
		}
		want := math.Pi * 100 / 2
		if math.Abs(l-want) > 0.1 {
			t.Errorf("expected ~%.3f, got %.3f", want, l)
		}
	})

	t.Run("quadratic spline equals sum of implied pieces", func(t *testing.T) {
		t.Parallel()

		spline := Segment{
			Start:    On(0, 0),
			Controls: []Point{Off(0, 10), Off(10, 10), Off(20, 10)},
			End:      On(20, 0),
		}
		l, ok := spline.Length()
		if !ok {
			t.Fatal("expected defined length")
		}
		// Between the chord and the control polygon.
		if l <= 20 || l >= 40 {
			t.Errorf("expected length in (20, 40), got %v", l)
		}
		if spline.Kind() != SegmentQuadSpline {
			t.Errorf("expected qspline, got %s", spline.Kind())
		}
	})

	t.Run("degenerate segment has no length", func(t *testing.T) {
		t.Parallel()

		if _, ok := (Segment{Start: On(5, 5), End: On(5, 5)}).Length(); ok {
			t.Error("expected undefined length for a point-like segment")
		}
	})

	t.Run("non-finite coordinates have no length or endpoints", func(t *testing.T) {
		t.Parallel()

		seg := Segment{Start: On(math.NaN(), 0), End: On(1, 1)}
		if _, ok := seg.Length(); ok {
			t.Error("expected undefined length")
		}
		if _, _, ok := seg.Endpoints(); ok {
			t.Error("expected unavailable endpoints")
		}
	})
}

// TestLayerBounds tests bounds aggregation over paths.
func TestLayerBounds(t *testing.T) {
	t.Parallel()

	t.Run("empty layer has no bounds", func(t *testing.T) {
		t.Parallel()

		if _, ok := (Layer{}).Bounds(); ok {
			t.Error("expected no bounds")
		}
	})

	t.Run("union of paths", func(t *testing.T) {
		t.Parallel()

		l := Layer{Paths: []Path{square(0, 0), square(200, 50)}}
		r, ok := l.Bounds()
		if !ok {
			t.Fatal("expected bounds")
		}
		if r.Width != 300 || r.Height != 150 {
			t.Errorf("expected 300x150, got %vx%v", r.Width, r.Height)
		}
	})

	t.Run("single point path is bounded by its point", func(t *testing.T) {
		t.Parallel()

		r, ok := Path{Points: []Point{On(7, 9)}}.Bounds()
		if !ok {
			t.Fatal("expected bounds")
		}
		if r.X != 7 || r.Y != 9 || r.Width != 0 || r.Height != 0 {
			t.Errorf("unexpected bounds %+v", r)
		}
	})
}

// TestFontMaster tests master lookup.
func TestFontMaster(t *testing.T) {
	t.Parallel()

	f := &Font{Masters: []Master{{ID: "m01", Name: "Regular"}, {ID: "m02", Name: "Bold"}}}

	if m, ok := f.Master("m02"); !ok || m.Name != "Bold" {
		t.Errorf("expected lookup by ID, got %+v %v", m, ok)
	}
	if m, ok := f.Master("Regular"); !ok || m.ID != "m01" {
		t.Errorf("expected lookup by name, got %+v %v", m, ok)
	}
	if _, ok := f.Master("Light"); ok {
		t.Error("expected missing master")
	}
	if m, ok := f.DefaultMaster(); !ok || m.ID != "m01" {
		t.Errorf("expected first master as default, got %+v", m)
	}
}
