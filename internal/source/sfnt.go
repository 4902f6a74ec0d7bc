package source

import (
	"context"
	"errors"
	"fmt"
	"math"

	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"github.com/nao1215/glyphcheck/internal/outline"
)

// DefaultMasterID is the master ID given to the single master of a binary
// font.
const DefaultMasterID = "default"

// ParseSFNT converts an OpenType or TrueType binary into an outline snapshot
// in font units, with the y axis pointing up.
//
// Glyphs that cannot be loaded as outlines (color or bitmap glyphs) get an
// empty layer. Glyphs without a PostScript name are named "gidN".
func ParseSFNT(ctx context.Context, data []byte) (*outline.Font, error) {
	f, err := sfnt.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}

	n := f.NumGlyphs()
	if n == 0 {
		return nil, ErrEmptyFont
	}

	var buf sfnt.Buffer

	family, _ := f.Name(&buf, sfnt.NameIDFamily)
	style, _ := f.Name(&buf, sfnt.NameIDSubfamily)
	if style == "" {
		style = "Regular"
	}

	// With ppem equal to unitsPerEm, one pixel is one font unit.
	ppem := fixed.Int26_6(f.UnitsPerEm()) << 6

	font := &outline.Font{
		FamilyName: family,
		Masters:    []outline.Master{{ID: DefaultMasterID, Name: style}},
		Glyphs:     make([]outline.Glyph, 0, n),
	}

	seen := make(map[string]bool, n)
	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		gi := sfnt.GlyphIndex(i)
		name, err := f.GlyphName(&buf, gi)
		if err != nil || name == "" || seen[name] {
			name = fmt.Sprintf("gid%d", i)
		}
		seen[name] = true

		var layer outline.Layer
		segments, err := f.LoadGlyph(&buf, gi, ppem, nil)
		switch {
		case err == nil:
			layer.Paths = pathsFromSegments(segments)
		case errors.Is(err, sfnt.ErrColoredGlyph), errors.Is(err, sfnt.ErrNotFound):
		default:
			return nil, fmt.Errorf("failed to load glyph %s: %w", name, err)
		}

		font.Glyphs = append(font.Glyphs, outline.Glyph{
			Name:   name,
			Layers: map[string]outline.Layer{DefaultMasterID: layer},
		})
	}

	return font, nil
}

// pathsFromSegments converts sfnt segments to closed paths. Each MoveTo
// starts a new contour. The y axis is flipped back to font orientation.
//
// The TrueType iterator splits every spline at its implied on-curve
// points. Those points are dropped again, so consecutive QuadTo segments
// become one spline run with several controls, as drawn in the font.
func pathsFromSegments(segments sfnt.Segments) []outline.Path {
	var (
		paths     []outline.Path
		current   outline.Path
		afterQuad bool
	)

	flush := func() {
		if len(current.Points) == 0 {
			return
		}
		current.Closed = true
		current.Points = dropImpliedStart(dropClosingPoint(current.Points))
		paths = append(paths, current)
		current = outline.Path{}
	}

	for _, seg := range segments {
		switch seg.Op {
		case sfnt.SegmentOpMoveTo:
			flush()
			current.Points = append(current.Points, onCurve(seg.Args[0]))
		case sfnt.SegmentOpLineTo:
			current.Points = append(current.Points, onCurve(seg.Args[0]))
		case sfnt.SegmentOpQuadTo:
			current.Quadratic = true
			ctrl := offCurve(seg.Args[0])
			if n := len(current.Points); afterQuad && n >= 2 &&
				isImplied(current.Points[n-1], current.Points[n-2], ctrl) {
				current.Points = current.Points[:n-1]
			}
			current.Points = append(current.Points, ctrl, onCurve(seg.Args[1]))
		case sfnt.SegmentOpCubeTo:
			current.Points = append(current.Points,
				offCurve(seg.Args[0]), offCurve(seg.Args[1]), onCurve(seg.Args[2]))
		}
		afterQuad = seg.Op == sfnt.SegmentOpQuadTo
	}
	flush()

	return paths
}

// impliedTolerance absorbs the truncation of the iterator's integer
// midpoint when the two controls are an odd number of units apart.
const impliedTolerance = 0.5 + 1e-9

// isImplied reports whether on lies halfway between the off-curve points
// a and b.
func isImplied(on, a, b outline.Point) bool {
	if !on.OnCurve || a.OnCurve || b.OnCurve {
		return false
	}
	return math.Abs(on.X-(a.X+b.X)/2) <= impliedTolerance &&
		math.Abs(on.Y-(a.Y+b.Y)/2) <= impliedTolerance
}

// dropImpliedStart removes the first point of a closed quadratic contour
// when it is only the implied midpoint between the last and second
// points, and rotates the contour to start at its first real on-curve
// point. A contour without another on-curve point keeps it.
func dropImpliedStart(pts []outline.Point) []outline.Point {
	n := len(pts)
	if n < 3 || !isImplied(pts[0], pts[n-1], pts[1]) {
		return pts
	}
	k := 1
	for k < n && !pts[k].OnCurve {
		k++
	}
	if k == n {
		return pts
	}
	out := make([]outline.Point, 0, n-1)
	out = append(out, pts[k:]...)
	return append(out, pts[1:k]...)
}

// dropClosingPoint removes the final on-curve point when it repeats the
// first one. A closed path connects back to its start implicitly.
func dropClosingPoint(pts []outline.Point) []outline.Point {
	if len(pts) < 2 {
		return pts
	}
	first, last := pts[0], pts[len(pts)-1]
	if last.OnCurve && last.X == first.X && last.Y == first.Y {
		return pts[:len(pts)-1]
	}
	return pts
}

func onCurve(p fixed.Point26_6) outline.Point {
	return outline.On(float64(p.X)/64, -float64(p.Y)/64)
}

func offCurve(p fixed.Point26_6) outline.Point {
	return outline.Off(float64(p.X)/64, -float64(p.Y)/64)
}
