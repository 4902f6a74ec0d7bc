package model

import (
	"math"
	"sort"

	"github.com/nao1215/glyphcheck/internal/outline"
)

// GroupBySize buckets every glyph of the font by the rounded width and
// height of its layer in the given master. Glyphs without outline (or
// without a layer in that master) fall into size 0. Names within a bucket
// are sorted.
//
// Rounding is half-to-even so that x.5 sizes land in the same bucket the
// font editor's scripting environment puts them in.
func GroupBySize(font *outline.Font, masterID string) (widths, heights map[int][]string) {
	widths = make(map[int][]string)
	heights = make(map[int][]string)
	if font == nil {
		return widths, heights
	}

	for _, g := range font.Glyphs {
		w, h := 0, 0
		if layer, ok := g.Layer(masterID); ok {
			if b, ok := layer.Bounds(); ok {
				w = int(math.RoundToEven(b.Width))
				h = int(math.RoundToEven(b.Height))
			}
		}
		widths[w] = append(widths[w], g.Name)
		heights[h] = append(heights[h], g.Name)
	}

	for _, groups := range []map[int][]string{widths, heights} {
		for _, names := range groups {
			sort.Strings(names)
		}
	}
	return widths, heights
}

// SortedSizes returns the keys of a size grouping in ascending order.
func SortedSizes(groups map[int][]string) []int {
	sizes := make([]int, 0, len(groups))
	for s := range groups {
		sizes = append(sizes, s)
	}
	sort.Ints(sizes)
	return sizes
}
