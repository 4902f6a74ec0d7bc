package check

import (
	"math"
	"strconv"
	"strings"

	"github.com/nao1215/glyphcheck/internal/outline"
)

// FormatCoord renders a coordinate as an integer when it is within 0.001 of
// one, and rounded to two decimals otherwise.
func FormatCoord(v float64) string {
	r := math.Round(v)
	if math.Abs(v-r) < 0.001 {
		return strconv.FormatInt(int64(r), 10)
	}
	rounded := math.Round(v*100) / 100
	if rounded == 0 {
		rounded = 0 // drop the sign of -0
	}
	return strconv.FormatFloat(rounded, 'f', -1, 64)
}

// FormatTenths renders a value rounded to one decimal, always showing the
// decimal digit (4 → "4.0").
func FormatTenths(v float64) string {
	rounded := math.Round(v*10) / 10
	if rounded == 0 {
		rounded = 0
	}
	s := strconv.FormatFloat(rounded, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eIN") {
		s += ".0"
	}
	return s
}

// formatXY renders a coordinate pair as "(x, y)".
func formatXY(x, y float64) string {
	return "(" + FormatCoord(x) + ", " + FormatCoord(y) + ")"
}

// formatPoint renders a point as "(x, y)".
func formatPoint(p outline.Point) string {
	return formatXY(p.X, p.Y)
}
