package check

import (
	"math"

	"golang.org/x/text/cases"

	"github.com/nao1215/glyphcheck/internal/model"
	"github.com/nao1215/glyphcheck/internal/outline"
)

// SuspiciousLengthDetector flags segments whose length misses a meaningful
// design length by a small margin, which usually means a node was nudged.
type SuspiciousLengthDetector struct {
	targets      []float64
	tolMin       float64
	tolMax       float64
	exact        float64
	relaxed      bool
	skipGlyphSet map[string]struct{}
}

// NewSuspiciousLengthDetector creates a SuspiciousLengthDetector.
// Denylisted glyph names are stored case-folded.
func NewSuspiciousLengthDetector(opts Options) *SuspiciousLengthDetector {
	caser := cases.Fold()
	skip := make(map[string]struct{}, len(opts.LengthGlyphDenylist))
	for _, name := range opts.LengthGlyphDenylist {
		skip[caser.String(name)] = struct{}{}
	}

	targets := make([]float64, len(opts.LengthTargets))
	copy(targets, opts.LengthTargets)

	return &SuspiciousLengthDetector{
		targets:      targets,
		tolMin:       opts.LengthToleranceMin,
		tolMax:       opts.LengthToleranceMax,
		exact:        opts.ExactLengthTolerance,
		relaxed:      opts.Relaxed,
		skipGlyphSet: skip,
	}
}

// Name returns the detector name.
func (d *SuspiciousLengthDetector) Name() string {
	return "suspicious-length"
}

// Category returns the detector category.
func (d *SuspiciousLengthDetector) Category() model.Category {
	return model.CategorySuspiciousLength
}

// Detect checks the length of every segment against the targets, in target
// order. At most one issue is reported per segment.
func (d *SuspiciousLengthDetector) Detect(glyph string, layer outline.Layer) []model.Issue {
	if d.relaxed && d.skipGlyph(glyph) {
		return nil
	}

	var issues []model.Issue
	for _, path := range layer.Paths {
		for _, seg := range path.Segments() {
			length, ok := seg.Length()
			if !ok {
				continue
			}
			target, found := d.match(length)
			if !found {
				continue
			}
			tail := "length ~" + FormatTenths(length) + " (near " + FormatCoord(target) + ")"
			if start, _, ok := seg.Endpoints(); ok {
				issues = append(issues, model.NewIssue(d.Category(), "Segment at "+formatPoint(start)+" "+tail))
				continue
			}
			issues = append(issues, model.NewIssue(d.Category(), "Segment "+tail))
		}
	}
	return issues
}

// match returns the first target the length is suspiciously close to.
func (d *SuspiciousLengthDetector) match(length float64) (float64, bool) {
	for _, t := range d.targets {
		diff := math.Abs(length - t)
		if diff < d.tolMin || diff > d.tolMax {
			continue
		}
		if d.relaxed && diff < d.exact {
			continue
		}
		return t, true
	}
	return 0, false
}

func (d *SuspiciousLengthDetector) skipGlyph(name string) bool {
	if len(d.skipGlyphSet) == 0 {
		return false
	}
	// A Caser is stateful, so each call gets its own.
	_, ok := d.skipGlyphSet[cases.Fold().String(name)]
	return ok
}
