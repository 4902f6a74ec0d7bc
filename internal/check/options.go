package check

import (
	"errors"
	"math"
)

// Default option values.
const (
	// DefaultSmallSegmentMin and DefaultSmallSegmentMax bound the bounding box
	// dimension (inclusive) that makes a segment suspiciously small.
	DefaultSmallSegmentMin = 1.0
	DefaultSmallSegmentMax = 9.0

	// DefaultLengthToleranceMin and DefaultLengthToleranceMax bound the
	// distance (inclusive) between a segment length and a target that makes
	// the length suspicious.
	DefaultLengthToleranceMin = 1.0
	DefaultLengthToleranceMax = 3.0

	// DefaultExactLengthTolerance is the distance below which, under
	// relaxation, a length counts as an intentional exact match.
	DefaultExactLengthTolerance = 1.0

	// DefaultCloseNodeDistance is the distance below which two on-curve
	// points are reported as too close.
	DefaultCloseNodeDistance = 9.0

	// DefaultCollinearEpsilon is the cross product magnitude below which
	// three points count as collinear.
	DefaultCollinearEpsilon = 1e-6
)

// DefaultLengthTargets returns the suspicious-length targets tuned for
// regular (roman) masters.
func DefaultLengthTargets() []float64 {
	return []float64{50, 60, 70, 500, 365, 440, 245, 650}
}

// BoldLengthTargets returns the suspicious-length targets tuned for bold
// masters.
func BoldLengthTargets() []float64 {
	return []float64{65, 85, 100, 110, 140, 150}
}

// DefaultAnchorDenylist returns the anchor names that are expected to float
// freely (mark attachment and cursive connection points).
func DefaultAnchorDenylist() []string {
	return []string{
		"top", "bottom", "ogonek", "center", "topleft", "topright",
		"_top", "_bottom", "origin", "start", "end", "_center",
		"_ogonek", "_topleft", "_topright", "left",
	}
}

// DefaultLengthGlyphDenylist returns glyph names whose curve lengths are
// known to measure unreliably.
func DefaultLengthGlyphDenylist() []string {
	return []string{"divide", "ringcomb"}
}

// Options configures the detectors.
type Options struct {
	// Relaxed enables suppression of known false positives.
	Relaxed bool `json:"relaxed"`

	// LengthTargets are the meaningful design lengths, checked in order.
	LengthTargets []float64 `json:"length_targets"`

	// LengthToleranceMin and LengthToleranceMax bound |length - target|.
	LengthToleranceMin float64 `json:"length_tolerance_min"`
	LengthToleranceMax float64 `json:"length_tolerance_max"`

	// ExactLengthTolerance is the |length - target| below which a relaxed
	// run treats the length as intentional.
	ExactLengthTolerance float64 `json:"exact_length_tolerance"`

	// LengthGlyphDenylist lists glyphs skipped by the length check under
	// relaxation. Names are compared case-insensitively.
	LengthGlyphDenylist []string `json:"length_glyph_denylist"`

	// SmallSegmentMin and SmallSegmentMax bound the bounding box dimension.
	SmallSegmentMin float64 `json:"small_segment_min"`
	SmallSegmentMax float64 `json:"small_segment_max"`

	// CloseNodeDistance is the minimum allowed on-curve point distance.
	CloseNodeDistance float64 `json:"close_node_distance"`

	// CollinearEpsilon is the collinearity cross product tolerance.
	CollinearEpsilon float64 `json:"collinear_epsilon"`

	// AnchorDenylist lists anchor names skipped under relaxation.
	AnchorDenylist []string `json:"anchor_denylist"`
}

// DefaultOptions returns relaxed options with the documented defaults.
func DefaultOptions() Options {
	return Options{
		Relaxed:              true,
		LengthTargets:        DefaultLengthTargets(),
		LengthToleranceMin:   DefaultLengthToleranceMin,
		LengthToleranceMax:   DefaultLengthToleranceMax,
		ExactLengthTolerance: DefaultExactLengthTolerance,
		LengthGlyphDenylist:  DefaultLengthGlyphDenylist(),
		SmallSegmentMin:      DefaultSmallSegmentMin,
		SmallSegmentMax:      DefaultSmallSegmentMax,
		CloseNodeDistance:    DefaultCloseNodeDistance,
		CollinearEpsilon:     DefaultCollinearEpsilon,
		AnchorDenylist:       DefaultAnchorDenylist(),
	}
}

// Option validation errors.
var (
	// ErrInvalidSmallSegmentRange is returned when the small-segment bounds
	// are negative or inverted.
	ErrInvalidSmallSegmentRange = errors.New("invalid small segment range: need 0 <= min <= max")

	// ErrInvalidLengthTolerance is returned when the length tolerance bounds
	// are negative or inverted.
	ErrInvalidLengthTolerance = errors.New("invalid length tolerance: need 0 <= min <= max")

	// ErrInvalidLengthTarget is returned when a length target is negative or
	// not a finite number.
	ErrInvalidLengthTarget = errors.New("invalid length target: must be a finite, non-negative number")

	// ErrInvalidCloseNodeDistance is returned when the close-node distance is
	// not positive.
	ErrInvalidCloseNodeDistance = errors.New("invalid close node distance: must be positive")

	// ErrInvalidCollinearEpsilon is returned when the collinearity tolerance
	// is negative.
	ErrInvalidCollinearEpsilon = errors.New("invalid collinear epsilon: must be non-negative")
)

// Validate checks that the options are consistent.
func (o Options) Validate() error {
	if o.SmallSegmentMin < 0 || o.SmallSegmentMin > o.SmallSegmentMax {
		return ErrInvalidSmallSegmentRange
	}
	if o.LengthToleranceMin < 0 || o.LengthToleranceMin > o.LengthToleranceMax || o.ExactLengthTolerance < 0 {
		return ErrInvalidLengthTolerance
	}
	for _, t := range o.LengthTargets {
		if t < 0 || math.IsNaN(t) || math.IsInf(t, 0) {
			return ErrInvalidLengthTarget
		}
	}
	if !(o.CloseNodeDistance > 0) {
		return ErrInvalidCloseNodeDistance
	}
	if o.CollinearEpsilon < 0 {
		return ErrInvalidCollinearEpsilon
	}
	return nil
}
