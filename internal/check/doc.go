// Package check implements the geometric integrity checks run on glyph
// outlines.
//
// # Purpose
//
// This package inspects one glyph layer at a time and reports structural
// anomalies that usually indicate drawing mistakes. It never modifies the
// outline it reads.
//
// # Design Philosophy
//
// Each check is a separate Detector, coordinated by an Analyzer. This design
// was chosen because:
//  1. Each check has its own thresholds and edge cases
//  2. Detectors can be tested in isolation, with relaxation on and off
//  3. New checks can be registered without touching existing ones
//
// All tunables live in one Options value passed to NewAnalyzer. Detectors copy
// only the fields they need when constructed.
//
// # Detectors
//
// In the order they run:
//   - small segments: bounding box between 1 and 9 units in either dimension
//   - suspicious lengths: segment length 1 to 3 units away from a target
//   - close nodes: on-curve points less than 9 units apart
//   - collinear nodes: middle point of a straight run between two lines
//   - open paths: paths that do not close, with their endpoints
//   - isolated nodes and anchors: single-point paths and stray anchors
//
// # Relaxation
//
// With Options.Relaxed set, the detectors drop known false positives:
// coincident nodes of two closed paths stitched along a shared edge, points
// pinned by segment-component hints, standard mark-attachment anchors, and
// glyphs whose curve lengths are known to measure unreliably. Relaxation can
// hide real problems; it trades false positives for false negatives.
//
// # Usage
//
//	analyzer, err := check.NewAnalyzer(check.DefaultOptions())
//	if err != nil {
//		return err
//	}
//	issues := analyzer.AnalyzeLayer("A", layer)
package check
