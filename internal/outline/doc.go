// Package outline defines the read-only outline data model inspected by
// glyphcheck.
//
// The model mirrors what a font editor exposes for one glyph layer:
//   - Point: a coordinate tagged on-curve or off-curve
//   - Path: an ordered, open or closed sequence of points
//   - Segment: the line or curve run between two consecutive on-curve points
//   - Anchor: a named position attached to a layer
//   - Hint: an annotation referencing points of the layer
//   - Layer, Glyph, Master and Font: the containers around them
//
// Design decision: every type is a plain value. A Font is loaded once (see
// the source package), and the checks only read it. Nothing in this package
// keeps back-references from points to paths or from paths to layers;
// ownership is expressed through indices (PointRef) instead, so a snapshot can
// be copied freely and compared by value.
//
// Derived geometry (segments, tight bounding boxes, arc length) is computed on
// demand from the stored points, never cached on the values.
package outline
