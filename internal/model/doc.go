// Package model defines the result data structures shared across glyphcheck.
//
// This package contains the following main types:
//   - Category: the six kinds of outline problems glyphcheck reports
//   - Issue: one detected problem (category plus human-readable message)
//   - GlyphReport: the ordered issues of one glyph
//   - CheckReport: the result of one run over a font (counts, per-glyph
//     issues, size groupings)
//   - Comparison: the difference between two runs over the same source
//
// Design decision: We separate models into their own package to avoid circular
// dependencies. The check, pipeline, report and database packages all need
// these types, so centralizing them prevents import cycles.
//
// The models are designed to be serializable to JSON for report output and
// database storage.
package model
