// Package pipeline runs a glyph check as a sequence of steps.
//
// A check run loads a font source, validates its preconditions, runs the
// detectors on every glyph and groups glyphs by size. Each stage is a Step
// that receives the current report and fills it in.
//
// Design decision: We use a pipeline pattern instead of direct function calls
// because:
// 1. Precondition failures stop the run before any analysis, in one place
// 2. It provides consistent error handling and logging across steps
// 3. It supports cancellation via context between steps
//
// Several independent sources can be checked concurrently with a
// BatchProcessor. Runs never share mutable state.
package pipeline
