// Package database provides SQLite-based storage for glyphcheck run history.
//
// This package implements the HistoryDB, which stores:
//   - Complete check reports as JSON, one row per run
//   - Every recorded issue of a run, one row per glyph issue
//
// Design decision: We use SQLite (via modernc.org/sqlite) because the
// history is a single local file, the driver is CGO-free, and the compare
// command only needs simple indexed lookups by source and time.
package database
