// Package log provides the application's slog setup.
//
// The CoordHandler wraps any slog.Handler and renders float attributes that
// hold geometry (coordinates, sizes, lengths, distances) the same way the
// check reports do, so that a log line can be matched against a report
// message by eye.
//
// # Usage
//
//	logger := log.NewLogger(os.Stderr, verbose) // Warn, or Debug when verbose
//	slog.SetDefault(logger)
//
//	logger.Debug("glyph has issues", "glyph", "A", "width", 512.00004)
//	// ... glyph=A width=512
package log
