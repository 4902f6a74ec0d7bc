package pipeline

import "errors"

// Precondition errors. They stop a run before any glyph is analyzed.
var (
	// ErrNoFont is returned when no font could be obtained from the source.
	ErrNoFont = errors.New("no font available")

	// ErrNoMaster is returned when the selected master does not exist.
	ErrNoMaster = errors.New("master not found")

	// ErrMissingLayer is returned when a glyph has no layer for the selected
	// master.
	ErrMissingLayer = errors.New("glyph has no layer for the selected master")
)
