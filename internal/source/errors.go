package source

import "errors"

// Source errors.
var (
	// ErrUnsupportedFormat is returned when the file extension is not a
	// known font or snapshot format.
	ErrUnsupportedFormat = errors.New("unsupported source format")

	// ErrEmptyFont is returned when a source contains no glyphs.
	ErrEmptyFont = errors.New("font contains no glyphs")

	// ErrInvalidNode is returned when a snapshot node is malformed.
	ErrInvalidNode = errors.New("invalid node")

	// ErrInvalidHint is returned when a snapshot hint is malformed.
	ErrInvalidHint = errors.New("invalid hint")
)
