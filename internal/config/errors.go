package config

import "errors"

// Errors returned by Config.Validate and Config.CheckOptions. They are
// sentinels so that the commands and tests can match them with errors.Is,
// wrapped with the offending value where there is one.
var (
	// ErrNoSource is returned when no font or snapshot path is given.
	ErrNoSource = errors.New("no source specified: provide at least one font or snapshot file")

	// ErrInvalidBatchSize is returned when the batch size is not positive.
	ErrInvalidBatchSize = errors.New("invalid batch size: must be positive")

	// ErrConflictingReportFormats is returned when both --json and --markdown
	// are specified. Only one output format can be used at a time.
	ErrConflictingReportFormats = errors.New("conflicting report formats: --json and --markdown cannot be used together")

	// ErrInvalidLengthTarget is returned when a --targets value is negative.
	ErrInvalidLengthTarget = errors.New("invalid length target: must be non-negative")

	// ErrUnknownProfile is returned when --profile names a profile the
	// rules file does not define.
	ErrUnknownProfile = errors.New("unknown rules profile")
)
