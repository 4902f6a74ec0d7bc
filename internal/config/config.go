package config

import (
	"fmt"
	"path/filepath"

	"github.com/adrg/xdg"

	"github.com/nao1215/glyphcheck/internal/check"
	"github.com/nao1215/glyphcheck/internal/outline"
)

// Default configuration values.
const (
	// DefaultBatchSize checks one source at a time. Fonts are CPU bound and
	// small enough that sequential runs keep the output ordered and readable.
	DefaultBatchSize = 1

	// AppName is the application name used for XDG directory paths.
	AppName = "glyphcheck"
)

// Config holds all configuration options for a check run.
// This struct is populated from CLI flags and passed through the
// application rather than kept in global state.
//
// Design decision: We use a single flat struct instead of nested structs.
// Detector tuning lives in the rules file (see File), so the flag surface
// stays small.
type Config struct {
	// Sources are the font or snapshot files to check.
	Sources []string

	// Master is the master ID or name to check. Empty selects the first
	// master of each font.
	Master string

	// Profile forces a rules profile. Empty picks the profile whose key
	// matches the selected master's ID or name, if any.
	Profile string

	// ConfigFilePath is the path to the rules file.
	// If empty, FindConfigFile searches the default locations.
	ConfigFilePath string

	// Rules holds the rules file loaded from ConfigFilePath, if any.
	Rules *File

	// Strict disables the false-positive relaxations.
	Strict bool

	// LengthTargets overrides the suspicious-length targets when non-empty.
	LengthTargets []float64

	// Verbose enables detailed log output using slog.LevelDebug.
	Verbose bool

	// BatchSize is the number of sources checked concurrently.
	BatchSize int

	// JSONReport selects JSON output. Mutually exclusive with MarkdownReport.
	JSONReport bool

	// MarkdownReport selects Markdown output. Mutually exclusive with JSONReport.
	MarkdownReport bool

	// IssuesOnly omits glyphs without issues from the text report.
	IssuesOnly bool

	// ReportFile is the output file path for the report.
	// When set, the report is written to this file instead of stdout.
	ReportFile string

	// Tee also writes the report to stdout when ReportFile is set.
	Tee bool

	// DBDir is the directory of the run history database.
	// Defaults to the XDG data directory (~/.local/share/glyphcheck on Linux).
	DBDir string

	// SaveToDB stores every finished run in the history database.
	SaveToDB bool

	// FailOnIssues makes the check command exit non-zero when any issue
	// is reported.
	FailOnIssues bool
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		BatchSize: DefaultBatchSize,
		DBDir:     XDGDataDir(),
		SaveToDB:  true,
	}
}

// XDGDataDir returns the XDG data directory for glyphcheck.
// On Linux: ~/.local/share/glyphcheck
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for glyphcheck.
// On Linux: ~/.config/glyphcheck
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks if the configuration is valid.
// It returns the first problem found.
func (c *Config) Validate() error {
	if len(c.Sources) == 0 {
		return ErrNoSource
	}
	if c.BatchSize <= 0 {
		return ErrInvalidBatchSize
	}
	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}
	for _, t := range c.LengthTargets {
		if t < 0 {
			return ErrInvalidLengthTarget
		}
	}
	if c.Profile != "" {
		if c.Rules == nil {
			return fmt.Errorf("%w: %q (no rules file loaded)", ErrUnknownProfile, c.Profile)
		}
		if _, ok := c.Rules.Profiles[c.Profile]; !ok {
			return fmt.Errorf("%w: %q", ErrUnknownProfile, c.Profile)
		}
	}
	return nil
}

// CheckOptions resolves the detector options for a master. The layers
// are applied in order: built-in defaults, the rules file defaults, the
// profile (forced by Profile or matched by master ID or name), then the
// --strict and --targets flags.
func (c *Config) CheckOptions(master outline.Master) (check.Options, error) {
	opts := check.DefaultOptions()

	if c.Rules != nil {
		profile := c.Profile
		if profile == "" {
			profile, _ = c.Rules.LookupProfile(master)
		} else if _, ok := c.Rules.Profiles[profile]; !ok {
			return check.Options{}, fmt.Errorf("%w: %q", ErrUnknownProfile, profile)
		}
		opts = c.Rules.GetProfile(profile).ApplyTo(opts)
	}

	if c.Strict {
		opts.Relaxed = false
	}
	if len(c.LengthTargets) > 0 {
		opts.LengthTargets = append([]float64(nil), c.LengthTargets...)
	}

	if err := opts.Validate(); err != nil {
		return check.Options{}, fmt.Errorf("invalid rules for master %q: %w", master.ID, err)
	}
	return opts, nil
}
