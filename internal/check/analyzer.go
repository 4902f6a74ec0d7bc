package check

import (
	"github.com/nao1215/glyphcheck/internal/model"
	"github.com/nao1215/glyphcheck/internal/outline"
)

// Analyzer coordinates the detectors over a glyph layer.
// It concatenates the issues of every detector, in registration order, into
// one result per glyph.
//
// Design decision: The analyzer returns a value per glyph rather than
// updating shared counters because:
//  1. AnalyzeLayer stays a pure function of options, glyph name, and layer
//  2. The caller folds results into a report in glyph order
//  3. Running the same glyph twice always yields the same issues
type Analyzer struct {
	// detectors is the list of registered detectors to run.
	detectors []Detector

	// options is the validated configuration the detectors were built from.
	options Options
}

// Detector defines the interface for individual checks.
// Each detector reports exactly one issue category.
//
// Design decision: We use an interface rather than a fixed list of functions
// because:
//  1. Allows registering additional checks without changing the analyzer
//  2. Enables testing a single check in isolation
//  3. Each detector carries only the thresholds it uses
type Detector interface {
	// Name returns the detector's name for logging.
	Name() string

	// Category returns the issue category the detector reports.
	Category() model.Category

	// Detect inspects one layer and returns the issues it found, in a
	// deterministic order. Detectors never fail: unusable data is skipped.
	Detect(glyph string, layer outline.Layer) []model.Issue
}

// NewAnalyzer creates an Analyzer with all built-in detectors registered in
// report order.
func NewAnalyzer(opts Options) (*Analyzer, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	a := &Analyzer{
		options:   opts,
		detectors: make([]Detector, 0, 6),
	}
	a.Register(NewSmallSegmentDetector(opts))
	a.Register(NewSuspiciousLengthDetector(opts))
	a.Register(NewCloseNodeDetector(opts))
	a.Register(NewCollinearDetector(opts))
	a.Register(NewOpenPathDetector(opts))
	a.Register(NewIsolatedDetector(opts))
	return a, nil
}

// Register adds a detector after the existing ones.
func (a *Analyzer) Register(d Detector) {
	a.detectors = append(a.detectors, d)
}

// Detectors returns the registered detectors in run order.
func (a *Analyzer) Detectors() []Detector {
	out := make([]Detector, len(a.detectors))
	copy(out, a.detectors)
	return out
}

// Options returns the options the analyzer was created with.
func (a *Analyzer) Options() Options {
	return a.options
}

// AnalyzeLayer runs every detector on the layer and returns all issues.
// The result is empty (not nil) for a clean glyph.
func (a *Analyzer) AnalyzeLayer(glyph string, layer outline.Layer) []model.Issue {
	issues := make([]model.Issue, 0)
	for _, d := range a.detectors {
		issues = append(issues, d.Detect(glyph, layer)...)
	}
	return issues
}
