package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/nao1215/glyphcheck/internal/check"
	"github.com/nao1215/glyphcheck/internal/model"
	"github.com/nao1215/glyphcheck/internal/outline"
	"github.com/nao1215/glyphcheck/internal/source"
)

// LoadFunc reads the font behind a source identifier.
type LoadFunc func(ctx context.Context, src string) (*outline.Font, error)

// OptionsFunc returns the check options to use for the selected master.
// It lets per-master profiles be chosen after the font is loaded.
type OptionsFunc func(master outline.Master) (check.Options, error)

// StaticOptions returns an OptionsFunc that ignores the master.
func StaticOptions(opts check.Options) OptionsFunc {
	return func(outline.Master) (check.Options, error) {
		return opts, nil
	}
}

// LoadStep reads the font source into the report.
type LoadStep struct {
	load   LoadFunc
	logger *slog.Logger
}

// NewLoadStep creates a LoadStep. A nil load function reads files with
// source.LoadFile.
func NewLoadStep(load LoadFunc, logger *slog.Logger) *LoadStep {
	if load == nil {
		load = source.LoadFile
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &LoadStep{load: load, logger: logger}
}

// Name returns the step name.
func (s *LoadStep) Name() string {
	return "load"
}

// Do executes the load step.
func (s *LoadStep) Do(ctx context.Context, report *model.CheckReport) error {
	font, err := s.load(ctx, report.Source)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrNoFont, err)
	}
	if font == nil {
		return ErrNoFont
	}

	report.Font = font
	report.FamilyName = font.FamilyName

	s.logger.Debug("font loaded",
		"source", report.Source,
		"family", font.FamilyName,
		"masters", len(font.Masters),
		"glyphs", len(font.Glyphs),
	)
	return nil
}

// ValidateStep selects the master and checks that every glyph can be
// analyzed in it. No analysis runs unless this step succeeds.
type ValidateStep struct {
	// master is the requested master ID or name; empty selects the first.
	master string
}

// NewValidateStep creates a ValidateStep.
func NewValidateStep(master string) *ValidateStep {
	return &ValidateStep{master: master}
}

// Name returns the step name.
func (s *ValidateStep) Name() string {
	return "validate"
}

// Do executes the validate step.
func (s *ValidateStep) Do(_ context.Context, report *model.CheckReport) error {
	font := report.Font
	if font == nil {
		return ErrNoFont
	}

	var (
		master outline.Master
		ok     bool
	)
	if s.master == "" {
		master, ok = font.DefaultMaster()
	} else {
		master, ok = font.Master(s.master)
	}
	if !ok {
		if s.master == "" {
			return fmt.Errorf("%w: font has no masters", ErrNoMaster)
		}
		return fmt.Errorf("%w: %q", ErrNoMaster, s.master)
	}

	for _, g := range font.Glyphs {
		if _, ok := g.Layer(master.ID); !ok {
			return fmt.Errorf("%w: glyph %q", ErrMissingLayer, g.Name)
		}
	}

	report.MasterID = master.ID
	report.MasterName = master.Name
	return nil
}

// AnalyzeStep runs the detectors on every glyph of the selected master and
// folds the results into the report in font order.
type AnalyzeStep struct {
	options OptionsFunc
	logger  *slog.Logger
}

// NewAnalyzeStep creates an AnalyzeStep.
func NewAnalyzeStep(options OptionsFunc, logger *slog.Logger) *AnalyzeStep {
	if options == nil {
		options = StaticOptions(check.DefaultOptions())
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &AnalyzeStep{options: options, logger: logger}
}

// Name returns the step name.
func (s *AnalyzeStep) Name() string {
	return "analyze"
}

// Do executes the analyze step.
func (s *AnalyzeStep) Do(ctx context.Context, report *model.CheckReport) error {
	font := report.Font
	if font == nil {
		return ErrNoFont
	}
	master, ok := font.Master(report.MasterID)
	if !ok {
		return fmt.Errorf("%w: %q", ErrNoMaster, report.MasterID)
	}

	opts, err := s.options(master)
	if err != nil {
		return fmt.Errorf("failed to resolve check options: %w", err)
	}
	analyzer, err := check.NewAnalyzer(opts)
	if err != nil {
		return fmt.Errorf("invalid check options: %w", err)
	}

	report.Relaxed = opts.Relaxed
	report.LengthTargets = append([]float64(nil), opts.LengthTargets...)

	for _, g := range font.Glyphs {
		layer, ok := g.Layer(master.ID)
		if !ok {
			return fmt.Errorf("%w: glyph %q", ErrMissingLayer, g.Name)
		}
		issues := analyzer.AnalyzeLayer(g.Name, layer)
		report.AddGlyph(g.Name, issues)

		if len(issues) > 0 && s.logger.Enabled(ctx, slog.LevelDebug) {
			b, _ := layer.Bounds()
			s.logger.DebugContext(ctx, "glyph has issues",
				"glyph", g.Name,
				"issues", len(issues),
				"width", b.Width,
				"height", b.Height,
			)
		}
	}
	return nil
}

// GroupStep buckets the glyphs by rounded outline width and height.
type GroupStep struct{}

// NewGroupStep creates a GroupStep.
func NewGroupStep() *GroupStep {
	return &GroupStep{}
}

// Name returns the step name.
func (s *GroupStep) Name() string {
	return "group"
}

// Do executes the group step.
func (s *GroupStep) Do(_ context.Context, report *model.CheckReport) error {
	if report.Font == nil {
		return ErrNoFont
	}
	report.WidthGroups, report.HeightGroups = model.GroupBySize(report.Font, report.MasterID)
	return nil
}

// DefaultPipelineConfig holds configuration for the default pipeline.
type DefaultPipelineConfig struct {
	// Master is the master ID or name to check; empty selects the first.
	Master string

	// Load reads the font source. Nil uses source.LoadFile.
	Load LoadFunc

	// Options returns the check options for the selected master.
	Options OptionsFunc
}

// DefaultPipelineOption configures a DefaultPipelineConfig.
type DefaultPipelineOption func(*DefaultPipelineConfig)

// WithPipelineMaster selects the master to check.
func WithPipelineMaster(master string) DefaultPipelineOption {
	return func(c *DefaultPipelineConfig) {
		c.Master = master
	}
}

// WithPipelineLoader sets the function used to read sources.
func WithPipelineLoader(load LoadFunc) DefaultPipelineOption {
	return func(c *DefaultPipelineConfig) {
		c.Load = load
	}
}

// WithPipelineOptions sets how check options are chosen per master.
func WithPipelineOptions(options OptionsFunc) DefaultPipelineOption {
	return func(c *DefaultPipelineConfig) {
		c.Options = options
	}
}

// DefaultPipeline creates a pipeline with all default steps configured:
// load, validate, analyze and group.
//
// The first parameter accepts pipeline options (WithLogger, etc).
// The variadic parameters configure the steps (WithPipelineMaster, etc).
func DefaultPipeline(pipelineOpts []Option, configOpts ...DefaultPipelineOption) *Pipeline {
	p := New(pipelineOpts...)

	cfg := &DefaultPipelineConfig{
		Options: StaticOptions(check.DefaultOptions()),
	}
	for _, opt := range configOpts {
		opt(cfg)
	}

	p.AddSteps(
		NewLoadStep(cfg.Load, p.logger),
		NewValidateStep(cfg.Master),
		NewAnalyzeStep(cfg.Options, p.logger),
		NewGroupStep(),
	)

	return p
}
