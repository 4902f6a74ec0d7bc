package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/nao1215/glyphcheck/internal/model"
)

// Step is one stage of a check run. Each stage reads what earlier stages
// stored in the report (the decoded font, the selected master) and adds
// its own results.
//
// Design decision: Stages are values with a Name rather than bare functions
// because:
//  1. A stage holds its own settings (master key, options resolver, loader)
//  2. The name ends up in the logs and in CheckReport.PerformedSteps
type Step interface {
	// Do runs the stage on the report. It must not start when ctx is done.
	Do(ctx context.Context, report *model.CheckReport) error

	// Name identifies the stage in logs and reports.
	Name() string
}

// Pipeline runs its steps in the order they were added.
type Pipeline struct {
	steps  []Step
	logger *slog.Logger

	// continueOnError keeps later steps running after one fails. The
	// failure stays recorded in the report either way.
	continueOnError bool
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets the logger for step progress. slog.Default() is used
// when none is given.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// WithContinueOnError keeps running after a failed step.
//
// The built-in steps refuse to run on a report without a font, so a failed
// load still ends the run; this only matters for custom steps.
func WithContinueOnError(continueOnError bool) Option {
	return func(p *Pipeline) {
		p.continueOnError = continueOnError
	}
}

// New returns an empty Pipeline.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{}
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		p.logger = slog.Default()
	}
	return p
}

// AddStep appends one step.
func (p *Pipeline) AddStep(step Step) {
	p.steps = append(p.steps, step)
}

// AddSteps appends steps in argument order.
func (p *Pipeline) AddSteps(steps ...Step) {
	p.steps = append(p.steps, steps...)
}

// Execute runs the steps on report.
//
// Cancellation is checked between steps only. Analysis of a master is one
// deterministic pass, and a report never holds half a font: once the
// analyze step starts it finishes.
//
// A failed step is recorded in report.Error and report.ErrorMessage. The
// error is returned unless the pipeline continues on error, in which case
// Execute returns nil after the last step.
func (p *Pipeline) Execute(ctx context.Context, report *model.CheckReport) error {
	for _, step := range p.steps {
		if err := ctx.Err(); err != nil {
			p.logger.Warn("pipeline cancelled", "step", step.Name(), "reason", err)
			report.Cancelled = true
			return err
		}

		if err := p.run(ctx, step, report); err != nil {
			report.Error = err
			report.ErrorMessage = err.Error()
			if !p.continueOnError {
				return err
			}
		}
		report.PerformedSteps = append(report.PerformedSteps, step.Name())
	}
	return nil
}

// run executes a single step and logs its outcome.
func (p *Pipeline) run(ctx context.Context, step Step, report *model.CheckReport) error {
	p.logger.Info("executing step", "step", step.Name(), "source", report.Source)

	start := time.Now()
	err := step.Do(ctx, report)
	elapsed := time.Since(start).Round(time.Microsecond)

	if err != nil {
		p.logger.Error("step failed",
			"step", step.Name(),
			"source", report.Source,
			"elapsed", elapsed,
			"error", err,
		)
		return err
	}
	p.logger.Debug("step completed", "step", step.Name(), "source", report.Source, "elapsed", elapsed)
	return nil
}

// StepCount returns the number of steps.
func (p *Pipeline) StepCount() int {
	return len(p.steps)
}

// StepNames returns the step names in run order.
func (p *Pipeline) StepNames() []string {
	names := make([]string, 0, len(p.steps))
	for _, step := range p.steps {
		names = append(names, step.Name())
	}
	return names
}
