package pipeline

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/nao1215/glyphcheck/internal/model"
)

// DefaultConcurrency is the number of sources checked at once when
// WithConcurrency is not given.
const DefaultConcurrency = 4

// BatchProcessor checks several font sources concurrently, one fresh
// pipeline per source.
//
// Design decision: Batching lives outside Pipeline because:
//  1. A Pipeline describes the run over one font and nothing more
//  2. Every source gets its own pipeline and report, so runs share no state
type BatchProcessor struct {
	newPipeline func() *Pipeline
	concurrency int
	logger      *slog.Logger
}

// BatchOption configures a BatchProcessor.
type BatchOption func(*BatchProcessor)

// WithBatchLogger sets the logger for batch progress.
func WithBatchLogger(logger *slog.Logger) BatchOption {
	return func(b *BatchProcessor) {
		b.logger = logger
	}
}

// WithConcurrency limits how many sources are checked at once.
// Non-positive values keep the default.
func WithConcurrency(n int) BatchOption {
	return func(b *BatchProcessor) {
		if n > 0 {
			b.concurrency = n
		}
	}
}

// NewBatchProcessor creates a BatchProcessor. newPipeline is called once
// per source.
func NewBatchProcessor(newPipeline func() *Pipeline, opts ...BatchOption) *BatchProcessor {
	bp := &BatchProcessor{
		newPipeline: newPipeline,
		concurrency: DefaultConcurrency,
	}
	for _, opt := range opts {
		opt(bp)
	}
	if bp.logger == nil {
		bp.logger = slog.Default()
	}
	return bp
}

// ProcessBatch checks every source and returns the reports in input order.
//
// A source whose run failed still has a report, carrying the error. A
// source that never started because the batch was cancelled has a nil
// report. The returned error is only set on cancellation.
func (bp *BatchProcessor) ProcessBatch(ctx context.Context, sources []string) ([]*model.CheckReport, error) {
	bp.logger.Info("starting batch", "sources", len(sources), "concurrency", bp.concurrency)
	start := time.Now()

	reports := make([]*model.CheckReport, len(sources))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(bp.concurrency)
	for i, src := range sources {
		i, src := i, src
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			// Each goroutine owns reports[i] only.
			reports[i] = bp.check(ctx, src, i, len(sources))
			return nil
		})
	}
	err := g.Wait()

	bp.logger.Info("batch finished", "sources", len(sources), "elapsed", time.Since(start))
	return reports, err
}

// check runs one source. Failures stay in the report so that the other
// sources keep going.
func (bp *BatchProcessor) check(ctx context.Context, src string, index, total int) *model.CheckReport {
	bp.logger.Info("checking source", "source", src, "index", index+1, "total", total)

	report := model.NewCheckReport(src)
	if err := bp.newPipeline().Execute(ctx, report); err != nil {
		bp.logger.Warn("check failed", "source", src, "error", err)
		return report
	}

	bp.logger.Info("check completed", "source", src, "issues", report.TotalIssues())
	return report
}
