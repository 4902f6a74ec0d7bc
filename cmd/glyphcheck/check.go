package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/nao1215/glyphcheck/internal/config"
	"github.com/nao1215/glyphcheck/internal/database"
	"github.com/nao1215/glyphcheck/internal/model"
	"github.com/nao1215/glyphcheck/internal/pipeline"
	"github.com/nao1215/glyphcheck/internal/report"
)

// ErrIssuesFound is returned by the check command when --fail-on-issues
// is set and at least one issue was reported.
var ErrIssuesFound = errors.New("outline issues found")

// NewCheckCmd creates the check command.
func NewCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [font-or-snapshot]...",
		Short: "Check font outlines for geometric problems",
		Long: `Check analyzes every glyph of one master and reports:
- Small segments (bounding box 1 to 9 units)
- Segments within a few units of a meaningful design length
- Very close on-curve nodes (less than 9 units apart)
- Collinear extra points
- Open paths
- Isolated points and stray anchors

Each run is stored in the history database so that 'glyphcheck compare'
can show what changed between runs.

Examples:
  # Check the first master of a font
  glyphcheck check MySans-Regular.ttf

  # Check a named master of an outline snapshot with bold length targets
  glyphcheck check --master Bold --profile bold MySans.yaml

  # Report every candidate without relaxation
  glyphcheck check --strict MySans.yaml

  # Check several fonts, four at a time, and write JSON to a file
  glyphcheck check -b 4 --json -o report.json fonts/*.ttf

Rules file (.glyphcheck) example:
  defaults:
    closeNodeDistance: 9
  profiles:
    bold:
      lengthTargets: [65, 85, 100, 110, 140, 150]`,
		Args: cobra.ArbitraryArgs,
		RunE: runCheckCmd,
	}

	// Master and rules selection
	cmd.Flags().StringP("master", "m", "",
		"Master ID or name to check (default: first master)")
	cmd.Flags().StringP("profile", "p", "",
		"Rules profile to apply (default: profile matching the master)")
	cmd.Flags().StringP("config", "c", "",
		"Rules file path (default: .glyphcheck in current or home directory)")
	cmd.Flags().Bool("strict", false,
		"Disable false-positive relaxations")
	cmd.Flags().Float64Slice("targets", nil,
		"Suspicious length targets, comma separated (overrides the rules file)")

	// Report flags
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON report (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "M", false,
		"Output Markdown report (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "",
		"Write report to specified file path (creates directories if needed)")
	cmd.Flags().Bool("tee", false,
		"With --output, also write the report to stdout")
	cmd.Flags().Bool("issues-only", false,
		"Omit glyphs without issues from the text report")

	// Batch and history flags
	cmd.Flags().IntP("batch", "b", config.DefaultBatchSize,
		"Number of sources checked concurrently")
	cmd.Flags().Bool("no-save", false,
		"Do not store the run in the history database")
	cmd.Flags().String("db-dir", config.XDGDataDir(),
		"Directory of the history database")
	cmd.Flags().Bool("fail-on-issues", false,
		"Exit with a non-zero status when any issue is found")

	return cmd
}

// runCheckCmd executes the check command.
func runCheckCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := loggerFor(cmd)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return runCheck(ctx, cmd.OutOrStdout(), cmd.ErrOrStderr(), cfg, logger)
}

// buildConfig creates a Config from cobra command flags.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()
	flags := cmd.Flags()

	var err error
	if cfg.Master, err = flags.GetString("master"); err != nil {
		return nil, err
	}
	if cfg.Profile, err = flags.GetString("profile"); err != nil {
		return nil, err
	}
	if cfg.ConfigFilePath, err = flags.GetString("config"); err != nil {
		return nil, err
	}
	if cfg.Strict, err = flags.GetBool("strict"); err != nil {
		return nil, err
	}
	if cfg.LengthTargets, err = flags.GetFloat64Slice("targets"); err != nil {
		return nil, err
	}
	if cfg.JSONReport, err = flags.GetBool("json"); err != nil {
		return nil, err
	}
	if cfg.MarkdownReport, err = flags.GetBool("markdown"); err != nil {
		return nil, err
	}
	if cfg.ReportFile, err = flags.GetString("output"); err != nil {
		return nil, err
	}
	if cfg.Tee, err = flags.GetBool("tee"); err != nil {
		return nil, err
	}
	if cfg.IssuesOnly, err = flags.GetBool("issues-only"); err != nil {
		return nil, err
	}
	if cfg.BatchSize, err = flags.GetInt("batch"); err != nil {
		return nil, err
	}
	if cfg.DBDir, err = flags.GetString("db-dir"); err != nil {
		return nil, err
	}
	if cfg.FailOnIssues, err = flags.GetBool("fail-on-issues"); err != nil {
		return nil, err
	}
	noSave, err := flags.GetBool("no-save")
	if err != nil {
		return nil, err
	}
	cfg.SaveToDB = !noSave
	cfg.Verbose = getBoolFlag(cmd, "verbose")

	// An explicit --config must exist; a missing default file is fine.
	explicitConfigPath := cfg.ConfigFilePath != ""
	if configPath := config.FindConfigFile(cfg.ConfigFilePath); configPath != "" {
		cfg.Rules, err = config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	} else if explicitConfigPath {
		return nil, fmt.Errorf("%w: %s", config.ErrConfigNotFound, cfg.ConfigFilePath)
	}

	cfg.Sources = make([]string, len(args))
	for i, arg := range args {
		cfg.Sources[i] = normalizeSource(arg)
	}

	return cfg, nil
}

// normalizeSource turns a source path into the key runs are stored under,
// so that compare finds the history regardless of the working directory.
func normalizeSource(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.Clean(path)
	}
	return abs
}

// runCheck checks every source and writes one report per source.
func runCheck(ctx context.Context, stdout, stderr io.Writer, cfg *config.Config, logger *slog.Logger) error {
	logger.Info("starting check",
		"sources", cfg.Sources,
		"master", cfg.Master,
		"batchSize", cfg.BatchSize,
		"saveToDB", cfg.SaveToDB,
	)

	var db *database.HistoryDB
	if cfg.SaveToDB {
		var err error
		db, err = database.Open(cfg.DBDir, database.DefaultOptions())
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer db.Close()
	}

	output, closeOutput, err := openReportOutput(cfg.ReportFile, stdout)
	if err != nil {
		return err
	}
	defer closeOutput()
	writer := newReportWriter(cfg, output)
	if cfg.Tee && cfg.ReportFile != "" {
		writer = report.NewMultiWriter(writer, newReportWriter(cfg, stdout))
	}

	startTime := time.Now()
	reports, err := checkSources(ctx, cfg, logger)
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	var (
		failed, issues int
		checked        []*model.CheckReport
	)
	for _, r := range reports {
		if r == nil {
			continue
		}
		if r.Error != nil || r.Cancelled {
			failed++
			fmt.Fprintf(stderr, "Check error for %s: %s\n", r.Source, failureText(r))
			continue
		}

		issues += r.TotalIssues()
		checked = append(checked, r)
		if err := saveCheckReport(ctx, db, r, logger); err != nil {
			logger.Error("failed to save check report", "source", r.Source, "error", err)
		}
	}
	if err := writeReports(writer, checked, len(cfg.Sources) > 1); err != nil {
		return err
	}

	logger.Info("check finished",
		"sources", len(cfg.Sources),
		"failed", failed,
		"issues", issues,
		"elapsed", time.Since(startTime).Round(time.Millisecond),
	)

	if ctx.Err() != nil {
		return ctx.Err()
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d sources could not be checked", failed, len(cfg.Sources))
	}
	if cfg.FailOnIssues && issues > 0 {
		return fmt.Errorf("%w: %d issues", ErrIssuesFound, issues)
	}
	return nil
}

// checkSources runs the pipeline over every source, concurrently when
// more than one source and a batch size above one are given.
func checkSources(ctx context.Context, cfg *config.Config, logger *slog.Logger) ([]*model.CheckReport, error) {
	newPipeline := func() *pipeline.Pipeline {
		return pipeline.DefaultPipeline(
			[]pipeline.Option{pipeline.WithLogger(logger)},
			pipeline.WithPipelineMaster(cfg.Master),
			pipeline.WithPipelineOptions(cfg.CheckOptions),
		)
	}

	if len(cfg.Sources) > 1 && cfg.BatchSize > 1 {
		bp := pipeline.NewBatchProcessor(newPipeline,
			pipeline.WithConcurrency(cfg.BatchSize),
			pipeline.WithBatchLogger(logger),
		)
		return bp.ProcessBatch(ctx, cfg.Sources)
	}

	reports := make([]*model.CheckReport, 0, len(cfg.Sources))
	for _, src := range cfg.Sources {
		if err := ctx.Err(); err != nil {
			return reports, err
		}
		r := model.NewCheckReport(src)
		// The error is kept in the report and reported by the caller.
		_ = newPipeline().Execute(ctx, r)
		reports = append(reports, r)
	}
	return reports, nil
}

// writeReports writes the checked reports in source order. With several
// sources, a format that cannot be concatenated (JSON) writes them as one
// document.
func writeReports(w report.Writer, reports []*model.CheckReport, multiple bool) error {
	if bw, ok := w.(report.BatchWriter); ok && multiple {
		if _, err := bw.WriteAll(reports); err != nil {
			return fmt.Errorf("failed to write reports: %w", err)
		}
		return nil
	}
	for _, r := range reports {
		if _, err := w.Write(r); err != nil {
			return fmt.Errorf("failed to write report for %s: %w", r.Source, err)
		}
	}
	return nil
}

func failureText(r *model.CheckReport) string {
	if r.ErrorMessage != "" {
		return r.ErrorMessage
	}
	return "cancelled"
}

// openReportOutput returns the report destination. A report file is
// created once and shared by every source of the run.
func openReportOutput(path string, stdout io.Writer) (io.Writer, func(), error) {
	if path == "" {
		return stdout, func() {}, nil
	}

	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600) //nolint:gosec // User-provided output path is intentional
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return f, func() { _ = f.Close() }, nil
}

// newReportWriter picks the writer for the requested format.
func newReportWriter(cfg *config.Config, output io.Writer) report.Writer {
	switch {
	case cfg.JSONReport:
		return report.NewFullJSONWriter(output, getVersion(), report.WithPrettyPrint())
	case cfg.MarkdownReport:
		return report.NewMarkdownWriter(output)
	default:
		return report.NewSimpleWriter(output, report.WithVerbose(cfg.Verbose), report.WithIssuesOnly(cfg.IssuesOnly))
	}
}

// saveCheckReport saves the report to the database if enabled.
// If db is nil, this function is a no-op.
func saveCheckReport(ctx context.Context, db *database.HistoryDB, r *model.CheckReport, logger *slog.Logger) error {
	if db == nil {
		return nil
	}

	id, err := db.SaveCheckReport(ctx, r)
	if err != nil {
		return err
	}

	logger.Info("check report saved to database", "source", r.Source, "runID", id)
	return nil
}
