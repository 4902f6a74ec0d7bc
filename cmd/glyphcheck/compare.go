package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nao1215/glyphcheck/internal/config"
	"github.com/nao1215/glyphcheck/internal/database"
	"github.com/nao1215/glyphcheck/internal/model"
	"github.com/nao1215/glyphcheck/internal/report"
)

// noIssuesMessage is shown for runs without any issue.
const noIssuesMessage = "No issues"

// NewCompareCmd creates the compare command.
// This command compares check results with historical data stored in the database.
func NewCompareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare [font-or-snapshot]",
		Short: "Compare check results with historical data",
		Long: `Compare displays differences between the latest and an earlier check run.

This command retrieves stored runs from the history database and shows:
- New issues that appeared since the earlier run
- Resolved issues that are no longer reported
- The change in issue count per category

The comparison requires at least two runs for the source. Use
'glyphcheck check' to check a font and store the run.

Examples:
  # Compare the latest two runs of a font
  glyphcheck compare MySans.yaml

  # Only consider runs of one master
  glyphcheck compare --master m02 MySans.yaml

  # List the stored runs of a font
  glyphcheck compare --list MySans.yaml

  # Compare with a specific run by ID
  glyphcheck compare --with-run-id 5 MySans.yaml

  # Show the issue history of one glyph
  glyphcheck compare --glyph A MySans.yaml

  # List every checked source in the database
  glyphcheck compare --list-sources`,
		Args: cobra.MaximumNArgs(1),
		RunE: runCompareCmd,
	}

	// History listing flags
	cmd.Flags().BoolP("list", "l", false,
		"List stored runs for the specified source")
	cmd.Flags().BoolP("list-sources", "L", false,
		"List all checked sources in the database")
	cmd.Flags().StringP("glyph", "g", "",
		"Show the recorded issues of one glyph across runs")

	// Comparison target flags
	cmd.Flags().Int64P("with-run-id", "i", 0,
		"Compare with a specific run by ID (use --list to see available IDs)")
	cmd.Flags().StringP("master", "m", "",
		"Only compare runs of this master ID")

	// Output format flags
	cmd.Flags().BoolP("json", "j", false,
		"Output comparison result in JSON format")
	cmd.Flags().BoolP("markdown", "M", false,
		"Output comparison result in Markdown format")

	cmd.Flags().String("db-dir", config.XDGDataDir(),
		"Directory of the history database")

	return cmd
}

// compareOptions holds the parsed compare flags.
type compareOptions struct {
	source    string
	master    string
	withRunID int64
	json      bool
	markdown  bool
}

// runCompareCmd executes the compare command.
func runCompareCmd(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()

	listSources, err := flags.GetBool("list-sources")
	if err != nil {
		return err
	}

	// Validate arguments before opening the database.
	var source string
	if !listSources {
		if len(args) == 0 {
			return errors.New("source is required (use --list-sources to see available sources)")
		}
		source = normalizeSource(args[0])
	}

	dbDir, err := flags.GetString("db-dir")
	if err != nil {
		return err
	}
	db, err := database.Open(dbDir, database.DefaultOptions())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	if listSources {
		return listCheckedSources(ctx, out, db)
	}

	listHistory, err := flags.GetBool("list")
	if err != nil {
		return err
	}
	if listHistory {
		return listCheckHistory(ctx, out, db, source)
	}

	glyph, err := flags.GetString("glyph")
	if err != nil {
		return err
	}
	if glyph != "" {
		return listGlyphIssues(ctx, out, db, source, glyph)
	}

	opts := compareOptions{source: source}
	if opts.master, err = flags.GetString("master"); err != nil {
		return err
	}
	if opts.withRunID, err = flags.GetInt64("with-run-id"); err != nil {
		return err
	}
	if opts.json, err = flags.GetBool("json"); err != nil {
		return err
	}
	if opts.markdown, err = flags.GetBool("markdown"); err != nil {
		return err
	}
	if opts.json && opts.markdown {
		return config.ErrConflictingReportFormats
	}

	return runComparison(ctx, out, db, opts)
}

// listCheckedSources lists all sources that have runs in the database.
func listCheckedSources(ctx context.Context, out io.Writer, db *database.HistoryDB) error {
	sources, err := db.ListCheckedSources(ctx)
	if err != nil {
		return fmt.Errorf("failed to list sources: %w", err)
	}

	if len(sources) == 0 {
		fmt.Fprintln(out, "No checked sources found in the database.")
		fmt.Fprintln(out, "\nUse 'glyphcheck check <font>' to check a font.")
		return nil
	}

	fmt.Fprintf(out, "Checked sources (%d):\n\n", len(sources))
	for _, s := range sources {
		fmt.Fprintf(out, "  • %s\n", s)
	}
	fmt.Fprintln(out, "\nUse 'glyphcheck compare --list <source>' to see the runs of a source.")
	return nil
}

// listCheckHistory lists all stored runs for a source.
func listCheckHistory(ctx context.Context, out io.Writer, db *database.HistoryDB, source string) error {
	metas, err := db.GetCheckHistoryWithMetadata(ctx, source)
	if err != nil {
		return fmt.Errorf("failed to get check history: %w", err)
	}

	if len(metas) == 0 {
		fmt.Fprintf(out, "No check history found for %s\n", source)
		fmt.Fprintln(out, "\nUse 'glyphcheck check' to check this source.")
		return nil
	}

	fmt.Fprintf(out, "Check history for %s (%d runs):\n\n", source, len(metas))
	fmt.Fprintf(out, "  %-6s  %-20s  %-10s  %s\n", "ID", "Date", "Master", "Issues")
	fmt.Fprintln(out, "  "+strings.Repeat("-", 70))
	for _, meta := range metas {
		fmt.Fprintf(out, "  %-6d  %-20s  %-10s  %s\n",
			meta.ID,
			meta.Timestamp.Format("2006-01-02 15:04:05"),
			meta.MasterID,
			formatIssueSummary(meta.Summary),
		)
	}

	fmt.Fprintln(out, "\nUse 'glyphcheck compare <source>' to compare the latest two runs.")
	fmt.Fprintln(out, "Use 'glyphcheck compare --with-run-id <id> <source>' to compare with a specific run.")
	return nil
}

// formatIssueSummary formats per-category counts into a short string.
func formatIssueSummary(summary map[model.Category]int) string {
	var parts []string
	for _, c := range model.Categories() {
		if v := summary[c]; v > 0 {
			parts = append(parts, fmt.Sprintf("%s:%d", c, v))
		}
	}
	if len(parts) == 0 {
		return noIssuesMessage
	}
	return strings.Join(parts, " ")
}

// listGlyphIssues prints the recorded issues of one glyph, newest run first.
func listGlyphIssues(ctx context.Context, out io.Writer, db *database.HistoryDB, source, glyph string) error {
	issues, err := db.QueryIssues(ctx, source, glyph, "")
	if err != nil {
		return fmt.Errorf("failed to query issues: %w", err)
	}

	if len(issues) == 0 {
		fmt.Fprintf(out, "No recorded issues for glyph %s in %s\n", glyph, source)
		return nil
	}

	fmt.Fprintf(out, "Recorded issues for glyph %s in %s:\n\n", glyph, source)
	for _, rec := range issues {
		fmt.Fprintf(out, "  #%-5d %s  [%s] %s\n",
			rec.ReportID,
			rec.Timestamp.Format("2006-01-02 15:04:05"),
			rec.Issue.Category,
			rec.Issue.Message,
		)
	}
	return nil
}

// runComparison compares the latest run with an earlier one.
func runComparison(ctx context.Context, out io.Writer, db *database.HistoryDB, opts compareOptions) error {
	history, err := db.GetCheckHistory(ctx, opts.source, opts.master)
	if err != nil {
		return fmt.Errorf("failed to get check history: %w", err)
	}
	if len(history) == 0 {
		return fmt.Errorf("no check history found for %s", opts.source)
	}
	if len(history) < 2 && opts.withRunID == 0 {
		return fmt.Errorf("at least 2 runs are required for comparison (found %d)", len(history))
	}

	current := history[0]
	var previous *model.CheckReport

	if opts.withRunID > 0 {
		previous, err = db.GetCheckReportByID(ctx, opts.withRunID)
		if err != nil {
			return fmt.Errorf("failed to get run with ID %d: %w", opts.withRunID, err)
		}
		if previous == nil {
			return fmt.Errorf("run with ID %d not found", opts.withRunID)
		}
		if previous.Source != opts.source {
			return fmt.Errorf("run ID %d belongs to %s, not %s", opts.withRunID, previous.Source, opts.source)
		}
	} else {
		previous = history[1]
	}

	var w report.Writer
	switch {
	case opts.json:
		w = report.NewJSONWriter(out, report.WithPrettyPrint())
	case opts.markdown:
		w = report.NewMarkdownWriter(out)
	default:
		w = report.NewSimpleWriter(out)
	}

	_, err = w.WriteComparison(model.Compare(previous, current))
	return err
}
