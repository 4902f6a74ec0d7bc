package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	gclog "github.com/nao1215/glyphcheck/internal/log"
)

// NewRootCmd creates the root command for glyphcheck.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "glyphcheck",
		Short: "Geometric integrity checker for font outlines",
		Long: `glyphcheck inspects the outlines of a font master and reports geometric
problems that are easy to miss while drawing: very small segments, segments
a few units off a meaningful design length, nearly overlapping nodes,
redundant collinear nodes, open paths, and isolated points or anchors.

It reads binary fonts (.ttf, .otf) and outline snapshots (.yaml, .json)
exported from a font editor.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().Bool("log-json", false, "Write logs as JSON")

	cmd.AddCommand(NewCheckCmd())
	cmd.AddCommand(NewCompareCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// getBoolFlag retrieves a flag from the command or the root's persistent flags.
func getBoolFlag(cmd *cobra.Command, name string) bool {
	v, err := cmd.Flags().GetBool(name)
	if err != nil {
		v, err = cmd.Root().PersistentFlags().GetBool(name)
		if err != nil {
			return false
		}
	}
	return v
}

// setupLogger creates the structured logger for a command run.
func setupLogger(w io.Writer, verbose, jsonFormat bool) *slog.Logger {
	if jsonFormat {
		return gclog.NewJSONLogger(w, verbose)
	}
	return gclog.NewLogger(w, verbose)
}

// loggerFor builds the logger from the command's global flags.
func loggerFor(cmd *cobra.Command) *slog.Logger {
	return setupLogger(cmd.ErrOrStderr(), getBoolFlag(cmd, "verbose"), getBoolFlag(cmd, "log-json"))
}
