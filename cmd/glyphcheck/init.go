package main

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/nao1215/glyphcheck/internal/config"
)

//go:embed templates/glyphcheck.yaml
var configTemplate embed.FS

// templatePath is the rules template inside configTemplate.
const templatePath = "templates/glyphcheck.yaml"

// NewInitCmd creates the init command.
func NewInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new glyphcheck rules file",
		Long: `Initialize creates a new .glyphcheck rules file in the current directory.

The generated file includes:
- The built-in detector thresholds as editable defaults
- Length targets for roman and bold masters as profiles
- Comments describing every rule

Examples:
  # Create .glyphcheck in current directory
  glyphcheck init

  # Create the rules file at a specific path
  glyphcheck init -o rules.yaml

  # Force overwrite existing file
  glyphcheck init -f`,
		Args: cobra.NoArgs,
		RunE: runInitCmd,
	}

	cmd.Flags().StringP("output", "o", config.DefaultConfigFile,
		"Output file path for the rules file")
	cmd.Flags().BoolP("force", "f", false,
		"Overwrite existing rules file")

	return cmd
}

// runInitCmd executes the init command.
func runInitCmd(cmd *cobra.Command, _ []string) error {
	outputPath, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}
	force, err := cmd.Flags().GetBool("force")
	if err != nil {
		return err
	}

	if !force {
		if _, err := os.Stat(outputPath); err == nil {
			return fmt.Errorf("rules file already exists: %s (use -f to overwrite)", outputPath)
		}
	}

	content, err := configTemplate.ReadFile(templatePath)
	if err != nil {
		return fmt.Errorf("failed to read rules template: %w", err)
	}

	if dir := filepath.Dir(outputPath); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	if err := os.WriteFile(outputPath, content, 0600); err != nil {
		return fmt.Errorf("failed to write rules file: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Created rules file: %s\n", outputPath)
	fmt.Fprintln(out, "\nEdit this file to tune the checks, for example:")
	fmt.Fprintln(out, "  - Length targets per master (roman, bold)")
	fmt.Fprintln(out, "  - Small segment and close node thresholds")
	fmt.Fprintln(out, "  - Anchors and glyphs excluded from relaxed checks")

	return nil
}
