// Package cli provides the Cobra command structure for wikiparse.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/wikiparse/internal/logging"
	"github.com/yaklabco/wikiparse/internal/ui/pretty"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root wikiparse command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var configPath string
	var color string

	rootCmd := &cobra.Command{
		Use:   "wikiparse",
		Short: "Parse MediaWiki markup into a structured document",
		Long: `wikiparse turns MediaWiki markup into a document tree.

Pages are split into nested sections holding paragraphs, tables, lists and
definition lists. Links, images, categories, interlanguage links and templates
are extracted with their positions in the plain text, so the markup can be
indexed or analysed without a wiki installation.`,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if debug {
				logging.SetLevel("debug")
			}
			switch color {
			case pretty.ColorAuto, pretty.ColorAlways, pretty.ColorNever:
				return nil
			default:
				return fmt.Errorf("%w: invalid --color %q: must be auto, always or never", ErrUsage, color)
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&color, "color", pretty.ColorAuto,
		"colorize output: auto, always, never")

	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("%w: %w", ErrUsage, err)
	})

	rootCmd.AddCommand(newParseCommand())
	rootCmd.AddCommand(newStrategiesCommand())
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	helpFormatter := NewHelpFormatter(color, os.Stdout)
	helpFormatter.ApplyToCommand(rootCmd)

	return rootCmd
}
