package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/wikiparse/internal/logging"
	"github.com/yaklabco/wikiparse/pkg/config"
	"github.com/yaklabco/wikiparse/pkg/fsutil"
	"github.com/yaklabco/wikiparse/pkg/templates"
)

// configFilePermissions is the file mode for configuration files (world-readable).
const configFilePermissions = 0o644

// initFlags holds the flags for the init command.
type initFlags struct {
	force  bool
	full   bool
	format string
	output string
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a wikiparse configuration file",
		Long: `Create a .wikiparse.yml configuration file in the current directory
with sensible defaults.

Examples:
  wikiparse init                     Create a minimal .wikiparse.yml
  wikiparse init --full              Document every setting and strategy
  wikiparse init --format json       Create .wikiparse.json instead
  wikiparse init --force             Replace an existing file, keeping a .bak copy
  wikiparse init --output custom.yml Write to a custom file path`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			return runInit(ctx, flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "overwrite an existing configuration file")
	cmd.Flags().BoolVar(&flags.full, "full", false, "document every setting and strategy")
	cmd.Flags().StringVar(&flags.format, "format", "yaml", "file format: yaml or json")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output file path (default: .wikiparse.yml or .wikiparse.json)")

	return cmd
}

func runInit(ctx context.Context, flags *initFlags) error {
	logger := logging.NewInteractive()

	if flags.format != "yaml" && flags.format != formatJSON {
		return fmt.Errorf("%w: invalid format %q: must be yaml or json", ErrUsage, flags.format)
	}

	outputPath := flags.output
	if outputPath == "" {
		outputPath = ".wikiparse.yml"
		if flags.format == formatJSON {
			outputPath = ".wikiparse.json"
		}
	}

	absPath, err := filepath.Abs(outputPath)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	if fsutil.Exists(absPath) {
		if !flags.force {
			return fmt.Errorf("%w: file %q already exists; use --force to overwrite", ErrUsage, outputPath)
		}
		backup, err := fsutil.CreateBackup(ctx, absPath)
		if err != nil {
			return fmt.Errorf("back up existing file: %w", err)
		}
		logger.Warn("overwriting existing file", logging.FieldPath, outputPath, "backup", backup)
	}

	content, err := config.GenerateTemplate(config.TemplateOptions{
		Full:       flags.full,
		Format:     flags.format,
		Strategies: templates.Infos(),
	})
	if err != nil {
		return fmt.Errorf("generate template: %w", err)
	}

	if err := fsutil.WriteAtomic(ctx, absPath, content, configFilePermissions); err != nil {
		return fmt.Errorf("write file: %w", err)
	}

	logger.Info("created configuration file", logging.FieldPath, outputPath)
	logger.Info("run 'wikiparse strategies' to see the template strategies")

	return nil
}
