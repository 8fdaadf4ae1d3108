package cli

import (
	"encoding/json"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/yaklabco/wikiparse/internal/logging"
	"github.com/yaklabco/wikiparse/pkg/config"
	"github.com/yaklabco/wikiparse/pkg/templates"
)

const formatJSON = "json"

// strategyInfo is one strategy in JSON output.
type strategyInfo struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Languages   []string `json:"default_for,omitempty"`
}

func newStrategiesCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "strategies",
		Short: "List template strategies",
		Long: `List the built-in template strategies. A strategy decides what happens
to {{templates}}: rendered as placeholders, flushed, or resolved by language rules.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			infos := strategyInfos()

			switch format {
			case formatJSON:
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				if err := enc.Encode(infos); err != nil {
					return fmt.Errorf("encoding strategies: %w", err)
				}
				return nil
			case "", "text":
			default:
				return fmt.Errorf("%w: invalid format %q: must be text or json", ErrUsage, format)
			}

			logger := log.NewWithOptions(cmd.OutOrStdout(), log.Options{})
			logger.SetLevel(log.InfoLevel)
			for _, info := range infos {
				fields := []any{"description", info.Description}
				if len(info.Languages) > 0 {
					fields = append(fields, logging.FieldLanguage, info.Languages)
				}
				logger.Info(info.Name, fields...)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "text", "output format: text, json")

	return cmd
}

// strategyInfos lists strategies with the languages that default to them.
func strategyInfos() []strategyInfo {
	builtins := templates.Infos()
	infos := make([]strategyInfo, 0, len(builtins))
	for _, b := range builtins {
		info := strategyInfo{Name: b.Name, Description: b.Description}
		for _, lang := range config.Languages() {
			if preset, ok := config.PresetFor(lang); ok && preset.Strategy == b.Name {
				info.Languages = append(info.Languages, string(lang))
			}
		}
		infos = append(infos, info)
	}
	return infos
}
