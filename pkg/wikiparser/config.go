package wikiparser

import (
	"fmt"

	"github.com/yaklabco/wikiparse/pkg/config"
)

// OptionsFromConfig builds parser options from cfg. Empty identifier lists
// fall back to the preset of cfg.Language. tp resolves templates.
func OptionsFromConfig(cfg *config.Config, tp TemplateParser) (Options, error) {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	sep, err := ParseLineSeparator(cfg.LineSeparator)
	if err != nil {
		return Options{}, err
	}
	if _, ok := config.PresetFor(cfg.Language); !ok && cfg.Language != "" {
		return Options{}, fmt.Errorf("%w: unknown language %q", ErrInvalidConfiguration, cfg.Language)
	}

	ids := cfg.ResolvedIdentifiers()
	opts := Options{
		LineSeparator:       sep,
		LanguageIdentifiers: ids.Language,
		CategoryIdentifiers: ids.Category,
		ImageIdentifiers:    ids.Image,
		ShowImageText:       config.BoolValue(cfg.Parser.ShowImageText, false),
		DeleteTags:          config.BoolValue(cfg.Parser.DeleteTags, false),
		ShowMathTagContent:  config.BoolValue(cfg.Parser.ShowMathTagContent, false),
		CalculateSrcSpans:   config.BoolValue(cfg.Parser.CalculateSrcSpans, false),
		TemplateParser:      tp,
	}
	return opts, opts.Validate()
}
