package configloader

import (
	"slices"

	"github.com/yaklabco/wikiparse/pkg/config"
)

// merge layers override on top of base and returns a new Config.
//   - Strings and numbers: a non-zero override wins.
//   - Pointer bools: a non-nil override wins, so a file can switch a default off.
//   - Lists: a non-nil override replaces the base list.
//
// Neither input is modified.
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override.Clone()
	}
	if override == nil {
		return base.Clone()
	}

	out := base.Clone()

	if override.Language != "" {
		out.Language = override.Language
	}
	if override.LineSeparator != "" {
		out.LineSeparator = override.LineSeparator
	}
	if override.Format != "" {
		out.Format = override.Format
	}
	if override.Jobs != 0 {
		out.Jobs = override.Jobs
	}
	if override.CacheSize != 0 {
		out.CacheSize = override.CacheSize
	}
	if override.Output != "" {
		out.Output = override.Output
	}
	if override.Summary {
		out.Summary = true
	}

	mergeList(&out.Identifiers.Language, override.Identifiers.Language)
	mergeList(&out.Identifiers.Category, override.Identifiers.Category)
	mergeList(&out.Identifiers.Image, override.Identifiers.Image)
	mergeList(&out.Extensions, override.Extensions)
	mergeList(&out.Ignore, override.Ignore)
	mergeList(&out.Templates.Delete, override.Templates.Delete)

	if override.Templates.Strategy != "" {
		out.Templates.Strategy = override.Templates.Strategy
	}

	mergeBool(&out.Parser.ShowImageText, override.Parser.ShowImageText)
	mergeBool(&out.Parser.DeleteTags, override.Parser.DeleteTags)
	mergeBool(&out.Parser.ShowMathTagContent, override.Parser.ShowMathTagContent)
	mergeBool(&out.Parser.CalculateSrcSpans, override.Parser.CalculateSrcSpans)

	return out
}

func mergeList(dst *[]string, override []string) {
	if override != nil {
		*dst = slices.Clone(override)
	}
}

func mergeBool(dst **bool, override *bool) {
	if override != nil {
		*dst = config.Bool(*override)
	}
}

// MergeAll merges configs in order; later configs take precedence. Nil
// entries are skipped.
func MergeAll(configs ...*config.Config) *config.Config {
	var result *config.Config
	for _, cfg := range configs {
		if cfg == nil {
			continue
		}
		result = merge(result, cfg)
	}
	return result
}
