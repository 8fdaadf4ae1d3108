package configloader

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/yaklabco/wikiparse/pkg/config"
)

// EnvPrefix is the prefix of every environment override.
const EnvPrefix = "WIKIPARSE_"

// envBinding maps one environment variable onto a config field.
type envBinding struct {
	help  string
	apply func(cfg *config.Config, value string) error
}

//nolint:gochecknoglobals // Read-only lookup table.
var envBindings = map[string]envBinding{
	"LANGUAGE": {
		help:  "Wiki language preset: en or de",
		apply: func(cfg *config.Config, v string) error { cfg.Language = config.Language(v); return nil },
	},
	"LINE_SEPARATOR": {
		help:  "Line separator of the input: LF or CRLF",
		apply: func(cfg *config.Config, v string) error { cfg.LineSeparator = v; return nil },
	},
	"FORMAT": {
		help:  "Output format: text, json or summary",
		apply: func(cfg *config.Config, v string) error { cfg.Format = config.OutputFormat(v); return nil },
	},
	"TEMPLATE_STRATEGY": {
		help:  "Template strategy: placeholder, flush or german",
		apply: func(cfg *config.Config, v string) error { cfg.Templates.Strategy = v; return nil },
	},
	"JOBS": {
		help:  "Number of parallel workers (0 = auto)",
		apply: intField(func(cfg *config.Config) *int { return &cfg.Jobs }),
	},
	"CACHE_SIZE": {
		help:  "Number of parsed pages kept in memory (0 disables the cache)",
		apply: intField(func(cfg *config.Config) *int { return &cfg.CacheSize }),
	},
	"IGNORE": {
		help:  "Comma-separated list of ignore patterns",
		apply: func(cfg *config.Config, v string) error { cfg.Ignore = splitList(v); return nil },
	},
	"EXTENSIONS": {
		help:  "Comma-separated list of file extensions to parse",
		apply: func(cfg *config.Config, v string) error { cfg.Extensions = splitList(v); return nil },
	},
	"SHOW_IMAGE_TEXT": {
		help:  "Keep image captions in the text: true or false",
		apply: boolField(func(cfg *config.Config) **bool { return &cfg.Parser.ShowImageText }),
	},
	"DELETE_TAGS": {
		help:  "Drop unknown tags: true or false",
		apply: boolField(func(cfg *config.Config) **bool { return &cfg.Parser.DeleteTags }),
	},
	"SHOW_MATH": {
		help:  "Keep <math> content: true or false",
		apply: boolField(func(cfg *config.Config) **bool { return &cfg.Parser.ShowMathTagContent }),
	},
	"SRC_SPANS": {
		help:  "Record source spans of every node: true or false",
		apply: boolField(func(cfg *config.Config) **bool { return &cfg.Parser.CalculateSrcSpans }),
	},
}

func intField(field func(*config.Config) *int) func(*config.Config, string) error {
	return func(cfg *config.Config, v string) error {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("invalid integer %q", v)
		}
		*field(cfg) = n
		return nil
	}
}

func boolField(field func(*config.Config) **bool) func(*config.Config, string) error {
	return func(cfg *config.Config, v string) error {
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("invalid boolean %q (expected true/false/1/0)", v)
		}
		*field(cfg) = config.Bool(b)
		return nil
	}
}

// splitList splits a comma-separated value, dropping blank items.
func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// LoadFromEnv applies WIKIPARSE_* overrides from the process environment.
func LoadFromEnv(cfg *config.Config) error {
	return ApplyEnv(cfg, os.LookupEnv)
}

// ApplyEnv applies overrides read through lookup. Unset and empty variables
// are skipped. Variables are applied in name order so errors are stable.
func ApplyEnv(cfg *config.Config, lookup func(string) (string, bool)) error {
	if cfg == nil {
		return nil
	}
	for _, suffix := range envSuffixes() {
		value, ok := lookup(EnvPrefix + suffix)
		if !ok || value == "" {
			continue
		}
		if err := envBindings[suffix].apply(cfg, value); err != nil {
			return fmt.Errorf("%s%s: %w", EnvPrefix, suffix, err)
		}
	}
	return nil
}

// ListEnvVars returns every supported variable with its description.
func ListEnvVars() map[string]string {
	vars := make(map[string]string, len(envBindings))
	for suffix, binding := range envBindings {
		vars[EnvPrefix+suffix] = binding.help
	}
	return vars
}

func envSuffixes() []string {
	suffixes := make([]string, 0, len(envBindings))
	for suffix := range envBindings {
		suffixes = append(suffixes, suffix)
	}
	sort.Strings(suffixes)
	return suffixes
}
