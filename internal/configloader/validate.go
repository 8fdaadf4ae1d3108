package configloader

import (
	"fmt"
	"slices"
	"strings"

	"github.com/gobwas/glob"

	"github.com/yaklabco/wikiparse/pkg/config"
	"github.com/yaklabco/wikiparse/pkg/templates"
	"github.com/yaklabco/wikiparse/pkg/wikiparser"
)

// ValidationError describes one invalid or suspicious setting.
type ValidationError struct {
	// Field is the YAML path of the setting, e.g. "templates.strategy".
	Field string

	// Value is the offending value.
	Value any

	// Message describes the problem.
	Message string

	// FilePath is the config file the value came from, if known.
	FilePath string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	parts := make([]string, 0, 3)
	if e.FilePath != "" {
		parts = append(parts, e.FilePath)
	}
	if e.Field != "" {
		parts = append(parts, e.Field)
	}
	parts = append(parts, e.Message)
	return strings.Join(parts, ": ")
}

// ValidationResult collects validation findings.
type ValidationResult struct {
	// Errors prevent the configuration from being used.
	Errors []ValidationError

	// Warnings are reported but do not stop loading.
	Warnings []ValidationError
}

// Valid returns true if there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// HasWarnings returns true if there are any warnings.
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// AllMessages returns errors then warnings, each prefixed with its kind.
func (r *ValidationResult) AllMessages() []string {
	messages := make([]string, 0, len(r.Errors)+len(r.Warnings))
	for _, e := range r.Errors {
		messages = append(messages, "error: "+e.Error())
	}
	for _, w := range r.Warnings {
		messages = append(messages, "warning: "+w.Error())
	}
	return messages
}

func (r *ValidationResult) addError(field string, value any, format string, args ...any) {
	r.Errors = append(r.Errors, ValidationError{Field: field, Value: value, Message: fmt.Sprintf(format, args...)})
}

func (r *ValidationResult) addWarning(field string, value any, format string, args ...any) {
	r.Warnings = append(r.Warnings, ValidationError{Field: field, Value: value, Message: fmt.Sprintf(format, args...)})
}

// Validate checks a configuration. Empty fields are valid; they fall back to
// defaults or language presets.
func Validate(cfg *config.Config) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		return result
	}

	if cfg.Language != "" {
		if _, ok := config.PresetFor(cfg.Language); !ok {
			result.addError("language", cfg.Language, "unknown language %q; must be one of: %s",
				cfg.Language, joinLanguages(config.Languages()))
		}
	}

	if _, err := wikiparser.ParseLineSeparator(cfg.LineSeparator); err != nil {
		result.addError("line_separator", cfg.LineSeparator, "invalid line separator %q; must be LF or CRLF", cfg.LineSeparator)
	}

	if cfg.Format != "" && !cfg.Format.IsValid() {
		result.addError("format", cfg.Format, "invalid format %q; must be one of: text, json, summary", cfg.Format)
	}

	validateTemplates(cfg, result)

	if cfg.Jobs < 0 {
		result.addError("jobs", cfg.Jobs, "jobs must be >= 0 (0 means auto)")
	}
	if cfg.CacheSize < 0 {
		result.addError("cache_size", cfg.CacheSize, "cache_size must be >= 0 (0 disables the cache)")
	}

	for i, ext := range cfg.Extensions {
		if !strings.HasPrefix(ext, ".") {
			result.addWarning(fmt.Sprintf("extensions[%d]", i), ext, "extension %q does not start with a dot and will never match", ext)
		}
	}

	for i, pattern := range cfg.Ignore {
		if _, err := glob.Compile(pattern, '/'); err != nil {
			result.addError(fmt.Sprintf("ignore[%d]", i), pattern, "invalid glob pattern: %v", err)
		}
	}

	return result
}

func validateTemplates(cfg *config.Config, result *ValidationResult) {
	strategy := cfg.Templates.Strategy
	if strategy != "" && !slices.Contains(templates.Names(), strategy) {
		result.addError("templates.strategy", strategy, "unknown template strategy %q; must be one of: %s",
			strategy, strings.Join(templates.Names(), ", "))
		return
	}
	if len(cfg.Templates.Delete) > 0 && cfg.ResolvedStrategy() != config.StrategyGerman {
		result.addWarning("templates.delete", cfg.Templates.Delete,
			"only the %s strategy deletes templates; the list is ignored", config.StrategyGerman)
	}
}

func joinLanguages(langs []config.Language) string {
	names := make([]string, len(langs))
	for i, l := range langs {
		names[i] = string(l)
	}
	return strings.Join(names, ", ")
}

// ValidateWithFile validates cfg and tags every finding with filePath.
func ValidateWithFile(cfg *config.Config, filePath string) *ValidationResult {
	result := Validate(cfg)
	for i := range result.Errors {
		result.Errors[i].FilePath = filePath
	}
	for i := range result.Warnings {
		result.Warnings[i].FilePath = filePath
	}
	return result
}
