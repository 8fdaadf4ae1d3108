// Package config defines core configuration types for wikiparse.
// These types are pure data structures; loading and merging live in internal/configloader.
package config

import "slices"

// OutputFormat specifies the output format for parse results.
type OutputFormat string

const (
	FormatText    OutputFormat = "text"
	FormatJSON    OutputFormat = "json"
	FormatSummary OutputFormat = "summary"
)

// IsValid returns true if the format is known.
func (f OutputFormat) IsValid() bool {
	switch f {
	case FormatText, FormatJSON, FormatSummary:
		return true
	default:
		return false
	}
}

// Language selects identifier presets and the default template strategy.
type Language string

const (
	LanguageEnglish Language = "en"
	LanguageGerman  Language = "de"
)

// Strategy names accepted in templates.strategy.
const (
	StrategyPlaceholder = "placeholder"
	StrategyFlush       = "flush"
	StrategyGerman      = "german"
)

// Preset holds the namespace identifiers and default strategy of a wiki language.
type Preset struct {
	Language []string
	Category []string
	Image    []string
	Strategy string
}

// interlanguage prefixes shared by every preset.
//
//nolint:gochecknoglobals // Read-only preset data.
var interlanguage = []string{
	"ar", "bg", "ca", "cs", "da", "de", "el", "en", "eo", "es", "et", "eu", "fa", "fi", "fr",
	"he", "hr", "hu", "id", "it", "ja", "ko", "lt", "ms", "nl", "nn", "no", "pl", "pt", "ro",
	"ru", "simple", "sk", "sl", "sr", "sv", "th", "tr", "uk", "vi", "zh",
}

//nolint:gochecknoglobals // Read-only preset data.
var presets = map[Language]Preset{
	LanguageEnglish: {
		Language: interlanguage,
		Category: []string{"Category"},
		Image:    []string{"Image", "File", "Media"},
		Strategy: StrategyPlaceholder,
	},
	LanguageGerman: {
		Language: interlanguage,
		Category: []string{"Kategorie", "Category"},
		Image:    []string{"Bild", "Datei", "Image", "File", "Media"},
		Strategy: StrategyGerman,
	},
}

// PresetFor returns a copy of the preset for lang.
func PresetFor(lang Language) (Preset, bool) {
	p, ok := presets[lang]
	if !ok {
		return Preset{}, false
	}
	return Preset{
		Language: slices.Clone(p.Language),
		Category: slices.Clone(p.Category),
		Image:    slices.Clone(p.Image),
		Strategy: p.Strategy,
	}, true
}

// Languages returns the languages that have a preset, sorted.
func Languages() []Language {
	langs := make([]Language, 0, len(presets))
	for l := range presets {
		langs = append(langs, l)
	}
	slices.Sort(langs)
	return langs
}

// IdentifiersConfig overrides the namespace identifiers of the language preset.
// An empty list keeps the preset.
type IdentifiersConfig struct {
	Language []string `mapstructure:"language" yaml:"language,omitempty"`
	Category []string `mapstructure:"category" yaml:"category,omitempty"`
	Image    []string `mapstructure:"image" yaml:"image,omitempty"`
}

// ParserConfig holds the parser feature switches. Nil means "use the default".
type ParserConfig struct {
	ShowImageText      *bool `mapstructure:"show_image_text" yaml:"show_image_text,omitempty"`
	DeleteTags         *bool `mapstructure:"delete_tags" yaml:"delete_tags,omitempty"`
	ShowMathTagContent *bool `mapstructure:"show_math_tag_content" yaml:"show_math_tag_content,omitempty"`
	CalculateSrcSpans  *bool `mapstructure:"calculate_src_spans" yaml:"calculate_src_spans,omitempty"`
}

// TemplatesConfig selects the template strategy.
type TemplatesConfig struct {
	// Strategy is a strategy name; empty means the language preset's default.
	Strategy string `mapstructure:"strategy" yaml:"strategy,omitempty"`

	// Delete lists template names removed by the german strategy.
	// Empty keeps the built-in list.
	Delete []string `mapstructure:"delete" yaml:"delete,omitempty"`
}

// Config is the root configuration structure for wikiparse.
type Config struct {
	// Language selects identifier presets ("en" or "de").
	Language Language `mapstructure:"language" yaml:"language"`

	// LineSeparator is "LF" or "CRLF".
	LineSeparator string `mapstructure:"line_separator" yaml:"line_separator"`

	// Identifiers overrides the preset namespace identifiers.
	Identifiers IdentifiersConfig `mapstructure:"identifiers" yaml:"identifiers,omitempty"`

	// Parser holds parser feature switches.
	Parser ParserConfig `mapstructure:"parser" yaml:"parser,omitempty"`

	// Templates selects the template strategy.
	Templates TemplatesConfig `mapstructure:"templates" yaml:"templates,omitempty"`

	// Extensions are the file extensions picked up when walking directories.
	Extensions []string `mapstructure:"extensions" yaml:"extensions"`

	// Ignore contains glob patterns for files to ignore.
	Ignore []string `mapstructure:"ignore" yaml:"ignore,omitempty"`

	// Jobs specifies the number of parallel workers (0 = one per CPU).
	Jobs int `mapstructure:"jobs" yaml:"jobs"`

	// Format specifies the output format.
	Format OutputFormat `mapstructure:"format" yaml:"format"`

	// CacheSize is the number of parsed pages kept in memory.
	CacheSize int `mapstructure:"cache_size" yaml:"cache_size"`

	// CLI-level options (not persisted to config files).

	// Output is the file results are written to; empty means stdout.
	Output string `mapstructure:"-" yaml:"-"`

	// Summary appends a summary to text output.
	Summary bool `mapstructure:"-" yaml:"-"`
}

// DefaultExtensions are the file extensions parsed when walking directories.
//
//nolint:gochecknoglobals // Read-only default.
var DefaultExtensions = []string{".wiki", ".mediawiki", ".wikitext"}

// DefaultCacheSize is the default number of cached pages.
const DefaultCacheSize = 256

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Language:      LanguageEnglish,
		LineSeparator: "LF",
		Extensions:    slices.Clone(DefaultExtensions),
		Jobs:          0, // 0 means one worker per CPU
		Format:        FormatText,
		CacheSize:     DefaultCacheSize,
	}
}

// Bool returns a pointer to v, for ParserConfig fields.
func Bool(v bool) *bool {
	return &v
}

// BoolValue returns *p, or def when p is nil.
func BoolValue(p *bool, def bool) bool {
	if p == nil {
		return def
	}
	return *p
}

// ResolvedIdentifiers returns the configured identifiers, falling back to
// the language preset for each empty list.
func (c *Config) ResolvedIdentifiers() IdentifiersConfig {
	preset, _ := PresetFor(c.Language)
	ids := IdentifiersConfig{
		Language: c.Identifiers.Language,
		Category: c.Identifiers.Category,
		Image:    c.Identifiers.Image,
	}
	if len(ids.Language) == 0 {
		ids.Language = preset.Language
	}
	if len(ids.Category) == 0 {
		ids.Category = preset.Category
	}
	if len(ids.Image) == 0 {
		ids.Image = preset.Image
	}
	return ids
}

// ResolvedStrategy returns the configured strategy or the language default.
func (c *Config) ResolvedStrategy() string {
	if c.Templates.Strategy != "" {
		return c.Templates.Strategy
	}
	if preset, ok := PresetFor(c.Language); ok {
		return preset.Strategy
	}
	return StrategyPlaceholder
}
