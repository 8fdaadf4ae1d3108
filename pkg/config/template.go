package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// commentWrapWidth is the maximum width for wrapped comments in templates.
const commentWrapWidth = 70

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Full documents every setting and strategy.
	// If false, generates a minimal template.
	Full bool

	// Format is the output format: "yaml" or "json".
	Format string

	// Strategies documents the available template strategies in full templates.
	Strategies []StrategyInfo
}

// StrategyInfo describes a template strategy for template generation.
type StrategyInfo struct {
	Name        string
	Description string
}

// GenerateTemplate creates a configuration file template.
func GenerateTemplate(opts TemplateOptions) ([]byte, error) {
	var data []byte
	if opts.Full {
		data = generateFullTemplate(opts)
	} else {
		data = generateMinimalTemplate()
	}

	if opts.Format == "json" {
		return templateToJSON(data)
	}
	return data, nil
}

// generateMinimalTemplate creates a minimal commented template.
func generateMinimalTemplate() []byte {
	var buf bytes.Buffer

	buf.WriteString(DefaultTemplateHeader())
	buf.WriteString(`

# Wiki language preset: en or de
language: en

# Line separator of the input: LF or CRLF
line_separator: LF

# Template strategy: placeholder, flush or german (empty = language default)
# templates:
#   strategy: placeholder

# Number of parallel workers (0 = auto)
jobs: 0

# Output format: text, json or summary
format: text

# File patterns to ignore (glob patterns)
# ignore:
#   - "drafts/**"
`)

	return buf.Bytes()
}

// generateFullTemplate creates a full template with every setting documented.
func generateFullTemplate(opts TemplateOptions) []byte {
	var buf bytes.Buffer

	buf.WriteString(DefaultTemplateHeader())
	buf.WriteString(` - Full Template
#
# This template lists every setting with its default value.

# Wiki language preset: en or de
# Presets provide namespace identifiers and the default template strategy.
language: en

# Line separator of the input: LF or CRLF
line_separator: LF

# Namespace identifiers (empty = language preset)
identifiers:
  # language: [de, fr]
  # category: [Category]
  # image: [Image, File]

# Parser switches
parser:
  show_image_text: false
  delete_tags: false
  show_math_tag_content: false
  calculate_src_spans: false

# Template resolution
templates:
`)

	for _, s := range opts.Strategies {
		fmt.Fprintf(&buf, "  # %s: %s\n", s.Name, wrapComment(s.Description, commentWrapWidth))
	}

	buf.WriteString(`  strategy: ""
  # Template names deleted by the german strategy (empty = built-in list)
  # delete: [Infobox]

# File extensions picked up when walking directories
extensions:
`)
	for _, ext := range DefaultExtensions {
		fmt.Fprintf(&buf, "  - %q\n", ext)
	}

	fmt.Fprintf(&buf, `
# File patterns to ignore (glob patterns)
ignore: []

# Number of parallel workers (0 = auto based on CPU cores)
jobs: 0

# Output format: text, json or summary
format: text

# Number of parsed pages kept in memory
cache_size: %d
`, DefaultCacheSize)

	return buf.Bytes()
}

// wrapComment wraps a comment to fit within maxWidth characters.
func wrapComment(text string, maxWidth int) string {
	if len(text) <= maxWidth {
		return text
	}

	var lines []string
	words := strings.Fields(text)
	currentLine := ""

	for _, word := range words {
		switch {
		case currentLine == "":
			currentLine = word
		case len(currentLine)+1+len(word) <= maxWidth:
			currentLine += " " + word
		default:
			lines = append(lines, currentLine)
			currentLine = word
		}
	}
	if currentLine != "" {
		lines = append(lines, currentLine)
	}

	return strings.Join(lines, "\n  #   ")
}

// templateToJSON converts a YAML template to JSON, dropping comments.
func templateToJSON(yamlContent []byte) ([]byte, error) {
	var doc map[string]any
	if err := yaml.Unmarshal(yamlContent, &doc); err != nil {
		return nil, fmt.Errorf("parse template: %w", err)
	}

	jsonBytes, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal JSON: %w", err)
	}
	return append(jsonBytes, '\n'), nil
}

// DefaultTemplateHeader returns the default header for generated configs.
func DefaultTemplateHeader() string {
	return `# wikiparse configuration
# See: https://github.com/yaklabco/wikiparse`
}
