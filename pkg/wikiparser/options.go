package wikiparser

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
)

// Sentinel errors returned by Parse.
var (
	// ErrInvalidConfiguration is returned when identifier lists or the
	// template parser are missing.
	ErrInvalidConfiguration = errors.New("invalid parser configuration")

	// ErrEmptyInput is returned for empty source text.
	ErrEmptyInput = errors.New("empty input")
)

// LineSeparator selects how input lines are terminated.
type LineSeparator string

const (
	LF   LineSeparator = "LF"
	CRLF LineSeparator = "CRLF"
)

// Sequence returns the bytes that end a line.
func (s LineSeparator) Sequence() string {
	if s == CRLF {
		return "\r\n"
	}
	return "\n"
}

// ParseLineSeparator converts a name into a LineSeparator.
func ParseLineSeparator(name string) (LineSeparator, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "", "LF":
		return LF, nil
	case "CRLF":
		return CRLF, nil
	default:
		return "", fmt.Errorf("%w: unknown line separator %q", ErrInvalidConfiguration, name)
	}
}

// DefaultProtocols are the URL prefixes recognized as external links.
var DefaultProtocols = []string{"http://", "https://", "ftp://", "mailto:"}

// Options configures a Parser. It is fixed once the Parser is created.
type Options struct {
	// LineSeparator controls input normalization and line splitting.
	LineSeparator LineSeparator

	// LanguageIdentifiers are interlanguage link prefixes such as "de" or "fr".
	LanguageIdentifiers []string

	// CategoryIdentifiers are category namespace names such as "Category".
	CategoryIdentifiers []string

	// ImageIdentifiers are file namespace names such as "Image" or "File".
	ImageIdentifiers []string

	// ShowImageText keeps image captions in the surrounding text.
	ShowImageText bool

	// DeleteTags drops unrecognized tags instead of marking them as TAG spans.
	DeleteTags bool

	// ShowMathTagContent keeps the content of <math> tags.
	ShowMathTagContent bool

	// CalculateSrcSpans records the source range of every node.
	CalculateSrcSpans bool

	// TemplateParser resolves {{templates}}.
	TemplateParser TemplateParser

	// Protocols overrides DefaultProtocols when non-empty.
	Protocols []string
}

// Validate reports missing settings, wrapping ErrInvalidConfiguration.
func (o *Options) Validate() error {
	var missing []string
	if len(o.LanguageIdentifiers) == 0 {
		missing = append(missing, "language identifiers")
	}
	if len(o.CategoryIdentifiers) == 0 {
		missing = append(missing, "category identifiers")
	}
	if len(o.ImageIdentifiers) == 0 {
		missing = append(missing, "image identifiers")
	}
	if o.TemplateParser == nil {
		missing = append(missing, "template parser")
	}
	if o.LineSeparator != "" && o.LineSeparator != LF && o.LineSeparator != CRLF {
		missing = append(missing, fmt.Sprintf("valid line separator (got %q)", o.LineSeparator))
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrInvalidConfiguration, strings.Join(missing, ", "))
	}
	return nil
}

// identifierSet is a case-folded set of namespace prefixes.
type identifierSet map[string]struct{}

func newIdentifierSet(folder cases.Caser, ids []string) identifierSet {
	set := make(identifierSet, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		set[folder.String(id)] = struct{}{}
	}
	return set
}

func (s identifierSet) has(folded string) bool {
	_, ok := s[folded]
	return ok
}
