package wikiparser

import "strings"

// LineType is the role of a line in the block structure.
type LineType uint8

const (
	LineEmpty LineType = iota
	LineTable
	LineSection
	LineHorizontalRule
	LineList
	LineListNumbered
	LineDefinitionList
	LineParagraph
	LineParagraphBoxed
	LineParagraphIndented
)

// String returns the name of the line type.
func (t LineType) String() string {
	switch t {
	case LineEmpty:
		return "EMPTYLINE"
	case LineTable:
		return "TABLE"
	case LineSection:
		return "SECTION"
	case LineHorizontalRule:
		return "HR"
	case LineList:
		return "NESTEDLIST"
	case LineListNumbered:
		return "NESTEDLIST_NR"
	case LineDefinitionList:
		return "DEFINITIONLIST"
	case LineParagraph:
		return "PARAGRAPH"
	case LineParagraphBoxed:
		return "PARAGRAPH_BOXED"
	case LineParagraphIndented:
		return "PARAGRAPH_INDENTED"
	default:
		return "UNKNOWN"
	}
}

// Classify returns the role of a single line. Trailing whitespace is ignored;
// leading whitespace is significant.
func Classify(line string) LineType {
	line = strings.TrimRight(line, " \t\r")
	if strings.TrimSpace(line) == "" {
		return LineEmpty
	}

	switch {
	case strings.HasPrefix(line, "{|"):
		return LineTable
	case len(line) >= 3 && line[0] == '=' && line[len(line)-1] == '=':
		return LineSection
	case strings.HasPrefix(line, "----"):
		return LineHorizontalRule
	}

	switch line[0] {
	case '*':
		return LineList
	case '#':
		return LineListNumbered
	case ';':
		return LineDefinitionList
	case ':':
		if strings.HasPrefix(strings.TrimLeft(line, ":"), "{|") {
			return LineTable
		}
		return LineParagraphIndented
	case ' ', '\t':
		if strings.HasPrefix(strings.TrimLeft(line, " \t"), "{|") {
			return LineTable
		}
		return LineParagraphBoxed
	default:
		return LineParagraph
	}
}

// SectionLevel returns the level of a heading line and the byte range of
// its title. Headings written with n equal signs on both sides have level
// n-1; unequal counts use the smaller one.
func SectionLevel(line string) (level, titleStart, titleEnd int) {
	line = strings.TrimRight(line, " \t\r")
	leading := len(line) - len(strings.TrimLeft(line, "="))
	trailing := len(line) - len(strings.TrimRight(line, "="))
	n := min(leading, trailing, (len(line)-1)/2)
	return n - 1, n, len(line) - n
}
