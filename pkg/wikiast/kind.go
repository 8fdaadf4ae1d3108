// Package wikiast defines the document tree produced by the wiki parser.
//
// Every node implements Content. The set of node kinds is closed: code that
// needs kind-specific behavior switches on the concrete type or on Kind.
// All spans returned by a node are relative to that node's own Text.
package wikiast

// Kind identifies the concrete type of a Content node.
type Kind uint8

const (
	KindContentElement Kind = iota
	KindContentContainer
	KindSectionContainer
	KindSectionContent
	KindParagraph
	KindTable
	KindTableElement
	KindNestedListContainer
	KindNestedListElement
	KindDefinitionList
)

var kindNames = [...]string{
	KindContentElement:      "ContentElement",
	KindContentContainer:    "ContentContainer",
	KindSectionContainer:    "SectionContainer",
	KindSectionContent:      "SectionContent",
	KindParagraph:           "Paragraph",
	KindTable:               "Table",
	KindTableElement:        "TableElement",
	KindNestedListContainer: "NestedListContainer",
	KindNestedListElement:   "NestedListElement",
	KindDefinitionList:      "DefinitionList",
}

// String returns the name of the kind.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Unknown"
}

// FormatType tags a span of inline formatting.
type FormatType uint8

const (
	FormatBold FormatType = iota
	FormatItalic
	FormatTag
	FormatMath
	FormatNoWiki

	formatTypeCount
)

// NumFormatTypes is the number of format types.
const NumFormatTypes = int(formatTypeCount)

var formatNames = [...]string{
	FormatBold:   "BOLD",
	FormatItalic: "ITALIC",
	FormatTag:    "TAG",
	FormatMath:   "MATH",
	FormatNoWiki: "NOWIKI",
}

// String returns the upper-case name of the format type.
func (f FormatType) String() string {
	if f < formatTypeCount {
		return formatNames[f]
	}
	return "UNKNOWN"
}

// FormatTypes returns all format types in declaration order.
func FormatTypes() []FormatType {
	return []FormatType{FormatBold, FormatItalic, FormatTag, FormatMath, FormatNoWiki}
}

// ParagraphType distinguishes how a paragraph was written.
type ParagraphType uint8

const (
	// ParagraphNormal is plain running text.
	ParagraphNormal ParagraphType = iota
	// ParagraphBoxed is preformatted text introduced by leading spaces.
	ParagraphBoxed
	// ParagraphIndented is a line introduced by one or more colons.
	ParagraphIndented
)

// String returns the upper-case name of the paragraph type.
func (p ParagraphType) String() string {
	switch p {
	case ParagraphNormal:
		return "NORMAL"
	case ParagraphBoxed:
		return "BOXED"
	case ParagraphIndented:
		return "INDENTED"
	default:
		return "UNKNOWN"
	}
}
