package wikiast

import (
	"slices"
	"strings"

	"github.com/yaklabco/wikiparse/pkg/span"
)

// ContentElement is a flat piece of text with formatting, links and
// templates attached to it.
type ContentElement struct {
	text      string
	formats   [formatTypeCount][]span.Span
	links     []*Link
	templates []*Template
	src       *span.SourceSpan
}

// NewContentElement returns an element holding text.
func NewContentElement(text string) *ContentElement {
	return &ContentElement{text: text}
}

func (e *ContentElement) Kind() Kind   { return KindContentElement }
func (e *ContentElement) Text() string { return e.text }
func (e *ContentElement) Len() int     { return len(e.text) }
func (e *ContentElement) Parts() []Content {
	return nil
}

// SetText replaces the text. Spans are not adjusted.
func (e *ContentElement) SetText(text string) {
	e.text = text
}

// Empty reports whether the element has only whitespace and no links or
// templates.
func (e *ContentElement) Empty() bool {
	return strings.TrimSpace(e.text) == "" && len(e.links) == 0 && len(e.templates) == 0
}

// AddFormatSpan records a span of formatting t. Spans outside the text are
// clamped.
func (e *ContentElement) AddFormatSpan(t FormatType, s span.Span) {
	if t >= formatTypeCount {
		return
	}
	e.formats[t] = append(e.formats[t], s.Clamp(len(e.text)))
}

// AddLink attaches a copy of l to the element at pos and returns it.
func (e *ContentElement) AddLink(l *Link, pos span.Span) *Link {
	attached := l.Attach(e, pos.Clamp(len(e.text)))
	e.links = append(e.links, attached)
	return attached
}

// AddTemplate records a copy of t at pos.
func (e *ContentElement) AddTemplate(t *Template, pos span.Span) *Template {
	placed := t.WithPos(pos.Clamp(len(e.text)))
	e.templates = append(e.templates, placed)
	return placed
}

func (e *ContentElement) FormatSpans(t FormatType) []span.Span {
	if t >= formatTypeCount {
		return nil
	}
	return slices.Clone(e.formats[t])
}

func (e *ContentElement) FormatSpansIn(t FormatType, s span.Span) []span.Span {
	return filterSpans(e.FormatSpans(t), s)
}

func (e *ContentElement) Formats() []FormatType { return formatsOf(e) }

func (e *ContentElement) Links() []*Link { return slices.Clone(e.links) }

func (e *ContentElement) LinksIn(s span.Span) []*Link { return filterLinks(e.links, s) }

func (e *ContentElement) LinksOfType(t LinkType) []*Link { return linksOfType(e.links, t) }

func (e *ContentElement) Templates() []*Template { return slices.Clone(e.templates) }

func (e *ContentElement) TemplatesIn(s span.Span) []*Template {
	return filterTemplates(e.templates, s)
}

func (e *ContentElement) SrcSpan() *span.SourceSpan     { return e.src }
func (e *ContentElement) SetSrcSpan(s *span.SourceSpan) { e.src = s }

func (*ContentElement) content() {}

// Paragraph is a block of running text.
type Paragraph struct {
	ContentElement

	typ ParagraphType
}

// NewParagraph returns a paragraph of the given type.
func NewParagraph(typ ParagraphType) *Paragraph {
	return &Paragraph{typ: typ}
}

func (p *Paragraph) Kind() Kind { return KindParagraph }

// Type returns how the paragraph was written.
func (p *Paragraph) Type() ParagraphType { return p.typ }

// Element returns the element the paragraph's links point home to.
func (p *Paragraph) Element() *ContentElement { return &p.ContentElement }

// NestedListElement is a single entry of a nested list.
type NestedListElement struct {
	ContentElement
}

// NewNestedListElement returns an empty list entry.
func NewNestedListElement() *NestedListElement {
	return &NestedListElement{}
}

func (n *NestedListElement) Kind() Kind { return KindNestedListElement }

// Element returns the element the entry's links point home to.
func (n *NestedListElement) Element() *ContentElement { return &n.ContentElement }

func (*NestedListElement) nestedList() {}
