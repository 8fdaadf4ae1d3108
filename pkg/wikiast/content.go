package wikiast

import "github.com/yaklabco/wikiparse/pkg/span"

// Content is implemented by every node of the document tree.
type Content interface {
	// Kind returns the concrete node kind.
	Kind() Kind

	// Text returns the plain text of the node. Containers join their parts
	// with a single space.
	Text() string

	// Len returns len(Text()).
	Len() int

	// Empty reports whether the node carries no content.
	Empty() bool

	// Parts returns the direct children whose texts make up Text.
	Parts() []Content

	FormatSpans(t FormatType) []span.Span
	FormatSpansIn(t FormatType, s span.Span) []span.Span
	Formats() []FormatType

	Links() []*Link
	LinksIn(s span.Span) []*Link
	LinksOfType(t LinkType) []*Link

	Templates() []*Template
	TemplatesIn(s span.Span) []*Template

	// SrcSpan returns the range of the original input the node came from,
	// or nil when source tracking was disabled.
	SrcSpan() *span.SourceSpan
	SetSrcSpan(s *span.SourceSpan)

	content()
}

func filterSpans(spans []span.Span, s span.Span) []span.Span {
	var out []span.Span
	for _, x := range spans {
		if x.Hits(s) {
			out = append(out, x)
		}
	}
	return out
}

func filterLinks(links []*Link, s span.Span) []*Link {
	var out []*Link
	for _, l := range links {
		if l.Pos.Hits(s) {
			out = append(out, l)
		}
	}
	return out
}

func linksOfType(links []*Link, t LinkType) []*Link {
	var out []*Link
	for _, l := range links {
		if l.Type == t {
			out = append(out, l)
		}
	}
	return out
}

func filterTemplates(templates []*Template, s span.Span) []*Template {
	var out []*Template
	for _, t := range templates {
		if t.Pos.Hits(s) {
			out = append(out, t)
		}
	}
	return out
}

func formatsOf(c Content) []FormatType {
	var out []FormatType
	for _, t := range FormatTypes() {
		if len(c.FormatSpans(t)) > 0 {
			out = append(out, t)
		}
	}
	return out
}
