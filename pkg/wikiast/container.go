package wikiast

import (
	"strings"

	"github.com/yaklabco/wikiparse/pkg/span"
)

// composite implements the text and query methods of every container kind
// on top of the parts reported by the embedding node.
type composite struct {
	self interface{ Parts() []Content }
	src  *span.SourceSpan
}

func (c *composite) Text() string {
	parts := c.self.Parts()
	texts := make([]string, len(parts))
	for i, p := range parts {
		texts[i] = p.Text()
	}
	return strings.Join(texts, " ")
}

func (c *composite) Len() int {
	parts := c.self.Parts()
	if len(parts) == 0 {
		return 0
	}
	n := len(parts) - 1
	for _, p := range parts {
		n += p.Len()
	}
	return n
}

// each calls fn with every part and the offset of its text within Text.
func (c *composite) each(fn func(p Content, offset int)) {
	offset := 0
	for _, p := range c.self.Parts() {
		fn(p, offset)
		offset += p.Len() + 1
	}
}

func (c *composite) FormatSpans(t FormatType) []span.Span {
	var out []span.Span
	c.each(func(p Content, offset int) {
		for _, s := range p.FormatSpans(t) {
			out = append(out, s.Shift(offset))
		}
	})
	return out
}

func (c *composite) FormatSpansIn(t FormatType, s span.Span) []span.Span {
	return filterSpans(c.FormatSpans(t), s)
}

func (c *composite) Formats() []FormatType {
	var out []FormatType
	for _, t := range FormatTypes() {
		if len(c.FormatSpans(t)) > 0 {
			out = append(out, t)
		}
	}
	return out
}

func (c *composite) Links() []*Link {
	var out []*Link
	c.each(func(p Content, offset int) {
		for _, l := range p.Links() {
			out = append(out, l.shifted(offset))
		}
	})
	return out
}

func (c *composite) LinksIn(s span.Span) []*Link { return filterLinks(c.Links(), s) }

func (c *composite) LinksOfType(t LinkType) []*Link { return linksOfType(c.Links(), t) }

func (c *composite) Templates() []*Template {
	var out []*Template
	c.each(func(p Content, offset int) {
		for _, t := range p.Templates() {
			out = append(out, t.shifted(offset))
		}
	})
	return out
}

func (c *composite) TemplatesIn(s span.Span) []*Template {
	return filterTemplates(c.Templates(), s)
}

func (c *composite) SrcSpan() *span.SourceSpan     { return c.src }
func (c *composite) SetSrcSpan(s *span.SourceSpan) { c.src = s }

func (c *composite) allEmpty() bool {
	for _, p := range c.self.Parts() {
		if !p.Empty() {
			return false
		}
	}
	return true
}

// ContentContainer is a generic ordered group of content nodes.
type ContentContainer struct {
	composite

	children []Content
}

// NewContentContainer returns a container holding children.
func NewContentContainer(children ...Content) *ContentContainer {
	c := &ContentContainer{children: children}
	c.self = c
	return c
}

func (c *ContentContainer) Kind() Kind { return KindContentContainer }

// Add appends a child.
func (c *ContentContainer) Add(child Content) { c.children = append(c.children, child) }

func (c *ContentContainer) Parts() []Content { return c.children }

// Empty reports whether every child is empty.
func (c *ContentContainer) Empty() bool { return c.allEmpty() }

func (*ContentContainer) content() {}

func titled(title *ContentElement, rest []Content) []Content {
	if title == nil {
		return rest
	}
	return append([]Content{title}, rest...)
}
