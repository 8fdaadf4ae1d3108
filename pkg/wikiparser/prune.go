package wikiparser

import (
	"strings"

	"github.com/yaklabco/wikiparse/pkg/span"
	"github.com/yaklabco/wikiparse/pkg/wikiast"
)

// Prune removes empty paragraphs, lists, tables and sections below root,
// children first. A container whose only child is an untitled container
// takes over that child's sections. root itself is kept even when empty.
func Prune(root *wikiast.SectionContainer) {
	prune(root)
}

func prune(root *wikiast.SectionContainer) {
	pruneContainer(root)
}

func pruneContainer(c *wikiast.SectionContainer) {
	kept := make([]wikiast.Section, 0, len(c.Sections()))
	for _, s := range c.Sections() {
		switch s := s.(type) {
		case *wikiast.SectionContainer:
			pruneContainer(s)
		case *wikiast.SectionContent:
			pruneContent(s)
		}
		if !s.Empty() {
			kept = append(kept, s)
		}
	}
	for len(kept) == 1 {
		only, ok := kept[0].(*wikiast.SectionContainer)
		if !ok || only.Title() != nil {
			break
		}
		kept = only.Sections()
	}
	c.SetSections(kept)
}

func pruneContent(sc *wikiast.SectionContent) {
	kept := make([]wikiast.Content, 0, len(sc.Blocks()))
	for _, b := range sc.Blocks() {
		switch b := b.(type) {
		case *wikiast.Table:
			pruneTable(b)
		case *wikiast.NestedListContainer:
			pruneList(b)
		}
		if !b.Empty() {
			kept = append(kept, b)
		}
	}
	sc.SetBlocks(kept)
}

func pruneTable(t *wikiast.Table) {
	kept := make([]*wikiast.TableElement, 0, len(t.Elements()))
	for _, e := range t.Elements() {
		if body := e.Body(); body != nil {
			pruneContainer(body)
		}
		if !e.Empty() {
			kept = append(kept, e)
		}
	}
	t.SetElements(kept)
}

func pruneList(l *wikiast.NestedListContainer) {
	kept := make([]wikiast.NestedList, 0, len(l.Items()))
	for _, item := range l.Items() {
		if sub, ok := item.(*wikiast.NestedListContainer); ok {
			pruneList(sub)
		}
		if !item.Empty() {
			kept = append(kept, item)
		}
	}
	l.SetItems(kept)
}

// firstParagraphIndex returns the index of the first paragraph with text
// that is not covered by an image or a template, or -1.
func firstParagraphIndex(page *wikiast.ParsedPage) int {
	for i, p := range page.Paragraphs() {
		if hasPlainText(p.Element()) {
			return i
		}
	}
	return -1
}

func hasPlainText(e *wikiast.ContentElement) bool {
	text := []byte(e.Text())
	for _, l := range e.LinksOfType(wikiast.LinkImage) {
		blank(text, l.Pos)
	}
	for _, t := range e.Templates() {
		blank(text, t.Pos)
	}
	return strings.TrimSpace(string(text)) != ""
}

func blank(text []byte, s span.Span) {
	s = s.Clamp(len(text))
	for i := s.Start; i < s.End; i++ {
		text[i] = ' '
	}
}

// widenSourceSpans makes the source span of every node below c cover the
// source spans of its descendants.
func widenSourceSpans(c wikiast.Content) *span.SourceSpan {
	for _, part := range c.Parts() {
		child := widenSourceSpans(part)
		if child == nil || !child.IsSet() {
			continue
		}
		if c.SrcSpan() == nil {
			c.SetSrcSpan(span.NewSourceSpan())
		}
		c.SrcSpan().Widen(child)
	}
	return c.SrcSpan()
}
