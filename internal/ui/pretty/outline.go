package pretty

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/yaklabco/wikiparse/pkg/wikiast"
)

const (
	outlineIndent = "  "
	ellipsis      = "…"
	minTextWidth  = 10
)

// FormatFileHeader formats the heading line printed above a page outline.
func (s *Styles) FormatFileHeader(path string, page *wikiast.ParsedPage) string {
	sections := len(page.Sections())
	return s.FilePath.Render(path) + " " +
		s.Dim.Render(fmt.Sprintf("(%d %s)", sections, plural(sections, "section", "sections")))
}

// FormatOutline renders the section tree of page, one node per line.
// Lines are cut to width display cells.
func (s *Styles) FormatOutline(page *wikiast.ParsedPage, width int) string {
	o := outline{styles: s, width: max(width, minTextWidth)}
	o.container(page.Root(), 0)

	if links := page.CategoryLinks(); len(links) > 0 {
		o.line(0, s.Kind.Render("categories"), s.Link.Render(targets(links)))
	}
	if links := page.LanguageLinks(); len(links) > 0 {
		o.line(0, s.Kind.Render("languages"), s.Link.Render(targets(links)))
	}
	for _, block := range page.CodeBlocks() {
		lang := block.Lang
		if lang == "" {
			lang = "unknown"
		}
		o.line(0, s.Kind.Render("code"), s.Dim.Render(lang))
	}
	return o.b.String()
}

type outline struct {
	styles *Styles
	width  int
	b      strings.Builder
}

// line writes label and text at depth, truncating the text to fit.
func (o *outline) line(depth int, label, text string) {
	prefix := strings.Repeat(outlineIndent, depth) + label
	o.b.WriteString(prefix)
	if text != "" {
		room := o.width - lipgloss.Width(prefix) - 1
		o.b.WriteString(" " + truncate(text, max(room, minTextWidth)))
	}
	o.b.WriteString("\n")
}

func (o *outline) container(c *wikiast.SectionContainer, depth int) {
	if c == nil {
		return
	}
	if title := c.Title(); title != nil {
		o.heading(c.Level(), title, depth)
		depth++
	}
	for _, sec := range c.Sections() {
		switch sec := sec.(type) {
		case *wikiast.SectionContainer:
			o.container(sec, depth)
		case *wikiast.SectionContent:
			o.section(sec, depth)
		}
	}
}

func (o *outline) heading(level int, title *wikiast.ContentElement, depth int) {
	marks := strings.Repeat("=", max(level, 0)+1)
	o.line(depth, o.styles.Kind.Render(marks), o.styles.Heading.Render(flatten(title.Text())))
}

func (o *outline) section(sec *wikiast.SectionContent, depth int) {
	if title := sec.Title(); title != nil {
		o.heading(sec.Level(), title, depth)
		depth++
	}
	for _, block := range sec.Blocks() {
		o.block(block, depth)
	}
}

func (o *outline) block(block wikiast.Content, depth int) {
	s := o.styles
	switch b := block.(type) {
	case *wikiast.Paragraph:
		label := "¶"
		if b.Type() != wikiast.ParagraphNormal {
			label = "¶ " + strings.ToLower(b.Type().String())
		}
		o.line(depth, s.Kind.Render(label)+o.refs(b), s.Paragraph.Render(flatten(b.Text())))
	case *wikiast.Table:
		caption := ""
		if b.Title() != nil {
			caption = flatten(b.Title().Text())
		}
		cells := len(b.Elements())
		o.line(depth, s.Table.Render(fmt.Sprintf("table [%d %s]", cells, plural(cells, "cell", "cells"))), caption)
		for _, cell := range b.Elements() {
			o.line(depth+1, s.Kind.Render(fmt.Sprintf("cell %d,%d", cell.Row(), cell.Col())), flatten(cell.Text()))
		}
	case *wikiast.NestedListContainer:
		o.list(b, depth)
	case *wikiast.DefinitionList:
		term := ""
		if b.Term() != nil {
			term = flatten(b.Term().Text())
		}
		o.line(depth, s.List.Render("definition"), s.Bold.Render(term))
		for _, def := range b.Definitions() {
			o.line(depth+1, s.Kind.Render(":")+o.refs(def), flatten(def.Text()))
		}
	default:
		o.line(depth, s.Kind.Render(block.Kind().String()), flatten(block.Text()))
	}
}

func (o *outline) list(l *wikiast.NestedListContainer, depth int) {
	s := o.styles
	marker := "*"
	if l.Numbered() {
		marker = "#"
	}
	for _, item := range l.Items() {
		switch it := item.(type) {
		case *wikiast.NestedListContainer:
			o.list(it, depth+1)
		default:
			o.line(depth, s.List.Render(marker)+o.refs(it), flatten(it.Text()))
		}
	}
}

// refs renders link and template counts of n, or nothing.
func (o *outline) refs(n wikiast.Content) string {
	var parts []string
	if links := len(n.Links()); links > 0 {
		parts = append(parts, o.styles.Link.Render(fmt.Sprintf("%d %s", links, plural(links, "link", "links"))))
	}
	if tpls := len(n.Templates()); tpls > 0 {
		parts = append(parts, o.styles.Template.Render(fmt.Sprintf("%d %s", tpls, plural(tpls, "template", "templates"))))
	}
	if len(parts) == 0 {
		return ""
	}
	return " [" + strings.Join(parts, ", ") + "]"
}

func targets(links []*wikiast.Link) string {
	names := make([]string, 0, len(links))
	for _, l := range links {
		names = append(names, l.Target)
	}
	return strings.Join(names, ", ")
}

// flatten puts text on one line.
func flatten(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

// truncate cuts text to width display cells, ending in an ellipsis when cut.
func truncate(text string, width int) string {
	if lipgloss.Width(text) <= width {
		return text
	}
	return lipgloss.NewStyle().MaxWidth(width-1).Render(text) + ellipsis
}
