package wikiparser

import (
	"github.com/yaklabco/wikiparse/pkg/span"
	"github.com/yaklabco/wikiparse/pkg/wikiast"
)

// lineText returns the current text of the line behind handle.
func (st *parseState) lineText(handle int) string {
	return st.buf.Substring(st.lines.At(handle))
}

// subLine registers a new line handle covering part of the buffer.
func (st *parseState) subLine(s span.Span) int {
	return st.lines.Add(s)
}

// advance moves the start of the line behind handle forward by n bytes.
func (st *parseState) advance(handle, n int) {
	s := st.lines.At(handle)
	st.lines.Set(handle, span.New(min(s.Start+n, s.End), s.End))
}

// element parses the lines behind handles into a new ContentElement.
func (st *parseState) element(handles ...int) *wikiast.ContentElement {
	e := wikiast.NewContentElement("")
	st.fillElement(e, handles, false)
	return e
}

// buildSections assembles the lines behind handles into a section tree.
func (st *parseState) buildSections(handles []int) *wikiast.SectionContainer {
	var contents []*wikiast.SectionContent
	current := st.newSectionContent(nil, 0)

	for i := 0; i < len(handles); {
		h := handles[i]
		switch Classify(st.lineText(h)) {
		case LineEmpty:
			if st.hasAnchors(h) {
				p := wikiast.NewParagraph(wikiast.ParagraphNormal)
				st.fillElement(p.Element(), []int{h}, false)
				current.Add(p)
			}
			i++
		case LineSection:
			contents = append(contents, current)
			current = st.heading(h)
			i++
		case LineTable:
			table, n := st.buildTable(handles[i:])
			current.Add(table)
			i += n
		case LineList, LineListNumbered:
			list, n := st.buildList(handles[i:])
			current.Add(list)
			i += n
		case LineDefinitionList:
			dl, n := st.buildDefinitionList(handles[i:])
			current.Add(dl)
			i += n
		case LineHorizontalRule:
			st.stripRule(h)
			if Classify(st.lineText(h)) == LineEmpty {
				i++
				continue
			}
			p, n := st.buildParagraph(handles[i:])
			current.Add(p)
			i += n
		case LineParagraph:
			p, n := st.buildParagraph(handles[i:])
			current.Add(p)
			i += n
		case LineParagraphBoxed:
			p, n := st.buildBoxed(handles[i:])
			current.Add(p)
			i += n
		case LineParagraphIndented:
			st.advance(h, countLeading(st.lineText(h), ':'))
			p := wikiast.NewParagraph(wikiast.ParagraphIndented)
			st.fillElement(p.Element(), []int{h}, false)
			current.Add(p)
			i++
		}
	}
	contents = append(contents, current)

	kept := contents[:0]
	for _, c := range contents {
		if c.Title() != nil || !c.Empty() {
			kept = append(kept, c)
		}
	}
	return st.foldSections(kept)
}

func (st *parseState) newSectionContent(title *wikiast.ContentElement, level int) *wikiast.SectionContent {
	sc := wikiast.NewSectionContent(title, level)
	sc.SetSrcSpan(st.newSrcSpan())
	return sc
}

func (st *parseState) newSectionContainer(title *wikiast.ContentElement, level int) *wikiast.SectionContainer {
	c := wikiast.NewSectionContainer(title, level)
	c.SetSrcSpan(st.newSrcSpan())
	return c
}

// heading starts a new section from a heading line.
func (st *parseState) heading(h int) *wikiast.SectionContent {
	line := st.lines.At(h)
	level, start, end := SectionLevel(st.lineText(h))
	title := st.element(st.subLine(span.New(line.Start+start, line.Start+end)))
	return st.newSectionContent(title, level)
}

// stripRule removes the dashes of a horizontal rule.
func (st *parseState) stripRule(h int) {
	st.advance(h, countLeading(st.lineText(h), '-'))
}

// buildParagraph consumes a normal paragraph line and the normal lines that
// follow it.
func (st *parseState) buildParagraph(handles []int) (*wikiast.Paragraph, int) {
	n := 1
	for n < len(handles) && Classify(st.lineText(handles[n])) == LineParagraph {
		n++
	}
	p := wikiast.NewParagraph(wikiast.ParagraphNormal)
	st.fillElement(p.Element(), handles[:n], false)
	return p, n
}

// buildBoxed consumes preformatted lines, including blank lines between
// them. One leading space is removed from every line.
func (st *parseState) buildBoxed(handles []int) (*wikiast.Paragraph, int) {
	n := 1
	for last := 1; last < len(handles); last++ {
		t := Classify(st.lineText(handles[last]))
		if t == LineParagraphBoxed {
			n = last + 1
			continue
		}
		if t != LineEmpty {
			break
		}
	}
	for _, h := range handles[:n] {
		if c := st.buf.CharAt(st.lines.At(h).Start); c == ' ' || c == '\t' {
			st.advance(h, 1)
		}
	}
	p := wikiast.NewParagraph(wikiast.ParagraphBoxed)
	st.fillElement(p.Element(), handles[:n], true)
	return p, n
}

// buildDefinitionList consumes a ';term:definition' line and the ':' lines
// that follow it.
func (st *parseState) buildDefinitionList(handles []int) (*wikiast.DefinitionList, int) {
	h := handles[0]
	st.advance(h, 1)
	line := st.lines.At(h)
	text := st.lineText(h)

	// The first colon splits the line, even when it is part of link text.
	termHandle, defHandle := h, -1
	for i := 0; i < len(text); i++ {
		if text[i] == ':' {
			termHandle = st.subLine(span.New(line.Start, line.Start+i))
			defHandle = st.subLine(span.New(line.Start+i+1, line.End))
			break
		}
	}

	dl := wikiast.NewDefinitionList(st.element(termHandle))
	dl.SetSrcSpan(st.newSrcSpan())
	if defHandle >= 0 {
		dl.AddDefinition(st.element(defHandle))
	}

	n := 1
	for n < len(handles) {
		next := handles[n]
		text := st.lineText(next)
		if text == "" || text[0] != ':' {
			break
		}
		st.advance(next, 1)
		dl.AddDefinition(st.element(next))
		n++
	}
	return dl, n
}

// foldSections nests a flat list of sections by level. A section of level
// L is placed L containers below the root; missing containers are created
// anonymously, or by promoting a preceding titled section so that deeper
// sections nest under their heading.
func (st *parseState) foldSections(contents []*wikiast.SectionContent) *wikiast.SectionContainer {
	root := st.newSectionContainer(nil, 0)
	path := []*wikiast.SectionContainer{root}

	for _, sc := range contents {
		depth := max(sc.Level(), 0)
		if len(path) > depth+1 {
			path = path[:depth+1]
		}
		for len(path) < depth+1 {
			parent := path[len(path)-1]
			path = append(path, st.containerUnder(parent, len(path)))
		}
		path[depth].AddSection(sc)
	}
	return root
}

// containerUnder returns the container at depth that the next section under
// parent belongs to.
func (st *parseState) containerUnder(parent *wikiast.SectionContainer, depth int) *wikiast.SectionContainer {
	sections := parent.Sections()
	if n := len(sections); n > 0 {
		switch last := sections[n-1].(type) {
		case *wikiast.SectionContainer:
			return last
		case *wikiast.SectionContent:
			if last.Title() != nil {
				promoted := st.newSectionContainer(last.Title(), last.Level())
				if !last.Empty() {
					body := st.newSectionContent(nil, depth)
					body.SetBlocks(last.Blocks())
					promoted.AddSection(body)
				}
				sections[n-1] = promoted
				return promoted
			}
		}
	}
	anonymous := st.newSectionContainer(nil, depth-1)
	parent.AddSection(anonymous)
	return anonymous
}

// hasAnchors reports whether an unclaimed link or template sits on a line
// that has no text, such as a line holding only a hidden image.
func (st *parseState) hasAnchors(h int) bool {
	line := st.lines.At(h)
	p := piece{line: line}
	for _, i := range st.links.StartsIn(line.Start, line.End) {
		if rec := st.linkRecs[i]; !rec.claimed && !rec.dead && p.holds(st.links.At(i)) {
			return true
		}
	}
	for _, i := range st.templates.StartsIn(line.Start, line.End) {
		if rec := st.templateRecs[i]; !rec.claimed && !rec.dead && p.holds(st.templates.At(i)) {
			return true
		}
	}
	return false
}

func countLeading(s string, c byte) int {
	n := 0
	for n < len(s) && s[n] == c {
		n++
	}
	return n
}
