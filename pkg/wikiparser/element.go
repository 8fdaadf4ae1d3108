package wikiparser

import (
	"strings"

	"github.com/yaklabco/wikiparse/pkg/span"
	"github.com/yaklabco/wikiparse/pkg/textbuf"
	"github.com/yaklabco/wikiparse/pkg/wikiast"
)

// piece is one line's contribution to an element's text. line is the
// untrimmed line and buf the part of it that ends up in the text.
type piece struct {
	line   span.Span
	buf    span.Span
	offset int
}

func (p piece) holds(s span.Span) bool {
	return s.Start >= p.line.Start && (s.Start < p.line.End || (s.IsEmpty() && s.Start == p.line.End))
}

// relative converts a buffer span into element coordinates, clipped to the piece.
func (p piece) relative(s span.Span) span.Span {
	start := min(max(s.Start, p.buf.Start), p.buf.End)
	end := min(max(s.End, start), p.buf.End)
	return span.New(start-p.buf.Start+p.offset, end-p.buf.Start+p.offset)
}

// elementParts collects the element-relative spans of one element before
// spacers and templates are substituted.
type elementParts struct {
	formats   [wikiast.NumFormatTypes]*textbuf.SpanList
	links     *textbuf.SpanList
	linkRecs  []*linkRecord
	holders   *textbuf.SpanList
	holderIdx []int
	templates *textbuf.SpanList
	tplIdx    []int
	blanks    *textbuf.SpanList
}

// fillElement parses the lines behind handles into e. Preformatted lines
// keep their leading whitespace and are joined with newlines; other lines
// are trimmed and joined with spaces.
func (st *parseState) fillElement(e *wikiast.ContentElement, handles []int, preformatted bool) {
	bold, italic := textbuf.NewSpanList(), textbuf.NewSpanList()
	st.buf.Manage(bold)
	st.buf.Manage(italic)
	for _, h := range handles {
		st.parseQuotes(h, bold, italic)
	}

	sep := " "
	if preformatted {
		sep = "\n"
	}

	var sb strings.Builder
	pieces := make([]piece, 0, len(handles))
	for i, h := range handles {
		line := st.lines.At(h)
		s := line
		if preformatted {
			for s.End > s.Start && isSpace(st.buf.CharAt(s.End-1)) {
				s.End--
			}
		} else {
			s = st.trimSpan(s)
		}
		if i > 0 {
			sb.WriteString(sep)
		}
		pieces = append(pieces, piece{line: line, buf: s, offset: sb.Len()})
		sb.WriteString(st.buf.Substring(s))
	}

	parts := elementParts{
		links:     textbuf.NewSpanList(),
		holders:   textbuf.NewSpanList(),
		templates: textbuf.NewSpanList(),
		blanks:    textbuf.NewSpanList(),
	}
	for i := range parts.formats {
		parts.formats[i] = textbuf.NewSpanList()
	}

	for k, p := range pieces {
		for _, i := range bold.StartsIn(p.line.Start, p.line.End) {
			if s := bold.At(i); p.holds(s) {
				parts.formats[wikiast.FormatBold].Add(p.relative(s))
			}
		}
		for _, i := range italic.StartsIn(p.line.Start, p.line.End) {
			if s := italic.At(i); p.holds(s) {
				parts.formats[wikiast.FormatItalic].Add(p.relative(s))
			}
		}
		st.claimItems(pieces, k, &parts)
	}

	bold.Clear()
	italic.Clear()
	st.buf.Unmanage(bold)
	st.buf.Unmanage(italic)

	if st.p.opts.CalculateSrcSpans {
		hull := span.NewSourceSpan()
		for _, p := range pieces {
			hull.Widen(st.buf.SourceSpanOf(p.buf))
		}
		e.SetSrcSpan(hull)
	}

	st.finishElement(e, sb.String(), &parts)
}

// claimItems moves tags, spacers, links and templates that start in
// pieces[k] into parts. Each item is claimed by at most one element.
func (st *parseState) claimItems(pieces []piece, k int, parts *elementParts) {
	p := pieces[k]
	from, to := p.line.Start, p.line.End
	for _, i := range st.tags.StartsIn(from, to) {
		if s := st.tags.At(i); !st.tagClaimed[i] && p.holds(s) {
			st.tagClaimed[i] = true
			parts.formats[wikiast.FormatTag].Add(p.relative(s))
		}
	}
	for _, i := range st.holders.StartsIn(from, to) {
		rec := &st.holderRecs[i]
		if s := st.holders.At(i); !rec.claimed && st.liveHolder(i) && p.holds(s) {
			rec.claimed = true
			parts.holders.Add(p.relative(s))
			parts.holderIdx = append(parts.holderIdx, i)
		}
	}
	for _, i := range st.links.StartsIn(from, to) {
		rec := &st.linkRecs[i]
		if s := st.links.At(i); !rec.claimed && !rec.dead && p.holds(s) {
			rec.claimed = true
			parts.links.Add(p.relative(s))
			parts.linkRecs = append(parts.linkRecs, rec)
		}
	}
	for _, i := range st.templates.StartsIn(from, to) {
		rec := &st.templateRecs[i]
		if s := st.templates.At(i); !rec.claimed && !rec.dead && p.holds(s) {
			rec.claimed = true
			parts.templates.Add(st.templateExtent(pieces, k, s))
			parts.tplIdx = append(parts.tplIdx, i)
		}
	}
	for _, i := range st.tails.StartsIn(max(0, from-st.maxTail), to) {
		if s := st.tails.At(i); s.Start < p.buf.End && s.End > p.buf.Start {
			parts.blanks.Add(p.relative(s))
		}
	}
}

// templateExtent returns the element span of a template starting in
// pieces[k]. A replacement spanning several lines covers its part of every
// following piece; whatever lies beyond the element is recorded as a tail
// and blanked from the elements built later.
func (st *parseState) templateExtent(pieces []piece, k int, s span.Span) span.Span {
	extent := pieces[k].relative(s)
	for _, q := range pieces[k+1:] {
		if s.End <= q.line.Start {
			break
		}
		extent.End = q.relative(s).End
	}
	if last := pieces[len(pieces)-1].line.End; s.End > last {
		tail := span.New(last, s.End)
		st.killInside(tail)
		st.tails.Add(tail)
		st.maxTail = max(st.maxTail, tail.Len())
	}
	return extent
}

// finishElement substitutes verbatim content and post-parse template text
// into text and stores the result with all spans in e.
func (st *parseState) finishElement(e *wikiast.ContentElement, text string, parts *elementParts) {
	local := textbuf.New(text, false)
	lists := []*textbuf.SpanList{parts.links, parts.holders, parts.templates, parts.blanks}
	for _, l := range parts.formats {
		lists = append(lists, l)
	}
	for _, l := range lists {
		local.Manage(l)
	}

	for i, idx := range parts.holderIdx {
		rec := st.holderRecs[idx]
		cur := parts.holders.At(i)
		if cur.Len() != len(rec.spacer) {
			continue
		}
		local.Replace(cur, rec.content)
		parts.formats[rec.format].Add(parts.holders.At(i))
	}
	for i, idx := range parts.tplIdx {
		if rec := st.templateRecs[idx]; !rec.retain {
			local.Replace(parts.templates.At(i), rec.post)
		}
	}
	if parts.blanks.Len() > 0 {
		for i := range parts.blanks.Len() {
			local.Delete(parts.blanks.At(i))
		}
		trimBuffer(local)
	}

	e.SetText(local.String())
	for _, t := range wikiast.FormatTypes() {
		for _, s := range parts.formats[t].Spans() {
			e.AddFormatSpan(t, s)
		}
	}
	for i, rec := range parts.linkRecs {
		e.AddLink(rec.link, parts.links.At(i))
	}
	for i, idx := range parts.tplIdx {
		rec := st.templateRecs[idx]
		pos := parts.templates.At(i)
		switch {
		case rec.link != nil:
			e.AddLink(rec.link, pos)
		case rec.tpl != nil:
			e.AddTemplate(rec.tpl, pos)
		}
	}

	for _, l := range lists {
		l.Clear()
		local.Unmanage(l)
	}
}

// trimBuffer deletes leading and trailing whitespace from buf.
func trimBuffer(buf *textbuf.Buffer) {
	end := buf.Len()
	for end > 0 && isSpace(buf.CharAt(end-1)) {
		end--
	}
	buf.Delete(span.New(end, buf.Len()))
	start := 0
	for start < buf.Len() && isSpace(buf.CharAt(start)) {
		start++
	}
	buf.Delete(span.New(0, start))
}
