package wikiparser

import (
	"slices"
	"strings"

	"github.com/yaklabco/wikiparse/pkg/span"
	"github.com/yaklabco/wikiparse/pkg/textbuf"
	"github.com/yaklabco/wikiparse/pkg/wikiast"
)

// ExternalLinkCaption is shown for bracketed external links without text.
const ExternalLinkCaption = "(LINK)"

// extractLinks matches [[ ]] pairs innermost first.
func (st *parseState) extractLinks() {
	buf := st.buf
	var stack []int
	pos := 0
	closeAt := -1
	for {
		if closeAt < pos {
			if closeAt = buf.IndexOf("]]", pos); closeAt < 0 {
				return
			}
		}
		if open := buf.IndexOfRange("[[", pos, closeAt); open >= 0 {
			stack = append(stack, open)
			pos = open + 2
			continue
		}
		if len(stack) == 0 {
			pos = closeAt + 2
			continue
		}
		start := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		pos = st.processLink(span.New(start, closeAt+2))
		closeAt = -1
	}
}

// processLink rewrites one [[ ]] link and returns the scan position after
// whatever is left of it.
func (st *parseState) processLink(whole span.Span) int {
	buf := st.buf
	innerStart := whole.Start + 2
	inner := buf.Substring(span.New(innerStart, whole.End-2))

	rawTarget, caption, hasPipe := strings.Cut(inner, "|")
	target := strings.TrimSpace(rawTarget)
	forced := strings.HasPrefix(target, ":")
	if forced {
		target = strings.TrimSpace(target[1:])
	}
	if target == "" {
		return whole.End
	}

	linkType := wikiast.LinkInternal
	if ns, _, found := strings.Cut(target, ":"); found && !forced {
		folded := st.fold(strings.TrimSpace(ns))
		switch {
		case st.p.images.has(folded):
			return st.processImage(whole, target, caption, hasPipe)
		case st.p.category.has(folded):
			return st.pullLink(whole, target, pulledCategory)
		case st.p.languages.has(folded):
			return st.pullLink(whole, target, pulledLanguage)
		default:
			linkType = wikiast.LinkUnknown
		}
	}

	var visible span.Span
	captionStart := innerStart + len(rawTarget) + 1
	if hasPipe && strings.TrimSpace(caption) != "" {
		visible = st.trimSpan(span.New(captionStart, whole.End-2))
	} else {
		visible = st.trimSpan(span.New(innerStart, innerStart+len(rawTarget)))
		if forced {
			visible = st.trimSpan(span.New(visible.Start+1, visible.End))
		}
	}

	handle := st.keepVisible(whole, visible, wikiast.NewLink(rewriteTarget(target), linkType, nil))
	if linkType == wikiast.LinkInternal {
		st.extendLinkTrail(handle)
	}
	return st.links.At(handle).End
}

func (st *parseState) processImage(whole span.Span, target, rest string, hasPipe bool) int {
	var params []string
	var segments []span.Span
	if hasPipe {
		restStart := whole.Start + 2 + strings.Index(st.buf.Substring(span.New(whole.Start+2, whole.End-2)), "|") + 1
		offset := restStart
		for _, part := range strings.Split(rest, "|") {
			seg := span.New(offset, offset+len(part))
			offset += len(part) + 1
			if p := strings.TrimSpace(part); p != "" {
				params = append(params, p)
				segments = append(segments, seg)
			}
		}
	}
	link := wikiast.NewLink(rewriteTarget(target), wikiast.LinkImage, params)

	if st.p.opts.ShowImageText && len(segments) > 0 {
		caption := st.trimSpan(segments[len(segments)-1])
		handle := st.keepVisible(whole, caption, link)
		return st.links.At(handle).End
	}

	st.removeMarkup(whole)
	st.links.Add(span.New(whole.Start, whole.Start))
	st.linkRecs = append(st.linkRecs, linkRecord{link: link})
	return whole.Start
}

// removeMarkup deletes whole. Blanks that would then start the line are
// deleted too so the line keeps its block type.
func (st *parseState) removeMarkup(whole span.Span) {
	st.killInside(whole)
	st.buf.Delete(whole)
	if whole.Start > 0 && st.buf.CharAt(whole.Start-1) != '\n' {
		return
	}
	end := whole.Start
	for c := st.buf.CharAt(end); c == ' ' || c == '\t'; c = st.buf.CharAt(end) {
		end++
	}
	st.buf.Delete(span.New(whole.Start, end))
}

// keepVisible deletes the markup of whole around visible and registers link
// over the remaining text. It returns the link handle.
func (st *parseState) keepVisible(whole, visible span.Span, link *wikiast.Link) int {
	handle := st.links.Add(visible)
	st.linkRecs = append(st.linkRecs, linkRecord{link: link})

	st.killInside(span.New(visible.End, whole.End))
	st.buf.Delete(span.New(visible.End, whole.End))
	st.killInside(span.New(whole.Start, visible.Start))
	st.buf.Delete(span.New(whole.Start, visible.Start))
	st.linkRecs[handle].dead = false
	return handle
}

// extendLinkTrail grows a link over letters directly following it.
func (st *parseState) extendLinkTrail(handle int) {
	s := st.links.At(handle)
	end := s.End
	for isASCIILetter(st.buf.CharAt(end)) {
		end++
	}
	st.links.Set(handle, span.New(s.Start, end))
}

// pullLink removes a category or interlanguage link from the text and
// records it for the page-level elements.
func (st *parseState) pullLink(whole span.Span, target string, kind pulledKind) int {
	st.removeMarkup(whole)
	anchor := st.anchors.Add(span.New(whole.Start, whole.Start))
	st.pulled = append(st.pulled, pulledLink{
		link:   wikiast.NewLink(rewriteTarget(target), wikiast.LinkInternal, nil),
		text:   target,
		kind:   kind,
		anchor: anchor,
	})
	return whole.Start
}

// buildPulledElements concatenates pulled links in document order into the
// page's category and language elements.
func (st *parseState) buildPulledElements() {
	ordered := slices.Clone(st.pulled)
	slices.SortStableFunc(ordered, func(a, b pulledLink) int {
		return st.anchors.At(a.anchor).Start - st.anchors.At(b.anchor).Start
	})

	build := func(kind pulledKind) *wikiast.ContentElement {
		var texts []string
		var spans []span.Span
		offset := 0
		for _, p := range ordered {
			if p.kind != kind {
				continue
			}
			if len(texts) > 0 {
				offset++
			}
			texts = append(texts, p.text)
			spans = append(spans, span.New(offset, offset+len(p.text)))
			offset += len(p.text)
		}
		elem := wikiast.NewContentElement(strings.Join(texts, " "))
		i := 0
		for _, p := range ordered {
			if p.kind == kind {
				elem.AddLink(p.link, spans[i])
				i++
			}
		}
		return elem
	}

	st.page.SetCategories(build(pulledCategory))
	st.page.SetLanguages(build(pulledLanguage))
}

// extractExternalLinks finds URLs for every configured protocol.
func (st *parseState) extractExternalLinks() {
	for _, l := range []*textbuf.SpanList{st.links, st.tags} {
		for _, s := range l.Spans() {
			st.maxTracked = max(st.maxTracked, s.Len())
		}
	}
	for _, proto := range st.p.protocols {
		pos := 0
		for {
			at := st.buf.IndexOf(proto, pos)
			if at < 0 {
				break
			}
			pos = st.processExternal(at, proto)
		}
	}
}

func (st *parseState) processExternal(at int, proto string) int {
	buf := st.buf
	if at > 0 && !isURLBoundary(buf.CharAt(at-1)) {
		return at + len(proto)
	}
	if st.insideTracked(at) {
		return at + len(proto)
	}

	end := at + len(proto)
	for end < buf.Len() && !isURLTerminator(buf.CharAt(end)) {
		end++
	}
	if end == at+len(proto) {
		return end
	}

	if buf.CharAt(at-1) == '[' {
		if closeAt := st.bracketClose(end); closeAt >= 0 {
			url := buf.Substring(span.New(at, end))
			link := wikiast.NewLink(url, wikiast.LinkExternal, nil)
			whole := span.New(at-1, closeAt+1)
			caption := st.trimSpan(span.New(end, closeAt))
			if caption.IsEmpty() {
				st.rewrite(whole, ExternalLinkCaption)
				// A rewrite next to a tracked span may widen it.
				st.maxTracked += len(ExternalLinkCaption)
				st.links.Add(span.New(whole.Start, whole.Start+len(ExternalLinkCaption)))
				st.linkRecs = append(st.linkRecs, linkRecord{link: link})
				return whole.Start + len(ExternalLinkCaption)
			}
			handle := st.keepVisible(whole, caption, link)
			st.maxTracked = max(st.maxTracked, st.links.At(handle).Len())
			return st.links.At(handle).End
		}
	}

	for end > at+len(proto) && strings.IndexByte(".,;:!?)'", buf.CharAt(end-1)) >= 0 {
		end--
	}
	url := buf.Substring(span.New(at, end))
	st.maxTracked = max(st.maxTracked, end-at)
	st.links.Add(span.New(at, end))
	st.linkRecs = append(st.linkRecs, linkRecord{link: wikiast.NewLink(url, wikiast.LinkExternal, nil)})
	return end
}

// bracketClose returns the ']' closing an external link on the current line.
func (st *parseState) bracketClose(from int) int {
	for i := from; i < st.buf.Len(); i++ {
		switch st.buf.CharAt(i) {
		case ']':
			return i
		case '\n', '[':
			return -1
		}
	}
	return -1
}

// insideTracked reports whether pos lies in a link found earlier or in a
// kept tag.
func (st *parseState) insideTracked(pos int) bool {
	from := max(0, pos-st.maxTracked)
	for _, i := range st.links.StartsIn(from, pos) {
		if !st.linkRecs[i].dead && st.links.At(i).Contains(pos) {
			return true
		}
	}
	for _, i := range st.tags.StartsIn(from, pos) {
		if st.tags.At(i).Contains(pos) {
			return true
		}
	}
	return false
}

// trimSpan narrows s to exclude surrounding whitespace in the buffer.
func (st *parseState) trimSpan(s span.Span) span.Span {
	for s.Start < s.End && isSpace(st.buf.CharAt(s.Start)) {
		s.Start++
	}
	for s.End > s.Start && isSpace(st.buf.CharAt(s.End-1)) {
		s.End--
	}
	return s
}

func rewriteTarget(target string) string {
	return strings.ReplaceAll(target, " ", "_")
}

func isURLBoundary(c byte) bool {
	return strings.IndexByte(" \t\n\r[(|>\"'*#;=", c) >= 0
}

func isURLTerminator(c byte) bool {
	return c == span.ErrorChar || strings.IndexByte(" \t\n\r[]<>\"|{}", c) >= 0
}

func isASCIILetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}
