package wikiparser

import (
	"slices"
	"strings"

	"github.com/yaklabco/wikiparse/pkg/langdetect"
	"github.com/yaklabco/wikiparse/pkg/span"
	"github.com/yaklabco/wikiparse/pkg/wikiast"
)

// Spacers stand in for verbatim content until inline parsing is done.
const (
	NoWikiSpacer = "(NOWIKI)"
	MathSpacer   = "(MATH)"
)

// tag is one <name ...>, </name> or <name/> marker.
type tag struct {
	span        span.Span
	name        string
	attrs       string
	closing     bool
	selfClosing bool
}

// nextTag finds the first tag marker at or after pos.
func (st *parseState) nextTag(pos int) (tag, bool) {
	buf := st.buf
	for {
		lt := buf.IndexOf("<", pos)
		if lt < 0 {
			return tag{}, false
		}
		if t, ok := st.tagAt(lt); ok {
			return t, true
		}
		pos = lt + 1
	}
}

func (st *parseState) tagAt(lt int) (tag, bool) {
	buf := st.buf
	t := tag{}
	i := lt + 1
	if buf.CharAt(i) == '/' {
		t.closing = true
		i++
	}
	nameStart := i
	for isTagNameChar(buf.CharAt(i), i == nameStart) {
		i++
	}
	if i == nameStart {
		return tag{}, false
	}
	t.name = strings.ToLower(buf.Substring(span.New(nameStart, i)))

	gt := -1
	for j := i; j < buf.Len(); j++ {
		c := buf.CharAt(j)
		if c == '<' {
			return tag{}, false
		}
		if c == '>' {
			gt = j
			break
		}
	}
	if gt < 0 {
		return tag{}, false
	}
	next := buf.CharAt(i)
	if next != '>' && next != '/' && next != ' ' && next != '\t' && next != '\n' && next != '\r' {
		return tag{}, false
	}

	attrs := buf.Substring(span.New(i, gt))
	if strings.HasSuffix(attrs, "/") {
		t.selfClosing = true
		attrs = attrs[:len(attrs)-1]
	}
	t.attrs = strings.TrimSpace(attrs)
	t.span = span.New(lt, gt+1)
	return t, true
}

func isTagNameChar(c byte, first bool) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		return true
	case c >= '0' && c <= '9':
		return !first
	default:
		return false
	}
}

// findClosing returns the closing tag for name at or after pos.
func (st *parseState) findClosing(name string, pos int) (tag, bool) {
	needle := "</" + name
	for {
		at := st.indexFold(needle, pos)
		if at < 0 {
			return tag{}, false
		}
		if t, ok := st.tagAt(at); ok && t.closing && t.name == name {
			return t, true
		}
		pos = at + 1
	}
}

// indexFold is IndexOf with ASCII case folding.
func (st *parseState) indexFold(needle string, from int) int {
	buf := st.buf
	n := len(needle)
	for i := max(from, 0); i+n <= buf.Len(); i++ {
		match := true
		for j := 0; j < n; j++ {
			if lowerASCII(buf.CharAt(i+j)) != lowerASCII(needle[j]) {
				match = false
				break
			}
		}
		if match {
			return i
		}
	}
	return -1
}

func lowerASCII(c byte) byte {
	if c >= 'A' && c <= 'Z' {
		return c + ('a' - 'A')
	}
	return c
}

// attr returns the value of key in a tag attribute string.
func attr(attrs, key string) string {
	lower := strings.ToLower(attrs)
	idx := strings.Index(lower, key+"=")
	if idx < 0 {
		return ""
	}
	value := attrs[idx+len(key)+1:]
	if value == "" {
		return ""
	}
	if q := value[0]; q == '"' || q == '\'' {
		if end := strings.IndexByte(value[1:], q); end >= 0 {
			return value[1 : end+1]
		}
		return value[1:]
	}
	if end := strings.IndexAny(value, " \t"); end >= 0 {
		return value[:end]
	}
	return value
}

// extractVerbatim swaps nowiki, pre, source, syntaxhighlight and math
// blocks for spacers so no later pass looks inside them.
func (st *parseState) extractVerbatim() {
	buf := st.buf
	pos := 0
	for {
		open, ok := st.nextTag(pos)
		if !ok {
			return
		}
		pos = open.span.End
		if open.closing {
			continue
		}

		switch open.name {
		case "nowiki", "pre", "source", "syntaxhighlight", "math":
		default:
			continue
		}

		if open.selfClosing {
			buf.Delete(open.span)
			pos = open.span.Start
			continue
		}

		closeTag, ok := st.findClosing(open.name, open.span.End)
		if !ok {
			continue
		}
		whole := span.New(open.span.Start, closeTag.span.End)
		content := buf.Substring(span.New(open.span.End, closeTag.span.Start))

		switch open.name {
		case "math":
			if !st.p.opts.ShowMathTagContent {
				buf.Delete(whole)
				pos = whole.Start
				continue
			}
			st.addPlaceholder(whole, wikiast.FormatMath, MathSpacer, content)
		case "source", "syntaxhighlight":
			st.page.AddCodeBlock(wikiast.CodeBlock{
				Lang: langdetect.ForCodeBlock(attr(open.attrs, "lang"), content),
				Text: content,
			})
			st.addPlaceholder(whole, wikiast.FormatNoWiki, NoWikiSpacer, content)
		default:
			st.addPlaceholder(whole, wikiast.FormatNoWiki, NoWikiSpacer, content)
		}
		pos = st.holders.At(len(st.holderRecs) - 1).End
	}
}

func (st *parseState) addPlaceholder(whole span.Span, format wikiast.FormatType, spacer, content string) {
	st.buf.Replace(whole, spacer)
	st.holders.Add(span.New(whole.Start, whole.Start+len(spacer)))
	st.holderRecs = append(st.holderRecs, placeholder{format: format, spacer: spacer, content: content})
}

// liveHolder reports whether placeholder i still holds its spacer.
func (st *parseState) liveHolder(i int) bool {
	return st.holders.At(i).Len() == len(st.holderRecs[i].spacer)
}

// expandPlaceholders returns the text of region with live spacers replaced
// by their original content.
func (st *parseState) expandPlaceholders(region span.Span) string {
	text := st.buf.Substring(region)
	type hit struct {
		at      int
		n       int
		content string
	}
	var hits []hit
	for _, i := range st.holders.StartsIn(region.Start, region.End) {
		s := st.holders.At(i)
		if st.liveHolder(i) && s.End <= region.End {
			hits = append(hits, hit{at: s.Start - region.Start, n: s.Len(), content: st.holderRecs[i].content})
		}
	}
	if len(hits) == 0 {
		return text
	}
	slices.SortStableFunc(hits, func(a, b hit) int { return a.at - b.at })
	var sb strings.Builder
	last := 0
	for _, h := range hits {
		sb.WriteString(text[last:h.at])
		sb.WriteString(h.content)
		last = h.at + h.n
	}
	sb.WriteString(text[last:])
	return sb.String()
}

// extractTags handles galleries and then deletes or marks every other tag.
func (st *parseState) extractTags() {
	buf := st.buf
	pos := 0
	for {
		t, ok := st.nextTag(pos)
		if !ok {
			return
		}
		if t.name == "gallery" && !t.closing && !t.selfClosing {
			if closeTag, found := st.findClosing("gallery", t.span.End); found {
				pos = st.rewriteGallery(t, closeTag)
				continue
			}
		}
		if st.p.opts.DeleteTags {
			buf.Delete(t.span)
			pos = t.span.Start
			continue
		}
		st.tags.Add(t.span)
		st.tagClaimed = append(st.tagClaimed, false)
		pos = t.span.End
	}
}

// rewriteGallery turns every gallery line into an image link and returns
// the start of the rewritten block so tags in captions are still seen.
func (st *parseState) rewriteGallery(open, closeTag tag) int {
	content := st.buf.Substring(span.New(open.span.End, closeTag.span.Start))
	prefix := st.p.opts.ImageIdentifiers[0]

	var lines []string
	for _, line := range strings.Split(strings.ReplaceAll(content, "\r\n", "\n"), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		target, _, _ := strings.Cut(line, "|")
		if ns, _, found := strings.Cut(target, ":"); !found || !st.p.images.has(st.fold(strings.TrimSpace(ns))) {
			line = prefix + ":" + line
		}
		lines = append(lines, "[["+line+"]]")
	}

	whole := span.New(open.span.Start, closeTag.span.End)
	replacement := strings.Join(lines, st.p.opts.LineSeparator.Sequence())
	st.rewrite(whole, replacement)
	return whole.Start
}
