package wikiparser

import "github.com/yaklabco/wikiparse/pkg/span"

// magicWords are behavior switches that carry no content.
var magicWords = []string{
	"__TOC__", "__NOTOC__", "__FORCETOC__", "__NOEDITSECTION__",
	"__NEWSECTIONLINK__", "__NOGALLERY__", "__NOINDEX__", "__INDEX__",
	"__HIDDENCAT__", "__NOCONTENTCONVERT__", "__NOTITLECONVERT__",
}

// normalizeLineSeparators makes every line end with the configured sequence.
func (st *parseState) normalizeLineSeparators() {
	buf := st.buf
	if st.p.opts.LineSeparator == CRLF {
		for pos := buf.IndexOf("\n", 0); pos >= 0; pos = buf.IndexOf("\n", pos+1) {
			if buf.CharAt(pos-1) != '\r' {
				buf.Insert(pos, "\r")
				pos++
			}
		}
		return
	}
	for pos := buf.IndexOf("\r\n", 0); pos >= 0; pos = buf.IndexOf("\r\n", pos) {
		buf.Delete(span.New(pos, pos+1))
	}
}

// stripComments deletes <!-- --> comments. An unclosed comment stays text.
func (st *parseState) stripComments() {
	buf := st.buf
	pos := 0
	for {
		start := buf.IndexOf("<!--", pos)
		if start < 0 {
			return
		}
		end := buf.IndexOf("-->", start+4)
		if end < 0 {
			return
		}
		buf.Delete(span.New(start, end+3))
		pos = start
	}
}

func (st *parseState) stripMagicWords() {
	buf := st.buf
	for _, word := range magicWords {
		for pos := buf.IndexOf(word, 0); pos >= 0; pos = buf.IndexOf(word, pos) {
			buf.Delete(span.New(pos, pos+len(word)))
		}
	}
}

// splitLines registers one span per line, excluding separators, and
// returns their handles in order.
func (st *parseState) splitLines() []int {
	sep := st.p.opts.LineSeparator.Sequence()
	var handles []int
	start := 0
	for {
		end := st.buf.IndexOf(sep, start)
		if end < 0 {
			handles = append(handles, st.lines.Add(span.New(start, st.buf.Len())))
			return handles
		}
		handles = append(handles, st.lines.Add(span.New(start, end)))
		start = end + len(sep)
	}
}
