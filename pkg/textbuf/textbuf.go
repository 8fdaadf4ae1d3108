// Package textbuf implements the parser's working buffer: a mutable byte
// buffer that keeps registered span lists pointing at the same logical
// content across edits, and optionally maps working offsets back to the
// original input.
//
// Edits cost time proportional to their distance from the previous edit
// rather than to the size of the buffer, so passes that edit from left to
// right run in linear time.
package textbuf

import (
	"slices"

	"github.com/yaklabco/wikiparse/pkg/span"
)

// SpanList is an ordered group of spans rebased together by the Buffer that
// manages it. Spans are addressed by the index returned from Add, which
// stays valid for the lifetime of the list.
type SpanList struct {
	spans []span.Span
	refs  []*ref
	buf   *Buffer
}

// NewSpanList returns an empty list.
func NewSpanList() *SpanList {
	return &SpanList{}
}

// Add appends s and returns its handle.
func (l *SpanList) Add(s span.Span) int {
	if l.buf == nil {
		l.spans = append(l.spans, s)
		return len(l.spans) - 1
	}
	handle := len(l.refs)
	l.refs = append(l.refs, l.buf.track(l, handle, s))
	return handle
}

// At returns the current value of the span behind handle i.
func (l *SpanList) At(i int) span.Span {
	if l.buf == nil {
		return l.spans[i]
	}
	r := l.refs[i]
	return span.Span{Start: l.buf.marks.pos(r.start), End: l.buf.marks.pos(r.end)}
}

// Set replaces the span behind handle i.
func (l *SpanList) Set(i int, s span.Span) {
	if l.buf == nil {
		l.spans[i] = s
		return
	}
	l.refs[i].kill()
	l.refs[i] = l.buf.track(l, i, s)
}

// Len returns the number of handles issued.
func (l *SpanList) Len() int {
	if l.buf == nil {
		return len(l.spans)
	}
	return len(l.refs)
}

// Spans returns a copy of the current spans.
func (l *SpanList) Spans() []span.Span {
	if l.buf == nil {
		return slices.Clone(l.spans)
	}
	out := make([]span.Span, len(l.refs))
	for i := range l.refs {
		out[i] = l.At(i)
	}
	return out
}

// StartsIn returns, in ascending order, the handles of spans starting at an
// offset in [from, to].
func (l *SpanList) StartsIn(from, to int) []int {
	var handles []int
	if l.buf == nil {
		for i, s := range l.spans {
			if s.Start >= from && s.Start <= to {
				handles = append(handles, i)
			}
		}
		return handles
	}
	l.buf.marks.each(from, to, func(m *mark) {
		if m.ref.list == l && m == m.ref.start {
			handles = append(handles, m.ref.handle)
		}
	})
	slices.Sort(handles)
	return handles
}

// Clear drops all spans. Handles issued before Clear become invalid.
func (l *SpanList) Clear() {
	for _, r := range l.refs {
		r.kill()
	}
	l.refs = l.refs[:0]
	l.spans = l.spans[:0]
}

func (r *ref) kill() {
	r.start.dead = true
	r.end.dead = true
}

// Buffer is the mutable working text of one parse.
type Buffer struct {
	text   gapText
	marks  markIndex
	srcLen int
}

// New returns a buffer holding text. When trackSource is set the buffer
// records, for every working byte, the offset it came from in text.
func New(text string, trackSource bool) *Buffer {
	return &Buffer{
		text:   newGapText(text, trackSource),
		marks:  markIndex{length: len(text)},
		srcLen: len(text),
	}
}

// Manage registers l so its spans are rebased by every later edit.
func (b *Buffer) Manage(l *SpanList) {
	if l.buf == b {
		return
	}
	if l.buf != nil {
		l.buf.Unmanage(l)
	}
	l.buf = b
	l.refs = make([]*ref, len(l.spans))
	marks := make([]*mark, 0, 2*len(l.spans))
	for i, s := range l.spans {
		r := newRef(l, i)
		r.start.val, r.end.val = s.Start, s.End
		l.refs[i] = r
		marks = append(marks, r.start, r.end)
	}
	l.spans = nil
	if len(marks) > 0 {
		b.marks.addAll(marks)
	}
}

// Unmanage stops rebasing l. Its spans keep their current values.
func (b *Buffer) Unmanage(l *SpanList) {
	if l.buf != b {
		return
	}
	spans := l.Spans()
	for _, r := range l.refs {
		r.kill()
	}
	l.spans, l.refs, l.buf = spans, nil, nil
}

func newRef(l *SpanList, handle int) *ref {
	r := &ref{list: l, handle: handle}
	r.start = &mark{ref: r}
	r.end = &mark{ref: r}
	return r
}

func (b *Buffer) track(l *SpanList, handle int, s span.Span) *ref {
	r := newRef(l, handle)
	b.marks.add(r.start, s.Start)
	b.marks.add(r.end, max(s.End, s.Start))
	return r
}

// Len returns the current length of the buffer.
func (b *Buffer) Len() int {
	return b.text.len()
}

// String returns the current text.
func (b *Buffer) String() string {
	return b.text.slice(0, b.Len())
}

// Substring returns the text covered by s, clamped to the buffer.
func (b *Buffer) Substring(s span.Span) string {
	s = s.Clamp(b.Len())
	return b.text.slice(s.Start, s.End)
}

// CharAt returns the byte at pos or span.ErrorChar when out of range.
func (b *Buffer) CharAt(pos int) byte {
	if pos < 0 || pos >= b.Len() {
		return span.ErrorChar
	}
	return b.text.at(pos)
}

// IndexOf returns the first index of needle at or after from, or -1.
func (b *Buffer) IndexOf(needle string, from int) int {
	return b.IndexOfRange(needle, from, b.Len())
}

// IndexOfRange returns the first index of needle within [from, to), or -1.
func (b *Buffer) IndexOfRange(needle string, from, to int) int {
	from = max(from, 0)
	to = min(to, b.Len())
	if from >= to {
		return -1
	}
	return b.text.index([]byte(needle), from, to)
}

// Delete removes the text covered by s.
func (b *Buffer) Delete(s span.Span) {
	s = s.Clamp(b.Len())
	if s.IsEmpty() {
		return
	}
	b.text.delete(s.Start, s.End)
	b.marks.remove(s.Start, s.End)
}

// Insert places text at pos. Spans starting at pos move right; spans
// ending at pos keep their end.
func (b *Buffer) Insert(pos int, text string) {
	pos = min(max(pos, 0), b.Len())
	if text == "" {
		return
	}
	b.text.insert(pos, text, b.sourceAt(pos))
	b.marks.insert(pos, len(text), false)
}

// Replace substitutes text for the content of s. Spans covering s keep
// covering the replacement; spans after s shift by the length delta.
func (b *Buffer) Replace(s span.Span, text string) {
	s = s.Clamp(b.Len())
	if s.IsEmpty() {
		b.Insert(s.Start, text)
		return
	}
	oldLen, newLen := s.Len(), len(text)
	common := min(oldLen, newLen)
	b.text.overwrite(s.Start, text[:common])

	switch {
	case newLen < oldLen:
		b.Delete(span.New(s.Start+newLen, s.End))
	case newLen > oldLen:
		b.text.insert(s.End, text[common:], b.sourceAt(s.End))
		b.marks.insert(s.End, newLen-oldLen, true)
	}
}

// TracksSource reports whether source offsets are recorded.
func (b *Buffer) TracksSource() bool {
	return b.text.src != nil
}

// SourcePositionOf maps a working offset to an offset in the original
// input. Inserted text maps to the position it was inserted before. The
// result is monotonic in pos and -1 when tracking is off.
func (b *Buffer) SourcePositionOf(pos int) int {
	if !b.TracksSource() {
		return span.Unset
	}
	return b.sourceAt(min(max(pos, 0), b.Len()))
}

// SourceSpanOf maps a working span to the source range it came from, or
// returns nil when tracking is off.
func (b *Buffer) SourceSpanOf(s span.Span) *span.SourceSpan {
	if !b.TracksSource() {
		return nil
	}
	s = s.Clamp(b.Len())
	start := b.sourceAt(s.Start)
	end := start
	if !s.IsEmpty() {
		end = min(b.text.srcAt(s.End-1)+1, b.srcLen)
	}
	return &span.SourceSpan{Start: start, End: max(start, end)}
}

func (b *Buffer) sourceAt(pos int) int {
	if !b.TracksSource() {
		return 0
	}
	if pos < b.Len() {
		return b.text.srcAt(pos)
	}
	return b.srcLen
}
