// Package span provides the offset pair types used throughout the parser:
// Span indexes the mutable working buffer or a node's text, SourceSpan
// indexes the original input.
package span

// ErrorChar is returned by CharAt for out-of-range positions.
// 0xFF never occurs in valid UTF-8.
const ErrorChar byte = 0xFF

// Span is a half-open [Start, End) byte range.
type Span struct {
	// Start is the byte index where the span begins (inclusive).
	Start int `json:"start"`

	// End is the byte index where the span ends (exclusive).
	End int `json:"end"`
}

// New returns the span [start, end). Inverted input is collapsed at start.
func New(start, end int) Span {
	if end < start {
		end = start
	}
	return Span{Start: start, End: end}
}

// Len returns the length of the span in bytes.
func (s Span) Len() int {
	return s.End - s.Start
}

// IsEmpty returns true if the span has zero length.
func (s Span) IsEmpty() bool {
	return s.Start == s.End
}

// Contains returns true if offset lies within the span.
func (s Span) Contains(offset int) bool {
	return offset >= s.Start && offset < s.End
}

// Hits reports whether the two spans overlap. An empty span hits a span
// that covers its position.
func (s Span) Hits(other Span) bool {
	return (s.Start <= other.Start && other.Start < s.End) ||
		(other.Start <= s.Start && s.Start < other.End) ||
		(s.Start == other.Start)
}

// Shift translates the span by delta.
func (s Span) Shift(delta int) Span {
	return Span{Start: s.Start + delta, End: s.End + delta}
}

// Adjust applies an edit of n bytes at offset: a positive n inserts, a
// negative n deletes [offset, offset-n). Bounds that fall inside a deleted
// range are clamped to offset, so the result is never inverted. Spans that
// end at offset do not grow on insertion.
func (s Span) Adjust(offset, n int) Span {
	switch {
	case n > 0:
		if s.Start >= offset {
			s.Start += n
			s.End += n
		} else if s.End > offset {
			s.End += n
		}
	case n < 0:
		if s.Start > offset {
			s.Start = max(offset, s.Start+n)
		}
		if s.End > offset {
			s.End = max(offset, s.End+n)
		}
	}
	return s
}

// Grow applies an insertion of n bytes at offset that extends any span
// reaching offset from the left, including spans that end exactly there.
func (s Span) Grow(offset, n int) Span {
	if n <= 0 {
		return s.Adjust(offset, n)
	}
	if s.Start >= offset {
		return s.Shift(n)
	}
	if s.End >= offset {
		s.End += n
	}
	return s
}

// Trim returns the span with leading and trailing whitespace of text removed.
func (s Span) Trim(text string) Span {
	return s.TrimLeading(text).TrimTrailing(text)
}

// TrimLeading advances Start past whitespace.
func (s Span) TrimLeading(text string) Span {
	s = s.Clamp(len(text))
	for s.Start < s.End && isSpace(text[s.Start]) {
		s.Start++
	}
	return s
}

// TrimTrailing moves End back over whitespace.
func (s Span) TrimTrailing(text string) Span {
	s = s.Clamp(len(text))
	for s.End > s.Start && isSpace(text[s.End-1]) {
		s.End--
	}
	return s
}

// Clamp restricts the span to [0, length].
func (s Span) Clamp(length int) Span {
	s.Start = min(max(s.Start, 0), length)
	s.End = min(max(s.End, s.Start), length)
	return s
}

// CharAt returns the byte at Start+i of text, or ErrorChar when the
// position lies outside the span or the text.
func (s Span) CharAt(i int, text string) byte {
	pos := s.Start + i
	if i < 0 || pos >= s.End || pos < 0 || pos >= len(text) {
		return ErrorChar
	}
	return text[pos]
}

// Text returns the part of text covered by the span. Out-of-range bounds
// are clamped, so Text never panics.
func (s Span) Text(text string) string {
	s = s.Clamp(len(text))
	return text[s.Start:s.End]
}

// Clone returns an independent copy of the span.
func (s Span) Clone() Span {
	return s
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f' || c == '\v'
}
