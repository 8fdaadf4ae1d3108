package textbuf_test

import (
	"math/rand/v2"
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/wikiparse/pkg/span"
	"github.com/yaklabco/wikiparse/pkg/textbuf"
)

func managed(buf *textbuf.Buffer, spans ...span.Span) *textbuf.SpanList {
	list := textbuf.NewSpanList()
	for _, s := range spans {
		list.Add(s)
	}
	buf.Manage(list)
	return list
}

func TestDeleteRebasesSpans(t *testing.T) {
	t.Parallel()

	buf := textbuf.New("one two three", false)
	list := managed(buf, span.New(0, 3), span.New(4, 7), span.New(8, 13))

	buf.Delete(span.New(3, 7))

	assert.Equal(t, "one three", buf.String())
	assert.Equal(t, "one", buf.Substring(list.At(0)))
	assert.True(t, list.At(1).IsEmpty())
	assert.Equal(t, 3, list.At(1).Start)
	assert.Equal(t, "three", buf.Substring(list.At(2)))
}

func TestInsertRebasesSpans(t *testing.T) {
	t.Parallel()

	buf := textbuf.New("ab cd", false)
	list := managed(buf, span.New(0, 2), span.New(3, 5))

	buf.Insert(3, "xx ")

	assert.Equal(t, "ab xx cd", buf.String())
	assert.Equal(t, "ab", buf.Substring(list.At(0)))
	assert.Equal(t, "cd", buf.Substring(list.At(1)))
}

func TestReplaceKeepsCoveringSpan(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		replacement string
	}{
		{name: "shorter", replacement: "X"},
		{name: "same length", replacement: "XYZW"},
		{name: "longer", replacement: "XYZWVUT"},
		{name: "empty", replacement: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			buf := textbuf.New("aa{{x}}bb", false)
			list := managed(buf, span.New(0, 2), span.New(2, 7), span.New(7, 9))

			buf.Replace(list.At(1), tt.replacement)

			assert.Equal(t, "aa"+tt.replacement+"bb", buf.String())
			assert.Equal(t, "aa", buf.Substring(list.At(0)))
			assert.Equal(t, tt.replacement, buf.Substring(list.At(1)))
			assert.Equal(t, "bb", buf.Substring(list.At(2)))
		})
	}
}

func TestUnmanagedListIsNotRebased(t *testing.T) {
	t.Parallel()

	buf := textbuf.New("hello world", false)
	list := managed(buf, span.New(6, 11))
	buf.Unmanage(list)

	buf.Delete(span.New(0, 6))

	assert.Equal(t, span.New(6, 11), list.At(0))
}

func TestIndexOf(t *testing.T) {
	t.Parallel()

	buf := textbuf.New("a{{b}}c{{d}}", false)

	assert.Equal(t, 1, buf.IndexOf("{{", 0))
	assert.Equal(t, 7, buf.IndexOf("{{", 2))
	assert.Equal(t, -1, buf.IndexOfRange("{{", 2, 7))
	assert.Equal(t, -1, buf.IndexOf("{{", 100))
	assert.Equal(t, span.ErrorChar, buf.CharAt(-1))
	assert.Equal(t, byte('c'), buf.CharAt(6))
}

func TestSourcePositions(t *testing.T) {
	t.Parallel()

	source := "ab<!--c-->de"
	buf := textbuf.New(source, true)
	require.True(t, buf.TracksSource())

	buf.Delete(span.New(2, 10))
	require.Equal(t, "abde", buf.String())
	assert.Equal(t, 10, buf.SourcePositionOf(2))

	buf.Insert(2, "XY")
	require.Equal(t, "abXYde", buf.String())

	prev := -1
	for i := 0; i <= buf.Len(); i++ {
		pos := buf.SourcePositionOf(i)
		assert.GreaterOrEqual(t, pos, prev)
		prev = pos
	}

	assert.Equal(t, len(source), buf.SourcePositionOf(buf.Len()))
	assert.Equal(t, &span.SourceSpan{Start: 10, End: 12}, buf.SourceSpanOf(span.New(4, 6)))
	assert.Equal(t, &span.SourceSpan{Start: 0, End: 2}, buf.SourceSpanOf(span.New(0, 2)))
}

func TestSourceTrackingDisabled(t *testing.T) {
	t.Parallel()

	buf := textbuf.New("abc", false)

	assert.Equal(t, span.Unset, buf.SourcePositionOf(1))
	assert.Nil(t, buf.SourceSpanOf(span.New(0, 1)))
}

func TestStartsIn(t *testing.T) {
	t.Parallel()

	spans := []span.Span{span.New(8, 9), span.New(0, 2), span.New(4, 6), span.New(4, 4)}

	unmanaged := textbuf.NewSpanList()
	for _, s := range spans {
		unmanaged.Add(s)
	}
	assert.Equal(t, []int{2, 3}, unmanaged.StartsIn(3, 7))

	buf := textbuf.New("0123456789", false)
	list := managed(buf, spans...)
	other := managed(buf, span.New(4, 5))
	assert.Equal(t, []int{2, 3}, list.StartsIn(3, 7))
	assert.Equal(t, []int{0}, other.StartsIn(0, 9))
	assert.Equal(t, []int{0, 1, 2, 3}, list.StartsIn(0, 10))
	assert.Empty(t, list.StartsIn(10, 20))

	buf.Delete(span.New(0, 3))
	assert.Equal(t, []int{1, 2, 3}, list.StartsIn(0, 1))

	list.Set(0, span.New(2, 3))
	assert.Equal(t, []int{0, 1, 2, 3}, list.StartsIn(0, 2))
}

func TestIndexOfRangeAcrossEdits(t *testing.T) {
	t.Parallel()

	buf := textbuf.New("ab]]cd", false)
	buf.Delete(span.New(2, 3))
	buf.Insert(2, "]")
	require.Equal(t, "ab]]cd", buf.String())

	assert.Equal(t, 2, buf.IndexOf("]]", 0))
	assert.Equal(t, 2, buf.IndexOfRange("]]", 1, 4))
	assert.Equal(t, -1, buf.IndexOfRange("]]", 0, 3))
	assert.Equal(t, -1, buf.IndexOfRange("]]", 3, 6))
}

// spanModel rebases spans the slow way, one offset at a time.
type spanModel struct {
	text  string
	spans []span.Span
}

func (m *spanModel) insert(pos int, text string, grow bool) {
	n := len(text)
	m.text = m.text[:pos] + text + m.text[pos:]
	for i, s := range m.spans {
		if s.Start >= pos {
			s.Start += n
		}
		if s.End > pos || (s.End == pos && (grow || m.spans[i].Start == pos)) {
			s.End += n
		}
		m.spans[i] = s
	}
}

func (m *spanModel) delete(start, end int) {
	m.text = m.text[:start] + m.text[end:]
	shift := func(p int) int {
		switch {
		case p < start:
			return p
		case p < end:
			return start
		default:
			return p - (end - start)
		}
	}
	for i, s := range m.spans {
		m.spans[i] = span.New(shift(s.Start), shift(s.End))
	}
}

func (m *spanModel) replace(s span.Span, text string) {
	if s.IsEmpty() {
		m.insert(s.Start, text, false)
		return
	}
	common := min(s.Len(), len(text))
	m.text = m.text[:s.Start] + text[:common] + m.text[s.Start+common:]
	switch {
	case len(text) < s.Len():
		m.delete(s.Start+len(text), s.End)
	case len(text) > s.Len():
		m.insert(s.End, text[common:], true)
	}
}

func randomSpan(rng *rand.Rand, length int) span.Span {
	a, b := rng.IntN(length+1), rng.IntN(length+1)
	return span.New(min(a, b), max(a, b))
}

func randomText(rng *rand.Rand) string {
	const alphabet = "ab[]\n"
	b := make([]byte, rng.IntN(6))
	for i := range b {
		b[i] = alphabet[rng.IntN(len(alphabet))]
	}
	return string(b)
}

func TestEditsMatchModel(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewPCG(7, 11))
	initial := strings.Repeat("ab[[x]]\n", 40)
	buf := textbuf.New(initial, false)
	list := textbuf.NewSpanList()
	model := &spanModel{text: initial, spans: []span.Span{}}
	buf.Manage(list)

	for step := range 3000 {
		length := len(model.text)
		switch op := rng.IntN(10); {
		case op < 3:
			s := randomSpan(rng, length)
			list.Add(s)
			model.spans = append(model.spans, s)
		case op < 5:
			pos, text := rng.IntN(length+1), randomText(rng)
			buf.Insert(pos, text)
			if text != "" {
				model.insert(pos, text, false)
			}
		case op < 7 && length > 0:
			s := randomSpan(rng, length)
			buf.Delete(s)
			if !s.IsEmpty() {
				model.delete(s.Start, s.End)
			}
		case op < 9:
			s, text := randomSpan(rng, length), randomText(rng)
			buf.Replace(s, text)
			model.replace(s, text)
		case len(model.spans) > 0:
			i, s := rng.IntN(len(model.spans)), randomSpan(rng, length)
			list.Set(i, s)
			model.spans[i] = s
		}

		require.Equal(t, model.text, buf.String(), "step %d", step)
		require.Equal(t, model.spans, list.Spans(), "step %d", step)

		from := rng.IntN(len(model.text) + 1)
		to := from + rng.IntN(20)
		var want []int
		for i, s := range model.spans {
			if s.Start >= from && s.Start <= to {
				want = append(want, i)
			}
		}
		require.Equal(t, want, list.StartsIn(from, to), "step %d", step)

		wantIdx := strings.Index(model.text[from:min(to, len(model.text))], "]]")
		if wantIdx >= 0 {
			wantIdx += from
		}
		require.Equal(t, wantIdx, buf.IndexOfRange("]]", from, to), "step %d", step)
	}

	buf.Unmanage(list)
	assert.True(t, slices.Equal(model.spans, list.Spans()))
}
