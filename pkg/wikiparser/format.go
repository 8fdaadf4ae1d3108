package wikiparser

import (
	"slices"

	"github.com/yaklabco/wikiparse/pkg/span"
	"github.com/yaklabco/wikiparse/pkg/textbuf"
)

// quoteRun is an apostrophe marker: 2 for italic, 3 for bold, 5 for both.
type quoteRun struct {
	pos int
	n   int
}

// quoteRuns finds the apostrophe markers of one line. Runs of four keep one
// literal apostrophe before a bold marker; longer runs keep all but five.
func quoteRuns(line string) []quoteRun {
	var runs []quoteRun
	for i := 0; i < len(line); {
		if line[i] != '\'' {
			i++
			continue
		}
		j := i
		for j < len(line) && line[j] == '\'' {
			j++
		}
		switch n := j - i; {
		case n == 2, n == 3, n == 5:
			runs = append(runs, quoteRun{pos: i, n: n})
		case n == 4:
			runs = append(runs, quoteRun{pos: i + 1, n: 3})
		case n > 5:
			runs = append(runs, quoteRun{pos: j - 5, n: 5})
		}
		i = j
	}
	return runs
}

// quoteSpans pairs the runs of a line of length size and returns the bold
// and italic content spans. An italic marker left open at the end of the
// line becomes bold when a bold marker follows it, and italic otherwise;
// either way it extends to the end of the line.
func quoteSpans(runs []quoteRun, size int) (bold, italic []span.Span) {
	boldOpen, italicOpen := -1, -1
	italicMarker := -1
	boldAfterItalic := false

	openItalic := func(r quoteRun) {
		italicOpen = r.pos + r.n
		italicMarker = r.pos
		boldAfterItalic = false
	}
	closeItalic := func(r quoteRun) {
		italic = append(italic, span.New(italicOpen, r.pos))
		italicOpen = -1
	}
	closeBold := func(r quoteRun) {
		bold = append(bold, span.New(boldOpen, r.pos))
		boldOpen = -1
	}

	for _, r := range runs {
		if r.n != 2 && italicOpen >= 0 && r.pos > italicMarker {
			boldAfterItalic = true
		}
		switch r.n {
		case 2:
			if italicOpen >= 0 {
				closeItalic(r)
			} else {
				openItalic(r)
			}
		case 3:
			if boldOpen >= 0 {
				closeBold(r)
			} else {
				boldOpen = r.pos + r.n
			}
		case 5:
			switch {
			case italicOpen >= 0 && boldOpen >= 0:
				closeItalic(r)
				closeBold(r)
			case italicOpen >= 0:
				closeItalic(r)
				boldOpen = r.pos + r.n
			case boldOpen >= 0:
				closeBold(r)
				openItalic(r)
			default:
				boldOpen = r.pos + r.n
				openItalic(r)
			}
		}
	}

	if italicOpen >= 0 {
		if boldAfterItalic {
			bold = append(bold, span.New(italicOpen, size))
			if boldOpen > italicOpen {
				boldOpen = -1
			}
		} else {
			italic = append(italic, span.New(italicOpen, size))
		}
	}
	if boldOpen >= 0 {
		bold = append(bold, span.New(boldOpen, size))
	}
	return bold, italic
}

// parseQuotes records bold and italic spans of the line behind handle into
// the given lists and deletes the markers from the buffer.
func (st *parseState) parseQuotes(handle int, bold, italic *textbuf.SpanList) {
	line := st.lines.At(handle)
	text := st.buf.Substring(line)
	runs := quoteRuns(text)
	if len(runs) == 0 {
		return
	}

	boldSpans, italicSpans := quoteSpans(runs, len(text))
	for _, s := range boldSpans {
		bold.Add(s.Shift(line.Start))
	}
	for _, s := range italicSpans {
		italic.Add(s.Shift(line.Start))
	}

	for _, r := range slices.Backward(runs) {
		st.buf.Delete(span.New(line.Start+r.pos, line.Start+r.pos+r.n))
	}
}
