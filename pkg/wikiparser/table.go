package wikiparser

import (
	"strings"

	"github.com/yaklabco/wikiparse/pkg/span"
	"github.com/yaklabco/wikiparse/pkg/wikiast"
)

// tableBuilder tracks the cell being filled while a table is read.
type tableBuilder struct {
	st    *parseState
	table *wikiast.Table

	row, col    int
	rowHasCells bool

	open     bool
	cellRow  int
	cellCol  int
	cellBody []int
}

func (tb *tableBuilder) openCell(handles ...int) {
	tb.flush()
	tb.open = true
	tb.cellRow, tb.cellCol = tb.row, tb.col
	tb.cellBody = append(tb.cellBody[:0:0], handles...)
	tb.col++
	tb.rowHasCells = true
}

func (tb *tableBuilder) flush() {
	if !tb.open {
		return
	}
	body := tb.st.buildSections(tb.cellBody)
	cell := wikiast.NewTableElement(tb.cellRow, tb.cellCol, body)
	cell.SetSrcSpan(tb.st.newSrcSpan())
	tb.table.AddElement(cell)
	tb.open = false
	tb.cellBody = nil
}

func (tb *tableBuilder) newRow() {
	tb.flush()
	if tb.rowHasCells {
		tb.row++
		tb.col = 0
		tb.rowHasCells = false
	}
}

// buildTable consumes a table from its opening line up to and including the
// matching close line, or to the end of handles when it is never closed.
// Nested tables stay inside the cell they appear in.
func (st *parseState) buildTable(handles []int) (*wikiast.Table, int) {
	tb := &tableBuilder{st: st, table: wikiast.NewTable()}
	tb.table.SetSrcSpan(st.newSrcSpan())
	if src := st.buf.SourceSpanOf(st.lines.At(handles[0])); src != nil {
		tb.table.SrcSpan().Widen(src)
	}

	depth := 0
	for n := 1; n < len(handles); n++ {
		h := handles[n]
		text := st.lineText(h)
		trimmed := strings.TrimLeft(text, " \t:")
		indent := len(text) - len(trimmed)

		if depth > 0 {
			switch {
			case strings.HasPrefix(trimmed, "{|"):
				depth++
			case strings.HasPrefix(trimmed, "|}"):
				depth--
			}
			tb.cellBody = append(tb.cellBody, h)
			continue
		}

		switch {
		case strings.HasPrefix(trimmed, "|}"):
			tb.flush()
			if src := st.buf.SourceSpanOf(st.lines.At(h)); src != nil {
				tb.table.SrcSpan().Widen(src)
			}
			return tb.table, n + 1
		case strings.HasPrefix(trimmed, "{|"):
			if !tb.open {
				tb.openCell()
			}
			depth++
			tb.cellBody = append(tb.cellBody, h)
		case strings.HasPrefix(trimmed, "|+"):
			tb.flush()
			st.advance(h, indent+2)
			tb.table.SetTitle(st.element(st.dropAttributes(h)))
		case strings.HasPrefix(trimmed, "|-"):
			tb.newRow()
		case strings.HasPrefix(trimmed, "|"), strings.HasPrefix(trimmed, "!"):
			st.advance(h, indent+1)
			cells := st.splitCells(h, trimmed[0] == '!')
			for _, c := range cells {
				tb.openCell(st.dropAttributes(c))
			}
		default:
			if !tb.open {
				tb.openCell()
			}
			tb.cellBody = append(tb.cellBody, h)
		}
	}
	tb.flush()
	return tb.table, len(handles)
}

// splitCells splits a cell line at "||" (and "!!" for header lines) into
// one handle per cell.
func (st *parseState) splitCells(h int, header bool) []int {
	line := st.lines.At(h)
	text := st.lineText(h)

	var cells []int
	start := 0
	for i := 0; i+1 < len(text); i++ {
		pair := text[i : i+2]
		if pair == "||" || (header && pair == "!!") {
			cells = append(cells, st.subLine(span.New(line.Start+start, line.Start+i)))
			start = i + 2
			i++
		}
	}
	return append(cells, st.subLine(span.New(line.Start+start, line.End)))
}

// dropAttributes removes an "attributes |" prefix and leading blanks from
// a cell and returns its handle.
func (st *parseState) dropAttributes(h int) int {
	text := st.lineText(h)
	if idx := strings.IndexByte(text, '|'); idx >= 0 {
		st.advance(h, idx+1)
		text = text[idx+1:]
	}
	st.advance(h, len(text)-len(strings.TrimLeft(text, " \t")))
	return h
}
