package wikiast

// Table is a wiki table with an optional caption.
type Table struct {
	composite

	title    *ContentElement
	elements []*TableElement
}

// NewTable returns an empty table.
func NewTable() *Table {
	t := &Table{}
	t.self = t
	return t
}

func (t *Table) Kind() Kind { return KindTable }

// Title returns the caption or nil.
func (t *Table) Title() *ContentElement { return t.title }

// SetTitle sets the caption.
func (t *Table) SetTitle(title *ContentElement) { t.title = title }

// Elements returns the cells in document order.
func (t *Table) Elements() []*TableElement { return t.elements }

// Element returns the cell at row and col, or nil.
func (t *Table) Element(row, col int) *TableElement {
	for _, e := range t.elements {
		if e.row == row && e.col == col {
			return e
		}
	}
	return nil
}

// AddElement appends a cell.
func (t *Table) AddElement(e *TableElement) { t.elements = append(t.elements, e) }

// SetElements replaces the cells.
func (t *Table) SetElements(elements []*TableElement) { t.elements = elements }

func (t *Table) Parts() []Content {
	parts := make([]Content, 0, len(t.elements))
	for _, e := range t.elements {
		parts = append(parts, e)
	}
	return titled(t.title, parts)
}

// Empty reports whether the table has no cells.
func (t *Table) Empty() bool { return len(t.elements) == 0 }

func (*Table) content() {}

// TableElement is one cell. Its content is a section tree of its own.
type TableElement struct {
	composite

	row, col int
	body     *SectionContainer
}

// NewTableElement returns the cell at row and col holding body.
func NewTableElement(row, col int, body *SectionContainer) *TableElement {
	e := &TableElement{row: row, col: col, body: body}
	e.self = e
	return e
}

func (e *TableElement) Kind() Kind { return KindTableElement }
func (e *TableElement) Row() int   { return e.row }
func (e *TableElement) Col() int   { return e.col }

// Body returns the cell content.
func (e *TableElement) Body() *SectionContainer { return e.body }

func (e *TableElement) Parts() []Content {
	if e.body == nil {
		return nil
	}
	return []Content{e.body}
}

// Empty reports whether the cell has no content.
func (e *TableElement) Empty() bool { return e.body == nil || e.body.Empty() }

func (*TableElement) content() {}
