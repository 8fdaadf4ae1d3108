package wikiast

// NestedList is a NestedListContainer or a NestedListElement.
type NestedList interface {
	Content
	nestedList()
}

// NestedListContainer is a bulleted or numbered list.
type NestedListContainer struct {
	composite

	numbered bool
	items    []NestedList
}

// NewNestedListContainer returns an empty list.
func NewNestedListContainer(numbered bool) *NestedListContainer {
	c := &NestedListContainer{numbered: numbered}
	c.self = c
	return c
}

func (c *NestedListContainer) Kind() Kind { return KindNestedListContainer }

// Numbered reports whether the list was written with '#'.
func (c *NestedListContainer) Numbered() bool { return c.numbered }

// Items returns the entries and sublists in order.
func (c *NestedListContainer) Items() []NestedList { return c.items }

// Add appends an entry or sublist.
func (c *NestedListContainer) Add(item NestedList) { c.items = append(c.items, item) }

// SetItems replaces the entries.
func (c *NestedListContainer) SetItems(items []NestedList) { c.items = items }

func (c *NestedListContainer) Parts() []Content {
	parts := make([]Content, 0, len(c.items))
	for _, it := range c.items {
		parts = append(parts, it)
	}
	return parts
}

// Empty reports whether the list has no entries.
func (c *NestedListContainer) Empty() bool { return len(c.items) == 0 }

func (*NestedListContainer) content()    {}
func (*NestedListContainer) nestedList() {}

// DefinitionList is a term followed by its definitions.
type DefinitionList struct {
	composite

	term        *ContentElement
	definitions []*ContentElement
}

// NewDefinitionList returns a list for term.
func NewDefinitionList(term *ContentElement) *DefinitionList {
	d := &DefinitionList{term: term}
	d.self = d
	return d
}

func (d *DefinitionList) Kind() Kind { return KindDefinitionList }

// Term returns the defined term, which may be nil.
func (d *DefinitionList) Term() *ContentElement { return d.term }

// Definitions returns the definitions in order.
func (d *DefinitionList) Definitions() []*ContentElement { return d.definitions }

// AddDefinition appends a definition.
func (d *DefinitionList) AddDefinition(e *ContentElement) {
	d.definitions = append(d.definitions, e)
}

func (d *DefinitionList) Parts() []Content {
	parts := make([]Content, 0, len(d.definitions))
	for _, e := range d.definitions {
		parts = append(parts, e)
	}
	return titled(d.term, parts)
}

// Empty reports whether the term and every definition are empty.
func (d *DefinitionList) Empty() bool { return d.allEmpty() }

func (*DefinitionList) content() {}
