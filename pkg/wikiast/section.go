package wikiast

// Section is a SectionContainer or a SectionContent.
type Section interface {
	Content

	// Title returns the heading element, or nil for anonymous sections.
	Title() *ContentElement

	// Level returns the nesting level; headings written with n equal signs
	// have level n-1.
	Level() int

	section()
}

// SectionContainer groups child sections under an optional heading.
type SectionContainer struct {
	composite

	title    *ContentElement
	level    int
	sections []Section
}

// NewSectionContainer returns an empty container.
func NewSectionContainer(title *ContentElement, level int) *SectionContainer {
	c := &SectionContainer{title: title, level: level}
	c.self = c
	return c
}

func (c *SectionContainer) Kind() Kind             { return KindSectionContainer }
func (c *SectionContainer) Title() *ContentElement { return c.title }
func (c *SectionContainer) Level() int             { return c.level }

// Sections returns the direct child sections.
func (c *SectionContainer) Sections() []Section { return c.sections }

// Section returns the i-th child section or nil.
func (c *SectionContainer) Section(i int) Section {
	if i < 0 || i >= len(c.sections) {
		return nil
	}
	return c.sections[i]
}

// AddSection appends a child section.
func (c *SectionContainer) AddSection(s Section) { c.sections = append(c.sections, s) }

// SetSections replaces the child sections.
func (c *SectionContainer) SetSections(sections []Section) { c.sections = sections }

func (c *SectionContainer) Parts() []Content {
	parts := make([]Content, 0, len(c.sections))
	for _, s := range c.sections {
		parts = append(parts, s)
	}
	return titled(c.title, parts)
}

// Empty reports whether the container has no child sections.
func (c *SectionContainer) Empty() bool { return len(c.sections) == 0 }

func (*SectionContainer) content() {}
func (*SectionContainer) section() {}

// SectionContent holds the blocks written under one heading: paragraphs,
// tables, nested lists and definition lists in document order.
type SectionContent struct {
	composite

	title  *ContentElement
	level  int
	blocks []Content
}

// NewSectionContent returns an empty section.
func NewSectionContent(title *ContentElement, level int) *SectionContent {
	c := &SectionContent{title: title, level: level}
	c.self = c
	return c
}

func (c *SectionContent) Kind() Kind             { return KindSectionContent }
func (c *SectionContent) Title() *ContentElement { return c.title }
func (c *SectionContent) Level() int             { return c.level }

// Blocks returns the blocks in document order.
func (c *SectionContent) Blocks() []Content { return c.blocks }

// Add appends a block: *Paragraph, *Table, *NestedListContainer or
// *DefinitionList.
func (c *SectionContent) Add(block Content) { c.blocks = append(c.blocks, block) }

// SetBlocks replaces the blocks.
func (c *SectionContent) SetBlocks(blocks []Content) { c.blocks = blocks }

func (c *SectionContent) Paragraphs() []*Paragraph { return blocksOf[*Paragraph](c.blocks) }
func (c *SectionContent) Tables() []*Table         { return blocksOf[*Table](c.blocks) }
func (c *SectionContent) NestedLists() []*NestedListContainer {
	return blocksOf[*NestedListContainer](c.blocks)
}
func (c *SectionContent) DefinitionLists() []*DefinitionList {
	return blocksOf[*DefinitionList](c.blocks)
}

func (c *SectionContent) Parts() []Content { return titled(c.title, c.blocks) }

// Empty reports whether the section has no blocks. A heading alone does
// not count as content.
func (c *SectionContent) Empty() bool { return len(c.blocks) == 0 }

func (*SectionContent) content() {}
func (*SectionContent) section() {}

func blocksOf[T Content](blocks []Content) []T {
	var out []T
	for _, b := range blocks {
		if typed, ok := b.(T); ok {
			out = append(out, typed)
		}
	}
	return out
}
