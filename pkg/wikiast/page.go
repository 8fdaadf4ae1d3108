package wikiast

// CodeBlock is a source listing found in a <source> or <syntaxhighlight> tag.
type CodeBlock struct {
	// Lang is the language from the tag attribute or a detected one.
	Lang string `json:"lang,omitempty"`

	// Text is the verbatim content.
	Text string `json:"text"`
}

// ParsedPage is the root of a parsed document.
type ParsedPage struct {
	// Name is an optional page title set by the caller.
	Name string

	categories     *ContentElement
	languages      *ContentElement
	root           *SectionContainer
	firstParagraph int
	codeBlocks     []CodeBlock
}

// NewParsedPage returns a page with an empty root and no first paragraph.
func NewParsedPage() *ParsedPage {
	return &ParsedPage{
		categories:     NewContentElement(""),
		languages:      NewContentElement(""),
		root:           NewSectionContainer(nil, 0),
		firstParagraph: -1,
	}
}

// Root returns the top-level section container.
func (p *ParsedPage) Root() *SectionContainer { return p.root }

// SetRoot replaces the top-level section container.
func (p *ParsedPage) SetRoot(root *SectionContainer) { p.root = root }

// Categories returns the element holding all category links.
func (p *ParsedPage) Categories() *ContentElement { return p.categories }

// SetCategories replaces the category element.
func (p *ParsedPage) SetCategories(e *ContentElement) { p.categories = e }

// Languages returns the element holding all interlanguage links.
func (p *ParsedPage) Languages() *ContentElement { return p.languages }

// SetLanguages replaces the interlanguage element.
func (p *ParsedPage) SetLanguages(e *ContentElement) { p.languages = e }

// CategoryLinks returns the category links in document order.
func (p *ParsedPage) CategoryLinks() []*Link { return p.categories.Links() }

// LanguageLinks returns the interlanguage links in document order.
func (p *ParsedPage) LanguageLinks() []*Link { return p.languages.Links() }

// CodeBlocks returns the source listings in document order.
func (p *ParsedPage) CodeBlocks() []CodeBlock { return p.codeBlocks }

// AddCodeBlock records a source listing.
func (p *ParsedPage) AddCodeBlock(b CodeBlock) { p.codeBlocks = append(p.codeBlocks, b) }

// Text returns the text of the whole section tree.
func (p *ParsedPage) Text() string { return p.root.Text() }

// Links returns every inline link, positioned relative to Text.
func (p *ParsedPage) Links() []*Link { return p.root.Links() }

// Templates returns every template, positioned relative to Text.
func (p *ParsedPage) Templates() []*Template { return p.root.Templates() }

// Sections returns all SectionContent leaves of the section tree in
// document order. Sections inside table cells are not included.
func (p *ParsedPage) Sections() []*SectionContent {
	var out []*SectionContent
	var visit func(s Section)
	visit = func(s Section) {
		switch s := s.(type) {
		case *SectionContent:
			out = append(out, s)
		case *SectionContainer:
			for _, child := range s.sections {
				visit(child)
			}
		}
	}
	visit(p.root)
	return out
}

// Section returns the i-th SectionContent or nil.
func (p *ParsedPage) Section(i int) *SectionContent {
	sections := p.Sections()
	if i < 0 || i >= len(sections) {
		return nil
	}
	return sections[i]
}

// Paragraphs returns the paragraphs of all sections in document order.
func (p *ParsedPage) Paragraphs() []*Paragraph {
	var out []*Paragraph
	for _, s := range p.Sections() {
		out = append(out, s.Paragraphs()...)
	}
	return out
}

// Paragraph returns the i-th paragraph or nil.
func (p *ParsedPage) Paragraph(i int) *Paragraph {
	paragraphs := p.Paragraphs()
	if i < 0 || i >= len(paragraphs) {
		return nil
	}
	return paragraphs[i]
}

// FirstParagraphIndex returns the index into Paragraphs of the first
// paragraph with real text, or -1.
func (p *ParsedPage) FirstParagraphIndex() int { return p.firstParagraph }

// SetFirstParagraphIndex sets the index returned by FirstParagraphIndex.
func (p *ParsedPage) SetFirstParagraphIndex(i int) { p.firstParagraph = i }

// FirstParagraph returns the paragraph at FirstParagraphIndex or nil.
func (p *ParsedPage) FirstParagraph() *Paragraph { return p.Paragraph(p.firstParagraph) }

// Tables returns the tables of all sections in document order.
func (p *ParsedPage) Tables() []*Table {
	var out []*Table
	for _, s := range p.Sections() {
		out = append(out, s.Tables()...)
	}
	return out
}

// NestedLists returns the top-level lists of all sections.
func (p *ParsedPage) NestedLists() []*NestedListContainer {
	var out []*NestedListContainer
	for _, s := range p.Sections() {
		out = append(out, s.NestedLists()...)
	}
	return out
}

// DefinitionLists returns the definition lists of all sections.
func (p *ParsedPage) DefinitionLists() []*DefinitionList {
	var out []*DefinitionList
	for _, s := range p.Sections() {
		out = append(out, s.DefinitionLists()...)
	}
	return out
}
