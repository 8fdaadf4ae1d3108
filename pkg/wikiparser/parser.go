// Package wikiparser turns wiki markup into a wikiast.ParsedPage.
//
// Parsing runs as a fixed sequence of passes over one textbuf.Buffer:
// comments and behavior switches are stripped, verbatim blocks are swapped
// for placeholders, templates are resolved, tags and links are extracted,
// and the remaining lines are classified and assembled into the section
// tree. Empty nodes are pruned at the end and, when enabled, source spans
// are widened to cover their descendants.
package wikiparser

import (
	"golang.org/x/text/cases"

	"github.com/yaklabco/wikiparse/pkg/span"
	"github.com/yaklabco/wikiparse/pkg/textbuf"
	"github.com/yaklabco/wikiparse/pkg/wikiast"
)

// Parser parses wiki markup. A Parser is immutable after New and safe for
// concurrent use; every Parse call works on its own buffer.
type Parser struct {
	opts      Options
	protocols []string
	languages identifierSet
	category  identifierSet
	images    identifierSet
	err       error
}

// New returns a parser for opts. Configuration problems are reported by
// Parse, which never returns a partial page.
func New(opts Options) *Parser {
	if opts.LineSeparator == "" {
		opts.LineSeparator = LF
	}
	folder := cases.Fold()
	p := &Parser{
		opts:      opts,
		protocols: opts.Protocols,
		languages: newIdentifierSet(folder, opts.LanguageIdentifiers),
		category:  newIdentifierSet(folder, opts.CategoryIdentifiers),
		images:    newIdentifierSet(folder, opts.ImageIdentifiers),
		err:       opts.Validate(),
	}
	if len(p.protocols) == 0 {
		p.protocols = DefaultProtocols
	}
	return p
}

// Options returns a copy of the parser's configuration.
func (p *Parser) Options() Options {
	return p.opts
}

// Parse parses text into a page. It fails only with ErrInvalidConfiguration
// or ErrEmptyInput; malformed markup is recovered from.
func (p *Parser) Parse(text string) (*wikiast.ParsedPage, error) {
	if p.err != nil {
		return nil, p.err
	}
	if text == "" {
		return nil, ErrEmptyInput
	}

	st := p.newState(text)
	defer st.release()

	st.normalizeLineSeparators()
	st.stripComments()
	st.stripMagicWords()
	st.extractVerbatim()
	st.resolveTemplates()
	st.extractTags()
	st.extractLinks()
	st.extractExternalLinks()

	root := st.buildSections(st.splitLines())
	st.page.SetRoot(root)
	st.buildPulledElements()

	prune(root)
	st.page.SetFirstParagraphIndex(firstParagraphIndex(st.page))

	if p.opts.CalculateSrcSpans {
		widenSourceSpans(root)
	}

	return st.page, nil
}

// placeholder is verbatim content swapped out of the buffer.
type placeholder struct {
	format  wikiast.FormatType
	spacer  string
	content string
	claimed bool
}

type templateRecord struct {
	tpl     *wikiast.Template
	link    *wikiast.Link
	post    string
	retain  bool
	dead    bool
	claimed bool
}

type linkRecord struct {
	link    *wikiast.Link
	dead    bool
	claimed bool
}

type pulledKind uint8

const (
	pulledCategory pulledKind = iota
	pulledLanguage
)

type pulledLink struct {
	link   *wikiast.Link
	text   string
	kind   pulledKind
	anchor int
}

// parseState holds everything one Parse call mutates.
type parseState struct {
	p      *Parser
	folder cases.Caser
	buf    *textbuf.Buffer
	page   *wikiast.ParsedPage

	lines *textbuf.SpanList

	holders      *textbuf.SpanList
	holderRecs   []placeholder
	tags         *textbuf.SpanList
	tagClaimed   []bool
	templates    *textbuf.SpanList
	templateRecs []templateRecord
	links        *textbuf.SpanList
	linkRecs     []linkRecord
	anchors      *textbuf.SpanList
	tails        *textbuf.SpanList
	pulled       []pulledLink

	// maxTracked bounds the length of any link or tag span, so lookups by
	// position only scan spans starting that far back.
	maxTracked int
	maxTail    int
}

func (p *Parser) newState(text string) *parseState {
	st := &parseState{
		p:         p,
		folder:    cases.Fold(),
		buf:       textbuf.New(text, p.opts.CalculateSrcSpans),
		page:      wikiast.NewParsedPage(),
		lines:     textbuf.NewSpanList(),
		holders:   textbuf.NewSpanList(),
		tags:      textbuf.NewSpanList(),
		templates: textbuf.NewSpanList(),
		links:     textbuf.NewSpanList(),
		anchors:   textbuf.NewSpanList(),
		tails:     textbuf.NewSpanList(),
	}
	for _, l := range st.managedLists() {
		st.buf.Manage(l)
	}
	return st
}

func (st *parseState) managedLists() []*textbuf.SpanList {
	return []*textbuf.SpanList{st.lines, st.holders, st.tags, st.templates, st.links, st.anchors, st.tails}
}

func (st *parseState) release() {
	for _, l := range st.managedLists() {
		l.Clear()
		st.buf.Unmanage(l)
	}
}

// newSrcSpan returns an unset source span when tracking is enabled.
func (st *parseState) newSrcSpan() *span.SourceSpan {
	if !st.p.opts.CalculateSrcSpans {
		return nil
	}
	return span.NewSourceSpan()
}

func (st *parseState) fold(s string) string {
	return st.folder.String(s)
}

// killInside marks every tracked item contained in region as dead. Called
// before region is removed from the buffer.
func (st *parseState) killInside(region span.Span) {
	inside := func(l *textbuf.SpanList) []int {
		var hits []int
		for _, i := range l.StartsIn(region.Start, region.End) {
			if l.At(i).End <= region.End {
				hits = append(hits, i)
			}
		}
		return hits
	}
	for _, i := range inside(st.holders) {
		st.holders.Set(i, span.New(region.Start, region.Start))
	}
	for _, i := range inside(st.templates) {
		st.templateRecs[i].dead = true
	}
	for _, i := range inside(st.links) {
		st.linkRecs[i].dead = true
	}
	for _, i := range inside(st.tags) {
		st.tagClaimed[i] = true
	}
}

// rewrite replaces region with text, dropping everything tracked inside it.
func (st *parseState) rewrite(region span.Span, text string) {
	st.killInside(region)
	st.buf.Delete(region)
	st.buf.Insert(region.Start, text)
}
