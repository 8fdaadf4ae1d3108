package wikiast

import (
	"encoding/json"

	"github.com/yaklabco/wikiparse/pkg/span"
)

// Node is the serialized form of a Content node.
type Node struct {
	Kind      string           `json:"kind"`
	Text      string           `json:"text,omitempty"`
	Title     *Node            `json:"title,omitempty"`
	Level     *int             `json:"level,omitempty"`
	Type      string           `json:"type,omitempty"`
	Numbered  bool             `json:"numbered,omitempty"`
	Row       *int             `json:"row,omitempty"`
	Col       *int             `json:"col,omitempty"`
	Formats   []FormatJSON     `json:"formats,omitempty"`
	Links     []LinkJSON       `json:"links,omitempty"`
	Templates []TemplateJSON   `json:"templates,omitempty"`
	Src       *span.SourceSpan `json:"src,omitempty"`
	Children  []*Node          `json:"children,omitempty"`
}

// FormatJSON is a serialized format span.
type FormatJSON struct {
	Type  string    `json:"type"`
	Span  span.Span `json:"span"`
	Value string    `json:"value"`
}

// LinkJSON is a serialized link.
type LinkJSON struct {
	Type   string    `json:"type"`
	Target string    `json:"target"`
	Text   string    `json:"text"`
	Span   span.Span `json:"span"`
	Params []string  `json:"params,omitempty"`
}

// TemplateJSON is a serialized template.
type TemplateJSON struct {
	Name   string    `json:"name"`
	Span   span.Span `json:"span"`
	Params []string  `json:"params,omitempty"`
}

// PageJSON is the serialized form of a ParsedPage.
type PageJSON struct {
	Name           string      `json:"name,omitempty"`
	FirstParagraph int         `json:"first_paragraph"`
	Categories     []LinkJSON  `json:"categories,omitempty"`
	Languages      []LinkJSON  `json:"languages,omitempty"`
	CodeBlocks     []CodeBlock `json:"code_blocks,omitempty"`
	Root           *Node       `json:"root"`
}

// ToNode converts a content tree into its serialized form.
func ToNode(c Content) *Node {
	if c == nil {
		return nil
	}
	node := &Node{Kind: c.Kind().String(), Src: c.SrcSpan()}

	switch n := c.(type) {
	case *ContentElement:
		fillLeaf(node, n)
	case *Paragraph:
		fillLeaf(node, &n.ContentElement)
		node.Type = n.Type().String()
	case *NestedListElement:
		fillLeaf(node, &n.ContentElement)
	case *SectionContainer:
		node.Title = titleNode(n.title)
		node.Level = ptr(n.level)
		for _, s := range n.sections {
			node.Children = append(node.Children, ToNode(s))
		}
	case *SectionContent:
		node.Title = titleNode(n.title)
		node.Level = ptr(n.level)
		for _, b := range n.blocks {
			node.Children = append(node.Children, ToNode(b))
		}
	case *Table:
		node.Title = titleNode(n.title)
		for _, e := range n.elements {
			node.Children = append(node.Children, ToNode(e))
		}
	case *TableElement:
		node.Row = ptr(n.row)
		node.Col = ptr(n.col)
		if n.body != nil {
			node.Children = append(node.Children, ToNode(n.body))
		}
	case *NestedListContainer:
		node.Numbered = n.numbered
		for _, it := range n.items {
			node.Children = append(node.Children, ToNode(it))
		}
	case *DefinitionList:
		node.Title = titleNode(n.term)
		for _, d := range n.definitions {
			node.Children = append(node.Children, ToNode(d))
		}
	case *ContentContainer:
		for _, ch := range n.children {
			node.Children = append(node.Children, ToNode(ch))
		}
	}
	return node
}

func fillLeaf(node *Node, e *ContentElement) {
	node.Text = e.text
	for _, t := range FormatTypes() {
		for _, s := range e.formats[t] {
			node.Formats = append(node.Formats, FormatJSON{Type: t.String(), Span: s, Value: s.Text(e.text)})
		}
	}
	node.Links = linksJSON(e.links)
	for _, t := range e.templates {
		node.Templates = append(node.Templates, TemplateJSON{Name: t.Name, Span: t.Pos, Params: t.Params})
	}
}

func titleNode(title *ContentElement) *Node {
	if title == nil {
		return nil
	}
	return ToNode(title)
}

func linksJSON(links []*Link) []LinkJSON {
	var out []LinkJSON
	for _, l := range links {
		out = append(out, LinkJSON{
			Type:   l.Type.String(),
			Target: l.Target,
			Text:   l.Text(),
			Span:   l.Pos,
			Params: l.Params,
		})
	}
	return out
}

func ptr(v int) *int { return &v }

// ToJSON converts the page into its serialized form.
func (p *ParsedPage) ToJSON() *PageJSON {
	return &PageJSON{
		Name:           p.Name,
		FirstParagraph: p.firstParagraph,
		Categories:     linksJSON(p.categories.links),
		Languages:      linksJSON(p.languages.links),
		CodeBlocks:     p.codeBlocks,
		Root:           ToNode(p.root),
	}
}

// MarshalJSON implements json.Marshaler.
func (p *ParsedPage) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.ToJSON())
}

// marshalNode serializes c the way it appears inside PageJSON. Every node
// type declares its own MarshalJSON so that embedding does not promote the
// wrong one.
func marshalNode(c Content) ([]byte, error) {
	return json.Marshal(ToNode(c))
}

func (e *ContentElement) MarshalJSON() ([]byte, error)      { return marshalNode(e) }
func (p *Paragraph) MarshalJSON() ([]byte, error)           { return marshalNode(p) }
func (n *NestedListElement) MarshalJSON() ([]byte, error)   { return marshalNode(n) }
func (c *NestedListContainer) MarshalJSON() ([]byte, error) { return marshalNode(c) }
func (d *DefinitionList) MarshalJSON() ([]byte, error)      { return marshalNode(d) }
func (c *ContentContainer) MarshalJSON() ([]byte, error)    { return marshalNode(c) }
func (c *SectionContainer) MarshalJSON() ([]byte, error)    { return marshalNode(c) }
func (c *SectionContent) MarshalJSON() ([]byte, error)      { return marshalNode(c) }
func (t *Table) MarshalJSON() ([]byte, error)               { return marshalNode(t) }
func (e *TableElement) MarshalJSON() ([]byte, error)        { return marshalNode(e) }
