package wikiast

import "github.com/yaklabco/wikiparse/pkg/span"

// LinkType classifies a link by its target.
type LinkType uint8

const (
	LinkExternal LinkType = iota
	LinkInternal
	LinkAudio
	LinkVideo
	LinkImage
	LinkUnknown
)

// String returns the upper-case name of the link type.
func (t LinkType) String() string {
	switch t {
	case LinkExternal:
		return "EXTERNAL"
	case LinkInternal:
		return "INTERNAL"
	case LinkAudio:
		return "AUDIO"
	case LinkVideo:
		return "VIDEO"
	case LinkImage:
		return "IMAGE"
	default:
		return "UNKNOWN"
	}
}

// Inline is an object a template can resolve to: a *Link or a *Template.
type Inline interface {
	inline()
}

// Link is a reference found in the text of its home element.
type Link struct {
	// Pos is the link text position relative to the node it was obtained from.
	Pos span.Span

	// Target is the link destination with spaces replaced by underscores,
	// or the URL for external links.
	Target string

	// Type classifies the target.
	Type LinkType

	// Params holds pipe-separated image options or template arguments.
	Params []string

	home    *ContentElement
	homePos span.Span
}

// NewLink returns an unattached link. The parser attaches it to its home
// element with Attach.
func NewLink(target string, typ LinkType, params []string) *Link {
	return &Link{Target: target, Type: typ, Params: params}
}

// Attach returns a copy of l owned by home at pos.
func (l *Link) Attach(home *ContentElement, pos span.Span) *Link {
	attached := *l
	attached.home = home
	attached.homePos = pos
	attached.Pos = pos
	return &attached
}

// Home returns the element whose text contains the link.
func (l *Link) Home() *ContentElement {
	return l.home
}

// HomePos returns the link position relative to the home element.
func (l *Link) HomePos() span.Span {
	return l.homePos
}

// Text returns the visible text of the link.
func (l *Link) Text() string {
	if l.home == nil {
		return ""
	}
	return l.homePos.Text(l.home.Text())
}

func (l *Link) shifted(delta int) *Link {
	moved := *l
	moved.Pos = l.Pos.Shift(delta)
	return &moved
}

func (*Link) inline() {}

// Template is a macro invocation recorded at the place it was written.
type Template struct {
	// Pos is relative to the node the template was obtained from.
	Pos span.Span

	// Name is the trimmed template name.
	Name string

	// Params are the raw, trimmed, non-empty arguments in order.
	Params []string
}

// NewTemplate returns a template record without a position.
func NewTemplate(name string, params []string) *Template {
	return &Template{Name: name, Params: params}
}

// WithPos returns a copy of t placed at pos.
func (t *Template) WithPos(pos span.Span) *Template {
	placed := *t
	placed.Pos = pos
	return &placed
}

func (t *Template) shifted(delta int) *Template {
	return t.WithPos(t.Pos.Shift(delta))
}

func (*Template) inline() {}
