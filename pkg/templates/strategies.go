package templates

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/yaklabco/wikiparse/pkg/wikiast"
	"github.com/yaklabco/wikiparse/pkg/wikiparser"
)

// Render returns the TEMPLATE[name, params...] form of t.
func Render(t *wikiast.Template) string {
	var sb strings.Builder
	sb.WriteString("TEMPLATE[")
	sb.WriteString(t.Name)
	for _, p := range t.Params {
		sb.WriteString(", ")
		sb.WriteString(p)
	}
	sb.WriteByte(']')
	return sb.String()
}

// Placeholder replaces every template with its rendered form.
type Placeholder struct{}

func (Placeholder) ParseTemplate(t *wikiast.Template, _ *wikiast.ParsedPage) wikiparser.ResolvedTemplate {
	return wikiparser.ResolvedTemplate{
		PostParseReplacement: Render(t),
		Object:               t,
	}
}

func (Placeholder) ConfigurationInfo() string {
	return "placeholder: templates are shown as TEMPLATE[name, params...]"
}

// Flush removes every template from the text but keeps the record.
type Flush struct{}

func (Flush) ParseTemplate(t *wikiast.Template, _ *wikiast.ParsedPage) wikiparser.ResolvedTemplate {
	return wikiparser.ResolvedTemplate{Object: t}
}

func (Flush) ConfigurationInfo() string {
	return "flush: templates are removed from the text"
}

// DefaultGermanDeletions are the templates the german strategy removes.
//
//nolint:gochecknoglobals // Read-only default list.
var DefaultGermanDeletions = []string{
	"Begriffsklärung",
	"Commons",
	"Commonscat",
	"Dieser Artikel",
	"Exzellent",
	"Gesprochene Version",
	"Lesenswert",
	"Navigationsleiste",
	"Normdaten",
	"Personendaten",
	"Wikiquote",
	"Wiktionary",
}

// German removes block-listed templates, converts Audio and Video
// templates into links and renders the rest as placeholders.
type German struct {
	deletions map[string]struct{}
}

// NewGerman returns the german strategy removing the templates in deletions,
// or DefaultGermanDeletions when it is empty.
func NewGerman(deletions []string) *German {
	if len(deletions) == 0 {
		deletions = DefaultGermanDeletions
	}
	lower := germanCaser()
	g := &German{deletions: make(map[string]struct{}, len(deletions))}
	for _, name := range deletions {
		g.deletions[lower.String(strings.TrimSpace(name))] = struct{}{}
	}
	return g
}

func germanCaser() cases.Caser {
	return cases.Lower(language.German)
}

func (g *German) ParseTemplate(t *wikiast.Template, _ *wikiast.ParsedPage) wikiparser.ResolvedTemplate {
	name := germanCaser().String(t.Name)
	if _, ok := g.deletions[name]; ok {
		return wikiparser.ResolvedTemplate{}
	}

	switch name {
	case "audio":
		return mediaLink(t, wikiast.LinkAudio)
	case "video":
		return mediaLink(t, wikiast.LinkVideo)
	}

	return Placeholder{}.ParseTemplate(t, nil)
}

func (g *German) ConfigurationInfo() string {
	return "german: removes block-listed templates, Audio/Video become links"
}

// mediaLink turns {{Audio|file|text}} into a link showing text, or the
// file name when no text is given.
func mediaLink(t *wikiast.Template, typ wikiast.LinkType) wikiparser.ResolvedTemplate {
	if len(t.Params) == 0 {
		return wikiparser.ResolvedTemplate{}
	}
	file := t.Params[0]
	text := file
	if len(t.Params) > 1 {
		text = t.Params[1]
	}
	return wikiparser.ResolvedTemplate{
		PostParseReplacement: text,
		Object:               wikiast.NewLink(strings.ReplaceAll(file, " ", "_"), typ, t.Params[1:]),
	}
}
