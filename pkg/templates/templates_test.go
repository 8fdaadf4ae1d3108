package templates_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/wikiparse/pkg/config"
	"github.com/yaklabco/wikiparse/pkg/templates"
	"github.com/yaklabco/wikiparse/pkg/wikiast"
	"github.com/yaklabco/wikiparse/pkg/wikiparser"
)

func parseWith(t *testing.T, tp wikiparser.TemplateParser, text string) *wikiast.ParsedPage {
	t.Helper()
	page, err := wikiparser.New(wikiparser.Options{
		LanguageIdentifiers: []string{"en"},
		CategoryIdentifiers: []string{"Kategorie"},
		ImageIdentifiers:    []string{"Datei"},
		TemplateParser:      tp,
	}).Parse(text)
	require.NoError(t, err)
	return page
}

func TestRender(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "TEMPLATE[a]", templates.Render(wikiast.NewTemplate("a", nil)))
	assert.Equal(t, "TEMPLATE[a, b, c=d]", templates.Render(wikiast.NewTemplate("a", []string{"b", "c=d"})))
}

func TestPlaceholder(t *testing.T) {
	t.Parallel()

	tpl := wikiast.NewTemplate("Infobox", []string{"foo=bar"})
	res := templates.Placeholder{}.ParseTemplate(tpl, nil)
	assert.Empty(t, res.PreParseReplacement)
	assert.Equal(t, "TEMPLATE[Infobox, foo=bar]", res.PostParseReplacement)
	assert.Same(t, tpl, res.Object)
	assert.NotEmpty(t, templates.Placeholder{}.ConfigurationInfo())
}

func TestFlush(t *testing.T) {
	t.Parallel()

	page := parseWith(t, templates.Flush{}, "before {{Box|x}} after")
	assert.Equal(t, "before  after", page.Text())
	require.Len(t, page.Templates(), 1)
	assert.Equal(t, "Box", page.Templates()[0].Name)
}

func TestGerman(t *testing.T) {
	t.Parallel()

	german := templates.NewGerman(nil)

	t.Run("block-listed templates vanish", func(t *testing.T) {
		t.Parallel()
		page := parseWith(t, german, "a {{Lesenswert}} {{navigationsleiste|x}} b")
		assert.Equal(t, "a   b", page.Text())
		assert.Empty(t, page.Templates())
	})

	t.Run("audio becomes a link", func(t *testing.T) {
		t.Parallel()
		page := parseWith(t, german, "Hör: {{Audio|De-Berlin.ogg|Berlin}}")
		assert.Equal(t, "Hör: Berlin", page.Text())
		links := page.Links()
		require.Len(t, links, 1)
		assert.Equal(t, wikiast.LinkAudio, links[0].Type)
		assert.Equal(t, "De-Berlin.ogg", links[0].Target)
		assert.Equal(t, "Berlin", links[0].Text())
	})

	t.Run("video without text shows the file", func(t *testing.T) {
		t.Parallel()
		page := parseWith(t, german, "{{Video|Clip 1.ogv}}")
		links := page.Links()
		require.Len(t, links, 1)
		assert.Equal(t, wikiast.LinkVideo, links[0].Type)
		assert.Equal(t, "Clip_1.ogv", links[0].Target)
		assert.Equal(t, "Clip 1.ogv", links[0].Text())
	})

	t.Run("other templates use placeholders", func(t *testing.T) {
		t.Parallel()
		page := parseWith(t, german, "{{Infobox Stadt|Name=Berlin}}")
		assert.Equal(t, "TEMPLATE[Infobox Stadt, Name=Berlin]", page.Text())
		require.Len(t, page.Templates(), 1)
	})

	t.Run("custom block list", func(t *testing.T) {
		t.Parallel()
		custom := templates.NewGerman([]string{"Infobox Stadt"})
		page := parseWith(t, custom, "x {{Infobox Stadt}} {{Lesenswert}}")
		require.Len(t, page.Templates(), 1)
		assert.Equal(t, "Lesenswert", page.Templates()[0].Name)
	})
}

func TestRegistry(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"flush", "german", "placeholder"}, templates.Names())

	tp, err := templates.New("flush", templates.Options{})
	require.NoError(t, err)
	assert.IsType(t, templates.Flush{}, tp)

	_, err = templates.New("nope", templates.Options{})
	require.ErrorIs(t, err, templates.ErrUnknownStrategy)

	infos := templates.Infos()
	require.Len(t, infos, 3)
	assert.Equal(t, "flush", infos[0].Name)
	assert.NotEmpty(t, infos[0].Description)

	r := templates.NewRegistry()
	r.Register(templates.Strategy{Name: "custom", Factory: func(templates.Options) wikiparser.TemplateParser {
		return templates.Flush{}
	}})
	_, ok := r.Get("custom")
	assert.True(t, ok)
	assert.Len(t, r.All(), 1)
}

func TestFromConfig(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	tp, err := templates.FromConfig(cfg)
	require.NoError(t, err)
	assert.IsType(t, templates.Placeholder{}, tp)

	cfg.Language = config.LanguageGerman
	tp, err = templates.FromConfig(cfg)
	require.NoError(t, err)
	assert.IsType(t, &templates.German{}, tp)

	cfg.Templates.Strategy = "bogus"
	_, err = templates.FromConfig(cfg)
	require.ErrorIs(t, err, templates.ErrUnknownStrategy)
}
