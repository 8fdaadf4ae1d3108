package wikiparser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/wikiparse/pkg/config"
	"github.com/yaklabco/wikiparse/pkg/templates"
	"github.com/yaklabco/wikiparse/pkg/wikiparser"
)

func TestOptionsFromConfig(t *testing.T) {
	t.Parallel()

	t.Run("defaults use the english preset", func(t *testing.T) {
		t.Parallel()
		opts, err := wikiparser.OptionsFromConfig(nil, templates.Placeholder{})
		require.NoError(t, err)
		assert.Equal(t, wikiparser.LF, opts.LineSeparator)
		assert.Contains(t, opts.ImageIdentifiers, "File")
		assert.Equal(t, []string{"Category"}, opts.CategoryIdentifiers)
		assert.False(t, opts.ShowImageText)
	})

	t.Run("overrides apply", func(t *testing.T) {
		t.Parallel()
		cfg := config.NewConfig()
		cfg.Language = config.LanguageGerman
		cfg.LineSeparator = "crlf"
		cfg.Parser.ShowImageText = config.Bool(true)
		cfg.Identifiers.Category = []string{"Kat"}

		opts, err := wikiparser.OptionsFromConfig(cfg, templates.Flush{})
		require.NoError(t, err)
		assert.Equal(t, wikiparser.CRLF, opts.LineSeparator)
		assert.True(t, opts.ShowImageText)
		assert.Equal(t, []string{"Kat"}, opts.CategoryIdentifiers)
		assert.Contains(t, opts.ImageIdentifiers, "Bild")
	})

	t.Run("errors", func(t *testing.T) {
		t.Parallel()
		cfg := config.NewConfig()
		cfg.LineSeparator = "CR"
		_, err := wikiparser.OptionsFromConfig(cfg, templates.Placeholder{})
		require.ErrorIs(t, err, wikiparser.ErrInvalidConfiguration)

		cfg = config.NewConfig()
		cfg.Language = "xx"
		_, err = wikiparser.OptionsFromConfig(cfg, templates.Placeholder{})
		require.ErrorIs(t, err, wikiparser.ErrInvalidConfiguration)

		_, err = wikiparser.OptionsFromConfig(config.NewConfig(), nil)
		require.ErrorIs(t, err, wikiparser.ErrInvalidConfiguration)
	})
}

func TestGermanIdentifiers(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.Language = config.LanguageGerman
	tp, err := templates.FromConfig(cfg)
	require.NoError(t, err)
	opts, err := wikiparser.OptionsFromConfig(cfg, tp)
	require.NoError(t, err)

	page, err := wikiparser.New(opts).Parse("Text [[Kategorie:Stadt]] [[Datei:Bild.png]]")
	require.NoError(t, err)
	require.Len(t, page.CategoryLinks(), 1)
	assert.Equal(t, "Kategorie:Stadt", page.CategoryLinks()[0].Target)
	assert.Equal(t, "Text", page.Text())
}
