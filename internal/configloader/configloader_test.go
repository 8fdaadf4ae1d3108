package configloader_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/wikiparse/internal/configloader"
	"github.com/yaklabco/wikiparse/pkg/config"
)

func lookupFrom(env map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

func TestApplyEnv(t *testing.T) {
	t.Parallel()

	t.Run("applies every kind of field", func(t *testing.T) {
		t.Parallel()
		cfg := config.NewConfig()
		err := configloader.ApplyEnv(cfg, lookupFrom(map[string]string{
			"WIKIPARSE_LANGUAGE":          "de",
			"WIKIPARSE_LINE_SEPARATOR":    "CRLF",
			"WIKIPARSE_FORMAT":            "json",
			"WIKIPARSE_TEMPLATE_STRATEGY": "flush",
			"WIKIPARSE_CACHE_SIZE":        "0",
			"WIKIPARSE_EXTENSIONS":        ".txt , .wiki",
			"WIKIPARSE_DELETE_TAGS":       "1",
			"WIKIPARSE_SHOW_MATH":         "false",
		}))
		require.NoError(t, err)

		assert.Equal(t, config.LanguageGerman, cfg.Language)
		assert.Equal(t, "CRLF", cfg.LineSeparator)
		assert.Equal(t, config.FormatJSON, cfg.Format)
		assert.Equal(t, config.StrategyFlush, cfg.Templates.Strategy)
		assert.Equal(t, 0, cfg.CacheSize)
		assert.Equal(t, []string{".txt", ".wiki"}, cfg.Extensions)
		assert.True(t, config.BoolValue(cfg.Parser.DeleteTags, false))
		require.NotNil(t, cfg.Parser.ShowMathTagContent)
		assert.False(t, *cfg.Parser.ShowMathTagContent)
		assert.Nil(t, cfg.Parser.ShowImageText)
	})

	t.Run("empty values are skipped", func(t *testing.T) {
		t.Parallel()
		cfg := config.NewConfig()
		require.NoError(t, configloader.ApplyEnv(cfg, lookupFrom(map[string]string{"WIKIPARSE_LANGUAGE": ""})))
		assert.Equal(t, config.LanguageEnglish, cfg.Language)
	})

	t.Run("invalid values name the variable", func(t *testing.T) {
		t.Parallel()
		for env, want := range map[string]string{
			"WIKIPARSE_JOBS":            "invalid integer",
			"WIKIPARSE_SHOW_IMAGE_TEXT": "invalid boolean",
		} {
			err := configloader.ApplyEnv(config.NewConfig(), lookupFrom(map[string]string{env: "maybe"}))
			require.Error(t, err)
			assert.Contains(t, err.Error(), env)
			assert.Contains(t, err.Error(), want)
		}
	})

	t.Run("nil config", func(t *testing.T) {
		t.Parallel()
		assert.NoError(t, configloader.ApplyEnv(nil, lookupFrom(nil)))
	})
}

func TestListEnvVars(t *testing.T) {
	t.Parallel()

	vars := configloader.ListEnvVars()
	for name, help := range vars {
		assert.Contains(t, name, configloader.EnvPrefix)
		assert.NotEmpty(t, help, name)
	}
	assert.Contains(t, vars, "WIKIPARSE_TEMPLATE_STRATEGY")
	assert.Contains(t, vars, "WIKIPARSE_CACHE_SIZE")
}

func TestMergeAll(t *testing.T) {
	t.Parallel()

	base := config.NewConfig()
	base.Parser.ShowImageText = config.Bool(true)
	base.Identifiers.Image = []string{"Bild"}

	file := &config.Config{
		Language:   config.LanguageGerman,
		Extensions: []string{".txt"},
		Parser:     config.ParserConfig{ShowImageText: config.Bool(false)},
	}
	cli := &config.Config{Jobs: 4, Summary: true}

	merged := configloader.MergeAll(base, nil, file, cli)
	require.NotNil(t, merged)

	assert.Equal(t, config.LanguageGerman, merged.Language)
	assert.Equal(t, "LF", merged.LineSeparator, "zero values do not override")
	assert.Equal(t, []string{".txt"}, merged.Extensions, "lists replace")
	assert.Equal(t, []string{"Bild"}, merged.Identifiers.Image)
	assert.False(t, config.BoolValue(merged.Parser.ShowImageText, true))
	assert.Equal(t, 4, merged.Jobs)
	assert.True(t, merged.Summary)

	merged.Extensions[0] = ".changed"
	*merged.Parser.ShowImageText = true
	assert.Equal(t, ".txt", file.Extensions[0], "inputs are not shared")
	assert.False(t, *file.Parser.ShowImageText)
	assert.True(t, *base.Parser.ShowImageText)

	assert.Nil(t, configloader.MergeAll())
	assert.Nil(t, configloader.MergeAll(nil, nil))
}

func TestValidate(t *testing.T) {
	t.Parallel()

	t.Run("defaults are valid", func(t *testing.T) {
		t.Parallel()
		result := configloader.Validate(config.NewConfig())
		assert.True(t, result.Valid())
		assert.False(t, result.HasWarnings())
	})

	t.Run("nil config is valid", func(t *testing.T) {
		t.Parallel()
		assert.True(t, configloader.Validate(nil).Valid())
	})

	t.Run("german strategy accepts a delete list", func(t *testing.T) {
		t.Parallel()
		cfg := config.NewConfig()
		cfg.Language = config.LanguageGerman
		cfg.Templates.Delete = []string{"Infobox"}
		result := configloader.Validate(cfg)
		assert.True(t, result.Valid())
		assert.False(t, result.HasWarnings())
	})

	t.Run("collects every error", func(t *testing.T) {
		t.Parallel()
		cfg := &config.Config{
			Language:  "xx",
			Format:    "xml",
			Jobs:      -1,
			CacheSize: -1,
			Ignore:    []string{"ok/**", "[bad"},
		}
		result := configloader.ValidateWithFile(cfg, "cfg.yml")
		require.False(t, result.Valid())

		fields := make([]string, 0, len(result.Errors))
		for _, e := range result.Errors {
			fields = append(fields, e.Field)
			assert.Equal(t, "cfg.yml", e.FilePath)
		}
		assert.Equal(t, []string{"language", "format", "jobs", "cache_size", "ignore[1]"}, fields)

		messages := result.AllMessages()
		require.Len(t, messages, len(result.Errors))
		assert.Equal(t, "error: cfg.yml: language: unknown language \"xx\"; must be one of: de, en", messages[0])
	})
}

func TestFindProjectConfig(t *testing.T) {
	t.Parallel()

	t.Run("prefers the nearest directory", func(t *testing.T) {
		t.Parallel()
		root := projectDir(t)
		writeFile(t, filepath.Join(root, ".wikiparse.yml"), "")
		inner := filepath.Join(root, "a", "b")
		writeFile(t, filepath.Join(root, "a", "wikiparse.yaml"), "")
		require.NoError(t, os.MkdirAll(inner, 0o755))

		found, err := configloader.FindProjectConfig(context.Background(), inner)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(root, "a", "wikiparse.yaml"), found)
	})

	t.Run("stops at the VCS root", func(t *testing.T) {
		t.Parallel()
		outer := t.TempDir()
		writeFile(t, filepath.Join(outer, ".wikiparse.yml"), "")
		repo := filepath.Join(outer, "repo")
		require.NoError(t, os.MkdirAll(filepath.Join(repo, ".git"), 0o755))

		found, err := configloader.FindProjectConfig(context.Background(), repo)
		require.NoError(t, err)
		assert.Empty(t, found)
	})

	t.Run("directories named like configs are ignored", func(t *testing.T) {
		t.Parallel()
		root := projectDir(t)
		require.NoError(t, os.Mkdir(filepath.Join(root, ".wikiparse.yml"), 0o755))

		found, err := configloader.FindProjectConfig(context.Background(), root)
		require.NoError(t, err)
		assert.Empty(t, found)
	})
}
