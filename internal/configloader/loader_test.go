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

// projectDir returns a temp directory marked as a VCS root so the upward
// config search never leaves it.
func projectDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, ".git"), 0o755))
	return dir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func isolated(dir string) configloader.LoadOptions {
	return configloader.LoadOptions{
		WorkingDir:         dir,
		IgnoreSystemConfig: true,
		IgnoreUserConfig:   true,
		IgnoreEnv:          true,
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Parallel()

	result, err := configloader.Load(context.Background(), isolated(projectDir(t)))
	require.NoError(t, err)
	require.NotNil(t, result.Config)

	assert.Equal(t, config.NewConfig(), result.Config)
	assert.Empty(t, result.LoadedFrom)
	assert.Empty(t, result.Warnings)
}

func TestLoad_ProjectConfig(t *testing.T) {
	t.Parallel()

	root := projectDir(t)
	writeFile(t, filepath.Join(root, ".wikiparse.yml"), `
language: de
parser:
  show_image_text: true
ignore:
  - "drafts/**"
`)
	nested := filepath.Join(root, "docs", "pages")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	result, err := configloader.Load(context.Background(), isolated(nested))
	require.NoError(t, err)

	assert.Equal(t, []string{filepath.Join(root, ".wikiparse.yml")}, result.LoadedFrom)
	assert.Equal(t, config.LanguageGerman, result.Config.Language)
	assert.True(t, config.BoolValue(result.Config.Parser.ShowImageText, false))
	assert.Equal(t, []string{"drafts/**"}, result.Config.Ignore)
	assert.Equal(t, config.DefaultExtensions, result.Config.Extensions, "unset lists keep defaults")
	assert.Equal(t, "LF", result.Config.LineSeparator)
}

func TestLoad_IgnoreProjectConfig(t *testing.T) {
	t.Parallel()

	root := projectDir(t)
	writeFile(t, filepath.Join(root, ".wikiparse.yml"), "language: de\n")

	opts := isolated(root)
	opts.IgnoreProjectConfig = true
	result, err := configloader.Load(context.Background(), opts)
	require.NoError(t, err)
	assert.Equal(t, config.LanguageEnglish, result.Config.Language)
	assert.Empty(t, result.LoadedFrom)
}

func TestLoad_ExplicitConfig(t *testing.T) {
	t.Parallel()

	root := projectDir(t)
	writeFile(t, filepath.Join(root, ".wikiparse.yml"), "language: de\nformat: json\n")
	explicit := filepath.Join(root, "custom.yaml")
	writeFile(t, explicit, "format: summary\n")

	opts := isolated(root)
	opts.ExplicitPath = explicit
	result, err := configloader.Load(context.Background(), opts)
	require.NoError(t, err)

	assert.Equal(t, []string{filepath.Join(root, ".wikiparse.yml"), explicit}, result.LoadedFrom)
	assert.Equal(t, explicit, result.Paths.Explicit)
	assert.Equal(t, config.FormatSummary, result.Config.Format)
	assert.Equal(t, config.LanguageGerman, result.Config.Language)
}

func TestLoad_ExplicitConfigMissing(t *testing.T) {
	t.Parallel()

	root := projectDir(t)
	opts := isolated(root)
	opts.ExplicitPath = filepath.Join(root, "missing.yml")

	_, err := configloader.Load(context.Background(), opts)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load explicit config")
}

func TestLoad_CLIOverrides(t *testing.T) {
	t.Parallel()

	root := projectDir(t)
	writeFile(t, filepath.Join(root, ".wikiparse.yml"), `
jobs: 2
parser:
  delete_tags: true
templates:
  strategy: flush
`)

	opts := isolated(root)
	opts.CLIConfig = &config.Config{
		Jobs:      8,
		Parser:    config.ParserConfig{DeleteTags: config.Bool(false)},
		Templates: config.TemplatesConfig{Strategy: config.StrategyPlaceholder},
		Output:    "out.json",
	}
	result, err := configloader.Load(context.Background(), opts)
	require.NoError(t, err)

	assert.Equal(t, 8, result.Config.Jobs)
	require.NotNil(t, result.Config.Parser.DeleteTags)
	assert.False(t, *result.Config.Parser.DeleteTags, "an explicit false from the CLI wins")
	assert.Equal(t, config.StrategyPlaceholder, result.Config.Templates.Strategy)
	assert.Equal(t, "out.json", result.Config.Output)
}

func TestLoad_InvalidConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		want    string
	}{
		{name: "malformed yaml", content: "language: [unclosed", want: "parse yaml"},
		{name: "unknown language", content: "language: xx\n", want: "unknown language"},
		{name: "unknown strategy", content: "templates:\n  strategy: expand\n", want: "unknown template strategy"},
		{name: "bad line separator", content: "line_separator: CR\n", want: "invalid line separator"},
		{name: "bad format", content: "format: sarif\n", want: "invalid format"},
		{name: "negative jobs", content: "jobs: -1\n", want: "jobs must be >= 0"},
		{name: "bad glob", content: "ignore:\n  - \"[unclosed\"\n", want: "invalid glob pattern"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			root := projectDir(t)
			path := filepath.Join(root, ".wikiparse.yml")
			writeFile(t, path, tt.content)

			_, err := configloader.Load(context.Background(), isolated(root))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
			assert.Contains(t, err.Error(), path)
		})
	}
}

func TestLoad_InvalidCLIConfig(t *testing.T) {
	t.Parallel()

	opts := isolated(projectDir(t))
	opts.CLIConfig = &config.Config{CacheSize: -5}

	_, err := configloader.Load(context.Background(), opts)
	require.ErrorIs(t, err, configloader.ErrInvalidConfig)

	var verr *configloader.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "cache_size", verr.Field)
}

func TestLoad_Warnings(t *testing.T) {
	t.Parallel()

	root := projectDir(t)
	writeFile(t, filepath.Join(root, ".wikiparse.yml"), `
extensions: [wiki]
templates:
  delete: [Infobox]
`)

	result, err := configloader.Load(context.Background(), isolated(root))
	require.NoError(t, err)
	require.Len(t, result.Warnings, 2, "file warnings are not repeated by the final check")
	assert.Contains(t, result.Warnings[0], "templates.delete")
	assert.Contains(t, result.Warnings[1], "does not start with a dot")
}

func TestLoad_ContextCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := configloader.Load(ctx, isolated(projectDir(t)))
	require.ErrorIs(t, err, context.Canceled)
}

func TestLoad_Environment(t *testing.T) {
	root := projectDir(t)
	writeFile(t, filepath.Join(root, ".wikiparse.yml"), "language: en\njobs: 2\n")

	t.Setenv("WIKIPARSE_LANGUAGE", "de")
	t.Setenv("WIKIPARSE_JOBS", "6")
	t.Setenv("WIKIPARSE_SRC_SPANS", "true")
	t.Setenv("WIKIPARSE_IGNORE", "a/**, b/**,")

	opts := isolated(root)
	opts.IgnoreEnv = false
	opts.CLIConfig = &config.Config{Jobs: 3}

	result, err := configloader.Load(context.Background(), opts)
	require.NoError(t, err)

	assert.Equal(t, config.LanguageGerman, result.Config.Language)
	assert.Equal(t, 3, result.Config.Jobs, "CLI wins over the environment")
	assert.True(t, config.BoolValue(result.Config.Parser.CalculateSrcSpans, false))
	assert.Equal(t, []string{"a/**", "b/**"}, result.Config.Ignore)
}

func TestLoad_EnvironmentInvalid(t *testing.T) {
	t.Setenv("WIKIPARSE_CACHE_SIZE", "lots")

	opts := isolated(projectDir(t))
	opts.IgnoreEnv = false

	_, err := configloader.Load(context.Background(), opts)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "WIKIPARSE_CACHE_SIZE")
}

func TestLoad_UserConfig(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)
	userPath := filepath.Join(xdg, "wikiparse", "config.yaml")
	writeFile(t, userPath, "language: de\ncache_size: 16\n")

	root := projectDir(t)
	writeFile(t, filepath.Join(root, ".wikiparse.yaml"), "cache_size: 32\n")

	opts := isolated(root)
	opts.IgnoreUserConfig = false
	result, err := configloader.Load(context.Background(), opts)
	require.NoError(t, err)

	assert.Equal(t, userPath, result.Paths.User)
	assert.Equal(t, []string{userPath, filepath.Join(root, ".wikiparse.yaml")}, result.LoadedFrom)
	assert.Equal(t, config.LanguageGerman, result.Config.Language)
	assert.Equal(t, 32, result.Config.CacheSize, "project wins over user")
}
