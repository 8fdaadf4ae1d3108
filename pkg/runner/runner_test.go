package runner_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/wikiparse/pkg/config"
	"github.com/yaklabco/wikiparse/pkg/runner"
	"github.com/yaklabco/wikiparse/pkg/templates"
	"github.com/yaklabco/wikiparse/pkg/wikiparser"
)

func newRunner(t *testing.T, cacheSize int) *runner.Runner {
	t.Helper()
	opts, err := wikiparser.OptionsFromConfig(config.NewConfig(), templates.Placeholder{})
	require.NoError(t, err)
	r, err := runner.New(wikiparser.New(opts), cacheSize)
	require.NoError(t, err)
	return r
}

func TestRunner_Run_NoFiles(t *testing.T) {
	t.Parallel()

	result, err := newRunner(t, 0).Run(context.Background(), runner.Options{WorkingDir: t.TempDir()})
	require.NoError(t, err)
	assert.Empty(t, result.Files)
	assert.Zero(t, result.Stats.FilesDiscovered)
	assert.False(t, result.HasFailures())
}

func TestRunner_Run_MultipleFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"b.wiki": "== Intro ==\nSee [[Foo]] and [[Bar]].\n",
		"a.wiki": "{{Infobox|name=x}}\nPlain text.\n",
	})

	result, err := newRunner(t, 0).Run(context.Background(), runner.Options{WorkingDir: dir, Jobs: 2})
	require.NoError(t, err)

	require.Len(t, result.Files, 2)
	assert.Equal(t, filepath.Join(dir, "a.wiki"), result.Files[0].Path)
	assert.Equal(t, filepath.Join(dir, "b.wiki"), result.Files[1].Path)
	for _, f := range result.Files {
		require.NoError(t, f.Error)
		require.NotNil(t, f.Page)
		assert.Positive(t, f.Size)
	}

	stats := result.Stats
	assert.Equal(t, 2, stats.FilesDiscovered)
	assert.Equal(t, 2, stats.FilesParsed)
	assert.Zero(t, stats.FilesFailed)
	assert.Equal(t, 2, stats.Links)
	assert.Equal(t, 1, stats.Templates)
	assert.Positive(t, stats.Paragraphs)
	assert.Positive(t, stats.Sections)
	assert.Len(t, result.Pages(), 2)
	assert.Contains(t, result.Files[1].Page.Text(), "See Foo and Bar.")
}

func TestRunner_Run_FailuresAreRecorded(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"empty.wiki": "",
		"ok.wiki":    "text",
	})

	result, err := newRunner(t, 0).Run(context.Background(), runner.Options{WorkingDir: dir})
	require.NoError(t, err)
	require.Len(t, result.Files, 2)

	failed := result.Files[0]
	require.Error(t, failed.Error)
	assert.True(t, errors.Is(failed.Error, wikiparser.ErrEmptyInput))
	assert.Nil(t, failed.Page)

	assert.Equal(t, 1, result.Stats.FilesFailed)
	assert.Equal(t, 1, result.Stats.FilesParsed)
	assert.True(t, result.HasFailures())
	assert.Len(t, result.Pages(), 1)
}

func TestRunner_Run_Cache(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"one.wiki":   "same [[content]]",
		"two.wiki":   "same [[content]]",
		"three.wiki": "different",
	})

	result, err := newRunner(t, 8).Run(context.Background(), runner.Options{WorkingDir: dir, Jobs: 1})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Stats.CacheHits)
	assert.Equal(t, 3, result.Stats.FilesParsed)

	// one.wiki sorts before two.wiki and is parsed first.
	byName := make(map[string]runner.FileOutcome)
	for _, f := range result.Files {
		byName[filepath.Base(f.Path)] = f
	}
	assert.False(t, byName["one.wiki"].Cached)
	assert.True(t, byName["two.wiki"].Cached)
	assert.Same(t, byName["one.wiki"].Page, byName["two.wiki"].Page)
}

func TestRunner_Parse(t *testing.T) {
	t.Parallel()

	r := newRunner(t, 2)
	first, cached, err := r.Parse([]byte("'''bold'''"))
	require.NoError(t, err)
	assert.False(t, cached)
	assert.Equal(t, "bold", first.Text())

	second, cached, err := r.Parse([]byte("'''bold'''"))
	require.NoError(t, err)
	assert.True(t, cached)
	assert.Same(t, first, second)

	_, cached, err = r.Parse(nil)
	require.ErrorIs(t, err, wikiparser.ErrEmptyInput)
	assert.False(t, cached)
}

func TestRunner_Run_Stdin(t *testing.T) {
	t.Parallel()

	result, err := newRunner(t, 0).Run(context.Background(), runner.Options{
		Paths:      []string{runner.StdinPath},
		WorkingDir: t.TempDir(),
		Stdin:      strings.NewReader("from ''stdin''"),
	})
	require.NoError(t, err)
	require.Len(t, result.Files, 1)
	require.NoError(t, result.Files[0].Error)
	assert.Equal(t, runner.StdinPath, result.Files[0].Path)
	assert.Equal(t, "from stdin", result.Files[0].Page.Text())
}

func TestRunner_Run_StdinMissing(t *testing.T) {
	t.Parallel()

	result, err := newRunner(t, 0).Run(context.Background(), runner.Options{
		Paths:      []string{runner.StdinPath},
		WorkingDir: t.TempDir(),
	})
	require.NoError(t, err)
	require.Len(t, result.Files, 1)
	assert.Error(t, result.Files[0].Error)
	assert.True(t, result.HasFailures())
}

func TestRunner_Run_SerialVsParallelConsistency(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	files := make(map[string]string)
	for i := range 20 {
		files[fmt.Sprintf("page%02d.wiki", i)] = fmt.Sprintf("== Page %d ==\n* item [[L%d]]\n{{T%d}}\n", i, i, i)
	}
	writeTree(t, dir, files)

	r := newRunner(t, 0)
	serial, err := r.Run(context.Background(), runner.Options{WorkingDir: dir, Jobs: 1})
	require.NoError(t, err)
	parallel, err := r.Run(context.Background(), runner.Options{WorkingDir: dir, Jobs: 8})
	require.NoError(t, err)

	require.Len(t, parallel.Files, len(serial.Files))
	for i := range serial.Files {
		assert.Equal(t, serial.Files[i].Path, parallel.Files[i].Path)
		assert.Equal(t, serial.Files[i].Page.Text(), parallel.Files[i].Page.Text())
	}

	serial.Stats.Duration, parallel.Stats.Duration = 0, 0
	assert.Equal(t, serial.Stats, parallel.Stats)
	assert.Equal(t, 20, serial.Stats.Links)
	assert.Equal(t, 20, serial.Stats.Templates)
}

func TestRunner_Run_ContextCancellation(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"a.wiki": "a"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newRunner(t, 0).Run(ctx, runner.Options{WorkingDir: dir})
	require.ErrorIs(t, err, context.Canceled)
}

func TestRunner_Run_UnreadableFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"a.wiki": "a"})
	path := filepath.Join(dir, "a.wiki")

	r := newRunner(t, 0)
	result, err := r.Run(context.Background(), runner.Options{Paths: []string{path}})
	require.NoError(t, err)
	require.NoError(t, result.Files[0].Error)

	require.NoError(t, os.Remove(path))
	_, err = r.Run(context.Background(), runner.Options{Paths: []string{path}})
	require.Error(t, err)
}

func TestResult_NilSafety(t *testing.T) {
	t.Parallel()

	var r *runner.Result
	assert.False(t, r.HasFailures())
	assert.Nil(t, r.Pages())
}
