package pretty_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/wikiparse/internal/ui/pretty"
	"github.com/yaklabco/wikiparse/pkg/runner"
)

func TestFormatSummary_Basic(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	result := styles.FormatSummary(runner.Stats{
		FilesDiscovered: 10,
		FilesParsed:     10,
		Sections:        12,
		Paragraphs:      40,
		Tables:          2,
		Lists:           3,
		Links:           57,
		Templates:       9,
		Bytes:           2048,
		Duration:        1500 * time.Microsecond,
	})

	assert.Contains(t, result, "Summary")
	assert.Contains(t, result, "Files parsed:      10")
	assert.Contains(t, result, "Paragraphs:        40")
	assert.Contains(t, result, "Links:             57")
	assert.Contains(t, result, "Templates:         9")
	assert.Contains(t, result, "Duration:          2ms")
	assert.Contains(t, result, "Parse succeeded")
	assert.NotContains(t, result, "Files failed")
	assert.NotContains(t, result, "Cache hits")
}

func TestFormatSummary_WithFailures(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	result := styles.FormatSummary(runner.Stats{
		FilesDiscovered: 3,
		FilesParsed:     2,
		FilesFailed:     1,
		CacheHits:       1,
	})

	assert.Contains(t, result, "Files failed:      1")
	assert.Contains(t, result, "Cache hits:        1")
	assert.Contains(t, result, "Parse completed with failures")
}

func TestFormatSummaryOneLine(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)

	tests := []struct {
		name  string
		stats runner.Stats
		want  string
	}{
		{
			name: "no files",
			want: "No files to parse\n",
		},
		{
			name: "single file",
			stats: runner.Stats{
				FilesDiscovered: 1,
				FilesParsed:     1,
				Sections:        1,
				Links:           2,
				Duration:        3 * time.Millisecond,
			},
			want: "Parsed 1 file (1 section, 2 links, 0 templates) in 3ms\n",
		},
		{
			name: "with failures",
			stats: runner.Stats{
				FilesDiscovered: 3,
				FilesParsed:     2,
				FilesFailed:     1,
				Sections:        4,
				Templates:       1,
				Duration:        2 * time.Second,
			},
			want: "Parsed 2 files (4 sections, 0 links, 1 template) in 2s, 1 failed\n",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, styles.FormatSummaryOneLine(tc.stats))
		})
	}
}
