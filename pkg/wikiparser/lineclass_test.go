package wikiparser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/wikiparse/pkg/wikiparser"
)

func TestClassify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		line string
		want wikiparser.LineType
	}{
		{"", wikiparser.LineEmpty},
		{"   \t", wikiparser.LineEmpty},
		{"{| class=wikitable", wikiparser.LineTable},
		{":{|", wikiparser.LineTable},
		{"  {|", wikiparser.LineTable},
		{"== Heading ==", wikiparser.LineSection},
		{"== Heading ==  ", wikiparser.LineSection},
		{"----", wikiparser.LineHorizontalRule},
		{"------ text", wikiparser.LineHorizontalRule},
		{"* item", wikiparser.LineList},
		{"# item", wikiparser.LineListNumbered},
		{"; term", wikiparser.LineDefinitionList},
		{": indented", wikiparser.LineParagraphIndented},
		{" code", wikiparser.LineParagraphBoxed},
		{"text", wikiparser.LineParagraph},
		{"=", wikiparser.LineParagraph},
		{"= no end", wikiparser.LineParagraph},
	}

	for _, tt := range tests {
		t.Run(tt.want.String()+"/"+tt.line, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, wikiparser.Classify(tt.line))
		})
	}
}

func TestSectionLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		line       string
		level      int
		start, end int
	}{
		{"= A =", 0, 1, 4},
		{"== A ==", 1, 2, 5},
		{"=== A ===", 2, 3, 6},
		{"=== A ==", 1, 2, 6},
		{"===", 0, 1, 2},
		{"== A ==  ", 1, 2, 5},
	}

	for _, tt := range tests {
		level, start, end := wikiparser.SectionLevel(tt.line)
		assert.Equal(t, tt.level, level, tt.line)
		assert.Equal(t, tt.start, start, tt.line)
		assert.Equal(t, tt.end, end, tt.line)
	}
}

func TestLineTypeString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "NESTEDLIST_NR", wikiparser.LineListNumbered.String())
	assert.Equal(t, "UNKNOWN", wikiparser.LineType(200).String())
}

func TestParseLineSeparator(t *testing.T) {
	t.Parallel()

	sep, err := wikiparser.ParseLineSeparator("crlf")
	assert.NoError(t, err)
	assert.Equal(t, "\r\n", sep.Sequence())

	sep, err = wikiparser.ParseLineSeparator("")
	assert.NoError(t, err)
	assert.Equal(t, "\n", sep.Sequence())

	_, err = wikiparser.ParseLineSeparator("cr")
	assert.ErrorIs(t, err, wikiparser.ErrInvalidConfiguration)
}
