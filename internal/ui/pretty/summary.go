package pretty

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/yaklabco/wikiparse/pkg/runner"
)

const (
	summaryDividerWidth = 40
	wordFile            = "file"
	wordFiles           = "files"
)

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// FormatSummaryOneLine formats run statistics as a single line.
// Example: "Parsed 3 files (12 sections, 40 links, 5 templates) in 12ms, 1 failed".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats) string {
	if stats.FilesDiscovered == 0 {
		return s.Dim.Render("No files to parse") + "\n"
	}

	counts := fmt.Sprintf("%d %s, %d %s, %d %s",
		stats.Sections, plural(stats.Sections, "section", "sections"),
		stats.Links, plural(stats.Links, "link", "links"),
		stats.Templates, plural(stats.Templates, "template", "templates"),
	)
	msg := fmt.Sprintf("Parsed %d %s", stats.FilesParsed, plural(stats.FilesParsed, wordFile, wordFiles))

	var builder strings.Builder
	if stats.FilesFailed == 0 {
		builder.WriteString(s.Success.Render(msg))
	} else {
		builder.WriteString(msg)
	}
	builder.WriteString(s.Dim.Render(" (" + counts + ")"))
	builder.WriteString(" in " + formatDuration(stats.Duration))
	if stats.FilesFailed > 0 {
		builder.WriteString(", " + s.Failure.Render(fmt.Sprintf("%d failed", stats.FilesFailed)))
	}
	builder.WriteString("\n")
	return builder.String()
}

// FormatSummary formats run statistics as a summary block.
func (s *Styles) FormatSummary(stats runner.Stats) string {
	var builder strings.Builder

	row := func(label string, value string) {
		builder.WriteString(fmt.Sprintf("  %-19s%s\n", label+":", value))
	}

	builder.WriteString("\n")
	builder.WriteString(s.SummaryTitle.Render("Summary"))
	builder.WriteString("\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth))
	builder.WriteString("\n")

	row("Files parsed", s.SummaryValue.Render(strconv.Itoa(stats.FilesParsed)))
	if stats.FilesFailed > 0 {
		row("Files failed", s.Failure.Render(strconv.Itoa(stats.FilesFailed)))
	}
	if stats.CacheHits > 0 {
		row("Cache hits", s.SummaryValue.Render(strconv.Itoa(stats.CacheHits)))
	}
	row("Bytes", s.SummaryValue.Render(strconv.Itoa(stats.Bytes)))

	builder.WriteString("\n")

	row("Sections", s.SummaryValue.Render(strconv.Itoa(stats.Sections)))
	row("Paragraphs", s.SummaryValue.Render(strconv.Itoa(stats.Paragraphs)))
	row("Tables", s.SummaryValue.Render(strconv.Itoa(stats.Tables)))
	row("Lists", s.SummaryValue.Render(strconv.Itoa(stats.Lists)))
	row("Links", s.SummaryValue.Render(strconv.Itoa(stats.Links)))
	row("Templates", s.SummaryValue.Render(strconv.Itoa(stats.Templates)))
	row("Duration", s.SummaryValue.Render(formatDuration(stats.Duration)))

	builder.WriteString("\n")

	if stats.FilesFailed > 0 {
		builder.WriteString(s.Failure.Render("Parse completed with failures"))
	} else {
		builder.WriteString(s.Success.Render("Parse succeeded"))
	}
	builder.WriteString("\n")

	return builder.String()
}

// formatDuration rounds d for display.
func formatDuration(d time.Duration) string {
	switch {
	case d >= time.Second:
		return d.Round(10 * time.Millisecond).String()
	case d >= time.Millisecond:
		return d.Round(time.Millisecond).String()
	default:
		return d.Round(time.Microsecond).String()
	}
}
