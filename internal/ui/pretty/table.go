package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/yaklabco/wikiparse/pkg/runner"
)

// Table formatting constants.
const (
	tablePadding   = 2
	countWidth     = 5
	minFileWidth   = 20
	heavySeparator = "="
	lightSeparator = "-"
)

var countHeaders = []string{"SECT", "PARA", "TABLE", "LIST", "LINK", "TMPL"}

// TableRow holds the counts shown for one file.
type TableRow struct {
	File   string
	Counts []int
	Cached bool
	Error  error
}

// TableFormatter formats per-file parse counts as a styled table.
type TableFormatter struct {
	styles    *Styles
	termWidth int
}

// NewTableFormatter creates a new table formatter.
func NewTableFormatter(styles *Styles, termWidth int) *TableFormatter {
	if termWidth <= 0 {
		termWidth = DefaultTermWidth
	}
	return &TableFormatter{styles: styles, termWidth: termWidth}
}

// Rows builds one row per file outcome. display maps paths for output.
func Rows(files []runner.FileOutcome, display func(string) string) []TableRow {
	rows := make([]TableRow, 0, len(files))
	for _, f := range files {
		row := TableRow{File: display(f.Path), Cached: f.Cached, Error: f.Error}
		if page := f.Page; page != nil {
			row.Counts = []int{
				len(page.Sections()),
				len(page.Paragraphs()),
				len(page.Tables()),
				len(page.NestedLists()) + len(page.DefinitionLists()),
				len(page.Links()),
				len(page.Templates()),
			}
		}
		rows = append(rows, row)
	}
	return rows
}

// FormatTable formats rows as a table with a header and footer separator.
func (t *TableFormatter) FormatTable(rows []TableRow) string {
	if len(rows) == 0 {
		return ""
	}

	fileWidth := t.fileWidth(rows)

	var builder strings.Builder
	builder.WriteString(t.formatHeader(fileWidth))
	builder.WriteString("\n")
	builder.WriteString(t.formatSeparator(fileWidth, heavySeparator))
	builder.WriteString("\n")

	for _, row := range rows {
		builder.WriteString(t.formatRow(row, fileWidth))
		builder.WriteString("\n")
	}

	builder.WriteString(t.formatSeparator(fileWidth, heavySeparator))
	builder.WriteString("\n")
	return builder.String()
}

// fileWidth sizes the FILE column, shrinking it to fit the terminal.
func (t *TableFormatter) fileWidth(rows []TableRow) int {
	width := minFileWidth
	for _, row := range rows {
		width = max(width, lipgloss.Width(row.File))
	}
	counts := len(countHeaders) * (countWidth + tablePadding)
	if total := width + tablePadding + counts + len("STATUS"); total > t.termWidth {
		width = max(minFileWidth, width-(total-t.termWidth))
	}
	return width
}

func (t *TableFormatter) formatHeader(fileWidth int) string {
	var builder strings.Builder
	builder.WriteString(fmt.Sprintf("%-*s", fileWidth, "FILE"))
	for _, h := range countHeaders {
		builder.WriteString(fmt.Sprintf("%*s%*s", tablePadding, "", countWidth, h))
	}
	builder.WriteString(strings.Repeat(" ", tablePadding) + "STATUS")
	return t.styles.TableHeader.Render(builder.String())
}

func (t *TableFormatter) formatSeparator(fileWidth int, char string) string {
	width := fileWidth + len(countHeaders)*(countWidth+tablePadding) + tablePadding + len("STATUS")
	return t.styles.TableSeparator.Render(strings.Repeat(char, width))
}

func (t *TableFormatter) formatRow(row TableRow, fileWidth int) string {
	var builder strings.Builder
	builder.WriteString(fmt.Sprintf("%-*s", fileWidth, truncate(row.File, fileWidth)))

	if row.Error != nil {
		for range countHeaders {
			builder.WriteString(fmt.Sprintf("%*s%*s", tablePadding, "", countWidth, "-"))
		}
		builder.WriteString(strings.Repeat(" ", tablePadding))
		return t.styles.TableErrorRow.Render(builder.String() + "failed")
	}

	for _, n := range row.Counts {
		builder.WriteString(fmt.Sprintf("%*s%*s", tablePadding, "", countWidth, strconv.Itoa(n)))
	}
	builder.WriteString(strings.Repeat(" ", tablePadding))
	status := t.styles.Success.Render("ok")
	if row.Cached {
		status += t.styles.Dim.Render(" (cached)")
	}
	return builder.String() + status
}

// FormatErrors lists the error of every failed row.
func (t *TableFormatter) FormatErrors(rows []TableRow) string {
	var builder strings.Builder
	for _, row := range rows {
		if row.Error == nil {
			continue
		}
		builder.WriteString(lightSeparator + " " + t.styles.FilePath.Render(row.File) + ": " +
			t.styles.Error.Render(row.Error.Error()) + "\n")
	}
	return builder.String()
}
