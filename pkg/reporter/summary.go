package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/wikiparse/internal/ui/pretty"
	"github.com/yaklabco/wikiparse/pkg/runner"
)

// SummaryReporter writes a per-file count table followed by run totals.
type SummaryReporter struct {
	opts   Options
	styles *pretty.Styles
	table  *pretty.TableFormatter
	bw     *bufio.Writer
}

// NewSummaryReporter creates a new summary reporter.
func NewSummaryReporter(opts Options) *SummaryReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	styles := pretty.NewStyles(colorEnabled)
	width := opts.Width
	if width <= 0 {
		width = pretty.TerminalWidth(opts.Writer)
	}
	return &SummaryReporter{
		opts:   opts,
		styles: styles,
		table:  pretty.NewTableFormatter(styles, width),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *SummaryReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil || len(result.Files) == 0 {
		fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(runner.Stats{}))
		return 0, nil
	}

	rows := pretty.Rows(result.Files, func(path string) string {
		return displayPath(path, r.opts.WorkingDir)
	})
	fmt.Fprint(r.bw, r.table.FormatTable(rows))
	if errs := r.table.FormatErrors(rows); errs != "" {
		fmt.Fprintln(r.bw)
		fmt.Fprint(r.bw, errs)
	}
	fmt.Fprint(r.bw, r.styles.FormatSummary(result.Stats))

	return result.Stats.FilesParsed, nil
}
