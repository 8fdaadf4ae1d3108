package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/wikiparse/internal/ui/pretty"
	"github.com/yaklabco/wikiparse/pkg/runner"
)

// TextReporter writes a styled outline of every parsed page.
type TextReporter struct {
	opts   Options
	styles *pretty.Styles
	width  int
	bw     *bufio.Writer
}

// NewTextReporter creates a new text reporter.
func NewTextReporter(opts Options) *TextReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	width := opts.Width
	if width <= 0 {
		width = pretty.TerminalWidth(opts.Writer)
	}
	return &TextReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		width:  width,
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TextReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil || len(result.Files) == 0 {
		if r.opts.ShowSummary {
			fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(runner.Stats{}))
		}
		return 0, nil
	}

	var pages int
	for i, file := range result.Files {
		path := displayPath(file.Path, r.opts.WorkingDir)
		if file.Error != nil {
			fmt.Fprintf(r.bw, "%s: %s\n",
				r.styles.FilePath.Render(path),
				r.styles.Error.Render(fmt.Sprintf("error: %v", file.Error)),
			)
			continue
		}
		if file.Page == nil {
			continue
		}

		if i > 0 {
			fmt.Fprintln(r.bw)
		}
		fmt.Fprintln(r.bw, r.styles.FormatFileHeader(path, file.Page))
		fmt.Fprint(r.bw, r.styles.FormatOutline(file.Page, r.width))
		pages++
	}

	if r.opts.ShowSummary {
		fmt.Fprintln(r.bw)
		fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(result.Stats))
	}

	return pages, nil
}
