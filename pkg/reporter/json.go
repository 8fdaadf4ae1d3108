package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/yaklabco/wikiparse/pkg/runner"
	"github.com/yaklabco/wikiparse/pkg/wikiast"
)

// JSONVersion is the version of the JSON output shape.
const JSONVersion = "1.0.0"

// JSONOutput is the top-level JSON structure.
type JSONOutput struct {
	Version string           `json:"version"`
	Files   []JSONFileResult `json:"files"`
	Summary JSONSummary      `json:"summary"`
}

// JSONFileResult represents a single file's results.
type JSONFileResult struct {
	Path   string            `json:"path"`
	Cached bool              `json:"cached,omitempty"`
	Error  string            `json:"error,omitempty"`
	Page   *wikiast.PageJSON `json:"page,omitempty"`
}

// JSONSummary contains aggregate statistics.
type JSONSummary struct {
	FilesParsed int   `json:"filesParsed"`
	FilesFailed int   `json:"filesFailed"`
	Sections    int   `json:"sections"`
	Paragraphs  int   `json:"paragraphs"`
	Tables      int   `json:"tables"`
	Lists       int   `json:"lists"`
	Links       int   `json:"links"`
	Templates   int   `json:"templates"`
	CacheHits   int   `json:"cacheHits"`
	Bytes       int   `json:"bytes"`
	DurationMS  int64 `json:"durationMs"`
}

// JSONReporter formats results as JSON.
type JSONReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *JSONReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	output := r.buildOutput(result)

	encoder := json.NewEncoder(r.bw)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}

	if err := encoder.Encode(output); err != nil {
		return 0, fmt.Errorf("encode JSON: %w", err)
	}

	return output.Summary.FilesParsed, nil
}

func (r *JSONReporter) buildOutput(result *runner.Result) *JSONOutput {
	output := &JSONOutput{
		Version: JSONVersion,
		Files:   make([]JSONFileResult, 0),
	}

	if result == nil {
		return output
	}

	output.Files = make([]JSONFileResult, 0, len(result.Files))
	for _, file := range result.Files {
		fileResult := JSONFileResult{
			Path:   displayPath(file.Path, r.opts.WorkingDir),
			Cached: file.Cached,
		}
		if file.Error != nil {
			fileResult.Error = file.Error.Error()
		}
		if file.Page != nil {
			fileResult.Page = file.Page.ToJSON()
		}
		output.Files = append(output.Files, fileResult)
	}

	stats := result.Stats
	output.Summary = JSONSummary{
		FilesParsed: stats.FilesParsed,
		FilesFailed: stats.FilesFailed,
		Sections:    stats.Sections,
		Paragraphs:  stats.Paragraphs,
		Tables:      stats.Tables,
		Lists:       stats.Lists,
		Links:       stats.Links,
		Templates:   stats.Templates,
		CacheHits:   stats.CacheHits,
		Bytes:       stats.Bytes,
		DurationMS:  stats.Duration.Milliseconds(),
	}
	return output
}
