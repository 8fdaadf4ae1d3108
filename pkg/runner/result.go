package runner

import (
	"time"

	"github.com/yaklabco/wikiparse/pkg/wikiast"
)

// FileOutcome is the parse result for one file.
type FileOutcome struct {
	// Path is the file path that was processed, or StdinPath.
	Path string

	// Page is the parsed page. Nil if Error is set.
	Page *wikiast.ParsedPage

	// Cached reports that Page came from the parse cache.
	Cached bool

	// Size is the input length in bytes.
	Size int

	// Duration is the time spent reading and parsing the file.
	Duration time.Duration

	// Error is set if the file could not be read or parsed.
	Error error
}

// Stats captures aggregate information about a run.
type Stats struct {
	// FilesDiscovered is the total number of files found during discovery.
	FilesDiscovered int

	// FilesParsed is the number of files parsed successfully.
	FilesParsed int

	// FilesFailed is the number of files that could not be read or parsed.
	FilesFailed int

	Sections   int
	Paragraphs int
	Tables     int
	Lists      int
	Links      int
	Templates  int

	// CacheHits is the number of files served from the parse cache.
	CacheHits int

	// Bytes is the total size of the parsed input.
	Bytes int

	// Duration is the wall-clock time of the run.
	Duration time.Duration
}

// Result is the overall runner result.
type Result struct {
	// Files contains the outcome for each processed file, ordered by path.
	Files []FileOutcome

	// Stats contains aggregate statistics for the run.
	Stats Stats
}

// HasFailures reports whether any file failed to parse.
func (r *Result) HasFailures() bool {
	if r == nil {
		return false
	}
	return r.Stats.FilesFailed > 0
}

// Pages returns the successfully parsed pages in file order.
func (r *Result) Pages() []*wikiast.ParsedPage {
	if r == nil {
		return nil
	}
	pages := make([]*wikiast.ParsedPage, 0, len(r.Files))
	for _, f := range r.Files {
		if f.Page != nil {
			pages = append(pages, f.Page)
		}
	}
	return pages
}

// accumulate updates the result with a file outcome.
func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Error != nil {
		r.Stats.FilesFailed++
		return
	}

	r.Stats.FilesParsed++
	r.Stats.Bytes += outcome.Size
	if outcome.Cached {
		r.Stats.CacheHits++
	}

	page := outcome.Page
	if page == nil {
		return
	}
	r.Stats.Sections += len(page.Sections())
	r.Stats.Paragraphs += len(page.Paragraphs())
	r.Stats.Tables += len(page.Tables())
	r.Stats.Lists += len(page.NestedLists()) + len(page.DefinitionLists())
	r.Stats.Links += len(page.Links())
	r.Stats.Templates += len(page.Templates())
}
