// Package logging provides a structured logging wrapper around charmbracelet/log.
package logging

// Field name constants for structured logging.
// Using constants prevents typos and enables IDE autocomplete.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldFiles      = "files"
	FieldOutput     = "output"
	FieldWorkingDir = "working_dir"
	FieldDuration   = "duration"

	// Configuration fields.
	FieldConfig    = "config"
	FieldLanguage  = "language"
	FieldStrategy  = "strategy"
	FieldJobs      = "jobs"
	FieldWorkers   = "workers"
	FieldCacheSize = "cache_size"

	// Statistics fields.
	FieldFilesDiscovered = "files_discovered"
	FieldFilesParsed     = "files_parsed"
	FieldFilesFailed     = "files_failed"
	FieldCacheHits       = "cache_hits"
	FieldSections        = "sections"
	FieldParagraphs      = "paragraphs"
	FieldLinks           = "links"
	FieldTemplates       = "templates"
	FieldBytes           = "bytes"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
