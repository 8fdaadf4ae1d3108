// Package runner parses many wiki files concurrently.
package runner

import (
	"io"

	"github.com/yaklabco/wikiparse/pkg/config"
)

// StdinPath names standard input in Options.Paths.
const StdinPath = "-"

// Options controls a multi-file parse run.
type Options struct {
	// Paths are the user-specified files or directories. StdinPath reads
	// Stdin. If empty, the working directory is walked.
	Paths []string

	// WorkingDir is the base directory used to resolve relative Paths.
	// If empty, the current process working directory is used.
	WorkingDir string

	// Extensions is the set of file extensions (with leading dot) that
	// directory walks pick up. Defaults to config.DefaultExtensions.
	Extensions []string

	// ExcludeGlobs skip matching files and directories. Patterns are matched
	// against the slash-separated path relative to WorkingDir; a pattern
	// without a slash is also matched against the base name.
	ExcludeGlobs []string

	// FollowSymlinks controls whether directory symlinks are traversed.
	FollowSymlinks bool

	// Jobs is the number of workers. 0 or negative means runtime.NumCPU().
	Jobs int

	// Stdin is read for StdinPath. Nil means no input.
	Stdin io.Reader
}

// effectiveExtensions returns the extensions to use, defaulting if empty.
func (o Options) effectiveExtensions() []string {
	if len(o.Extensions) == 0 {
		return config.DefaultExtensions
	}
	return o.Extensions
}

// effectivePaths returns the paths to process, defaulting to "." if empty.
func (o Options) effectivePaths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}
