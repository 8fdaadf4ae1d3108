package runner

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gobwas/glob"
)

// ErrInvalidPattern is returned when an exclude glob does not compile.
var ErrInvalidPattern = errors.New("invalid glob pattern")

// matcher holds compiled exclude patterns.
type matcher struct {
	globs []glob.Glob
	// base marks patterns without a slash, which also match the base name.
	base []bool
}

// compileGlobs compiles exclude patterns with '/' as the separator.
func compileGlobs(patterns []string) (*matcher, error) {
	m := &matcher{
		globs: make([]glob.Glob, 0, len(patterns)),
		base:  make([]bool, 0, len(patterns)),
	}
	for _, pattern := range patterns {
		pattern = filepath.ToSlash(strings.TrimSpace(pattern))
		if pattern == "" {
			continue
		}
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, fmt.Errorf("%w %q: %w", ErrInvalidPattern, pattern, err)
		}
		m.globs = append(m.globs, g)
		m.base = append(m.base, !strings.Contains(pattern, "/"))
	}
	return m, nil
}

// excluded reports whether relPath matches any pattern. Directories are
// also tested with a trailing slash so "drafts/**" prunes "drafts".
func (m *matcher) excluded(relPath string, isDir bool) bool {
	relPath = filepath.ToSlash(relPath)
	name := relPath[strings.LastIndexByte(relPath, '/')+1:]
	for i, g := range m.globs {
		if g.Match(relPath) || (isDir && g.Match(relPath+"/")) {
			return true
		}
		if m.base[i] && g.Match(name) {
			return true
		}
	}
	return false
}

// Discover finds wiki files matching opts. It returns a sorted,
// de-duplicated list of absolute file paths; StdinPath entries are kept
// as-is and sort first.
func Discover(ctx context.Context, opts Options) ([]string, error) {
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	excludes, err := compileGlobs(opts.ExcludeGlobs)
	if err != nil {
		return nil, err
	}

	w := walker{
		ctx:        ctx,
		workDir:    workDir,
		extensions: opts.effectiveExtensions(),
		excludes:   excludes,
		follow:     opts.FollowSymlinks,
		seen:       make(map[string]struct{}),
		dirs:       make(map[string]struct{}),
	}

	for _, inputPath := range opts.effectivePaths() {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("discovery cancelled: %w", ctx.Err())
		}

		if inputPath == StdinPath {
			w.add(StdinPath)
			continue
		}

		absPath := inputPath
		if !filepath.IsAbs(inputPath) {
			absPath = filepath.Join(workDir, inputPath)
		}
		absPath = filepath.Clean(absPath)

		info, err := os.Stat(absPath)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", inputPath, err)
		}

		if info.IsDir() {
			if err := w.walk(absPath); err != nil {
				return nil, err
			}
			continue
		}

		// Files named explicitly skip the extension filter but not excludes.
		if !excludes.excluded(w.rel(absPath), false) {
			w.add(absPath)
		}
	}

	sort.Strings(w.files)
	return w.files, nil
}

// resolveWorkDir resolves the working directory, defaulting to os.Getwd().
func resolveWorkDir(workDir string) (string, error) {
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		return wd, nil
	}
	absPath, err := filepath.Abs(workDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}
	return absPath, nil
}

type walker struct {
	ctx        context.Context
	workDir    string
	extensions []string
	excludes   *matcher
	follow     bool
	seen       map[string]struct{}
	dirs       map[string]struct{}
	files      []string
}

func (w *walker) add(path string) {
	if _, ok := w.seen[path]; ok {
		return
	}
	w.seen[path] = struct{}{}
	w.files = append(w.files, path)
}

func (w *walker) rel(path string) string {
	relPath, err := filepath.Rel(w.workDir, path)
	if err != nil {
		return path
	}
	return relPath
}

// walk recursively collects matching files under root.
func (w *walker) walk(root string) error {
	if real, err := filepath.EvalSymlinks(root); err == nil {
		if _, ok := w.dirs[real]; ok {
			return nil
		}
		w.dirs[real] = struct{}{}
	}

	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		if err := w.ctx.Err(); err != nil {
			return err
		}

		if walkErr != nil {
			if os.IsPermission(walkErr) {
				return nil
			}
			return walkErr
		}

		relPath := w.rel(path)

		if entry.IsDir() {
			if path != root && strings.HasPrefix(entry.Name(), ".") {
				return filepath.SkipDir
			}
			if path != root && w.excludes.excluded(relPath, true) {
				return filepath.SkipDir
			}
			return nil
		}

		if entry.Type()&fs.ModeSymlink != 0 {
			realPath, evalErr := filepath.EvalSymlinks(path)
			if evalErr != nil {
				return nil //nolint:nilerr // broken symlinks are skipped
			}
			info, statErr := os.Stat(realPath)
			if statErr != nil {
				return nil //nolint:nilerr // unreadable symlink targets are skipped
			}
			if info.IsDir() {
				if !w.follow || w.excludes.excluded(relPath, true) {
					return nil
				}
				// Walk the target; WalkDir does not descend into a symlinked root.
				return w.walk(realPath)
			}
		}

		if strings.HasPrefix(entry.Name(), ".") {
			return nil
		}

		if hasMatchingExtension(path, w.extensions) && !w.excludes.excluded(relPath, false) {
			w.add(path)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("walk directory %s: %w", root, err)
	}
	return nil
}

// hasMatchingExtension checks if the file has a matching extension.
func hasMatchingExtension(path string, extensions []string) bool {
	ext := filepath.Ext(path)
	for _, e := range extensions {
		if strings.EqualFold(e, ext) {
			return true
		}
	}
	return false
}
