package runner

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/yaklabco/wikiparse/internal/logging"
	"github.com/yaklabco/wikiparse/pkg/fsutil"
	"github.com/yaklabco/wikiparse/pkg/wikiast"
	"github.com/yaklabco/wikiparse/pkg/wikiparser"
)

// Runner parses discovered files with one shared parser.
type Runner struct {
	parser *wikiparser.Parser
	cache  *lru.Cache[string, *wikiast.ParsedPage]
}

// New creates a Runner. cacheSize is the number of pages kept in the parse
// cache, keyed by content hash; 0 or negative disables caching.
func New(parser *wikiparser.Parser, cacheSize int) (*Runner, error) {
	r := &Runner{parser: parser}
	if cacheSize > 0 {
		cache, err := lru.New[string, *wikiast.ParsedPage](cacheSize)
		if err != nil {
			return nil, fmt.Errorf("create parse cache: %w", err)
		}
		r.cache = cache
	}
	return r, nil
}

// Run discovers files under opts.Paths and parses them concurrently.
// Outcomes are ordered by path regardless of completion order. A file that
// cannot be read or parsed is recorded in its outcome and does not stop the
// run; only discovery errors and cancellation are returned.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	start := time.Now()
	logger := logging.FromContext(ctx)

	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}
	logger.Debug("discovered files", logging.FieldFilesDiscovered, len(files))

	result := &Result{Files: make([]FileOutcome, 0, len(files))}
	result.Stats.FilesDiscovered = len(files)

	if len(files) == 0 {
		result.Stats.Duration = time.Since(start)
		return result, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	jobs = min(jobs, len(files))
	logger.Debug("starting workers", logging.FieldWorkers, jobs)

	workCh := make(chan string)
	outCh := make(chan FileOutcome)

	var wg sync.WaitGroup
	for range jobs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.worker(ctx, workCh, outCh, opts.Stdin)
		}()
	}

	go func() {
		defer close(workCh)
		for _, path := range files {
			select {
			case <-ctx.Done():
				return
			case workCh <- path:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(outCh)
	}()

	outcomes := make(map[string]FileOutcome, len(files))
	for outcome := range outCh {
		outcomes[outcome.Path] = outcome
	}

	for _, path := range files {
		if outcome, ok := outcomes[path]; ok {
			result.accumulate(outcome)
		}
	}
	result.Stats.Duration = time.Since(start)

	if ctx.Err() != nil {
		return result, fmt.Errorf("run cancelled: %w", ctx.Err())
	}

	return result, nil
}

// worker parses files from workCh and sends outcomes to outCh.
func (r *Runner) worker(ctx context.Context, workCh <-chan string, outCh chan<- FileOutcome, stdin io.Reader) {
	for path := range workCh {
		if ctx.Err() != nil {
			return
		}

		fileCtx := logging.WithFile(ctx, path)
		logger := logging.FromContext(fileCtx)
		outcome := r.parseFile(fileCtx, path, stdin)
		if outcome.Error != nil {
			logger.Error("parse failed", logging.FieldError, outcome.Error)
		} else {
			logger.Debug("parsed file",
				logging.FieldBytes, outcome.Size,
				logging.FieldDuration, outcome.Duration,
				logging.FieldCacheHits, outcome.Cached,
			)
		}

		select {
		case <-ctx.Done():
			return
		case outCh <- outcome:
		}
	}
}

func (r *Runner) parseFile(ctx context.Context, path string, stdin io.Reader) FileOutcome {
	start := time.Now()
	outcome := FileOutcome{Path: path}

	content, key, err := readInput(ctx, path, stdin)
	if err != nil {
		outcome.Error = err
		return outcome
	}
	outcome.Size = len(content)

	outcome.Page, outcome.Cached, outcome.Error = r.parse(key, content)
	if outcome.Error != nil {
		outcome.Error = fmt.Errorf("parse %s: %w", path, outcome.Error)
	}
	outcome.Duration = time.Since(start)
	return outcome
}

// Parse parses content, serving repeated content from the cache. The
// returned page may be shared with other callers and must not be modified.
func (r *Runner) Parse(content []byte) (*wikiast.ParsedPage, bool, error) {
	return r.parse(fsutil.HashContent(content), content)
}

// parse looks key up in the cache before parsing content.
func (r *Runner) parse(key string, content []byte) (*wikiast.ParsedPage, bool, error) {
	if r.cache != nil {
		if page, ok := r.cache.Get(key); ok {
			return page, true, nil
		}
	}

	page, err := r.parser.Parse(string(content))
	if err != nil {
		return nil, false, err
	}
	if r.cache != nil {
		r.cache.Add(key, page)
	}
	return page, false, nil
}

// readInput returns the content of path and its hash key.
func readInput(ctx context.Context, path string, stdin io.Reader) ([]byte, string, error) {
	if path == StdinPath {
		if stdin == nil {
			return nil, "", fmt.Errorf("read stdin: %w", os.ErrInvalid)
		}
		content, err := io.ReadAll(stdin)
		if err != nil {
			return nil, "", fmt.Errorf("read stdin: %w", err)
		}
		return content, fsutil.HashContent(content), nil
	}
	content, info, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return nil, "", err
	}
	return content, info.Key(), nil
}
