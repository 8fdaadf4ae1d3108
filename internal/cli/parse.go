package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/yaklabco/wikiparse/internal/configloader"
	"github.com/yaklabco/wikiparse/internal/logging"
	"github.com/yaklabco/wikiparse/pkg/config"
	"github.com/yaklabco/wikiparse/pkg/fsutil"
	"github.com/yaklabco/wikiparse/pkg/reporter"
	"github.com/yaklabco/wikiparse/pkg/runner"
	"github.com/yaklabco/wikiparse/pkg/templates"
	"github.com/yaklabco/wikiparse/pkg/wikiparser"
)

// outputFilePermissions is the mode of files written with --output.
const outputFilePermissions = 0o644

type parseFlags struct {
	format        string
	jobs          int
	ignore        []string
	language      string
	strategy      string
	showImageText bool
	deleteTags    bool
	showMath      bool
	srcSpans      bool
	lineSeparator string
	output        string
	summary       bool
	compact       bool
	follow        bool
}

func newParseCommand() *cobra.Command {
	flags := &parseFlags{}

	cmd := &cobra.Command{
		Use:   "parse [paths...]",
		Short: "Parse wiki markup files",
		Long:  parseLongDescription,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(cmd, args, flags)
		},
	}

	addParseFlags(cmd, flags)

	return cmd
}

const parseLongDescription = `Parse MediaWiki markup into a document tree of sections,
paragraphs, tables, lists and links.

Directories are walked for .wiki, .mediawiki and .wikitext files.
With no paths, or with "-", markup is read from standard input.

Examples:
  wikiparse parse page.wiki                 # Print the outline of one page
  wikiparse parse docs/                     # Parse every page below docs
  cat page.wiki | wikiparse parse           # Parse standard input
  wikiparse parse --format json docs/       # Full document tree as JSON
  wikiparse parse --language de seite.wiki  # German namespaces and templates
  wikiparse parse --format summary -o report.txt docs/`

func addParseFlags(cmd *cobra.Command, flags *parseFlags) {
	cmd.Flags().StringVar(&flags.format, "format", "", "output format: text, json, summary (default from config, else text)")
	cmd.Flags().IntVarP(&flags.jobs, "jobs", "j", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to ignore")
	cmd.Flags().StringVar(&flags.language, "language", "", "wiki language preset: en, de")
	cmd.Flags().StringVar(&flags.strategy, "template-strategy", "", "template strategy: placeholder, flush, german")
	cmd.Flags().BoolVar(&flags.showImageText, "show-image-text", false, "keep image captions in the text")
	cmd.Flags().BoolVar(&flags.deleteTags, "delete-tags", false, "drop unknown tags instead of marking them")
	cmd.Flags().BoolVar(&flags.showMath, "show-math", false, "keep the content of <math> tags")
	cmd.Flags().BoolVar(&flags.srcSpans, "src-spans", false, "record the source range of every node")
	cmd.Flags().StringVar(&flags.lineSeparator, "line-separator", "", "line separator of the input: LF, CRLF")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "write the report to a file instead of stdout")
	cmd.Flags().BoolVar(&flags.summary, "summary", false, "append a summary to text output")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "minified JSON output")
	cmd.Flags().BoolVar(&flags.follow, "follow-symlinks", false, "follow symlinked directories while walking")
}

// cliConfig turns the flags the user actually set into a config layer.
func (f *parseFlags) cliConfig(cmd *cobra.Command) *config.Config {
	cfg := &config.Config{
		Format:        config.OutputFormat(f.format),
		Jobs:          f.jobs,
		Ignore:        f.ignore,
		Language:      config.Language(f.language),
		LineSeparator: f.lineSeparator,
		Templates:     config.TemplatesConfig{Strategy: f.strategy},
		Output:        f.output,
		Summary:       f.summary,
	}

	changed := cmd.Flags().Changed
	boolFlags := []struct {
		name  string
		value bool
		dst   **bool
	}{
		{"show-image-text", f.showImageText, &cfg.Parser.ShowImageText},
		{"delete-tags", f.deleteTags, &cfg.Parser.DeleteTags},
		{"show-math", f.showMath, &cfg.Parser.ShowMathTagContent},
		{"src-spans", f.srcSpans, &cfg.Parser.CalculateSrcSpans},
	}
	for _, b := range boolFlags {
		if changed(b.name) {
			*b.dst = config.Bool(b.value)
		}
	}

	return cfg
}

func runParse(cmd *cobra.Command, args []string, flags *parseFlags) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	logger := logging.FromContext(ctx)

	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	cfg, err := loadConfig(ctx, cmd, workDir, flags.cliConfig(cmd))
	if err != nil {
		return err
	}

	paths, err := inputPaths(args, cmd.InOrStdin())
	if err != nil {
		return err
	}

	tp, err := templates.FromConfig(cfg)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUsage, err)
	}
	parserOpts, err := wikiparser.OptionsFromConfig(cfg, tp)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUsage, err)
	}

	logger.Debug("configuration loaded",
		logging.FieldLanguage, cfg.Language,
		logging.FieldStrategy, cfg.ResolvedStrategy(),
		logging.FieldJobs, cfg.Jobs,
		logging.FieldCacheSize, cfg.CacheSize,
	)

	pageRunner, err := runner.New(wikiparser.New(parserOpts), cfg.CacheSize)
	if err != nil {
		return fmt.Errorf("create runner: %w", err)
	}

	result, err := pageRunner.Run(ctx, runner.Options{
		Paths:          paths,
		WorkingDir:     workDir,
		Extensions:     cfg.Extensions,
		ExcludeGlobs:   cfg.Ignore,
		FollowSymlinks: flags.follow,
		Jobs:           cfg.Jobs,
		Stdin:          cmd.InOrStdin(),
	})
	if err != nil {
		if errors.Is(err, runner.ErrInvalidPattern) {
			return fmt.Errorf("%w: %w", ErrUsage, err)
		}
		return fmt.Errorf("parse run failed: %w", err)
	}

	if err := report(ctx, cmd, cfg, workDir, flags.compact, result); err != nil {
		return err
	}

	if ExitCodeFromResult(result) != ExitSuccess {
		return ErrParseFailures
	}
	return nil
}

// loadConfig resolves the configuration with the persistent --config flag.
func loadConfig(ctx context.Context, cmd *cobra.Command, workDir string, cli *config.Config) (*config.Config, error) {
	logger := logging.FromContext(ctx)

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("get config flag: %w", err)
	}

	loaded, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		CLIConfig:    cli,
	})
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}

	for _, warning := range loaded.Warnings {
		logger.Warn(warning)
	}
	if len(loaded.LoadedFrom) > 0 {
		logger.Debug("loaded configuration", logging.FieldPaths, loaded.LoadedFrom)
	}

	return loaded.Config, nil
}

// inputPaths defaults to standard input, but refuses to wait on a terminal.
func inputPaths(args []string, stdin io.Reader) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}
	if f, ok := stdin.(*os.File); ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())) {
		return nil, fmt.Errorf("%w: no input; pass paths or pipe markup on stdin", ErrUsage)
	}
	return []string{runner.StdinPath}, nil
}

// report renders result to stdout, or atomically to cfg.Output.
func report(ctx context.Context, cmd *cobra.Command, cfg *config.Config, workDir string, compact bool, result *runner.Result) error {
	format, err := reporter.ParseFormat(string(cfg.Format))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUsage, err)
	}

	colorMode, err := cmd.Flags().GetString("color")
	if err != nil {
		colorMode = "auto"
	}

	var buf bytes.Buffer
	writer := cmd.OutOrStdout()
	if cfg.Output != "" {
		writer = &buf
		colorMode = "never"
	}

	rep, err := reporter.New(reporter.Options{
		Writer:      writer,
		Format:      format,
		Color:       colorMode,
		ShowSummary: cfg.Summary,
		Compact:     compact,
		WorkingDir:  workDir,
	})
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}

	if _, err := rep.Report(ctx, result); err != nil {
		return fmt.Errorf("report results: %w", err)
	}

	if cfg.Output == "" {
		return nil
	}

	changed, err := fsutil.WriteAtomicIfChanged(ctx, cfg.Output, buf.Bytes(), outputFilePermissions)
	if err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	logging.FromContext(ctx).Debug("report written", logging.FieldOutput, cfg.Output, "changed", changed)
	return nil
}
