// Package configloader resolves the wikiparse configuration.
// It discovers system, user and project files, merges them in precedence
// order, applies WIKIPARSE_* environment overrides and validates the result.
package configloader

import (
	"context"
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/yaklabco/wikiparse/internal/logging"
	"github.com/yaklabco/wikiparse/pkg/config"
	"github.com/yaklabco/wikiparse/pkg/fsutil"
)

// ErrInvalidConfig wraps every validation failure returned by Load.
var ErrInvalidConfig = errors.New("invalid configuration")

// LoadOptions controls configuration loading behavior.
type LoadOptions struct {
	// WorkingDir is the directory the project search starts from.
	// Defaults to the current working directory.
	WorkingDir string

	// ExplicitPath is a config file named with --config. It is loaded after
	// the discovered files and must exist.
	ExplicitPath string

	// IgnoreSystemConfig skips the system-wide file.
	IgnoreSystemConfig bool

	// IgnoreUserConfig skips the per-user file.
	IgnoreUserConfig bool

	// IgnoreProjectConfig skips the project file search.
	IgnoreProjectConfig bool

	// IgnoreEnv skips WIKIPARSE_* environment variables.
	IgnoreEnv bool

	// CLIConfig holds values from command-line flags; it wins over everything.
	CLIConfig *config.Config
}

// LoadResult contains the resolved configuration and where it came from.
type LoadResult struct {
	// Config is the final merged configuration.
	Config *config.Config

	// Paths are the discovered configuration files.
	Paths *ConfigPaths

	// LoadedFrom lists the files actually loaded, lowest precedence first.
	LoadedFrom []string

	// Warnings holds non-fatal validation findings.
	Warnings []string
}

// Load resolves the final configuration.
// Precedence (highest to lowest):
//  1. CLI flags (opts.CLIConfig)
//  2. Environment variables (WIKIPARSE_*)
//  3. Explicit config file (opts.ExplicitPath)
//  4. Project config (.wikiparse.yml upward search)
//  5. User config ($XDG_CONFIG_HOME/wikiparse/config.yaml)
//  6. System config (/etc/wikiparse/config.yaml)
//  7. Defaults
func Load(ctx context.Context, opts LoadOptions) (*LoadResult, error) {
	logger := logging.FromContext(ctx)

	workDir := opts.WorkingDir
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("get working directory: %w", err)
		}
		workDir = wd
	}

	paths, err := DiscoverPaths(ctx, workDir)
	if err != nil {
		return nil, fmt.Errorf("discover paths: %w", err)
	}
	paths.Explicit = opts.ExplicitPath

	result := &LoadResult{Paths: paths}
	cfg := config.NewConfig()

	layers := []struct {
		name    string
		path    string
		skip    bool
		require bool
	}{
		{name: "system", path: paths.System, skip: opts.IgnoreSystemConfig},
		{name: "user", path: paths.User, skip: opts.IgnoreUserConfig},
		{name: "project", path: paths.Project, skip: opts.IgnoreProjectConfig},
		{name: "explicit", path: paths.Explicit, require: true},
	}

	for _, layer := range layers {
		if layer.skip || layer.path == "" {
			continue
		}
		fileCfg, warnings, err := loadConfigFile(ctx, layer.path)
		if err != nil {
			if !layer.require && errors.Is(err, fsutil.ErrNotFound) {
				continue
			}
			return nil, fmt.Errorf("load %s config: %w", layer.name, err)
		}
		logger.Debug("loaded config", logging.FieldConfig, layer.name, logging.FieldPath, layer.path)
		cfg = merge(cfg, fileCfg)
		result.LoadedFrom = append(result.LoadedFrom, layer.path)
		result.Warnings = append(result.Warnings, warnings...)
	}

	if !opts.IgnoreEnv {
		if err := LoadFromEnv(cfg); err != nil {
			return nil, fmt.Errorf("load environment: %w", err)
		}
	}

	cfg = merge(cfg, opts.CLIConfig)

	validation := Validate(cfg)
	if !validation.Valid() {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, &validation.Errors[0])
	}
	for _, w := range validation.Warnings {
		if !containsWarning(result.Warnings, w) {
			result.Warnings = append(result.Warnings, w.Error())
		}
	}

	result.Config = cfg
	return result, nil
}

// loadConfigFile reads and validates one YAML file. Validation errors name
// the file so a bad value is easy to find.
func loadConfigFile(ctx context.Context, path string) (*config.Config, []string, error) {
	content, _, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return nil, nil, err
	}

	cfg, err := config.FromYAML(content)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}

	validation := ValidateWithFile(cfg, path)
	if !validation.Valid() {
		return nil, nil, fmt.Errorf("%w: %w", ErrInvalidConfig, &validation.Errors[0])
	}

	warnings := make([]string, 0, len(validation.Warnings))
	for _, w := range validation.Warnings {
		warnings = append(warnings, w.Error())
	}
	return cfg, warnings, nil
}

// containsWarning reports whether w was already recorded for some file.
func containsWarning(recorded []string, w ValidationError) bool {
	w.FilePath = ""
	suffix := w.Error()
	return slices.ContainsFunc(recorded, func(r string) bool { return strings.HasSuffix(r, suffix) })
}
