package configloader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// ConfigPaths holds the configuration files found for one run.
// A location without a file is left empty.
type ConfigPaths struct {
	// System is the machine-wide file, e.g. /etc/wikiparse/config.yaml.
	System string

	// User is the per-user file, e.g. ~/.config/wikiparse/config.yaml.
	User string

	// Project is the nearest .wikiparse.yml at or above the working directory.
	Project string

	// Explicit is the file named with --config.
	Explicit string
}

// projectConfigNames are searched in each directory, in order.
//
//nolint:gochecknoglobals // Read-only lookup table.
var projectConfigNames = []string{
	".wikiparse.yml",
	".wikiparse.yaml",
	"wikiparse.yml",
	"wikiparse.yaml",
}

//nolint:gochecknoglobals // Read-only lookup table.
var dirConfigNames = []string{"config.yaml", "config.yml"}

// vcsRootMarkers end the upward project search.
//
//nolint:gochecknoglobals // Read-only lookup table.
var vcsRootMarkers = []string{".git", ".hg", ".svn"}

// appDirName is the directory name under system and user config roots.
const appDirName = "wikiparse"

// DiscoverPaths looks up the system, user and project configuration files.
func DiscoverPaths(ctx context.Context, workDir string) (*ConfigPaths, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context cancelled: %w", err)
	}

	project, err := FindProjectConfig(ctx, workDir)
	if err != nil {
		return nil, err
	}

	return &ConfigPaths{
		System:  firstExisting(systemConfigDir(), dirConfigNames),
		User:    firstExisting(userConfigDir(), dirConfigNames),
		Project: project,
	}, nil
}

func systemConfigDir() string {
	if runtime.GOOS == "windows" {
		root := os.Getenv("ProgramData")
		if root == "" {
			root = `C:\ProgramData`
		}
		return filepath.Join(root, appDirName)
	}
	return filepath.Join("/etc", appDirName)
}

// userConfigDir prefers XDG_CONFIG_HOME and falls back to the platform
// default from os.UserConfigDir.
func userConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appDirName)
	}
	root, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(root, appDirName)
}

// firstExisting returns the first regular file dir/name, or "".
func firstExisting(dir string, names []string) string {
	if dir == "" {
		return ""
	}
	for _, name := range names {
		candidate := filepath.Join(dir, name)
		if isRegularFile(candidate) {
			return candidate
		}
	}
	return ""
}

// FindProjectConfig walks up from startDir and returns the first project
// config file it meets. The walk stops after a VCS root, the home directory
// or the filesystem root; "" means nothing was found.
func FindProjectConfig(ctx context.Context, startDir string) (string, error) {
	if startDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		startDir = wd
	}

	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}

	home, _ := os.UserHomeDir()

	for {
		if err := ctx.Err(); err != nil {
			return "", fmt.Errorf("context cancelled: %w", err)
		}

		if found := firstExisting(dir, projectConfigNames); found != "" {
			return found, nil
		}

		if isVCSRoot(dir) || (home != "" && dir == home) {
			return "", nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

func isVCSRoot(dir string) bool {
	for _, marker := range vcsRootMarkers {
		if info, err := os.Stat(filepath.Join(dir, marker)); err == nil && info.IsDir() {
			return true
		}
	}
	return false
}

func isRegularFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
