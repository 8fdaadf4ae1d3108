package cli

import (
	"errors"

	"github.com/yaklabco/wikiparse/internal/configloader"
	"github.com/yaklabco/wikiparse/pkg/runner"
)

// Exit codes for wikiparse.
const (
	// ExitSuccess indicates every input was parsed.
	ExitSuccess = 0

	// ExitParseFailures indicates the run finished but some inputs failed.
	ExitParseFailures = 1

	// ExitUsageError indicates bad flags, arguments or configuration.
	ExitUsageError = 2
)

var (
	// ErrParseFailures is returned when at least one input could not be parsed.
	// The failures themselves are already in the report.
	ErrParseFailures = errors.New("some files failed to parse")

	// ErrUsage marks errors caused by invalid invocation.
	ErrUsage = errors.New("invalid usage")
)

// ExitCodeFromResult maps a finished run onto an exit code.
func ExitCodeFromResult(result *runner.Result) int {
	if result.HasFailures() {
		return ExitParseFailures
	}
	return ExitSuccess
}

// ExitCode maps an error returned by a command onto an exit code. Errors
// that are neither usage nor configuration problems count as failures.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrUsage), errors.Is(err, configloader.ErrInvalidConfig):
		return ExitUsageError
	default:
		return ExitParseFailures
	}
}
