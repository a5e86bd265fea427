package cli

import (
	"errors"

	"github.com/yaklabco/golmm/pkg/runner"
)

// Exit codes for golmm.
const (
	// ExitSuccess indicates successful execution with no issues.
	ExitSuccess = 0

	// ExitCheckErrors indicates the check completed but found errors.
	ExitCheckErrors = 1

	// ExitCheckWarnings indicates the check found warnings and strict mode
	// promoted them.
	ExitCheckWarnings = 2

	// ExitInternalError indicates an internal or usage error.
	ExitInternalError = 70
)

// ExitError carries a specific exit code out of a command.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return "issues found"
}

// ExitCodeFromResult determines the exit code based on result and strict mode.
func ExitCodeFromResult(result *runner.Result, strict bool) int {
	if result == nil {
		return ExitSuccess
	}

	if result.Stats.Errors > 0 || result.Stats.FilesErrored > 0 {
		return ExitCheckErrors
	}

	if strict && result.Stats.Warnings > 0 {
		return ExitCheckWarnings
	}

	return ExitSuccess
}

// ExitCode maps a command error to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitInternalError
}
