// Package main is the entry point for the golmm CLI.
package main

import (
	"errors"
	"os"

	"github.com/yaklabco/golmm/internal/cli"
	"github.com/yaklabco/golmm/internal/logging"
)

// Build-time variables set by GoReleaser via ldflags.
//
//nolint:gochecknoglobals // Version variables must be package-level for ldflags injection
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	info := cli.BuildInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
	}

	rootCmd := cli.NewRootCommand(info)

	if err := rootCmd.Execute(); err != nil {
		// ExitError is just a signal for the exit code; don't log it.
		var exitErr *cli.ExitError
		if !errors.As(err, &exitErr) {
			logger := logging.Default()
			logger.Error("command failed", logging.FieldError, err)
		}
		return cli.ExitCode(err)
	}

	return 0
}
