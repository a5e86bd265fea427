package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/golmm/internal/configloader"
	"github.com/yaklabco/golmm/internal/logging"
	"github.com/yaklabco/golmm/pkg/config"
	"github.com/yaklabco/golmm/pkg/reporter"
	"github.com/yaklabco/golmm/pkg/runner"
)

type checkFlags struct {
	format     string
	ignore     []string
	strict     bool
	noContext  bool
	noSummary  bool
	compact    bool
	jobs       int
	spaceWidth int
	tabWidth   int
}

func newCheckCommand() *cobra.Command {
	flags := &checkFlags{}

	cmd := &cobra.Command{
		Use:   "check [paths...]",
		Short: "Check LMM files for syntax issues",
		Long:  checkLongDescription,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, args, flags)
		},
	}

	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, json, summary")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to ignore")
	cmd.Flags().BoolVar(&flags.strict, "strict", false, "treat warnings as errors for exit code")
	cmd.Flags().BoolVar(&flags.noContext, "no-context", false, "hide source line context in output")
	cmd.Flags().BoolVar(&flags.noSummary, "no-summary", false, "hide the summary line")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "use compact output (JSON)")
	cmd.Flags().IntVar(&flags.jobs, "jobs", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().IntVar(&flags.spaceWidth, "space-width", 0, "indent weight of a leading space (0 = from config)")
	cmd.Flags().IntVar(&flags.tabWidth, "tab-width", 0, "indent weight of a leading tab (0 = from config)")

	return cmd
}

const checkLongDescription = `Check LMM files for syntax issues.

By default, checks all .lmm files in the current directory and
subdirectories. Specify paths to check specific files or directories.
Parsing never aborts: every file yields a full diagnostic list.

Examples:
  golmm check                    # Check current directory
  golmm check docs/              # Check docs directory
  golmm check notes.lmm          # Check single file
  golmm check --format json      # Output as JSON for CI
  golmm check --strict           # Treat warnings as errors`

func runCheck(cmd *cobra.Command, args []string, flags *checkFlags) error {
	logger := logging.Default()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	finalCfg, err := loadConfig(ctx, cmd, workDir, func(cfg *config.Config) {
		cfg.Format = config.OutputFormat(flags.format)
		cfg.Ignore = flags.ignore
		cfg.Strict = flags.strict
		cfg.Jobs = flags.jobs
		cfg.SpaceWidth = flags.spaceWidth
		cfg.TabWidth = flags.tabWidth
	})
	if err != nil {
		return err
	}

	format, err := reporter.ParseFormat(string(finalCfg.Format))
	if err != nil {
		return fmt.Errorf("invalid format: %w", err)
	}

	checkRunner := runner.New(finalCfg.ParseOptions())

	runOpts := runner.Options{
		Paths:        args,
		WorkingDir:   workDir,
		Extensions:   runner.DefaultExtensions(),
		ExcludeGlobs: finalCfg.Ignore,
		Jobs:         finalCfg.Jobs,
	}

	logger.Debug("starting check run",
		logging.FieldPaths, runOpts.Paths,
		logging.FieldWorkingDir, runOpts.WorkingDir,
		logging.FieldJobs, runOpts.Jobs,
	)

	result, err := checkRunner.Run(ctx, runOpts)
	if err != nil {
		return errors.Join(errors.New("check run failed"), err)
	}

	colorMode, err := cmd.Flags().GetString("color")
	if err != nil {
		colorMode = "auto"
	}

	rep, err := reporter.New(reporter.Options{
		Writer:      cmd.OutOrStdout(),
		Format:      format,
		Color:       colorMode,
		ShowContext: !flags.noContext,
		ShowSummary: !flags.noSummary,
		Compact:     flags.compact,
		WorkingDir:  workDir,
	})
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}

	if _, err := rep.Report(ctx, result); err != nil {
		logger.Error("report failed", logging.FieldError, err)
		return fmt.Errorf("report results: %w", err)
	}

	if code := ExitCodeFromResult(result, finalCfg.Strict); code != ExitSuccess {
		return &ExitError{Code: code}
	}

	return nil
}

// loadConfig resolves the final configuration for a command, applying CLI
// flag values on top of discovered config files.
func loadConfig(ctx context.Context, cmd *cobra.Command, workDir string, applyFlags func(*config.Config)) (*config.Config, error) {
	logger := logging.Default()

	cliCfg := &config.Config{}
	if applyFlags != nil {
		applyFlags(cliCfg)
	}

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("get config flag: %w", err)
	}

	loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		CLIConfig:    cliCfg,
	})
	if err != nil {
		return nil, errors.Join(errors.New("failed to load configuration"), err)
	}

	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}
	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration from", logging.FieldFiles, loadResult.LoadedFrom)
	}

	return loadResult.Config, nil
}
