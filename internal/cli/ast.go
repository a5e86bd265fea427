package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/k0kubun/pp/v3"
	"github.com/spf13/cobra"

	"github.com/yaklabco/golmm/internal/logging"
	"github.com/yaklabco/golmm/internal/ui/pretty"
	"github.com/yaklabco/golmm/pkg/config"
	"github.com/yaklabco/golmm/pkg/lmm"
)

type astFlags struct {
	diagnostics bool
	spaceWidth  int
	tabWidth    int
}

func newASTCommand() *cobra.Command {
	flags := &astFlags{}

	cmd := &cobra.Command{
		Use:   "ast [file]",
		Short: "Dump the parsed document tree",
		Long: `Dump the parsed document tree for debugging.

Reads from the given file, or from stdin when no file (or "-") is given.
The tree includes spans with all three column encodings (bytes, UTF-16
units, Unicode scalars).

Examples:
  golmm ast notes.lmm
  golmm ast --diagnostics notes.lmm   # Include the diagnostic list`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAST(cmd, args, flags)
		},
	}

	cmd.Flags().BoolVar(&flags.diagnostics, "diagnostics", false, "dump diagnostics alongside the tree")
	cmd.Flags().IntVar(&flags.spaceWidth, "space-width", 0, "indent weight of a leading space (0 = from config)")
	cmd.Flags().IntVar(&flags.tabWidth, "tab-width", 0, "indent weight of a leading tab (0 = from config)")

	return cmd
}

func runAST(cmd *cobra.Command, args []string, flags *astFlags) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	finalCfg, err := loadConfig(ctx, cmd, workDir, func(cfg *config.Config) {
		cfg.SpaceWidth = flags.spaceWidth
		cfg.TabWidth = flags.tabWidth
	})
	if err != nil {
		return err
	}

	source, path, err := readDocument(cmd, args, os.ReadFile)
	if err != nil {
		return err
	}

	parsed := lmm.ParseWithOptions(source, finalCfg.ParseOptions())
	logDiagnostics(logging.Default(), path, parsed.Diagnostics)

	colorMode, err := cmd.Flags().GetString("color")
	if err != nil {
		colorMode = "auto"
	}

	printer := pp.New()
	printer.SetOutput(cmd.OutOrStdout())
	printer.SetColoringEnabled(pretty.IsColorEnabled(colorMode, cmd.OutOrStdout()))

	if _, err := printer.Println(parsed.Document); err != nil {
		return fmt.Errorf("dump document: %w", err)
	}

	if flags.diagnostics {
		if _, err := printer.Println(parsed.Diagnostics); err != nil {
			return fmt.Errorf("dump diagnostics: %w", err)
		}
	}

	return nil
}
