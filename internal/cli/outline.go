package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/golmm/internal/logging"
	"github.com/yaklabco/golmm/internal/ui/pretty"
	"github.com/yaklabco/golmm/pkg/config"
	"github.com/yaklabco/golmm/pkg/lmm"
	"github.com/yaklabco/golmm/pkg/outline"
)

type outlineFlags struct {
	snippets   bool
	spaceWidth int
	tabWidth   int
}

func newOutlineCommand() *cobra.Command {
	flags := &outlineFlags{}

	cmd := &cobra.Command{
		Use:   "outline [file]",
		Short: "Show the part structure of an LMM document",
		Long: `Show the part structure of an LMM document as an indented tree.

Reads from the given file, or from stdin when no file (or "-") is given.
Each entry shows the part title and its one-based header location.

Examples:
  golmm outline notes.lmm
  golmm outline --snippets       # List editor snippets instead`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOutline(cmd, args, flags)
		},
	}

	cmd.Flags().BoolVar(&flags.snippets, "snippets", false, "list editor snippets instead of outlining a document")
	cmd.Flags().IntVar(&flags.spaceWidth, "space-width", 0, "indent weight of a leading space (0 = from config)")
	cmd.Flags().IntVar(&flags.tabWidth, "tab-width", 0, "indent weight of a leading tab (0 = from config)")

	return cmd
}

func runOutline(cmd *cobra.Command, args []string, flags *outlineFlags) error {
	logger := logging.Default()

	colorMode, err := cmd.Flags().GetString("color")
	if err != nil {
		colorMode = "auto"
	}
	styles := pretty.NewStyles(pretty.IsColorEnabled(colorMode, cmd.OutOrStdout()))

	if flags.snippets {
		printSnippets(cmd.OutOrStdout(), styles)
		return nil
	}

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
	logDiagnostics(logger, path, parsed.Diagnostics)

	symbols := outline.Collect(&parsed.Document)
	if len(symbols) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), styles.Dim.Render("(no parts)"))
		return nil
	}

	printSymbols(cmd.OutOrStdout(), styles, symbols, 0)
	return nil
}

func printSymbols(out io.Writer, styles *pretty.Styles, symbols []outline.Symbol, depth int) {
	for _, sym := range symbols {
		location := fmt.Sprintf("%d:%d", sym.Span.Start.Line+1, sym.Span.Start.Col32+1)
		fmt.Fprintf(out, "%s%s  %s\n",
			strings.Repeat("  ", depth),
			styles.Bold.Render(sym.Name),
			styles.Dim.Render(location),
		)
		printSymbols(out, styles, sym.Children, depth+1)
	}
}

func printSnippets(out io.Writer, styles *pretty.Styles) {
	for _, snippet := range outline.Snippets() {
		fmt.Fprintf(out, "%s  %s\n",
			styles.Bold.Render(snippet.Label),
			styles.Dim.Render(snippet.Detail),
		)
		for _, line := range strings.Split(snippet.Body, "\n") {
			fmt.Fprintf(out, "    %s\n", line)
		}
	}
}
