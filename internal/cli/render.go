package cli

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/yaklabco/golmm/internal/logging"
	"github.com/yaklabco/golmm/pkg/config"
	"github.com/yaklabco/golmm/pkg/langdetect"
	"github.com/yaklabco/golmm/pkg/lmm"
	"github.com/yaklabco/golmm/pkg/render"
)

// Output targets for the render command.
const (
	targetMarkdown = "markdown"
	targetHTML     = "html"
	targetGHTML    = "ghtml"
)

// outputFilePermissions is the file mode for rendered output files.
const outputFilePermissions = 0644

type renderFlags struct {
	to         string
	output     string
	detectLang bool
	spaceWidth int
	tabWidth   int
}

func newRenderCommand() *cobra.Command {
	flags := &renderFlags{}

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render an LMM document to Markdown or HTML",
		Long: `Render an LMM document to Markdown or HTML.

Reads from the given file, or from stdin when no file (or "-") is given.
Parse diagnostics are logged to stderr; rendering proceeds on the
best-effort document tree either way.

Targets:
  markdown   LMM-native Markdown rendering
  html       LMM-native HTML rendering
  ghtml      Markdown rendering converted to HTML through goldmark (GFM)

Examples:
  golmm render notes.lmm                    # Markdown to stdout
  golmm render notes.lmm --to html          # HTML to stdout
  golmm render notes.lmm --to ghtml -o out.html
  golmm render --detect-lang notes.lmm      # Fill in code block languages`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, args, flags)
		},
	}

	cmd.Flags().StringVar(&flags.to, "to", targetMarkdown, "output target: markdown, html, ghtml")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output file path (default: stdout)")
	cmd.Flags().BoolVar(&flags.detectLang, "detect-lang", false, "detect languages for code blocks without a lang param")
	cmd.Flags().IntVar(&flags.spaceWidth, "space-width", 0, "indent weight of a leading space (0 = from config)")
	cmd.Flags().IntVar(&flags.tabWidth, "tab-width", 0, "indent weight of a leading tab (0 = from config)")

	return cmd
}

func runRender(cmd *cobra.Command, args []string, flags *renderFlags) error {
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
		cfg.SpaceWidth = flags.spaceWidth
		cfg.TabWidth = flags.tabWidth
		cfg.DetectLang = flags.detectLang
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

	if finalCfg.DetectLang {
		if annotated := langdetect.Annotate(&parsed.Document); annotated > 0 {
			logger.Debug("annotated code blocks", logging.FieldDetectLang, annotated)
		}
	}

	output, err := renderTo(&parsed.Document, flags.to)
	if err != nil {
		return err
	}

	if flags.output != "" {
		if err := os.WriteFile(flags.output, []byte(output), outputFilePermissions); err != nil {
			return fmt.Errorf("write %s: %w", flags.output, err)
		}
		logger.Debug("rendered document",
			logging.FieldInput, path,
			logging.FieldOutput, flags.output,
			logging.FieldTo, flags.to,
		)
		return nil
	}

	fmt.Fprintln(cmd.OutOrStdout(), output)
	return nil
}

// renderTo renders the document to the requested target.
func renderTo(doc *lmm.Document, target string) (string, error) {
	switch target {
	case targetMarkdown:
		return render.Markdown(doc), nil
	case targetHTML:
		return render.HTML(doc), nil
	case targetGHTML:
		md := goldmark.New(goldmark.WithExtensions(extension.GFM))
		var buf bytes.Buffer
		if err := md.Convert([]byte(render.Markdown(doc)), &buf); err != nil {
			return "", fmt.Errorf("convert markdown: %w", err)
		}
		return buf.String(), nil
	default:
		return "", fmt.Errorf("unsupported target %q: expected markdown, html, or ghtml", target)
	}
}

// logDiagnostics logs parse diagnostics to stderr, one line each.
func logDiagnostics(logger *log.Logger, path string, diags []lmm.Diagnostic) {
	for _, diag := range diags {
		location := fmt.Sprintf("%s:%d:%d", path, diag.Span.Start.Line+1, diag.Span.Start.Col32+1)
		switch diag.Severity {
		case lmm.SeverityError:
			logger.Error(diag.Message, logging.FieldPath, location)
		default:
			logger.Warn(diag.Message, logging.FieldPath, location)
		}
	}
}
