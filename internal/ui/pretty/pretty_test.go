package pretty_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/golmm/internal/ui/pretty"
	"github.com/yaklabco/golmm/pkg/lmm"
	"github.com/yaklabco/golmm/pkg/runner"
)

func TestFormatDiagnostic(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	diag := lmm.Diagnostic{
		Span: lmm.Span{
			Start: lmm.Position{Line: 2, Col8: 4, Col16: 4, Col32: 4},
		},
		Severity: lmm.SeverityError,
		Message:  "missing closing delimiter",
	}

	out := styles.FormatDiagnostic("doc.lmm", diag, false, "")
	assert.Contains(t, out, "doc.lmm:3:5")
	assert.Contains(t, out, "error")
	assert.Contains(t, out, "missing closing delimiter")
}

func TestFormatDiagnostic_WithContext(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	diag := lmm.Diagnostic{
		Span:     lmm.Span{Start: lmm.Position{Line: 0, Col8: 2, Col16: 2, Col32: 2}},
		Severity: lmm.SeverityWarning,
		Message:  "missing space between block name and '{'; write '@name {'",
	}

	out := styles.FormatDiagnostic("doc.lmm", diag, true, "@x{")
	lines := strings.Split(out, "\n")
	assert.Contains(t, out, "@x{")

	// Caret sits under the third column.
	var caretLine string
	for _, line := range lines {
		if strings.Contains(line, "^") {
			caretLine = line
		}
	}
	assert.Equal(t, "^", strings.TrimSpace(caretLine))
	assert.Equal(t, len("        ")+2, strings.Index(caretLine, "^"))
}

func TestFormatSeverity(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	assert.Equal(t, "error", styles.FormatSeverity(lmm.SeverityError))
	assert.Equal(t, "warning", styles.FormatSeverity(lmm.SeverityWarning))
}

func TestFormatFileHeader(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	assert.Equal(t, "a.lmm", styles.FormatFileHeader("a.lmm", 0))
	assert.Equal(t, "a.lmm (1 issue)", styles.FormatFileHeader("a.lmm", 1))
	assert.Equal(t, "a.lmm (3 issues)", styles.FormatFileHeader("a.lmm", 3))
}

func TestFormatSummaryOneLine(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)

	clean := styles.FormatSummaryOneLine(runner.Stats{FilesProcessed: 4})
	assert.Equal(t, "No issues found (4 files checked)\n", clean)

	dirty := styles.FormatSummaryOneLine(runner.Stats{
		FilesProcessed:   3,
		FilesWithIssues:  2,
		DiagnosticsTotal: 5,
		Errors:           3,
		Warnings:         2,
	})
	assert.Equal(t, "5 issues (3 errors, 2 warnings), in 2 files\n", dirty)

	single := styles.FormatSummaryOneLine(runner.Stats{
		FilesProcessed:   1,
		FilesWithIssues:  1,
		DiagnosticsTotal: 1,
		Warnings:         1,
	})
	assert.Contains(t, single, "1 issue (1 warnings), in 1 file")
}

func TestFormatSummary(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	out := styles.FormatSummary(runner.Stats{
		FilesProcessed:   2,
		FilesWithIssues:  1,
		DiagnosticsTotal: 3,
		Errors:           2,
		Warnings:         1,
	})

	assert.Contains(t, out, "Summary")
	assert.Contains(t, out, "Files checked:     2")
	assert.Contains(t, out, "Errors:          2")
	assert.Contains(t, out, "Warnings:        1")
	assert.Contains(t, out, "Check failed with errors")

	passed := styles.FormatSummary(runner.Stats{FilesProcessed: 1})
	assert.Contains(t, passed, "Check passed")
}

func TestIsColorEnabled(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	assert.True(t, pretty.IsColorEnabled("always", &buf))
	assert.False(t, pretty.IsColorEnabled("never", &buf))
	// A plain buffer is not a TTY.
	assert.False(t, pretty.IsColorEnabled("auto", &buf))
}
