package pretty

import (
	"fmt"
	"strings"

	"github.com/yaklabco/golmm/pkg/lmm"
)

// FormatDiagnostic formats a single diagnostic for terminal output.
// Positions are rendered one-based; the column counts Unicode scalars so the
// caret lines up with what a terminal displays.
func (s *Styles) FormatDiagnostic(path string, diag lmm.Diagnostic, showContext bool, sourceLine string) string {
	var builder strings.Builder

	location := fmt.Sprintf("%s:%d:%d",
		s.FilePath.Render(path),
		diag.Span.Start.Line+1,
		diag.Span.Start.Col32+1,
	)

	builder.WriteString(fmt.Sprintf("  %s  %s  %s\n",
		location,
		s.FormatSeverity(diag.Severity),
		s.Message.Render(diag.Message),
	))

	if showContext && sourceLine != "" {
		builder.WriteString(s.FormatSourceContext(sourceLine, diag.Span.Start.Col32+1))
	}

	return builder.String()
}

// FormatSeverity returns a styled severity string.
func (s *Styles) FormatSeverity(sev lmm.Severity) string {
	switch sev {
	case lmm.SeverityError:
		return s.Error.Render("error")
	case lmm.SeverityWarning:
		return s.Warning.Render("warning")
	default:
		return sev.String()
	}
}

// FormatSourceContext formats the source line with a caret marker.
// Column is one-based.
func (s *Styles) FormatSourceContext(line string, column int) string {
	var builder strings.Builder

	// Indent to align with diagnostic output
	const indent = "        "

	builder.WriteString(indent + s.SourceLine.Render(line) + "\n")

	if column > 0 {
		padding := indent + strings.Repeat(" ", column-1)
		builder.WriteString(padding + s.Caret.Render("^") + "\n")
	}

	return builder.String()
}

// FormatFileHeader formats a file header for grouped output.
func (s *Styles) FormatFileHeader(path string, issueCount int) string {
	header := s.FilePath.Render(path)
	if issueCount > 0 {
		word := "issues"
		if issueCount == 1 {
			word = "issue"
		}
		header += s.Dim.Render(fmt.Sprintf(" (%d %s)", issueCount, word))
	}
	return header
}
