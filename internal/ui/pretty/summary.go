package pretty

import (
	"fmt"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"golang.org/x/term"

	"github.com/yaklabco/golmm/pkg/runner"
)

const (
	defaultDividerWidth = 40
	wordFile            = "file"
	wordFiles           = "files"
)

// FormatSummaryOneLine formats run statistics as a single line.
// Example: "12 issues (8 errors, 4 warnings) in 3 files".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats) string {
	if stats.DiagnosticsTotal == 0 {
		checked := fmt.Sprintf(" (%s checked)", countNoun(stats.FilesProcessed, wordFile, wordFiles))
		return s.Success.Render("No issues found") + s.Dim.Render(checked) + "\n"
	}

	var parts []string

	issueWord := "issues"
	if stats.DiagnosticsTotal == 1 {
		issueWord = "issue"
	}

	var severityParts []string
	if stats.Errors > 0 {
		severityParts = append(severityParts, s.Error.Render(fmt.Sprintf("%d errors", stats.Errors)))
	}
	if stats.Warnings > 0 {
		severityParts = append(severityParts, s.Warning.Render(fmt.Sprintf("%d warnings", stats.Warnings)))
	}

	if len(severityParts) > 0 {
		parts = append(parts, fmt.Sprintf("%d %s (%s)", stats.DiagnosticsTotal, issueWord, strings.Join(severityParts, ", ")))
	} else {
		parts = append(parts, fmt.Sprintf("%d %s", stats.DiagnosticsTotal, issueWord))
	}

	parts = append(parts, "in "+countNoun(stats.FilesWithIssues, wordFile, wordFiles))

	return strings.Join(parts, ", ") + "\n"
}

// FormatSummary formats run statistics as a summary block.
func (s *Styles) FormatSummary(stats runner.Stats) string {
	var builder strings.Builder

	builder.WriteString("\n")
	builder.WriteString(s.SummaryTitle.Render("Summary"))
	builder.WriteString("\n")
	builder.WriteString(strings.Repeat("-", dividerWidth()))
	builder.WriteString("\n")

	builder.WriteString("  Files checked:     " +
		s.SummaryValue.Render(humanize.Comma(int64(stats.FilesProcessed))) + "\n")

	if stats.FilesWithIssues > 0 {
		builder.WriteString("  Files with issues: " +
			s.Failure.Render(humanize.Comma(int64(stats.FilesWithIssues))) + "\n")
	}

	if stats.FilesErrored > 0 {
		builder.WriteString("  Files unreadable:  " +
			s.Failure.Render(humanize.Comma(int64(stats.FilesErrored))) + "\n")
	}

	builder.WriteString("\n")

	builder.WriteString("  Total issues:      " +
		s.SummaryValue.Render(humanize.Comma(int64(stats.DiagnosticsTotal))) + "\n")

	if stats.Errors > 0 {
		builder.WriteString("    Errors:          " +
			s.Error.Render(humanize.Comma(int64(stats.Errors))) + "\n")
	}
	if stats.Warnings > 0 {
		builder.WriteString("    Warnings:        " +
			s.Warning.Render(humanize.Comma(int64(stats.Warnings))) + "\n")
	}

	builder.WriteString("\n")

	switch {
	case stats.Errors > 0 || stats.FilesErrored > 0:
		builder.WriteString(s.Failure.Render("Check failed with errors"))
	case stats.Warnings > 0:
		builder.WriteString(s.Warning.Render("Check completed with warnings"))
	default:
		builder.WriteString(s.Success.Render("Check passed"))
	}
	builder.WriteString("\n")

	return builder.String()
}

// countNoun formats a count with the right singular or plural noun.
func countNoun(n int, singular, plural string) string {
	word := plural
	if n == 1 {
		word = singular
	}
	return fmt.Sprintf("%d %s", n, word)
}

// dividerWidth returns the summary divider width, capped to the terminal
// width when stderr is a terminal.
func dividerWidth() int {
	width, _, err := term.GetSize(int(os.Stderr.Fd()))
	if err != nil || width <= 0 || width > defaultDividerWidth {
		return defaultDividerWidth
	}
	return width
}
