package reporter

import (
	"context"
	"fmt"

	"github.com/yaklabco/golmm/internal/ui/pretty"
	"github.com/yaklabco/golmm/pkg/runner"
)

// SummaryReporter prints aggregate statistics only, without per-diagnostic
// detail.
type SummaryReporter struct {
	opts   Options
	styles *pretty.Styles
}

// NewSummaryReporter creates a new summary reporter.
func NewSummaryReporter(opts Options) *SummaryReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &SummaryReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
	}
}

// Report implements Reporter.
func (r *SummaryReporter) Report(_ context.Context, result *runner.Result) (int, error) {
	if result == nil {
		result = &runner.Result{}
	}

	if _, err := fmt.Fprint(r.opts.Writer, r.styles.FormatSummary(result.Stats)); err != nil {
		return 0, fmt.Errorf("write summary: %w", err)
	}

	return result.Stats.DiagnosticsTotal, nil
}
