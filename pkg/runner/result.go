package runner

import "github.com/yaklabco/golmm/pkg/lmm"

// FileOutcome wraps a single file's parse result with path metadata.
type FileOutcome struct {
	// Path is the file path that was processed.
	Path string

	// Result contains the parse result for this file.
	// Nil if the file could not be read.
	Result *lmm.ParseResult

	// Source is the raw file content. Reporters use it to show source
	// context next to diagnostics.
	Source string

	// Error is set if the file could not be processed.
	Error error
}

// Stats captures aggregate information about a run.
type Stats struct {
	// FilesDiscovered is the total number of files found during discovery.
	FilesDiscovered int

	// FilesProcessed is the number of files successfully parsed.
	FilesProcessed int

	// FilesErrored is the number of files that could not be read.
	FilesErrored int

	// FilesWithIssues is the number of files with at least one diagnostic.
	FilesWithIssues int

	// DiagnosticsTotal is the total number of diagnostics across all files.
	DiagnosticsTotal int

	// Errors is the number of error-severity diagnostics.
	Errors int

	// Warnings is the number of warning-severity diagnostics.
	Warnings int
}

// Result is the overall runner result.
type Result struct {
	// Files contains the outcome for each processed file,
	// ordered deterministically (by path).
	Files []FileOutcome

	// Stats contains aggregate statistics for the run.
	Stats Stats
}

// HasFailures reports whether any error-severity diagnostics or read
// failures occurred.
func (r *Result) HasFailures() bool {
	if r == nil {
		return false
	}
	return r.Stats.Errors > 0 || r.Stats.FilesErrored > 0
}

// HasIssues reports whether any diagnostics were found.
func (r *Result) HasIssues() bool {
	if r == nil {
		return false
	}
	return r.Stats.DiagnosticsTotal > 0
}

// accumulate updates the result with a file outcome.
func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Error != nil {
		r.Stats.FilesErrored++
		return
	}
	if outcome.Result == nil {
		return
	}

	r.Stats.FilesProcessed++

	diagCount := len(outcome.Result.Diagnostics)
	r.Stats.DiagnosticsTotal += diagCount
	if diagCount > 0 {
		r.Stats.FilesWithIssues++
	}

	for _, diag := range outcome.Result.Diagnostics {
		switch diag.Severity {
		case lmm.SeverityError:
			r.Stats.Errors++
		case lmm.SeverityWarning:
			r.Stats.Warnings++
		}
	}
}
