package lmm

// Severity indicates the importance of a diagnostic.
type Severity uint8

const (
	// SeverityError marks malformed input the parser recovered from.
	SeverityError Severity = iota

	// SeverityWarning marks cosmetic or stylistic issues.
	SeverityWarning
)

// String returns the lowercase name of the severity.
func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return "unknown"
	}
}

// Diagnostic is a single issue found during parsing, tied to a source span.
//
// Diagnostics never abort parsing; they are advisory output accumulated in
// source encounter order (left-to-right, top-to-bottom).
type Diagnostic struct {
	Span     Span
	Severity Severity
	Message  string
}
