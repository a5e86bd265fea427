package configloader

import (
	"fmt"

	"github.com/yaklabco/golmm/pkg/config"
)

// ValidationError describes an invalid configuration value.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid config: %s: %s", e.Field, e.Message)
}

// ValidationResult collects validation errors and warnings.
type ValidationResult struct {
	Errors   []ValidationError
	Warnings []ValidationError
}

// Valid returns true if no errors were found.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// Validate checks the configuration for invalid values.
func Validate(cfg *config.Config) *ValidationResult {
	result := &ValidationResult{}

	if cfg.SpaceWidth < 0 {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "space_width",
			Message: "must not be negative",
		})
	}
	if cfg.TabWidth < 0 {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "tab_width",
			Message: "must not be negative",
		})
	}
	if cfg.Jobs < 0 {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "jobs",
			Message: "must not be negative",
		})
	}
	if cfg.Format != "" && !cfg.Format.IsValid() {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "format",
			Message: fmt.Sprintf("unknown format %q (expected text, json, or summary)", cfg.Format),
		})
	}

	return result
}
