package reporter

import (
	"fmt"

	"github.com/yaklabco/golmm/pkg/config"
)

// ParseFormat converts a user-supplied format name to an OutputFormat.
func ParseFormat(name string) (config.OutputFormat, error) {
	format := config.OutputFormat(name)
	if name == "" {
		return config.FormatText, nil
	}
	if !format.IsValid() {
		return "", fmt.Errorf("unsupported format: %s (expected text, json, or summary)", name)
	}
	return format, nil
}
