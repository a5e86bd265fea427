package config

// GenerateTemplate creates a commented starter configuration file in the
// given format ("yaml" or "toml").
func GenerateTemplate(format string) []byte {
	if format == "toml" {
		return []byte(`# golmm configuration
# See: https://github.com/yaklabco/golmm

# Indent weight of one leading space
space_width = 1

# Indent weight of one leading tab
tab_width = 2

# File patterns to skip (glob patterns)
# ignore = ["vendor/**", "node_modules/**"]
`)
	}

	return []byte(`# golmm configuration
# See: https://github.com/yaklabco/golmm

# Indent weight of one leading space
space_width: 1

# Indent weight of one leading tab
tab_width: 2

# File patterns to skip (glob patterns)
# ignore:
#   - "vendor/**"
#   - "node_modules/**"
`)
}

// DefaultTemplateHeader returns the default header for generated configs.
func DefaultTemplateHeader() string {
	return `# golmm configuration
# See: https://github.com/yaklabco/golmm`
}
