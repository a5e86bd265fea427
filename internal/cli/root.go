// Package cli provides the Cobra command structure for golmm.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/yaklabco/golmm/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root golmm command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var configPath string
	var color string

	rootCmd := &cobra.Command{
		Use:   "golmm",
		Short: "A tool suite for the LMM lightweight markup language",
		Long: `golmm parses, checks, and renders LMM documents.

LMM is a lightweight markup language built around named blocks
("@name args [k=v] { ... }"), #key:value attributes, and plain text.
The parser never aborts: malformed input yields diagnostics alongside
a best-effort document tree, which golmm can render to Markdown or
HTML, outline, or dump for inspection.`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if debug {
				logging.SetLevel("debug")
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags.
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&color, "color", "auto",
		"colorize output: auto, always, never")

	// Add subcommands.
	rootCmd.AddCommand(newCheckCommand())
	rootCmd.AddCommand(newRenderCommand())
	rootCmd.AddCommand(newOutlineCommand())
	rootCmd.AddCommand(newASTCommand())
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	return rootCmd
}
