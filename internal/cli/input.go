package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// stdinName is the display path used for documents read from stdin.
const stdinName = "<stdin>"

// readDocument reads LMM source from the single path argument, or from
// stdin when no argument (or "-") is given. Returns the content and a
// display path for diagnostics.
func readDocument(cmd *cobra.Command, args []string, readFile func(string) ([]byte, error)) (string, string, error) {
	if len(args) == 1 && args[0] != "-" {
		content, err := readFile(args[0])
		if err != nil {
			return "", "", fmt.Errorf("read %s: %w", args[0], err)
		}
		return string(content), args[0], nil
	}

	content, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", "", fmt.Errorf("read stdin: %w", err)
	}
	return string(content), stdinName, nil
}
