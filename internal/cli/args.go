package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// RequireSourcePath validates that exactly one source root argument is provided.
// Returns a helpful error message with usage and examples if missing or too many.
func RequireSourcePath(cmd *cobra.Command, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf(`missing required argument: <root>

Usage: %s

Example:
  %s ./data`, cmd.UseLine(), cmd.CommandPath())
	}
	if len(args) > 1 {
		return fmt.Errorf("accepts 1 arg(s), received %d", len(args))
	}
	return nil
}
