package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "babynames",
	Short: "Load yearly baby-name rankings into PostgreSQL, SQLite or CSV",
	Long: `babynames reads yearly ranking files laid out as

  <root>/<year>/girl_boy_names_*.csv     (columns: Rank, Girl Name, Boy Name)

builds the set of distinct names with their gender and the per-year rankings,
and either writes them as CSV files for psql's \copy or loads them into a
database. Loads are idempotent: rows that already exist are skipped.

Files that cannot be parsed are reported and skipped; the rest still load.

Exit Codes:
  0  - Success
  1  - Runtime error (unreadable root, connection, schema or insert failure)
  2  - CLI usage error (invalid arguments or flags)
  3  - Panic or unexpected system error`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		printVersionInfo()
		return nil
	}
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output for all commands")
	rootCmd.SetErr(os.Stdout)
}

// getVerboseFlag safely retrieves the verbose flag value
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Failed to get verbose flag: %v\n", err)
		return false
	}
	return verbose
}
