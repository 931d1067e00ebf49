package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/vvka-141/babynames/internal/extract"
	"github.com/vvka-141/babynames/internal/logging"
	"github.com/vvka-141/babynames/internal/services"
	"github.com/vvka-141/babynames/pkg/babynames"
)

var scanCmd = &cobra.Command{
	Use:   "scan <root>",
	Short: "Parse the source tree and summarise it without writing anything",
	Long: `Scan runs the same extraction as export and load, then prints one line per
year (files, ranking rows, files skipped) and the reason each skipped file
was rejected. Nothing is written.

Example:
  babynames scan ./data`,
	Args:              RequireSourcePath,
	ValidArgsFunction: completeSourceRoot,
	RunE:              runScan,
}

func init() {
	rootCmd.AddCommand(scanCmd)
}

func runScan(cmd *cobra.Command, args []string) error {
	verbose := getVerboseFlag(cmd)
	logger := logging.NewConsoleLogger(os.Stdout, verbose)

	result, err := services.NewPipeline(extract.New(logger), logger).Scan(args[0])
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	renderScanSummary(cmd.OutOrStdout(), result)
	return nil
}

type yearSummary struct {
	year     int
	unknown  bool
	files    int
	rankings int
	failed   int
}

type yearKey struct {
	year    int
	unknown bool
}

// summariseByYear groups file reports by year. Files whose directory is not
// a year form one group, sorted last.
func summariseByYear(result *babynames.ExtractResult) []yearSummary {
	byYear := make(map[yearKey]*yearSummary)
	for _, f := range result.Files {
		key := yearKey{year: f.Year, unknown: errors.Is(f.Err, extract.ErrNotYearDirectory)}
		s, ok := byYear[key]
		if !ok {
			s = &yearSummary{year: key.year, unknown: key.unknown}
			byYear[key] = s
		}
		s.files++
		s.rankings += f.Rows
		if f.Err != nil {
			s.failed++
		}
	}

	out := make([]yearSummary, 0, len(byYear))
	for _, s := range byYear {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].unknown != out[j].unknown {
			return !out[i].unknown
		}
		return out[i].year < out[j].year
	})
	return out
}

func renderScanSummary(w io.Writer, result *babynames.ExtractResult) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Year", "Files", "Rankings", "Skipped"})

	var files, rankings, failed int
	for _, s := range summariseByYear(result) {
		year := any(s.year)
		if s.unknown {
			year = "?"
		}
		t.AppendRow(table.Row{year, s.files, s.rankings, s.failed})
		files += s.files
		rankings += s.rankings
		failed += s.failed
	}
	t.AppendFooter(table.Row{"Total", files, rankings, failed})
	t.Render()

	fmt.Fprintf(w, "%d unique names\n", len(result.Dataset.Names))

	if failedFiles := result.Failed(); len(failedFiles) > 0 {
		ft := table.NewWriter()
		ft.SetOutputMirror(w)
		ft.SetStyle(table.StyleLight)
		ft.AppendHeader(table.Row{"Skipped file", "Reason"})
		for _, f := range failedFiles {
			ft.AppendRow(table.Row{f.Path, f.Err.Error()})
		}
		ft.Render()
	}
}
