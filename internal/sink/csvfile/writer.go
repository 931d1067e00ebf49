// Package csvfile writes an extracted dataset as two CSV files suitable for
// psql's \copy command.
package csvfile

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/vvka-141/babynames/internal/files/filesystem"
	"github.com/vvka-141/babynames/pkg/babynames"
)

var (
	namesHeader        = []string{"name", "gender"}
	namesPerYearHeader = []string{"year", "rank", "boy", "girl"}
)

// Writer implements babynames.Sink by writing names.csv and names_per_year.csv.
type Writer struct {
	fsProvider filesystem.FileSystemProvider
	outputDir  string
	logger     babynames.Logger
}

// New creates a Writer targeting outputDir on the OS filesystem.
// An empty outputDir means the current directory. Panics if logger is nil.
func New(outputDir string, logger babynames.Logger) *Writer {
	return NewWithFS(filesystem.NewOSFileSystem(), outputDir, logger)
}

// NewWithFS creates a Writer over a custom filesystem provider.
// Panics if fsProvider or logger is nil.
func NewWithFS(fsProvider filesystem.FileSystemProvider, outputDir string, logger babynames.Logger) *Writer {
	if fsProvider == nil {
		panic("fsProvider cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	if outputDir == "" {
		outputDir = "."
	}
	return &Writer{fsProvider: fsProvider, outputDir: outputDir, logger: logger}
}

// Write creates the output directory if needed and writes both files,
// replacing any previous contents. Every row is written, so nothing is skipped.
func (w *Writer) Write(ctx context.Context, ds *babynames.Dataset) (babynames.WriteSummary, error) {
	summary := babynames.WriteSummary{Destination: w.outputDir}

	if err := w.fsProvider.MkdirAll(w.outputDir); err != nil {
		return summary, fmt.Errorf("failed to create output directory %s: %w", w.outputDir, err)
	}

	namesPath := filepath.Join(w.outputDir, babynames.NamesFileName)
	if err := w.writeCSV(namesPath, namesHeader, namesRecords(ds.Names)); err != nil {
		return summary, err
	}
	summary.NamesWritten = len(ds.Names)
	w.logger.Info("Created %s with %d unique names", namesPath, len(ds.Names))

	if err := ctx.Err(); err != nil {
		return summary, err
	}

	rankingsPath := filepath.Join(w.outputDir, babynames.NamesPerYearFileName)
	if err := w.writeCSV(rankingsPath, namesPerYearHeader, rankingRecords(ds.Rankings)); err != nil {
		return summary, err
	}
	summary.RankingsWritten = len(ds.Rankings)
	w.logger.Info("Created %s with %d yearly records", rankingsPath, len(ds.Rankings))

	w.logger.Info("")
	w.logger.Info("To import into PostgreSQL, use:")
	w.logger.Info("%s", CopyCommand(babynames.NamesTable, namesPath))
	w.logger.Info("%s", CopyCommand(babynames.NamesPerYearTable, rankingsPath))

	return summary, nil
}

// CopyCommand returns the psql meta-command that imports file into table.
func CopyCommand(table, file string) string {
	return fmt.Sprintf(`\copy %s FROM '%s' WITH CSV HEADER;`, table, filepath.ToSlash(file))
}

func (w *Writer) writeCSV(path string, header []string, records [][]string) error {
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)

	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	if err := cw.WriteAll(records); err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}

	if err := w.fsProvider.WriteFile(path, buf.Bytes()); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func namesRecords(names []babynames.Name) [][]string {
	records := make([][]string, 0, len(names))
	for _, n := range names {
		records = append(records, []string{n.Value, string(n.Gender)})
	}
	return records
}

func rankingRecords(rankings []babynames.YearlyRanking) [][]string {
	records := make([][]string, 0, len(rankings))
	for _, r := range rankings {
		records = append(records, []string{
			strconv.Itoa(r.Year),
			strconv.Itoa(r.Rank),
			r.Boy,
			r.Girl,
		})
	}
	return records
}

var _ babynames.Sink = (*Writer)(nil)
