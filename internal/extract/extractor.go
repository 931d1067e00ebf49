// Package extract turns a tree of yearly ranking CSV files into a Dataset.
package extract

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/vvka-141/babynames/internal/files/filesystem"
	"github.com/vvka-141/babynames/internal/files/scanner"
	"github.com/vvka-141/babynames/pkg/babynames"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ErrNotYearDirectory marks a file whose parent directory name is not an integer year.
var ErrNotYearDirectory = errors.New("not a year")

// Extractor implements babynames.Extractor. Each Extract call keeps its own state.
type Extractor struct {
	scanner *scanner.Scanner
	logger  babynames.Logger
}

// New creates an Extractor reading from the OS filesystem.
// Panics if logger is nil.
func New(logger babynames.Logger) *Extractor {
	return NewWithFS(filesystem.NewOSFileSystem(), logger)
}

// NewWithFS creates an Extractor over a custom filesystem provider.
// Panics if fsProvider or logger is nil.
func NewWithFS(fsProvider filesystem.FileSystemProvider, logger babynames.Logger) *Extractor {
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &Extractor{
		scanner: scanner.NewScannerWithFS(fsProvider),
		logger:  logger,
	}
}

// Extract scans root and parses every ranking file found.
//
// A file that cannot be parsed is logged, recorded with its error in the
// result, and contributes nothing to the dataset. Only failures to scan the
// root itself are returned as errors.
func (e *Extractor) Extract(root string) (*babynames.ExtractResult, error) {
	files, err := e.scanner.Discover(root)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", babynames.ErrSourceRoot, err)
	}

	if len(files) == 0 {
		e.logger.Info("No %s files found under %s", babynames.SourceFilePattern, root)
	}

	result := &babynames.ExtractResult{}
	names := make(map[babynames.Name]struct{})

	for _, f := range files {
		report := babynames.FileReport{Path: f.RelativePath}

		rows, year, err := parseSourceFile(f)
		report.Year = year
		if err != nil {
			report.Err = err
			result.Files = append(result.Files, report)
			e.logger.Error("Error processing %s: %v", f.RelativePath, err)
			continue
		}

		for _, r := range rows {
			if r.Girl != "" {
				names[babynames.Name{Value: r.Girl, Gender: babynames.GenderFemale}] = struct{}{}
			}
			if r.Boy != "" {
				names[babynames.Name{Value: r.Boy, Gender: babynames.GenderMale}] = struct{}{}
			}
		}
		result.Dataset.Rankings = append(result.Dataset.Rankings, rows...)

		report.Rows = len(rows)
		result.Files = append(result.Files, report)
		e.logger.Verbose("Parsed %s: %d rows for %d", f.RelativePath, len(rows), year)
	}

	result.Dataset.Names = make([]babynames.Name, 0, len(names))
	for n := range names {
		result.Dataset.Names = append(result.Dataset.Names, n)
	}
	result.Dataset.Sort()

	return result, nil
}

// parseSourceFile returns all rows of one file, or the first error encountered.
// The year is returned even when parsing fails later so it can be reported.
func parseSourceFile(f scanner.SourceFile) ([]babynames.YearlyRanking, int, error) {
	year, err := strconv.Atoi(f.DirName)
	if f.Err != nil {
		if err != nil {
			year = 0
		}
		return nil, year, f.Err
	}
	if err != nil {
		return nil, 0, fmt.Errorf("directory name %q is %w", f.DirName, ErrNotYearDirectory)
	}

	content, err := f.ReadContent()
	if err != nil {
		return nil, year, fmt.Errorf("failed to read file: %w", err)
	}
	if !utf8.Valid(content) {
		return nil, year, errors.New("file is not valid UTF-8")
	}

	rows, err := ParseRankings(bytes.NewReader(content), year)
	if err != nil {
		return nil, year, err
	}
	return rows, year, nil
}

// columns holds header positions; -1 marks a missing name column.
type columns struct {
	rank, girl, boy int
}

func (c columns) width() int {
	return max(c.rank, c.girl, c.boy) + 1
}

// ParseRankings reads CSV content with a header row and returns one ranking per data row.
// The Rank column is required; a missing Girl Name or Boy Name column leaves those
// values absent. Parsing stops at the first malformed row.
func ParseRankings(r io.Reader, year int) ([]babynames.YearlyRanking, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	// A stray quote inside an unquoted name is kept as text.
	reader.LazyQuotes = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	cols, err := locateColumns(header)
	if err != nil {
		return nil, err
	}

	var rows []babynames.YearlyRanking
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		line, _ := reader.FieldPos(0)
		if len(record) < cols.width() {
			return nil, fmt.Errorf("line %d: expected at least %d fields, got %d", line, cols.width(), len(record))
		}

		rank, err := strconv.Atoi(strings.TrimSpace(record[cols.rank]))
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid %s %q", line, babynames.ColumnRank, record[cols.rank])
		}

		rows = append(rows, babynames.YearlyRanking{
			Year: year,
			Rank: rank,
			Boy:  field(record, cols.boy),
			Girl: field(record, cols.girl),
		})
	}

	return rows, nil
}

func locateColumns(header []string) (columns, error) {
	cols := columns{rank: -1, girl: -1, boy: -1}
	for i, h := range header {
		if i == 0 {
			h = string(bytes.TrimPrefix([]byte(h), utf8BOM))
		}
		switch h {
		case babynames.ColumnRank:
			cols.rank = i
		case babynames.ColumnGirlName:
			cols.girl = i
		case babynames.ColumnBoyName:
			cols.boy = i
		}
	}
	if cols.rank < 0 {
		return cols, fmt.Errorf("header has no %q column", babynames.ColumnRank)
	}
	return cols, nil
}

// field returns the trimmed value at i, or "" when the column is missing or blank.
func field(record []string, i int) string {
	if i < 0 {
		return ""
	}
	return strings.TrimSpace(record[i])
}

var _ babynames.Extractor = (*Extractor)(nil)
