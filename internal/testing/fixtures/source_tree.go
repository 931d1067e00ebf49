// Package fixtures builds in-memory source trees for tests.
package fixtures

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vvka-141/babynames/internal/files/filesystem"
)

// Header is the header line of a well-formed ranking file.
const Header = "Rank,Girl Name,Boy Name"

// RankingRow is one data line of a ranking file.
type RankingRow struct {
	Rank int
	Girl string
	Boy  string
}

// Row is shorthand for a RankingRow.
func Row(rank int, girl, boy string) RankingRow {
	return RankingRow{Rank: rank, Girl: girl, Boy: boy}
}

// SourceTreeBuilder provides a fluent API for building a <root>/<year>/girl_boy_names_*.csv
// tree on a MemoryFileSystem.
//
// Example usage:
//
//	fs := NewSourceTree("/data").
//	    AddYear(2020, Row(1, "Emma", "Liam")).
//	    AddRaw("2021/girl_boy_names_2021.csv", "Rank,Girl Name\n1,Ava\n").
//	    Build()
type SourceTreeBuilder struct {
	fs *filesystem.MemoryFileSystem
}

// NewSourceTree starts an empty tree rooted at root.
func NewSourceTree(root string) *SourceTreeBuilder {
	return &SourceTreeBuilder{fs: filesystem.NewMemoryFileSystem(root)}
}

// AddYear writes <year>/girl_boy_names_<year>.csv with a standard header.
func (b *SourceTreeBuilder) AddYear(year int, rows ...RankingRow) *SourceTreeBuilder {
	return b.AddRaw(fmt.Sprintf("%d/girl_boy_names_%d.csv", year, year), RankingCSV(rows...))
}

// AddRaw writes content verbatim at a root-relative path.
func (b *SourceTreeBuilder) AddRaw(relPath, content string) *SourceTreeBuilder {
	b.fs.AddFile(relPath, content)
	return b
}

// Build returns the populated filesystem.
func (b *SourceTreeBuilder) Build() *filesystem.MemoryFileSystem {
	return b.fs
}

// RankingCSV renders rows under the standard header.
func RankingCSV(rows ...RankingRow) string {
	var sb strings.Builder
	sb.WriteString(Header)
	sb.WriteString("\n")
	for _, r := range rows {
		fmt.Fprintf(&sb, "%d,%s,%s\n", r.Rank, r.Girl, r.Boy)
	}
	return sb.String()
}

// ErrUnreadable is the error reported for directories made unreadable by WithUnreadableDir.
var ErrUnreadable = errors.New("permission denied")

// WithUnreadableDir wraps fs so that walking reports relDir as unreadable:
// the directory is visited, then reported again with ErrUnreadable, and its
// contents are never visited.
func WithUnreadableDir(fs *filesystem.MemoryFileSystem, relDir string) filesystem.FileSystemProvider {
	return unreadableFS{MemoryFileSystem: fs, relDir: relDir}
}

type unreadableFS struct {
	*filesystem.MemoryFileSystem
	relDir string
}

func (u unreadableFS) Open(p string) (filesystem.Directory, error) {
	dir, err := u.MemoryFileSystem.Open(p)
	if err != nil {
		return nil, err
	}
	return unreadableDir{Directory: dir, relDir: u.relDir}, nil
}

type unreadableDir struct {
	filesystem.Directory
	relDir string
}

func (d unreadableDir) Walk(fn func(filesystem.File, error) error) error {
	return d.Directory.Walk(func(f filesystem.File, err error) error {
		if err != nil || f.RelativePath() != d.relDir {
			return fn(f, err)
		}
		if err := fn(f, nil); err != nil {
			return err
		}
		if err := fn(f, ErrUnreadable); err != nil {
			return err
		}
		return filesystem.SkipDir
	})
}
