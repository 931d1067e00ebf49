package scanner

import (
	"fmt"
	"path"
	"strings"

	"github.com/vvka-141/babynames/internal/files/filesystem"
	"github.com/vvka-141/babynames/pkg/babynames"
)

// SourceFile is a ranking file found one directory below the source root.
type SourceFile struct {
	// RelativePath is relative to the source root: "2020/girl_boy_names_2020.csv"
	RelativePath string

	// DirName is the name of the containing directory, expected to be a year
	DirName string

	// Err is set when the year directory could not be read. RelativePath is
	// then the directory itself and the entry has no content.
	Err error

	file filesystem.File
}

// ReadContent returns the file's raw bytes.
func (f SourceFile) ReadContent() ([]byte, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	return f.file.ReadContent()
}

// Scanner discovers ranking files laid out as <root>/<year>/girl_boy_names_*.csv.
// Safe for concurrent use as long as the filesystem provider is.
type Scanner struct {
	fsProvider filesystem.FileSystemProvider
}

// NewScanner creates a scanner over the OS filesystem.
func NewScanner() *Scanner {
	return &Scanner{fsProvider: filesystem.NewOSFileSystem()}
}

// NewScannerWithFS creates a scanner with a custom filesystem provider.
// Panics if fsProvider is nil.
func NewScannerWithFS(fsProvider filesystem.FileSystemProvider) *Scanner {
	if fsProvider == nil {
		panic("fsProvider cannot be nil")
	}
	return &Scanner{fsProvider: fsProvider}
}

// Discover returns all regular files exactly one directory below root whose
// name matches babynames.SourceFilePattern, in lexical walk order. Deeper
// directories are not entered. A year directory that cannot be read is
// returned as an entry with Err set; only failing to read root is an error.
// Whether the directory name is a valid year is left to the caller.
func (s *Scanner) Discover(root string) ([]SourceFile, error) {
	dir, err := s.fsProvider.Open(root)
	if err != nil {
		return nil, fmt.Errorf("failed to open source root %s: %w", root, err)
	}

	var files []SourceFile
	err = dir.Walk(func(file filesystem.File, err error) error {
		if err != nil {
			if file == nil || file.RelativePath() == "." {
				return fmt.Errorf("error walking source root: %w", err)
			}
			rel := file.RelativePath()
			if depth := strings.Count(rel, "/"); depth > 1 || (depth == 1 && !isSourceFileName(rel)) {
				return nil
			}
			files = append(files, SourceFile{
				RelativePath: rel,
				DirName:      strings.SplitN(rel, "/", 2)[0],
				Err:          fmt.Errorf("cannot read %s: %w", rel, err),
			})
			return nil
		}

		rel := file.RelativePath()
		depth := strings.Count(rel, "/")

		if file.Info().IsDir() {
			if depth > 0 {
				return filesystem.SkipDir
			}
			return nil
		}
		if depth != 1 {
			return nil
		}

		matched, err := path.Match(babynames.SourceFilePattern, path.Base(rel))
		if err != nil {
			return err
		}
		if !matched {
			return nil
		}

		files = append(files, SourceFile{
			RelativePath: rel,
			DirName:      path.Dir(rel),
			file:         file,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	return files, nil
}

func isSourceFileName(rel string) bool {
	matched, _ := path.Match(babynames.SourceFilePattern, path.Base(rel))
	return matched
}
