// Package files groups the file access used to read a source tree and write
// CSV output.
//
// Sub-packages:
//   - filesystem: Filesystem abstraction with OS and in-memory implementations
//   - scanner: Discovery of <root>/<year>/girl_boy_names_*.csv files
//
// # Usage
//
//	import (
//	    "github.com/vvka-141/babynames/internal/files/filesystem"
//	    "github.com/vvka-141/babynames/internal/files/scanner"
//	)
//
//	s := scanner.NewScannerWithFS(filesystem.NewOSFileSystem())
//	files, err := s.Discover("./data")
package files
