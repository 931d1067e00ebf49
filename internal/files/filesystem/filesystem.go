package filesystem

import (
	"io/fs"
)

// FileInfo is an alias for fs.FileInfo from the standard library.
type FileInfo = fs.FileInfo

// SkipDir returned from a Walk callback on a directory prunes that directory.
var SkipDir = fs.SkipDir

// File is an entry met while walking a Directory. Content is read on demand
// so a walk over a large tree holds no file bodies.
type File interface {
	Path() string

	// RelativePath is relative to the walked directory, using forward slashes.
	// The walked directory itself is ".".
	RelativePath() string

	Info() FileInfo
	ReadContent() ([]byte, error)
}

// Directory is an opened directory that can be walked.
type Directory interface {
	Path() string

	// Walk visits the directory and everything below it in lexical order.
	// Returning SkipDir for a directory skips its contents; any other error
	// stops the walk and is returned. When an entry below the directory cannot
	// be read, fn receives that entry together with the error; the File is nil
	// only when the directory itself fails.
	Walk(fn func(File, error) error) error
}

// FileSystemProvider gives the extractor read access to source trees and the
// CSV sink write access to its output directory.
type FileSystemProvider interface {
	Open(path string) (Directory, error)
	ReadFile(path string) ([]byte, error)
	Stat(path string) (FileInfo, error)
	MkdirAll(path string) error

	// WriteFile replaces the file at path with data. Readers never observe a
	// partially written file.
	WriteFile(path string, data []byte) error
}
