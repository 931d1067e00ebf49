// Package scanner discovers year-partitioned ranking files.
//
// The layout is a fixed convention: <root>/<year>/girl_boy_names_*.csv.
// Files at any other depth are ignored. The scanner works through
// filesystem.FileSystemProvider so it can run against in-memory trees in tests.
package scanner
