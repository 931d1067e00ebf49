// Package schema provides the table-creation script run before a load.
package schema

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/vvka-141/babynames/internal/files/filesystem"
	"github.com/vvka-141/babynames/pkg/babynames"
)

//go:embed default.sql
var defaultScript string

// Default returns the built-in script. It runs unchanged on PostgreSQL and SQLite.
func Default() string {
	return defaultScript
}

// Load returns the script at path, or Default when path is empty.
// The file is returned verbatim; an empty file is rejected.
func Load(fsProvider filesystem.FileSystemProvider, path string) (string, error) {
	if path == "" {
		return Default(), nil
	}

	content, err := fsProvider.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read schema file %s: %w", path, err)
	}
	if strings.TrimSpace(string(content)) == "" {
		return "", fmt.Errorf("schema file %s is empty: %w", path, babynames.ErrInvalidConfig)
	}
	return string(content), nil
}
