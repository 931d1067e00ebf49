package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/babynames/internal/files/filesystem"
	"github.com/vvka-141/babynames/pkg/babynames"
)

func TestDefault(t *testing.T) {
	script := Default()
	assert.Contains(t, script, "CREATE TABLE IF NOT EXISTS names (")
	assert.Contains(t, script, "CREATE TABLE IF NOT EXISTS names_per_year (")
	assert.Contains(t, script, "UNIQUE (year, rank)")
}

func TestLoad_EmptyPathUsesDefault(t *testing.T) {
	script, err := Load(filesystem.NewMemoryFileSystem("/work"), "")
	require.NoError(t, err)
	assert.Equal(t, Default(), script)
}

func TestLoad_FromFile(t *testing.T) {
	fs := filesystem.NewMemoryFileSystem("/work")
	fs.AddFile("schema.sql", "CREATE TABLE names (name TEXT UNIQUE, gender TEXT);")

	script, err := Load(fs, "schema.sql")
	require.NoError(t, err)
	assert.Equal(t, "CREATE TABLE names (name TEXT UNIQUE, gender TEXT);", script)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filesystem.NewMemoryFileSystem("/work"), "missing.sql")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing.sql")
}

func TestLoad_EmptyFile(t *testing.T) {
	fs := filesystem.NewMemoryFileSystem("/work")
	fs.AddFile("blank.sql", "  \n")

	_, err := Load(fs, "blank.sql")
	assert.ErrorIs(t, err, babynames.ErrInvalidConfig)
}
