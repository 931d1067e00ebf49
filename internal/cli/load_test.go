package cli

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/babynames/pkg/babynames"
)

func resetLoadFlags() {
	loadFlags = loadFlagValues{timeout: babynames.DefaultTimeout}
}

func countSQLiteRows(t *testing.T, path, table string) int {
	t.Helper()
	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer db.Close()

	var n int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM "+table).Scan(&n))
	return n
}

func TestLoadCmd_MissingConnectionString(t *testing.T) {
	resetLoadFlags()
	clearConnectionEnv(t)

	err := runLoad(loadCmd, []string{t.TempDir()})
	require.Error(t, err)
	assert.ErrorIs(t, err, babynames.ErrMissingConnectionString)
}

func TestLoadCmd_SQLiteWithoutPath(t *testing.T) {
	resetLoadFlags()
	clearConnectionEnv(t)
	loadFlags.connection = "sqlite:"

	err := runLoad(loadCmd, []string{sampleTree(t)})
	require.Error(t, err)
	assert.ErrorIs(t, err, babynames.ErrMissingConnectionString)
	assert.Equal(t, babynames.ExitGeneralError, babynames.ExitCodeForError(err))
}

func TestLoadCmd_InvalidAuthMethod(t *testing.T) {
	resetLoadFlags()
	clearConnectionEnv(t)
	loadFlags.connection = "postgresql://localhost/names"
	loadFlags.conn.authMethod = "kerberos"

	err := runLoad(loadCmd, []string{t.TempDir()})
	require.Error(t, err)
	assert.ErrorIs(t, err, babynames.ErrUnsupportedAuthMethod)
}

func TestLoadCmd_MissingSchemaFile(t *testing.T) {
	resetLoadFlags()
	clearConnectionEnv(t)
	loadFlags.connection = "sqlite:" + filepath.Join(t.TempDir(), "names.db")
	loadFlags.schemaFile = "/nonexistent/schema.sql"

	err := runLoad(loadCmd, []string{sampleTree(t)})
	require.Error(t, err)
	assert.ErrorIs(t, err, babynames.ErrSchemaFailed)
}

func TestLoadCmd_SQLiteIsIdempotent(t *testing.T) {
	resetLoadFlags()
	clearConnectionEnv(t)
	root := sampleTree(t)
	dbPath := filepath.Join(t.TempDir(), "names.db")
	t.Setenv("BABYNAMES_DATABASE_URL", "sqlite:"+dbPath)

	require.NoError(t, runLoad(loadCmd, []string{root}))
	assert.Equal(t, 5, countSQLiteRows(t, dbPath, babynames.NamesTable))
	assert.Equal(t, 4, countSQLiteRows(t, dbPath, babynames.NamesPerYearTable))

	require.NoError(t, runLoad(loadCmd, []string{root}))
	assert.Equal(t, 5, countSQLiteRows(t, dbPath, babynames.NamesTable))
	assert.Equal(t, 4, countSQLiteRows(t, dbPath, babynames.NamesPerYearTable))
}

func TestLoadCmd_SchemaFromConfigFile(t *testing.T) {
	resetLoadFlags()
	clearConnectionEnv(t)
	root := sampleTree(t)
	dbPath := filepath.Join(t.TempDir(), "names.db")
	loadFlags.connection = "sqlite:" + dbPath

	script := `CREATE TABLE IF NOT EXISTS names (name TEXT PRIMARY KEY, gender TEXT NOT NULL);
CREATE TABLE IF NOT EXISTS names_per_year (year INTEGER, rank INTEGER, boy TEXT, girl TEXT, UNIQUE (year, rank));
CREATE TABLE IF NOT EXISTS marker (id INTEGER);`
	require.NoError(t, os.WriteFile(filepath.Join(root, "custom.sql"), []byte(script), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "babynames.yaml"), []byte("schema_file: custom.sql\n"), 0o644))

	require.NoError(t, runLoad(loadCmd, []string{root}))
	assert.Equal(t, 0, countSQLiteRows(t, dbPath, "marker"))
}
