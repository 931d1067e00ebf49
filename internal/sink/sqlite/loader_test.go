package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/babynames/internal/logging"
	"github.com/vvka-141/babynames/internal/schema"
	"github.com/vvka-141/babynames/pkg/babynames"
)

const testSchema = "CREATE TABLE IF NOT EXISTS names (name TEXT PRIMARY KEY)"

func testDataset() *babynames.Dataset {
	return &babynames.Dataset{
		Names: []babynames.Name{
			{Value: "Emma", Gender: babynames.GenderFemale},
			{Value: "Liam", Gender: babynames.GenderMale},
		},
		Rankings: []babynames.YearlyRanking{
			{Year: 2020, Rank: 1, Boy: "Liam", Girl: "Emma"},
			{Year: 2020, Rank: 2, Girl: "Olivia"},
		},
	}
}

func newMockLoader(t *testing.T) (*Loader, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	return NewLoaderWithDB(db, testSchema, logging.NewNullLogger()), mock
}

func expectSchema(mock sqlmock.Sqlmock) {
	mock.ExpectBegin()
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS names").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()
}

func TestNewLoader_StripsPrefix(t *testing.T) {
	l := NewLoader("sqlite:./out/names.db", testSchema, logging.NewNullLogger())
	assert.Equal(t, "./out/names.db", l.path)
}

func TestWrite_EmptyPathFailsWithoutOpening(t *testing.T) {
	l := NewLoader("sqlite:", testSchema, logging.NewNullLogger())

	summary, err := l.Write(context.Background(), testDataset())
	require.Error(t, err)
	assert.ErrorIs(t, err, babynames.ErrMissingConnectionString)
	assert.Zero(t, summary.NamesWritten)
}

func TestNewLoader_NilLogger(t *testing.T) {
	assert.Panics(t, func() { NewLoader("names.db", testSchema, nil) })
}

func TestWrite_Mock(t *testing.T) {
	l, mock := newMockLoader(t)

	expectSchema(mock)

	mock.ExpectBegin()
	names := mock.ExpectPrepare(`INSERT INTO names \(`)
	names.ExpectExec().WithArgs("Emma", "female").WillReturnResult(sqlmock.NewResult(1, 1))
	names.ExpectExec().WithArgs("Liam", "male").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	mock.ExpectBegin()
	rankings := mock.ExpectPrepare(`INSERT INTO names_per_year \(`)
	rankings.ExpectExec().WithArgs(int64(2020), int64(1), "Liam", "Emma").WillReturnResult(sqlmock.NewResult(1, 1))
	rankings.ExpectExec().WithArgs(int64(2020), int64(2), nil, "Olivia").WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectCommit()

	mock.ExpectClose()

	summary, err := l.Write(context.Background(), testDataset())
	require.NoError(t, err)

	assert.Equal(t, 1, summary.NamesWritten)
	assert.Equal(t, 1, summary.NamesSkipped)
	assert.Equal(t, 2, summary.RankingsWritten)
	assert.Zero(t, summary.RankingsSkipped)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWrite_SchemaFailureRollsBack(t *testing.T) {
	l, mock := newMockLoader(t)

	mock.ExpectBegin()
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS names").WillReturnError(errors.New("near \"TABLE\": syntax error"))
	mock.ExpectRollback()
	mock.ExpectClose()

	_, err := l.Write(context.Background(), testDataset())
	require.Error(t, err)
	assert.ErrorIs(t, err, babynames.ErrSchemaFailed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWrite_NameInsertFailureRollsBack(t *testing.T) {
	l, mock := newMockLoader(t)

	expectSchema(mock)
	mock.ExpectBegin()
	names := mock.ExpectPrepare(`INSERT INTO names \(`)
	names.ExpectExec().WithArgs("Emma", "female").WillReturnResult(sqlmock.NewResult(1, 1))
	names.ExpectExec().WithArgs("Liam", "male").WillReturnError(errors.New("CHECK constraint failed"))
	mock.ExpectRollback()
	mock.ExpectClose()

	summary, err := l.Write(context.Background(), testDataset())
	require.Error(t, err)
	assert.ErrorIs(t, err, babynames.ErrLoadFailed)
	assert.Contains(t, err.Error(), "CHECK constraint failed")
	assert.Zero(t, summary.NamesWritten)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWrite_CommitFailure(t *testing.T) {
	l, mock := newMockLoader(t)

	expectSchema(mock)
	mock.ExpectBegin()
	names := mock.ExpectPrepare(`INSERT INTO names \(`)
	names.ExpectExec().WillReturnResult(sqlmock.NewResult(1, 1))
	names.ExpectExec().WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectCommit().WillReturnError(errors.New("database is locked"))
	mock.ExpectClose()

	_, err := l.Write(context.Background(), testDataset())
	require.Error(t, err)
	assert.ErrorIs(t, err, babynames.ErrLoadFailed)
	assert.Contains(t, err.Error(), "failed to commit transaction")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWrite_EmptyDatasetOnlyRunsSchema(t *testing.T) {
	l, mock := newMockLoader(t)

	expectSchema(mock)
	mock.ExpectClose()

	summary, err := l.Write(context.Background(), &babynames.Dataset{})
	require.NoError(t, err)
	assert.Zero(t, summary.NamesWritten)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func openFile(t *testing.T, path string) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func countRows(t *testing.T, path, table string) int {
	t.Helper()
	var n int
	require.NoError(t, openFile(t, path).QueryRow("SELECT count(*) FROM "+table).Scan(&n))
	return n
}

func TestWrite_FileIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "names.db")
	ctx := context.Background()

	summary, err := NewLoader("sqlite:"+path, schema.Default(), logging.NewNullLogger()).Write(ctx, testDataset())
	require.NoError(t, err)
	assert.Equal(t, 2, summary.NamesWritten)
	assert.Equal(t, 2, summary.RankingsWritten)

	summary, err = NewLoader(path, schema.Default(), logging.NewNullLogger()).Write(ctx, testDataset())
	require.NoError(t, err)
	assert.Zero(t, summary.NamesWritten)
	assert.Equal(t, 2, summary.NamesSkipped)
	assert.Zero(t, summary.RankingsWritten)
	assert.Equal(t, 2, summary.RankingsSkipped)

	assert.Equal(t, 2, countRows(t, path, "names"))
	assert.Equal(t, 2, countRows(t, path, "names_per_year"))
}

func TestWrite_FileSameNameBothGenders(t *testing.T) {
	path := filepath.Join(t.TempDir(), "names.db")
	ds := &babynames.Dataset{Names: []babynames.Name{
		{Value: "Avery", Gender: babynames.GenderFemale},
		{Value: "Avery", Gender: babynames.GenderMale},
	}}

	summary, err := NewLoader(path, schema.Default(), logging.NewNullLogger()).Write(context.Background(), ds)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.NamesWritten)
	assert.Equal(t, 1, summary.NamesSkipped)

	var gender string
	require.NoError(t, openFile(t, path).QueryRow("SELECT gender FROM names WHERE name = 'Avery'").Scan(&gender))
	assert.Equal(t, "female", gender)
}

func TestWrite_FileAbsentNamesAreNull(t *testing.T) {
	path := filepath.Join(t.TempDir(), "names.db")

	_, err := NewLoader(path, schema.Default(), logging.NewNullLogger()).Write(context.Background(), testDataset())
	require.NoError(t, err)

	var boy sql.NullString
	require.NoError(t, openFile(t, path).QueryRow("SELECT boy FROM names_per_year WHERE year = 2020 AND rank = 2").Scan(&boy))
	assert.False(t, boy.Valid)
}

func TestWrite_FileMissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "names.db")

	_, err := NewLoader(path, schema.Default(), logging.NewNullLogger()).Write(context.Background(), testDataset())
	assert.ErrorIs(t, err, babynames.ErrConnectionFailed)
}
