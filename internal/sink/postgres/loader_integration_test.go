package postgres

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/babynames/internal/db"
	"github.com/vvka-141/babynames/internal/logging"
	"github.com/vvka-141/babynames/internal/schema"
	testhelpers "github.com/vvka-141/babynames/internal/testing"
	"github.com/vvka-141/babynames/pkg/babynames"
)

func newIntegrationLoader(t *testing.T) (*Loader, string) {
	t.Helper()

	connString := testhelpers.CreateTestDB(t, testhelpers.RequireDatabase(t))
	connector, err := db.NewConnector(connString, babynames.ConnectionOptions{})
	require.NoError(t, err)

	return NewLoader(connector, schema.Default(), logging.NewNullLogger()), connString
}

func TestLoaderIntegration_Idempotent(t *testing.T) {
	loader, connString := newIntegrationLoader(t)
	ctx := context.Background()

	summary, err := loader.Write(ctx, testDataset())
	require.NoError(t, err)
	assert.Equal(t, 3, summary.NamesWritten)
	assert.Equal(t, 2, summary.RankingsWritten)
	assert.Contains(t, summary.Destination, "babynames_test_")

	summary, err = loader.Write(ctx, testDataset())
	require.NoError(t, err)
	assert.Zero(t, summary.NamesWritten)
	assert.Equal(t, 3, summary.NamesSkipped)
	assert.Equal(t, 2, summary.RankingsSkipped)

	assert.Equal(t, 3, testhelpers.CountRows(t, connString, babynames.NamesTable))
	assert.Equal(t, 2, testhelpers.CountRows(t, connString, babynames.NamesPerYearTable))
}

func TestLoaderIntegration_AbsentNamesStoredAsNull(t *testing.T) {
	loader, connString := newIntegrationLoader(t)
	ctx := context.Background()

	_, err := loader.Write(ctx, testDataset())
	require.NoError(t, err)

	connector, err := db.NewConnector(connString, babynames.ConnectionOptions{})
	require.NoError(t, err)
	conn, err := connector.Connect(ctx)
	require.NoError(t, err)
	defer conn.Close(ctx)

	var boy *string
	err = conn.QueryRow(ctx, "SELECT boy FROM names_per_year WHERE year = 2020 AND rank = 2").Scan(&boy)
	require.NoError(t, err)
	assert.Nil(t, boy)
}

func TestLoaderIntegration_BadSchemaRollsBack(t *testing.T) {
	connString := testhelpers.CreateTestDB(t, testhelpers.RequireDatabase(t))
	connector, err := db.NewConnector(connString, babynames.ConnectionOptions{})
	require.NoError(t, err)

	script := "CREATE TABLE names (name TEXT PRIMARY KEY, gender TEXT); CREATE TABLE broken ("
	loader := NewLoader(connector, script, logging.NewNullLogger())

	_, err = loader.Write(context.Background(), testDataset())
	require.Error(t, err)
	assert.ErrorIs(t, err, babynames.ErrSchemaFailed)

	conn, err := connector.Connect(context.Background())
	require.NoError(t, err)
	defer conn.Close(context.Background())

	var exists bool
	err = conn.QueryRow(context.Background(), "SELECT to_regclass('names') IS NOT NULL").Scan(&exists)
	require.NoError(t, err)
	assert.False(t, exists, "partial schema must be rolled back")
}
