// Package sqlite loads an extracted dataset into a local SQLite database file.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver (pure Go)

	"github.com/vvka-141/babynames/pkg/babynames"
)

const (
	insertNameSQL    = `INSERT INTO names (name, gender) VALUES (?, ?) ON CONFLICT (name) DO NOTHING`
	insertRankingSQL = `INSERT INTO names_per_year (year, rank, boy, girl) VALUES (?, ?, ?, ?) ON CONFLICT DO NOTHING`
)

// Loader implements babynames.Sink for SQLite.
type Loader struct {
	path      string
	schemaSQL string
	logger    babynames.Logger
	open      func() (*sql.DB, error)
}

// NewLoader creates a Loader for the database file at path. A "sqlite:" prefix
// is stripped. The file is created on first use. Panics if logger is nil.
func NewLoader(path, schemaSQL string, logger babynames.Logger) *Loader {
	path = strings.TrimPrefix(path, babynames.SQLitePrefix)
	return newLoader(path, schemaSQL, logger, func() (*sql.DB, error) {
		return sql.Open("sqlite", path)
	})
}

// NewLoaderWithDB creates a Loader over an already opened database.
// The loader closes db when Write returns.
func NewLoaderWithDB(db *sql.DB, schemaSQL string, logger babynames.Logger) *Loader {
	return newLoader("(provided)", schemaSQL, logger, func() (*sql.DB, error) {
		return db, nil
	})
}

func newLoader(path, schemaSQL string, logger babynames.Logger, open func() (*sql.DB, error)) *Loader {
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &Loader{path: path, schemaSQL: schemaSQL, logger: logger, open: open}
}

// Write ensures the schema, then inserts names and rankings, each step in its
// own transaction. The database is closed on return.
func (l *Loader) Write(ctx context.Context, ds *babynames.Dataset) (babynames.WriteSummary, error) {
	summary := babynames.WriteSummary{Destination: fmt.Sprintf("SQLite database %s", l.path)}

	if strings.TrimSpace(l.path) == "" {
		return summary, fmt.Errorf("sqlite database path is empty: %w", babynames.ErrMissingConnectionString)
	}

	db, err := l.open()
	if err != nil {
		return summary, fmt.Errorf("%w: %w", babynames.ErrConnectionFailed, err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			l.logger.Verbose("Closing database: %v", err)
		}
	}()

	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		return summary, fmt.Errorf("%w: %s: %w", babynames.ErrConnectionFailed, l.path, err)
	}

	if err := inTx(ctx, db, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, l.schemaSQL)
		return err
	}); err != nil {
		return summary, fmt.Errorf("%w: %w", babynames.ErrSchemaFailed, err)
	}
	l.logger.Verbose("Schema ready")

	written, err := insertAll(ctx, db, insertNameSQL, len(ds.Names), func(i int) []any {
		n := ds.Names[i]
		return []any{n.Value, string(n.Gender)}
	})
	if err != nil {
		return summary, fmt.Errorf("%w: names: %w", babynames.ErrLoadFailed, err)
	}
	summary.NamesWritten = written
	summary.NamesSkipped = len(ds.Names) - written
	l.logger.Info("Inserted %d names (%d already present)", summary.NamesWritten, summary.NamesSkipped)

	written, err = insertAll(ctx, db, insertRankingSQL, len(ds.Rankings), func(i int) []any {
		r := ds.Rankings[i]
		return []any{r.Year, r.Rank, nullable(r.Boy), nullable(r.Girl)}
	})
	if err != nil {
		return summary, fmt.Errorf("%w: yearly records: %w", babynames.ErrLoadFailed, err)
	}
	summary.RankingsWritten = written
	summary.RankingsSkipped = len(ds.Rankings) - written
	l.logger.Info("Inserted %d yearly records (%d already present)", summary.RankingsWritten, summary.RankingsSkipped)

	return summary, nil
}

// insertAll executes query once per row inside a single transaction and
// returns the total rows affected. args returns the parameters for row i.
func insertAll(ctx context.Context, db *sql.DB, query string, n int, args func(i int) []any) (int, error) {
	if n == 0 {
		return 0, nil
	}

	var affected int64
	err := inTx(ctx, db, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, query)
		if err != nil {
			return fmt.Errorf("failed to prepare insert: %w", err)
		}
		defer stmt.Close()

		for i := 0; i < n; i++ {
			row := args(i)
			res, err := stmt.ExecContext(ctx, row...)
			if err != nil {
				return fmt.Errorf("failed to insert %v: %w", row, err)
			}
			count, err := res.RowsAffected()
			if err != nil {
				return err
			}
			affected += count
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return int(affected), nil
}

// inTx runs fn in a transaction, committing on success and rolling back otherwise.
func inTx(ctx context.Context, db *sql.DB, fn func(*sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

var _ babynames.Sink = (*Loader)(nil)
