// Package postgres loads an extracted dataset into PostgreSQL over a single connection.
package postgres

import (
	"context"
	"fmt"
	"io"

	"github.com/jackc/pgx/v5"

	"github.com/vvka-141/babynames/pkg/babynames"
)

const (
	insertNameSQL = `INSERT INTO names (name, gender) VALUES ($1, $2) ON CONFLICT (name) DO NOTHING`

	// No conflict target: works with both the default (year, rank) key and
	// older schemas keyed on year alone.
	insertRankingSQL = `INSERT INTO names_per_year (year, rank, boy, girl) VALUES ($1, $2, $3, $4) ON CONFLICT DO NOTHING`
)

// txStarter is the part of *pgx.Conn the loader needs.
type txStarter interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// Loader implements babynames.Sink for PostgreSQL.
type Loader struct {
	connector babynames.Connector
	schemaSQL string
	logger    babynames.Logger
}

// NewLoader creates a Loader. schemaSQL is executed verbatim before inserting.
// Panics if connector or logger is nil.
func NewLoader(connector babynames.Connector, schemaSQL string, logger babynames.Logger) *Loader {
	if connector == nil {
		panic("connector cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &Loader{connector: connector, schemaSQL: schemaSQL, logger: logger}
}

// Write connects, ensures the schema, then inserts names and rankings,
// each step in its own transaction. The connection is closed on return.
func (l *Loader) Write(ctx context.Context, ds *babynames.Dataset) (babynames.WriteSummary, error) {
	summary := babynames.WriteSummary{Destination: "PostgreSQL"}

	conn, err := l.connector.Connect(ctx)
	if err != nil {
		return summary, err
	}
	defer func() {
		if err := conn.Close(context.WithoutCancel(ctx)); err != nil {
			l.logger.Verbose("Closing connection: %v", err)
		}
		if closer, ok := l.connector.(io.Closer); ok {
			closer.Close() //nolint:errcheck
		}
	}()

	summary.Destination = fmt.Sprintf("PostgreSQL database %s", conn.Config().Database)
	return l.load(ctx, conn, ds, summary)
}

func (l *Loader) load(ctx context.Context, conn txStarter, ds *babynames.Dataset, summary babynames.WriteSummary) (babynames.WriteSummary, error) {
	if err := l.applySchema(ctx, conn); err != nil {
		return summary, err
	}
	l.logger.Verbose("Schema ready")

	written, err := l.insertNames(ctx, conn, ds.Names)
	if err != nil {
		return summary, err
	}
	summary.NamesWritten = written
	summary.NamesSkipped = len(ds.Names) - written
	l.logger.Info("Inserted %d names (%d already present)", summary.NamesWritten, summary.NamesSkipped)

	written, err = l.insertRankings(ctx, conn, ds.Rankings)
	if err != nil {
		return summary, err
	}
	summary.RankingsWritten = written
	summary.RankingsSkipped = len(ds.Rankings) - written
	l.logger.Info("Inserted %d yearly records (%d already present)", summary.RankingsWritten, summary.RankingsSkipped)

	return summary, nil
}

func (l *Loader) applySchema(ctx context.Context, conn txStarter) error {
	err := inTx(ctx, conn, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, l.schemaSQL)
		return err
	})
	if err != nil {
		return fmt.Errorf("%w: %w", babynames.ErrSchemaFailed, err)
	}
	return nil
}

func (l *Loader) insertNames(ctx context.Context, conn txStarter, names []babynames.Name) (int, error) {
	if len(names) == 0 {
		return 0, nil
	}

	batch := &pgx.Batch{}
	for _, n := range names {
		batch.Queue(insertNameSQL, n.Value, string(n.Gender))
	}

	var written int
	err := inTx(ctx, conn, func(tx pgx.Tx) error {
		var err error
		written, err = execBatch(ctx, tx, batch, func(i int) string {
			return fmt.Sprintf("name %q", names[i].Value)
		})
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("%w: names: %w", babynames.ErrLoadFailed, err)
	}
	return written, nil
}

func (l *Loader) insertRankings(ctx context.Context, conn txStarter, rankings []babynames.YearlyRanking) (int, error) {
	if len(rankings) == 0 {
		return 0, nil
	}

	batch := &pgx.Batch{}
	for _, r := range rankings {
		batch.Queue(insertRankingSQL, r.Year, r.Rank, nullable(r.Boy), nullable(r.Girl))
	}

	var written int
	err := inTx(ctx, conn, func(tx pgx.Tx) error {
		var err error
		written, err = execBatch(ctx, tx, batch, func(i int) string {
			return fmt.Sprintf("ranking %d/%d", rankings[i].Year, rankings[i].Rank)
		})
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("%w: yearly records: %w", babynames.ErrLoadFailed, err)
	}
	return written, nil
}

// execBatch sends batch and returns the total rows affected.
// describe names the i-th queued row in error messages.
func execBatch(ctx context.Context, tx pgx.Tx, batch *pgx.Batch, describe func(i int) string) (int, error) {
	results := tx.SendBatch(ctx, batch)

	var affected int64
	for i := 0; i < batch.Len(); i++ {
		tag, err := results.Exec()
		if err != nil {
			results.Close()
			return 0, fmt.Errorf("failed to insert %s: %w", describe(i), err)
		}
		affected += tag.RowsAffected()
	}

	if err := results.Close(); err != nil {
		return 0, fmt.Errorf("failed to complete batch insert: %w", err)
	}
	return int(affected), nil
}

// inTx runs fn in a transaction, committing on success and rolling back otherwise.
func inTx(ctx context.Context, conn txStarter, fn func(pgx.Tx) error) error {
	tx, err := conn.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(context.WithoutCancel(ctx)) //nolint:errcheck

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// nullable maps an absent name to SQL NULL.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

var _ babynames.Sink = (*Loader)(nil)
