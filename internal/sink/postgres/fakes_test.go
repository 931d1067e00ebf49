package postgres

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// fakeDB is an in-memory stand-in for the two target tables.
// Changes made in a transaction become visible only on commit.
type fakeDB struct {
	names    map[string]bool
	rankings map[[2]int]bool

	beginErr   error
	schemaErr  error
	commitErr  error
	failInsert string // value whose insert fails

	schemaRuns int
	begun      int
	rollbacks  int
	commits    int
	rows       [][]any
}

func newFakeDB() *fakeDB {
	return &fakeDB{names: map[string]bool{}, rankings: map[[2]int]bool{}}
}

func (db *fakeDB) Begin(context.Context) (pgx.Tx, error) {
	if db.beginErr != nil {
		return nil, db.beginErr
	}
	db.begun++
	return &fakeTx{db: db, names: map[string]bool{}, rankings: map[[2]int]bool{}}, nil
}

type fakeTx struct {
	pgx.Tx
	db       *fakeDB
	names    map[string]bool
	rankings map[[2]int]bool
	done     bool
}

func (tx *fakeTx) Exec(context.Context, string, ...any) (pgconn.CommandTag, error) {
	tx.db.schemaRuns++
	if tx.db.schemaErr != nil {
		return pgconn.CommandTag{}, tx.db.schemaErr
	}
	return pgconn.NewCommandTag("CREATE TABLE"), nil
}

func (tx *fakeTx) SendBatch(_ context.Context, b *pgx.Batch) pgx.BatchResults {
	res := &fakeBatchResults{}
	for _, q := range b.QueuedQueries {
		tx.db.rows = append(tx.db.rows, q.Arguments)
		res.results = append(res.results, tx.insert(q))
	}
	return res
}

func (tx *fakeTx) insert(q *pgx.QueuedQuery) batchResult {
	for _, arg := range q.Arguments {
		if s, ok := arg.(string); ok && s != "" && s == tx.db.failInsert {
			return batchResult{err: errors.New("boom")}
		}
	}

	switch {
	case strings.HasPrefix(q.SQL, "INSERT INTO names "):
		name := q.Arguments[0].(string)
		if tx.db.names[name] || tx.names[name] {
			return batchResult{tag: pgconn.NewCommandTag("INSERT 0 0")}
		}
		tx.names[name] = true
	case strings.HasPrefix(q.SQL, "INSERT INTO names_per_year "):
		key := [2]int{q.Arguments[0].(int), q.Arguments[1].(int)}
		if tx.db.rankings[key] || tx.rankings[key] {
			return batchResult{tag: pgconn.NewCommandTag("INSERT 0 0")}
		}
		tx.rankings[key] = true
	default:
		return batchResult{err: errors.New("unexpected statement: " + q.SQL)}
	}
	return batchResult{tag: pgconn.NewCommandTag("INSERT 0 1")}
}

func (tx *fakeTx) Commit(context.Context) error {
	if tx.done {
		return pgx.ErrTxClosed
	}
	tx.done = true
	if tx.db.commitErr != nil {
		tx.db.rollbacks++
		return tx.db.commitErr
	}
	for n := range tx.names {
		tx.db.names[n] = true
	}
	for k := range tx.rankings {
		tx.db.rankings[k] = true
	}
	tx.db.commits++
	return nil
}

func (tx *fakeTx) Rollback(context.Context) error {
	if tx.done {
		return pgx.ErrTxClosed
	}
	tx.done = true
	tx.db.rollbacks++
	return nil
}

type batchResult struct {
	tag pgconn.CommandTag
	err error
}

type fakeBatchResults struct {
	pgx.BatchResults
	results []batchResult
	next    int
	closed  bool
}

func (r *fakeBatchResults) Exec() (pgconn.CommandTag, error) {
	res := r.results[r.next]
	r.next++
	return res.tag, res.err
}

func (r *fakeBatchResults) Close() error {
	r.closed = true
	return nil
}
