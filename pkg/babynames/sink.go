package babynames

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// Extractor scans a source tree and returns the deduplicated, sorted dataset
// together with a report per discovered file.
type Extractor interface {
	Extract(root string) (*ExtractResult, error)
}

// Sink is an output strategy for an extracted dataset.
// A Sink is used exactly once per run.
type Sink interface {
	Write(ctx context.Context, ds *Dataset) (WriteSummary, error)
}

// Connector is a unified interface for establishing the database connection.
// Different implementations handle various authentication methods
// (connection string credentials, cloud IAM tokens, Cloud SQL dialer).
type Connector interface {
	// Connect establishes a single connection to the database.
	// The returned connection must be closed by the caller.
	Connect(ctx context.Context) (*pgx.Conn, error)
}
