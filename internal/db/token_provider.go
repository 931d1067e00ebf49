package db

import (
	"context"
)

// TokenProvider issues the short-lived password for one connection attempt.
// String must not reveal secrets.
type TokenProvider interface {
	Token(ctx context.Context) (string, error)
	String() string
}

// TokenFunc adapts a function to TokenProvider.
type TokenFunc struct {
	Name string
	Fn   func(ctx context.Context) (string, error)
}

func (f TokenFunc) Token(ctx context.Context) (string, error) { return f.Fn(ctx) }
func (f TokenFunc) String() string                            { return f.Name }

// AzurePostgreSQLScope is the OAuth scope for Azure Database for PostgreSQL.
const AzurePostgreSQLScope = "https://ossrdbms-aad.database.windows.net/.default"
