package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// TokenBasedConnector implements the Connector interface for cloud providers
// that authenticate via short-lived tokens (AWS IAM, Azure Entra ID).
// The token is acquired from a TokenProvider and used as the PostgreSQL password.
type TokenBasedConnector struct {
	config        *pgx.ConnConfig
	tokenProvider TokenProvider
	providerName  string
}

// NewTokenBasedConnector creates a connector that uses a TokenProvider for authentication.
// providerName is used in error messages (e.g., "AWS IAM", "Azure").
func NewTokenBasedConnector(config *pgx.ConnConfig, tokenProvider TokenProvider, providerName string) *TokenBasedConnector {
	return &TokenBasedConnector{
		config:        config,
		tokenProvider: tokenProvider,
		providerName:  providerName,
	}
}

// Connect acquires a fresh token and opens one connection with it.
// The token only has to be valid at connect time.
func (c *TokenBasedConnector) Connect(ctx context.Context) (*pgx.Conn, error) {
	token, err := c.tokenProvider.Token(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire %s token: %w", c.providerName, err)
	}

	cfg := c.config.Copy()
	cfg.Password = token

	conn, err := pgx.ConnectConfig(ctx, cfg)
	if err != nil {
		return nil, wrapConnectionError(err, c.config.Host, c.config.Port, c.config.Database)
	}
	return conn, nil
}

func (c *TokenBasedConnector) String() string {
	return fmt.Sprintf("%s via %s", c.providerName, c.tokenProvider)
}
