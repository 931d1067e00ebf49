package db

import (
	"context"
	"fmt"
	"net"

	"cloud.google.com/go/cloudsqlconn"
	"github.com/jackc/pgx/v5"
)

// GoogleCloudSQLConnector connects to Google Cloud SQL with IAM database
// authentication through the Cloud SQL Go Connector. Only the user and
// database of the connection string are used; the dialer supplies the
// address and TLS.
//
// Implements io.Closer: call Close after the connection is closed to release
// the dialer.
type GoogleCloudSQLConnector struct {
	config   *pgx.ConnConfig
	instance string
	dialer   *cloudsqlconn.Dialer
}

// NewGoogleCloudSQLConnector creates a connector for instance (project:region:instance).
func NewGoogleCloudSQLConnector(config *pgx.ConnConfig, instance string) *GoogleCloudSQLConnector {
	return &GoogleCloudSQLConnector{
		config:   config,
		instance: instance,
	}
}

func (c *GoogleCloudSQLConnector) Connect(ctx context.Context) (*pgx.Conn, error) {
	dialer, err := cloudsqlconn.NewDialer(ctx, cloudsqlconn.WithIAMAuthN())
	if err != nil {
		return nil, fmt.Errorf("failed to create Cloud SQL dialer: %w", err)
	}

	cfg := c.config.Copy()
	cfg.Host = c.instance
	cfg.TLSConfig = nil
	cfg.Fallbacks = nil
	cfg.DialFunc = func(ctx context.Context, _, _ string) (net.Conn, error) {
		return dialer.Dial(ctx, c.instance)
	}

	conn, err := pgx.ConnectConfig(ctx, cfg)
	if err != nil {
		dialer.Close()
		return nil, wrapConnectionError(err, c.instance, cfg.Port, cfg.Database)
	}

	c.dialer = dialer
	return conn, nil
}

// Close releases the Cloud SQL dialer.
func (c *GoogleCloudSQLConnector) Close() error {
	if c.dialer != nil {
		err := c.dialer.Close()
		c.dialer = nil
		return err
	}
	return nil
}
