// Package db opens the single PostgreSQL connection used by a load.
package db

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/vvka-141/babynames/pkg/babynames"
)

// ParseConfig parses a PostgreSQL URI or keyword/value string and tags the
// session with application_name "babynames-<run id>", unless the string sets one.
func ParseConfig(connString string) (*pgx.ConnConfig, error) {
	if strings.TrimSpace(connString) == "" {
		return nil, babynames.ErrMissingConnectionString
	}

	cfg, err := pgx.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("failed to parse connection string: %w: %w", babynames.ErrInvalidConfig, err)
	}

	if _, ok := cfg.RuntimeParams["application_name"]; !ok {
		cfg.RuntimeParams["application_name"] = fmt.Sprintf("%s-%s", babynames.ApplicationName, uuid.NewString())
	}
	return cfg, nil
}

// StandardConnector connects with the credentials contained in the connection string.
type StandardConnector struct {
	config *pgx.ConnConfig
}

// NewStandardConnector creates a StandardConnector from a parsed config.
func NewStandardConnector(config *pgx.ConnConfig) *StandardConnector {
	return &StandardConnector{config: config}
}

// Connect opens one connection. Failures are returned without retrying.
func (c *StandardConnector) Connect(ctx context.Context) (*pgx.Conn, error) {
	conn, err := pgx.ConnectConfig(ctx, c.config.Copy())
	if err != nil {
		return nil, wrapConnectionError(err, c.config.Host, c.config.Port, c.config.Database)
	}
	return conn, nil
}

// NewConnector is a factory function that creates the appropriate Connector
// for opts.AuthMethod. A blank connection string fails with
// babynames.ErrMissingConnectionString before anything else is attempted.
func NewConnector(connString string, opts babynames.ConnectionOptions) (babynames.Connector, error) {
	config, err := ParseConfig(connString)
	if err != nil {
		return nil, err
	}

	switch opts.AuthMethod {
	case babynames.AuthMethodStandard:
		return NewStandardConnector(config), nil
	case babynames.AuthMethodAWSIAM:
		return newAWSConnector(config, opts)
	case babynames.AuthMethodGoogleIAM:
		return newGoogleConnector(config, opts)
	case babynames.AuthMethodAzureEntraID:
		return newAzureConnector(config, opts)
	default:
		return nil, fmt.Errorf("unsupported auth method %v: %w", opts.AuthMethod, babynames.ErrUnsupportedAuthMethod)
	}
}

// wrapConnectionError wraps raw pgx connection errors with actionable guidance.
// The result matches both babynames.ErrConnectionFailed and err.
func wrapConnectionError(err error, host string, port uint16, database string) error {
	errStr := strings.ToLower(err.Error())
	addr := fmt.Sprintf("%s:%d", host, port)

	switch {
	case strings.Contains(errStr, "connection refused") || strings.Contains(errStr, "actively refused"):
		return fmt.Errorf(`%w: connection refused to %s

Possible causes:
  - PostgreSQL is not running (check: pg_isready -h %s -p %d)
  - Wrong host or port
  - Firewall blocking the connection

Original error: %w`, babynames.ErrConnectionFailed, addr, host, port, err)

	case strings.Contains(errStr, "no such host") || strings.Contains(errStr, "no host"):
		return fmt.Errorf(`%w: cannot resolve host "%s"

Possible causes:
  - Hostname is misspelled
  - DNS is not configured or reachable

Original error: %w`, babynames.ErrConnectionFailed, host, err)

	case strings.Contains(errStr, "password authentication failed"):
		return fmt.Errorf(`%w: password authentication failed for database "%s"

Possible causes:
  - Wrong password in BABYNAMES_DATABASE_URL / DATABASE_URL (or $PGPASSWORD, ~/.pgpass)
  - Wrong username
  - Expired cloud IAM token

Original error: %w`, babynames.ErrConnectionFailed, database, err)

	case strings.Contains(errStr, "does not exist"):
		return fmt.Errorf(`%w: database "%s" does not exist

To create it:
  createdb %s

Original error: %w`, babynames.ErrConnectionFailed, database, database, err)

	case strings.Contains(errStr, "timeout") || strings.Contains(errStr, "timed out"):
		return fmt.Errorf(`%w: connection timed out to %s

Possible causes:
  - Server is overloaded or unresponsive
  - Firewall silently dropping packets
  - Wrong host/port (server not listening)

Original error: %w`, babynames.ErrConnectionFailed, addr, err)

	case strings.Contains(errStr, "ssl") || strings.Contains(errStr, "tls"):
		return fmt.Errorf(`%w: SSL/TLS connection error

Possible causes:
  - Server requires SSL but sslmode in the connection string disables it
  - Certificate verification failed (try sslmode=require)

Original error: %w`, babynames.ErrConnectionFailed, err)

	default:
		return fmt.Errorf("%w: failed to connect to database: %w", babynames.ErrConnectionFailed, err)
	}
}

// newAWSConnector creates a token-based connector with the AWS IAM token provider.
func newAWSConnector(config *pgx.ConnConfig, opts babynames.ConnectionOptions) (babynames.Connector, error) {
	tokenProvider, err := NewRDSTokenProvider(config, opts.AWSRegion)
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS IAM token provider: %w: %w", babynames.ErrInvalidConfig, err)
	}

	return NewTokenBasedConnector(config, tokenProvider, "AWS IAM"), nil
}

// newGoogleConnector creates a GoogleCloudSQLConnector for Google Cloud SQL IAM authentication.
func newGoogleConnector(config *pgx.ConnConfig, opts babynames.ConnectionOptions) (babynames.Connector, error) {
	if opts.GoogleInstance == "" {
		return nil, fmt.Errorf("Google Cloud SQL IAM auth requires --google-instance (project:region:instance): %w", babynames.ErrInvalidConfig)
	}
	if config.User == "" {
		return nil, fmt.Errorf("Google Cloud SQL IAM auth requires a user in the connection string: %w", babynames.ErrInvalidConfig)
	}

	return NewGoogleCloudSQLConnector(config, opts.GoogleInstance), nil
}

// newAzureConnector creates a token-based connector with the Azure Entra ID token provider.
// If explicit credentials (tenant, client, secret) are provided, uses Service Principal auth.
// Otherwise, falls back to DefaultAzureCredential chain.
func newAzureConnector(config *pgx.ConnConfig, opts babynames.ConnectionOptions) (babynames.Connector, error) {
	var tokenProvider TokenProvider
	var err error

	if opts.AzureTenantID != "" && opts.AzureClientID != "" && opts.AzureClientSecret != "" {
		tokenProvider, err = NewAzureServicePrincipalProvider(opts.AzureTenantID, opts.AzureClientID, opts.AzureClientSecret)
		if err != nil {
			return nil, fmt.Errorf("failed to create Azure Service Principal provider: %w", err)
		}
	} else {
		tokenProvider, err = NewAzureDefaultCredentialProvider()
		if err != nil {
			return nil, fmt.Errorf("failed to create Azure Default Credential provider: %w", err)
		}
	}

	return NewTokenBasedConnector(config, tokenProvider, "Azure"), nil
}
