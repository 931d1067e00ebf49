// Package testinfra starts throwaway database servers for integration tests.
package testinfra

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// ImageEnvVar overrides the PostgreSQL image, e.g. to test against an older major version.
const ImageEnvVar = "BABYNAMES_TEST_PG_IMAGE"

const (
	defaultImage = "postgres:17-alpine"
	user         = "postgres"
	password     = "postgres"
)

// PostgresOptions describes the server to start. Zero values select defaults.
type PostgresOptions struct {
	Image    string
	Database string
}

func (o PostgresOptions) withDefaults() PostgresOptions {
	if o.Image == "" {
		o.Image = os.Getenv(ImageEnvVar)
	}
	if o.Image == "" {
		o.Image = defaultImage
	}
	if o.Database == "" {
		o.Database = "babynames"
	}
	return o
}

type PostgresContainer struct {
	*postgres.PostgresContainer
	ConnString string
}

// StartPostgres runs a PostgreSQL container and returns once it accepts TCP
// connections. The caller terminates the container.
func StartPostgres(ctx context.Context, opts PostgresOptions) (*PostgresContainer, error) {
	opts = opts.withDefaults()

	ctr, err := postgres.Run(ctx,
		opts.Image,
		postgres.WithUsername(user),
		postgres.WithPassword(password),
		postgres.WithDatabase(opts.Database),
		testcontainers.WithLabels(map[string]string{"app": "babynames-tests"}),
		testcontainers.WithWaitStrategy(
			wait.ForAll(
				// The server logs readiness twice: once for the init phase, once for real.
				wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
				wait.ForListeningPort("5432/tcp"),
			).WithDeadline(90*time.Second),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("start %s: %w", opts.Image, err)
	}

	connStr, err := ctr.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		_ = testcontainers.TerminateContainer(ctr)
		return nil, fmt.Errorf("get connection string: %w", err)
	}

	return &PostgresContainer{PostgresContainer: ctr, ConnString: connStr}, nil
}
