package db

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/rds/auth"
	"github.com/jackc/pgx/v5"
)

// RDSTokenProvider signs RDS IAM authentication tokens with credentials from
// the default AWS chain (environment, shared config, instance role).
type RDSTokenProvider struct {
	endpoint string
	region   string
	user     string
}

// NewRDSTokenProvider takes host, port and user from the parsed connection string.
func NewRDSTokenProvider(connConfig *pgx.ConnConfig, region string) (*RDSTokenProvider, error) {
	var errs []error
	if connConfig.Host == "" {
		errs = append(errs, errors.New("AWS IAM auth requires a host in the connection string"))
	}
	if region == "" {
		errs = append(errs, errors.New("AWS IAM auth requires a region (use --aws-region or $AWS_REGION)"))
	}
	if connConfig.User == "" {
		errs = append(errs, errors.New("AWS IAM auth requires a user in the connection string"))
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}

	return &RDSTokenProvider{
		endpoint: net.JoinHostPort(connConfig.Host, strconv.Itoa(int(connConfig.Port))),
		region:   region,
		user:     connConfig.User,
	}, nil
}

// Token signs a new token. RDS accepts it for 15 minutes, which only has to
// cover the connection handshake.
func (p *RDSTokenProvider) Token(ctx context.Context) (string, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(p.region))
	if err != nil {
		return "", fmt.Errorf("failed to load AWS config: %w", err)
	}

	token, err := auth.BuildAuthToken(ctx, p.endpoint, p.region, p.user, cfg.Credentials)
	if err != nil {
		return "", fmt.Errorf("failed to build RDS auth token: %w", err)
	}
	return token, nil
}

func (p *RDSTokenProvider) String() string {
	return fmt.Sprintf("RDS IAM (%s@%s, %s)", p.user, p.endpoint, p.region)
}
