package cli

import (
	"fmt"
	"os"

	"github.com/vvka-141/babynames/internal/config"
	"github.com/vvka-141/babynames/pkg/babynames"
)

// connectionStringFromEnv returns the first non-empty connection string from
// BABYNAMES_DATABASE_URL or DATABASE_URL environment variables.
func connectionStringFromEnv() string {
	if s := os.Getenv("BABYNAMES_DATABASE_URL"); s != "" {
		return s
	}
	return os.Getenv("DATABASE_URL")
}

// resolveConnectionString applies --connection > BABYNAMES_DATABASE_URL > DATABASE_URL.
func resolveConnectionString(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	return connectionStringFromEnv()
}

type connectionFlagValues struct {
	authMethod, awsRegion, googleInstance string
	azureTenantID, azureClientID          string
}

// resolveConnectionOptions merges auth settings with precedence
// flag > environment > babynames.yaml. The Azure client secret is only read
// from AZURE_CLIENT_SECRET.
func resolveConnectionOptions(flags connectionFlagValues, projectCfg *config.ProjectConfig) (babynames.ConnectionOptions, error) {
	fileCfg := projectCfg.Connection

	method, err := babynames.ParseAuthMethod(firstNonEmpty(flags.authMethod, os.Getenv("BABYNAMES_AUTH_METHOD"), fileCfg.AuthMethod))
	if err != nil {
		return babynames.ConnectionOptions{}, fmt.Errorf("invalid --auth-method: %w", err)
	}

	return babynames.ConnectionOptions{
		AuthMethod:        method,
		AWSRegion:         firstNonEmpty(flags.awsRegion, os.Getenv("AWS_REGION"), fileCfg.AWSRegion),
		AzureTenantID:     firstNonEmpty(flags.azureTenantID, os.Getenv("AZURE_TENANT_ID"), fileCfg.AzureTenantID),
		AzureClientID:     firstNonEmpty(flags.azureClientID, os.Getenv("AZURE_CLIENT_ID"), fileCfg.AzureClientID),
		AzureClientSecret: os.Getenv("AZURE_CLIENT_SECRET"),
		GoogleInstance:    firstNonEmpty(flags.googleInstance, os.Getenv("BABYNAMES_GOOGLE_INSTANCE"), fileCfg.GoogleInstance),
	}, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
