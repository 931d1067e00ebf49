package babynames

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ExportConfig contains all parameters for writing CSV files for bulk import.
type ExportConfig struct {
	// SourcePath is the root directory holding one subdirectory per year
	SourcePath string

	// OutputDir receives names.csv and names_per_year.csv
	OutputDir string

	// Verbose enables detailed logging
	Verbose bool
}

// Validate checks that the ExportConfig has all required fields.
func (c *ExportConfig) Validate() error {
	var errs []error

	if c.SourcePath == "" {
		errs = append(errs, fmt.Errorf("SourcePath is required: %w", ErrInvalidConfig))
	}
	if c.OutputDir == "" {
		errs = append(errs, fmt.Errorf("OutputDir is required: %w", ErrInvalidConfig))
	}

	return errors.Join(errs...)
}

// LoadConfig contains all parameters for loading a source tree into a database.
type LoadConfig struct {
	// SourcePath is the root directory holding one subdirectory per year
	SourcePath string

	// ConnectionString is a PostgreSQL URI / keyword string, or sqlite:<path>
	ConnectionString string

	// SchemaFile is the schema script executed before inserting.
	// Empty selects the built-in schema.
	SchemaFile string

	// Timeout bounds the whole load
	Timeout time.Duration

	// Verbose enables detailed logging
	Verbose bool

	// Connection carries cloud authentication options
	Connection ConnectionOptions
}

// Validate checks if the LoadConfig has all required fields and valid values.
// It returns a multi-error if multiple validation failures occur.
func (c *LoadConfig) Validate() error {
	var errs []error

	if c.SourcePath == "" {
		errs = append(errs, fmt.Errorf("SourcePath is required: %w", ErrInvalidConfig))
	}

	if strings.TrimSpace(c.ConnectionString) == "" {
		errs = append(errs, fmt.Errorf(`set BABYNAMES_DATABASE_URL or DATABASE_URL, or pass --connection: %w`, ErrMissingConnectionString))
	} else if c.IsSQLite() && c.SQLitePath() == "" {
		errs = append(errs, fmt.Errorf("%s needs a database file path, e.g. sqlite:./names.db: %w", SQLitePrefix, ErrMissingConnectionString))
	}

	if c.Timeout < 0 {
		errs = append(errs, fmt.Errorf("timeout cannot be negative: %w", ErrInvalidConfig))
	}

	if !c.Connection.AuthMethod.IsValid() {
		errs = append(errs, fmt.Errorf("auth method %v: %w", c.Connection.AuthMethod, ErrUnsupportedAuthMethod))
	}

	return errors.Join(errs...)
}

// IsSQLite reports whether the connection string selects the SQLite backend.
func (c *LoadConfig) IsSQLite() bool {
	return strings.HasPrefix(c.ConnectionString, SQLitePrefix)
}

// SQLitePath returns the database file path of a sqlite: connection string.
func (c *LoadConfig) SQLitePath() string {
	return strings.TrimSpace(strings.TrimPrefix(c.ConnectionString, SQLitePrefix))
}

// SQLitePrefix marks a connection string as a path to a SQLite database file.
const SQLitePrefix = "sqlite:"

// ConnectionOptions selects how the single database connection authenticates.
type ConnectionOptions struct {
	AuthMethod AuthMethod

	// AWS RDS IAM
	AWSRegion string

	// Azure Entra ID. If all three are set, Service Principal authentication is used,
	// otherwise the DefaultAzureCredential chain.
	AzureTenantID     string
	AzureClientID     string
	AzureClientSecret string

	// Google Cloud SQL instance connection name (project:region:instance)
	GoogleInstance string
}

// AuthMethod represents the type of authentication to use.
type AuthMethod int

const (
	AuthMethodStandard     AuthMethod = iota // Credentials in the connection string
	AuthMethodAWSIAM                         // AWS IAM Database Authentication
	AuthMethodGoogleIAM                      // Google Cloud SQL IAM
	AuthMethodAzureEntraID                   // Azure Active Directory (Entra ID)
)

// String returns a human-readable string representation of the AuthMethod.
func (a AuthMethod) String() string {
	switch a {
	case AuthMethodStandard:
		return "Standard"
	case AuthMethodAWSIAM:
		return "AWS IAM"
	case AuthMethodGoogleIAM:
		return "Google IAM"
	case AuthMethodAzureEntraID:
		return "Azure Entra ID"
	default:
		return fmt.Sprintf("Unknown(%d)", a)
	}
}

// IsValid returns true if the AuthMethod is a valid, defined value.
func (a AuthMethod) IsValid() bool {
	return a >= AuthMethodStandard && a <= AuthMethodAzureEntraID
}

// ParseAuthMethod converts the flag/config spelling of an auth method.
// An empty string selects AuthMethodStandard.
func ParseAuthMethod(s string) (AuthMethod, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "standard":
		return AuthMethodStandard, nil
	case "aws-iam", "aws":
		return AuthMethodAWSIAM, nil
	case "google-iam", "google":
		return AuthMethodGoogleIAM, nil
	case "azure-entra-id", "azure":
		return AuthMethodAzureEntraID, nil
	default:
		return AuthMethodStandard, fmt.Errorf("%q: %w", s, ErrUnsupportedAuthMethod)
	}
}
