package babynames

import (
	"errors"
	"strings"
)

// Sentinel errors for common failure scenarios.
// These enable callers to distinguish error types using errors.Is().
//
// Example usage:
//
//	_, err := sink.Write(ctx, &result.Dataset)
//	if errors.Is(err, babynames.ErrSchemaFailed) {
//	    // Handle a broken schema script
//	}
var (
	// ErrInvalidConfig indicates the provided configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrMissingConnectionString indicates no database connection string was supplied.
	ErrMissingConnectionString = errors.New("connection string not provided")

	// ErrConnectionFailed indicates database connection failed.
	ErrConnectionFailed = errors.New("connection failed")

	// ErrUnsupportedAuthMethod indicates the requested authentication method is not supported.
	ErrUnsupportedAuthMethod = errors.New("unsupported authentication method")

	// ErrSchemaFailed indicates the schema script could not be read or executed.
	ErrSchemaFailed = errors.New("schema creation failed")

	// ErrLoadFailed indicates inserting extracted rows failed.
	ErrLoadFailed = errors.New("load failed")

	// ErrSourceRoot indicates the source root could not be scanned.
	ErrSourceRoot = errors.New("invalid source root")
)

// usageErrorPrefixes are the message prefixes cobra and pflag use for command line misuse.
var usageErrorPrefixes = []string{
	"unknown flag",
	"unknown shorthand flag",
	"unknown command",
	"accepts ",
	"requires at least",
	"required flag",
	"invalid argument",
	"flag needs an argument",
	"missing required argument",
}

// ExitCodeForError returns the process exit code for an error.
// Every runtime failure maps to ExitGeneralError; only command line misuse
// is reported separately.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	msg := err.Error()
	for _, prefix := range usageErrorPrefixes {
		if strings.HasPrefix(msg, prefix) {
			return ExitUsageError
		}
	}

	return ExitGeneralError
}
