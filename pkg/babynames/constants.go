package babynames

import "time"

// Exit codes. Runtime failures of any kind exit with ExitGeneralError.
const (
	ExitSuccess      = 0 // Extraction and output completed
	ExitGeneralError = 1 // Any runtime failure
	ExitUsageError   = 2 // CLI usage error (missing args, invalid flags)
	ExitPanic        = 3 // Internal panic (unexpected crash)
)

const (
	// SourceFilePattern matches ranking files inside a year directory.
	SourceFilePattern = "girl_boy_names_*.csv"

	// Column headers expected in every source file.
	ColumnRank     = "Rank"
	ColumnGirlName = "Girl Name"
	ColumnBoyName  = "Boy Name"

	// Output file names written by the CSV sink.
	NamesFileName        = "names.csv"
	NamesPerYearFileName = "names_per_year.csv"

	// Target table names.
	NamesTable        = "names"
	NamesPerYearTable = "names_per_year"

	// ApplicationName is reported to PostgreSQL as application_name.
	ApplicationName = "babynames"

	// DefaultTimeout bounds a whole load run against network stalls or lock waits.
	DefaultTimeout = 10 * time.Minute
)
