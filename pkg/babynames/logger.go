package babynames

// Logger receives progress and diagnostics from extraction and the sinks.
// Messages are printf-style; implementations append the newline and must be
// safe for concurrent use.
type Logger interface {
	// Verbose reports per-file and per-step detail, shown only with --verbose.
	Verbose(format string, args ...interface{})

	// Info reports counts, output locations and import hints.
	Info(format string, args ...interface{})

	// Error reports a skipped file or a failed step.
	Error(format string, args ...interface{})
}
