package logging

import "github.com/vvka-141/babynames/pkg/babynames"

// NullLogger discards all log messages. Used by tests and library callers
// that report through return values only.
type NullLogger struct{}

// NewNullLogger creates a new NullLogger.
func NewNullLogger() *NullLogger {
	return &NullLogger{}
}

func (l *NullLogger) Verbose(format string, args ...interface{}) {}
func (l *NullLogger) Info(format string, args ...interface{})    {}
func (l *NullLogger) Error(format string, args ...interface{})   {}

var (
	_ babynames.Logger = (*NullLogger)(nil)
	_ babynames.Logger = (*ConsoleLogger)(nil)
)
