package domain

import "strings"

// Outcome describes what a single load did with a key.
type Outcome string

const (
	// OutcomeBuilt indicates the build function ran and its artifact was committed.
	OutcomeBuilt Outcome = "built"
	// OutcomeCached indicates the stored artifact was returned without building.
	OutcomeCached Outcome = "cached"
	// OutcomeFailed indicates the build function returned an error and state was rolled back.
	OutcomeFailed Outcome = "failed"
)

// OutcomeOf maps the result of a load to its Outcome.
func OutcomeOf(fromCache bool, err error) Outcome {
	switch {
	case err != nil:
		return OutcomeFailed
	case fromCache:
		return OutcomeCached
	default:
		return OutcomeBuilt
	}
}

// LogLevel represents the severity of a log message, mirroring the standard slog levels.
type LogLevel int

const (
	// LogLevelDebug represents debug-level verbosity.
	LogLevelDebug LogLevel = -4
	// LogLevelInfo represents informational verbosity.
	LogLevelInfo LogLevel = 0
	// LogLevelWarn represents warning verbosity.
	LogLevelWarn LogLevel = 4
	// LogLevelError represents error verbosity.
	LogLevelError LogLevel = 8
)

// String returns the string representation of the LogLevel.
func (l LogLevel) String() string {
	switch l {
	case LogLevelDebug:
		return "DEBUG"
	case LogLevelWarn:
		return "WARN"
	case LogLevelError:
		return "ERROR"
	default:
		return "INFO"
	}
}

// ParseLogLevel converts a configuration value to a LogLevel, defaulting to info.
func ParseLogLevel(s string) LogLevel {
	switch strings.ToLower(s) {
	case "debug":
		return LogLevelDebug
	case "warn", "warning":
		return LogLevelWarn
	case "error":
		return LogLevelError
	default:
		return LogLevelInfo
	}
}
