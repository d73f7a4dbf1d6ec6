package domain

import "time"

// Config is the resolved workspace configuration.
type Config struct {
	// Root is the absolute directory that relative paths are resolved against.
	Root string
	// Policy selects the cache policy for the workspace.
	Policy Policy
	// Oracle selects how change stamps are produced.
	Oracle OracleKind
	// Entries are the absolute paths of the documents built by default.
	Entries []string
	// Watch configures watch mode.
	Watch WatchConfig
	// Log configures logging output.
	Log LogConfig
}

// WatchConfig configures the file watcher.
type WatchConfig struct {
	// Roots are the absolute directories watched recursively.
	Roots []string
	// Debounce is the window used to coalesce bursts of events.
	Debounce time.Duration
	// Ignore holds doublestar patterns matched against paths relative to Root.
	Ignore []string
}

// LogConfig configures logging output.
type LogConfig struct {
	JSON  bool
	Level LogLevel
}

// DefaultConfig returns the configuration used when no file is found.
func DefaultConfig(root string) *Config {
	return &Config{
		Root:   root,
		Policy: DefaultPolicy,
		Oracle: OracleMtime,
		Watch: WatchConfig{
			Roots:    []string{root},
			Debounce: DefaultDebounce,
			Ignore:   DefaultIgnore(),
		},
		Log: LogConfig{Level: LogLevelInfo},
	}
}

// Keys converts the configured entries into keys.
func (c *Config) Keys() []Key {
	return NewKeys(c.Entries...)
}
