package domain

import "go.trai.ch/zerr"

var (
	// ErrMalformedKey is returned when a zero or empty key is used to load or link.
	ErrMalformedKey = zerr.New("malformed key")

	// ErrCircularDependency is returned when a key is loaded again while its own build is still running.
	ErrCircularDependency = zerr.New("circular dependency")

	// ErrKeyNotLoaded is returned when reloading a key that has never been built.
	ErrKeyNotLoaded = zerr.New("key has not been loaded")

	// ErrInvalidPolicy is returned when the configured cache policy is unknown.
	ErrInvalidPolicy = zerr.New("invalid cache policy")

	// ErrInvalidOracle is returned when the configured change oracle is unknown.
	ErrInvalidOracle = zerr.New("invalid change oracle")

	// ErrConfigReadFailed is returned when the configuration file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the configuration file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrInvalidDebounce is returned when the watch debounce window cannot be parsed.
	ErrInvalidDebounce = zerr.New("invalid debounce window")

	// ErrInvalidGlob is returned when an entry or ignore pattern is not a valid glob.
	ErrInvalidGlob = zerr.New("invalid glob pattern")

	// ErrNoEntries is returned when a command needs entries but none were given or configured.
	ErrNoEntries = zerr.New("no entries to build")

	// ErrDocumentReadFailed is returned when a document cannot be read from disk.
	ErrDocumentReadFailed = zerr.New("failed to read document")

	// ErrWatcherStartFailed is returned when the file watcher cannot be started.
	ErrWatcherStartFailed = zerr.New("failed to start file watcher")

	// ErrBuildFailed is returned when one or more entries fail to build.
	// The individual failures have already been logged.
	ErrBuildFailed = zerr.New("build failed")
)
