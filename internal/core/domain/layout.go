package domain

import "time"

const (
	// ConfigFileName is the name of the workspace configuration file.
	ConfigFileName = "recache.yaml"

	// IncludeDirective starts a line that splices another document into the current one.
	IncludeDirective = "@include"

	// DefaultDebounce is the default window for coalescing file events in watch mode.
	DefaultDebounce = 50 * time.Millisecond

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)

// DefaultIgnore lists the patterns, relative to the workspace root, that are never walked or watched.
func DefaultIgnore() []string {
	return []string{"**/.git", "**/.jj", "**/node_modules"}
}
