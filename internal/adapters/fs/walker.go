// Package fs provides file system adapters for walking files and reading change stamps.
package fs

import (
	"io/fs"
	"iter"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// alwaysSkip are directory names never descended into.
var alwaysSkip = map[string]bool{
	".git": true,
	".jj":  true,
}

// Walker provides file walking functionality.
type Walker struct{}

// NewWalker creates a new Walker.
func NewWalker() *Walker {
	return &Walker{}
}

// WalkFiles yields every regular file under root in lexical order.
// ignores are doublestar patterns matched against the slash separated path relative to root;
// a matching directory is skipped entirely.
func (w *Walker) WalkFiles(root string, ignores []string) iter.Seq[string] {
	return func(yield func(string) bool) {
		_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}

			if w.ignored(root, path, d, ignores) {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}

			if d.IsDir() || !d.Type().IsRegular() {
				return nil
			}

			if !yield(path) {
				return filepath.SkipAll
			}
			return nil
		})
	}
}

func (w *Walker) ignored(root, path string, d fs.DirEntry, ignores []string) bool {
	if d.IsDir() && alwaysSkip[d.Name()] {
		return true
	}
	rel, err := filepath.Rel(root, path)
	if err != nil || rel == "." {
		return false
	}
	return Match(ignores, rel)
}

// Match reports whether the relative path rel matches any of patterns.
// Invalid patterns never match.
func Match(patterns []string, rel string) bool {
	rel = filepath.ToSlash(rel)
	for _, pattern := range patterns {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
	}
	return false
}

// MatchPath reports whether rel or any of its parent directories matches one of patterns.
func MatchPath(patterns []string, rel string) bool {
	rel = filepath.ToSlash(filepath.Clean(rel))
	for {
		if Match(patterns, rel) {
			return true
		}
		i := strings.LastIndexByte(rel, '/')
		if i < 0 {
			return false
		}
		rel = rel[:i]
	}
}
