package watcher

import (
	"github.com/fsnotify/fsnotify"
	"go.trai.ch/recache/internal/core/ports"
)

// ConvertOp exposes convertOp for tests.
func ConvertOp(op fsnotify.Op) (ports.WatchOp, bool) {
	return convertOp(op)
}

// Directories exposes directories for tests.
func Directories(root string) []string {
	var dirs []string
	for dir := range directories(root) {
		dirs = append(dirs, dir)
	}
	return dirs
}
