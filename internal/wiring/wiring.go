// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/recache/internal/adapters/config"
	_ "go.trai.ch/recache/internal/adapters/fs"
	_ "go.trai.ch/recache/internal/adapters/includes"
	_ "go.trai.ch/recache/internal/adapters/logger"
	_ "go.trai.ch/recache/internal/adapters/telemetry"
	_ "go.trai.ch/recache/internal/adapters/watcher"
	// Register app nodes.
	_ "go.trai.ch/recache/internal/app"
)
