package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/recache/internal/adapters/config"    //nolint:depguard // Wired in app layer
	"go.trai.ch/recache/internal/adapters/includes"  //nolint:depguard // Wired in app layer
	"go.trai.ch/recache/internal/adapters/logger"    //nolint:depguard // Wired in app layer
	"go.trai.ch/recache/internal/adapters/telemetry" //nolint:depguard // Wired in app layer
	"go.trai.ch/recache/internal/adapters/watcher"   //nolint:depguard // Wired in app layer
	"go.trai.ch/recache/internal/core/ports"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

// Components holds what the command line entry point needs.
type Components struct {
	App    *App
	Logger ports.Logger
}

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			logger.NodeID,
			includes.NodeID,
			watcher.NodeID,
			telemetry.ProviderNodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			app, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return &Components{App: app, Logger: log}, nil
		},
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	projects, err := graft.Dep[*includes.Factory](ctx)
	if err != nil {
		return nil, err
	}

	w, err := graft.Dep[ports.Watcher](ctx)
	if err != nil {
		return nil, err
	}

	provider, err := graft.Dep[*telemetry.Provider](ctx)
	if err != nil {
		return nil, err
	}

	return New(loader, log, projects, w, provider.Summary()), nil
}
