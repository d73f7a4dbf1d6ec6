package telemetry

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/recache/internal/core/ports"
)

const (
	// ProviderNodeID is the unique identifier for the tracer provider Graft node.
	ProviderNodeID graft.ID = "adapter.telemetry.provider"
	// TracerNodeID is the unique identifier for the Telemetry adapter Graft node.
	TracerNodeID graft.ID = "adapter.telemetry"
)

func init() {
	graft.Register(graft.Node[*Provider]{
		ID:        ProviderNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (*Provider, error) {
			return NewProvider(), nil
		},
	})

	graft.Register(graft.Node[ports.Tracer]{
		ID:        TracerNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{ProviderNodeID},
		Run: func(ctx context.Context) (ports.Tracer, error) {
			p, err := graft.Dep[*Provider](ctx)
			if err != nil {
				return nil, err
			}
			return p.Tracer(), nil
		},
	})
}
