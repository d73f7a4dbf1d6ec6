package includes

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/recache/internal/adapters/fs"
	"go.trai.ch/recache/internal/adapters/logger"
	"go.trai.ch/recache/internal/adapters/telemetry"
	"go.trai.ch/recache/internal/core/ports"
)

// NodeID is the unique identifier for the document project factory Graft node.
const NodeID graft.ID = "adapter.includes"

func init() {
	graft.Register(graft.Node[*Factory]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{fs.OracleFactoryNodeID, logger.NodeID, telemetry.TracerNodeID},
		Run: func(ctx context.Context) (*Factory, error) {
			oracles, err := graft.Dep[ports.OracleFactory](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			tracer, err := graft.Dep[ports.Tracer](ctx)
			if err != nil {
				return nil, err
			}
			return NewFactory(oracles, log, tracer), nil
		},
	})
}
