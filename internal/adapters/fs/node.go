package fs

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/recache/internal/core/ports"
)

const (
	// WalkerNodeID is the unique identifier for the file walker Graft node.
	WalkerNodeID graft.ID = "adapter.fs.walker"
	// OracleFactoryNodeID is the unique identifier for the change oracle factory Graft node.
	OracleFactoryNodeID graft.ID = "adapter.fs.oracles"
)

func init() {
	graft.Register(graft.Node[*Walker]{
		ID:        WalkerNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (*Walker, error) {
			return NewWalker(), nil
		},
	})

	graft.Register(graft.Node[ports.OracleFactory]{
		ID:        OracleFactoryNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{WalkerNodeID},
		Run: func(ctx context.Context) (ports.OracleFactory, error) {
			walker, err := graft.Dep[*Walker](ctx)
			if err != nil {
				return nil, err
			}
			return NewOracleFactory(walker), nil
		},
	})
}
