package envlock

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/pysync/internal/adapters/logger"
	"go.trai.ch/pysync/internal/core/ports"
)

// NodeID is the unique identifier for the environment locker Graft node.
const NodeID graft.ID = "adapter.envlock"

func init() {
	graft.Register(graft.Node[ports.EnvironmentLocker]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.EnvironmentLocker, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewLocker(log), nil
		},
	})
}
