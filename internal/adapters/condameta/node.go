package condameta

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/pysync/internal/adapters/logger"
	"go.trai.ch/pysync/internal/core/ports"
)

// NodeID is the unique identifier for the clobber detector Graft node.
const NodeID graft.ID = "adapter.condameta"

func init() {
	graft.Register(graft.Node[ports.ClobberDetector]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.ClobberDetector, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return New(log), nil
		},
	})
}
