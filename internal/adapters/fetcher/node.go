package fetcher

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/pysync/internal/adapters/logger"
	"go.trai.ch/pysync/internal/adapters/shell"
	"go.trai.ch/pysync/internal/adapters/wheelcache"
	"go.trai.ch/pysync/internal/core/ports"
)

// NodeID is the unique identifier for the distribution fetcher Graft node.
const NodeID graft.ID = "adapter.fetcher"

func init() {
	graft.Register(graft.Node[ports.DistributionFetcher]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{shell.NodeID, wheelcache.NodeID, logger.NodeID},
		Run: func(ctx context.Context) (ports.DistributionFetcher, error) {
			runner, err := graft.Dep[ports.CommandRunner](ctx)
			if err != nil {
				return nil, err
			}
			cache, err := graft.Dep[ports.WheelCache](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return New(runner, cache, log), nil
		},
	})
}
