package lockfile

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/pysync/internal/core/ports"
)

// NodeID is the unique identifier for the lockfile reader Graft node.
const NodeID graft.ID = "adapter.lockfile"

func init() {
	graft.Register(graft.Node[ports.LockfileReader]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.LockfileReader, error) {
			return NewReader(), nil
		},
	})
}
