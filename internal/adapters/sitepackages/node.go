package sitepackages

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/pysync/internal/adapters/logger"
	"go.trai.ch/pysync/internal/core/ports"
)

// Graft node identifiers.
const (
	InspectorNodeID   graft.ID = "adapter.site_packages.inspector"
	MetadataNodeID    graft.ID = "adapter.site_packages.metadata"
	UninstallerNodeID graft.ID = "adapter.site_packages.uninstaller"
)

func init() {
	graft.Register(graft.Node[ports.EnvironmentInspector]{
		ID:        InspectorNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.EnvironmentInspector, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewInspector(log), nil
		},
	})

	graft.Register(graft.Node[ports.MetadataReader]{
		ID:        MetadataNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.MetadataReader, error) {
			return NewMetadataReader(), nil
		},
	})

	graft.Register(graft.Node[ports.Uninstaller]{
		ID:        UninstallerNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.Uninstaller, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewUninstaller(log), nil
		},
	})
}
