package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/pysync/internal/adapters/condameta"    //nolint:depguard // Wired in app layer
	"go.trai.ch/pysync/internal/adapters/config"       //nolint:depguard // Wired in app layer
	"go.trai.ch/pysync/internal/adapters/envlock"      //nolint:depguard // Wired in app layer
	"go.trai.ch/pysync/internal/adapters/fetcher"      //nolint:depguard // Wired in app layer
	"go.trai.ch/pysync/internal/adapters/installer"    //nolint:depguard // Wired in app layer
	"go.trai.ch/pysync/internal/adapters/interpreter"  //nolint:depguard // Wired in app layer
	"go.trai.ch/pysync/internal/adapters/lockfile"     //nolint:depguard // Wired in app layer
	"go.trai.ch/pysync/internal/adapters/logger"       //nolint:depguard // Wired in app layer
	"go.trai.ch/pysync/internal/adapters/sitepackages" //nolint:depguard // Wired in app layer
	"go.trai.ch/pysync/internal/adapters/telemetry"    //nolint:depguard // Wired in app layer
	"go.trai.ch/pysync/internal/adapters/wheelcache"   //nolint:depguard // Wired in app layer
	"go.trai.ch/pysync/internal/core/ports"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			lockfile.NodeID,
			interpreter.NodeID,
			envlock.NodeID,
			sitepackages.InspectorNodeID,
			sitepackages.MetadataNodeID,
			sitepackages.UninstallerNodeID,
			wheelcache.NodeID,
			fetcher.NodeID,
			installer.NodeID,
			condameta.NodeID,
			telemetry.NodeID,
			logger.NodeID,
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
		Run: runComponentsNode,
	})
}

//nolint:cyclop // one lookup per collaborator
func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}
	lock, err := graft.Dep[ports.LockfileReader](ctx)
	if err != nil {
		return nil, err
	}
	interpreters, err := graft.Dep[ports.InterpreterResolver](ctx)
	if err != nil {
		return nil, err
	}
	locker, err := graft.Dep[ports.EnvironmentLocker](ctx)
	if err != nil {
		return nil, err
	}
	inspector, err := graft.Dep[ports.EnvironmentInspector](ctx)
	if err != nil {
		return nil, err
	}
	metadata, err := graft.Dep[ports.MetadataReader](ctx)
	if err != nil {
		return nil, err
	}
	uninstaller, err := graft.Dep[ports.Uninstaller](ctx)
	if err != nil {
		return nil, err
	}
	cache, err := graft.Dep[ports.WheelCache](ctx)
	if err != nil {
		return nil, err
	}
	fetch, err := graft.Dep[ports.DistributionFetcher](ctx)
	if err != nil {
		return nil, err
	}
	install, err := graft.Dep[ports.Installer](ctx)
	if err != nil {
		return nil, err
	}
	clobber, err := graft.Dep[ports.ClobberDetector](ctx)
	if err != nil {
		return nil, err
	}
	tracer, err := graft.Dep[ports.Tracer](ctx)
	if err != nil {
		return nil, err
	}
	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	return New(loader, lock, Collaborators{
		Interpreters: interpreters,
		Locker:       locker,
		Inspector:    inspector,
		Metadata:     metadata,
		Uninstaller:  uninstaller,
		Cache:        cache,
		Fetcher:      fetch,
		Installer:    install,
		Clobber:      clobber,
	}, tracer, log), nil
}

func runComponentsNode(ctx context.Context) (*Components, error) {
	app, err := graft.Dep[*App](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	return NewComponents(app, log), nil
}
