package ports

import (
	"context"

	"go.trai.ch/pysync/internal/core/domain"
)

//go:generate mockgen -source=environment.go -destination=mocks/mock_environment.go -package=mocks

// InterpreterResolver queries the interpreter that lives in an environment prefix.
type InterpreterResolver interface {
	Resolve(ctx context.Context, prefix, python string) (domain.Interpreter, error)
}

// EnvironmentLocker serializes mutations of an environment across processes.
type EnvironmentLocker interface {
	// Lock blocks until the environment at prefix is exclusively held or ctx is done.
	Lock(ctx context.Context, prefix string) (EnvironmentLock, error)
}

// EnvironmentLock is a held environment lock.
type EnvironmentLock interface {
	Release() error
}

// EnvironmentInspector lists the distributions installed in an environment.
type EnvironmentInspector interface {
	Snapshot(ctx context.Context, env domain.Environment) ([]domain.InstalledPackage, error)
}

// MetadataReader reads core metadata of an installed distribution.
type MetadataReader interface {
	ReadMetadata(pkg domain.InstalledPackage) (domain.DistMetadata, error)
}

// Uninstaller removes installed distributions.
type Uninstaller interface {
	// Uninstall removes pkg. A missing uninstall manifest is reported as a
	// domain.ManifestError so callers can fall back to removing the metadata directory.
	Uninstall(ctx context.Context, pkg domain.InstalledPackage) (domain.UninstallSummary, error)
}
