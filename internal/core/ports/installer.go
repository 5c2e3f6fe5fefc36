package ports

import (
	"context"

	"go.trai.ch/pysync/internal/core/domain"
)

//go:generate mockgen -source=installer.go -destination=mocks/mock_installer.go -package=mocks

// DistributionFetcher downloads or builds a distribution into the wheel cache.
type DistributionFetcher interface {
	Fetch(ctx context.Context, env domain.Environment, dist domain.Distribution) (domain.CachedArtifact, error)
}

// Installer links unpacked wheels into an environment.
type Installer interface {
	// Install places every artifact into env and tags it with installer.
	Install(ctx context.Context, env domain.Environment, artifacts []domain.CachedArtifact, installer string) error
}

// ClobberDetector finds conda packages whose files are overwritten by Python wheels.
type ClobberDetector interface {
	// Detect returns the names of wheels that overwrote files owned by a conda package.
	Detect(ctx context.Context, env domain.Environment, artifacts []domain.CachedArtifact) ([]domain.PackageName, error)
}
