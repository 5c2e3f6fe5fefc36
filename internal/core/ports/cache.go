package ports

import (
	"context"

	"go.trai.ch/pysync/internal/core/domain"
)

//go:generate mockgen -source=cache.go -destination=mocks/mock_cache.go -package=mocks

// WheelCache stores unpacked wheels between runs.
type WheelCache interface {
	// Index returns the registry wheels in the cache that are compatible with env.
	Index(ctx context.Context, env domain.Environment) (WheelIndex, error)
	// Store fills a new cache entry for artifact. fill receives the directory to
	// unpack the wheel into; the entry becomes visible only once fill succeeds.
	Store(ctx context.Context, env domain.Environment, artifact domain.CachedArtifact,
		fill func(dir string) error) (domain.CachedArtifact, error)
}

// WheelIndex looks up cached wheels by package name.
type WheelIndex interface {
	Get(name domain.PackageName) []domain.CachedArtifact
}

// RefreshPolicy decides which packages must bypass the cache.
type RefreshPolicy interface {
	MustRevalidate(name domain.PackageName) bool
}
