package ports

import "go.trai.ch/pysync/internal/core/domain"

// ConfigLoader defines the interface for loading the project configuration.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load discovers the config file starting at cwd and returns the resolved configuration.
	// Defaults rooted at cwd are returned when no config file exists.
	Load(cwd string) (*domain.Config, error)
}

// LockfileReader reads the Python packages of one environment and platform from a lockfile.
type LockfileReader interface {
	Read(path, environment, platform string) ([]domain.LockedPackage, error)
}
