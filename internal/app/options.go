package app

import (
	"path/filepath"

	"go.trai.ch/pysync/internal/core/domain"
	"go.trai.ch/zerr"
)

// loadConfig loads the config file and applies command line overrides.
// Relative override paths are resolved against the working directory.
func (a *App) loadConfig(opts SyncOptions) (*domain.Config, error) {
	workDir := opts.WorkDir
	if workDir == "" {
		workDir = "."
	}
	workDir, err := filepath.Abs(workDir)
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrInvalidConfig.Error())
	}

	cfg, err := a.configLoader.Load(workDir)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load configuration")
	}

	resolve := func(path string) string {
		if filepath.IsAbs(path) {
			return path
		}
		return filepath.Join(workDir, path)
	}
	if opts.Lockfile != "" {
		cfg.Lockfile = resolve(opts.Lockfile)
	}
	if opts.Prefix != "" {
		cfg.Prefix = resolve(opts.Prefix)
	}
	if opts.CacheDir != "" {
		cfg.CacheDir = resolve(opts.CacheDir)
	}
	if opts.Environment != "" {
		cfg.Environment = opts.Environment
	}
	if opts.Platform != "" {
		cfg.Platform = opts.Platform
	}
	if opts.Python != "" {
		cfg.Python = opts.Python
	}
	if opts.Concurrency != 0 {
		cfg.Concurrency = opts.Concurrency
	}
	if opts.LinkMode != "" {
		cfg.LinkMode = domain.LinkMode(opts.LinkMode)
	}
	if opts.Refresh {
		cfg.Refresh.All = true
	}
	for _, raw := range opts.RefreshPackages {
		name, err := domain.NewPackageName(raw)
		if err != nil {
			return nil, err
		}
		cfg.Refresh.Packages = append(cfg.Refresh.Packages, name)
	}

	if cfg.Concurrency < 1 {
		return nil, zerr.With(domain.ErrInvalidConfig, "concurrency", cfg.Concurrency)
	}
	if cfg.LinkMode != domain.LinkModeHardlink && cfg.LinkMode != domain.LinkModeCopy {
		return nil, zerr.With(domain.ErrInvalidConfig, "link_mode", string(cfg.LinkMode))
	}
	return cfg, nil
}
