// Package fetcher turns distributions into unpacked wheels in the wheel cache.
package fetcher

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"time"

	"go.trai.ch/pysync/internal/adapters/wheel"
	"go.trai.ch/pysync/internal/core/domain"
	"go.trai.ch/pysync/internal/core/ports"
	"go.trai.ch/zerr"
)

// DefaultTimeout bounds a single download.
const DefaultTimeout = 10 * time.Minute

// Fetcher implements ports.DistributionFetcher.
type Fetcher struct {
	runner ports.CommandRunner
	cache  ports.WheelCache
	logger ports.Logger
	client *http.Client
}

// New creates a Fetcher that builds sources with runner and stores wheels in cache.
func New(runner ports.CommandRunner, cache ports.WheelCache, logger ports.Logger) *Fetcher {
	return &Fetcher{
		runner: runner,
		cache:  cache,
		logger: logger,
		client: &http.Client{Timeout: DefaultTimeout},
	}
}

// Fetch downloads or builds dist and returns its cache entry.
func (f *Fetcher) Fetch(ctx context.Context, env domain.Environment, dist domain.Distribution) (domain.CachedArtifact, error) {
	switch d := dist.(type) {
	case domain.RegistryWheelDist:
		return f.fetchRegistryWheel(ctx, env, d)
	case domain.RegistrySourceDist:
		return f.fetchRegistrySource(ctx, env, d)
	case domain.ArchiveDist:
		return f.fetchArchive(ctx, env, d)
	case domain.DirectoryDist:
		if d.Editable {
			return f.buildEditable(ctx, env, d)
		}
		return f.fetchDirectory(ctx, env, d)
	case domain.GitDist:
		return f.fetchGit(ctx, env, d)
	default:
		return domain.CachedArtifact{}, zerr.With(domain.ErrUnsupportedURLScheme, "distribution", fmt.Sprintf("%T", dist))
	}
}

func (f *Fetcher) fetchRegistryWheel(ctx context.Context, env domain.Environment, d domain.RegistryWheelDist) (domain.CachedArtifact, error) {
	staging, cleanup, err := f.staging(env, d.File.URL.String())
	if err != nil {
		return domain.CachedArtifact{}, err
	}
	defer cleanup()

	path, _, err := f.download(ctx, d.File.URL, d.File.Hashes, staging, d.File.Filename)
	if err != nil {
		return domain.CachedArtifact{}, err
	}
	return f.store(ctx, env, domain.CachedArtifact{
		Name:     d.Name,
		Version:  d.Version,
		Filename: d.File.Filename,
		Hashes:   d.File.Hashes,
	}, path)
}

func (f *Fetcher) fetchRegistrySource(ctx context.Context, env domain.Environment, d domain.RegistrySourceDist) (domain.CachedArtifact, error) {
	staging, cleanup, err := f.staging(env, d.File.URL.String())
	if err != nil {
		return domain.CachedArtifact{}, err
	}
	defer cleanup()

	archive, _, err := f.download(ctx, d.File.URL, d.File.Hashes, staging, d.File.Filename)
	if err != nil {
		return domain.CachedArtifact{}, err
	}
	built, err := f.build(ctx, env, archive, staging)
	if err != nil {
		return domain.CachedArtifact{}, err
	}
	return f.store(ctx, env, domain.CachedArtifact{
		Name:     d.Name,
		Version:  d.Version,
		Filename: filepath.Base(built),
		Hashes:   d.File.Hashes,
	}, built)
}

func (f *Fetcher) fetchArchive(ctx context.Context, env domain.Environment, d domain.ArchiveDist) (domain.CachedArtifact, error) {
	staging, cleanup, err := f.staging(env, d.URL.String())
	if err != nil {
		return domain.CachedArtifact{}, err
	}
	defer cleanup()

	var (
		archive string
		sha256  string
	)
	if d.Path != "" {
		archive = d.Path
		sha256, err = verifyFile(d.Path, d.Hashes)
	} else {
		archive, sha256, err = f.download(ctx, d.URL, d.Hashes, staging, domain.LastPathSegment(d.URL))
	}
	if err != nil {
		return domain.CachedArtifact{}, err
	}

	wheelPath := archive
	if !d.Ext.Wheel {
		if wheelPath, err = f.build(ctx, env, archive, staging); err != nil {
			return domain.CachedArtifact{}, err
		}
	}
	return f.store(ctx, env, domain.CachedArtifact{
		Name:     d.Name,
		Version:  d.Version,
		Filename: filepath.Base(wheelPath),
		Hashes:   d.Hashes,
		Direct: &domain.DirectURL{
			URL:         d.URL.String(),
			ArchiveInfo: &domain.ArchiveInfo{Hashes: map[string]string{domain.HashSHA256: sha256}},
		},
	}, wheelPath)
}

func (f *Fetcher) fetchDirectory(ctx context.Context, env domain.Environment, d domain.DirectoryDist) (domain.CachedArtifact, error) {
	staging, cleanup, err := f.staging(env, d.URL.String())
	if err != nil {
		return domain.CachedArtifact{}, err
	}
	defer cleanup()

	built, err := f.build(ctx, env, d.Path, staging)
	if err != nil {
		return domain.CachedArtifact{}, err
	}
	return f.store(ctx, env, domain.CachedArtifact{
		Name:     d.Name,
		Version:  d.Version,
		Filename: filepath.Base(built),
		Direct:   &domain.DirectURL{URL: d.URL.String(), DirInfo: &domain.DirInfo{}},
	}, built)
}

func (f *Fetcher) fetchGit(ctx context.Context, env domain.Environment, d domain.GitDist) (domain.CachedArtifact, error) {
	staging, cleanup, err := f.staging(env, d.URL.String())
	if err != nil {
		return domain.CachedArtifact{}, err
	}
	defer cleanup()

	built, err := f.build(ctx, env, pipGitTarget(d.Git), staging)
	if err != nil {
		return domain.CachedArtifact{}, err
	}
	return f.store(ctx, env, domain.CachedArtifact{
		Name:     d.Name,
		Version:  d.Version,
		Filename: filepath.Base(built),
		Direct: &domain.DirectURL{
			URL:          d.Git.Repository.String(),
			Subdirectory: d.Git.Subdirectory,
			VCSInfo: &domain.VCSInfo{
				VCS:               "git",
				RequestedRevision: d.Git.Reference,
				CommitID:          d.Git.Precise,
			},
		},
	}, built)
}

// store unpacks the wheel at path into a new cache entry.
func (f *Fetcher) store(ctx context.Context, env domain.Environment, artifact domain.CachedArtifact, path string) (domain.CachedArtifact, error) {
	stored, err := f.cache.Store(ctx, env, artifact, func(dir string) error {
		return wheel.Unpack(path, dir)
	})
	if err != nil {
		return domain.CachedArtifact{}, zerr.With(err, "package", artifact.Name.String())
	}
	return stored, nil
}
