// Package lockfile reads Python package records from pixi lockfiles.
package lockfile

import (
	"os"
	"slices"

	"go.trai.ch/pysync/internal/core/domain"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Supported lockfile format versions.
var supportedVersions = []int{5, 6}

// Reader implements ports.LockfileReader for pixi.lock files.
type Reader struct{}

// NewReader creates a new lockfile Reader.
func NewReader() *Reader {
	return &Reader{}
}

// Read returns the PyPI packages locked for environment on platform, in lockfile order.
func (r *Reader) Read(path, environment, platform string) ([]domain.LockedPackage, error) {
	// #nosec G304 -- path is the configured lockfile
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrLockfileReadFailed.Error()), "path", path)
	}

	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrLockfileParseFailed.Error()), "path", path)
	}

	if !slices.Contains(supportedVersions, doc.Version) {
		return nil, zerr.With(domain.ErrUnsupportedLockfileVersion, "version", doc.Version)
	}

	env, ok := doc.Environments[environment]
	if !ok {
		return nil, zerr.With(domain.ErrEnvironmentNotFound, "environment", environment)
	}
	refs, ok := env.Packages[platform]
	if !ok {
		return nil, zerr.With(zerr.With(domain.ErrPlatformNotFound, "environment", environment), "platform", platform)
	}

	index := make(map[string]*packageEntry, len(doc.Packages))
	for i := range doc.Packages {
		if loc, ok := doc.Packages[i].location(); ok {
			if _, seen := index[loc]; !seen {
				index[loc] = &doc.Packages[i]
			}
		}
	}

	var locked []domain.LockedPackage
	seen := make(map[string]bool)
	for _, ref := range refs {
		if ref.PyPI == "" || seen[ref.PyPI] {
			continue
		}
		seen[ref.PyPI] = true

		entry, ok := index[ref.PyPI]
		if !ok {
			return nil, zerr.With(domain.ErrLockfileInconsistent, "package", ref.PyPI)
		}
		pkg, err := toLocked(ref.PyPI, entry)
		if err != nil {
			return nil, zerr.With(err, "path", path)
		}
		locked = append(locked, pkg)
	}

	return locked, nil
}

func toLocked(location string, entry *packageEntry) (domain.LockedPackage, error) {
	if entry.Name == "" || entry.Version == "" {
		return domain.LockedPackage{}, zerr.With(
			zerr.Wrap(zerr.New("entry has no name or version"), domain.ErrLockfileParseFailed.Error()),
			"package", location)
	}

	name, err := domain.NewPackageName(entry.Name)
	if err != nil {
		return domain.LockedPackage{}, err
	}

	source, err := domain.ParseSource(location)
	if err != nil {
		return domain.LockedPackage{}, zerr.With(err, "package", entry.Name)
	}

	pkg := domain.LockedPackage{
		Name:           name,
		Version:        entry.Version,
		Source:         source,
		RequiresPython: entry.RequiresPython,
		Editable:       entry.Editable,
	}
	if entry.SHA256 != "" || entry.MD5 != "" {
		pkg.Hashes = &domain.PackageHashes{MD5: entry.MD5, SHA256: entry.SHA256}
	}
	return pkg, nil
}
