// Package sitepackages reads and removes distributions installed in site-packages.
package sitepackages

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.trai.ch/pysync/internal/core/domain"
	"go.trai.ch/pysync/internal/core/ports"
	"go.trai.ch/zerr"
)

// Inspector implements ports.EnvironmentInspector.
type Inspector struct {
	logger ports.Logger
}

// NewInspector creates an Inspector.
func NewInspector(logger ports.Logger) *Inspector {
	return &Inspector{logger: logger}
}

// Snapshot lists the distributions in every site-packages directory of env.
// Entries whose name cannot be determined are skipped.
func (i *Inspector) Snapshot(ctx context.Context, env domain.Environment) ([]domain.InstalledPackage, error) {
	var installed []domain.InstalledPackage

	for _, dir := range env.Interpreter.SitePackages() {
		entries, err := os.ReadDir(dir)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, domain.ErrSnapshotFailed.Error()), "path", dir)
		}

		for _, entry := range entries {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			pkg, ok := i.inspect(dir, entry)
			if ok {
				installed = append(installed, pkg)
			}
		}
	}

	sort.SliceStable(installed, func(a, b int) bool { return installed[a].Name < installed[b].Name })
	return installed, nil
}

func (i *Inspector) inspect(dir string, entry fs.DirEntry) (domain.InstalledPackage, bool) {
	path := filepath.Join(dir, entry.Name())
	name := entry.Name()

	var (
		pkg domain.InstalledPackage
		err error
	)
	switch {
	case entry.IsDir() && strings.HasSuffix(name, distInfoSuffix):
		pkg, err = readDistInfo(path)
	case strings.HasSuffix(name, eggInfoSuffix):
		kind := domain.EggInfoFile
		if entry.IsDir() {
			kind = domain.EggInfoDirectory
		}
		pkg, err = readEggInfo(path, kind)
	case !entry.IsDir() && strings.HasSuffix(name, eggLinkSuffix):
		pkg, err = readEggLink(path)
	default:
		return domain.InstalledPackage{}, false
	}

	if err != nil {
		i.logger.Debug(fmt.Sprintf("skipping %s: %v", path, err))
		return domain.InstalledPackage{}, false
	}
	return pkg, true
}

func readDistInfo(path string) (domain.InstalledPackage, error) {
	stem := strings.TrimSuffix(filepath.Base(path), distInfoSuffix)
	dirName, dirVersion, _ := strings.Cut(stem, "-")

	rawName, version := dirName, dirVersion
	if meta, err := readMetadataFile(filepath.Join(path, domain.MetadataFile)); err == nil {
		if meta.Name != "" {
			rawName = meta.Name
		}
		if meta.Version != "" {
			version = meta.Version
		}
	}

	name, err := domain.NewPackageName(rawName)
	if err != nil {
		return domain.InstalledPackage{}, err
	}

	pkg := domain.InstalledPackage{
		Name:       name,
		Version:    version,
		Installer:  readInstaller(filepath.Join(path, domain.InstallerFile)),
		Provenance: domain.RegistryProvenance{},
		Path:       path,
	}

	// #nosec G304 -- inside the scanned dist-info directory
	data, err := os.ReadFile(filepath.Join(path, domain.DirectURLFile))
	switch {
	case err == nil:
		direct, parseErr := domain.ParseDirectURL(data)
		if parseErr != nil {
			pkg.ProvenanceErr = parseErr
		} else {
			pkg.Provenance = direct.Provenance()
		}
	case !errors.Is(err, fs.ErrNotExist):
		pkg.ProvenanceErr = err
	}

	return pkg, nil
}

func readEggInfo(path string, kind domain.LegacyKind) (domain.InstalledPackage, error) {
	metaPath := path
	if kind == domain.EggInfoDirectory {
		metaPath = filepath.Join(path, domain.PkgInfoFile)
	}

	stem := strings.TrimSuffix(filepath.Base(path), eggInfoSuffix)
	parts := strings.SplitN(stem, "-", 3)
	rawName, version := parts[0], ""
	if len(parts) > 1 {
		version = parts[1]
	}
	if meta, err := readMetadataFile(metaPath); err == nil {
		if meta.Name != "" {
			rawName = meta.Name
		}
		if meta.Version != "" {
			version = meta.Version
		}
	}

	name, err := domain.NewPackageName(rawName)
	if err != nil {
		return domain.InstalledPackage{}, err
	}

	pkg := domain.InstalledPackage{
		Name:       name,
		Version:    version,
		Provenance: domain.LegacyProvenance{Kind: kind},
		Path:       path,
	}
	if kind == domain.EggInfoDirectory {
		pkg.Installer = readInstaller(filepath.Join(path, domain.InstallerFile))
	}
	return pkg, nil
}

func readEggLink(path string) (domain.InstalledPackage, error) {
	name, err := domain.NewPackageName(strings.TrimSuffix(filepath.Base(path), eggLinkSuffix))
	if err != nil {
		return domain.InstalledPackage{}, err
	}

	pkg := domain.InstalledPackage{
		Name:       name,
		Provenance: domain.LegacyProvenance{Kind: domain.LegacyEditable},
		Path:       path,
	}
	if metaPath, err := metadataFile(path); err == nil {
		if meta, err := readMetadataFile(metaPath); err == nil {
			pkg.Version = meta.Version
		}
	}
	return pkg, nil
}

func readInstaller(path string) string {
	// #nosec G304 -- inside the scanned metadata directory
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}
