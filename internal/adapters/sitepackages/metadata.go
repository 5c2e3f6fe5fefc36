package sitepackages

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/pysync/internal/adapters/wheel"
	"go.trai.ch/pysync/internal/core/domain"
	"go.trai.ch/zerr"
)

// Distribution metadata locations by suffix of InstalledPackage.Path.
const (
	distInfoSuffix = ".dist-info"
	eggInfoSuffix  = ".egg-info"
	eggLinkSuffix  = ".egg-link"
)

// MetadataReader implements ports.MetadataReader.
type MetadataReader struct{}

// NewMetadataReader creates a MetadataReader.
func NewMetadataReader() *MetadataReader {
	return &MetadataReader{}
}

// ReadMetadata reads the core metadata of pkg. ModTime is the modification
// time of the metadata file, written when the distribution was installed.
func (r *MetadataReader) ReadMetadata(pkg domain.InstalledPackage) (domain.DistMetadata, error) {
	path, err := metadataFile(pkg.Path)
	if err != nil {
		return domain.DistMetadata{}, zerr.With(zerr.Wrap(err, domain.ErrMetadataReadFailed.Error()), "path", pkg.Path)
	}

	meta, err := readMetadataFile(path)
	if err != nil {
		return domain.DistMetadata{}, zerr.With(zerr.Wrap(err, domain.ErrMetadataReadFailed.Error()), "path", path)
	}
	return meta, nil
}

func readMetadataFile(path string) (domain.DistMetadata, error) {
	info, err := os.Stat(path)
	if err != nil {
		return domain.DistMetadata{}, err
	}
	header, err := wheel.ReadHeaderFile(path)
	if err != nil {
		return domain.DistMetadata{}, err
	}
	return domain.DistMetadata{
		Name:           strings.TrimSpace(header.Get("Name")),
		Version:        strings.TrimSpace(header.Get("Version")),
		RequiresPython: strings.TrimSpace(header.Get("Requires-Python")),
		ModTime:        info.ModTime(),
	}, nil
}

// metadataFile locates the METADATA or PKG-INFO file for a distribution path.
func metadataFile(path string) (string, error) {
	switch {
	case strings.HasSuffix(path, distInfoSuffix):
		return filepath.Join(path, domain.MetadataFile), nil
	case strings.HasSuffix(path, eggInfoSuffix):
		info, err := os.Stat(path)
		if err != nil {
			return "", err
		}
		if info.IsDir() {
			return filepath.Join(path, domain.PkgInfoFile), nil
		}
		return path, nil
	case strings.HasSuffix(path, eggLinkSuffix):
		project, err := eggLinkTarget(path)
		if err != nil {
			return "", err
		}
		eggInfo, err := findEggInfo(project)
		if err != nil {
			return "", err
		}
		return filepath.Join(eggInfo, domain.PkgInfoFile), nil
	default:
		return "", zerr.With(zerr.New("unrecognized distribution path"), "path", path)
	}
}

// eggLinkTarget returns the project directory an egg-link points to.
func eggLinkTarget(path string) (string, error) {
	// #nosec G304 -- egg-link files come from the environment scan
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer func() { _ = f.Close() }()

	scanner := bufio.NewScanner(f)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return "", err
		}
		return "", zerr.With(zerr.New("empty egg-link"), "path", path)
	}
	target := strings.TrimSpace(scanner.Text())
	if !filepath.IsAbs(target) {
		target = filepath.Join(filepath.Dir(path), target)
	}
	return filepath.Clean(target), nil
}

func findEggInfo(project string) (string, error) {
	matches, err := filepath.Glob(filepath.Join(project, "*"+eggInfoSuffix))
	if err != nil {
		return "", err
	}
	if len(matches) == 0 {
		matches, err = filepath.Glob(filepath.Join(project, "src", "*"+eggInfoSuffix))
		if err != nil {
			return "", err
		}
	}
	if len(matches) == 0 {
		return "", zerr.With(zerr.New("no egg-info in linked project"), "project", project)
	}
	return matches[0], nil
}
