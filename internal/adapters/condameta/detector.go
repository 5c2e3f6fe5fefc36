// Package condameta detects conda packages whose files a wheel install overwrote.
package condameta

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/pysync/internal/adapters/wheel"
	"go.trai.ch/pysync/internal/core/domain"
	"go.trai.ch/pysync/internal/core/ports"
	"go.trai.ch/zerr"
)

// MetaDir holds one JSON record per installed conda package.
const MetaDir = "conda-meta"

type packageRecord struct {
	Name  string   `json:"name"`
	Files []string `json:"files"`
}

// Detector implements ports.ClobberDetector.
type Detector struct {
	logger ports.Logger
}

// New creates a Detector.
func New(logger ports.Logger) *Detector {
	return &Detector{logger: logger}
}

// Detect returns the artifacts, in order, that install at least one file listed
// by a conda package. An environment without conda-meta has no conda packages.
func (d *Detector) Detect(ctx context.Context, env domain.Environment, artifacts []domain.CachedArtifact) ([]domain.PackageName, error) {
	owners, err := d.condaFiles(env.Prefix)
	if err != nil || len(owners) == 0 {
		return nil, err
	}

	scheme := wheel.SchemeFor(env.Interpreter)
	var clobbered []domain.PackageName
	for _, artifact := range artifacts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		layout, err := wheel.Plan(artifact.Path, artifact.Name, scheme)
		if err != nil {
			return nil, err
		}
		for _, placement := range layout.Files {
			rel, err := filepath.Rel(env.Prefix, placement.Dest)
			if err != nil {
				continue
			}
			if owner, ok := owners[filepath.ToSlash(rel)]; ok {
				d.logger.Debug(fmt.Sprintf("%s overwrote %s from conda package %s", artifact.Name, rel, owner))
				clobbered = append(clobbered, artifact.Name)
				break
			}
		}
	}
	return clobbered, nil
}

// condaFiles maps every prefix-relative path listed in conda-meta to its package.
func (d *Detector) condaFiles(prefix string) (map[string]string, error) {
	dir := filepath.Join(prefix, MetaDir)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.With(zerr.Wrap(err, "failed to read conda-meta"), "path", dir)
	}

	owners := make(map[string]string)
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		path := filepath.Join(dir, e.Name())
		//nolint:gosec // Path is inside the environment
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, "failed to read conda package record"), "path", path)
		}
		var record packageRecord
		if err := json.Unmarshal(data, &record); err != nil {
			d.logger.Debug(fmt.Sprintf("skipping unreadable conda package record %s: %v", path, err))
			continue
		}
		for _, file := range record.Files {
			owners[strings.TrimPrefix(file, "./")] = record.Name
		}
	}
	return owners, nil
}
