// Package wheelcache keeps unpacked wheels on disk between runs.
package wheelcache

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/pysync/internal/core/domain"
	"go.trai.ch/pysync/internal/core/ports"
	"go.trai.ch/zerr"
)

const (
	artifactFile = "artifact.json"
	wheelDir     = "wheel"
)

// entry is the on-disk description of a cached wheel.
type entry struct {
	Name     string            `json:"name"`
	Version  string            `json:"version"`
	Filename string            `json:"filename"`
	Direct   *domain.DirectURL `json:"direct_url,omitempty"`
	MD5      string            `json:"md5,omitempty"`
	SHA256   string            `json:"sha256,omitempty"`
	Editable bool              `json:"editable,omitempty"`
}

func newEntry(a domain.CachedArtifact) entry {
	e := entry{
		Name:     a.Name.String(),
		Version:  a.Version,
		Filename: a.Filename,
		Direct:   a.Direct,
		Editable: a.Editable,
	}
	if a.Hashes != nil {
		e.MD5 = a.Hashes.MD5
		e.SHA256 = a.Hashes.SHA256
	}
	return e
}

func (e entry) artifact(path string) (domain.CachedArtifact, error) {
	name, err := domain.NewPackageName(e.Name)
	if err != nil {
		return domain.CachedArtifact{}, err
	}
	a := domain.CachedArtifact{
		Name:     name,
		Version:  e.Version,
		Filename: e.Filename,
		Path:     path,
		Direct:   e.Direct,
		Editable: e.Editable,
	}
	if e.MD5 != "" || e.SHA256 != "" {
		a.Hashes = &domain.PackageHashes{MD5: e.MD5, SHA256: e.SHA256}
	}
	return a, nil
}

// Cache implements ports.WheelCache below <cache_dir>/wheels-v1.
// Entries live at <name>/<key>/ with the unpacked wheel in wheel/ and its
// description in artifact.json.
type Cache struct {
	logger ports.Logger
}

// New creates a Cache.
func New(logger ports.Logger) *Cache {
	return &Cache{logger: logger}
}

// Key identifies an artifact within its package directory.
func Key(a domain.CachedArtifact) string {
	h := xxhash.New()
	_, _ = h.WriteString(a.Filename)
	_, _ = h.WriteString("\x00")
	if a.Direct != nil {
		_, _ = h.WriteString(a.Direct.URL)
	}
	if a.Editable {
		_, _ = h.WriteString("\x00editable")
	}
	return hex.EncodeToString(h.Sum(nil))
}

// Index reads every registry wheel in the cache that env's interpreter can load.
// A missing cache directory yields an empty index.
func (c *Cache) Index(ctx context.Context, env domain.Environment) (ports.WheelIndex, error) {
	root := filepath.Join(env.CacheDir, domain.WheelCacheDirName)
	idx := make(index)

	names, err := os.ReadDir(root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return idx, nil
		}
		return nil, zerr.With(zerr.Wrap(err, domain.ErrCacheFailed.Error()), "path", root)
	}

	for _, nameDir := range names {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !nameDir.IsDir() {
			continue
		}
		keys, err := os.ReadDir(filepath.Join(root, nameDir.Name()))
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, domain.ErrCacheFailed.Error()), "path", nameDir.Name())
		}
		for _, key := range keys {
			dir := filepath.Join(root, nameDir.Name(), key.Name())
			artifact, ok := c.read(dir)
			if !ok || !usable(artifact, env.Interpreter.Tags) {
				continue
			}
			idx[artifact.Name] = append(idx[artifact.Name], artifact)
		}
	}

	for name := range idx {
		sort.SliceStable(idx[name], func(i, j int) bool {
			return idx[name][i].Filename < idx[name][j].Filename
		})
	}
	return idx, nil
}

// read loads one entry. Incomplete or corrupt entries are skipped.
func (c *Cache) read(dir string) (domain.CachedArtifact, bool) {
	//nolint:gosec // Path is inside the cache directory
	data, err := os.ReadFile(filepath.Join(dir, artifactFile))
	if err != nil {
		return domain.CachedArtifact{}, false
	}
	var e entry
	if err := json.Unmarshal(data, &e); err != nil {
		c.logger.Debug(fmt.Sprintf("skipping corrupt cache entry %s: %v", dir, err))
		return domain.CachedArtifact{}, false
	}
	artifact, err := e.artifact(filepath.Join(dir, wheelDir))
	if err != nil {
		c.logger.Debug(fmt.Sprintf("skipping cache entry %s: %v", dir, err))
		return domain.CachedArtifact{}, false
	}
	if _, err := os.Stat(artifact.Path); err != nil {
		return domain.CachedArtifact{}, false
	}
	return artifact, true
}

// usable reports whether a cached artifact may stand in for a registry wheel.
func usable(a domain.CachedArtifact, tags []domain.Tag) bool {
	if a.Direct != nil || a.Editable {
		return false
	}
	filename, err := domain.ParseWheelFilename(a.Filename)
	if err != nil {
		return false
	}
	return filename.CompatibleWith(tags)
}

// Store creates the entry for artifact. fill unpacks the wheel into a staging
// directory that replaces any previous entry with the same key once complete.
func (c *Cache) Store(
	ctx context.Context,
	env domain.Environment,
	artifact domain.CachedArtifact,
	fill func(dir string) error,
) (domain.CachedArtifact, error) {
	if err := ctx.Err(); err != nil {
		return domain.CachedArtifact{}, err
	}
	nameDir := filepath.Join(env.CacheDir, domain.WheelCacheDirName, artifact.Name.String())
	if err := os.MkdirAll(nameDir, domain.DirPerm); err != nil {
		return domain.CachedArtifact{}, zerr.With(zerr.Wrap(err, domain.ErrCacheFailed.Error()), "path", nameDir)
	}

	staging, err := os.MkdirTemp(nameDir, ".tmp-")
	if err != nil {
		return domain.CachedArtifact{}, zerr.With(zerr.Wrap(err, domain.ErrCacheFailed.Error()), "path", nameDir)
	}
	committed := false
	defer func() {
		if !committed {
			_ = os.RemoveAll(staging)
		}
	}()

	if err := fill(filepath.Join(staging, wheelDir)); err != nil {
		return domain.CachedArtifact{}, err
	}

	data, err := json.MarshalIndent(newEntry(artifact), "", "  ")
	if err != nil {
		return domain.CachedArtifact{}, zerr.Wrap(err, domain.ErrCacheFailed.Error())
	}
	if err := os.WriteFile(filepath.Join(staging, artifactFile), data, domain.FilePerm); err != nil {
		return domain.CachedArtifact{}, zerr.With(zerr.Wrap(err, domain.ErrCacheFailed.Error()), "path", staging)
	}

	final := filepath.Join(nameDir, Key(artifact))
	if err := os.RemoveAll(final); err != nil {
		return domain.CachedArtifact{}, zerr.With(zerr.Wrap(err, domain.ErrCacheFailed.Error()), "path", final)
	}
	if err := os.Rename(staging, final); err != nil {
		return domain.CachedArtifact{}, zerr.With(zerr.Wrap(err, domain.ErrCacheFailed.Error()), "path", final)
	}
	committed = true

	artifact.Path = filepath.Join(final, wheelDir)
	c.logger.Debug(fmt.Sprintf("cached %s at %s", artifact.Filename, final))
	return artifact, nil
}

type index map[domain.PackageName][]domain.CachedArtifact

func (i index) Get(name domain.PackageName) []domain.CachedArtifact {
	return i[name]
}
