package wheelcache_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/pysync/internal/adapters/wheelcache"
	"go.trai.ch/pysync/internal/core/domain"
	"go.trai.ch/pysync/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

var linuxTags = []domain.Tag{
	{Python: "cp312", ABI: "cp312", Platform: "manylinux_2_17_x86_64"},
	{Python: "py3", ABI: "none", Platform: "any"},
}

func newCache(t *testing.T) (*wheelcache.Cache, domain.Environment) {
	t.Helper()
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Debug(gomock.Any()).AnyTimes()

	env := domain.Environment{
		CacheDir:    t.TempDir(),
		Interpreter: domain.Interpreter{Tags: linuxTags},
	}
	return wheelcache.New(log), env
}

func writeFile(name string) func(string) error {
	return func(dir string) error {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), domain.DirPerm); err != nil {
			return err
		}
		return os.WriteFile(path, []byte("x"), domain.FilePerm)
	}
}

func TestCache_IndexMissingDirectory(t *testing.T) {
	t.Parallel()
	cache, env := newCache(t)

	idx, err := cache.Index(context.Background(), env)
	require.NoError(t, err)
	assert.Empty(t, idx.Get("requests"))
}

func TestCache_StoreThenIndex(t *testing.T) {
	t.Parallel()
	cache, env := newCache(t)
	ctx := context.Background()

	stored, err := cache.Store(ctx, env, domain.CachedArtifact{
		Name:     "requests",
		Version:  "2.31.0",
		Filename: "requests-2.31.0-py3-none-any.whl",
		Hashes:   &domain.PackageHashes{SHA256: "abc"},
	}, writeFile("requests/__init__.py"))
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(stored.Path, "requests", "__init__.py"))

	idx, err := cache.Index(ctx, env)
	require.NoError(t, err)
	got := idx.Get("requests")
	require.Len(t, got, 1)
	assert.Equal(t, "2.31.0", got[0].Version)
	assert.Equal(t, stored.Path, got[0].Path)
	require.NotNil(t, got[0].Hashes)
	assert.Equal(t, "abc", got[0].Hashes.SHA256)
}

func TestCache_IndexFiltersUnusableEntries(t *testing.T) {
	t.Parallel()
	cache, env := newCache(t)
	ctx := context.Background()

	artifacts := []domain.CachedArtifact{
		{Name: "numpy", Version: "2.0.0", Filename: "numpy-2.0.0-cp312-cp312-macosx_14_0_arm64.whl"},
		{Name: "numpy", Version: "2.0.0", Filename: "numpy-2.0.0-cp312-cp312-manylinux_2_17_x86_64.whl"},
		{
			Name: "mylib", Version: "0.1.0", Filename: "mylib-0.1.0-py3-none-any.whl",
			Direct: &domain.DirectURL{URL: "file:///src/mylib", DirInfo: &domain.DirInfo{}},
		},
		{Name: "tool", Version: "1.0", Filename: "tool-1.0-py3-none-any.whl", Editable: true},
	}
	for _, a := range artifacts {
		_, err := cache.Store(ctx, env, a, writeFile("marker"))
		require.NoError(t, err)
	}

	idx, err := cache.Index(ctx, env)
	require.NoError(t, err)

	numpy := idx.Get("numpy")
	require.Len(t, numpy, 1, "only the wheel matching the interpreter tags is indexed")
	assert.Contains(t, numpy[0].Filename, "manylinux")
	assert.Empty(t, idx.Get("mylib"), "direct artifacts are not registry candidates")
	assert.Empty(t, idx.Get("tool"), "editable artifacts are not registry candidates")
}

func TestCache_StoreReplacesExistingEntry(t *testing.T) {
	t.Parallel()
	cache, env := newCache(t)
	ctx := context.Background()
	artifact := domain.CachedArtifact{Name: "six", Version: "1.16.0", Filename: "six-1.16.0-py2.py3-none-any.whl"}

	first, err := cache.Store(ctx, env, artifact, writeFile("old.py"))
	require.NoError(t, err)
	second, err := cache.Store(ctx, env, artifact, writeFile("new.py"))
	require.NoError(t, err)

	assert.Equal(t, first.Path, second.Path)
	assert.NoFileExists(t, filepath.Join(second.Path, "old.py"))
	assert.FileExists(t, filepath.Join(second.Path, "new.py"))
}

func TestCache_FailedFillLeavesNothingBehind(t *testing.T) {
	t.Parallel()
	cache, env := newCache(t)
	ctx := context.Background()
	errFill := errors.New("unpack failed")

	_, err := cache.Store(ctx, env, domain.CachedArtifact{
		Name: "six", Version: "1.16.0", Filename: "six-1.16.0-py2.py3-none-any.whl",
	}, func(string) error { return errFill })
	require.ErrorIs(t, err, errFill)

	entries, err := os.ReadDir(filepath.Join(env.CacheDir, domain.WheelCacheDirName, "six"))
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestCache_IndexSkipsCorruptEntries(t *testing.T) {
	t.Parallel()
	cache, env := newCache(t)
	dir := filepath.Join(env.CacheDir, domain.WheelCacheDirName, "six", "deadbeef")
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "wheel"), domain.DirPerm))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "artifact.json"), []byte("{"), domain.FilePerm))

	idx, err := cache.Index(context.Background(), env)
	require.NoError(t, err)
	assert.Empty(t, idx.Get("six"))
}

func TestKey_DistinguishesProvenance(t *testing.T) {
	t.Parallel()

	registry := domain.CachedArtifact{Filename: "p-1.0-py3-none-any.whl"}
	direct := registry
	direct.Direct = &domain.DirectURL{URL: "https://example.com/p-1.0-py3-none-any.whl"}
	editable := registry
	editable.Editable = true

	assert.Equal(t, wheelcache.Key(registry), wheelcache.Key(registry))
	assert.NotEqual(t, wheelcache.Key(registry), wheelcache.Key(direct))
	assert.NotEqual(t, wheelcache.Key(registry), wheelcache.Key(editable))
	assert.Len(t, wheelcache.Key(registry), 16)
}
