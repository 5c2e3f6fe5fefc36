package reconciler_test

import (
	"net/url"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/pysync/internal/core/domain"
	"go.trai.ch/pysync/internal/engine/reconciler"
)

func lockedURL(t *testing.T, name, version, raw string) domain.LockedPackage {
	t.Helper()
	u, err := url.Parse(raw)
	require.NoError(t, err)
	return domain.LockedPackage{
		Name:    domain.MustPackageName(name),
		Version: version,
		Source:  domain.NewURLSource(u),
	}
}

func TestLocate_RegistryWheelDecodesFilename(t *testing.T) {
	t.Parallel()

	pkg := lockedURL(t, "torch", "2.3.0+cu121", "https://example.com/torch-2.3.0%2Bcu121-cp312-cp312-win_amd64.whl")
	pkg.Hashes = &domain.PackageHashes{SHA256: "abc"}
	pkg.RequiresPython = ">=3.8"

	dist, err := reconciler.Locate(pkg, t.TempDir())
	require.NoError(t, err)

	wheel, ok := dist.(domain.RegistryWheelDist)
	require.True(t, ok, "expected registry wheel, got %T", dist)
	assert.Equal(t, "torch-2.3.0+cu121-cp312-cp312-win_amd64.whl", wheel.File.Filename)
	assert.NotContains(t, wheel.File.Filename, "%2B")
	assert.Equal(t, "2.3.0+cu121", wheel.Filename.Version)
	assert.Equal(t, "abc", wheel.File.Hashes.SHA256)
	assert.Equal(t, ">=3.8", wheel.File.RequiresPython)
}

func TestLocate_RegistrySourceDist(t *testing.T) {
	t.Parallel()

	pkg := lockedURL(t, "pyyaml", "6.0.1", "https://example.com/PyYAML-6.0.1.tar.gz")
	dist, err := reconciler.Locate(pkg, t.TempDir())
	require.NoError(t, err)

	sdist, ok := dist.(domain.RegistrySourceDist)
	require.True(t, ok, "expected source dist, got %T", dist)
	assert.Equal(t, domain.ExtTarGz, sdist.Ext)
	assert.Equal(t, "PyYAML-6.0.1.tar.gz", sdist.File.Filename)
}

func TestLocate_RegistryUnsupportedExtension(t *testing.T) {
	t.Parallel()

	pkg := lockedURL(t, "pkg", "1.0", "https://example.com/pkg-1.0.rpm")
	_, err := reconciler.Locate(pkg, t.TempDir())
	require.Error(t, err)
	assert.True(t, domain.IsResolutionError(err))
	assert.ErrorIs(t, err, domain.ErrUnsupportedExtension)
}

func TestLocate_DirectArchive(t *testing.T) {
	t.Parallel()

	pkg := lockedURL(t, "pkg", "1.0", "direct+https://example.com/pkg-1.0-py3-none-any.whl")
	dist, err := reconciler.Locate(pkg, t.TempDir())
	require.NoError(t, err)

	archive, ok := dist.(domain.ArchiveDist)
	require.True(t, ok, "expected archive, got %T", dist)
	assert.True(t, archive.Ext.Wheel)
	assert.Equal(t, "https://example.com/pkg-1.0-py3-none-any.whl", archive.URL.String())
	assert.Empty(t, archive.Path)
}

func TestLocate_Git(t *testing.T) {
	t.Parallel()

	pkg := lockedURL(t, "repo", "0.1.0", "git+https://example.com/repo.git?rev=main#abc123")
	dist, err := reconciler.Locate(pkg, t.TempDir())
	require.NoError(t, err)

	git, ok := dist.(domain.GitDist)
	require.True(t, ok, "expected git, got %T", dist)
	assert.Equal(t, "https://example.com/repo.git", git.Git.Repository.String())
	assert.Equal(t, "abc123", git.Git.Precise)
	assert.Equal(t, "main", git.Git.Reference)
}

func TestLocate_FileURLDirectory(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	pkg := domain.LockedPackage{
		Name:     "local",
		Version:  "0.1.0",
		Source:   domain.NewURLSource(domain.FileURL(dir)),
		Editable: true,
	}
	dist, err := reconciler.Locate(pkg, "/unused")
	require.NoError(t, err)

	directory, ok := dist.(domain.DirectoryDist)
	require.True(t, ok, "expected directory, got %T", dist)
	assert.True(t, directory.Editable)
	assert.Equal(t, filepath.Clean(dir), filepath.Clean(directory.Path))
}

func TestLocate_RelativePaths(t *testing.T) {
	t.Parallel()

	lockDir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(lockDir, "libs", "core"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(lockDir, "dist"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(lockDir, "dist", "pkg-1.0.tar.gz"), nil, 0o644))

	dirPkg := domain.LockedPackage{Name: "core", Version: "1.0", Source: domain.NewPathSource("libs/core")}
	dist, err := reconciler.Locate(dirPkg, lockDir)
	require.NoError(t, err)
	directory, ok := dist.(domain.DirectoryDist)
	require.True(t, ok, "expected directory, got %T", dist)
	assert.Equal(t, filepath.Join(lockDir, "libs", "core"), directory.Path)
	assert.False(t, directory.Editable)

	filePkg := domain.LockedPackage{Name: "pkg", Version: "1.0", Source: domain.NewPathSource("dist/pkg-1.0.tar.gz")}
	dist, err = reconciler.Locate(filePkg, lockDir)
	require.NoError(t, err)
	archive, ok := dist.(domain.ArchiveDist)
	require.True(t, ok, "expected archive, got %T", dist)
	assert.Equal(t, domain.ExtTarGz, archive.Ext.Source)
	assert.Equal(t, filepath.Join(lockDir, "dist", "pkg-1.0.tar.gz"), archive.Path)
}

func TestLocate_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		pkg  domain.LockedPackage
		want error
	}{
		{
			name: "unsupported scheme",
			pkg:  lockedURL(t, "pkg", "1.0", "direct+ftp://example.com/pkg-1.0.whl"),
			want: domain.ErrUnsupportedURLScheme,
		},
		{
			name: "unsupported path extension",
			pkg:  domain.LockedPackage{Name: "pkg", Version: "1.0", Source: domain.NewPathSource("missing/pkg.rpm")},
			want: domain.ErrUnsupportedExtension,
		},
		{
			name: "invalid requires-python",
			pkg: domain.LockedPackage{
				Name: "pkg", Version: "1.0", RequiresPython: ">=banana",
				Source: domain.NewPathSource("pkg-1.0.tar.gz"),
			},
			want: domain.ErrConversion,
		},
		{
			name: "empty source",
			pkg:  domain.LockedPackage{Name: "pkg", Version: "1.0"},
			want: domain.ErrMalformedURL,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := reconciler.Locate(tt.pkg, t.TempDir())
			require.Error(t, err)
			assert.True(t, domain.IsResolutionError(err))
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
