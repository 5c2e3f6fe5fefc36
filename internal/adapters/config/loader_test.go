package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/pysync/internal/adapters/config"
	"go.trai.ch/pysync/internal/core/domain"
	"go.trai.ch/pysync/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func newLoader(t *testing.T, goos, goarch string) *config.Loader {
	t.Helper()
	t.Setenv("PYSYNC_CACHE_DIR", "")

	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Debug(gomock.Any()).AnyTimes()

	return config.NewLoaderForHost(log, goos, goarch, "/home/u/.cache")
}

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, domain.DirPerm))
	require.NoError(t, os.WriteFile(filepath.Join(dir, domain.ConfigFileName), []byte(content), domain.FilePerm))
}

func TestLoader_Defaults(t *testing.T) {
	cwd := t.TempDir()

	cfg, err := newLoader(t, "linux", "amd64").Load(cwd)
	require.NoError(t, err)

	assert.Equal(t, cwd, cfg.Root)
	assert.Equal(t, filepath.Join(cwd, "pixi.lock"), cfg.Lockfile)
	assert.Equal(t, "default", cfg.Environment)
	assert.Equal(t, "linux-64", cfg.Platform)
	assert.Equal(t, filepath.Join(cwd, ".pixi", "envs", "default"), cfg.Prefix)
	assert.Equal(t, filepath.Join("bin", "python"), cfg.Python)
	assert.Equal(t, filepath.Join("/home/u/.cache", "pysync"), cfg.CacheDir)
	assert.Equal(t, config.DefaultDownloadConcurrency, cfg.Concurrency)
	assert.Equal(t, domain.LinkModeHardlink, cfg.LinkMode)
	assert.False(t, cfg.Refresh.All)
	assert.Empty(t, cfg.Refresh.Packages)
}

func TestLoader_Platform(t *testing.T) {
	tests := []struct {
		goos, goarch string
		want         string
		python       string
	}{
		{"linux", "amd64", "linux-64", filepath.Join("bin", "python")},
		{"linux", "arm64", "linux-aarch64", filepath.Join("bin", "python")},
		{"linux", "ppc64le", "linux-ppc64le", filepath.Join("bin", "python")},
		{"darwin", "amd64", "osx-64", filepath.Join("bin", "python")},
		{"darwin", "arm64", "osx-arm64", filepath.Join("bin", "python")},
		{"windows", "amd64", "win-64", "python.exe"},
		{"windows", "arm64", "win-arm64", "python.exe"},
	}

	for _, tt := range tests {
		t.Run(tt.goos+"/"+tt.goarch, func(t *testing.T) {
			cfg, err := newLoader(t, tt.goos, tt.goarch).Load(t.TempDir())
			require.NoError(t, err)
			assert.Equal(t, tt.want, cfg.Platform)
			assert.Equal(t, tt.python, cfg.Python)
		})
	}
}

func TestLoader_FileValues(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, `
lockfile: locks/project.lock
environment: test
platform: osx-arm64
python: bin/python3.12
cache_dir: /var/cache/pysync
link_mode: copy
concurrency:
  downloads: 4
refresh:
  - Requests
  - zope.interface
`)

	cfg, err := newLoader(t, "linux", "amd64").Load(root)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(root, "locks", "project.lock"), cfg.Lockfile)
	assert.Equal(t, "test", cfg.Environment)
	assert.Equal(t, "osx-arm64", cfg.Platform)
	assert.Equal(t, filepath.Join(root, ".pixi", "envs", "test"), cfg.Prefix)
	assert.Equal(t, "bin/python3.12", cfg.Python)
	assert.Equal(t, "/var/cache/pysync", cfg.CacheDir)
	assert.Equal(t, 4, cfg.Concurrency)
	assert.Equal(t, domain.LinkModeCopy, cfg.LinkMode)
	assert.Equal(t, []domain.PackageName{
		domain.MustPackageName("requests"),
		domain.MustPackageName("zope-interface"),
	}, cfg.Refresh.Packages)
}

func TestLoader_RefreshAll(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, "refresh: all\n")

	cfg, err := newLoader(t, "linux", "amd64").Load(root)
	require.NoError(t, err)
	assert.True(t, cfg.Refresh.All)
	assert.True(t, cfg.Refresh.MustRevalidate(domain.MustPackageName("anything")))
}

func TestLoader_DiscoversParent(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, "prefix: env\n")
	nested := filepath.Join(root, "src", "pkg")
	require.NoError(t, os.MkdirAll(nested, domain.DirPerm))

	cfg, err := newLoader(t, "linux", "amd64").Load(nested)
	require.NoError(t, err)

	assert.Equal(t, root, cfg.Root)
	assert.Equal(t, filepath.Join(root, "env"), cfg.Prefix)
	assert.Equal(t, filepath.Join(root, "pixi.lock"), cfg.Lockfile)
}

func TestLoader_CacheDirFromEnvironment(t *testing.T) {
	l := newLoader(t, "linux", "amd64")
	t.Setenv("PYSYNC_CACHE_DIR", "/tmp/pysync-cache")

	cfg, err := l.Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "/tmp/pysync-cache", cfg.CacheDir)
}

func TestLoader_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr error
	}{
		{name: "invalid yaml", content: "lockfile: [unterminated", wantErr: domain.ErrConfigParseFailed},
		{name: "negative concurrency", content: "concurrency:\n  downloads: -1\n", wantErr: domain.ErrInvalidConfig},
		{name: "unknown link mode", content: "link_mode: symlink\n", wantErr: domain.ErrInvalidConfig},
		{name: "invalid refresh name", content: "refresh: [\"-bad-\"]\n", wantErr: domain.ErrInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			writeConfig(t, root, tt.content)

			_, err := newLoader(t, "linux", "amd64").Load(root)
			require.Error(t, err)
			assert.ErrorContains(t, err, tt.wantErr.Error())
		})
	}
}

func TestLoader_ReadFailure(t *testing.T) {
	root := t.TempDir()
	// A directory named like the config file is skipped by discovery.
	require.NoError(t, os.Mkdir(filepath.Join(root, domain.ConfigFileName), domain.DirPerm))

	cfg, err := newLoader(t, "linux", "amd64").Load(root)
	require.NoError(t, err)
	assert.Equal(t, root, cfg.Root)
}
