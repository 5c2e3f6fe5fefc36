package sitepackages_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/pysync/internal/adapters/sitepackages"
	"go.trai.ch/pysync/internal/core/domain"
)

func exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}

func TestUninstaller_Record(t *testing.T) {
	f := newFixture(t)

	f.write(t, sitePrefix+"demo/__init__.py", "")
	f.write(t, sitePrefix+"demo/core.py", "")
	f.write(t, sitePrefix+"demo/__pycache__/core.cpython-312.pyc", "")
	f.write(t, sitePrefix+"shared/keep.py", "")
	f.write(t, sitePrefix+"shared/demo_plugin.py", "")
	script := f.write(t, "bin/demo", "#!/env/bin/python\n")
	outside := filepath.Join(t.TempDir(), "outside.txt")
	require.NoError(t, os.WriteFile(outside, nil, domain.FilePerm))

	path := f.distInfo(t, "demo", "1.0", "pysync", map[string]string{
		"RECORD": "demo/__init__.py,sha256=x,0\n" +
			"demo/core.py,sha256=y,0\n" +
			"shared/demo_plugin.py,,\n" +
			"../../../bin/demo,,\n" +
			"demo/missing.py,,\n" +
			outside + ",,\n" +
			"demo-1.0.dist-info/METADATA,,\n" +
			"demo-1.0.dist-info/RECORD,,\n",
	})

	summary, err := sitepackages.NewUninstaller(f.logger).Uninstall(t.Context(), domain.InstalledPackage{
		Name: "demo",
		Path: path,
	})
	require.NoError(t, err)

	assert.False(t, exists(filepath.Join(f.site, "demo")))
	assert.False(t, exists(path))
	assert.False(t, exists(script))
	assert.True(t, exists(filepath.Join(f.site, "shared", "keep.py")))
	assert.False(t, exists(filepath.Join(f.site, "shared", "demo_plugin.py")))
	assert.True(t, exists(outside), "files outside the environment are never removed")
	assert.True(t, exists(f.site))

	// __init__.py, core.py, its pyc, demo_plugin.py, bin/demo, METADATA, RECORD
	assert.Equal(t, 7, summary.Files)
	// demo/__pycache__, demo, the dist-info directory and the emptied bin directory
	assert.Equal(t, 4, summary.Dirs)
}

func TestUninstaller_MissingRecord(t *testing.T) {
	f := newFixture(t)
	path := f.distInfo(t, "norecord", "1.0", "pysync", nil)

	_, err := sitepackages.NewUninstaller(f.logger).Uninstall(t.Context(), domain.InstalledPackage{Name: "norecord", Path: path})
	require.Error(t, err)

	var manifestErr *domain.ManifestError
	require.True(t, errors.As(err, &manifestErr))
	assert.Equal(t, path, manifestErr.Path)
	assert.True(t, domain.IsMissingManifest(err))
	assert.True(t, exists(path), "nothing is removed without a manifest")
}

func TestUninstaller_EggInfoTopLevel(t *testing.T) {
	f := newFixture(t)
	f.write(t, sitePrefix+"legacy/__init__.py", "")
	f.write(t, sitePrefix+"legacy_helpers.py", "")
	f.write(t, sitePrefix+"legacy-2.0-py3.12.egg-info/PKG-INFO", "Name: legacy\nVersion: 2.0\n")
	f.write(t, sitePrefix+"legacy-2.0-py3.12.egg-info/top_level.txt", "legacy\nlegacy_helpers\n")
	path := filepath.Join(f.site, "legacy-2.0-py3.12.egg-info")

	_, err := sitepackages.NewUninstaller(f.logger).Uninstall(t.Context(), domain.InstalledPackage{Name: "legacy", Path: path})
	require.NoError(t, err)

	assert.False(t, exists(filepath.Join(f.site, "legacy")))
	assert.False(t, exists(filepath.Join(f.site, "legacy_helpers.py")))
	assert.False(t, exists(path))
}

func TestUninstaller_EggInfoInstalledFiles(t *testing.T) {
	f := newFixture(t)
	f.write(t, sitePrefix+"pkg/mod.py", "")
	f.write(t, sitePrefix+"pkg-1.0.egg-info/PKG-INFO", "Name: pkg\nVersion: 1.0\n")
	f.write(t, sitePrefix+"pkg-1.0.egg-info/installed-files.txt", "../pkg/mod.py\nPKG-INFO\n")
	path := filepath.Join(f.site, "pkg-1.0.egg-info")

	summary, err := sitepackages.NewUninstaller(f.logger).Uninstall(t.Context(), domain.InstalledPackage{Name: "pkg", Path: path})
	require.NoError(t, err)

	assert.False(t, exists(filepath.Join(f.site, "pkg")))
	assert.False(t, exists(path))
	assert.Equal(t, 2, summary.Files)
}

func TestUninstaller_EggInfoMissingTopLevel(t *testing.T) {
	f := newFixture(t)
	f.write(t, sitePrefix+"bare-1.0.egg-info/PKG-INFO", "Name: bare\nVersion: 1.0\n")
	path := filepath.Join(f.site, "bare-1.0.egg-info")

	_, err := sitepackages.NewUninstaller(f.logger).Uninstall(t.Context(), domain.InstalledPackage{Name: "bare", Path: path})
	require.Error(t, err)
	assert.True(t, domain.IsMissingManifest(err))
	assert.ErrorContains(t, err, domain.ErrMissingTopLevel.Error())
}

func TestUninstaller_EggInfoFile(t *testing.T) {
	f := newFixture(t)
	path := f.write(t, sitePrefix+"oldfile-0.1.egg-info", "Name: oldfile\nVersion: 0.1\n")

	summary, err := sitepackages.NewUninstaller(f.logger).Uninstall(t.Context(), domain.InstalledPackage{Name: "oldfile", Path: path})
	require.NoError(t, err)
	assert.False(t, exists(path))
	assert.Equal(t, 1, summary.Files)
}

func TestUninstaller_EggLink(t *testing.T) {
	f := newFixture(t)
	project := filepath.Join(f.prefix, "src", "devpkg")
	f.write(t, "src/devpkg/devpkg.egg-info/PKG-INFO", "Name: devpkg\nVersion: 0.0.1\n")
	link := f.write(t, sitePrefix+"devpkg.egg-link", project+"\n.\n")
	pth := f.write(t, sitePrefix+"easy-install.pth", "/other/project\n"+project+"\n")

	_, err := sitepackages.NewUninstaller(f.logger).Uninstall(t.Context(), domain.InstalledPackage{Name: "devpkg", Path: link})
	require.NoError(t, err)

	assert.False(t, exists(link))
	assert.True(t, exists(project), "the linked project is left alone")
	data, err := os.ReadFile(pth)
	require.NoError(t, err)
	assert.Equal(t, "/other/project\n", string(data))
}
