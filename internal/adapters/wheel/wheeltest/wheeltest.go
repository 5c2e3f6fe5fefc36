// Package wheeltest builds wheel archives for tests.
package wheeltest

import (
	"archive/zip"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"
)

// PureWheel returns the members of a minimal pure Python wheel for name and version.
// name must already be in dist-info form.
func PureWheel(name, version string) map[string]string {
	distInfo := name + "-" + version + ".dist-info/"
	return map[string]string{
		name + "/__init__.py":      "__version__ = \"" + version + "\"\n",
		distInfo + "METADATA":      "Metadata-Version: 2.1\nName: " + name + "\nVersion: " + version + "\n\nlong description\n",
		distInfo + "WHEEL":         "Wheel-Version: 1.0\nGenerator: test\nRoot-Is-Purelib: true\nTag: py3-none-any\n",
		distInfo + "RECORD":        name + "/__init__.py,,\n",
		distInfo + "top_level.txt": name + "\n",
	}
}

// Build writes a zip archive with files at dir/filename and returns its path.
// Members ending in .sh or under a scripts data directory are marked executable.
func Build(t *testing.T, dir, filename string, files map[string]string) string {
	t.Helper()

	path := filepath.Join(dir, filename)
	f, err := os.Create(path)
	require.NoError(t, err)

	zw := zip.NewWriter(f)
	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		header := &zip.FileHeader{Name: name, Method: zip.Deflate}
		mode := os.FileMode(0o644)
		if filepath.Ext(name) == ".sh" || filepath.Base(filepath.Dir(name)) == "scripts" {
			mode = 0o755
		}
		header.SetMode(mode)

		w, err := zw.CreateHeader(header)
		require.NoError(t, err)
		_, err = w.Write([]byte(files[name]))
		require.NoError(t, err)
	}

	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())
	return path
}
