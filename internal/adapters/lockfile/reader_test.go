package lockfile_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/pysync/internal/adapters/lockfile"
	"go.trai.ch/pysync/internal/core/domain"
)

func writeLock(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pixi.lock")
	require.NoError(t, os.WriteFile(path, []byte(content), domain.FilePerm))
	return path
}

func TestReader_Read(t *testing.T) {
	pkgs, err := lockfile.NewReader().Read(filepath.Join("testdata", "pixi.lock"), "default", "linux-64")
	require.NoError(t, err)
	require.Len(t, pkgs, 4)

	requests := pkgs[0]
	assert.Equal(t, domain.MustPackageName("requests"), requests.Name)
	assert.Equal(t, "2.32.3", requests.Version)
	assert.Equal(t, ">=3.8", requests.RequiresPython)
	require.NotNil(t, requests.Hashes)
	assert.Equal(t, "70761cfe03c773ceb22aa2f671b4757976145175cdfca038c02654d061d6dcc6", requests.Hashes.SHA256)
	assert.Empty(t, requests.Hashes.MD5)
	u, ok := requests.Source.URL()
	require.True(t, ok)
	assert.Equal(t, "files.pythonhosted.org", u.Host)

	six := pkgs[1]
	require.NotNil(t, six.Hashes)
	assert.Equal(t, "3ab4b8f4d5e6f7a8b9c0d1e2f3a4b5c6", six.Hashes.MD5)

	mylib := pkgs[2]
	assert.Equal(t, domain.MustPackageName("mylib"), mylib.Name)
	assert.True(t, mylib.Editable)
	assert.Nil(t, mylib.Hashes)
	path, ok := mylib.Source.Path()
	require.True(t, ok)
	assert.Equal(t, "./libs/mylib", path)

	tool := pkgs[3]
	u, ok = tool.Source.URL()
	require.True(t, ok)
	assert.Equal(t, "git+https", u.Scheme)
}

func TestReader_OtherPlatform(t *testing.T) {
	pkgs, err := lockfile.NewReader().Read(filepath.Join("testdata", "pixi.lock"), "default", "osx-arm64")
	require.NoError(t, err)
	require.Len(t, pkgs, 1)
	assert.Equal(t, domain.MustPackageName("six"), pkgs[0].Name)
}

func TestReader_Version5(t *testing.T) {
	path := writeLock(t, `
version: 5
environments:
  default:
    packages:
      linux-64:
      - pypi: https://example.com/six-1.16.0-py2.py3-none-any.whl
      - pypi: ./local
packages:
- kind: pypi
  name: six
  version: 1.16.0
  url: https://example.com/six-1.16.0-py2.py3-none-any.whl
  sha256: abc
- kind: pypi
  name: local
  version: 0.0.1
  path: ./local
  editable: true
`)

	pkgs, err := lockfile.NewReader().Read(path, "default", "linux-64")
	require.NoError(t, err)
	require.Len(t, pkgs, 2)
	assert.Equal(t, domain.MustPackageName("six"), pkgs[0].Name)
	assert.True(t, pkgs[1].Editable)
}

func TestReader_DuplicateReferences(t *testing.T) {
	path := writeLock(t, `
version: 6
environments:
  default:
    packages:
      linux-64:
      - pypi: https://example.com/six-1.16.0-py2.py3-none-any.whl
      - pypi: https://example.com/six-1.16.0-py2.py3-none-any.whl
packages:
- pypi: https://example.com/six-1.16.0-py2.py3-none-any.whl
  name: six
  version: 1.16.0
`)

	pkgs, err := lockfile.NewReader().Read(path, "default", "linux-64")
	require.NoError(t, err)
	assert.Len(t, pkgs, 1)
}

func TestReader_Errors(t *testing.T) {
	tests := []struct {
		name        string
		content     string
		environment string
		platform    string
		wantErr     error
	}{
		{
			name:        "invalid yaml",
			content:     "version: [",
			environment: "default",
			platform:    "linux-64",
			wantErr:     domain.ErrLockfileParseFailed,
		},
		{
			name:        "unsupported version",
			content:     "version: 3\n",
			environment: "default",
			platform:    "linux-64",
			wantErr:     domain.ErrUnsupportedLockfileVersion,
		},
		{
			name:        "unknown environment",
			content:     "version: 6\nenvironments: {}\n",
			environment: "dev",
			platform:    "linux-64",
			wantErr:     domain.ErrEnvironmentNotFound,
		},
		{
			name:        "unknown platform",
			content:     "version: 6\nenvironments:\n  default:\n    packages:\n      linux-64: []\n",
			environment: "default",
			platform:    "win-64",
			wantErr:     domain.ErrPlatformNotFound,
		},
		{
			name: "dangling reference",
			content: "version: 6\nenvironments:\n  default:\n    packages:\n      linux-64:\n" +
				"      - pypi: https://example.com/a-1.0-py3-none-any.whl\npackages: []\n",
			environment: "default",
			platform:    "linux-64",
			wantErr:     domain.ErrLockfileInconsistent,
		},
		{
			name: "entry without version",
			content: "version: 6\nenvironments:\n  default:\n    packages:\n      linux-64:\n" +
				"      - pypi: https://example.com/a-1.0-py3-none-any.whl\npackages:\n" +
				"- pypi: https://example.com/a-1.0-py3-none-any.whl\n  name: a\n",
			environment: "default",
			platform:    "linux-64",
			wantErr:     domain.ErrLockfileParseFailed,
		},
		{
			name: "invalid name",
			content: "version: 6\nenvironments:\n  default:\n    packages:\n      linux-64:\n" +
				"      - pypi: https://example.com/a-1.0-py3-none-any.whl\npackages:\n" +
				"- pypi: https://example.com/a-1.0-py3-none-any.whl\n  name: '-a-'\n  version: '1.0'\n",
			environment: "default",
			platform:    "linux-64",
			wantErr:     domain.ErrInvalidPackageName,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := lockfile.NewReader().Read(writeLock(t, tt.content), tt.environment, tt.platform)
			require.Error(t, err)
			assert.ErrorContains(t, err, tt.wantErr.Error())
		})
	}
}

func TestReader_MissingFile(t *testing.T) {
	_, err := lockfile.NewReader().Read(filepath.Join(t.TempDir(), "absent.lock"), "default", "linux-64")
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrLockfileReadFailed.Error())
}
