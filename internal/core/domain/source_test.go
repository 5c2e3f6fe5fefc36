package domain_test

import (
	"net/url"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/pysync/internal/core/domain"
)

func TestParseSource(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		raw     string
		wantURL bool
	}{
		{name: "https url", raw: "https://files.example.com/pkg-1.0-py3-none-any.whl", wantURL: true},
		{name: "git url", raw: "git+https://github.com/org/repo.git#abcdef0", wantURL: true},
		{name: "file url", raw: "file:///tmp/pkg", wantURL: true},
		{name: "relative path", raw: "./libs/pkg", wantURL: false},
		{name: "bare path", raw: "libs/pkg", wantURL: false},
		{name: "drive letter", raw: `C:\src\pkg`, wantURL: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			src, err := domain.ParseSource(tt.raw)
			require.NoError(t, err)
			_, isURL := src.URL()
			assert.Equal(t, tt.wantURL, isURL)
			assert.Equal(t, tt.raw, src.String())
		})
	}
}

func TestParseSource_Empty(t *testing.T) {
	t.Parallel()

	_, err := domain.ParseSource("")
	assert.ErrorContains(t, err, domain.ErrMalformedURL.Error())
}

func TestSource_ResolvePath(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	assert.Equal(t, filepath.Join(base, "libs", "pkg"), domain.NewPathSource("libs/pkg").ResolvePath(base))

	abs := filepath.Join(base, "abs")
	assert.Equal(t, abs, domain.NewPathSource(abs).ResolvePath("/elsewhere"))
}

func TestStripDirectScheme(t *testing.T) {
	t.Parallel()

	u, err := url.Parse("direct+https://example.com/pkg-1.0.tar.gz")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/pkg-1.0.tar.gz", domain.StripDirectScheme(u).String())

	plain, err := url.Parse("https://example.com/pkg-1.0.tar.gz")
	require.NoError(t, err)
	assert.Same(t, plain, domain.StripDirectScheme(plain))

	assert.Equal(t, "https://x/y.whl", domain.StripDirectPrefix("direct+https://x/y.whl"))
	assert.Equal(t, "https://x/y.whl", domain.StripDirectPrefix("https://x/y.whl"))
}

func TestIsDirectScheme(t *testing.T) {
	t.Parallel()

	assert.True(t, domain.IsDirectScheme("file"))
	assert.True(t, domain.IsDirectScheme("git+https"))
	assert.True(t, domain.IsDirectScheme("direct+https"))
	assert.False(t, domain.IsDirectScheme("https"))
	assert.False(t, domain.IsDirectScheme("http"))
}

func TestSameURL(t *testing.T) {
	t.Parallel()

	a, _ := url.Parse("file:///work/pkg/")
	b := domain.FileURL("/work/pkg")
	assert.True(t, domain.SameURL(a, b))

	c, _ := url.Parse("https://example.com/a.whl")
	d, _ := url.Parse("https://example.com/b.whl")
	assert.False(t, domain.SameURL(c, d))
}

func TestLastPathSegment(t *testing.T) {
	t.Parallel()

	u, err := url.Parse("https://example.com/packages/my%2Bpkg-1.0.tar.gz")
	require.NoError(t, err)
	assert.Equal(t, "my+pkg-1.0.tar.gz", domain.LastPathSegment(u))
	assert.Equal(t, "my%2Bpkg-1.0.tar.gz", domain.RawLastPathSegment(u))
}

func TestHasEnvironmentRootMarker(t *testing.T) {
	t.Parallel()

	assert.True(t, domain.HasEnvironmentRootMarker("/env/lib/python3.12/site-packages/foo-1.0.dist-info"))
	assert.False(t, domain.HasEnvironmentRootMarker("/env/lib/python3.12/site-packages-old/foo"))
	assert.False(t, domain.HasEnvironmentRootMarker("/home/user/foo"))
}
