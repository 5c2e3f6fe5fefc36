package domain_test

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/pysync/internal/core/domain"
)

func TestParseGitURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		raw           string
		wantRepo      string
		wantReference string
		wantPrecise   string
		wantSubdir    string
	}{
		{
			name:        "pinned fragment",
			raw:         "git+https://github.com/org/repo.git#9f1c2d3e4b5a69788796a5b4c3d2e1f009182736",
			wantRepo:    "https://github.com/org/repo.git",
			wantPrecise: "9f1c2d3e4b5a69788796a5b4c3d2e1f009182736",
		},
		{
			name:          "tag with fragment",
			raw:           "git+https://github.com/org/repo@v1.2.0#abc123",
			wantRepo:      "https://github.com/org/repo",
			wantReference: "v1.2.0",
			wantPrecise:   "abc123",
		},
		{
			name:          "rev query",
			raw:           "git+ssh://git@github.com/org/repo.git?rev=main&subdirectory=pkg",
			wantRepo:      "ssh://git@github.com/org/repo.git",
			wantReference: "main",
			wantSubdir:    "pkg",
		},
		{
			name:          "revision is a commit",
			raw:           "git+https://github.com/org/repo.git@abc123",
			wantRepo:      "https://github.com/org/repo.git",
			wantReference: "abc123",
			wantPrecise:   "abc123",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			u, err := url.Parse(tt.raw)
			require.NoError(t, err)

			git, err := domain.ParseGitURL(u)
			require.NoError(t, err)
			assert.Equal(t, tt.wantRepo, git.Repository.String())
			assert.Equal(t, tt.wantReference, git.Reference)
			assert.Equal(t, tt.wantPrecise, git.Precise)
			assert.Equal(t, tt.wantSubdir, git.Subdirectory)
		})
	}
}

func TestParseGitURL_NoHost(t *testing.T) {
	t.Parallel()

	u, err := url.Parse("git+https:///")
	require.NoError(t, err)
	_, err = domain.ParseGitURL(u)
	assert.ErrorContains(t, err, domain.ErrInvalidGitURL.Error())
}

func TestRepositoryKey(t *testing.T) {
	t.Parallel()

	a, _ := url.Parse("git+https://GitHub.com/org/repo.git@v1#abc123")
	b, _ := url.Parse("https://github.com/org/repo")
	assert.Equal(t, domain.RepositoryKey(a), domain.RepositoryKey(b))

	c, _ := url.Parse("https://github.com/org/other")
	assert.NotEqual(t, domain.RepositoryKey(b), domain.RepositoryKey(c))
}

func TestRepositoryKey_StripsRevisionBeforeSuffix(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw  string
		want string
	}{
		{raw: "git+https://GitHub.com/org/repo.git@v1", want: "https://github.com/org/repo"},
		{raw: "git+https://github.com/org/repo.git/@main", want: "https://github.com/org/repo"},
		{raw: "git+https://github.com/org/repo.git", want: "https://github.com/org/repo"},
		{raw: "git+ssh://git@github.com/org/repo.git@4f1c3a2", want: "ssh://github.com/org/repo"},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			t.Parallel()
			u, err := url.Parse(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, domain.RepositoryKey(u))
		})
	}
}
