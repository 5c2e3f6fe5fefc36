package domain

import (
	"net/url"
	"path/filepath"
	"strings"

	"go.trai.ch/zerr"
)

// Source is where a locked package comes from: either an absolute URL or a
// filesystem path, which may be relative to the lockfile's directory.
type Source struct {
	url  *url.URL
	path string
}

// NewURLSource returns a URL-backed source.
func NewURLSource(u *url.URL) Source {
	return Source{url: u}
}

// NewPathSource returns a path-backed source.
func NewPathSource(path string) Source {
	return Source{path: path}
}

// ParseSource interprets raw as a URL when it carries a scheme and as a path otherwise.
// Single letter schemes are treated as Windows drive letters.
func ParseSource(raw string) (Source, error) {
	if raw == "" {
		return Source{}, zerr.With(ErrMalformedURL, "source", raw)
	}
	scheme, _, found := strings.Cut(raw, ":")
	if !found || len(scheme) < 2 || strings.ContainsAny(scheme, `/\.`) {
		return NewPathSource(raw), nil
	}
	u, err := url.Parse(raw)
	if err != nil {
		return Source{}, zerr.With(zerr.Wrap(err, ErrMalformedURL.Error()), "source", raw)
	}
	return NewURLSource(u), nil
}

// URL returns the source URL if the source is URL-backed.
func (s Source) URL() (*url.URL, bool) {
	return s.url, s.url != nil
}

// Path returns the source path if the source is path-backed.
func (s Source) Path() (string, bool) {
	return s.path, s.url == nil && s.path != ""
}

// IsZero reports whether the source is unset.
func (s Source) IsZero() bool {
	return s.url == nil && s.path == ""
}

func (s Source) String() string {
	if s.url != nil {
		return s.url.String()
	}
	return s.path
}

// ResolvePath joins a relative path source onto baseDir.
func (s Source) ResolvePath(baseDir string) string {
	if filepath.IsAbs(s.path) {
		return filepath.Clean(s.path)
	}
	return filepath.Join(baseDir, s.path)
}
