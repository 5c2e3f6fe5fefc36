package domain

import (
	"net/url"
	"path/filepath"
	"strings"
)

const directPrefix = "direct+"

// IsDirectScheme reports whether a URL scheme points at a direct reference
// rather than a registry: local files, git repositories and explicit direct+ URLs.
func IsDirectScheme(scheme string) bool {
	return scheme == "file" || strings.HasPrefix(scheme, "git+") || strings.HasPrefix(scheme, "direct")
}

// StripDirectPrefix removes a leading "direct+" from raw.
func StripDirectPrefix(raw string) string {
	return strings.TrimPrefix(raw, directPrefix)
}

// StripDirectScheme removes a "direct+" scheme prefix. When the remainder does
// not parse as a URL, u is returned unchanged.
func StripDirectScheme(u *url.URL) *url.URL {
	if !strings.HasPrefix(u.Scheme, directPrefix) {
		return u
	}
	stripped, err := url.Parse(StripDirectPrefix(u.String()))
	if err != nil {
		return u
	}
	return stripped
}

// FileURL returns the file:// URL for an absolute path.
func FileURL(path string) *url.URL {
	p := filepath.ToSlash(path)
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return &url.URL{Scheme: "file", Path: p}
}

// FileURLPath returns the filesystem path of a file:// URL.
func FileURLPath(u *url.URL) string {
	p := u.Path
	if u.Host != "" && u.Host != "localhost" {
		p = "//" + u.Host + p
	}
	if len(p) >= 3 && p[0] == '/' && p[2] == ':' {
		p = p[1:]
	}
	return filepath.FromSlash(p)
}

// SameURL compares two URLs, treating file URLs by their cleaned paths.
func SameURL(a, b *url.URL) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Scheme == "file" && b.Scheme == "file" {
		return filepath.Clean(FileURLPath(a)) == filepath.Clean(FileURLPath(b))
	}
	return a.String() == b.String()
}

// LastPathSegment returns the percent-decoded final segment of a URL path.
func LastPathSegment(u *url.URL) string {
	segment := u.EscapedPath()
	if i := strings.LastIndex(segment, "/"); i >= 0 {
		segment = segment[i+1:]
	}
	if decoded, err := url.PathUnescape(segment); err == nil {
		return decoded
	}
	return segment
}

// RawLastPathSegment returns the final segment of a URL path without decoding.
func RawLastPathSegment(u *url.URL) string {
	segment := u.EscapedPath()
	if i := strings.LastIndex(segment, "/"); i >= 0 {
		return segment[i+1:]
	}
	return segment
}
