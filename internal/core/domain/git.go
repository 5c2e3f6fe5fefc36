package domain

import (
	"net/url"
	"strings"

	"go.trai.ch/zerr"
)

// GitURL is a parsed git source reference.
type GitURL struct {
	// Repository is the clone URL without the git+ prefix, revision, query or fragment.
	Repository *url.URL
	// Reference is the requested branch, tag or revision, if any.
	Reference string
	// Precise is the pinned commit, if known.
	Precise string
	// Subdirectory is the project path inside the repository, if any.
	Subdirectory string
}

// ParseGitURL parses a git+ URL such as
// git+https://host/org/repo.git@v1.0?subdirectory=pkg#0123abcd.
func ParseGitURL(u *url.URL) (GitURL, error) {
	scheme := strings.TrimPrefix(u.Scheme, "git+")
	repo := &url.URL{Scheme: scheme, User: u.User, Host: u.Host, Path: u.Path}

	var git GitURL
	if i := strings.LastIndex(repo.Path, "@"); i > 0 && !strings.Contains(repo.Path[i:], "/") {
		git.Reference = repo.Path[i+1:]
		repo.Path = repo.Path[:i]
	}

	query := u.Query()
	if rev := query.Get("rev"); rev != "" {
		git.Reference = rev
	} else if tag := query.Get("tag"); tag != "" {
		git.Reference = tag
	} else if branch := query.Get("branch"); branch != "" {
		git.Reference = branch
	}
	git.Subdirectory = query.Get("subdirectory")

	if fragment := u.Fragment; fragment != "" {
		if isCommitHash(fragment) {
			git.Precise = fragment
		} else if values, err := url.ParseQuery(fragment); err == nil {
			if sub := values.Get("subdirectory"); sub != "" {
				git.Subdirectory = sub
			}
		}
	}
	if git.Precise == "" && isCommitHash(git.Reference) {
		git.Precise = git.Reference
	}

	if repo.Path == "" || (repo.Host == "" && scheme != "file") {
		return GitURL{}, zerr.With(ErrInvalidGitURL, "url", u.String())
	}
	git.Repository = repo
	return git, nil
}

// RepositoryKey normalizes a repository URL for equality checks. The git+
// prefix, credentials, query, fragment and a trailing ".git" are ignored.
func RepositoryKey(u *url.URL) string {
	if u == nil {
		return ""
	}
	path := u.Path
	if i := strings.LastIndex(path, "@"); i > 0 && !strings.Contains(path[i:], "/") {
		path = path[:i]
	}
	path = strings.TrimSuffix(strings.TrimSuffix(path, "/"), ".git")
	return strings.TrimPrefix(u.Scheme, "git+") + "://" + strings.ToLower(u.Host) + path
}

func isCommitHash(s string) bool {
	if len(s) < 6 || len(s) > 64 {
		return false
	}
	for _, r := range s {
		if !strings.ContainsRune("0123456789abcdefABCDEF", r) {
			return false
		}
	}
	return true
}
