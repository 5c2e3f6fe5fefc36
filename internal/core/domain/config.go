package domain

// Config is the resolved configuration of a reconciliation run.
// Paths are absolute once loaded.
type Config struct {
	// Root is the directory holding the config file, or the working directory.
	Root        string
	Lockfile    string
	Environment string
	Platform    string
	Prefix      string
	// Python is the interpreter path, relative to Prefix unless absolute.
	Python      string
	CacheDir    string
	Concurrency int
	LinkMode    LinkMode
	Refresh     RefreshPolicy
}

// RefreshPolicy forces cached wheels for some or all packages to be fetched again.
type RefreshPolicy struct {
	All      bool
	Packages []PackageName
}

// MustRevalidate reports whether cached artifacts for name must be ignored.
func (r RefreshPolicy) MustRevalidate(name PackageName) bool {
	if r.All {
		return true
	}
	for _, p := range r.Packages {
		if p == name {
			return true
		}
	}
	return false
}
