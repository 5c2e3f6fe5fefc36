package domain

import "time"

// Interpreter describes the Python interpreter of an environment and its install scheme.
type Interpreter struct {
	Executable string
	Version    string
	Prefix     string
	Purelib    string
	Platlib    string
	Scripts    string
	Include    string
	Data       string
	Tags       []Tag
}

// SitePackages returns the distinct directories that hold installed distributions.
func (i Interpreter) SitePackages() []string {
	if i.Platlib == "" || i.Platlib == i.Purelib {
		return []string{i.Purelib}
	}
	return []string{i.Purelib, i.Platlib}
}

// Environment is the resolved context a reconciliation runs against.
type Environment struct {
	Prefix      string
	Interpreter Interpreter
	CacheDir    string
	LockDir     string
	LinkMode    LinkMode
}

// LinkMode selects how wheel files are placed into site-packages.
type LinkMode string

// Supported link modes.
const (
	LinkModeHardlink LinkMode = "hardlink"
	LinkModeCopy     LinkMode = "copy"
)

// DistMetadata is the subset of core metadata the reconciler inspects.
type DistMetadata struct {
	Name           string
	Version        string
	RequiresPython string
	// ModTime is when the metadata file was last written, which is when the
	// distribution was installed.
	ModTime time.Time
}

// Command is an external process invocation.
type Command struct {
	Name string
	Args []string
	Dir  string
	Env  []string
}
