package domain

import (
	"path/filepath"
	"strings"
)

const (
	// InstallerName is written to the INSTALLER file of every distribution this tool installs.
	InstallerName = "pysync"

	// EnvironmentRootMarker must appear as a path segment before a directory is force removed.
	EnvironmentRootMarker = "site-packages"

	// ConfigFileName is the name of the project configuration file.
	ConfigFileName = "pysync.yaml"

	// DefaultLockfile is the lockfile read when none is configured.
	DefaultLockfile = "pixi.lock"

	// DefaultEnvironment is the lockfile environment used when none is configured.
	DefaultEnvironment = "default"

	// LockFileName is the advisory lock file created inside the environment prefix.
	LockFileName = ".pysync.lock"

	// CacheDirName is the default cache directory inside the user cache root.
	CacheDirName = "pysync"

	// WheelCacheDirName holds unpacked wheels inside the cache directory.
	WheelCacheDirName = "wheels-v1"

	// DirPerm is the default permission for directories (rwxr-xr-x).
	DirPerm = 0o755

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644

	// ExecPerm is the permission for generated scripts (rwxr-xr-x).
	ExecPerm = 0o755
)

// Files inside a dist-info directory.
const (
	MetadataFile  = "METADATA"
	RecordFile    = "RECORD"
	InstallerFile = "INSTALLER"
	DirectURLFile = "direct_url.json"
	RequestedFile = "REQUESTED"
	WheelFile     = "WHEEL"
	EntryPoints   = "entry_points.txt"
	PkgInfoFile   = "PKG-INFO"
	TopLevelFile  = "top_level.txt"
)

// BuildEntrypoints are the files whose modification marks a local project as changed.
var BuildEntrypoints = []string{"pyproject.toml", "setup.py", "setup.cfg"}

// HasEnvironmentRootMarker reports whether path contains a site-packages segment.
func HasEnvironmentRootMarker(path string) bool {
	for _, segment := range strings.Split(filepath.ToSlash(filepath.Clean(path)), "/") {
		if segment == EnvironmentRootMarker {
			return true
		}
	}
	return false
}
