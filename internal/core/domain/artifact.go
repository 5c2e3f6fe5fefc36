package domain

// CachedArtifact is an unpacked wheel ready to be linked into an environment.
type CachedArtifact struct {
	Name     PackageName
	Version  string
	Filename string
	// Path is the directory holding the unpacked wheel contents.
	Path string
	// Direct is the provenance to record for direct references; nil for registry wheels.
	Direct *DirectURL
	Hashes *PackageHashes
	// Editable marks a synthesized editable wheel.
	Editable bool
}

// UninstallSummary counts what an uninstall removed.
type UninstallSummary struct {
	Files int
	Dirs  int
}
