package domain

// LockedPackage is a Python package entry from the lockfile.
type LockedPackage struct {
	Name           PackageName
	Version        string
	Source         Source
	Hashes         *PackageHashes
	RequiresPython string
	Editable       bool
}
