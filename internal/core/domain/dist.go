package domain

import "net/url"

// Distribution is a fetchable form of a locked package.
type Distribution interface {
	DistName() PackageName
	DistVersion() string
	String() string
	distribution()
}

// File is a registry artifact.
type File struct {
	// Filename is the percent-decoded final URL segment.
	Filename       string
	URL            *url.URL
	Hashes         *PackageHashes
	RequiresPython string
}

// RegistryWheelDist is a wheel hosted on a package index.
type RegistryWheelDist struct {
	Name     PackageName
	Version  string
	Filename WheelFilename
	File     File
}

// RegistrySourceDist is a source archive hosted on a package index.
type RegistrySourceDist struct {
	Name    PackageName
	Version string
	Ext     SourceDistExtension
	File    File
}

// ArchiveDist is a wheel or source archive referenced directly by URL or path.
type ArchiveDist struct {
	Name    PackageName
	Version string
	URL     *url.URL
	// Path is set for local archives.
	Path   string
	Ext    DistExtension
	Hashes *PackageHashes
}

// DirectoryDist is a local project directory.
type DirectoryDist struct {
	Name     PackageName
	Version  string
	URL      *url.URL
	Path     string
	Editable bool
}

// GitDist is a project in a git repository.
type GitDist struct {
	Name    PackageName
	Version string
	URL     *url.URL
	Git     GitURL
}

func (d RegistryWheelDist) DistName() PackageName  { return d.Name }
func (d RegistrySourceDist) DistName() PackageName { return d.Name }
func (d ArchiveDist) DistName() PackageName        { return d.Name }
func (d DirectoryDist) DistName() PackageName      { return d.Name }
func (d GitDist) DistName() PackageName            { return d.Name }

func (d RegistryWheelDist) DistVersion() string  { return d.Version }
func (d RegistrySourceDist) DistVersion() string { return d.Version }
func (d ArchiveDist) DistVersion() string        { return d.Version }
func (d DirectoryDist) DistVersion() string      { return d.Version }
func (d GitDist) DistVersion() string            { return d.Version }

func (d RegistryWheelDist) String() string  { return d.Name.String() + "==" + d.Version }
func (d RegistrySourceDist) String() string { return d.Name.String() + "==" + d.Version }
func (d ArchiveDist) String() string        { return d.Name.String() + " @ " + d.URL.String() }
func (d DirectoryDist) String() string      { return d.Name.String() + " @ " + d.URL.String() }
func (d GitDist) String() string            { return d.Name.String() + " @ " + d.URL.String() }

func (RegistryWheelDist) distribution()  {}
func (RegistrySourceDist) distribution() {}
func (ArchiveDist) distribution()        {}
func (DirectoryDist) distribution()      {}
func (GitDist) distribution()            {}
