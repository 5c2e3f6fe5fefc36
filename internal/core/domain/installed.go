package domain

// InstalledPackage is a distribution found in the environment's site-packages.
type InstalledPackage struct {
	Name    PackageName
	Version string
	// Installer is the trimmed content of the INSTALLER file, empty when absent.
	Installer string
	// Provenance describes where the distribution was installed from.
	Provenance Provenance
	// ProvenanceErr is set when direct_url.json exists but cannot be decoded.
	ProvenanceErr error
	// Path is the metadata directory or file that identifies the distribution.
	Path string
}

// OwnedBy reports whether the distribution was installed by installer.
func (p InstalledPackage) OwnedBy(installer string) bool {
	return p.Installer == installer
}

// Provenance is the recorded origin of an installed distribution.
type Provenance interface {
	provenance()
}

// RegistryProvenance marks a distribution installed from a package index.
type RegistryProvenance struct{}

// DirectoryProvenance marks a distribution installed from a local directory.
type DirectoryProvenance struct {
	URL      string
	Editable bool
}

// ArchiveProvenance marks a distribution installed from an archive URL.
type ArchiveProvenance struct {
	URL          string
	Subdirectory string
}

// VCSProvenance marks a distribution installed from a version control checkout.
type VCSProvenance struct {
	URL               string
	VCS               string
	CommitID          string
	RequestedRevision string
	Subdirectory      string
}

// LegacyKind enumerates pre-wheel installation formats.
type LegacyKind int

// Legacy installation formats.
const (
	EggInfoFile LegacyKind = iota
	EggInfoDirectory
	LegacyEditable
)

func (k LegacyKind) String() string {
	switch k {
	case EggInfoFile:
		return "egg-info file"
	case EggInfoDirectory:
		return "egg-info directory"
	case LegacyEditable:
		return "egg-link"
	default:
		return "unknown"
	}
}

// LegacyProvenance marks a distribution installed in a legacy format
// that records no origin.
type LegacyProvenance struct {
	Kind LegacyKind
}

func (RegistryProvenance) provenance()  {}
func (DirectoryProvenance) provenance() {}
func (ArchiveProvenance) provenance()   {}
func (VCSProvenance) provenance()       {}
func (LegacyProvenance) provenance()    {}
