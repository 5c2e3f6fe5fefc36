package reconciler

import (
	"fmt"
	"net/url"

	"go.trai.ch/pysync/internal/core/domain"
	"go.trai.ch/pysync/internal/core/ports"
)

// Decision is the outcome of validating an installed distribution against the lock.
type Decision int

const (
	// Keep leaves the installed distribution in place.
	Keep Decision = iota
	// Reinstall replaces the installed distribution.
	Reinstall
)

func (d Decision) String() string {
	if d == Keep {
		return "keep"
	}
	return "reinstall"
}

// Checker decides whether an installed distribution still satisfies its locked counterpart.
// Read and parse failures resolve to Reinstall; they are logged, never returned.
type Checker struct {
	metadata ports.MetadataReader
	logger   ports.Logger
	lockDir  string
	python   *domain.PythonVersion
}

// NewChecker creates a Checker for an environment running the given interpreter version.
func NewChecker(metadata ports.MetadataReader, logger ports.Logger, lockDir string, python *domain.PythonVersion) *Checker {
	return &Checker{
		metadata: metadata,
		logger:   logger,
		lockDir:  lockDir,
		python:   python,
	}
}

// Validate returns Keep when installed matches locked and its metadata accepts the interpreter.
func (c *Checker) Validate(installed domain.InstalledPackage, locked domain.LockedPackage) Decision {
	metadata, err := c.metadata.ReadMetadata(installed)
	if err != nil {
		c.logger.Warn(fmt.Sprintf("reinstalling %s: failed to read metadata: %v", installed.Name, err))
		return Reinstall
	}
	if c.checkProvenance(installed, locked, metadata) == Reinstall {
		return Reinstall
	}
	return c.checkRequiresPython(installed, metadata)
}

func (c *Checker) checkProvenance(
	installed domain.InstalledPackage,
	locked domain.LockedPackage,
	metadata domain.DistMetadata,
) Decision {
	if installed.ProvenanceErr != nil {
		c.logger.Warn(fmt.Sprintf("reinstalling %s: unreadable direct_url.json: %v", installed.Name, installed.ProvenanceErr))
		return Reinstall
	}

	switch p := installed.Provenance.(type) {
	case domain.RegistryProvenance:
		if !domain.VersionsEqual(installed.Version, locked.Version) {
			c.debug(installed, "version %s does not match locked %s", installed.Version, locked.Version)
			return Reinstall
		}
		return Keep
	case domain.DirectoryProvenance:
		return c.checkDirectory(installed, p, locked, metadata)
	case domain.ArchiveProvenance:
		return c.checkArchive(installed, p, locked, metadata)
	case domain.VCSProvenance:
		return c.checkVCS(installed, p, locked)
	case domain.LegacyProvenance:
		// Legacy formats record no origin; only the metadata cross-check applies.
		c.debug(installed, "installed as %s, skipping provenance check", p.Kind)
		return Keep
	default:
		c.logger.Warn(fmt.Sprintf("reinstalling %s: unknown provenance %T", installed.Name, installed.Provenance))
		return Reinstall
	}
}

func (c *Checker) checkDirectory(
	installed domain.InstalledPackage,
	p domain.DirectoryProvenance,
	locked domain.LockedPackage,
	metadata domain.DistMetadata,
) Decision {
	installedURL, err := url.Parse(p.URL)
	if err != nil {
		c.logger.Warn(fmt.Sprintf("reinstalling %s: invalid installed url %q: %v", installed.Name, p.URL, err))
		return Reinstall
	}
	lockedURL := c.lockedURL(locked)
	if lockedURL == nil || !domain.SameURL(installedURL, lockedURL) {
		c.debug(installed, "installed from %s, locked source is %s", p.URL, locked.Source)
		return Reinstall
	}
	if !c.isFresh(installed, lockedURL, metadata) {
		return Reinstall
	}
	if p.Editable != locked.Editable {
		c.debug(installed, "editable flag changed from %t to %t", p.Editable, locked.Editable)
		return Reinstall
	}
	return Keep
}

func (c *Checker) checkArchive(
	installed domain.InstalledPackage,
	p domain.ArchiveProvenance,
	locked domain.LockedPackage,
	metadata domain.DistMetadata,
) Decision {
	lockedURL, ok := locked.Source.URL()
	if !ok {
		c.debug(installed, "installed from archive %s, locked from path %s", p.URL, locked.Source)
		return Reinstall
	}
	lockedURL = domain.StripDirectScheme(lockedURL)
	installedURL, err := url.Parse(p.URL)
	if err != nil {
		c.logger.Warn(fmt.Sprintf("reinstalling %s: invalid installed url %q: %v", installed.Name, p.URL, err))
		return Reinstall
	}
	if !domain.SameURL(installedURL, lockedURL) {
		c.debug(installed, "installed from %s, locked url is %s", p.URL, lockedURL)
		return Reinstall
	}
	if !c.isFresh(installed, lockedURL, metadata) {
		return Reinstall
	}
	return Keep
}

func (c *Checker) checkVCS(
	installed domain.InstalledPackage,
	p domain.VCSProvenance,
	locked domain.LockedPackage,
) Decision {
	installedURL, err := url.Parse(p.URL)
	if err != nil {
		c.logger.Warn(fmt.Sprintf("reinstalling %s: invalid installed url %q: %v", installed.Name, p.URL, err))
		return Reinstall
	}
	lockedURL, ok := locked.Source.URL()
	if !ok {
		c.debug(installed, "installed from %s, locked from path %s", p.URL, locked.Source)
		return Reinstall
	}
	git, err := domain.ParseGitURL(domain.StripDirectScheme(lockedURL))
	if err != nil {
		c.logger.Warn(fmt.Sprintf("reinstalling %s: invalid locked git url %q: %v", installed.Name, lockedURL, err))
		return Reinstall
	}
	if domain.RepositoryKey(installedURL) != domain.RepositoryKey(git.Repository) {
		c.debug(installed, "installed from repository %s, locked repository is %s", p.URL, git.Repository)
		return Reinstall
	}
	if p.CommitID != git.Precise {
		c.debug(installed, "installed commit %q, locked commit %q", p.CommitID, git.Precise)
		return Reinstall
	}
	return Keep
}

func (c *Checker) checkRequiresPython(installed domain.InstalledPackage, metadata domain.DistMetadata) Decision {
	if metadata.RequiresPython == "" {
		return Keep
	}
	spec, err := domain.ParseRequiresPython(metadata.RequiresPython)
	if err != nil {
		c.logger.Warn(fmt.Sprintf("reinstalling %s: %v", installed.Name, err))
		return Reinstall
	}
	if c.python != nil && !spec.Allows(c.python) {
		c.debug(installed, "requires python %s, interpreter is %s", spec, c.python)
		return Reinstall
	}
	return Keep
}

// lockedURL returns the locked source as a URL, converting path sources to file URLs.
func (c *Checker) lockedURL(locked domain.LockedPackage) *url.URL {
	if u, ok := locked.Source.URL(); ok {
		return domain.StripDirectScheme(u)
	}
	if _, ok := locked.Source.Path(); ok {
		return domain.FileURL(locked.Source.ResolvePath(c.lockDir))
	}
	return nil
}

func (c *Checker) debug(installed domain.InstalledPackage, format string, args ...any) {
	c.logger.Debug(fmt.Sprintf("reinstall check for %s: ", installed.Name) + fmt.Sprintf(format, args...))
}
