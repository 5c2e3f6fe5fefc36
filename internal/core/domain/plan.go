package domain

// InstallPlan partitions the work needed to match an environment to a lock.
type InstallPlan struct {
	// LinkFromCache holds required packages already available in the local wheel cache.
	LinkFromCache []CachedArtifact
	// Fetch holds required packages that must be downloaded or built.
	Fetch []Distribution
	// Reinstall holds installed distributions to remove before reinstalling.
	Reinstall []InstalledPackage
	// Remove holds installed distributions owned by this tool that the lock no longer requires.
	Remove []InstalledPackage
	// OwnershipMismatch names required packages currently owned by another installer.
	OwnershipMismatch []PackageName
}

// IsEmpty reports whether the plan has no work to do.
func (p *InstallPlan) IsEmpty() bool {
	return len(p.LinkFromCache) == 0 && len(p.Fetch) == 0 && len(p.Reinstall) == 0 && len(p.Remove) == 0
}

// ReinstallNames returns the names of distributions queued for reinstall.
func (p *InstallPlan) ReinstallNames() []string {
	return installedNames(p.Reinstall)
}

// RemoveNames returns the names of distributions queued for removal.
func (p *InstallPlan) RemoveNames() []string {
	return installedNames(p.Remove)
}

// InstallNames returns the names of every distribution that will be installed.
func (p *InstallPlan) InstallNames() []string {
	names := make([]string, 0, len(p.LinkFromCache)+len(p.Fetch))
	for _, a := range p.LinkFromCache {
		names = append(names, a.Name.String())
	}
	for _, d := range p.Fetch {
		names = append(names, d.DistName().String())
	}
	return names
}

func installedNames(pkgs []InstalledPackage) []string {
	names := make([]string, 0, len(pkgs))
	for _, p := range pkgs {
		names = append(names, p.Name.String())
	}
	return names
}
