// Package reconciler decides how an environment must change to match a lock.
package reconciler

import (
	"go.trai.ch/pysync/internal/core/domain"
	"go.trai.ch/pysync/internal/core/ports"
)

// Validator decides whether an installed distribution satisfies its locked counterpart.
type Validator interface {
	Validate(installed domain.InstalledPackage, locked domain.LockedPackage) Decision
}

// Planner builds install plans from an environment snapshot and a lock.
type Planner struct {
	validator Validator
	index     ports.WheelIndex
	refresh   ports.RefreshPolicy
	lockDir   string
}

// NewPlanner creates a Planner. Relative path sources are resolved against lockDir.
func NewPlanner(validator Validator, index ports.WheelIndex, refresh ports.RefreshPolicy, lockDir string) *Planner {
	return &Planner{
		validator: validator,
		index:     index,
		refresh:   refresh,
		lockDir:   lockDir,
	}
}

// Plan compares installed against required. Entries keep the order of their inputs.
// Only resolution failures are returned; validation problems become reinstalls.
func (p *Planner) Plan(installed []domain.InstalledPackage, required []domain.LockedPackage) (*domain.InstallPlan, error) {
	order, byName := indexRequired(required)
	plan := &domain.InstallPlan{}
	reinstalling := make(map[string]struct{})
	mismatched := make(map[domain.PackageName]struct{})
	handled := make(map[domain.PackageName]struct{})

	queueReinstall := func(dist domain.InstalledPackage) {
		key := dist.Path
		if key == "" {
			key = dist.Name.String() + "==" + dist.Version
		}
		if _, ok := reinstalling[key]; ok {
			return
		}
		reinstalling[key] = struct{}{}
		plan.Reinstall = append(plan.Reinstall, dist)
	}

	for _, dist := range installed {
		locked, isRequired := byName[dist.Name]
		owned := dist.OwnedBy(domain.InstallerName)

		if !isRequired {
			if owned {
				plan.Remove = append(plan.Remove, dist)
			}
			continue
		}

		replace := false
		if !owned {
			if _, ok := mismatched[dist.Name]; !ok {
				mismatched[dist.Name] = struct{}{}
				plan.OwnershipMismatch = append(plan.OwnershipMismatch, dist.Name)
			}
			queueReinstall(dist)
			replace = true
		}

		// Only the first copy of a name is validated and re-provided. A foreign
		// duplicate after a kept owned copy is uninstalled without replacement.
		if _, ok := handled[dist.Name]; ok {
			continue
		}
		handled[dist.Name] = struct{}{}

		if owned {
			if p.validator.Validate(dist, locked) == Keep {
				continue
			}
			queueReinstall(dist)
			replace = true
		}
		if replace {
			if err := p.resolve(plan, locked); err != nil {
				return nil, err
			}
		}
	}

	for _, name := range order {
		if _, ok := handled[name]; ok {
			continue
		}
		if err := p.resolve(plan, byName[name]); err != nil {
			return nil, err
		}
	}
	return plan, nil
}

// resolve places a required package into LinkFromCache or Fetch.
func (p *Planner) resolve(plan *domain.InstallPlan, locked domain.LockedPackage) error {
	if !p.refresh.MustRevalidate(locked.Name) {
		if artifact, ok := p.cached(locked); ok {
			plan.LinkFromCache = append(plan.LinkFromCache, artifact)
			return nil
		}
	}
	dist, err := Locate(locked, p.lockDir)
	if err != nil {
		return err
	}
	plan.Fetch = append(plan.Fetch, dist)
	return nil
}

// cached looks up a registry wheel. Direct and path sources always go through Fetch.
func (p *Planner) cached(locked domain.LockedPackage) (domain.CachedArtifact, bool) {
	if p.index == nil {
		return domain.CachedArtifact{}, false
	}
	u, ok := locked.Source.URL()
	if !ok || domain.IsDirectScheme(u.Scheme) {
		return domain.CachedArtifact{}, false
	}
	for _, artifact := range p.index.Get(locked.Name) {
		if domain.VersionsEqual(artifact.Version, locked.Version) {
			return artifact, true
		}
	}
	return domain.CachedArtifact{}, false
}

// indexRequired maps required packages by name, keeping first-seen order.
// A later duplicate replaces the earlier record.
func indexRequired(required []domain.LockedPackage) ([]domain.PackageName, map[domain.PackageName]domain.LockedPackage) {
	order := make([]domain.PackageName, 0, len(required))
	byName := make(map[domain.PackageName]domain.LockedPackage, len(required))
	for _, pkg := range required {
		if _, ok := byName[pkg.Name]; !ok {
			order = append(order, pkg.Name)
		}
		byName[pkg.Name] = pkg
	}
	return order, byName
}
