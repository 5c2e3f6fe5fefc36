// Package app implements the application layer for pysync.
package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"go.trai.ch/pysync/internal/core/domain"
	"go.trai.ch/pysync/internal/core/ports"
	"go.trai.ch/pysync/internal/engine/reconciler"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// Collaborators groups the adapters that observe and mutate an environment.
type Collaborators struct {
	Interpreters ports.InterpreterResolver
	Locker       ports.EnvironmentLocker
	Inspector    ports.EnvironmentInspector
	Metadata     ports.MetadataReader
	Uninstaller  ports.Uninstaller
	Cache        ports.WheelCache
	Fetcher      ports.DistributionFetcher
	Installer    ports.Installer
	Clobber      ports.ClobberDetector
}

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	lockfile     ports.LockfileReader
	env          Collaborators
	tracer       ports.Tracer
	logger       ports.Logger
	now          func() time.Time
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	lockfile ports.LockfileReader,
	env Collaborators,
	tracer ports.Tracer,
	log ports.Logger,
) *App {
	return &App{
		configLoader: loader,
		lockfile:     lockfile,
		env:          env,
		tracer:       tracer,
		logger:       log,
		now:          time.Now,
	}
}

// SyncOptions overrides values from the config file. Zero values keep the configured setting.
type SyncOptions struct {
	WorkDir         string
	Lockfile        string
	Environment     string
	Platform        string
	Prefix          string
	Python          string
	CacheDir        string
	Concurrency     int
	LinkMode        string
	Refresh         bool
	RefreshPackages []string
}

// Sync makes the environment match the lockfile.
func (a *App) Sync(ctx context.Context, opts SyncOptions) (*Report, error) {
	return a.reconcile(ctx, opts, false)
}

// Plan computes what Sync would do without changing the environment.
func (a *App) Plan(ctx context.Context, opts SyncOptions) (*Report, error) {
	return a.reconcile(ctx, opts, true)
}

//nolint:cyclop // orchestration function
func (a *App) reconcile(ctx context.Context, opts SyncOptions, dryRun bool) (report *Report, err error) {
	start := a.now()
	ctx, span := a.tracer.Start(ctx, "sync", ports.WithAttribute("dry_run", dryRun))
	defer func() {
		if err != nil {
			span.RecordError(err)
		}
		span.End()
	}()

	// 1. Load configuration and the lock
	cfg, err := a.loadConfig(opts)
	if err != nil {
		return nil, err
	}
	locked, err := a.lockfile.Read(cfg.Lockfile, cfg.Environment, cfg.Platform)
	if err != nil {
		return nil, zerr.With(err, "lockfile", cfg.Lockfile)
	}

	// 2. Resolve the interpreter
	interpreter, python, err := a.resolveInterpreter(ctx, cfg)
	if err != nil {
		return nil, err
	}
	env := domain.Environment{
		Prefix:      cfg.Prefix,
		Interpreter: interpreter,
		CacheDir:    cfg.CacheDir,
		LockDir:     filepath.Dir(cfg.Lockfile),
		LinkMode:    cfg.LinkMode,
	}

	// 3. Hold the environment for the rest of the run
	lock, err := a.lock(ctx, cfg.Prefix)
	if err != nil {
		return nil, err
	}
	defer func() {
		if errRelease := lock.Release(); errRelease != nil {
			a.logger.Warn(fmt.Sprintf("failed to release environment lock: %v", errRelease))
		}
	}()

	// 4. Snapshot and plan
	plan, err := a.plan(ctx, env, python, cfg.Refresh, locked)
	if err != nil {
		return nil, err
	}
	report = newReport(plan, len(locked), dryRun)

	if plan.IsEmpty() {
		report.Elapsed = a.now().Sub(start)
		a.logger.Info(fmt.Sprintf("Nothing to do - Audited %d distribution(s) in %s",
			len(locked), FormatElapsed(report.Elapsed)))
		return report, nil
	}
	a.logPlan(plan)
	a.tracer.EmitPlan(ctx, plan.InstallNames())
	if dryRun {
		report.Elapsed = a.now().Sub(start)
		return report, nil
	}

	// 5. Fetch everything before touching the environment
	fetched, err := a.fetchAll(ctx, env, plan.Fetch, cfg.Concurrency)
	if err != nil {
		return nil, err
	}

	// 6. Remove extraneous and replaced distributions
	if err := a.uninstallAll(ctx, slices.Concat(plan.Remove, plan.Reinstall)); err != nil {
		return nil, err
	}

	// 7. Install
	artifacts := slices.Concat(fetched, plan.LinkFromCache)
	if err := a.install(ctx, env, artifacts); err != nil {
		return nil, err
	}

	// 8. Advisory notices
	report.Clobbered = a.detectClobbers(ctx, env, artifacts)
	report.OwnershipMismatch = a.reportMismatch(plan.OwnershipMismatch, report.Clobbered)
	report.Elapsed = a.now().Sub(start)
	return report, nil
}

func (a *App) resolveInterpreter(ctx context.Context, cfg *domain.Config) (domain.Interpreter, *domain.PythonVersion, error) {
	ctx, span := a.tracer.Start(ctx, "resolve-interpreter", ports.WithAttribute("prefix", cfg.Prefix))
	defer span.End()

	interpreter, err := a.env.Interpreters.Resolve(ctx, cfg.Prefix, cfg.Python)
	if err != nil {
		span.RecordError(err)
		return domain.Interpreter{}, nil, zerr.With(zerr.Wrap(err, domain.ErrInterpreterResolution.Error()), "prefix", cfg.Prefix)
	}
	python, err := domain.ParsePythonVersion(interpreter.Version)
	if err != nil {
		span.RecordError(err)
		return domain.Interpreter{}, nil, zerr.With(zerr.Wrap(err, domain.ErrInterpreterResolution.Error()),
			"executable", interpreter.Executable)
	}
	span.SetAttribute("version", interpreter.Version)
	return interpreter, python, nil
}

func (a *App) lock(ctx context.Context, prefix string) (ports.EnvironmentLock, error) {
	ctx, span := a.tracer.Start(ctx, "lock", ports.WithAttribute("prefix", prefix))
	defer span.End()

	lock, err := a.env.Locker.Lock(ctx, prefix)
	if err != nil {
		span.RecordError(err)
		return nil, zerr.With(zerr.Wrap(err, domain.ErrEnvironmentLock.Error()), "prefix", prefix)
	}
	return lock, nil
}

func (a *App) snapshot(ctx context.Context, env domain.Environment) ([]domain.InstalledPackage, error) {
	ctx, span := a.tracer.Start(ctx, "snapshot")
	defer span.End()

	installed, err := a.env.Inspector.Snapshot(ctx, env)
	if err != nil {
		span.RecordError(err)
		return nil, zerr.With(zerr.Wrap(err, domain.ErrSnapshotFailed.Error()), "prefix", env.Prefix)
	}
	span.SetAttribute("installed", len(installed))
	return installed, nil
}

func (a *App) plan(
	ctx context.Context,
	env domain.Environment,
	python *domain.PythonVersion,
	refresh domain.RefreshPolicy,
	locked []domain.LockedPackage,
) (*domain.InstallPlan, error) {
	installed, err := a.snapshot(ctx, env)
	if err != nil {
		return nil, err
	}

	ctx, span := a.tracer.Start(ctx, "plan")
	defer span.End()

	index, err := a.env.Cache.Index(ctx, env)
	if err != nil {
		span.RecordError(err)
		return nil, zerr.With(zerr.Wrap(err, domain.ErrCacheFailed.Error()), "cache_dir", env.CacheDir)
	}

	checker := reconciler.NewChecker(a.env.Metadata, a.logger, env.LockDir, python)
	plan, err := reconciler.NewPlanner(checker, index, refresh, env.LockDir).Plan(installed, locked)
	if err != nil {
		span.RecordError(err)
		return nil, zerr.Wrap(err, domain.ErrPlanFailed.Error())
	}
	span.SetAttribute("installed", len(installed))
	span.SetAttribute("required", len(locked))
	return plan, nil
}

func (a *App) logPlan(plan *domain.InstallPlan) {
	a.logger.Info(fmt.Sprintf("resolved install plan: local=%d, remote=%d, reinstalls=%d, extraneous=%d",
		len(plan.LinkFromCache), len(plan.Fetch), len(plan.Reinstall), len(plan.Remove)))
	if names := plan.InstallNames(); len(names) > 0 {
		a.logger.Debug("Install: " + strings.Join(names, ", "))
	}
	if names := plan.ReinstallNames(); len(names) > 0 {
		a.logger.Debug("Re-install: " + strings.Join(names, ", "))
	}
	if names := plan.RemoveNames(); len(names) > 0 {
		a.logger.Debug("Remove: " + strings.Join(names, ", "))
	}
}

// fetchAll prepares every distribution with at most limit in flight.
// The first failure cancels the rest.
func (a *App) fetchAll(
	ctx context.Context,
	env domain.Environment,
	dists []domain.Distribution,
	limit int,
) ([]domain.CachedArtifact, error) {
	if len(dists) == 0 {
		return nil, nil
	}
	start := a.now()
	ctx, span := a.tracer.Start(ctx, "fetch", ports.WithAttribute("count", len(dists)))
	defer span.End()

	results := make([]domain.CachedArtifact, len(dists))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(limit, 1))
	for i, dist := range dists {
		g.Go(func() error {
			ctx, child := a.tracer.Start(ctx, "fetch-distribution", ports.WithAttribute("package", dist.String()))
			defer child.End()

			artifact, err := a.env.Fetcher.Fetch(ctx, env, dist)
			if err != nil {
				child.RecordError(err)
				return zerr.With(zerr.Wrap(err, domain.ErrFetchFailed.Error()), "package", dist.String())
			}
			results[i] = artifact
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		span.RecordError(err)
		return nil, err
	}

	a.logger.Info(fmt.Sprintf("Prepared %d package(s) in %s", len(dists), FormatElapsed(a.now().Sub(start))))
	return results, nil
}

func (a *App) uninstallAll(ctx context.Context, pkgs []domain.InstalledPackage) error {
	if len(pkgs) == 0 {
		return nil
	}
	start := a.now()
	ctx, span := a.tracer.Start(ctx, "uninstall", ports.WithAttribute("count", len(pkgs)))
	defer span.End()

	for _, pkg := range pkgs {
		summary, err := a.env.Uninstaller.Uninstall(ctx, pkg)
		if err == nil {
			a.logger.Debug(fmt.Sprintf("uninstalled %s (%d files, %d directories)", pkg.Name, summary.Files, summary.Dirs))
			continue
		}
		if !domain.IsMissingManifest(err) {
			span.RecordError(err)
			return zerr.With(zerr.Wrap(err, domain.ErrUninstallFailed.Error()), "package", pkg.Name.String())
		}
		if err := a.removeInstallDir(pkg); err != nil {
			span.RecordError(err)
			return err
		}
	}

	a.logger.Info(fmt.Sprintf("Uninstalled %d package(s) in %s", len(pkgs), FormatElapsed(a.now().Sub(start))))
	return nil
}

// removeInstallDir deletes the metadata directory of a distribution whose
// manifest is missing, as long as it lives below site-packages.
func (a *App) removeInstallDir(pkg domain.InstalledPackage) error {
	if !domain.HasEnvironmentRootMarker(pkg.Path) {
		a.logger.Warn(fmt.Sprintf("not removing %s: %s is outside %s", pkg.Name, pkg.Path, domain.EnvironmentRootMarker))
		return nil
	}
	a.logger.Debug(fmt.Sprintf("uninstall manifest missing for %s, removing %s", pkg.Name, pkg.Path))
	if err := os.RemoveAll(pkg.Path); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrUninstallFailed.Error()), "path", pkg.Path)
	}
	return nil
}

func (a *App) install(ctx context.Context, env domain.Environment, artifacts []domain.CachedArtifact) error {
	if len(artifacts) == 0 {
		return nil
	}
	start := a.now()
	ctx, span := a.tracer.Start(ctx, "install", ports.WithAttribute("count", len(artifacts)))
	defer span.End()

	if err := a.env.Installer.Install(ctx, env, artifacts, domain.InstallerName); err != nil {
		span.RecordError(err)
		return zerr.With(zerr.Wrap(err, domain.ErrInstallFailed.Error()), "prefix", env.Prefix)
	}
	a.logger.Info(fmt.Sprintf("Installed %d package(s) in %s", len(artifacts), FormatElapsed(a.now().Sub(start))))
	return nil
}

// detectClobbers warns about conda packages overwritten by the install.
// Detection failures only reach the debug log.
func (a *App) detectClobbers(ctx context.Context, env domain.Environment, artifacts []domain.CachedArtifact) []string {
	if len(artifacts) == 0 {
		return nil
	}
	ctx, span := a.tracer.Start(ctx, "clobber-check", ports.WithAttribute("count", len(artifacts)))
	defer span.End()

	clobbered, err := a.env.Clobber.Detect(ctx, env, artifacts)
	if err != nil {
		a.logger.Debug(fmt.Sprintf("skipping clobber detection: %v", err))
		return nil
	}
	if len(clobbered) == 0 {
		return nil
	}
	names := make([]string, 0, len(clobbered))
	for _, name := range clobbered {
		names = append(names, name.String())
	}
	a.logger.Warn("These conda packages were overwritten by python packages: " + strings.Join(names, ", "))
	return names
}

// reportMismatch notes packages taken over from another installer, leaving out
// names already covered by the clobber warning.
func (a *App) reportMismatch(mismatched []domain.PackageName, clobbered []string) []string {
	var names []string
	for _, name := range mismatched {
		if !slices.Contains(clobbered, name.String()) {
			names = append(names, name.String())
		}
	}
	if len(names) > 0 {
		a.logger.Info(fmt.Sprintf(
			"These python packages were installed by a different installer and are now managed by %s: %s",
			domain.InstallerName, strings.Join(names, ", ")))
	}
	return names
}
