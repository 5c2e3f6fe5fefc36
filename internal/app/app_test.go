package app_test

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/pysync/internal/app"
	"go.trai.ch/pysync/internal/core/domain"
	"go.trai.ch/pysync/internal/core/ports"
	"go.trai.ch/pysync/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

type prefixMatcher string

func (p prefixMatcher) Matches(x any) bool {
	s, ok := x.(string)
	return ok && strings.HasPrefix(s, string(p))
}

func (p prefixMatcher) String() string {
	return fmt.Sprintf("has prefix %q", string(p))
}

type fixture struct {
	root         string
	cfg          *domain.Config
	loader       *mocks.MockConfigLoader
	lockfile     *mocks.MockLockfileReader
	interpreters *mocks.MockInterpreterResolver
	locker       *mocks.MockEnvironmentLocker
	lock         *mocks.MockEnvironmentLock
	inspector    *mocks.MockEnvironmentInspector
	metadata     *mocks.MockMetadataReader
	uninstaller  *mocks.MockUninstaller
	cache        *mocks.MockWheelCache
	index        *mocks.MockWheelIndex
	fetcher      *mocks.MockDistributionFetcher
	installer    *mocks.MockInstaller
	clobber      *mocks.MockClobberDetector
	logger       *mocks.MockLogger
	app          *app.App
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	root := t.TempDir()
	prefix := filepath.Join(root, ".pixi", "envs", "default")

	f := &fixture{
		root: root,
		cfg: &domain.Config{
			Root:        root,
			Lockfile:    filepath.Join(root, "pixi.lock"),
			Environment: "default",
			Platform:    "linux-64",
			Prefix:      prefix,
			Python:      "bin/python",
			CacheDir:    filepath.Join(root, "cache"),
			Concurrency: 2,
			LinkMode:    domain.LinkModeCopy,
		},
		loader:       mocks.NewMockConfigLoader(ctrl),
		lockfile:     mocks.NewMockLockfileReader(ctrl),
		interpreters: mocks.NewMockInterpreterResolver(ctrl),
		locker:       mocks.NewMockEnvironmentLocker(ctrl),
		lock:         mocks.NewMockEnvironmentLock(ctrl),
		inspector:    mocks.NewMockEnvironmentInspector(ctrl),
		metadata:     mocks.NewMockMetadataReader(ctrl),
		uninstaller:  mocks.NewMockUninstaller(ctrl),
		cache:        mocks.NewMockWheelCache(ctrl),
		index:        mocks.NewMockWheelIndex(ctrl),
		fetcher:      mocks.NewMockDistributionFetcher(ctrl),
		installer:    mocks.NewMockInstaller(ctrl),
		clobber:      mocks.NewMockClobberDetector(ctrl),
		logger:       mocks.NewMockLogger(ctrl),
	}

	tracer := mocks.NewMockTracer(ctrl)
	span := mocks.NewMockSpan(ctrl)
	tracer.EXPECT().Start(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ string, _ ...ports.SpanOption) (context.Context, ports.Span) {
			return ctx, span
		}).AnyTimes()
	tracer.EXPECT().EmitPlan(gomock.Any(), gomock.Any()).AnyTimes()
	span.EXPECT().End().AnyTimes()
	span.EXPECT().RecordError(gomock.Any()).AnyTimes()
	span.EXPECT().SetAttribute(gomock.Any(), gomock.Any()).AnyTimes()

	f.app = app.New(f.loader, f.lockfile, app.Collaborators{
		Interpreters: f.interpreters,
		Locker:       f.locker,
		Inspector:    f.inspector,
		Metadata:     f.metadata,
		Uninstaller:  f.uninstaller,
		Cache:        f.cache,
		Fetcher:      f.fetcher,
		Installer:    f.installer,
		Clobber:      f.clobber,
	}, tracer, f.logger)
	return f
}

func (f *fixture) quietLogs() {
	f.logger.EXPECT().Debug(gomock.Any()).AnyTimes()
	f.logger.EXPECT().Info(gomock.Any()).AnyTimes()
	f.logger.EXPECT().Warn(gomock.Any()).AnyTimes()
}

// expectPlanning sets up everything up to and including plan construction.
func (f *fixture) expectPlanning(locked []domain.LockedPackage, installed []domain.InstalledPackage) {
	f.loader.EXPECT().Load(f.root).Return(f.cfg, nil)
	f.lockfile.EXPECT().Read(f.cfg.Lockfile, "default", "linux-64").Return(locked, nil)
	f.interpreters.EXPECT().Resolve(gomock.Any(), f.cfg.Prefix, "bin/python").Return(domain.Interpreter{
		Executable: filepath.Join(f.cfg.Prefix, "bin", "python"),
		Version:    "3.12.1",
		Prefix:     f.cfg.Prefix,
		Purelib:    filepath.Join(f.cfg.Prefix, "lib", "python3.12", "site-packages"),
	}, nil)
	f.locker.EXPECT().Lock(gomock.Any(), f.cfg.Prefix).Return(f.lock, nil)
	f.lock.EXPECT().Release().Return(nil)
	f.inspector.EXPECT().Snapshot(gomock.Any(), gomock.Any()).Return(installed, nil)
	f.cache.EXPECT().Index(gomock.Any(), gomock.Any()).Return(f.index, nil)
	f.metadata.EXPECT().ReadMetadata(gomock.Any()).Return(domain.DistMetadata{}, nil).AnyTimes()
}

func registry(t *testing.T, name, version string) domain.LockedPackage {
	t.Helper()
	u, err := url.Parse("https://files.example.com/" + name + "-" + version + "-py3-none-any.whl")
	require.NoError(t, err)
	return domain.LockedPackage{Name: domain.MustPackageName(name), Version: version, Source: domain.NewURLSource(u)}
}

func installedBy(root, installer, name, version string) domain.InstalledPackage {
	return domain.InstalledPackage{
		Name:       domain.MustPackageName(name),
		Version:    version,
		Installer:  installer,
		Provenance: domain.RegistryProvenance{},
		Path:       filepath.Join(root, "lib", "python3.12", "site-packages", name+"-"+version+".dist-info"),
	}
}

func TestApp_Sync_NothingToDo(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	locked := []domain.LockedPackage{registry(t, "attrs", "23.1.0")}
	installed := []domain.InstalledPackage{installedBy(f.root, domain.InstallerName, "attrs", "23.1.0")}
	f.expectPlanning(locked, installed)
	f.logger.EXPECT().Info(prefixMatcher("Nothing to do - Audited 1 distribution(s) in ")).Times(1)
	f.quietLogs()

	report, err := f.app.Sync(context.Background(), app.SyncOptions{WorkDir: f.root})
	require.NoError(t, err)
	assert.True(t, report.NothingToDo())
	assert.Equal(t, 1, report.Audited)
}

func TestApp_Sync_AppliesPlanInOrder(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	locked := []domain.LockedPackage{
		registry(t, "attrs", "23.1.0"),
		registry(t, "numpy", "1.26.0"),
		registry(t, "six", "1.16.0"),
	}
	installed := []domain.InstalledPackage{
		installedBy(f.root, "conda", "numpy", "1.26.0"),
		installedBy(f.root, "conda", "six", "1.16.0"),
		installedBy(f.root, domain.InstallerName, "old", "0.1"),
	}
	f.expectPlanning(locked, installed)
	f.quietLogs()

	cachedSix := domain.CachedArtifact{Name: "six", Version: "1.16.0", Path: filepath.Join(f.root, "cache", "six")}
	f.index.EXPECT().Get(domain.PackageName("attrs")).Return(nil).AnyTimes()
	f.index.EXPECT().Get(domain.PackageName("numpy")).Return(nil).AnyTimes()
	f.index.EXPECT().Get(domain.PackageName("six")).Return([]domain.CachedArtifact{cachedSix}).AnyTimes()

	fetched := map[domain.PackageName]domain.CachedArtifact{
		"attrs": {Name: "attrs", Version: "23.1.0"},
		"numpy": {Name: "numpy", Version: "1.26.0"},
	}
	fetch := f.fetcher.EXPECT().Fetch(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ domain.Environment, d domain.Distribution) (domain.CachedArtifact, error) {
			return fetched[d.DistName()], nil
		}).Times(2)

	var uninstalled []string
	uninstall := f.uninstaller.EXPECT().Uninstall(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, pkg domain.InstalledPackage) (domain.UninstallSummary, error) {
			uninstalled = append(uninstalled, pkg.Name.String())
			return domain.UninstallSummary{Files: 3, Dirs: 1}, nil
		}).Times(3).After(fetch)

	var installedArtifacts []domain.CachedArtifact
	install := f.installer.EXPECT().Install(gomock.Any(), gomock.Any(), gomock.Any(), domain.InstallerName).
		DoAndReturn(func(_ context.Context, _ domain.Environment, artifacts []domain.CachedArtifact, _ string) error {
			installedArtifacts = artifacts
			return nil
		}).After(uninstall)

	f.clobber.EXPECT().Detect(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]domain.PackageName{"numpy"}, nil).After(install)

	report, err := f.app.Sync(context.Background(), app.SyncOptions{WorkDir: f.root})
	require.NoError(t, err)

	assert.Equal(t, []string{"old", "numpy", "six"}, uninstalled, "removals run before reinstalls")
	require.Len(t, installedArtifacts, 3)
	assert.ElementsMatch(t, []string{"attrs", "numpy", "six"}, []string{
		installedArtifacts[0].Name.String(), installedArtifacts[1].Name.String(), installedArtifacts[2].Name.String(),
	})
	assert.Equal(t, []string{"numpy"}, report.Clobbered)
	assert.Equal(t, []string{"six"}, report.OwnershipMismatch, "clobbered names are not reported twice")
	assert.Equal(t, []string{"six"}, report.Linked)
	assert.ElementsMatch(t, []string{"numpy", "attrs"}, report.Fetched)
	assert.Equal(t, []string{"old"}, report.Removed)
}

func TestApp_Sync_FetchFailureLeavesEnvironmentAlone(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	locked := []domain.LockedPackage{registry(t, "attrs", "23.1.0")}
	installed := []domain.InstalledPackage{installedBy(f.root, domain.InstallerName, "old", "0.1")}
	f.expectPlanning(locked, installed)
	f.quietLogs()
	f.index.EXPECT().Get(gomock.Any()).Return(nil).AnyTimes()
	f.fetcher.EXPECT().Fetch(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(domain.CachedArtifact{}, domain.ErrDownloadFailed)

	_, err := f.app.Sync(context.Background(), app.SyncOptions{WorkDir: f.root})
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrFetchFailed.Error())
}

func TestApp_Sync_MissingManifestFallsBackToRemoval(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	stale := installedBy(f.root, domain.InstallerName, "old", "0.1")
	require.NoError(t, os.MkdirAll(stale.Path, 0o755))
	outside := installedBy(f.root, domain.InstallerName, "stray", "0.1")
	outside.Path = filepath.Join(f.root, "elsewhere", "stray-0.1.dist-info")
	require.NoError(t, os.MkdirAll(outside.Path, 0o755))

	f.expectPlanning(nil, []domain.InstalledPackage{stale, outside})
	f.quietLogs()
	f.uninstaller.EXPECT().Uninstall(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, pkg domain.InstalledPackage) (domain.UninstallSummary, error) {
			return domain.UninstallSummary{}, &domain.ManifestError{Cause: domain.ErrMissingRecord, Path: pkg.Path}
		}).Times(2)

	report, err := f.app.Sync(context.Background(), app.SyncOptions{WorkDir: f.root})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"old", "stray"}, report.Removed)

	assert.NoDirExists(t, stale.Path)
	assert.DirExists(t, outside.Path, "directories outside site-packages are never force removed")
}

func TestApp_Sync_UninstallErrorIsFatal(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	f.expectPlanning([]domain.LockedPackage{registry(t, "attrs", "23.1.0")},
		[]domain.InstalledPackage{installedBy(f.root, domain.InstallerName, "old", "0.1")})
	f.quietLogs()
	f.index.EXPECT().Get(gomock.Any()).Return(nil).AnyTimes()
	f.fetcher.EXPECT().Fetch(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(domain.CachedArtifact{Name: "attrs", Version: "23.1.0"}, nil)
	f.uninstaller.EXPECT().Uninstall(gomock.Any(), gomock.Any()).
		Return(domain.UninstallSummary{}, errors.New("permission denied"))

	_, err := f.app.Sync(context.Background(), app.SyncOptions{WorkDir: f.root})
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrUninstallFailed.Error())
	assert.ErrorContains(t, err, "permission denied")
}

func TestApp_Plan_DoesNotMutate(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	f.expectPlanning([]domain.LockedPackage{registry(t, "attrs", "23.1.0")},
		[]domain.InstalledPackage{installedBy(f.root, domain.InstallerName, "old", "0.1")})
	f.logger.EXPECT().Info("resolved install plan: local=0, remote=1, reinstalls=0, extraneous=1").Times(1)
	f.quietLogs()
	f.index.EXPECT().Get(gomock.Any()).Return(nil).AnyTimes()

	report, err := f.app.Plan(context.Background(), app.SyncOptions{WorkDir: f.root})
	require.NoError(t, err)
	assert.True(t, report.DryRun)
	assert.Equal(t, []string{"attrs"}, report.Fetched)
	assert.Equal(t, []string{"old"}, report.Removed)
}

func TestApp_Sync_ResolutionErrorAbortsPlanning(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	bad, err := url.Parse("https://files.example.com/attrs-23.1.0.exe")
	require.NoError(t, err)
	f.expectPlanning([]domain.LockedPackage{{Name: "attrs", Version: "23.1.0", Source: domain.NewURLSource(bad)}}, nil)
	f.quietLogs()
	f.index.EXPECT().Get(gomock.Any()).Return(nil).AnyTimes()

	_, err = f.app.Sync(context.Background(), app.SyncOptions{WorkDir: f.root})
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrPlanFailed.Error())
	assert.True(t, domain.IsResolutionError(err))
}

func TestApp_Sync_InterpreterFailureSkipsLock(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	f.quietLogs()

	f.loader.EXPECT().Load(f.root).Return(f.cfg, nil)
	f.lockfile.EXPECT().Read(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
	f.interpreters.EXPECT().Resolve(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(domain.Interpreter{}, domain.ErrInterpreterNotFound)

	_, err := f.app.Sync(context.Background(), app.SyncOptions{WorkDir: f.root})
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrInterpreterResolution.Error())
}

func TestApp_Sync_LockFailure(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	f.quietLogs()

	f.loader.EXPECT().Load(f.root).Return(f.cfg, nil)
	f.lockfile.EXPECT().Read(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
	f.interpreters.EXPECT().Resolve(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(domain.Interpreter{Version: "3.12.1"}, nil)
	f.locker.EXPECT().Lock(gomock.Any(), f.cfg.Prefix).Return(nil, context.DeadlineExceeded)

	_, err := f.app.Sync(context.Background(), app.SyncOptions{WorkDir: f.root})
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrEnvironmentLock.Error())
}

func TestApp_Sync_Overrides(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		opts    app.SyncOptions
		wantErr error
	}{
		{name: "zero concurrency", opts: app.SyncOptions{Concurrency: -1}, wantErr: domain.ErrInvalidConfig},
		{name: "bad link mode", opts: app.SyncOptions{LinkMode: "symlink"}, wantErr: domain.ErrInvalidConfig},
		{name: "bad refresh name", opts: app.SyncOptions{RefreshPackages: []string{"not valid"}}, wantErr: domain.ErrInvalidPackageName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			f := newFixture(t)
			f.quietLogs()
			f.loader.EXPECT().Load(f.root).Return(f.cfg, nil)

			opts := tt.opts
			opts.WorkDir = f.root
			_, err := f.app.Sync(context.Background(), opts)
			assert.ErrorContains(t, err, tt.wantErr.Error())
		})
	}
}
