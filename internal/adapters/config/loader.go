// Package config discovers and loads pysync.yaml.
package config

import (
	"os"
	"path/filepath"
	"runtime"

	"go.trai.ch/pysync/internal/core/domain"
	"go.trai.ch/pysync/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// DefaultDownloadConcurrency bounds parallel fetches when the config is silent.
const DefaultDownloadConcurrency = 50

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	Logger ports.Logger

	// Host details; replaced in tests.
	goos     string
	goarch   string
	cacheDir func() (string, error)
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{
		Logger:   logger,
		goos:     runtime.GOOS,
		goarch:   runtime.GOARCH,
		cacheDir: os.UserCacheDir,
	}
}

// Load finds pysync.yaml in cwd or one of its parents and resolves it.
// Without a config file the defaults are rooted at cwd.
func (l *Loader) Load(cwd string) (*domain.Config, error) {
	root := cwd
	var file File

	configPath, found := findConfiguration(cwd)
	if found {
		if err := readAndUnmarshalYAML(configPath, &file); err != nil {
			return nil, zerr.With(err, "path", configPath)
		}
		root = filepath.Dir(configPath)
		l.Logger.Debug("using configuration " + configPath)
	}

	return l.resolve(root, &file)
}

func (l *Loader) resolve(root string, file *File) (*domain.Config, error) {
	cfg := &domain.Config{
		Root:        root,
		Lockfile:    resolvePath(root, file.Lockfile, domain.DefaultLockfile),
		Environment: valueOr(file.Environment, domain.DefaultEnvironment),
		Platform:    valueOr(file.Platform, l.platform()),
		Python:      valueOr(file.Python, l.defaultPython()),
		Concurrency: file.Concurrency.Downloads,
		LinkMode:    domain.LinkMode(valueOr(file.LinkMode, string(domain.LinkModeHardlink))),
	}

	cfg.Prefix = resolvePath(root, file.Prefix, filepath.Join(".pixi", "envs", cfg.Environment))

	if cfg.Concurrency == 0 {
		cfg.Concurrency = DefaultDownloadConcurrency
	}
	if cfg.Concurrency < 0 {
		return nil, zerr.With(domain.ErrInvalidConfig, "concurrency.downloads", cfg.Concurrency)
	}

	switch cfg.LinkMode {
	case domain.LinkModeHardlink, domain.LinkModeCopy:
	default:
		return nil, zerr.With(domain.ErrInvalidConfig, "link_mode", file.LinkMode)
	}

	cfg.CacheDir = resolvePath(root, file.CacheDir, l.defaultCacheDir(root))

	cfg.Refresh.All = file.Refresh.All
	for _, raw := range file.Refresh.Packages {
		name, err := domain.NewPackageName(raw)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, domain.ErrInvalidConfig.Error()), "refresh", raw)
		}
		cfg.Refresh.Packages = append(cfg.Refresh.Packages, name)
	}

	return cfg, nil
}

func findConfiguration(cwd string) (string, bool) {
	currentDir := cwd
	for {
		candidate := filepath.Join(currentDir, domain.ConfigFileName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, true
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			return "", false
		}
		currentDir = parentDir
	}
}

func readAndUnmarshalYAML[T any](configPath string, target *T) error {
	// #nosec G304 -- configPath comes from discovery
	configFile, err := os.ReadFile(configPath)
	if err != nil {
		return zerr.Wrap(err, domain.ErrConfigReadFailed.Error())
	}

	if parseErr := yaml.Unmarshal(configFile, target); parseErr != nil {
		return zerr.Wrap(parseErr, domain.ErrConfigParseFailed.Error())
	}

	return nil
}

// platform maps the host to the lockfile's platform naming.
func (l *Loader) platform() string {
	arch := map[string]string{
		"amd64":   "64",
		"386":     "32",
		"arm64":   "aarch64",
		"ppc64le": "ppc64le",
		"s390x":   "s390x",
	}[l.goarch]
	if arch == "" {
		arch = l.goarch
	}

	switch l.goos {
	case "darwin":
		if l.goarch == "arm64" {
			return "osx-arm64"
		}
		return "osx-" + arch
	case "windows":
		if l.goarch == "arm64" {
			return "win-arm64"
		}
		return "win-" + arch
	default:
		return l.goos + "-" + arch
	}
}

func (l *Loader) defaultPython() string {
	if l.goos == "windows" {
		return "python.exe"
	}
	return filepath.Join("bin", "python")
}

func (l *Loader) defaultCacheDir(root string) string {
	if dir := os.Getenv("PYSYNC_CACHE_DIR"); dir != "" {
		return dir
	}
	base, err := l.cacheDir()
	if err != nil || base == "" {
		return filepath.Join(root, ".pysync", "cache")
	}
	return filepath.Join(base, domain.CacheDirName)
}

func resolvePath(root, value, fallback string) string {
	path := valueOr(value, fallback)
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(root, path)
}

func valueOr(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
