package sitepackages

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.trai.ch/pysync/internal/adapters/wheel"
	"go.trai.ch/pysync/internal/core/domain"
	"go.trai.ch/pysync/internal/core/ports"
	"go.trai.ch/zerr"
)

// installedFilesList is the legacy per-file manifest written by pip for egg-info installs.
const installedFilesList = "installed-files.txt"

// easyInstallPth lists the project directories of legacy editable installs.
const easyInstallPth = "easy-install.pth"

// Uninstaller implements ports.Uninstaller.
type Uninstaller struct {
	logger ports.Logger
}

// NewUninstaller creates an Uninstaller.
func NewUninstaller(logger ports.Logger) *Uninstaller {
	return &Uninstaller{logger: logger}
}

// removal accumulates what an uninstall deleted.
type removal struct {
	siteDir string
	root    string
	parents map[string]struct{}
	summary domain.UninstallSummary
}

func newRemoval(siteDir string) *removal {
	return &removal{
		siteDir: siteDir,
		root:    environmentRoot(siteDir),
		parents: make(map[string]struct{}),
	}
}

// Uninstall removes pkg using its RECORD, installed-files.txt or top_level.txt manifest.
func (u *Uninstaller) Uninstall(ctx context.Context, pkg domain.InstalledPackage) (domain.UninstallSummary, error) {
	if err := ctx.Err(); err != nil {
		return domain.UninstallSummary{}, err
	}

	rm := newRemoval(filepath.Dir(pkg.Path))

	var err error
	switch {
	case strings.HasSuffix(pkg.Path, distInfoSuffix):
		err = rm.distInfo(pkg.Path)
	case strings.HasSuffix(pkg.Path, eggLinkSuffix):
		err = rm.eggLink(pkg.Path)
	case strings.HasSuffix(pkg.Path, eggInfoSuffix):
		err = rm.eggInfo(pkg.Path)
	default:
		err = zerr.With(zerr.New("unrecognized distribution path"), "path", pkg.Path)
	}
	if err != nil {
		return rm.summary, err
	}

	rm.prune()
	u.logger.Debug(fmt.Sprintf("Uninstalled %s (%d files, %d directories)", pkg.Name, rm.summary.Files, rm.summary.Dirs))
	return rm.summary, nil
}

func (r *removal) distInfo(path string) error {
	entries, err := wheel.ReadRecordFile(filepath.Join(path, domain.RecordFile))
	if errors.Is(err, fs.ErrNotExist) {
		return &domain.ManifestError{Cause: domain.ErrMissingRecord, Path: path}
	}
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to read RECORD"), "path", path)
	}

	for _, entry := range entries {
		target := filepath.FromSlash(entry.Path)
		if !filepath.IsAbs(target) {
			target = filepath.Join(r.siteDir, target)
		}
		if err := r.removeFile(target); err != nil {
			return err
		}
	}
	return r.removeTree(path)
}

func (r *removal) eggInfo(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return zerr.With(err, "path", path)
	}
	if !info.IsDir() {
		return r.removeFile(path)
	}

	if files, err := readLines(filepath.Join(path, installedFilesList)); err == nil {
		for _, rel := range files {
			if err := r.removeFile(filepath.Join(path, filepath.FromSlash(rel))); err != nil {
				return err
			}
		}
		return r.removeTree(path)
	}

	modules, err := readLines(filepath.Join(path, domain.TopLevelFile))
	if errors.Is(err, fs.ErrNotExist) {
		return &domain.ManifestError{Cause: domain.ErrMissingTopLevel, Path: path}
	}
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to read top_level.txt"), "path", path)
	}

	for _, module := range modules {
		if err := r.removeModule(module); err != nil {
			return err
		}
	}
	return r.removeTree(path)
}

func (r *removal) eggLink(path string) error {
	target, targetErr := eggLinkTarget(path)
	if err := r.removeFile(path); err != nil {
		return err
	}
	if targetErr == nil {
		return dropPthEntry(filepath.Join(r.siteDir, easyInstallPth), target)
	}
	return nil
}

// removeModule deletes a top-level package directory or module file.
func (r *removal) removeModule(module string) error {
	module = filepath.FromSlash(module)
	if !filepath.IsLocal(module) {
		return nil
	}
	base := filepath.Join(r.siteDir, module)

	if info, err := os.Stat(base); err == nil && info.IsDir() {
		return r.removeTree(base)
	}

	candidates := []string{base + ".py", base + ".pyc"}
	for _, pattern := range []string{base + ".*.so", base + ".*.pyd", base + ".so", base + ".pyd"} {
		matches, _ := filepath.Glob(pattern)
		candidates = append(candidates, matches...)
	}
	for _, candidate := range candidates {
		if err := r.removeFile(candidate); err != nil {
			return err
		}
	}
	return nil
}

// removeFile deletes a single file and its compiled bytecode. Paths outside
// the environment root and files that are already gone are ignored.
func (r *removal) removeFile(path string) error {
	path = filepath.Clean(path)
	if !r.contains(path) {
		return nil
	}

	err := os.Remove(path)
	switch {
	case err == nil:
		r.summary.Files++
		r.parents[filepath.Dir(path)] = struct{}{}
	case errors.Is(err, fs.ErrNotExist):
	default:
		return zerr.With(zerr.Wrap(err, domain.ErrUninstallFailed.Error()), "path", path)
	}

	if strings.HasSuffix(path, ".py") {
		dir := filepath.Dir(path)
		stem := strings.TrimSuffix(filepath.Base(path), ".py")
		cached, _ := filepath.Glob(filepath.Join(dir, "__pycache__", stem+".*.pyc"))
		for _, pyc := range cached {
			if err := os.Remove(pyc); err == nil {
				r.summary.Files++
				r.parents[filepath.Dir(pyc)] = struct{}{}
			}
		}
	}
	return nil
}

func (r *removal) removeTree(path string) error {
	if !r.contains(path) {
		return nil
	}
	if _, err := os.Lstat(path); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err := os.RemoveAll(path); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrUninstallFailed.Error()), "path", path)
	}
	r.summary.Dirs++
	r.parents[filepath.Dir(path)] = struct{}{}
	return nil
}

// prune removes directories left empty, deepest first, stopping at site-packages and the environment root.
func (r *removal) prune() {
	dirs := make([]string, 0, len(r.parents))
	for dir := range r.parents {
		dirs = append(dirs, dir)
	}
	sort.Slice(dirs, func(i, j int) bool { return len(dirs[i]) > len(dirs[j]) })

	for _, dir := range dirs {
		for dir != r.siteDir && dir != r.root && r.contains(dir) {
			if err := os.Remove(dir); err != nil {
				break
			}
			r.summary.Dirs++
			dir = filepath.Dir(dir)
		}
	}
}

func (r *removal) contains(path string) bool {
	rel, err := filepath.Rel(r.root, path)
	return err == nil && rel != "." && filepath.IsLocal(rel)
}

// environmentRoot returns the prefix above the lib directory holding siteDir.
func environmentRoot(siteDir string) string {
	dir := siteDir
	for range 3 {
		switch strings.ToLower(filepath.Base(dir)) {
		case "lib", "lib64":
			return filepath.Dir(dir)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return filepath.Dir(siteDir)
}

func readLines(path string) ([]string, error) {
	// #nosec G304 -- manifest inside a scanned metadata directory
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			lines = append(lines, line)
		}
	}
	return lines, scanner.Err()
}

// dropPthEntry removes the line naming target from a .pth file.
func dropPthEntry(pth, target string) error {
	// #nosec G304 -- easy-install.pth inside site-packages
	data, err := os.ReadFile(pth)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrUninstallFailed.Error()), "path", pth)
	}

	lines := strings.Split(string(data), "\n")
	kept := lines[:0]
	for _, line := range lines {
		entry := strings.TrimSpace(line)
		if entry != "" && filepath.Clean(entry) == target {
			continue
		}
		kept = append(kept, line)
	}
	if err := os.WriteFile(pth, []byte(strings.Join(kept, "\n")), domain.FilePerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrUninstallFailed.Error()), "path", pth)
	}
	return nil
}
