package fetcher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.trai.ch/pysync/internal/adapters/pyproject"
	"go.trai.ch/pysync/internal/core/domain"
	"go.trai.ch/zerr"
)

// buildEditable synthesizes a wheel whose only payload is a .pth file that
// puts the project's package roots on sys.path.
func (f *Fetcher) buildEditable(ctx context.Context, env domain.Environment, d domain.DirectoryDist) (domain.CachedArtifact, error) {
	project, err := pyproject.Load(d.Path)
	if err != nil {
		return domain.CachedArtifact{}, zerr.With(zerr.Wrap(err, domain.ErrBuildFailed.Error()), "package", d.Name.String())
	}

	version := d.Version
	roots := []string{filepath.Clean(d.Path)}
	var scripts, guiScripts map[string]string
	if project != nil {
		if version == "" {
			version = project.Version
		}
		if project.IsDynamic() {
			f.logger.Warn(fmt.Sprintf(
				"%s declares dynamic metadata; reinstall it after changing that metadata", d.Name))
		}
		roots = project.PackageRoots()
		scripts, guiScripts = project.Scripts, project.GUIScripts
	}
	if version == "" {
		return domain.CachedArtifact{}, zerr.With(zerr.With(domain.ErrBuildFailed, "package", d.Name.String()),
			"reason", "editable project has no static version")
	}

	stem := d.Name.DistInfoPrefix() + "-" + version
	artifact := domain.CachedArtifact{
		Name:     d.Name,
		Version:  version,
		Filename: stem + "-py3-none-any.whl",
		Editable: true,
		Direct:   &domain.DirectURL{URL: d.URL.String(), DirInfo: &domain.DirInfo{Editable: true}},
	}

	files := map[string]string{
		"__editable__." + stem + ".pth": strings.Join(roots, "\n") + "\n",
		stem + ".dist-info/" + domain.MetadataFile: "Metadata-Version: 2.1\nName: " + d.Name.String() +
			"\nVersion: " + version + "\n",
		stem + ".dist-info/" + domain.WheelFile: "Wheel-Version: 1.0\nGenerator: " + domain.InstallerName +
			"\nRoot-Is-Purelib: true\nTag: py3-none-any\n",
	}
	if entryPoints := renderEntryPoints(scripts, guiScripts); entryPoints != "" {
		files[stem+".dist-info/"+domain.EntryPoints] = entryPoints
	}

	stored, err := f.cache.Store(ctx, env, artifact, func(dir string) error {
		return writeTree(dir, files)
	})
	if err != nil {
		return domain.CachedArtifact{}, zerr.With(err, "package", d.Name.String())
	}
	return stored, nil
}

func renderEntryPoints(scripts, guiScripts map[string]string) string {
	var b strings.Builder
	section := func(name string, entries map[string]string) {
		if len(entries) == 0 {
			return
		}
		keys := make([]string, 0, len(entries))
		for k := range entries {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		b.WriteString("[" + name + "]\n")
		for _, k := range keys {
			b.WriteString(k + " = " + entries[k] + "\n")
		}
	}
	section("console_scripts", scripts)
	section("gui_scripts", guiScripts)
	return b.String()
}

func writeTree(dir string, files map[string]string) error {
	for rel, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), domain.DirPerm); err != nil {
			return zerr.With(zerr.Wrap(err, domain.ErrBuildFailed.Error()), "path", path)
		}
		if err := os.WriteFile(path, []byte(content), domain.FilePerm); err != nil {
			return zerr.With(zerr.Wrap(err, domain.ErrBuildFailed.Error()), "path", path)
		}
	}
	return nil
}
