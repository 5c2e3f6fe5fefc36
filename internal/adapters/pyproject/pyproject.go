// Package pyproject reads the parts of pyproject.toml needed to install a
// local project without running its build backend.
package pyproject

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	toml "github.com/pelletier/go-toml/v2"
	"go.trai.ch/zerr"
)

// FileName is the project description file inside a source tree.
const FileName = "pyproject.toml"

type document struct {
	Project *struct {
		Name       string            `toml:"name"`
		Version    string            `toml:"version"`
		Dynamic    []string          `toml:"dynamic"`
		Scripts    map[string]string `toml:"scripts"`
		GUIScripts map[string]string `toml:"gui-scripts"`
	} `toml:"project"`
	Tool struct {
		Setuptools struct {
			PackageDir map[string]string `toml:"package-dir"`
			Packages   struct {
				Find struct {
					Where []string `toml:"where"`
				} `toml:"find"`
			} `toml:"packages"`
		} `toml:"setuptools"`
		Hatch struct {
			Build struct {
				Targets struct {
					Wheel struct {
						Packages []string `toml:"packages"`
					} `toml:"wheel"`
				} `toml:"targets"`
			} `toml:"build"`
		} `toml:"hatch"`
		Poetry struct {
			Name     string `toml:"name"`
			Version  string `toml:"version"`
			Packages []struct {
				Include string `toml:"include"`
				From    string `toml:"from"`
			} `toml:"packages"`
		} `toml:"poetry"`
	} `toml:"tool"`
}

// Project is a parsed pyproject.toml.
type Project struct {
	// Dir is the directory holding pyproject.toml.
	Dir     string
	Name    string
	Version string
	// Dynamic lists the [project] fields the build backend computes.
	Dynamic []string
	// Scripts and GUIScripts map command names to "module:attr" entry points.
	Scripts    map[string]string
	GUIScripts map[string]string

	doc document
}

// Load reads dir/pyproject.toml. It returns nil and no error when the file
// does not exist.
func Load(dir string) (*Project, error) {
	path := filepath.Join(dir, FileName)
	//nolint:gosec // Path comes from the lockfile
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.With(zerr.Wrap(err, "failed to read pyproject.toml"), "path", path)
	}
	return Parse(dir, data)
}

// Parse decodes the contents of a pyproject.toml located in dir.
func Parse(dir string, data []byte) (*Project, error) {
	var doc document
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to parse pyproject.toml"), "path", filepath.Join(dir, FileName))
	}

	p := &Project{Dir: dir, doc: doc}
	if doc.Project != nil {
		p.Name = doc.Project.Name
		p.Version = doc.Project.Version
		p.Dynamic = doc.Project.Dynamic
		p.Scripts = doc.Project.Scripts
		p.GUIScripts = doc.Project.GUIScripts
	}
	if p.Name == "" {
		p.Name = doc.Tool.Poetry.Name
	}
	if p.Version == "" && !slices.Contains(p.Dynamic, "version") {
		p.Version = doc.Tool.Poetry.Version
	}
	return p, nil
}

// IsDynamic reports whether the installed metadata may change without the
// project files changing, for example a version derived from git tags.
func (p *Project) IsDynamic() bool {
	if len(p.Dynamic) > 0 {
		return true
	}
	return p.Name == "" || p.Version == ""
}

// PackageRoots returns the directories an editable install must add to sys.path.
// Layouts declared by setuptools, hatch and poetry are honored, then a src/
// directory, then the project directory itself.
func (p *Project) PackageRoots() []string {
	var roots []string
	add := func(rel string) {
		root := filepath.Clean(filepath.Join(p.Dir, filepath.FromSlash(rel)))
		if !slices.Contains(roots, root) {
			roots = append(roots, root)
		}
	}

	setuptools := p.doc.Tool.Setuptools
	if dir, ok := setuptools.PackageDir[""]; ok {
		add(dir)
	}
	for _, where := range setuptools.Packages.Find.Where {
		add(where)
	}
	for _, pkg := range p.doc.Tool.Hatch.Build.Targets.Wheel.Packages {
		add(filepath.Dir(filepath.FromSlash(pkg)))
	}
	for _, pkg := range p.doc.Tool.Poetry.Packages {
		add(pkg.From)
	}
	if len(roots) > 0 {
		return roots
	}

	if info, err := os.Stat(filepath.Join(p.Dir, "src")); err == nil && info.IsDir() {
		return []string{filepath.Join(p.Dir, "src")}
	}
	return []string{filepath.Clean(p.Dir)}
}
