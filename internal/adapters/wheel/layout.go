// Package wheel maps unpacked wheels onto an environment's install scheme.
package wheel

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.trai.ch/pysync/internal/core/domain"
	"go.trai.ch/zerr"
)

// Scheme holds the install destinations of an environment.
type Scheme struct {
	Purelib string
	Platlib string
	Scripts string
	Include string
	Data    string
}

// SchemeFor returns the scheme reported by interp.
func SchemeFor(interp domain.Interpreter) Scheme {
	platlib := interp.Platlib
	if platlib == "" {
		platlib = interp.Purelib
	}
	return Scheme{
		Purelib: interp.Purelib,
		Platlib: platlib,
		Scripts: interp.Scripts,
		Include: interp.Include,
		Data:    interp.Data,
	}
}

// Placement is one file of an unpacked wheel and where it is installed.
type Placement struct {
	Source string
	Dest   string
	// Script marks files from the scripts data directory, whose shebang may need rewriting.
	Script bool
}

// Layout describes where an unpacked wheel installs.
type Layout struct {
	// DistInfo is the name of the dist-info directory, such as six-1.16.0.dist-info.
	DistInfo string
	// Root is the site directory that receives the dist-info directory.
	Root  string
	Files []Placement
}

// DistInfoDir returns the installed location of the dist-info directory.
func (l *Layout) DistInfoDir() string {
	return filepath.Join(l.Root, l.DistInfo)
}

// manifest files are written by the installer rather than copied.
var manifests = map[string]bool{
	domain.RecordFile:    true,
	"RECORD.jws":         true,
	"RECORD.p7s":         true,
	domain.InstallerFile: true,
	domain.RequestedFile: true,
	domain.DirectURLFile: true,
}

// FindDistInfo returns the name of the single dist-info directory in dir.
func FindDistInfo(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, domain.ErrInvalidWheel.Error()), "path", dir)
	}

	var found []string
	for _, e := range entries {
		if e.IsDir() && strings.HasSuffix(e.Name(), ".dist-info") {
			found = append(found, e.Name())
		}
	}
	if len(found) != 1 {
		return "", zerr.With(zerr.With(domain.ErrInvalidWheel, "path", dir), "dist_info_dirs", len(found))
	}
	return found[0], nil
}

// Plan maps every file of the wheel unpacked in dir onto scheme.
func Plan(dir string, name domain.PackageName, scheme Scheme) (*Layout, error) {
	distInfo, err := FindDistInfo(dir)
	if err != nil {
		return nil, err
	}

	purelib, err := rootIsPurelib(filepath.Join(dir, distInfo, domain.WheelFile))
	if err != nil {
		return nil, err
	}
	root := scheme.Purelib
	if !purelib {
		root = scheme.Platlib
	}

	dataDir := strings.TrimSuffix(distInfo, ".dist-info") + ".data"
	layout := &Layout{DistInfo: distInfo, Root: root}

	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		parts := strings.SplitN(filepath.ToSlash(rel), "/", 3)

		switch {
		case parts[0] == distInfo && len(parts) == 2 && manifests[parts[1]]:
			return nil
		case parts[0] == dataDir:
			placement, ok, err := placeData(parts, path, name, scheme)
			if err != nil || !ok {
				return err
			}
			layout.Files = append(layout.Files, placement)
		default:
			layout.Files = append(layout.Files, Placement{Source: path, Dest: filepath.Join(root, rel)})
		}
		return nil
	})
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrInvalidWheel.Error()), "path", dir)
	}

	sort.Slice(layout.Files, func(i, j int) bool { return layout.Files[i].Dest < layout.Files[j].Dest })
	return layout, nil
}

func placeData(parts []string, source string, name domain.PackageName, scheme Scheme) (Placement, bool, error) {
	if len(parts) < 3 {
		return Placement{}, false, nil
	}
	rest := filepath.FromSlash(parts[2])

	var base string
	script := false
	switch parts[1] {
	case "purelib":
		base = scheme.Purelib
	case "platlib":
		base = scheme.Platlib
	case "scripts":
		base = scheme.Scripts
		script = true
	case "headers":
		base = filepath.Join(scheme.Include, name.String())
	case "data":
		base = scheme.Data
	default:
		return Placement{}, false, zerr.With(domain.ErrInvalidWheel, "data_key", parts[1])
	}
	return Placement{Source: source, Dest: filepath.Join(base, rest), Script: script}, true, nil
}

func rootIsPurelib(wheelFile string) (bool, error) {
	header, err := ReadHeaderFile(wheelFile)
	if err != nil {
		return false, zerr.With(zerr.Wrap(err, domain.ErrInvalidWheel.Error()), "path", wheelFile)
	}
	return !strings.EqualFold(strings.TrimSpace(header.Get("Root-Is-Purelib")), "false"), nil
}
