// Package installer places unpacked wheels into an environment.
package installer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/pysync/internal/adapters/wheel"
	"go.trai.ch/pysync/internal/core/domain"
	"go.trai.ch/pysync/internal/core/ports"
	"go.trai.ch/zerr"
)

// Installer implements ports.Installer.
type Installer struct {
	logger ports.Logger
}

// New creates an Installer.
func New(logger ports.Logger) *Installer {
	return &Installer{logger: logger}
}

// Install places every artifact into env in order. The first failure stops the run.
func (i *Installer) Install(ctx context.Context, env domain.Environment, artifacts []domain.CachedArtifact, installer string) error {
	scheme := wheel.SchemeFor(env.Interpreter)
	for _, artifact := range artifacts {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := i.installOne(env, scheme, artifact, installer); err != nil {
			return zerr.With(err, "package", artifact.Name.String())
		}
	}
	return nil
}

func (i *Installer) installOne(env domain.Environment, scheme wheel.Scheme, artifact domain.CachedArtifact, installer string) error {
	layout, err := wheel.Plan(artifact.Path, artifact.Name, scheme)
	if err != nil {
		return err
	}
	distInfo := layout.DistInfoDir()
	if err := os.RemoveAll(distInfo); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to clear dist-info directory"), "path", distInfo)
	}

	python := env.Interpreter.Executable
	rec := &record{root: layout.Root}

	for _, placement := range layout.Files {
		switch {
		case placement.Script:
			err = writeScript(placement, python)
		case filepath.Dir(placement.Dest) == distInfo:
			// Metadata is copied so its modification time records the install.
			err = place(placement.Source, placement.Dest, domain.LinkModeCopy)
		default:
			err = place(placement.Source, placement.Dest, env.LinkMode)
		}
		if err != nil {
			return err
		}
		if err := rec.add(placement.Dest); err != nil {
			return err
		}
	}

	entryPoints, err := wheel.ReadEntryPoints(filepath.Join(artifact.Path, layout.DistInfo, domain.EntryPoints))
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrInvalidWheel.Error()), "path", artifact.Path)
	}
	for _, ep := range entryPoints {
		dest := filepath.Join(scheme.Scripts, ep.Name)
		if err := writeFile(dest, wheel.ScriptSource(python, ep), domain.ExecPerm); err != nil {
			return err
		}
		if err := rec.add(dest); err != nil {
			return err
		}
	}

	manifests := map[string][]byte{
		domain.InstallerFile: []byte(installer + "\n"),
		domain.RequestedFile: nil,
	}
	if artifact.Direct != nil {
		data, err := artifact.Direct.Marshal()
		if err != nil {
			return zerr.Wrap(err, "failed to encode direct_url.json")
		}
		manifests[domain.DirectURLFile] = data
	}
	for _, name := range []string{domain.InstallerFile, domain.RequestedFile, domain.DirectURLFile} {
		content, ok := manifests[name]
		if !ok {
			continue
		}
		dest := filepath.Join(distInfo, name)
		if err := writeFile(dest, content, domain.FilePerm); err != nil {
			return err
		}
		if err := rec.add(dest); err != nil {
			return err
		}
	}

	if err := rec.write(filepath.Join(distInfo, domain.RecordFile)); err != nil {
		return err
	}
	i.logger.Debug(fmt.Sprintf("installed %s %s (%d files)", artifact.Name, artifact.Version, len(rec.entries)))
	return nil
}

// place puts src at dest, hardlinking when mode allows and copying otherwise.
func place(src, dest string, mode domain.LinkMode) error {
	if err := prepare(dest); err != nil {
		return err
	}
	if mode == domain.LinkModeHardlink {
		if err := os.Link(src, dest); err == nil {
			return nil
		}
	}
	return copyFile(src, dest)
}

func copyFile(src, dest string) error {
	in, err := os.Open(src) //nolint:gosec // Source is inside the wheel cache
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrInstallFailed.Error()), "path", src)
	}
	defer func() { _ = in.Close() }()

	info, err := in.Stat()
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrInstallFailed.Error()), "path", src)
	}
	//nolint:gosec // Destination is inside the environment scheme
	out, err := os.OpenFile(dest, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrInstallFailed.Error()), "path", dest)
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return zerr.With(zerr.Wrap(err, domain.ErrInstallFailed.Error()), "path", dest)
	}
	if err := out.Close(); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrInstallFailed.Error()), "path", dest)
	}
	return nil
}

// writeScript copies a wheel script, pointing a `#!python` line at python.
func writeScript(placement wheel.Placement, python string) error {
	content, err := os.ReadFile(placement.Source)
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrInstallFailed.Error()), "path", placement.Source)
	}
	content, _ = wheel.RewriteShebang(content, python)
	return writeFile(placement.Dest, content, domain.ExecPerm)
}

func writeFile(dest string, content []byte, perm fs.FileMode) error {
	if err := prepare(dest); err != nil {
		return err
	}
	if err := os.WriteFile(dest, content, perm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrInstallFailed.Error()), "path", dest)
	}
	// WriteFile leaves the mode of an existing file and applies the umask.
	if err := os.Chmod(dest, perm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrInstallFailed.Error()), "path", dest)
	}
	return nil
}

// prepare creates the parent of dest and removes whatever is at dest.
func prepare(dest string) error {
	if err := os.MkdirAll(filepath.Dir(dest), domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrInstallFailed.Error()), "path", filepath.Dir(dest))
	}
	if err := os.Remove(dest); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return zerr.With(zerr.Wrap(err, domain.ErrInstallFailed.Error()), "path", dest)
	}
	return nil
}

// record collects RECORD rows relative to root.
type record struct {
	root    string
	entries []wheel.RecordEntry
}

func (r *record) add(path string) error {
	rel, err := filepath.Rel(r.root, path)
	if err != nil {
		rel = path
	}
	hash, size, err := wheel.HashFile(path)
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrInstallFailed.Error()), "path", path)
	}
	r.entries = append(r.entries, wheel.RecordEntry{Path: filepath.ToSlash(rel), Hash: hash, Size: size})
	return nil
}

func (r *record) write(path string) error {
	rel, err := filepath.Rel(r.root, path)
	if err != nil {
		rel = path
	}
	entries := append(r.entries, wheel.RecordEntry{Path: filepath.ToSlash(rel), Size: -1})

	var buf bytes.Buffer
	if err := wheel.WriteRecord(&buf, entries); err != nil {
		return zerr.Wrap(err, "failed to encode RECORD")
	}
	return writeFile(path, buf.Bytes(), domain.FilePerm)
}
