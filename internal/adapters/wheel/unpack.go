package wheel

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"

	"go.trai.ch/pysync/internal/core/domain"
	"go.trai.ch/zerr"
)

// Unpack extracts the wheel archive at src into dest.
// Members that would land outside dest are rejected.
func Unpack(src, dest string) error {
	r, err := zip.OpenReader(src)
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrInvalidWheel.Error()), "path", src)
	}
	defer func() { _ = r.Close() }()

	for _, f := range r.File {
		if err := extract(f, dest); err != nil {
			return zerr.With(err, "path", src)
		}
	}
	return nil
}

func extract(f *zip.File, dest string) error {
	if !filepath.IsLocal(f.Name) {
		return zerr.With(domain.ErrUnsafeArchivePath, "member", f.Name)
	}
	target := filepath.Join(dest, filepath.FromSlash(f.Name))

	if f.FileInfo().IsDir() {
		return os.MkdirAll(target, domain.DirPerm)
	}
	if err := os.MkdirAll(filepath.Dir(target), domain.DirPerm); err != nil {
		return err
	}

	perm := os.FileMode(domain.FilePerm)
	if f.Mode()&0o111 != 0 {
		perm = domain.ExecPerm
	}

	rc, err := f.Open()
	if err != nil {
		return err
	}
	defer func() { _ = rc.Close() }()

	// #nosec G304 -- target is checked to stay inside dest
	out, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, perm)
	if err != nil {
		return err
	}
	// #nosec G110 -- wheels come from locked, hash-verified sources
	if _, err := io.Copy(out, rc); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}
