package domain

import (
	"path/filepath"
	"strings"

	"go.trai.ch/zerr"
)

// SourceDistExtension is a recognized source archive suffix.
type SourceDistExtension string

// Recognized source archive suffixes.
const (
	ExtTarGz   SourceDistExtension = ".tar.gz"
	ExtTarBz2  SourceDistExtension = ".tar.bz2"
	ExtTarXz   SourceDistExtension = ".tar.xz"
	ExtTarZst  SourceDistExtension = ".tar.zst"
	ExtTarLz   SourceDistExtension = ".tar.lz"
	ExtTarLzma SourceDistExtension = ".tar.lzma"
	ExtTar     SourceDistExtension = ".tar"
	ExtTgz     SourceDistExtension = ".tgz"
	ExtTbz     SourceDistExtension = ".tbz"
	ExtTxz     SourceDistExtension = ".txz"
	ExtTlz     SourceDistExtension = ".tlz"
	ExtZip     SourceDistExtension = ".zip"
)

// Longest suffixes first so ".tar.gz" wins over ".tar".
var sourceDistExtensions = []SourceDistExtension{
	ExtTarLzma, ExtTarBz2, ExtTarZst, ExtTarGz, ExtTarXz, ExtTarLz,
	ExtTar, ExtTgz, ExtTbz, ExtTxz, ExtTlz, ExtZip,
}

// ParseSourceDistExtension returns the source archive suffix of filename.
func ParseSourceDistExtension(filename string) (SourceDistExtension, error) {
	lower := strings.ToLower(filename)
	for _, ext := range sourceDistExtensions {
		if strings.HasSuffix(lower, string(ext)) {
			return ext, nil
		}
	}
	return "", zerr.With(ErrUnsupportedExtension, "filename", filename)
}

// DistExtension classifies a file as a wheel or a source archive.
type DistExtension struct {
	Wheel  bool
	Source SourceDistExtension
}

func (e DistExtension) String() string {
	if e.Wheel {
		return wheelSuffix
	}
	return string(e.Source)
}

// DistExtensionFromPath classifies the file at path by its suffix.
func DistExtensionFromPath(path string) (DistExtension, error) {
	base := filepath.Base(filepath.FromSlash(path))
	if strings.HasSuffix(strings.ToLower(base), wheelSuffix) {
		return DistExtension{Wheel: true}, nil
	}
	ext, err := ParseSourceDistExtension(base)
	if err != nil {
		return DistExtension{}, err
	}
	return DistExtension{Source: ext}, nil
}
