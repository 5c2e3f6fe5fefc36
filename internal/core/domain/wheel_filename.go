package domain

import (
	"strings"

	"go.trai.ch/zerr"
)

const wheelSuffix = ".whl"

// WheelFilename is a parsed wheel filename: name-version[-build]-python-abi-platform.whl.
type WheelFilename struct {
	Name     PackageName
	Version  string
	Build    string
	Python   []string
	ABI      []string
	Platform []string
}

// Tag is a single python-abi-platform compatibility triple.
type Tag struct {
	Python   string
	ABI      string
	Platform string
}

func (t Tag) String() string {
	return t.Python + "-" + t.ABI + "-" + t.Platform
}

// ParseWheelFilename parses a wheel filename. Compressed tag sets such as
// "py2.py3" are expanded.
func ParseWheelFilename(filename string) (WheelFilename, error) {
	stem, ok := strings.CutSuffix(filename, wheelSuffix)
	if !ok {
		return WheelFilename{}, zerr.With(ErrInvalidWheelFilename, "filename", filename)
	}
	parts := strings.Split(stem, "-")
	var build string
	switch len(parts) {
	case 5:
	case 6:
		build = parts[2]
		if build == "" || build[0] < '0' || build[0] > '9' {
			return WheelFilename{}, zerr.With(ErrInvalidWheelFilename, "filename", filename)
		}
		parts = append(parts[:2], parts[3:]...)
	default:
		return WheelFilename{}, zerr.With(ErrInvalidWheelFilename, "filename", filename)
	}
	for _, p := range parts {
		if p == "" {
			return WheelFilename{}, zerr.With(ErrInvalidWheelFilename, "filename", filename)
		}
	}
	name, err := NewPackageName(parts[0])
	if err != nil {
		return WheelFilename{}, zerr.With(zerr.Wrap(err, ErrInvalidWheelFilename.Error()), "filename", filename)
	}
	return WheelFilename{
		Name:     name,
		Version:  parts[1],
		Build:    build,
		Python:   strings.Split(parts[2], "."),
		ABI:      strings.Split(parts[3], "."),
		Platform: strings.Split(parts[4], "."),
	}, nil
}

// Tags expands the filename into every tag triple it declares.
func (w WheelFilename) Tags() []Tag {
	tags := make([]Tag, 0, len(w.Python)*len(w.ABI)*len(w.Platform))
	for _, py := range w.Python {
		for _, abi := range w.ABI {
			for _, plat := range w.Platform {
				tags = append(tags, Tag{Python: py, ABI: abi, Platform: plat})
			}
		}
	}
	return tags
}

// CompatibleWith reports whether any of the wheel's tags is in supported.
// An empty supported set accepts every wheel.
func (w WheelFilename) CompatibleWith(supported []Tag) bool {
	if len(supported) == 0 {
		return true
	}
	set := make(map[Tag]struct{}, len(supported))
	for _, t := range supported {
		set[t] = struct{}{}
	}
	for _, t := range w.Tags() {
		if _, ok := set[t]; ok {
			return true
		}
	}
	return false
}

func (w WheelFilename) String() string {
	parts := []string{w.Name.DistInfoPrefix(), w.Version}
	if w.Build != "" {
		parts = append(parts, w.Build)
	}
	parts = append(parts,
		strings.Join(w.Python, "."),
		strings.Join(w.ABI, "."),
		strings.Join(w.Platform, "."),
	)
	return strings.Join(parts, "-") + wheelSuffix
}
