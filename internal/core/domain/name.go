package domain

import (
	"regexp"
	"strings"

	"go.trai.ch/zerr"
)

var (
	validName     = regexp.MustCompile(`^(?i)([a-z0-9]|[a-z0-9][a-z0-9._-]*[a-z0-9])$`)
	nameSeparator = regexp.MustCompile(`[-_.]+`)
)

// PackageName is a normalized Python distribution name.
// Runs of "-", "_" and "." collapse into a single "-" and letters are lowercased,
// so "Foo.Bar", "foo_bar" and "FOO--bar" are the same name.
type PackageName string

// NewPackageName validates raw and returns its normalized form.
func NewPackageName(raw string) (PackageName, error) {
	if !validName.MatchString(raw) {
		return "", zerr.With(ErrInvalidPackageName, "name", raw)
	}
	return PackageName(nameSeparator.ReplaceAllString(strings.ToLower(raw), "-")), nil
}

// MustPackageName is like NewPackageName but panics on invalid input.
func MustPackageName(raw string) PackageName {
	name, err := NewPackageName(raw)
	if err != nil {
		panic(err)
	}
	return name
}

func (n PackageName) String() string {
	return string(n)
}

// DistInfoPrefix returns the escaped form used in dist-info and wheel filenames.
func (n PackageName) DistInfoPrefix() string {
	return strings.ReplaceAll(string(n), "-", "_")
}
