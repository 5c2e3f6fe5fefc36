package reconciler

import (
	"net/url"
	"os"
	"strings"

	"go.trai.ch/pysync/internal/core/domain"
)

// Locate turns a locked package into the distribution that provides it.
// Relative path sources are resolved against lockDir.
func Locate(pkg domain.LockedPackage, lockDir string) (domain.Distribution, error) {
	if pkg.RequiresPython != "" {
		if _, err := domain.ParseRequiresPython(pkg.RequiresPython); err != nil {
			return nil, domain.NewResolutionError(domain.ErrConversion, pkg.Name.String(), "requires-python", err)
		}
	}
	if u, ok := pkg.Source.URL(); ok {
		if domain.IsDirectScheme(u.Scheme) {
			return locateDirect(pkg, domain.StripDirectScheme(u))
		}
		return locateRegistry(pkg, u)
	}
	if _, ok := pkg.Source.Path(); ok {
		path := pkg.Source.ResolvePath(lockDir)
		return locateLocal(pkg, domain.FileURL(path), path)
	}
	return nil, domain.NewResolutionError(domain.ErrMalformedURL, pkg.Name.String(), "empty source", nil)
}

func locateRegistry(pkg domain.LockedPackage, u *url.URL) (domain.Distribution, error) {
	file := domain.File{
		Filename:       domain.LastPathSegment(u),
		URL:            u,
		Hashes:         pkg.Hashes,
		RequiresPython: pkg.RequiresPython,
	}
	if wheel, err := domain.ParseWheelFilename(file.Filename); err == nil {
		return domain.RegistryWheelDist{Name: pkg.Name, Version: pkg.Version, Filename: wheel, File: file}, nil
	}
	ext, err := domain.ParseSourceDistExtension(domain.RawLastPathSegment(u))
	if err != nil {
		return nil, domain.NewResolutionError(domain.ErrUnsupportedExtension, pkg.Name.String(), file.Filename, nil)
	}
	return domain.RegistrySourceDist{Name: pkg.Name, Version: pkg.Version, Ext: ext, File: file}, nil
}

func locateDirect(pkg domain.LockedPackage, u *url.URL) (domain.Distribution, error) {
	switch {
	case u.Scheme == "file":
		return locateLocal(pkg, u, domain.FileURLPath(u))
	case strings.HasPrefix(u.Scheme, "git+"):
		git, err := domain.ParseGitURL(u)
		if err != nil {
			return nil, domain.NewResolutionError(domain.ErrMalformedURL, pkg.Name.String(), u.String(), err)
		}
		return domain.GitDist{Name: pkg.Name, Version: pkg.Version, URL: u, Git: git}, nil
	case u.Scheme == "http" || u.Scheme == "https":
		ext, err := domain.DistExtensionFromPath(domain.LastPathSegment(u))
		if err != nil {
			return nil, domain.NewResolutionError(domain.ErrUnsupportedExtension, pkg.Name.String(), u.String(), nil)
		}
		return domain.ArchiveDist{Name: pkg.Name, Version: pkg.Version, URL: u, Ext: ext, Hashes: pkg.Hashes}, nil
	default:
		return nil, domain.NewResolutionError(domain.ErrUnsupportedURLScheme, pkg.Name.String(), u.Scheme, nil)
	}
}

func locateLocal(pkg domain.LockedPackage, u *url.URL, path string) (domain.Distribution, error) {
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return domain.DirectoryDist{Name: pkg.Name, Version: pkg.Version, URL: u, Path: path, Editable: pkg.Editable}, nil
	}
	ext, err := domain.DistExtensionFromPath(path)
	if err != nil {
		return nil, domain.NewResolutionError(domain.ErrUnsupportedExtension, pkg.Name.String(), path, nil)
	}
	return domain.ArchiveDist{Name: pkg.Name, Version: pkg.Version, URL: u, Path: path, Ext: ext, Hashes: pkg.Hashes}, nil
}
