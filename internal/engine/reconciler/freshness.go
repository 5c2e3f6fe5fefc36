package reconciler

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"go.trai.ch/pysync/internal/core/domain"
)

// isFresh reports whether the installed distribution is at least as new as its
// local source. Non-file sources are always fresh.
func (c *Checker) isFresh(installed domain.InstalledPackage, source *url.URL, metadata domain.DistMetadata) bool {
	if source.Scheme != "file" {
		return true
	}
	path := domain.FileURLPath(source)
	modified, ok, err := sourceTimestamp(path)
	if err != nil {
		c.logger.Warn(fmt.Sprintf("reinstalling %s: failed to stat %s: %v", installed.Name, path, err))
		return false
	}
	if !ok {
		c.debug(installed, "no build entrypoint found in %s", path)
		return false
	}
	if metadata.ModTime.Before(modified) {
		c.debug(installed, "source %s modified after install", path)
		return false
	}
	return true
}

// sourceTimestamp returns the newest modification time of a local source.
// Files report their own mtime; directories report the newest build entrypoint.
// ok is false when a directory has no build entrypoint.
func sourceTimestamp(path string) (modified time.Time, ok bool, err error) {
	info, err := os.Stat(path)
	if err != nil {
		return time.Time{}, false, err
	}
	if !info.IsDir() {
		return info.ModTime(), true, nil
	}
	for _, name := range domain.BuildEntrypoints {
		entry, err := os.Stat(filepath.Join(path, name))
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return time.Time{}, false, err
		}
		if !ok || entry.ModTime().After(modified) {
			modified = entry.ModTime()
			ok = true
		}
	}
	return modified, ok, nil
}
