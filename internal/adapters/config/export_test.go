package config

import "go.trai.ch/pysync/internal/core/ports"

// NewLoaderForHost builds a Loader that pretends to run on goos/goarch with a fixed cache root.
func NewLoaderForHost(logger ports.Logger, goos, goarch, cacheRoot string) *Loader {
	l := NewLoader(logger)
	l.goos = goos
	l.goarch = goarch
	l.cacheDir = func() (string, error) { return cacheRoot, nil }
	return l
}
