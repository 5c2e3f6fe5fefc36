// Package build holds build-time information.
package build

// Version and Commit identify the binary. They default to development values
// and are overwritten by linker flags in release builds.
var (
	Version = "dev"
	Commit  = "none"
)
