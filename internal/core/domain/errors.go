package domain

import (
	"errors"
	"strings"

	"go.trai.ch/zerr"
)

// Resolution failures. These are raised while turning a locked package into a
// distribution and abort planning as a whole.
var (
	// ErrMalformedURL is returned when a locked URL cannot be interpreted.
	ErrMalformedURL = zerr.New("malformed url")

	// ErrInvalidPackageName is returned when a name does not satisfy the package naming rules.
	ErrInvalidPackageName = zerr.New("invalid package name")

	// ErrUnsupportedExtension is returned when a file has no recognized distribution extension.
	ErrUnsupportedExtension = zerr.New("unsupported distribution extension")

	// ErrConversion is returned when locked data cannot be converted to the installer's model.
	ErrConversion = zerr.New("failed to convert locked package")

	// ErrUnsupportedURLScheme is returned when a direct URL uses a scheme that cannot be fetched.
	ErrUnsupportedURLScheme = zerr.New("unsupported url scheme")

	// ErrInvalidWheelFilename is returned when a filename does not follow the wheel naming convention.
	ErrInvalidWheelFilename = zerr.New("invalid wheel filename")

	// ErrInvalidGitURL is returned when a git URL has no repository component.
	ErrInvalidGitURL = zerr.New("invalid git url")

	// ErrInvalidRequiresPython is returned when a requires-python specifier cannot be parsed.
	ErrInvalidRequiresPython = zerr.New("invalid requires-python specifier")
)

// Phase failures raised by the reconciliation driver.
var (
	// ErrInterpreterResolution is returned when the environment's interpreter cannot be queried.
	ErrInterpreterResolution = zerr.New("failed to resolve python interpreter")

	// ErrInterpreterNotFound is returned when the interpreter executable does not exist.
	ErrInterpreterNotFound = zerr.New("python interpreter not found")

	// ErrEnvironmentLock is returned when the environment lock cannot be acquired.
	ErrEnvironmentLock = zerr.New("failed to lock environment")

	// ErrSnapshotFailed is returned when the installed distributions cannot be read.
	ErrSnapshotFailed = zerr.New("failed to read installed distributions")

	// ErrPlanFailed is returned when an install plan cannot be produced.
	ErrPlanFailed = zerr.New("failed to plan installation")

	// ErrFetchFailed is returned when a remote distribution cannot be downloaded or built.
	ErrFetchFailed = zerr.New("failed to prepare distribution")

	// ErrUninstallFailed is returned when an installed distribution cannot be removed.
	ErrUninstallFailed = zerr.New("failed to uninstall distribution")

	// ErrInstallFailed is returned when wheels cannot be linked into the environment.
	ErrInstallFailed = zerr.New("failed to install distributions")

	// ErrCacheFailed is returned when the wheel cache cannot be read or written.
	ErrCacheFailed = zerr.New("wheel cache failure")
)

// Adapter failures.
var (
	// ErrMissingRecord is returned when a dist-info directory has no RECORD manifest.
	ErrMissingRecord = zerr.New("missing RECORD manifest")

	// ErrMissingTopLevel is returned when an egg-info directory has no top_level.txt.
	ErrMissingTopLevel = zerr.New("missing top_level.txt")

	// ErrHashMismatch is returned when a downloaded file does not match its locked digest.
	ErrHashMismatch = zerr.New("hash mismatch")

	// ErrDownloadFailed is returned when a remote file cannot be retrieved.
	ErrDownloadFailed = zerr.New("download failed")

	// ErrBuildFailed is returned when a source distribution cannot be built into a wheel.
	ErrBuildFailed = zerr.New("failed to build wheel")

	// ErrInvalidWheel is returned when a wheel archive does not contain a dist-info directory.
	ErrInvalidWheel = zerr.New("invalid wheel archive")

	// ErrUnsafeArchivePath is returned when an archive member escapes the extraction directory.
	ErrUnsafeArchivePath = zerr.New("archive member escapes target directory")

	// ErrInvalidDirectURL is returned when direct_url.json cannot be decoded.
	ErrInvalidDirectURL = zerr.New("invalid direct_url.json")

	// ErrMetadataReadFailed is returned when distribution metadata cannot be read.
	ErrMetadataReadFailed = zerr.New("failed to read distribution metadata")
)

// Configuration and lockfile failures.
var (
	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file is not valid YAML.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrInvalidConfig is returned when a config value is out of range.
	ErrInvalidConfig = zerr.New("invalid config")

	// ErrLockfileReadFailed is returned when the lockfile cannot be read.
	ErrLockfileReadFailed = zerr.New("failed to read lockfile")

	// ErrLockfileParseFailed is returned when the lockfile is not valid YAML.
	ErrLockfileParseFailed = zerr.New("failed to parse lockfile")

	// ErrUnsupportedLockfileVersion is returned for lockfile versions this tool cannot read.
	ErrUnsupportedLockfileVersion = zerr.New("unsupported lockfile version")

	// ErrEnvironmentNotFound is returned when the requested environment is absent from the lockfile.
	ErrEnvironmentNotFound = zerr.New("environment not found in lockfile")

	// ErrPlatformNotFound is returned when the environment has no packages for the requested platform.
	ErrPlatformNotFound = zerr.New("platform not found in lockfile environment")

	// ErrLockfileInconsistent is returned when an environment references an undefined package.
	ErrLockfileInconsistent = zerr.New("lockfile references an undefined package")
)

// ResolutionError reports a locked package that could not be turned into a distribution.
// Cause is always one of the resolution sentinels so errors.Is can classify it.
type ResolutionError struct {
	Cause   error
	Package string
	Detail  string
	Err     error
}

func (e *ResolutionError) Error() string {
	var b strings.Builder
	b.WriteString(e.Cause.Error())
	if e.Package != "" {
		b.WriteString(" for ")
		b.WriteString(e.Package)
	}
	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

// Unwrap exposes both the classifying sentinel and the underlying error.
func (e *ResolutionError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Cause}
	}
	return []error{e.Cause, e.Err}
}

// NewResolutionError builds a ResolutionError for the given package.
func NewResolutionError(cause error, pkg, detail string, err error) *ResolutionError {
	return &ResolutionError{Cause: cause, Package: pkg, Detail: detail, Err: err}
}

// IsResolutionError reports whether err was produced while resolving a locked package.
func IsResolutionError(err error) bool {
	var re *ResolutionError
	return errors.As(err, &re)
}

// ManifestError reports an installed distribution whose uninstall manifest is absent.
type ManifestError struct {
	Cause error
	Path  string
}

func (e *ManifestError) Error() string {
	return e.Cause.Error() + " in " + e.Path
}

func (e *ManifestError) Unwrap() error {
	return e.Cause
}

// IsMissingManifest reports whether err signals a missing RECORD or top_level.txt.
func IsMissingManifest(err error) bool {
	return errors.Is(err, ErrMissingRecord) || errors.Is(err, ErrMissingTopLevel)
}
