package fetcher

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/pysync/internal/core/domain"
	"go.trai.ch/zerr"
)

// build runs pip in the environment's interpreter to turn target into a wheel
// inside staging/dist. target is a source archive, a project directory or a
// pip VCS requirement.
func (f *Fetcher) build(ctx context.Context, env domain.Environment, target, staging string) (string, error) {
	out := filepath.Join(staging, "dist")
	if err := os.MkdirAll(out, domain.DirPerm); err != nil {
		return "", zerr.With(zerr.Wrap(err, domain.ErrBuildFailed.Error()), "path", out)
	}

	cmd := domain.Command{
		Name: env.Interpreter.Executable,
		Args: []string{
			"-m", "pip", "wheel",
			"--no-deps",
			"--disable-pip-version-check",
			"--wheel-dir", out,
			target,
		},
		Dir: staging,
	}
	f.logger.Debug("building wheel for " + target)
	if err := f.runner.Run(ctx, cmd, io.Discard, io.Discard); err != nil {
		return "", zerr.With(zerr.Wrap(err, domain.ErrBuildFailed.Error()), "source", target)
	}

	entries, err := os.ReadDir(out)
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, domain.ErrBuildFailed.Error()), "path", out)
	}
	var wheels []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".whl") {
			wheels = append(wheels, filepath.Join(out, e.Name()))
		}
	}
	if len(wheels) != 1 {
		return "", zerr.With(zerr.With(domain.ErrBuildFailed, "source", target), "wheels", len(wheels))
	}
	return wheels[0], nil
}

// pipGitTarget renders a git reference in the requirement form pip accepts:
// git+<repository>@<revision>#subdirectory=<dir>.
func pipGitTarget(git domain.GitURL) string {
	var b strings.Builder
	b.WriteString("git+")
	b.WriteString(git.Repository.String())
	rev := git.Precise
	if rev == "" {
		rev = git.Reference
	}
	if rev != "" {
		b.WriteString("@")
		b.WriteString(rev)
	}
	if git.Subdirectory != "" {
		b.WriteString("#subdirectory=")
		b.WriteString(git.Subdirectory)
	}
	return b.String()
}
