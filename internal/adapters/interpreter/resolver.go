// Package interpreter queries the Python interpreter of an environment.
package interpreter

import (
	"context"
	_ "embed"
	"encoding/json"
	"os"
	"path/filepath"

	"go.trai.ch/pysync/internal/core/domain"
	"go.trai.ch/pysync/internal/core/ports"
	"go.trai.ch/zerr"
)

//go:embed query.py
var queryScript string

type report struct {
	Executable string `json:"executable"`
	Version    string `json:"version"`
	Prefix     string `json:"prefix"`
	Paths      struct {
		Purelib string `json:"purelib"`
		Platlib string `json:"platlib"`
		Scripts string `json:"scripts"`
		Include string `json:"include"`
		Data    string `json:"data"`
	} `json:"paths"`
	Tags [][3]string `json:"tags"`
}

// Resolver implements ports.InterpreterResolver.
type Resolver struct {
	runner ports.CommandRunner
	logger ports.Logger
}

// NewResolver creates a Resolver that runs the interpreter through runner.
func NewResolver(runner ports.CommandRunner, logger ports.Logger) *Resolver {
	return &Resolver{runner: runner, logger: logger}
}

// Resolve runs python (relative to prefix unless absolute) and reads its install scheme.
func (r *Resolver) Resolve(ctx context.Context, prefix, python string) (domain.Interpreter, error) {
	executable := python
	if !filepath.IsAbs(executable) {
		executable = filepath.Join(prefix, python)
	}

	if info, err := os.Stat(executable); err != nil || info.IsDir() {
		return domain.Interpreter{}, zerr.With(domain.ErrInterpreterNotFound, "executable", executable)
	}

	out, err := r.runner.Output(ctx, domain.Command{
		Name: executable,
		Args: []string{"-I", "-c", queryScript},
		Dir:  prefix,
	})
	if err != nil {
		return domain.Interpreter{}, zerr.With(err, "executable", executable)
	}

	var rep report
	if err := json.Unmarshal(out, &rep); err != nil {
		return domain.Interpreter{}, zerr.With(zerr.Wrap(err, "unexpected interpreter output"), "executable", executable)
	}
	if rep.Version == "" || rep.Paths.Purelib == "" {
		return domain.Interpreter{}, zerr.With(zerr.New("interpreter reported no install scheme"), "executable", executable)
	}

	interp := domain.Interpreter{
		Executable: executable,
		Version:    rep.Version,
		Prefix:     rep.Prefix,
		Purelib:    rep.Paths.Purelib,
		Platlib:    rep.Paths.Platlib,
		Scripts:    rep.Paths.Scripts,
		Include:    rep.Paths.Include,
		Data:       rep.Paths.Data,
	}
	for _, t := range rep.Tags {
		interp.Tags = append(interp.Tags, domain.Tag{Python: t[0], ABI: t[1], Platform: t[2]})
	}
	if len(interp.Tags) == 0 {
		r.logger.Warn("interpreter cannot report supported wheel tags; cached wheels are not filtered by platform")
	}

	r.logger.Debug("using python " + interp.Version + " at " + executable)
	return interp, nil
}
