// Package shell runs external commands such as the environment's interpreter.
package shell

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/creack/pty"
	"go.trai.ch/pysync/internal/core/domain"
	"go.trai.ch/pysync/internal/core/ports"
	"go.trai.ch/zerr"
)

// Runner implements ports.CommandRunner using os/exec and pty.
type Runner struct {
	logger ports.Logger
}

// NewRunner creates a new Runner.
func NewRunner(logger ports.Logger) *Runner {
	return &Runner{logger: logger}
}

// Run executes cmd in a pseudo terminal so build tools keep their progress output.
// The terminal merges both streams into stdout; every line is also logged at debug level.
// Commands fall back to plain pipes where no pty is available.
func (r *Runner) Run(ctx context.Context, cmd domain.Command, stdout, stderr io.Writer) error {
	if cmd.Name == "" {
		return nil
	}

	stdoutLog := &logWriter{logger: r.logger}
	defer func() { _ = stdoutLog.Close() }()

	c := r.command(ctx, cmd)

	ptmx, err := pty.Start(c)
	if err != nil {
		c = r.command(ctx, cmd)
		c.Stdout = io.MultiWriter(stdoutLog, stdout)
		c.Stderr = io.MultiWriter(stdoutLog, stderr)
		return exitError(cmd, c.Run())
	}

	ioDone := make(chan struct{})
	go func() {
		defer close(ioDone)
		defer func() { _ = ptmx.Close() }()
		// The copy ends with EIO once the child closes its side.
		_, _ = io.Copy(io.MultiWriter(stdoutLog, stdout), ptmx)
	}()

	waitErr := c.Wait()
	<-ioDone

	return exitError(cmd, waitErr)
}

// Output executes cmd with plain pipes and returns its standard output.
// Standard error is attached to the returned error.
func (r *Runner) Output(ctx context.Context, cmd domain.Command) ([]byte, error) {
	if cmd.Name == "" {
		return nil, zerr.New("empty command")
	}

	var stderr bytes.Buffer
	c := r.command(ctx, cmd)
	c.Stderr = &stderr

	out, err := c.Output()
	if err != nil {
		err = exitError(cmd, err)
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			err = zerr.With(err, "stderr", msg)
		}
		return out, err
	}
	return out, nil
}

func (r *Runner) command(ctx context.Context, cmd domain.Command) *exec.Cmd {
	env := resolveEnvironment(os.Environ(), cmd.Env)

	executable := cmd.Name
	if !filepath.IsAbs(executable) && !strings.ContainsRune(executable, filepath.Separator) {
		if lp, err := lookPath(executable, env); err == nil {
			executable = lp
		}
	}

	c := exec.CommandContext(ctx, executable, cmd.Args...) //nolint:gosec // commands are built internally
	if len(c.Args) > 0 {
		c.Args[0] = cmd.Name
	}
	c.Dir = cmd.Dir
	c.Env = env
	return c
}

func exitError(cmd domain.Command, err error) error {
	if err == nil {
		return nil
	}
	exitCode := -1
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		exitCode = exitErr.ExitCode()
	}
	wrapped := zerr.With(zerr.Wrap(err, "command failed"), "command", cmd.Name)
	return zerr.With(wrapped, "exit_code", exitCode)
}

type logWriter struct {
	logger ports.Logger
	buf    []byte
}

func (w *logWriter) Write(p []byte) (int, error) {
	w.buf = append(w.buf, p...)

	for {
		i := bytes.IndexByte(w.buf, '\n')
		if i < 0 {
			break
		}
		w.logLine(w.buf[:i])
		w.buf = w.buf[i+1:]
	}

	return len(p), nil
}

func (w *logWriter) Close() error {
	if len(w.buf) > 0 {
		w.logLine(w.buf)
		w.buf = nil
	}
	return nil
}

func (w *logWriter) logLine(line []byte) {
	// PTYs may introduce \r.
	msg := strings.TrimSuffix(string(line), "\r")
	if msg != "" {
		w.logger.Debug(msg)
	}
}

// isolatedEnvVars leak configuration of unrelated interpreters into the environment's python.
var isolatedEnvVars = map[string]struct{}{
	"PYTHONHOME":             {},
	"PYTHONPATH":             {},
	"PYTHONSTARTUP":          {},
	"PYTHONUSERBASE":         {},
	"PIP_REQUIRE_VIRTUALENV": {},
	"__PYVENV_LAUNCHER__":    {},
}

// resolveEnvironment inherits the process environment minus isolatedEnvVars,
// then applies overrides. A PATH override is prepended to the inherited PATH.
func resolveEnvironment(sysEnv, overrides []string) []string {
	envMap := make(map[string]string, len(sysEnv))
	order := make([]string, 0, len(sysEnv))
	set := func(k, v string) {
		if _, ok := envMap[k]; !ok {
			order = append(order, k)
		}
		envMap[k] = v
	}

	for _, entry := range sysEnv {
		k, v, ok := strings.Cut(entry, "=")
		if !ok {
			continue
		}
		if _, isolated := isolatedEnvVars[k]; isolated {
			continue
		}
		set(k, v)
	}

	for _, entry := range overrides {
		k, v, ok := strings.Cut(entry, "=")
		if !ok {
			continue
		}
		if k == "PATH" {
			if sysPath := envMap["PATH"]; sysPath != "" {
				v = v + string(os.PathListSeparator) + sysPath
			}
		}
		set(k, v)
	}

	result := make([]string, 0, len(order))
	for _, k := range order {
		result = append(result, k+"="+envMap[k])
	}
	return result
}

// lookPath searches the PATH of env rather than the current process.
func lookPath(file string, env []string) (string, error) {
	var path string
	for _, e := range env {
		if after, ok := strings.CutPrefix(e, "PATH="); ok {
			path = after
		}
	}

	if path == "" {
		return "", exec.ErrNotFound
	}

	for _, dir := range filepath.SplitList(path) {
		if dir == "" {
			dir = "."
		}
		candidate := filepath.Join(dir, file)
		if err := findExecutable(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", exec.ErrNotFound
}

func findExecutable(file string) error {
	d, err := os.Stat(file)
	if err != nil {
		return err
	}
	if m := d.Mode(); !m.IsDir() && m&0o111 != 0 {
		return nil
	}
	return os.ErrPermission
}
