// Package launch replaces the running stealenv process with a command that
// inherits a stolen environment.
package launch

import (
	"errors"
	"fmt"
	"os"
	"os/exec"

	"golang.org/x/sys/unix"

	"github.com/shinji-kodama/stealenv/internal/environ"
	"github.com/shinji-kodama/stealenv/internal/model"
)

// Execer performs the exec(2) call. It only returns on failure.
type Execer func(argv0 string, argv []string, envv []string) error

// Launcher merges an environment into the current process and execs a
// command with it.
type Launcher struct {
	// Exec defaults to unix.Exec.
	Exec Execer

	// LookPath resolves the command name; defaults to exec.LookPath.
	LookPath func(file string) (string, error)
}

// New returns a Launcher backed by the real exec(2).
func New() *Launcher {
	return &Launcher{Exec: unix.Exec, LookPath: exec.LookPath}
}

// Run merges env over the current environment, installs it so that argv[0]
// is resolved through the stolen PATH, and replaces the process image. argv
// is passed to the new program verbatim, argv[0] included.
//
// On success Run does not return. Any error wraps model.ErrExecFailed; the
// environment update is the only side effect left behind.
func (l *Launcher) Run(argv []string, env *environ.Map) error {
	if len(argv) == 0 {
		return fmt.Errorf("%w: empty command line", model.ErrExecFailed)
	}

	envv := environ.Merge(os.Environ(), env)
	if err := environ.Install(env); err != nil {
		return fmt.Errorf("%w: %w", model.ErrExecFailed, err)
	}

	path, err := l.LookPath(argv[0])
	if err != nil && !errors.Is(err, exec.ErrDot) {
		return fmt.Errorf("%w: %s: %w", model.ErrExecFailed, argv[0], err)
	}

	if err := l.Exec(path, argv, envv); err != nil {
		return fmt.Errorf("%w: %s: %w", model.ErrExecFailed, path, err)
	}
	return nil
}
