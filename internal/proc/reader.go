package proc

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"syscall"

	"go.uber.org/zap"

	"github.com/shinji-kodama/stealenv/internal/environ"
	"github.com/shinji-kodama/stealenv/internal/model"
)

// ReadEnviron reads and parses /proc/<pid>/environ.
//
// The file is read directly rather than through procfs.Proc.Environ because
// that helper drops the last field unconditionally, losing a final record
// that is not NUL-terminated.
func (f *FS) ReadEnviron(h model.ProcessHandle) (*environ.Map, error) {
	path := filepath.Join(f.root, h.String(), "environ")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, classifyReadError(h, err)
	}

	env, malformed := environ.Parse(data)
	if malformed > 0 {
		f.logger.Debug("skipped malformed environment records",
			zap.Int("pid", int(h)), zap.Int("malformed", malformed))
	}
	f.logger.Debug("read environment",
		zap.Int("pid", int(h)), zap.Int("bytes", len(data)), zap.Int("variables", env.Len()))
	return env, nil
}

// classifyReadError attaches the matching sentinel kind to a read failure.
// ESRCH shows up when the process exits between open and read.
func classifyReadError(h model.ProcessHandle, err error) error {
	switch {
	case errors.Is(err, fs.ErrNotExist), errors.Is(err, syscall.ESRCH):
		return fmt.Errorf("pid %s: %w: %w", h, model.ErrProcessNotFound, err)
	case errors.Is(err, fs.ErrPermission):
		return fmt.Errorf("pid %s: %w: %w", h, model.ErrPermissionDenied, err)
	default:
		return fmt.Errorf("failed to read environment of pid %s: %w", h, err)
	}
}
