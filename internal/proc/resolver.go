package proc

import (
	"fmt"
	"sort"
	"strconv"

	"go.uber.org/zap"

	"github.com/shinji-kodama/stealenv/internal/model"
)

// Resolve turns a target into a process handle. An all-digit target is a PID
// and is not checked for existence here; ReadEnviron reports a dead PID.
// Any other target is treated as an absolute executable path.
func (f *FS) Resolve(target string) (model.ProcessHandle, error) {
	if isDigits(target) {
		pid, err := strconv.Atoi(target)
		if err != nil {
			// Out of int range, so it cannot name a live process.
			return 0, fmt.Errorf("pid %s: %w", target, model.ErrProcessNotFound)
		}
		return model.ProcessHandle(pid), nil
	}
	return f.FindByExecutable(target)
}

// FindByExecutable returns the lowest PID whose exe link equals path exactly.
//
// A link the kernel annotates, such as "/usr/bin/app (deleted)" after the
// binary was replaced, does not match. Unreadable links are skipped.
func (f *FS) FindByExecutable(path string) (model.ProcessHandle, error) {
	if path == "" {
		return 0, fmt.Errorf("%w: empty executable path", model.ErrNotFound)
	}

	procs, err := f.fs.AllProcs()
	if err != nil {
		return 0, fmt.Errorf("failed to list processes under %s: %w", f.root, err)
	}
	sort.Sort(procs)

	skipped := 0
	for _, p := range procs {
		exe, err := p.Executable()
		if err != nil {
			skipped++
			f.logger.Debug("skipping process with unreadable exe link",
				zap.Int("pid", p.PID), zap.Error(err))
			continue
		}
		if exe == path {
			f.logger.Debug("resolved executable",
				zap.String("exe", path), zap.Int("pid", p.PID), zap.Int("skipped", skipped))
			return model.ProcessHandle(p.PID), nil
		}
	}

	f.logger.Debug("no process matched executable",
		zap.String("exe", path), zap.Int("candidates", len(procs)), zap.Int("skipped", skipped))
	return 0, fmt.Errorf("%w: %s", model.ErrNotFound, path)
}

// isDigits reports whether s is a non-empty run of ASCII decimal digits.
func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
