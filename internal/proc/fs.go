package proc

import (
	"fmt"

	"github.com/prometheus/procfs"
	"go.uber.org/zap"
)

// DefaultRoot is the standard procfs mount point.
const DefaultRoot = procfs.DefaultMountPoint

// FS reads process information from a procfs root. Tests point it at a
// directory tree shaped like /proc.
type FS struct {
	root   string
	fs     procfs.FS
	logger *zap.Logger
}

// Open returns an FS rooted at root. A nil logger disables diagnostics.
func Open(root string, logger *zap.Logger) (*FS, error) {
	if root == "" {
		root = DefaultRoot
	}
	fs, err := procfs.NewFS(root)
	if err != nil {
		return nil, fmt.Errorf("failed to open procfs at %s: %w", root, err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FS{root: root, fs: fs, logger: logger}, nil
}

// Root returns the procfs mount point in use.
func (f *FS) Root() string {
	return f.root
}
