package solver

import (
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// Workspace is the working directory of a single solver invocation. Each
// invocation gets its own, so evaluations never read each other's files.
type Workspace struct {
	Dir  string
	keep bool
}

// NewWorkspace creates a fresh directory under root (the system temp dir when
// root is empty). With keep set, Release leaves the files in place.
func NewWorkspace(root string, keep bool) (*Workspace, error) {
	if root == "" {
		root = os.TempDir()
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, eris.Wrapf(err, "workspace: create root %s", root)
	}
	dir := filepath.Join(root, "ws-"+uuid.NewString())
	if err := os.Mkdir(dir, 0o755); err != nil {
		return nil, eris.Wrapf(err, "workspace: create %s", dir)
	}
	return &Workspace{Dir: dir, keep: keep}, nil
}

// Path joins name onto the workspace directory.
func (ws *Workspace) Path(name string) string { return filepath.Join(ws.Dir, name) }

// Release removes the workspace unless it is kept.
func (ws *Workspace) Release() {
	if ws == nil || ws.keep {
		return
	}
	if err := os.RemoveAll(ws.Dir); err != nil {
		zap.L().Warn("workspace: remove failed", zap.String("dir", ws.Dir), zap.Error(err))
	}
}
