package mf6

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/maseology/pumptest/solver"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

const normalTermination = "Normal termination"

// Runner is the solver.Solver backed by the mf6 executable.
type Runner struct {
	Exe string // path to mf6, resolved on PATH when bare
}

// New returns a runner for the given executable, "mf6" when empty.
func New(exe string) *Runner {
	if exe == "" {
		exe = "mf6"
	}
	return &Runner{Exe: exe}
}

// Solve writes the simulation into ws, runs mf6 there and reads back heads.
// Any failure to run to normal termination is a solver.ErrSolverFailure.
func (r *Runner) Solve(ctx context.Context, ws *solver.Workspace, in *solver.Input) (*solver.HeadSeries, error) {
	if err := WriteInput(ws.Dir, in); err != nil {
		return nil, err
	}

	tt := time.Now()
	var out bytes.Buffer
	cmd := exec.CommandContext(ctx, r.Exe)
	cmd.Dir = ws.Dir
	cmd.Stdout, cmd.Stderr = &out, &out
	err := cmd.Run()
	zap.L().Debug("mf6 finished", zap.String("dir", ws.Dir), zap.Duration("elapsed", time.Since(tt)), zap.Error(err))
	if ctx.Err() != nil {
		return nil, eris.Wrapf(solver.ErrSolverFailure, "mf6 cancelled: %v", ctx.Err())
	}
	if err != nil {
		return nil, eris.Wrapf(solver.ErrSolverFailure, "mf6 did not run: %v: %s", err, tail(out.String()))
	}
	if !strings.Contains(out.String(), normalTermination) {
		return nil, eris.Wrapf(solver.ErrSolverFailure, "mf6 did not terminate normally: %s", tail(out.String()))
	}

	fp := filepath.Join(ws.Dir, headFile)
	if _, err := os.Stat(fp); err != nil {
		return nil, eris.Wrapf(solver.ErrSolverFailure, "mf6 wrote no head file %s", fp)
	}
	hs, err := ReadHeads(fp, in.Grid.Nlay())
	if err != nil {
		return nil, eris.Wrap(solver.ErrSolverFailure, err.Error())
	}
	if hs.Len() == 0 {
		return nil, eris.Wrap(solver.ErrSolverFailure, "mf6 head file is empty")
	}
	return hs, nil
}

// tail returns the last few lines of solver output for error messages.
func tail(s string) string {
	ln := strings.Split(strings.TrimSpace(s), "\n")
	if len(ln) > 5 {
		ln = ln[len(ln)-5:]
	}
	return strings.Join(ln, " | ")
}
