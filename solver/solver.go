// Package solver defines the contract between the pumping-test model and the
// external groundwater-flow engine that runs the pseudo-radial grid.
package solver

import (
	"context"
	"math"

	"github.com/maseology/pumptest/grid"
	"github.com/maseology/pumptest/hydraulic"
	"github.com/rotisserie/eris"
)

// ErrSolverFailure is returned when the flow engine does not converge or does
// not terminate normally. No partial result accompanies it.
var ErrSolverFailure = eris.New("flow solver failure")

// Solver runs one simulation in the given workspace.
type Solver interface {
	Solve(ctx context.Context, ws *Workspace, in *Input) (*HeadSeries, error)
}

// Period is one stress period: constant pumping over its length, split into
// Steps time steps growing by Multiplier.
type Period struct {
	Length     float64 // [s]
	Steps      int
	Multiplier float64
	Rate       float64 // well rate, negative for extraction [m³/s]
}

// StepLengths returns the time step lengths of the period.
func (p Period) StepLengths() []float64 {
	if p.Steps <= 0 {
		return nil
	}
	dt := make([]float64, p.Steps)
	d := p.Length / float64(p.Steps)
	if p.Multiplier != 1. {
		d = p.Length * (p.Multiplier - 1.) / (math.Pow(p.Multiplier, float64(p.Steps)) - 1.)
	}
	for i := range dt {
		dt[i] = d
		d *= p.Multiplier
	}
	return dt
}

// WellLayer is a screened layer of the pumping well with its share of the rate,
// proportional to the layer thickness.
type WellLayer struct {
	Layer    int
	Fraction float64
}

// Point is a cell at which heads are reported.
type Point struct {
	Name          string
	Layer, Column int
}

// Input is everything the solver needs for one run.
type Input struct {
	Grid         *grid.Definition
	Props        *hydraulic.Converted
	Anisotropy   float64 // Kv/Kh
	StartingHead float64 // [m]
	BoundaryHead float64 // specified head on the outer column [m]
	Periods      []Period
	Well         []WellLayer
	Points       []Point
}

// Check returns an error when the input is inconsistent with its grid.
func (in *Input) Check() error {
	if in.Grid == nil || in.Props == nil {
		return eris.New("solver input has no grid or properties")
	}
	nl, nc := in.Grid.Nlay(), in.Grid.Ncol()
	if len(in.Props.K) != nl || len(in.Props.Ss) != nl || len(in.Props.Sy) != nl {
		return eris.Errorf("property arrays do not match %d layers", nl)
	}
	for l := 0; l < nl; l++ {
		if len(in.Props.K[l]) != nc || len(in.Props.Ss[l]) != nc || len(in.Props.Sy[l]) != nc {
			return eris.Errorf("property arrays of layer %d do not match %d columns", l, nc)
		}
	}
	if len(in.Periods) == 0 {
		return eris.New("no stress periods")
	}
	for i, p := range in.Periods {
		if p.Length <= 0. || p.Steps <= 0 || p.Multiplier <= 0. {
			return eris.Errorf("stress period %d is invalid: %+v", i+1, p)
		}
	}
	for _, w := range in.Well {
		if w.Layer < 0 || w.Layer >= nl {
			return eris.Errorf("well layer %d outside the grid", w.Layer)
		}
	}
	for _, p := range in.Points {
		if p.Layer < 0 || p.Layer >= nl || p.Column < 0 || p.Column >= nc {
			return eris.Errorf("observation point %s (%d,%d) outside the grid", p.Name, p.Layer, p.Column)
		}
	}
	return nil
}

// HeadSeries holds simulated heads at the end of every time step.
type HeadSeries struct {
	Times  []float64     // cumulative simulation time [s]
	Period []int         // zero-based stress period of each step
	Heads  [][][]float64 // [step][layer][column]
}

// Len returns the number of time steps.
func (h *HeadSeries) Len() int { return len(h.Times) }

// At returns the head of cell (l,c) at every step.
func (h *HeadSeries) At(l, c int) []float64 {
	o := make([]float64, len(h.Heads))
	for k := range h.Heads {
		o[k] = h.Heads[k][l][c]
	}
	return o
}

// Nearest returns the step whose time is closest to t.
func (h *HeadSeries) Nearest(t float64) int {
	k, best := 0, -1.
	for i, v := range h.Times {
		d := math.Abs(v - t)
		if best < 0. || d < best {
			k, best = i, d
		}
	}
	return k
}
