package model

import (
	"context"
	"time"

	"github.com/maseology/pumptest/grid"
	"github.com/maseology/pumptest/hydraulic"
	"github.com/maseology/pumptest/solver"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// Engine runs a validated pumping test through a flow solver.
type Engine struct {
	in   *Input
	opts Options
	slv  solver.Solver
	gd   *grid.Definition
	tr   *hydraulic.Transformer
	well []solver.WellLayer
	obs  []placement
}

// NewEngine validates the input and discretizes it.
func NewEngine(in *Input, slv solver.Solver, opts Options) (*Engine, error) {
	gd, err := in.Validate()
	if err != nil {
		return nil, err
	}
	if slv == nil {
		return nil, eris.Wrap(ErrConfiguration, "no flow solver")
	}
	e := Engine{
		in:   in,
		opts: opts,
		slv:  slv,
		gd:   gd,
		tr:   hydraulic.NewTransformer(gd),
		obs:  place(gd, in.Wells),
	}
	sl := in.Geometry.ScreenTop - in.Geometry.ScreenBottom
	for _, l := range gd.OverlappingLayers(in.Geometry.ScreenTop, in.Geometry.ScreenBottom) {
		e.well = append(e.well, solver.WellLayer{Layer: l, Fraction: gd.Thickness[l] / sl})
	}
	zap.L().Debug("grid built",
		zap.Int("layers", gd.Nlay()),
		zap.Int("columns", gd.Ncol()),
		zap.Int("screen layers", len(e.well)),
	)
	return &e, nil
}

// Grid returns the discretization.
func (e *Engine) Grid() *grid.Definition { return e.gd }

func (e *Engine) periods() []solver.Period {
	s := e.in.Schedule
	ps := []solver.Period{{Length: s.PumpingLength, Steps: s.Steps, Multiplier: s.StepMultiplier, Rate: s.Rate}}
	if s.Period != PumpingOnly {
		ps = append(ps, solver.Period{Length: s.RecoveryLength, Steps: s.Steps, Multiplier: s.StepMultiplier})
	}
	return ps
}

func (e *Engine) solverInput(p Parameters) (*solver.Input, error) {
	prof, err := e.in.Profile.WithValues(p.K)
	if err != nil {
		return nil, eris.Wrap(ErrConfiguration, err.Error())
	}
	k, err := prof.AssignLayers(e.gd.Top, e.gd.Bottom)
	if err != nil {
		return nil, eris.Wrap(ErrConfiguration, err.Error())
	}
	cv, err := e.tr.Convert(k, p.Sy, p.Ss)
	if err != nil {
		return nil, eris.Wrap(ErrConfiguration, err.Error())
	}
	return &solver.Input{
		Grid:         e.gd,
		Props:        cv,
		Anisotropy:   e.in.Anisotropy,
		StartingHead: e.in.StaticHead,
		BoundaryHead: e.in.BoundaryHead,
		Periods:      e.periods(),
		Well:         e.well,
		Points:       points(e.obs),
	}, nil
}

// simulate makes one solver call in a workspace of its own.
func (e *Engine) simulate(ctx context.Context, p Parameters) (*solver.HeadSeries, error) {
	sin, err := e.solverInput(p)
	if err != nil {
		return nil, err
	}
	ws, err := solver.NewWorkspace(e.opts.WorkspaceRoot, e.opts.KeepWorkspace)
	if err != nil {
		return nil, err
	}
	defer ws.Release()
	return e.slv.Solve(ctx, ws, sin)
}

// Forward runs the model once with p and aggregates the result. A solver
// failure is returned as is, annotated with p.
func (e *Engine) Forward(ctx context.Context, p Parameters) (*Result, error) {
	start := time.Now()
	hs, err := e.simulate(ctx, p)
	if err != nil {
		return nil, eris.Wrapf(err, "forward run with %s", p)
	}
	solved := time.Since(start)
	r := e.aggregate(hs, p)
	if e.opts.Verbose {
		zap.L().Info("forward run timing", zap.Duration("solver", solved), zap.Duration("total", time.Since(start)))
	}
	zap.L().Info("forward run",
		zap.Stringer("parameters", p),
		zap.Int("steps", hs.Len()),
		zap.Float64("radius of influence", r.Summary.RadiusOfInfluence),
	)
	return r, nil
}
