// Package theis is an analytic stand-in for the numerical flow engine: the
// Theis solution for a fully penetrating well, superposed across stress
// periods and evaluated at every column centroid.
package theis

import (
	"context"
	"math"

	"github.com/maseology/pumptest/hydraulic"
	"github.com/maseology/pumptest/solver"
	"github.com/rotisserie/eris"
)

// Solver is the solver.Solver computing Theis drawdown.
type Solver struct{}

// Solve ignores the workspace; nothing is written.
func (Solver) Solve(ctx context.Context, _ *solver.Workspace, in *solver.Input) (*solver.HeadSeries, error) {
	if err := in.Check(); err != nil {
		return nil, eris.Wrap(err, "theis: invalid input")
	}
	gd := in.Grid
	nl, nc := gd.Nlay(), gd.Ncol()

	k, sy, ss := hydraulic.NewTransformer(gd).Invert(in.Props)
	tr, sc := 0., sy
	for l := 0; l < nl; l++ {
		tr += k[l] * gd.Thickness[l]
		sc += ss * gd.Thickness[l]
	}
	if !(tr > 0.) || !(sc > 0.) || math.IsInf(tr, 0) || math.IsInf(sc, 0) {
		return nil, eris.Wrapf(solver.ErrSolverFailure, "theis: transmissivity %g and storativity %g must be positive", tr, sc)
	}

	// rate changes and the times they take effect
	type change struct{ t, dq float64 }
	var chg []change
	q, t0 := 0., 0.
	for _, p := range in.Periods {
		if p.Rate != q {
			chg = append(chg, change{t0, p.Rate - q})
			q = p.Rate
		}
		t0 += p.Length
	}

	hs := solver.HeadSeries{}
	t := 0.
	for ip, p := range in.Periods {
		for _, dt := range p.StepLengths() {
			if err := ctx.Err(); err != nil {
				return nil, eris.Wrapf(solver.ErrSolverFailure, "theis: %v", err)
			}
			t += dt
			row := make([]float64, nc)
			for c, r := range gd.Centroid {
				s := 0.
				for _, ch := range chg {
					if el := t - ch.t; el > 0. {
						s -= ch.dq / (4. * math.Pi * tr) * W(r*r*sc/(4.*tr*el))
					}
				}
				row[c] = in.StartingHead - s
				if math.IsNaN(row[c]) || math.IsInf(row[c], 0) {
					return nil, eris.Wrapf(solver.ErrSolverFailure, "theis: undefined head at r=%g t=%g", r, t)
				}
			}
			st := make([][]float64, nl)
			for l := range st {
				st[l] = row
			}
			hs.Times = append(hs.Times, t)
			hs.Period = append(hs.Period, ip)
			hs.Heads = append(hs.Heads, st)
		}
	}
	return &hs, nil
}
