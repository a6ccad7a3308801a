package model

import (
	"math"

	"github.com/maseology/pumptest/drawdown"
	"github.com/maseology/pumptest/grid"
	"github.com/maseology/pumptest/solver"
)

// placement locates an observation well on the grid: the column holding its
// distance and the layers its screen overlaps.
type placement struct {
	well   *ObservationWell
	column int
	layers []int
}

func place(gd *grid.Definition, wells []ObservationWell) []placement {
	pl := make([]placement, len(wells))
	for i := range wells {
		w := &wells[i]
		pl[i] = placement{
			well:   w,
			column: gd.ColumnAt(w.Distance),
			layers: gd.OverlappingLayers(w.ScreenTop, w.ScreenBottom),
		}
	}
	return pl
}

// points lists the cells at which heads are reported.
func points(pl []placement) []solver.Point {
	var pts []solver.Point
	for _, p := range pl {
		for _, l := range p.layers {
			pts = append(pts, solver.Point{Name: p.well.ID, Layer: l, Column: p.column})
		}
	}
	return pts
}

// meanHead averages the defined heads of column c over layers ls.
func meanHead(st [][]float64, ls []int, c int) float64 {
	s, n := 0., 0
	for _, l := range ls {
		if v := st[l][c]; !math.IsNaN(v) {
			s += v
			n++
		}
	}
	if n == 0 {
		return math.NaN()
	}
	return s / float64(n)
}

// reported returns the steps scored for the analysis period with their
// times. Recovery-only times count from the end of pumping.
func (e *Engine) reported(hs *solver.HeadSeries) (steps []int, times []float64) {
	for k, t := range hs.Times {
		if e.in.Schedule.Period == RecoveryOnly {
			if hs.Period[k] < 1 {
				continue
			}
			t -= e.in.Schedule.PumpingLength
		}
		steps = append(steps, k)
		times = append(times, t)
	}
	return
}

// simulated returns the drawdown at a placement: static head less the mean
// head over the screened layers.
func (e *Engine) simulated(hs *solver.HeadSeries, p placement) drawdown.Series {
	steps, times := e.reported(hs)
	s := drawdown.Series{T: times, V: make([]float64, len(steps))}
	for i, k := range steps {
		s.V[i] = e.in.StaticHead - meanHead(hs.Heads[k], p.layers, p.column)
	}
	return s
}

// observed returns the observations that fall in the analysis period.
func (e *Engine) observed(w *ObservationWell) drawdown.Series {
	tp := e.in.Schedule.PumpingLength
	tol := nearzero * math.Max(1., tp)
	switch e.in.Schedule.Period {
	case PumpingOnly:
		return w.Observed.Filter(func(t float64) bool { return t <= tp+tol })
	case RecoveryOnly:
		return w.Observed.Filter(func(t float64) bool { return t > tp+tol })
	}
	return w.Observed.Filter(func(float64) bool { return true })
}

func (e *Engine) comparator() drawdown.Comparator {
	return drawdown.Comparator{
		Recovery:   e.in.Schedule.Period == RecoveryOnly,
		PumpingEnd: e.in.Schedule.PumpingLength,
	}
}
