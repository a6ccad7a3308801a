package theis

import (
	"context"
	"math"
	"testing"

	"github.com/maseology/pumptest/grid"
	"github.com/maseology/pumptest/hydraulic"
	"github.com/maseology/pumptest/solver"
	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWellFunction(t *testing.T) {
	for u, w := range map[float64]float64{
		1e-4: 8.6332,
		.01:  4.0379,
		.1:   1.8229,
		1.:   .21938,
		2.:   .048901,
		5.:   .0011483,
	} {
		assert.InEpsilon(t, w, W(u), 1e-4, "u=%g", u)
	}
	assert.Equal(t, 0., W(800.))
	assert.True(t, math.IsInf(W(0.), 1))
}

func singleLayer(t *testing.T, k, sy, ss float64) (*grid.Definition, *hydraulic.Converted) {
	gd, err := grid.Build(
		grid.Vertical{Top: 0., Bottom: -10., ScreenTop: -2., ScreenBottom: -8., ScreenTopDz: 2., ScreenBottomDz: 2., MultAbove: 1., MultBelow: 1., MultBetween: 1.},
		grid.Radial{WellRadius: .1, Boundary: 500., ColumnSize: 1., Multiplier: 1.2},
	)
	require.NoError(t, err)
	kk := make([]float64, gd.Nlay())
	for l := range kk {
		kk[l] = k
	}
	cv, err := hydraulic.NewTransformer(gd).Convert(kk, sy, ss)
	require.NoError(t, err)
	return gd, cv
}

func TestSolveMatchesTheis(t *testing.T) {
	gd, cv := singleLayer(t, 1e-4, 0., 1e-5)
	in := &solver.Input{
		Grid: gd, Props: cv, Anisotropy: 1., StartingHead: 0., BoundaryHead: 0.,
		Periods: []solver.Period{{Length: 3600., Steps: 5, Multiplier: 1., Rate: -.01}},
	}
	hs, err := Solver{}.Solve(context.Background(), nil, in)
	require.NoError(t, err)
	require.Equal(t, 5, hs.Len())
	assert.InDelta(t, 3600., hs.Times[4], 1e-9)

	tr, sc := 1e-4*10., 1e-5*10.
	c := 3
	r := gd.Centroid[c]
	want := .01 / (4. * math.Pi * tr) * W(r*r*sc/(4.*tr*3600.))
	assert.InDelta(t, -want, hs.Heads[4][0][c], 1e-9)
	assert.Equal(t, hs.Heads[4][0], hs.Heads[4][gd.Nlay()-1])

	// drawdown grows with time and decays with distance
	assert.Less(t, hs.Heads[4][0][c], hs.Heads[0][0][c])
	assert.Less(t, hs.Heads[4][0][1], hs.Heads[4][0][c])
}

func TestSolveRecoveryRebounds(t *testing.T) {
	gd, cv := singleLayer(t, 1e-4, .1, 1e-5)
	in := &solver.Input{
		Grid: gd, Props: cv, Anisotropy: 1., StartingHead: 20., BoundaryHead: 20.,
		Periods: []solver.Period{
			{Length: 3600., Steps: 10, Multiplier: 1.2, Rate: -.01},
			{Length: 3600., Steps: 10, Multiplier: 1.2},
		},
	}
	hs, err := Solver{}.Solve(context.Background(), nil, in)
	require.NoError(t, err)
	require.Equal(t, 20, hs.Len())
	assert.Equal(t, 1, hs.Period[10])
	h := hs.At(0, 2)
	assert.Less(t, h[9], 20.)
	assert.Greater(t, h[19], h[9])
	assert.LessOrEqual(t, h[19], 20.)
}

func TestSolveFailure(t *testing.T) {
	gd, cv := singleLayer(t, 0., 0., 0.)
	in := &solver.Input{
		Grid: gd, Props: cv, Anisotropy: 1.,
		Periods: []solver.Period{{Length: 60., Steps: 1, Multiplier: 1., Rate: -.01}},
	}
	_, err := Solver{}.Solve(context.Background(), nil, in)
	assert.True(t, eris.Is(err, solver.ErrSolverFailure))

	_, cv = singleLayer(t, 1e-4, .1, 1e-5)
	in.Props = cv
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = Solver{}.Solve(ctx, nil, in)
	assert.True(t, eris.Is(err, solver.ErrSolverFailure))
}
