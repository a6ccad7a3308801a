package hydraulic

import (
	"math"
	"testing"

	"github.com/maseology/pumptest/grid"
	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileHalfOpenLookup(t *testing.T) {
	p, err := NewProfile([]Interval{
		{Material: "clay", Top: -50., Bottom: -100., K: 1e-8},
		{Material: "sand", Top: 0., Bottom: -50., K: 1e-4},
	})
	require.NoError(t, err)

	assert.Equal(t, []float64{1e-4, 1e-8}, p.Values()) // sorted top first
	assert.Equal(t, 0, p.Lookup(0.))                   // top is inclusive
	assert.Equal(t, 0, p.Lookup(-25.))
	assert.Equal(t, 1, p.Lookup(-50.)) // shared boundary belongs to the interval below
	assert.Equal(t, -1, p.Lookup(-100.))
	assert.Equal(t, -1, p.Lookup(1.))
}

func TestProfileRejectsOverlap(t *testing.T) {
	_, err := NewProfile([]Interval{
		{Top: 0., Bottom: -60., K: 1.},
		{Top: -50., Bottom: -100., K: 1.},
	})
	assert.True(t, eris.Is(err, ErrProfile))

	_, err = NewProfile([]Interval{{Top: -10., Bottom: 0., K: 1.}})
	assert.True(t, eris.Is(err, ErrProfile))

	_, err = NewProfile(nil)
	assert.True(t, eris.Is(err, ErrProfile))
}

func TestAssignLayers(t *testing.T) {
	p, err := NewProfile([]Interval{
		{Top: 0., Bottom: -50., K: 2.},
		{Top: -50., Bottom: -100., K: 3.},
	})
	require.NoError(t, err)

	k, err := p.AssignLayers([]float64{0., -40., -60.}, []float64{-40., -60., -100.})
	require.NoError(t, err)
	assert.Equal(t, []float64{2., 3., 3.}, k) // midpoint -50 belongs to the lower interval

	_, err = p.AssignLayers([]float64{0., -100.}, []float64{-100., -120.})
	assert.True(t, eris.Is(err, ErrProfile))
}

func TestWithValues(t *testing.T) {
	p, err := NewProfile([]Interval{{Top: 0., Bottom: -1., K: 1.}, {Top: -1., Bottom: -2., K: 1.}})
	require.NoError(t, err)
	q, err := p.WithValues([]float64{5., 6.})
	require.NoError(t, err)
	assert.Equal(t, []float64{5., 6.}, q.Values())
	assert.Equal(t, []float64{1., 1.}, p.Values())
	_, err = p.WithValues([]float64{5.})
	assert.Error(t, err)
}

func singleColumn(r, width, thick float64) *grid.Definition {
	return &grid.Definition{
		Top:        []float64{thick},
		Bottom:     []float64{0.},
		Thickness:  []float64{thick},
		Width:      []float64{width},
		Cumulative: []float64{r - width/2., r + width/2.},
		Centroid:   []float64{r},
	}
}

func TestConvertScalesByCircumference(t *testing.T) {
	gd := singleColumn(10., 2., 3.)
	tr := NewTransformer(gd)
	cv, err := tr.Convert([]float64{1.}, .1, 1e-5)
	require.NoError(t, err)

	assert.InDelta(t, 62.83, cv.K[0][0], 1e-2)
	assert.InDelta(t, 2.*math.Pi*10., cv.K[0][0], 1e-12)
	assert.InDelta(t, .1*2.*math.Pi*10., cv.Sy[0][0], 1e-12)
	assert.InDelta(t, 1e-5*2.*math.Pi*10.*6., cv.Ss[0][0], 1e-15)

	k, sy, ss := tr.Invert(cv)
	assert.InDelta(t, 1., k[0], 1e-12)
	assert.InDelta(t, .1, sy, 1e-12)
	assert.InDelta(t, 1e-5, ss, 1e-15)
}

func TestConvertRoundTripOnBuiltGrid(t *testing.T) {
	gd, err := grid.Build(
		grid.Vertical{Top: 0., Bottom: -30., ScreenTop: -10., ScreenBottom: -20., ScreenTopDz: .5, ScreenBottomDz: .5, MultAbove: 1.5, MultBelow: 1.5, MultBetween: 1.2},
		grid.Radial{WellRadius: .1, Boundary: 200., ColumnSize: .05, Multiplier: 1.3},
	)
	require.NoError(t, err)
	tr := NewTransformer(gd)

	k := make([]float64, gd.Nlay())
	for l := range k {
		k[l] = 1e-4 * float64(l+1)
	}
	cv, err := tr.Convert(k, .2, 1e-6)
	require.NoError(t, err)
	require.Len(t, cv.K, gd.Nlay())
	require.Len(t, cv.K[0], gd.Ncol())

	for l := range k {
		for c := 0; c < gd.Ncol(); c++ {
			assert.Equal(t, tr.ConvertK(k[l], c), cv.K[l][c])
			assert.InDelta(t, k[l], tr.OriginalK(cv.K[l][c], c), 1e-15)
			assert.InDelta(t, .2, tr.OriginalSy(cv.Sy[l][c], c), 1e-12)
			assert.InDelta(t, 1e-6, tr.OriginalSs(cv.Ss[l][c], l, c), 1e-18)
		}
	}

	_, err = tr.Convert(k[1:], .2, 1e-6)
	assert.True(t, eris.Is(err, ErrProfile))
}
