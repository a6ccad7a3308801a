package grid

import (
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
)

func sampleVertical() Vertical {
	return Vertical{
		Top:            -121.84,
		Bottom:         -500.,
		ScreenTop:      -212.,
		ScreenBottom:   -378.,
		ScreenTopDz:    .01,
		ScreenBottomDz: .01,
		MultAbove:      1.6,
		MultBelow:      1.3,
		MultBetween:    1.1,
	}
}

func sampleRadial() Radial {
	return Radial{WellRadius: .22, Boundary: 500., ColumnSize: .01, Multiplier: 1.1}
}

func TestVerticalSpansAquifer(t *testing.T) {
	v := sampleVertical()
	top, bot, thk, err := v.Layers()
	require.NoError(t, err)
	require.NotEmpty(t, top)

	assert.InDelta(t, v.Top-v.Bottom, floats.Sum(thk), 1e-6)
	assert.Equal(t, v.Top, top[0])
	assert.Equal(t, v.Bottom, bot[len(bot)-1])
	for i := range thk {
		assert.Greater(t, thk[i], 0.)
		if i > 0 {
			assert.Equal(t, bot[i-1], top[i], "gap between layers %d and %d", i-1, i)
		}
	}
}

func TestVerticalScreenEdgesAreBoundaries(t *testing.T) {
	v := sampleVertical()
	top, bot, _, err := v.Layers()
	require.NoError(t, err)
	assert.Contains(t, top, v.ScreenTop)
	assert.Contains(t, bot, v.ScreenBottom)
}

func TestVerticalRefinedNearScreen(t *testing.T) {
	v := sampleVertical()
	top, _, thk, err := v.Layers()
	require.NoError(t, err)
	k := -1
	for i, z := range top {
		if z == v.ScreenTop {
			k = i
		}
	}
	require.Greater(t, k, 1)
	assert.InDelta(t, v.ScreenTopDz, thk[k], 1e-9)              // first screen layer is the seed
	assert.InDelta(t, v.ScreenTopDz*v.MultAbove, thk[k-1], 1e-9) // first layer above grows once
	assert.Less(t, thk[k-1], thk[k-2])
}

func TestVerticalUniformZones(t *testing.T) {
	v := Vertical{
		Top: 10., Bottom: 0., ScreenTop: 6., ScreenBottom: 4.,
		ScreenTopDz: .5, ScreenBottomDz: .5,
		MultAbove: 1., MultBelow: 1., MultBetween: 1.,
	}
	top, bot, thk, err := v.Layers()
	require.NoError(t, err)
	assert.InDelta(t, 10., floats.Sum(thk), 1e-9)
	for i := range thk {
		assert.InDelta(t, .5, thk[i], 1e-9, "layer %d [%v,%v]", i, top[i], bot[i])
	}
	assert.Len(t, thk, 20)
}

func TestVerticalZeroLengthScreen(t *testing.T) {
	v := Vertical{
		Top: 10., Bottom: 0., ScreenTop: 5., ScreenBottom: 5.,
		ScreenTopDz: 1., ScreenBottomDz: 1.,
		MultAbove: 1.2, MultBelow: 1.2, MultBetween: 1.2,
	}
	top, _, thk, err := v.Layers()
	require.NoError(t, err)
	assert.InDelta(t, 10., floats.Sum(thk), 1e-9)
	assert.Contains(t, top, 5.)
}

func TestVerticalInvalid(t *testing.T) {
	cases := map[string]func(*Vertical){
		"top below screen":      func(v *Vertical) { v.Top = -300. },
		"screen inverted":       func(v *Vertical) { v.ScreenBottom = -200. },
		"bottom above screen":   func(v *Vertical) { v.Bottom = -300. },
		"zero seed":             func(v *Vertical) { v.ScreenTopDz = 0. },
		"negative multiplier":   func(v *Vertical) { v.MultBelow = -1. },
		"never reaches the top": func(v *Vertical) { v.MultAbove = .5 },
	}
	for name, mod := range cases {
		t.Run(name, func(t *testing.T) {
			v := sampleVertical()
			mod(&v)
			_, _, _, err := v.Layers()
			require.Error(t, err)
			assert.True(t, eris.Is(err, ErrGeometry))
		})
	}
}

func TestRadialSumsToBoundary(t *testing.T) {
	r := sampleRadial()
	w, cum, cen, err := r.Columns()
	require.NoError(t, err)
	assert.InDelta(t, r.Boundary, floats.Sum(w), 1e-6)
	assert.Equal(t, r.WellRadius, w[0])
	assert.Len(t, cum, len(w)+1)
	assert.Equal(t, 0., cum[0])
	assert.InDelta(t, r.Boundary, cum[len(cum)-1], 1e-12)
	for i := 1; i < len(cen); i++ {
		assert.Greater(t, cen[i], cen[i-1])
	}
	assert.InDelta(t, r.WellRadius/2., cen[0], 1e-12)
}

func TestRadialGrowth(t *testing.T) {
	r := Radial{WellRadius: 1., Boundary: 10., ColumnSize: 1., Multiplier: 2.}
	w, _, cen, err := r.Columns()
	require.NoError(t, err)
	// 1 + 1 + 2 + 4 = 8, next (8) overshoots: last column absorbs the remaining 2
	assert.Equal(t, []float64{1., 1., 2., 6.}, w)
	assert.Equal(t, []float64{.5, 1.5, 3., 7.}, cen)
}

func TestRadialSingleStep(t *testing.T) {
	r := Radial{WellRadius: .5, Boundary: 1., ColumnSize: 5., Multiplier: 1.1}
	w, _, _, err := r.Columns()
	require.NoError(t, err)
	assert.Equal(t, []float64{.5, .5}, w)
}

func TestRadialInvalid(t *testing.T) {
	for _, r := range []Radial{
		{WellRadius: 0., Boundary: 10., ColumnSize: 1., Multiplier: 1.},
		{WellRadius: 1., Boundary: 1., ColumnSize: 1., Multiplier: 1.},
		{WellRadius: 1., Boundary: 10., ColumnSize: 1., Multiplier: 0.},
		{WellRadius: 1., Boundary: 1000., ColumnSize: 1., Multiplier: .5},
	} {
		_, _, _, err := r.Columns()
		assert.True(t, eris.Is(err, ErrGeometry), "%+v", r)
	}
}

func TestDefinitionLookups(t *testing.T) {
	d, err := Build(
		Vertical{Top: 10., Bottom: 0., ScreenTop: 6., ScreenBottom: 4., ScreenTopDz: 1., ScreenBottomDz: 1., MultAbove: 1., MultBelow: 1., MultBetween: 1.},
		Radial{WellRadius: 1., Boundary: 10., ColumnSize: 1., Multiplier: 2.},
	)
	require.NoError(t, err)
	assert.Equal(t, 10, d.Nlay())
	assert.Equal(t, 4, d.Ncol())
	assert.Equal(t, 10., d.Extent())

	assert.Equal(t, 0, d.LayerAt(10.))
	assert.Equal(t, 0, d.LayerAt(9.5))
	assert.Equal(t, 1, d.LayerAt(9.))
	assert.Equal(t, 9, d.LayerAt(0.))
	assert.Equal(t, -1, d.LayerAt(11.))

	assert.Equal(t, 0, d.ColumnAt(0.))
	assert.Equal(t, 1, d.ColumnAt(1.))
	assert.Equal(t, 3, d.ColumnAt(9.99))
	assert.Equal(t, 3, d.ColumnAt(10.))
	assert.Equal(t, -1, d.ColumnAt(10.5))

	assert.Equal(t, []int{4, 5}, d.OverlappingLayers(6., 4.))
	assert.Equal(t, []int{3, 4}, d.OverlappingLayers(6.5, 5.5))
	assert.Equal(t, []int{4}, d.OverlappingLayers(5.5, 5.5))
	assert.InDelta(t, 1., d.Area(0, 1), 1e-12)
	assert.InDelta(t, 9.5, d.Midpoint(0), 1e-12)
}
