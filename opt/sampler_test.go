package opt

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLogSpace(t *testing.T) {
	s := LogSpace{P0: []float64{1e-4, .2, 1e-6}}
	assert.Equal(t, 3, s.Dim())
	p := s.Params([]float64{0., 0., 0.})
	assert.InDeltaSlice(t, s.P0, p, 1e-18)

	x := s.X([]float64{2e-4, .1, 1e-6})
	back := s.Params(x)
	assert.InDelta(t, 2e-4, back[0], 1e-15)
	assert.InDelta(t, .1, back[1], 1e-12)
	assert.InDelta(t, 0., x[2], 1e-12)
}

func TestBounded(t *testing.T) {
	s := Bounded{P0: []float64{1e-4, .2}, Factor: 100.}
	lo, hi := s.Range(0)
	assert.InDelta(t, 1e-6, lo, 1e-18)
	assert.InDelta(t, 1e-2, hi, 1e-15)

	assert.InDeltaSlice(t, []float64{1e-6, .002}, s.Params([]float64{0., 0.}), 1e-12)
	assert.InDeltaSlice(t, []float64{1e-2, 20.}, s.Params([]float64{1., 1.}), 1e-9)
	assert.InDeltaSlice(t, []float64{1e-6, 20.}, s.Params([]float64{-.3, 1.7}), 1e-9)

	assert.InDeltaSlice(t, []float64{.5, .5}, s.U(s.P0), 1e-12)
	assert.Equal(t, []float64{0., 1.}, s.U([]float64{1e-9, 1e6}))
}
