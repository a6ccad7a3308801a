// Package opt maps optimizer search vectors onto physical parameter values.
package opt

import (
	"math"
)

// LogSpace searches about an initial guess p0 in log space: p = p0·exp(x).
// The origin x = 0 is the initial guess and every p keeps the sign of p0.
type LogSpace struct {
	P0 []float64
}

// Dim returns the number of parameters.
func (s LogSpace) Dim() int { return len(s.P0) }

// Params maps a search vector to parameter values.
func (s LogSpace) Params(x []float64) []float64 {
	p := make([]float64, len(s.P0))
	for i, p0 := range s.P0 {
		p[i] = p0 * math.Exp(x[i])
	}
	return p
}

// X maps parameter values back to a search vector.
func (s LogSpace) X(p []float64) []float64 {
	x := make([]float64, len(s.P0))
	for i, p0 := range s.P0 {
		x[i] = math.Log(p[i] / p0)
	}
	return x
}

// Bounded searches the unit hypercube, each dimension mapped log-linearly
// onto [p0/Factor, p0·Factor].
type Bounded struct {
	P0     []float64
	Factor float64
}

// Dim returns the number of parameters.
func (s Bounded) Dim() int { return len(s.P0) }

// Range returns the bounds of parameter i.
func (s Bounded) Range(i int) (lo, hi float64) { return s.P0[i] / s.Factor, s.P0[i] * s.Factor }

// Params maps a vector to parameter values, each component clamped to [0,1]
// first so an unbounded search never leaves the range.
func (s Bounded) Params(u []float64) []float64 {
	p := make([]float64, len(s.P0))
	for i := range s.P0 {
		lo, hi := s.Range(i)
		p[i] = lo * math.Pow(hi/lo, clamp(u[i]))
	}
	return p
}

func clamp(u float64) float64 { return math.Max(0., math.Min(1., u)) }

// U maps parameter values back onto the unit hypercube, clamped to [0,1].
func (s Bounded) U(p []float64) []float64 {
	u := make([]float64, len(s.P0))
	for i := range s.P0 {
		lo, hi := s.Range(i)
		u[i] = clamp(math.Log(p[i]/lo) / math.Log(hi/lo))
	}
	return u
}
