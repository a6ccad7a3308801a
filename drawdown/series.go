package drawdown

import (
	"math"
	"sort"

	"github.com/rotisserie/eris"
)

// Series is a (time, drawdown) series; times in seconds.
type Series struct {
	T []float64 `json:"time_seconds"`
	V []float64 `json:"drawdown_meters"`
}

// Len returns the number of samples.
func (s Series) Len() int { return len(s.T) }

// Shift returns a copy with dt added to every time.
func (s Series) Shift(dt float64) Series {
	o := Series{T: make([]float64, len(s.T)), V: make([]float64, len(s.V))}
	for i, t := range s.T {
		o.T[i] = t + dt
	}
	copy(o.V, s.V)
	return o
}

// Filter returns the samples whose time satisfies keep.
func (s Series) Filter(keep func(t float64) bool) Series {
	var o Series
	for i, t := range s.T {
		if keep(t) {
			o.T = append(o.T, t)
			o.V = append(o.V, s.V[i])
		}
	}
	return o
}

// sorted returns the finite samples ordered by time; for repeated times the
// last sample wins.
func (s Series) sorted() Series {
	idx := make([]int, 0, len(s.T))
	for i := range s.T {
		if i < len(s.V) && !math.IsNaN(s.T[i]) && !math.IsNaN(s.V[i]) && !math.IsInf(s.V[i], 0) {
			idx = append(idx, i)
		}
	}
	sort.SliceStable(idx, func(a, b int) bool { return s.T[idx[a]] < s.T[idx[b]] })
	var o Series
	for _, i := range idx {
		if n := len(o.T); n > 0 && o.T[n-1] == s.T[i] {
			o.V[n-1] = s.V[i]
			continue
		}
		o.T = append(o.T, s.T[i])
		o.V = append(o.V, s.V[i])
	}
	return o
}

// At evaluates the series at t by linear interpolation, extrapolating the
// first or last segment outside its range. A single sample is constant; an
// empty series is undefined (NaN).
func (s Series) At(t float64) float64 {
	n := len(s.T)
	switch n {
	case 0:
		return math.NaN()
	case 1:
		return s.V[0]
	}
	i := sort.SearchFloat64s(s.T, t) // first index with T[i] >= t
	switch {
	case i <= 0:
		i = 1
	case i >= n:
		i = n - 1
	}
	t0, t1 := s.T[i-1], s.T[i]
	v0, v1 := s.V[i-1], s.V[i]
	return v0 + (v1-v0)*(t-t0)/(t1-t0)
}

// Resample evaluates a time-sorted series at each of ts.
func (s Series) Resample(ts []float64) []float64 {
	o := make([]float64, len(ts))
	for i, t := range ts {
		o[i] = s.At(t)
	}
	return o
}

// maxSamples caps the common time base of one comparison.
const maxSamples = 1000000

// commonTimes returns times from the first to the last observation spaced by
// the smallest positive gap between observations.
func commonTimes(obs []float64) ([]float64, error) {
	if len(obs) == 0 {
		return nil, nil
	}
	dt := math.Inf(1)
	for i := 1; i < len(obs); i++ {
		if d := obs[i] - obs[i-1]; d > 0. && d < dt {
			dt = d
		}
	}
	t0, tn := obs[0], obs[len(obs)-1]
	if math.IsInf(dt, 1) {
		return []float64{t0}, nil
	}
	f := math.Floor((tn-t0)/dt+1e-9) + 1.
	if !(f <= maxSamples) {
		return nil, eris.Wrapf(ErrComparison, "common time base too fine: %.0f samples at a %g s step", f, dt)
	}
	ts := make([]float64, int(f))
	for i := range ts {
		ts[i] = t0 + float64(i)*dt
	}
	return ts, nil
}
