package hydraulic

import (
	"sort"

	"github.com/rotisserie/eris"
)

// ErrProfile is returned when a conductivity profile is malformed or does not
// cover the model layers.
var ErrProfile = eris.New("invalid hydraulic conductivity profile")

// Interval assigns a horizontal hydraulic conductivity to the elevation range
// (Bottom, Top]: the top elevation is included, the bottom elevation belongs to
// the interval below.
type Interval struct {
	Material    string
	Top, Bottom float64 // [m]
	K           float64 // [m/s]
}

// Contains reports whether elevation z falls in (Bottom, Top].
func (iv Interval) Contains(z float64) bool { return z <= iv.Top && z > iv.Bottom }

// Profile is a depth-ordered (top first), non-overlapping interval table.
type Profile struct {
	iv []Interval
}

// NewProfile sorts the intervals top first and rejects empty, inverted or
// overlapping ranges. Gaps are allowed here; coverage is checked per grid.
func NewProfile(ivs []Interval) (Profile, error) {
	if len(ivs) == 0 {
		return Profile{}, eris.Wrap(ErrProfile, "no intervals given")
	}
	s := make([]Interval, len(ivs))
	copy(s, ivs)
	sort.SliceStable(s, func(i, j int) bool { return s[i].Top > s[j].Top })
	for i, v := range s {
		if !(v.Top > v.Bottom) {
			return Profile{}, eris.Wrapf(ErrProfile, "interval %q top (%v) must be above its bottom (%v)", v.Material, v.Top, v.Bottom)
		}
		if v.K < 0. {
			return Profile{}, eris.Wrapf(ErrProfile, "interval %q has negative conductivity %v", v.Material, v.K)
		}
		if i > 0 && v.Top > s[i-1].Bottom {
			return Profile{}, eris.Wrapf(ErrProfile, "intervals (%v, %v] and (%v, %v] overlap", s[i-1].Bottom, s[i-1].Top, v.Bottom, v.Top)
		}
	}
	return Profile{iv: s}, nil
}

// Len returns the number of intervals.
func (p Profile) Len() int { return len(p.iv) }

// Intervals returns a copy of the interval table, top first.
func (p Profile) Intervals() []Interval {
	o := make([]Interval, len(p.iv))
	copy(o, p.iv)
	return o
}

// Values returns the conductivity of each interval, top first.
func (p Profile) Values() []float64 {
	o := make([]float64, len(p.iv))
	for i, v := range p.iv {
		o[i] = v.K
	}
	return o
}

// WithValues returns a copy of the profile holding the given conductivities.
func (p Profile) WithValues(k []float64) (Profile, error) {
	if len(k) != len(p.iv) {
		return Profile{}, eris.Wrapf(ErrProfile, "%d values given for %d intervals", len(k), len(p.iv))
	}
	o := p.Intervals()
	for i := range o {
		o[i].K = k[i]
	}
	return Profile{iv: o}, nil
}

// Lookup returns the index of the interval holding elevation z, or -1.
func (p Profile) Lookup(z float64) int {
	for i, v := range p.iv {
		if v.Contains(z) {
			return i
		}
	}
	return -1
}

// AssignLayers returns the conductivity of each layer, taken from the interval
// holding the layer midpoint. Every midpoint must be covered.
func (p Profile) AssignLayers(top, bottom []float64) ([]float64, error) {
	if len(top) != len(bottom) {
		return nil, eris.Wrapf(ErrProfile, "%d layer tops but %d bottoms", len(top), len(bottom))
	}
	k := make([]float64, len(top))
	for l := range top {
		z := (top[l] + bottom[l]) / 2.
		i := p.Lookup(z)
		if i < 0 {
			return nil, eris.Wrapf(ErrProfile, "layer %d midpoint %v m is not covered by any interval", l, z)
		}
		k[l] = p.iv[i].K
	}
	return k, nil
}
