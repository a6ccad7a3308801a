package grid

import (
	"math"

	"github.com/rotisserie/eris"
)

// ErrGeometry is returned when a grid cannot be built from the given seeds.
var ErrGeometry = eris.New("invalid grid geometry")

const (
	tol       = 1e-9
	maxLayers = 5000
	maxCols   = 5000
)

// Definition is the pseudo-radial grid handed to the solver: one row,
// layers ordered top to bottom, columns ordered outward from the well axis.
type Definition struct {
	Top, Bottom, Thickness []float64 // per layer [m]
	Width                  []float64 // column widths (delr) [m]
	Cumulative             []float64 // column boundaries, len(Width)+1, starting at 0 [m]
	Centroid               []float64 // column midpoints [m]
}

// Build combines a vertical and radial discretization into a grid definition.
func Build(v Vertical, r Radial) (*Definition, error) {
	top, bot, thk, err := v.Layers()
	if err != nil {
		return nil, err
	}
	w, cum, cen, err := r.Columns()
	if err != nil {
		return nil, err
	}
	return &Definition{
		Top:        top,
		Bottom:     bot,
		Thickness:  thk,
		Width:      w,
		Cumulative: cum,
		Centroid:   cen,
	}, nil
}

// Nlay returns the number of layers.
func (d *Definition) Nlay() int { return len(d.Top) }

// Ncol returns the number of columns.
func (d *Definition) Ncol() int { return len(d.Width) }

// Extent returns the outer boundary distance.
func (d *Definition) Extent() float64 { return d.Cumulative[len(d.Cumulative)-1] }

// Area returns the vertical footprint (thickness × width) of cell (l,c).
func (d *Definition) Area(l, c int) float64 { return d.Thickness[l] * d.Width[c] }

// Midpoint returns the elevation of the middle of layer l.
func (d *Definition) Midpoint(l int) float64 { return (d.Top[l] + d.Bottom[l]) / 2. }

// LayerAt returns the index of the layer whose elevation range holds z, as
// (bottom, top]; the bottom-most layer also holds its bottom.
func (d *Definition) LayerAt(z float64) int {
	for l := range d.Top {
		if z <= d.Top[l]+tol && z > d.Bottom[l] {
			return l
		}
	}
	if n := len(d.Bottom); n > 0 && math.Abs(z-d.Bottom[n-1]) <= tol {
		return n - 1
	}
	return -1
}

// ColumnAt returns the index of the column whose radial span [inner, outer)
// holds distance r; the outermost column also holds the boundary itself.
func (d *Definition) ColumnAt(r float64) int {
	n := len(d.Width)
	if r < 0. || r > d.Cumulative[n]+tol {
		return -1
	}
	for c := 0; c < n; c++ {
		if r < d.Cumulative[c+1] {
			return c
		}
	}
	return n - 1
}

// OverlappingLayers returns the layers sharing a positive length with the
// interval [bottom, top]. A zero-length interval returns the layer holding it.
func (d *Definition) OverlappingLayers(top, bottom float64) []int {
	if top < bottom {
		top, bottom = bottom, top
	}
	if top-bottom <= tol {
		if l := d.LayerAt(top); l >= 0 {
			return []int{l}
		}
		return nil
	}
	var ls []int
	for l := range d.Top {
		if d.Top[l] > bottom+tol && d.Bottom[l] < top-tol {
			ls = append(ls, l)
		}
	}
	return ls
}
