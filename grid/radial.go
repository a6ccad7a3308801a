package grid

import (
	"github.com/rotisserie/eris"
)

// Radial holds the seeds of the radial (column) discretization. The first
// column is the well itself; the following columns start at ColumnSize and
// grow by Multiplier until the outer boundary is reached.
type Radial struct {
	WellRadius float64 // [m]
	Boundary   float64 // distance from the well axis to the outer (specified head) boundary [m]
	ColumnSize float64 // width of the first column outside the well [m]
	Multiplier float64
}

func (r Radial) check() error {
	switch {
	case r.WellRadius <= 0.:
		return eris.Wrapf(ErrGeometry, "well radius must be positive (got %v)", r.WellRadius)
	case r.Boundary <= r.WellRadius:
		return eris.Wrapf(ErrGeometry, "boundary distance (%v) must exceed the well radius (%v)", r.Boundary, r.WellRadius)
	case r.ColumnSize <= 0.:
		return eris.Wrapf(ErrGeometry, "column size must be positive (got %v)", r.ColumnSize)
	case r.Multiplier <= 0.:
		return eris.Wrapf(ErrGeometry, "column multiplier must be positive (got %v)", r.Multiplier)
	}
	return nil
}

// Columns returns the column widths (delr), the cumulative column boundaries
// (starting at 0 on the well axis) and the column centroids.
// The last column absorbs whatever remains so the widths sum to Boundary.
func (r Radial) Columns() (width, cumulative, centroid []float64, err error) {
	if err = r.check(); err != nil {
		return nil, nil, nil, err
	}

	width = []float64{r.WellRadius}
	sum, w := r.WellRadius, r.ColumnSize
	for sum+w < r.Boundary-tol {
		width = append(width, w)
		sum += w
		w *= r.Multiplier
		if len(width) > maxCols {
			return nil, nil, nil, eris.Wrapf(ErrGeometry, "column growth does not reach the boundary (multiplier %v)", r.Multiplier)
		}
	}
	if rem := r.Boundary - sum; rem > 0. {
		if len(width) == 1 {
			width = append(width, rem) // the well column keeps its radius
		} else {
			width[len(width)-1] += rem
		}
	}

	n := len(width)
	cumulative, centroid = make([]float64, n+1), make([]float64, n)
	for i, v := range width {
		cumulative[i+1] = cumulative[i] + v
		centroid[i] = (cumulative[i] + cumulative[i+1]) / 2.
	}
	cumulative[n] = r.Boundary
	return width, cumulative, centroid, nil
}
