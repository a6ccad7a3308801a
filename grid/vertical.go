package grid

import (
	"github.com/rotisserie/eris"
)

// Vertical holds the seeds of the vertical (layer) discretization.
// Layers are finest at the screen edges and grow geometrically away from them:
// upward to the aquifer top by MultAbove, downward to the aquifer bottom by
// MultBelow, and inward to the screen midpoint by MultBetween.
type Vertical struct {
	Top, Bottom                 float64 // aquifer top and bottom elevations [m]
	ScreenTop, ScreenBottom     float64 // pumping well screen elevations [m]
	ScreenTopDz, ScreenBottomDz float64 // seed layer thicknesses at the screen top and bottom [m]
	MultAbove, MultBelow        float64
	MultBetween                 float64
}

func (v Vertical) check() error {
	switch {
	case !(v.Top > v.ScreenTop):
		return eris.Wrapf(ErrGeometry, "aquifer top (%v) must be above the screen top (%v)", v.Top, v.ScreenTop)
	case v.ScreenTop < v.ScreenBottom:
		return eris.Wrapf(ErrGeometry, "screen top (%v) is below the screen bottom (%v)", v.ScreenTop, v.ScreenBottom)
	case !(v.ScreenBottom > v.Bottom):
		return eris.Wrapf(ErrGeometry, "screen bottom (%v) must be above the aquifer bottom (%v)", v.ScreenBottom, v.Bottom)
	case v.ScreenTopDz <= 0. || v.ScreenBottomDz <= 0.:
		return eris.Wrapf(ErrGeometry, "seed layer thicknesses must be positive (got %v, %v)", v.ScreenTopDz, v.ScreenBottomDz)
	case v.MultAbove <= 0. || v.MultBelow <= 0. || v.MultBetween <= 0.:
		return eris.Wrapf(ErrGeometry, "layer multipliers must be positive (got %v, %v, %v)", v.MultAbove, v.MultBelow, v.MultBetween)
	}
	return nil
}

// Layers returns layer top and bottom elevations, ordered from the aquifer top
// down, along with their thicknesses. The stack spans exactly [Bottom, Top] and
// the screen top and bottom always fall on layer boundaries.
func (v Vertical) Layers() (top, bottom, thickness []float64, err error) {
	if err = v.check(); err != nil {
		return nil, nil, nil, err
	}

	// above screen: grow upward from the screen top, trimming the last layer at the aquifer top
	up := []float64{}
	z, dz := v.ScreenTop, v.ScreenTopDz
	for z < v.Top-tol {
		dz *= v.MultAbove
		z += dz
		if z > v.Top {
			z = v.Top
		}
		up = append(up, z)
		if len(up) > maxLayers {
			return nil, nil, nil, eris.Wrapf(ErrGeometry, "above-screen refinement does not reach the aquifer top (multiplier %v)", v.MultAbove)
		}
	}
	if n := len(up); n > 0 {
		up[n-1] = v.Top
	}

	// within screen: grow from both edges toward the midpoint, the upper side may land on it
	var scrTop, scrBot []float64
	if v.ScreenTop-v.ScreenBottom > tol {
		mid := (v.ScreenTop + v.ScreenBottom) / 2.
		z, dz = v.ScreenTop, v.ScreenTopDz
		for z-dz >= mid-tol {
			z -= dz
			scrTop = append(scrTop, z)
			dz *= v.MultBetween
			if len(scrTop) > maxLayers {
				return nil, nil, nil, eris.Wrapf(ErrGeometry, "screen refinement does not reach the screen midpoint (multiplier %v)", v.MultBetween)
			}
		}
		z, dz = v.ScreenBottom, v.ScreenBottomDz
		for z+dz < mid-tol {
			z += dz
			scrBot = append(scrBot, z)
			dz *= v.MultBetween
			if len(scrBot) > maxLayers {
				return nil, nil, nil, eris.Wrapf(ErrGeometry, "screen refinement does not reach the screen midpoint (multiplier %v)", v.MultBetween)
			}
		}
	}

	// below screen: grow downward from the screen bottom, trimming the last layer at the aquifer bottom
	down := []float64{}
	z, dz = v.ScreenBottom, v.ScreenBottomDz
	for z > v.Bottom+tol {
		dz *= v.MultBelow
		z -= dz
		if z < v.Bottom {
			z = v.Bottom
		}
		down = append(down, z)
		if len(down) > maxLayers {
			return nil, nil, nil, eris.Wrapf(ErrGeometry, "below-screen refinement does not reach the aquifer bottom (multiplier %v)", v.MultBelow)
		}
	}
	if n := len(down); n > 0 {
		down[n-1] = v.Bottom
	}

	// assemble layer boundaries, top down
	bnds := make([]float64, 0, len(up)+len(scrTop)+len(scrBot)+len(down)+2)
	for i := len(up) - 1; i >= 0; i-- {
		bnds = append(bnds, up[i])
	}
	bnds = append(bnds, v.ScreenTop)
	bnds = append(bnds, scrTop...)
	for i := len(scrBot) - 1; i >= 0; i-- {
		bnds = append(bnds, scrBot[i])
	}
	if v.ScreenTop-v.ScreenBottom > tol {
		bnds = append(bnds, v.ScreenBottom)
	}
	bnds = append(bnds, down...)

	n := len(bnds) - 1
	top, bottom, thickness = make([]float64, n), make([]float64, n), make([]float64, n)
	for i := 0; i < n; i++ {
		top[i], bottom[i] = bnds[i], bnds[i+1]
		thickness[i] = top[i] - bottom[i]
		if thickness[i] <= 0. {
			return nil, nil, nil, eris.Wrapf(ErrGeometry, "layer %d has non-positive thickness %v", i, thickness[i])
		}
	}
	return top, bottom, thickness, nil
}
