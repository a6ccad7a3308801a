package hydraulic

import (
	"math"

	"github.com/maseology/pumptest/grid"
	"github.com/rotisserie/eris"
)

const twoPi = 2. * math.Pi

// Converted holds hydraulic properties rescaled for the one-row Cartesian
// grid that stands in for the radial geometry.
type Converted struct {
	K  [][]float64 // [layer][column]
	Sy [][]float64 // [layer][column], one identical row per layer
	Ss [][]float64 // [layer][column]
}

// Transformer scales radial-flow properties by the circumference 2πr of each
// column centroid so that flow rates and storage volumes are preserved.
type Transformer struct {
	gd *grid.Definition
}

// NewTransformer returns a transformer for the given grid.
func NewTransformer(gd *grid.Definition) *Transformer { return &Transformer{gd: gd} }

// Convert returns converted properties from per-layer conductivity k and
// scalar specific yield sy and specific storage ss:
//
//	K'  = K × 2πr
//	Sy' = Sy × 2πr
//	Ss' = Ss × 2πr × thickness × width
func (t *Transformer) Convert(k []float64, sy, ss float64) (*Converted, error) {
	nl, nc := t.gd.Nlay(), t.gd.Ncol()
	if len(k) != nl {
		return nil, eris.Wrapf(ErrProfile, "%d conductivities given for %d layers", len(k), nl)
	}
	syrow := make([]float64, nc)
	for c, r := range t.gd.Centroid {
		syrow[c] = sy * twoPi * r
	}
	cv := Converted{
		K:  make([][]float64, nl),
		Sy: make([][]float64, nl),
		Ss: make([][]float64, nl),
	}
	for l := 0; l < nl; l++ {
		cv.K[l], cv.Ss[l] = make([]float64, nc), make([]float64, nc)
		cv.Sy[l] = syrow
		for c, r := range t.gd.Centroid {
			cv.K[l][c] = t.ConvertK(k[l], c)
			cv.Ss[l][c] = ss * twoPi * r * t.gd.Area(l, c)
		}
	}
	return &cv, nil
}

// ConvertK returns the converted value of a single conductivity at column c.
func (t *Transformer) ConvertK(k float64, c int) float64 { return k * twoPi * t.gd.Centroid[c] }

// OriginalK inverts the conductivity (or specific yield) scaling at column c.
func (t *Transformer) OriginalK(kc float64, c int) float64 { return kc / (twoPi * t.gd.Centroid[c]) }

// OriginalSy inverts the specific yield scaling at column c.
func (t *Transformer) OriginalSy(syc float64, c int) float64 {
	return syc / (twoPi * t.gd.Centroid[c])
}

// OriginalSs inverts the specific storage scaling at cell (l,c).
func (t *Transformer) OriginalSs(ssc float64, l, c int) float64 {
	return ssc / (t.gd.Centroid[c] * twoPi * t.gd.Area(l, c))
}

// Invert recovers per-layer conductivity, specific yield and specific storage
// from a converted set, reading the first column.
func (t *Transformer) Invert(cv *Converted) (k []float64, sy, ss float64) {
	k = make([]float64, len(cv.K))
	for l := range cv.K {
		k[l] = t.OriginalK(cv.K[l][0], 0)
	}
	if len(cv.Sy) > 0 {
		sy = t.OriginalSy(cv.Sy[0][0], 0)
	}
	if len(cv.Ss) > 0 {
		ss = t.OriginalSs(cv.Ss[0][0], 0, 0)
	}
	return
}
