package drawdown

import (
	"math"

	"github.com/rotisserie/eris"
	"gonum.org/v1/gonum/floats"
)

// ErrComparison is returned when observed and simulated drawdown share no
// defined sample on the common time base.
var ErrComparison = eris.New("no overlapping observed and simulated drawdown")

// Comparison holds both series resampled onto the common time base and the fit
// between them. Residuals are observed minus simulated.
type Comparison struct {
	Times         []float64 `json:"interpolated_times"`
	Observed      []float64 `json:"interpolated_observed_drawdown"`
	Simulated     []float64 `json:"interpolated_simulated_drawdown"`
	N             int       `json:"defined_samples"`
	RMSE          float64   `json:"rmse"`
	TotalResidual float64   `json:"total_residual_error"`
	NSE           *float64  `json:"nse,omitempty"`
	KGE           *float64  `json:"kge,omitempty"`
	Bias          *float64  `json:"bias,omitempty"`
}

// Comparator reconciles one well's observed and simulated drawdown.
// When Recovery is set, simulated times are counted from the start of the
// recovery period and are moved forward by PumpingEnd before resampling.
type Comparator struct {
	Recovery   bool
	PumpingEnd float64 // [s]
}

// Compare resamples both series onto a time base running from the first to
// the last observation with a step equal to the smallest observed gap, then
// scores the residuals where both are defined.
func (cp Comparator) Compare(obs, sim Series) (*Comparison, error) {
	o, s := obs.sorted(), sim.sorted()
	if cp.Recovery {
		s = s.Shift(cp.PumpingEnd)
	}
	if o.Len() == 0 {
		return nil, eris.Wrap(ErrComparison, "observed series is empty")
	}
	if s.Len() == 0 {
		return nil, eris.Wrap(ErrComparison, "simulated series is empty")
	}

	ts, err := commonTimes(o.T)
	if err != nil {
		return nil, err
	}
	c := Comparison{
		Times:     ts,
		Observed:  o.Resample(ts),
		Simulated: s.Resample(ts),
	}

	ov, sv := make([]float64, 0, len(ts)), make([]float64, 0, len(ts))
	for i := range ts {
		if defined(c.Observed[i]) && defined(c.Simulated[i]) {
			ov = append(ov, c.Observed[i])
			sv = append(sv, c.Simulated[i])
		}
	}
	if len(ov) == 0 {
		return nil, eris.Wrapf(ErrComparison, "no defined residual over %d common times", len(ts))
	}

	c.N = len(ov)
	c.RMSE = rmse(ov, sv)
	c.TotalResidual = floats.Distance(ov, sv, 1)
	if len(ov) > 1 {
		c.NSE = finite(nse(ov, sv))
		c.KGE = finite(kge(ov, sv))
		c.Bias = finite(bias(ov, sv))
	}
	return &c, nil
}

func defined(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

func finite(v float64) *float64 {
	if !defined(v) {
		return nil
	}
	return &v
}
