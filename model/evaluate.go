package model

import (
	"context"
	"math"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/floats"
)

// Evaluation is one objective evaluation. A penalized evaluation has Value
// PenaltyValue and the Reason it could not be scored.
type Evaluation struct {
	Index        int       `json:"index"`
	Params       []float64 `json:"parameters"`
	Value        float64   `json:"objective"`
	Penalized    bool      `json:"penalized"`
	Reason       string    `json:"reason,omitempty"`
	MeanRMSE     float64   `json:"mean_rmse,omitempty"`
	MeanResidual float64   `json:"mean_total_residual_error,omitempty"`
}

func penalty(reason string) Evaluation {
	return Evaluation{Value: PenaltyValue, Penalized: true, Reason: reason}
}

// Objective is the weighted fit of mean RMSE and mean total residual, each
// normalized by its scale.
func (o Options) Objective(meanRMSE, meanResidual float64) float64 {
	mr, ms := o.MaxRMSE, o.MaxResidual
	if mr <= 0. {
		mr = maxRMSE
	}
	if ms <= 0. {
		ms = maxResidual
	}
	return weightRMSE*meanRMSE/mr + weightResidual*meanResidual/ms
}

// evaluate scores p. It never fails: anything that prevents scoring,
// a solver failure first of all, gives the penalty. A well without
// observations in the analysis period is left out; a well that has them but
// cannot be compared penalizes the whole evaluation.
func (e *Engine) evaluate(ctx context.Context, p Parameters) Evaluation {
	hs, err := e.simulate(ctx, p)
	if err != nil {
		return penalty(err.Error())
	}
	cp := e.comparator()
	var rmse, resid []float64
	for _, pl := range e.obs {
		obs := e.observed(pl.well)
		if obs.Len() == 0 {
			zap.L().Debug("well has no observations in the analysis period", zap.String("well", pl.well.ID))
			continue
		}
		c, err := cp.Compare(obs, e.simulated(hs, pl))
		if err != nil {
			return penalty("well " + pl.well.ID + ": " + err.Error())
		}
		rmse = append(rmse, c.RMSE)
		resid = append(resid, c.TotalResidual)
	}
	if len(rmse) == 0 {
		return penalty("no well could be compared")
	}
	n := float64(len(rmse))
	ev := Evaluation{MeanRMSE: floats.Sum(rmse) / n, MeanResidual: floats.Sum(resid) / n}
	ev.Value = e.opts.Objective(ev.MeanRMSE, ev.MeanResidual)
	if math.IsNaN(ev.Value) || math.IsInf(ev.Value, 0) {
		return penalty("objective is undefined")
	}
	return ev
}
