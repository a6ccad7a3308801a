package model

import (
	"math"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/maseology/pumptest/drawdown"
	"github.com/maseology/pumptest/solver"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/floats"
)

// Result is the document produced by a forward run, and by a calibration
// when Optimization is set.
type Result struct {
	Metadata        Metadata      `json:"metadata"`
	Summary         Summary       `json:"summary"`
	SimulationTimes []float64     `json:"simulation_times"`
	Distances       []float64     `json:"radial_distances_meters"` // column centroids
	Wells           []WellResult  `json:"wells"`
	Optimization    *Optimization `json:"optimization_results,omitempty"`
}

type Metadata struct {
	RunID          string     `json:"run_id"`
	Mode           string     `json:"mode"`
	SimulationType Period     `json:"simulation_type"`
	PumpingLength  float64    `json:"pumping_length_seconds"`
	Steps          int        `json:"total_simulation_time_steps"`
	GeneratedAt    time.Time  `json:"generated_at"`
	Parameters     Parameters `json:"parameters"`
}

type Summary struct {
	RadiusOfInfluence float64  `json:"radius_of_influence_meters"`
	Wells             int      `json:"total_wells_analyzed"`
	Compared          int      `json:"wells_compared"`
	MeanRMSE          *float64 `json:"mean_rmse,omitempty"`
	MeanResidual      *float64 `json:"mean_total_residual_error,omitempty"`
}

// WellResult is the entry of one observation well. A well that could not be
// compared carries the reason in Error and no Comparison.
type WellResult struct {
	ID         string               `json:"well_id"`
	Distance   float64              `json:"distance"`
	Column     int                  `json:"column"`
	Layers     []int                `json:"screen_layers"`
	Simulation WellSimulation       `json:"simulation_results"`
	Comparison *drawdown.Comparison `json:"interpolation_results,omitempty"`
	Error      string               `json:"comparison_error,omitempty"`
}

type WellSimulation struct {
	Simulated      Floats    `json:"simulated_drawdown_meters"`
	SimulatedTimes []float64 `json:"simulated_time_seconds"`
	Observed       []float64 `json:"observed_drawdown_meters"`
	ObservedTimes  []float64 `json:"observed_time_seconds"`
	AvgHead        Floats    `json:"avg_head_at_distance_meters"` // per column centroid, at the reference step
}

// Optimization is the outcome of a calibration.
type Optimization struct {
	Method     string       `json:"method"`
	Names      []string     `json:"parameters_optimized"`
	Initial    []float64    `json:"initial_values"`
	Optimal    []float64    `json:"optimal_vector"`
	Values     Parameters   `json:"optimal_values"`
	Objective  float64      `json:"objective"`
	Evaluation int          `json:"evaluations"`
	Trace      []Evaluation `json:"trace"`
}

// Floats marshals undefined values (dry cells) as null.
type Floats []float64

func (f Floats) MarshalJSON() ([]byte, error) {
	if f == nil {
		return []byte("null"), nil
	}
	b := []byte{'['}
	for i, v := range f {
		if i > 0 {
			b = append(b, ',')
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			b = append(b, "null"...)
			continue
		}
		b = strconv.AppendFloat(b, v, 'g', -1, 64)
	}
	return append(b, ']'), nil
}

// RadiusOfInfluence returns the first distance whose head is within threshold
// of the static head h0, or boundary when there is none.
func RadiusOfInfluence(h0 float64, heads, distances []float64, threshold, boundary float64) float64 {
	for i, h := range heads {
		if i < len(distances) && math.Abs(h0-h) < threshold {
			return distances[i]
		}
	}
	return boundary
}

// profile returns the mean head over layers ls of every column at step k.
func (e *Engine) profile(hs *solver.HeadSeries, k int, ls []int) []float64 {
	o := make([]float64, e.gd.Ncol())
	for c := range o {
		o[c] = meanHead(hs.Heads[k], ls, c)
	}
	return o
}

func (e *Engine) aggregate(hs *solver.HeadSeries, p Parameters) *Result {
	steps, times := e.reported(hs)
	kref := hs.Nearest(e.in.Schedule.PumpingLength)

	r := Result{
		Metadata: Metadata{
			RunID:          uuid.NewString(),
			Mode:           "forward",
			SimulationType: e.in.Schedule.Period,
			PumpingLength:  e.in.Schedule.PumpingLength,
			Steps:          len(steps),
			GeneratedAt:    time.Now().UTC(),
			Parameters:     p,
		},
		SimulationTimes: times,
		Distances:       e.gd.Centroid,
	}

	threshold := e.opts.RadiusThreshold
	if threshold <= 0. {
		threshold = radiusThreshold
	}
	r.Summary.RadiusOfInfluence = RadiusOfInfluence(
		e.in.StaticHead,
		e.profile(hs, kref, wellLayers(e.well)),
		e.gd.Centroid,
		threshold,
		e.gd.Extent(),
	)

	cp := e.comparator()
	var rmse, resid []float64
	for _, pl := range e.obs {
		sim, obs := e.simulated(hs, pl), e.observed(pl.well)
		wr := WellResult{
			ID:       pl.well.ID,
			Distance: pl.well.Distance,
			Column:   pl.column,
			Layers:   pl.layers,
			Simulation: WellSimulation{
				Simulated:      sim.V,
				SimulatedTimes: sim.T,
				Observed:       obs.V,
				ObservedTimes:  obs.T,
				AvgHead:        e.profile(hs, kref, pl.layers),
			},
		}
		c, err := cp.Compare(obs, sim)
		if err != nil {
			wr.Error = err.Error()
			zap.L().Warn("well not compared", zap.String("well", pl.well.ID), zap.Error(err))
		} else {
			wr.Comparison = c
			rmse = append(rmse, c.RMSE)
			resid = append(resid, c.TotalResidual)
		}
		r.Wells = append(r.Wells, wr)
	}
	r.Summary.Wells = len(r.Wells)
	r.Summary.Compared = len(rmse)
	if n := float64(len(rmse)); n > 0 {
		mr, ms := floats.Sum(rmse)/n, floats.Sum(resid)/n
		r.Summary.MeanRMSE, r.Summary.MeanResidual = &mr, &ms
	}
	return &r
}

func wellLayers(wl []solver.WellLayer) []int {
	ls := make([]int, len(wl))
	for i, w := range wl {
		ls[i] = w.Layer
	}
	return ls
}
