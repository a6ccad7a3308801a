package model

import (
	"context"
	"math"
	"runtime"
	"sync"
	"time"

	"github.com/gosuri/uiprogress"
	"github.com/maseology/pumptest/opt"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/optimize"
)

// tracer records every evaluation of a calibration.
type tracer struct {
	mu  sync.Mutex
	ev  []Evaluation
	ib  int
	bar *uiprogress.Bar
}

func (t *tracer) add(ev Evaluation) Evaluation {
	t.mu.Lock()
	defer t.mu.Unlock()
	ev.Index = len(t.ev)
	t.ev = append(t.ev, ev)
	if ev.Value < t.ev[t.ib].Value {
		t.ib = ev.Index
	}
	if t.bar != nil {
		t.bar.Incr()
	}
	if ev.Penalized {
		zap.L().Warn("evaluation penalized", zap.Int("evaluation", ev.Index), zap.Float64s("parameters", ev.Params), zap.String("reason", ev.Reason))
	} else {
		zap.L().Info("evaluation", zap.Int("evaluation", ev.Index), zap.Float64s("parameters", ev.Params), zap.Float64("objective", ev.Value))
	}
	return ev
}

func (t *tracer) best() (Evaluation, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(t.ev) == 0 {
		return Evaluation{}, false
	}
	return t.ev[t.ib], true
}

// Calibrate searches the selected parameters for the best fit of simulated
// to observed drawdown, then runs the model once more with the best set
// found. Evaluations that cannot be scored count as PenaltyValue and never
// stop the search; a failure of the final run is returned.
func (e *Engine) Calibrate(ctx context.Context) (*Result, error) {
	ps := e.in.ParameterSet()
	if ps.Len() == 0 {
		return nil, eris.Wrap(ErrConfiguration, "no parameters selected for calibration")
	}
	method := e.opts.Method
	if method == "" {
		method = NelderMead
	}
	start := time.Now()
	tr := tracer{}

	obj := func(v []float64) float64 {
		if ctx.Err() != nil {
			return PenaltyValue
		}
		ev := e.evaluate(ctx, ps.Apply(v))
		ev.Params = append([]float64(nil), v...)
		return tr.add(ev).Value
	}

	zap.L().Info("calibrating", zap.String("method", method), zap.Strings("parameters", ps.Names), zap.Float64s("initial", ps.Values))
	switch method {
	case NelderMead:
		e.nelderMead(ps, obj, &tr)
	case CMAES:
		e.cmaes(ps, obj, &tr)
	default:
		return nil, eris.Wrapf(ErrConfiguration, "unknown calibration method %q", method)
	}
	if err := ctx.Err(); err != nil {
		return nil, eris.Wrap(err, "calibration cancelled")
	}
	if e.opts.Verbose {
		zap.L().Info("search complete", zap.Int("evaluations", len(tr.ev)), zap.Duration("elapsed", time.Since(start)))
	}

	best, ok := tr.best()
	if !ok {
		return nil, eris.New("calibration made no evaluation")
	}
	final := ps.Apply(best.Params)
	r, err := e.Forward(ctx, final)
	if err != nil {
		return nil, eris.Wrap(err, "final run with the optimal parameters")
	}
	if e.opts.Verbose {
		zap.L().Info("calibration complete", zap.Duration("elapsed", time.Since(start)))
	}
	r.Metadata.Mode = "calibration"
	r.Optimization = &Optimization{
		Method:     method,
		Names:      ps.Names,
		Initial:    ps.Values,
		Optimal:    best.Params,
		Values:     final,
		Objective:  best.Value,
		Evaluation: len(tr.ev),
		Trace:      tr.ev,
	}
	return r, nil
}

// nelderMead runs the simplex in log space about the initial guesses, capped
// at the configured number of iterations.
func (e *Engine) nelderMead(ps ParameterSet, obj func([]float64) float64, tr *tracer) {
	n, it := ps.Len(), e.opts.MaxIterations
	if it <= 0 {
		it = maxIterations
	}
	if e.opts.Progress {
		defer progress(tr, n+1+it*(n+2))()
	}

	ls := opt.LogSpace{P0: ps.Values}
	p := optimize.Problem{Func: func(x []float64) float64 { return obj(ls.Params(x)) }}
	res, err := optimize.Minimize(p, make([]float64, n), &optimize.Settings{MajorIterations: it}, &optimize.NelderMead{SimplexSize: simplexSize})
	finished("simplex", res, err)
}

// cmaes runs covariance matrix adaptation over the unit hypercube spanning
// each initial guess ×/÷ BoundFactor, starting from its centre. Evaluations of
// a generation run concurrently.
func (e *Engine) cmaes(ps ParameterSet, obj func([]float64) float64, tr *tracer) {
	n := ps.Len()
	bf := e.opts.BoundFactor
	if bf <= 1. {
		bf = boundFactor
	}
	it := e.opts.MaxIterations
	if it <= 0 {
		it = cmaesIterations
	}
	nw := e.opts.Workers
	if nw <= 0 {
		nw = runtime.GOMAXPROCS(0)
	}
	seed := e.opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	method := &optimize.CmaEsChol{
		InitStepSize: cmaesStepSize,
		Population:   e.opts.Population,
		Src:          rand.NewSource(uint64(seed)),
	}
	if e.opts.Progress {
		pop := e.opts.Population
		if pop <= 0 {
			pop = 4 + int(3.*math.Log(float64(n)))
		}
		defer progress(tr, it*pop)()
	}

	bs := opt.Bounded{P0: ps.Values, Factor: bf}
	p := optimize.Problem{Func: func(u []float64) float64 { return obj(bs.Params(u)) }}
	res, err := optimize.Minimize(p, bs.U(ps.Values), &optimize.Settings{MajorIterations: it, Concurrent: nw}, method)
	finished("cma-es", res, err)
	zap.L().Debug("cma-es settings", zap.Int("workers", nw), zap.Int64("seed", seed), zap.Float64("bound factor", bf))
}

// progress shows a bar of n evaluations until the returned func is called.
func progress(tr *tracer, n int) func() {
	uiprogress.Start()
	tr.mu.Lock()
	tr.bar = uiprogress.AddBar(n).AppendCompleted().PrependElapsed()
	tr.mu.Unlock()
	return uiprogress.Stop
}

// finished logs how a gonum search ended; hitting the iteration cap is not
// an error for calibration.
func finished(name string, res *optimize.Result, err error) {
	if err != nil {
		zap.L().Debug(name+" stopped", zap.Error(err))
	}
	if res != nil {
		zap.L().Debug(name+" finished", zap.Stringer("status", res.Status), zap.Int("evaluations", res.Stats.FuncEvaluations))
	}
}
