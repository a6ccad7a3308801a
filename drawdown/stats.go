package drawdown

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// fit statistics of simulated s against observed o, equal lengths

func rmse(o, s []float64) float64 {
	return floats.Distance(o, s, 2) / math.Sqrt(float64(len(o)))
}

// nse is the Nash-Sutcliffe efficiency.
func nse(o, s []float64) float64 {
	mo := stat.Mean(o, nil)
	num, den := 0., 0.
	for i := range o {
		num += (o[i] - s[i]) * (o[i] - s[i])
		den += (o[i] - mo) * (o[i] - mo)
	}
	return 1. - num/den
}

// kge is the Kling-Gupta efficiency.
func kge(o, s []float64) float64 {
	r := stat.Correlation(o, s, nil)
	a := stat.StdDev(s, nil) / stat.StdDev(o, nil)
	b := stat.Mean(s, nil) / stat.Mean(o, nil)
	return 1. - math.Sqrt((r-1.)*(r-1.)+(a-1.)*(a-1.)+(b-1.)*(b-1.))
}

// bias is the relative volume error, (Σs-Σo)/Σo.
func bias(o, s []float64) float64 {
	so := floats.Sum(o)
	return (floats.Sum(s) - so) / so
}
