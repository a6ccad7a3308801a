package model

import (
	"fmt"
	"strings"
)

// Parameters is a full set of the properties that calibration can change.
type Parameters struct {
	K  []float64 `json:"hk_profile"`       // per profile interval, top first [m/s]
	Sy float64   `json:"specific_yield"`   // [-]
	Ss float64   `json:"specific_storage"` // [1/m]
}

func (p Parameters) copy() Parameters {
	return Parameters{K: append([]float64(nil), p.K...), Sy: p.Sy, Ss: p.Ss}
}

func (p Parameters) String() string {
	k := make([]string, len(p.K))
	for i, v := range p.K {
		k[i] = fmt.Sprintf("%.4g", v)
	}
	return fmt.Sprintf("hk=[%s] sy=%.4g ss=%.4g", strings.Join(k, " "), p.Sy, p.Ss)
}

// Initial returns the parameters given by the input.
func (in *Input) Initial() Parameters {
	return Parameters{K: in.Profile.Values(), Sy: in.Sy, Ss: in.Ss}
}

// ParameterSet is the calibrated subset of Parameters: its names and initial
// values, in search-vector order.
type ParameterSet struct {
	Names  []string
	Values []float64

	base Parameters
	kidx []int
	sy   bool
	ss   bool
}

// ParameterSet returns the subset selected by the calibration flags.
func (in *Input) ParameterSet() ParameterSet {
	ps := ParameterSet{base: in.Initial()}
	for i, iv := range in.Profile.Intervals() {
		if i >= len(in.Calibrate.K) || !in.Calibrate.K[i] {
			continue
		}
		nm := iv.Material
		if nm == "" {
			nm = fmt.Sprint(i + 1)
		}
		ps.Names = append(ps.Names, "hk_"+nm)
		ps.Values = append(ps.Values, iv.K)
		ps.kidx = append(ps.kidx, i)
	}
	if in.Calibrate.Sy {
		ps.Names = append(ps.Names, "specific_yield")
		ps.Values = append(ps.Values, in.Sy)
		ps.sy = true
	}
	if in.Calibrate.Ss {
		ps.Names = append(ps.Names, "specific_storage")
		ps.Values = append(ps.Values, in.Ss)
		ps.ss = true
	}
	return ps
}

// Len returns the number of calibrated parameters.
func (ps ParameterSet) Len() int { return len(ps.Values) }

// Apply returns the full parameters with the calibrated subset set to v.
func (ps ParameterSet) Apply(v []float64) Parameters {
	p := ps.base.copy()
	j := 0
	for _, i := range ps.kidx {
		p.K[i] = v[j]
		j++
	}
	if ps.sy {
		p.Sy = v[j]
		j++
	}
	if ps.ss {
		p.Ss = v[j]
	}
	return p
}
