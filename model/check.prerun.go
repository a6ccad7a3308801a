package model

import (
	"fmt"
	"strings"

	"github.com/maseology/pumptest/grid"
	"github.com/rotisserie/eris"
)

// ErrConfiguration is returned when the input violates a precondition. It is
// raised before any solver call.
var ErrConfiguration = eris.New("invalid configuration")

func (in *Input) vertical() grid.Vertical {
	g := in.Geometry
	return grid.Vertical{
		Top: g.Top, Bottom: g.Bottom,
		ScreenTop: g.ScreenTop, ScreenBottom: g.ScreenBottom,
		ScreenTopDz: g.ScreenTopThickness, ScreenBottomDz: g.ScreenBottomThickness,
		MultAbove: g.MultAbove, MultBelow: g.MultBelow, MultBetween: g.MultBetween,
	}
}

func (in *Input) radial() grid.Radial {
	d := in.Domain
	return grid.Radial{WellRadius: d.WellRadius, Boundary: d.Boundary, ColumnSize: d.ColumnSize, Multiplier: d.Multiplier}
}

// Validate checks the input and builds its grid. Every problem found is
// reported in a single ErrConfiguration.
func (in *Input) Validate() (*grid.Definition, error) {
	var msg []string
	addf := func(format string, a ...interface{}) { msg = append(msg, fmt.Sprintf(format, a...)) }

	gd, err := grid.Build(in.vertical(), in.radial())
	if err != nil {
		addf("%v", err)
	}
	if in.Geometry.ScreenTop-in.Geometry.ScreenBottom <= nearzero {
		addf("pumping well screen has no length")
	}

	s := in.Schedule
	if !(s.PumpingLength > 0.) {
		addf("pumping length must be positive (got %v s)", s.PumpingLength)
	}
	if s.Period != PumpingOnly && !(s.RecoveryLength > 0.) {
		addf("recovery length must be positive for a %s analysis (got %v s)", s.Period, s.RecoveryLength)
	}
	if s.Steps <= 0 {
		addf("time steps per period must be positive (got %d)", s.Steps)
	}
	if !(s.StepMultiplier > 0.) {
		addf("time step multiplier must be positive (got %v)", s.StepMultiplier)
	}
	if _, ok := periodNames[s.Period]; !ok {
		addf("unknown analysis period %d", s.Period)
	}

	if in.Sy < 0. || in.Ss < 0. {
		addf("storage parameters must be non-negative (sy %v, ss %v)", in.Sy, in.Ss)
	}
	if !(in.Anisotropy > 0.) {
		addf("anisotropy Kv/Kh must be positive (got %v)", in.Anisotropy)
	}

	if in.Profile.Len() == 0 {
		addf("hydraulic conductivity profile is empty")
	} else if gd != nil {
		if _, err := in.Profile.AssignLayers(gd.Top, gd.Bottom); err != nil {
			addf("%v", err)
		}
	}

	ids := make(map[string]bool, len(in.Wells))
	for i, w := range in.Wells {
		name := w.ID
		if name == "" {
			name = fmt.Sprintf("#%d", i+1)
			addf("observation well %s has no id", name)
		} else if ids[w.ID] {
			addf("observation well id %s is repeated", w.ID)
		}
		ids[w.ID] = true
		if !(w.Distance > 0.) || w.Distance > in.Domain.Boundary {
			addf("observation well %s distance %v outside (0, %v]", name, w.Distance, in.Domain.Boundary)
		}
		if len(w.Observed.T) != len(w.Observed.V) {
			addf("observation well %s has %d times and %d drawdowns", name, len(w.Observed.T), len(w.Observed.V))
		} else if w.Observed.Len() == 0 {
			addf("observation well %s has no observations", name)
		}
		if gd != nil && len(gd.OverlappingLayers(w.ScreenTop, w.ScreenBottom)) == 0 {
			addf("observation well %s screen [%v, %v] is outside the aquifer", name, w.ScreenBottom, w.ScreenTop)
		}
	}

	f := in.Calibrate
	if len(f.K) > 0 && len(f.K) != in.Profile.Len() {
		addf("%d conductivity flags given for %d profile intervals", len(f.K), in.Profile.Len())
	}
	for i, iv := range in.Profile.Intervals() {
		if i < len(f.K) && f.K[i] && !(iv.K > 0.) {
			addf("calibrated conductivity of interval %d needs a positive initial value", i+1)
		}
	}
	if f.Sy && !(in.Sy > 0.) {
		addf("calibrated specific yield needs a positive initial value")
	}
	if f.Ss && !(in.Ss > 0.) {
		addf("calibrated specific storage needs a positive initial value")
	}

	if len(msg) > 0 {
		return nil, eris.Wrap(ErrConfiguration, strings.Join(msg, "; "))
	}
	return gd, nil
}
