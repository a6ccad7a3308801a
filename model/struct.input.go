package model

import (
	"strings"

	"github.com/maseology/pumptest/drawdown"
	"github.com/maseology/pumptest/hydraulic"
	"github.com/rotisserie/eris"
)

// Period selects which part of the test is simulated and scored.
type Period int

const (
	PumpingAndRecovery Period = iota
	PumpingOnly
	RecoveryOnly
)

var periodNames = map[Period]string{
	PumpingAndRecovery: "pumping+recovery",
	PumpingOnly:        "pumping",
	RecoveryOnly:       "recovery",
}

func (p Period) String() string { return periodNames[p] }

// ParsePeriod accepts the canonical names and the labels of the
// field data sheets ("Pumping Only", "Recovery Only", "Pumping + Recovery").
func ParsePeriod(s string) (Period, error) {
	k := strings.ToLower(strings.Join(strings.Fields(s), ""))
	switch k {
	case "pumping", "pumpingonly":
		return PumpingOnly, nil
	case "recovery", "recoveryonly":
		return RecoveryOnly, nil
	case "", "pumping+recovery", "pumpingandrecovery", "both":
		return PumpingAndRecovery, nil
	}
	return 0, eris.Wrapf(ErrConfiguration, "unknown analysis period %q", s)
}

func (p Period) MarshalText() ([]byte, error) { return []byte(p.String()), nil }

func (p *Period) UnmarshalText(b []byte) (err error) {
	*p, err = ParsePeriod(string(b))
	return
}

// AquiferGeometry seeds the vertical discretization. Elevations in metres.
type AquiferGeometry struct {
	Top, Bottom             float64
	ScreenTop, ScreenBottom float64 // pumping well screen
	ScreenTopThickness      float64 // first layer thickness at the screen top
	ScreenBottomThickness   float64 // first layer thickness at the screen bottom
	MultAbove, MultBelow    float64
	MultBetween             float64
}

// RadialDomain seeds the radial discretization. Distances in metres.
type RadialDomain struct {
	WellRadius float64
	Boundary   float64
	ColumnSize float64
	Multiplier float64
}

// WellSchedule is the pumping and its time discretization, in SI units.
type WellSchedule struct {
	Rate           float64 // [m³/s], negative for extraction
	Period         Period
	PumpingLength  float64 // [s]
	RecoveryLength float64 // [s]
	Steps          int     // time steps per stress period
	StepMultiplier float64
}

// ObservationWell is a monitoring well and its observed drawdown.
type ObservationWell struct {
	ID                      string
	Distance                float64 // from the pumping well [m]
	ScreenTop, ScreenBottom float64
	Observed                drawdown.Series
}

// Flags select the calibrated parameters.
type Flags struct {
	K  []bool // one per profile interval, top first
	Sy bool
	Ss bool
}

// Any reports whether at least one parameter is selected.
func (f Flags) Any() bool {
	for _, b := range f.K {
		if b {
			return true
		}
	}
	return f.Sy || f.Ss
}

// Input is a complete pumping-test description in SI units.
type Input struct {
	Geometry     AquiferGeometry
	Domain       RadialDomain
	Schedule     WellSchedule
	Profile      hydraulic.Profile
	Sy, Ss       float64 // specific yield [-], specific storage [1/m]
	Anisotropy   float64 // Kv/Kh
	StaticHead   float64 // [m]
	BoundaryHead float64 // [m]
	Wells        []ObservationWell
	Calibrate    Flags
}

// Options control evaluation and calibration.
type Options struct {
	Method          string  // NelderMead or CMAES
	MaxIterations   int     // iteration (CMA-ES generation) cap; 0 for the method default
	BoundFactor     float64 // CMA-ES search range is initial ×/÷ BoundFactor
	Population      int     // CMA-ES population; 0 for the gonum default
	Workers         int     // concurrent CMA-ES evaluations; 0 for GOMAXPROCS
	Seed            int64   // CMA-ES seed; 0 for the clock
	MaxRMSE         float64
	MaxResidual     float64
	RadiusThreshold float64 // [m]
	WorkspaceRoot   string
	KeepWorkspace   bool
	Progress        bool
	Verbose         bool
}

// DefaultOptions returns the options used when none are given.
func DefaultOptions() Options {
	return Options{
		Method:          NelderMead,
		BoundFactor:     boundFactor,
		MaxRMSE:         maxRMSE,
		MaxResidual:     maxResidual,
		RadiusThreshold: radiusThreshold,
	}
}
