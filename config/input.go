package config

import (
	"path/filepath"

	"github.com/maseology/pumptest/drawdown"
	"github.com/maseology/pumptest/hydraulic"
	"github.com/maseology/pumptest/model"
	"github.com/maseology/pumptest/obsdata"
	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Document is a pumping-test input document. Conductivity is in m/day,
// pumping rate in m³/hr and durations and observation times in minutes.
type Document struct {
	Aquifer     AquiferDoc     `yaml:"aquifer" mapstructure:"aquifer"`
	PumpingWell PumpingWellDoc `yaml:"pumping_well" mapstructure:"pumping_well"`
	Grid        GridDoc        `yaml:"grid" mapstructure:"grid"`
	Schedule    ScheduleDoc    `yaml:"schedule" mapstructure:"schedule"`
	Wells       []WellDoc      `yaml:"observation_wells" mapstructure:"observation_wells"`
	Calibrate   CalibrateDoc   `yaml:"calibrate" mapstructure:"calibrate"`
}

type AquiferDoc struct {
	Top             float64       `yaml:"top" mapstructure:"top"`
	Bottom          float64       `yaml:"bottom" mapstructure:"bottom"`
	StaticHead      float64       `yaml:"static_head" mapstructure:"static_head"`
	SpecifiedHead   *float64      `yaml:"specified_head,omitempty" mapstructure:"specified_head"` // outer boundary, static head when absent
	Anisotropy      float64       `yaml:"vani" mapstructure:"vani"`                               // Kv/Kh
	SpecificYield   float64       `yaml:"specific_yield" mapstructure:"specific_yield"`
	SpecificStorage float64       `yaml:"specific_storage" mapstructure:"specific_storage"`
	HKProfile       []IntervalDoc `yaml:"hk_profile" mapstructure:"hk_profile"`
}

type IntervalDoc struct {
	Material string  `yaml:"material" mapstructure:"material"`
	Top      float64 `yaml:"top" mapstructure:"top"`
	Bottom   float64 `yaml:"bottom" mapstructure:"bottom"`
	HK       float64 `yaml:"hk" mapstructure:"hk"` // [m/day]
}

type PumpingWellDoc struct {
	Radius       float64 `yaml:"radius" mapstructure:"radius"`
	ScreenTop    float64 `yaml:"screen_top" mapstructure:"screen_top"`
	ScreenBottom float64 `yaml:"screen_bottom" mapstructure:"screen_bottom"`
	Rate         float64 `yaml:"rate" mapstructure:"rate"` // [m³/hr], negative for extraction
}

type GridDoc struct {
	ScreenTopThickness    float64 `yaml:"screen_top_thickness" mapstructure:"screen_top_thickness"`
	ScreenBottomThickness float64 `yaml:"screen_bottom_thickness" mapstructure:"screen_bottom_thickness"`
	MultAbove             float64 `yaml:"mult_above" mapstructure:"mult_above"`
	MultBelow             float64 `yaml:"mult_below" mapstructure:"mult_below"`
	MultBetween           float64 `yaml:"mult_between" mapstructure:"mult_between"`
	Boundary              float64 `yaml:"boundary" mapstructure:"boundary"`
	ColumnSize            float64 `yaml:"column_size" mapstructure:"column_size"`
	ColumnMultiplier      float64 `yaml:"column_multiplier" mapstructure:"column_multiplier"`
}

type ScheduleDoc struct {
	AnalysisPeriod string  `yaml:"analysis_period" mapstructure:"analysis_period"`
	PumpingLength  float64 `yaml:"pumping_length" mapstructure:"pumping_length"`   // [min]
	RecoveryLength float64 `yaml:"recovery_length" mapstructure:"recovery_length"` // [min]
	Steps          int     `yaml:"time_steps" mapstructure:"time_steps"`
	StepMultiplier float64 `yaml:"step_multiplier" mapstructure:"step_multiplier"`
}

// WellDoc is an observation well, its data given inline or by file.
type WellDoc struct {
	ID           string    `yaml:"id" mapstructure:"id"`
	Distance     float64   `yaml:"distance" mapstructure:"distance"`
	ScreenTop    float64   `yaml:"screen_top" mapstructure:"screen_top"`
	ScreenBottom float64   `yaml:"screen_bottom" mapstructure:"screen_bottom"`
	DataFile     string    `yaml:"data_file,omitempty" mapstructure:"data_file"` // relative to the document
	Time         []float64 `yaml:"time,omitempty" mapstructure:"time"`           // [min]
	Drawdown     []float64 `yaml:"drawdown,omitempty" mapstructure:"drawdown"`   // [m]
}

type CalibrateDoc struct {
	HK              []bool `yaml:"hk" mapstructure:"hk"`
	SpecificYield   bool   `yaml:"specific_yield" mapstructure:"specific_yield"`
	SpecificStorage bool   `yaml:"specific_storage" mapstructure:"specific_storage"`
}

// LoadInput reads a YAML or JSON input document and converts it to SI units.
func LoadInput(fp string) (*model.Input, error) {
	v := viper.New()
	v.SetConfigFile(fp)
	if err := v.ReadInConfig(); err != nil {
		return nil, eris.Wrapf(err, "config: read input %s", fp)
	}
	var doc Document
	if err := v.Unmarshal(&doc); err != nil {
		return nil, eris.Wrapf(err, "config: decode input %s", fp)
	}
	return doc.Input(filepath.Dir(fp))
}

// Input converts the document; data files are resolved against dir.
func (d *Document) Input(dir string) (*model.Input, error) {
	pd, err := model.ParsePeriod(d.Schedule.AnalysisPeriod)
	if err != nil {
		return nil, err
	}

	ivs := make([]hydraulic.Interval, len(d.Aquifer.HKProfile))
	for i, iv := range d.Aquifer.HKProfile {
		ivs[i] = hydraulic.Interval{Material: iv.Material, Top: iv.Top, Bottom: iv.Bottom, K: mPerDayToMPerSec(iv.HK)}
	}
	prof, err := hydraulic.NewProfile(ivs)
	if err != nil {
		return nil, eris.Wrap(model.ErrConfiguration, err.Error())
	}

	bh := d.Aquifer.StaticHead
	if d.Aquifer.SpecifiedHead != nil {
		bh = *d.Aquifer.SpecifiedHead
	}

	in := model.Input{
		Geometry: model.AquiferGeometry{
			Top:                   d.Aquifer.Top,
			Bottom:                d.Aquifer.Bottom,
			ScreenTop:             d.PumpingWell.ScreenTop,
			ScreenBottom:          d.PumpingWell.ScreenBottom,
			ScreenTopThickness:    d.Grid.ScreenTopThickness,
			ScreenBottomThickness: d.Grid.ScreenBottomThickness,
			MultAbove:             d.Grid.MultAbove,
			MultBelow:             d.Grid.MultBelow,
			MultBetween:           d.Grid.MultBetween,
		},
		Domain: model.RadialDomain{
			WellRadius: d.PumpingWell.Radius,
			Boundary:   d.Grid.Boundary,
			ColumnSize: d.Grid.ColumnSize,
			Multiplier: d.Grid.ColumnMultiplier,
		},
		Schedule: model.WellSchedule{
			Rate:           cubicMPerHourToPerSec(d.PumpingWell.Rate),
			Period:         pd,
			PumpingLength:  minToSec(d.Schedule.PumpingLength),
			RecoveryLength: minToSec(d.Schedule.RecoveryLength),
			Steps:          d.Schedule.Steps,
			StepMultiplier: d.Schedule.StepMultiplier,
		},
		Profile:      prof,
		Sy:           d.Aquifer.SpecificYield,
		Ss:           d.Aquifer.SpecificStorage,
		Anisotropy:   d.Aquifer.Anisotropy,
		StaticHead:   d.Aquifer.StaticHead,
		BoundaryHead: bh,
		Calibrate: model.Flags{
			K:  d.Calibrate.HK,
			Sy: d.Calibrate.SpecificYield,
			Ss: d.Calibrate.SpecificStorage,
		},
	}

	for _, w := range d.Wells {
		obs, err := w.series(dir)
		if err != nil {
			return nil, eris.Wrapf(err, "observation well %s", w.ID)
		}
		in.Wells = append(in.Wells, model.ObservationWell{
			ID:           w.ID,
			Distance:     w.Distance,
			ScreenTop:    w.ScreenTop,
			ScreenBottom: w.ScreenBottom,
			Observed:     obs,
		})
	}
	zap.L().Debug("input loaded", zap.Int("observation wells", len(in.Wells)), zap.Stringer("period", pd))
	return &in, nil
}

func (w WellDoc) series(dir string) (drawdown.Series, error) {
	if w.DataFile != "" {
		fp := w.DataFile
		if !filepath.IsAbs(fp) {
			fp = filepath.Join(dir, fp)
		}
		return obsdata.Load(fp)
	}
	if len(w.Time) != len(w.Drawdown) {
		return drawdown.Series{}, eris.Wrapf(model.ErrConfiguration, "%d times and %d drawdowns", len(w.Time), len(w.Drawdown))
	}
	s := drawdown.Series{T: make([]float64, len(w.Time)), V: append([]float64(nil), w.Drawdown...)}
	for i, t := range w.Time {
		s.T[i] = minToSec(t)
	}
	return s, nil
}

// Sample returns a complete example document.
func Sample() Document {
	return Document{
		Aquifer: AquiferDoc{
			Top: 0., Bottom: -60., StaticHead: 0., Anisotropy: .1,
			SpecificYield: .1, SpecificStorage: 1e-5,
			HKProfile: []IntervalDoc{
				{Material: "sand", Top: 0., Bottom: -30., HK: 12.},
				{Material: "gravel", Top: -30., Bottom: -60., HK: 40.},
			},
		},
		PumpingWell: PumpingWellDoc{Radius: .15, ScreenTop: -20., ScreenBottom: -50., Rate: -120.},
		Grid: GridDoc{
			ScreenTopThickness: .5, ScreenBottomThickness: .5,
			MultAbove: 1.5, MultBelow: 1.5, MultBetween: 1.3,
			Boundary: 1000., ColumnSize: .1, ColumnMultiplier: 1.2,
		},
		Schedule: ScheduleDoc{AnalysisPeriod: "Pumping + Recovery", PumpingLength: 720., RecoveryLength: 720., Steps: 20, StepMultiplier: 1.2},
		Wells: []WellDoc{
			{
				ID: "OW1", Distance: 15., ScreenTop: -25., ScreenBottom: -45.,
				Time:     []float64{1., 2., 5., 10., 30., 60., 120., 360., 720., 730., 780., 1440.},
				Drawdown: []float64{.05, .09, .16, .22, .31, .36, .41, .48, .53, .38, .15, .04},
			},
		},
		Calibrate: CalibrateDoc{HK: []bool{true, true}, SpecificYield: true},
	}
}

// MarshalSample renders the example document as YAML.
func MarshalSample() ([]byte, error) {
	d := Sample()
	b, err := yaml.Marshal(&d)
	return b, eris.Wrap(err, "config: marshal sample")
}
