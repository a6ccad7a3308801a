package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/maseology/pumptest/model"
	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func chdirTemp(t *testing.T) string {
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })
	return dir
}

func TestLoadDefaults(t *testing.T) {
	chdirTemp(t)
	s, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "info", s.Log.Level)
	assert.Equal(t, "console", s.Log.Format)
	assert.Equal(t, "mf6", s.Solver.Name)
	assert.Equal(t, "mf6", s.Solver.MF6Exe)
	assert.False(t, s.Workspace.Keep)
	assert.Equal(t, model.NelderMead, s.Calibration.Method)
	assert.Equal(t, 0, s.Calibration.MaxIterations)
	assert.InDelta(t, 100., s.Calibration.BoundFactor, 1e-12)
	assert.InDelta(t, .2, s.Calibration.RadiusThreshold, 1e-12)

	o := s.Options()
	assert.Equal(t, model.DefaultOptions().MaxRMSE, o.MaxRMSE)
	assert.Equal(t, model.DefaultOptions().MaxResidual, o.MaxResidual)
}

func TestLoadFromYAMLAndEnv(t *testing.T) {
	dir := chdirTemp(t)
	yml := `
log:
  level: debug
solver:
  name: theis
calibration:
  method: cma-es
  population: 8
  seed: 7
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "pumptest.yaml"), []byte(yml), 0o644))
	t.Setenv("PUMPTEST_WORKSPACE_KEEP", "true")

	s, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "debug", s.Log.Level)
	assert.Equal(t, "theis", s.Solver.Name)
	assert.Equal(t, model.CMAES, s.Calibration.Method)
	assert.Equal(t, 8, s.Calibration.Population)
	assert.Equal(t, int64(7), s.Calibration.Seed)
	assert.True(t, s.Workspace.Keep)
}

func TestInitLogger(t *testing.T) {
	require.NoError(t, InitLogger(LogConfig{Level: "debug", Format: "json"}))
	assert.True(t, zap.L().Core().Enabled(zap.DebugLevel))
	require.NoError(t, InitLogger(LogConfig{Level: "warn", Format: "console"}))
	assert.False(t, zap.L().Core().Enabled(zap.InfoLevel))
	assert.Error(t, InitLogger(LogConfig{Level: "loud"}))
}

func TestLoadInputSample(t *testing.T) {
	b, err := MarshalSample()
	require.NoError(t, err)
	fp := filepath.Join(t.TempDir(), "test.yaml")
	require.NoError(t, os.WriteFile(fp, b, 0o644))

	in, err := LoadInput(fp)
	require.NoError(t, err)
	assert.Equal(t, model.PumpingAndRecovery, in.Schedule.Period)
	assert.InDelta(t, 12./86400., in.Profile.Values()[0], 1e-15)
	assert.InDelta(t, -120./3600., in.Schedule.Rate, 1e-12)
	assert.InDelta(t, 720.*60., in.Schedule.PumpingLength, 1e-9)
	assert.Equal(t, in.StaticHead, in.BoundaryHead)
	require.Len(t, in.Wells, 1)
	assert.Equal(t, 60., in.Wells[0].Observed.T[0])
	assert.Equal(t, []bool{true, true}, in.Calibrate.K)

	_, err = in.Validate()
	assert.NoError(t, err)
}

func TestLoadInputJSONWithDataFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ow1.csv"), []byte("Time,DD\n1,0.1\n2,0.2\n"), 0o644))
	doc := `{
  "aquifer": {"top": 10, "bottom": -10, "static_head": 8, "specified_head": 7.5, "vani": 1,
    "specific_yield": 0.2, "specific_storage": 1e-5,
    "hk_profile": [{"material": "sand", "top": 10, "bottom": -10, "hk": 8.64}]},
  "pumping_well": {"radius": 0.1, "screen_top": 5, "screen_bottom": -5, "rate": -36},
  "grid": {"screen_top_thickness": 1, "screen_bottom_thickness": 1, "mult_above": 1.2, "mult_below": 1.2,
    "mult_between": 1.2, "boundary": 200, "column_size": 0.5, "column_multiplier": 1.2},
  "schedule": {"analysis_period": "Recovery Only", "pumping_length": 60, "recovery_length": 60,
    "time_steps": 10, "step_multiplier": 1.1},
  "observation_wells": [{"id": "OW1", "distance": 10, "screen_top": 0, "screen_bottom": -2, "data_file": "ow1.csv"}]
}`
	fp := filepath.Join(dir, "test.json")
	require.NoError(t, os.WriteFile(fp, []byte(doc), 0o644))

	in, err := LoadInput(fp)
	require.NoError(t, err)
	assert.Equal(t, model.RecoveryOnly, in.Schedule.Period)
	assert.InDelta(t, 1e-4, in.Profile.Values()[0], 1e-15)
	assert.InDelta(t, -.01, in.Schedule.Rate, 1e-12)
	assert.Equal(t, 7.5, in.BoundaryHead)
	assert.Equal(t, []float64{60., 120.}, in.Wells[0].Observed.T)
}

func TestLoadInputErrors(t *testing.T) {
	_, err := LoadInput(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	d := Sample()
	d.Schedule.AnalysisPeriod = "sometimes"
	_, err = d.Input(".")
	assert.True(t, eris.Is(err, model.ErrConfiguration))

	d = Sample()
	d.Wells[0].Drawdown = d.Wells[0].Drawdown[1:]
	_, err = d.Input(".")
	assert.True(t, eris.Is(err, model.ErrConfiguration))
}
