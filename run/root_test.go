package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/maseology/pumptest/config"
	"github.com/maseology/pumptest/model"
	"github.com/maseology/pumptest/solver/mf6"
	"github.com/maseology/pumptest/solver/theis"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestRootCommand_HasSubcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, name := range []string{"forward", "calibrate", "sample"} {
		assert.True(t, names[name], "expected subcommand %q not found", name)
	}
	assert.Equal(t, "pumptest", rootCmd.Use)
	assert.NotEmpty(t, rootCmd.Long)
}

func TestNewSolver(t *testing.T) {
	s, err := newSolver(&config.Settings{Solver: config.SolverConfig{Name: "theis"}})
	require.NoError(t, err)
	assert.IsType(t, theis.Solver{}, s)

	s, err = newSolver(&config.Settings{Solver: config.SolverConfig{Name: "mf6", MF6Exe: "/opt/mf6"}})
	require.NoError(t, err)
	assert.Equal(t, "/opt/mf6", s.(*mf6.Runner).Exe)

	_, err = newSolver(&config.Settings{Solver: config.SolverConfig{Name: "feflow"}})
	assert.Error(t, err)
}

func chdirTemp(t *testing.T) string {
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })
	return dir
}

func TestSampleAndForward(t *testing.T) {
	dir := chdirTemp(t)
	t.Setenv("PUMPTEST_SOLVER_NAME", "theis")
	t.Setenv("PUMPTEST_LOG_LEVEL", "warn")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"sample"})
	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, out.String(), "hk_profile")

	fp := filepath.Join(dir, "test.yaml")
	require.NoError(t, os.WriteFile(fp, out.Bytes(), 0o644))
	res := filepath.Join(dir, "out")
	rootCmd.SetArgs([]string{"forward", fp, "--out", res, "--xlsx"})
	require.NoError(t, rootCmd.Execute())

	b, err := os.ReadFile(filepath.Join(res, "simulation_results.json"))
	require.NoError(t, err)
	var r model.Result
	require.NoError(t, json.Unmarshal(b, &r))
	assert.Equal(t, "forward", r.Metadata.Mode)
	assert.Equal(t, model.PumpingAndRecovery, r.Metadata.SimulationType)
	require.Len(t, r.Wells, 1)
	assert.Equal(t, "OW1", r.Wells[0].ID)
	assert.Len(t, r.SimulationTimes, 40)

	f, err := excelize.OpenFile(filepath.Join(res, "simulation_results.xlsx"))
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, []string{"Summary", "AvgHead", "DD_OW1"}, f.GetSheetList())
}

func TestForwardRejectsBadInput(t *testing.T) {
	dir := chdirTemp(t)
	t.Setenv("PUMPTEST_SOLVER_NAME", "theis")
	fp := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(fp, []byte("aquifer:\n  top: 0\n  bottom: -10\n"), 0o644))
	rootCmd.SetArgs([]string{"forward", fp, "--out", filepath.Join(dir, "out")})
	assert.Error(t, rootCmd.Execute())
}
