package main

import (
	"fmt"
	"os"

	"github.com/maseology/pumptest/config"
	"github.com/maseology/pumptest/solver"
	"github.com/maseology/pumptest/solver/mf6"
	"github.com/maseology/pumptest/solver/theis"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var cfg *config.Settings

var rootCmd = &cobra.Command{
	Use:   "pumptest",
	Short: "Axisymmetric pumping-test model",
	Long:  "Simulates a pumping test on a radial grid with MODFLOW 6, compares simulated to observed drawdown and calibrates aquifer properties.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

// newSolver returns the flow solver named by the settings.
func newSolver(s *config.Settings) (solver.Solver, error) {
	switch s.Solver.Name {
	case "", "mf6":
		return mf6.New(s.Solver.MF6Exe), nil
	case "theis":
		return theis.Solver{}, nil
	}
	return nil, eris.Errorf("unknown solver %q", s.Solver.Name)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
