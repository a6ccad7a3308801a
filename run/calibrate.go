package main

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var progress bool

var calibrateCmd = &cobra.Command{
	Use:   "calibrate <input>",
	Short: "Calibrate the flagged parameters against observed drawdown",
	Long: `Searches the parameters flagged in the input document for the best fit of
simulated to observed drawdown, then runs the model once with the best set.

The search method is set by calibration.method (nelder-mead or cma-es).`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		e, _, err := newEngine(args[0])
		if err != nil {
			return err
		}
		r, err := e.Calibrate(ctx)
		if err != nil {
			return err
		}
		if err := writeResult(outDir, "simulation_results", r); err != nil {
			return err
		}
		if err := writeJSON(outDir, "optimization_results", r.Optimization); err != nil {
			return err
		}
		zap.L().Info("calibration complete",
			zap.Strings("parameters", r.Optimization.Names),
			zap.Float64s("optimal", r.Optimization.Optimal),
			zap.Float64("objective", r.Optimization.Objective),
		)
		return nil
	},
}

func init() {
	calibrateCmd.Flags().BoolVar(&progress, "progress", false, "show a progress bar of evaluations")
	rootCmd.AddCommand(calibrateCmd)
}
