package main

import (
	"os/signal"
	"syscall"
	"time"

	"github.com/maseology/pumptest/config"
	"github.com/maseology/pumptest/model"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	outDir  string
	xlsx    bool
	verbose bool
)

var forwardCmd = &cobra.Command{
	Use:   "forward <input>",
	Short: "Run the model once with the input parameters",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		start := time.Now()
		e, in, err := newEngine(args[0])
		if err != nil {
			return err
		}
		r, err := e.Forward(ctx, in.Initial())
		if err != nil {
			return err
		}
		if err := writeResult(outDir, "simulation_results", r); err != nil {
			return err
		}
		zap.L().Info("forward run complete",
			zap.String("out", outDir),
			zap.Float64("radius of influence", r.Summary.RadiusOfInfluence),
			zap.Duration("elapsed", time.Since(start)),
		)
		return nil
	},
}

// newEngine loads the input document and builds an engine on the configured solver.
func newEngine(fp string) (*model.Engine, *model.Input, error) {
	in, err := config.LoadInput(fp)
	if err != nil {
		return nil, nil, err
	}
	slv, err := newSolver(cfg)
	if err != nil {
		return nil, nil, err
	}
	opts := cfg.Options()
	opts.Verbose, opts.Progress = verbose, progress
	e, err := model.NewEngine(in, slv, opts)
	if err != nil {
		return nil, nil, err
	}
	return e, in, nil
}

func init() {
	for _, c := range []*cobra.Command{forwardCmd, calibrateCmd} {
		c.Flags().StringVarP(&outDir, "out", "o", "Results", "output directory")
		c.Flags().BoolVar(&xlsx, "xlsx", false, "also write an Excel workbook")
		c.Flags().BoolVarP(&verbose, "verbose", "v", false, "print stage timings")
	}
	rootCmd.AddCommand(forwardCmd)
}
