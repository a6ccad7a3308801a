package main

import (
	"fmt"

	"github.com/maseology/pumptest/config"
	"github.com/spf13/cobra"
)

var sampleCmd = &cobra.Command{
	Use:   "sample",
	Short: "Print an example input document",
	RunE: func(cmd *cobra.Command, _ []string) error {
		b, err := config.MarshalSample()
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), string(b))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sampleCmd)
}
