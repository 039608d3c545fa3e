package cmd

import (
	"github.com/rpgo/property-projector/internal/calculation"

	"github.com/spf13/cobra"
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Monte Carlo projection of the property value from historical index returns",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runProjection(cmd, calculation.Sections{Simulation: true})
	},
}

func init() {
	rootCmd.AddCommand(simulateCmd)
}
