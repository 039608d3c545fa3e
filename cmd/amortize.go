package cmd

import (
	"github.com/rpgo/property-projector/internal/calculation"

	"github.com/spf13/cobra"
)

var amortizeCmd = &cobra.Command{
	Use:   "amortize",
	Short: "Period-by-period amortization schedule of the configured loan",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runProjection(cmd, calculation.Sections{Schedule: true})
	},
}

func init() {
	rootCmd.AddCommand(amortizeCmd)
}
