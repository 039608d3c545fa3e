package cmd

import (
	"github.com/rpgo/property-projector/internal/calculation"

	"github.com/spf13/cobra"
)

var optionsCmd = &cobra.Command{
	Use:   "options",
	Short: "Compare level payments across terms and rates around the loan rate",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runProjection(cmd, calculation.Sections{Options: true})
	},
}

func init() {
	rootCmd.AddCommand(optionsCmd)
}
