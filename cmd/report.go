package cmd

import (
	"fmt"

	"github.com/rpgo/property-projector/internal/calculation"
	"github.com/rpgo/property-projector/internal/config"

	"github.com/spf13/cobra"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Schedule, payment options and simulation in one report",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runProjection(cmd, calculation.AllSections)
	},
}

var initCmd = &cobra.Command{
	Use:   "init [file]",
	Short: "Write an example configuration",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := "config.yaml"
		if len(args) == 1 {
			path = args[0]
		}
		parser := config.NewInputParser()
		if err := parser.SaveConfiguration(parser.CreateExampleConfiguration(), path); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(initCmd)
}
