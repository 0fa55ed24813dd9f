package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/schedsim/marisa/cmd/marisa-sim/commands"
	"github.com/schedsim/marisa/logger"
)

var rootCmd = &cobra.Command{
	Use:   "marisa-sim",
	Short: "marisa-sim - multiprocessor real-time scheduling simulator",
	Long: `marisa-sim - event-driven simulator for global multiprocessor
real-time scheduling policies.

Available commands:
  run      - Run a utilization sweep experiment
  gen      - Generate and print a single randomized task set
  version  - Show build version information

Examples:
  marisa-sim run --cores 4 --schedulers GEDF,EDZL,PD2,LLREF
  marisa-sim gen --util 3/2 --tasks 8
  marisa-sim version`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		jsonOutput, _ := cmd.Flags().GetBool("json")
		if err := logger.Initialize(jsonOutput); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().Bool("json", false, "Emit structured JSON logs instead of human-readable output")

	rootCmd.AddCommand(commands.RunCmd)
	rootCmd.AddCommand(commands.GenCmd)
	rootCmd.AddCommand(commands.VersionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
