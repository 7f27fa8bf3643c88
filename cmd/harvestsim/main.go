package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "0.1.0-dev"

func main() {
	rootCmd := &cobra.Command{
		Use:   "harvestsim",
		Short: "Stage-structured harvesting simulator",
		Long: `harvestsim projects an age-structured population (juvenile, sub-adult,
adult) under a harvesting policy: either a fixed-horizon batch run printed to
stdout, or a live steppable monitor served over websocket.`,
	}

	rootCmd.PersistentFlags().String("config", "", "YAML config file")

	rootCmd.AddCommand(
		newVersionCmd(),
		newProjectCmd(),
		newModesCmd(),
		newScenarioCmd(),
		newServeCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "harvestsim %s\n", version)
		},
	}
}
