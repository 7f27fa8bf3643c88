package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"harvestsim/internal/storage"
	"harvestsim/pkg/harvestsim"
)

func newProjectCmd() *cobra.Command {
	var (
		mode       string
		harvest    []float64
		horizon    int
		format     string
		scenarioID string
		storeKind  string
		dbPath     string
	)

	cmd := &cobra.Command{
		Use:   "project",
		Short: "Run a fixed-horizon batch projection",
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			client, err := harvestsim.NewClient(cmd.Context(), harvestsim.Options{
				StoreKind:  storeKind,
				DBPath:     dbPath,
				ConfigPath: configPath,
			})
			if err != nil {
				return err
			}
			defer client.Close()

			var result harvestsim.ProjectResult
			if scenarioID != "" {
				result, err = client.ProjectScenario(cmd.Context(), scenarioID)
			} else {
				if len(harvest) != 3 {
					return fmt.Errorf("--harvest needs exactly 3 values, got %d", len(harvest))
				}
				result, err = client.Project(harvestsim.ProjectRequest{
					Mode:    mode,
					Harvest: [3]float64{harvest[0], harvest[1], harvest[2]},
					Horizon: horizon,
				})
			}
			if err != nil {
				return err
			}
			return writeSeries(cmd.OutOrStdout(), result, format)
		},
	}

	cmd.Flags().StringVar(&mode, "mode", "selective", "harvest mode: constant_quota|proportional|selective")
	cmd.Flags().Float64SliceVar(&harvest, "harvest", []float64{0, 0, 0}, "harvest parameters for the J,S,A slots")
	cmd.Flags().IntVar(&horizon, "horizon", 0, "years to project (0 uses the configured horizon)")
	cmd.Flags().StringVar(&format, "format", "table", "output format: table|csv|json")
	cmd.Flags().StringVar(&scenarioID, "scenario", "", "replay a stored scenario instead of flag parameters")
	cmd.Flags().StringVar(&storeKind, "store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
	cmd.Flags().StringVar(&dbPath, "db-path", "", "sqlite database path")
	return cmd
}
