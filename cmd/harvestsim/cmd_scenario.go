package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"harvestsim/internal/storage"
	"harvestsim/pkg/harvestsim"
)

func newScenarioCmd() *cobra.Command {
	var (
		storeKind string
		dbPath    string
	)

	cmd := &cobra.Command{
		Use:   "scenario",
		Short: "Manage stored scenario presets",
	}
	cmd.PersistentFlags().StringVar(&storeKind, "store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
	cmd.PersistentFlags().StringVar(&dbPath, "db-path", "", "sqlite database path")

	newScenarioClient := func(cmd *cobra.Command) (*harvestsim.Client, error) {
		configPath, _ := cmd.Flags().GetString("config")
		return harvestsim.NewClient(cmd.Context(), harvestsim.Options{
			StoreKind:  storeKind,
			DBPath:     dbPath,
			ConfigPath: configPath,
		})
	}

	cmd.AddCommand(
		newScenarioSaveCmd(newScenarioClient),
		newScenarioListCmd(newScenarioClient),
		newScenarioShowCmd(newScenarioClient),
		newScenarioDeleteCmd(newScenarioClient),
	)
	return cmd
}

type clientFactory func(cmd *cobra.Command) (*harvestsim.Client, error)

func newScenarioSaveCmd(newClient clientFactory) *cobra.Command {
	var (
		name        string
		description string
		mode        string
		harvest     []float64
		horizon     int
	)

	cmd := &cobra.Command{
		Use:   "save",
		Short: "Save a named scenario preset",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(harvest) != 3 {
				return fmt.Errorf("--harvest needs exactly 3 values, got %d", len(harvest))
			}
			client, err := newClient(cmd)
			if err != nil {
				return err
			}
			defer client.Close()

			scenario, err := client.SaveScenario(cmd.Context(), harvestsim.SaveScenarioRequest{
				Name:        name,
				Description: description,
				Mode:        mode,
				Harvest:     [3]float64{harvest[0], harvest[1], harvest[2]},
				Horizon:     horizon,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "saved scenario %s (%s)\n", scenario.ID, scenario.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "scenario name (required)")
	cmd.Flags().StringVar(&description, "description", "", "scenario description")
	cmd.Flags().StringVar(&mode, "mode", "selective", "harvest mode: constant_quota|proportional|selective")
	cmd.Flags().Float64SliceVar(&harvest, "harvest", []float64{0, 0, 0}, "harvest parameters for the J,S,A slots")
	cmd.Flags().IntVar(&horizon, "horizon", 0, "years to project (0 uses the configured horizon)")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newScenarioListCmd(newClient clientFactory) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored scenarios",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd)
			if err != nil {
				return err
			}
			defer client.Close()

			listed, err := client.ListScenarios(cmd.Context())
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tMODE\tHARVEST\tHORIZON\tCREATED")
			for _, s := range listed {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%v\t%d\t%s\n",
					s.ID, s.Name, s.Mode, s.Harvest, s.Horizon, s.CreatedAtUTC)
			}
			return tw.Flush()
		},
	}
}

func newScenarioShowCmd(newClient clientFactory) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Print one scenario as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd)
			if err != nil {
				return err
			}
			defer client.Close()

			scenario, ok, err := client.GetScenario(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("scenario %s not found", args[0])
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(scenario)
		},
	}
}

func newScenarioDeleteCmd(newClient clientFactory) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a stored scenario",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd)
			if err != nil {
				return err
			}
			defer client.Close()

			if err := client.DeleteScenario(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted scenario %s\n", args[0])
			return nil
		},
	}
}
