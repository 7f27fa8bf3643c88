package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"harvestsim/internal/popdyn"
)

func newModesCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "modes",
		Short: "List harvest modes and their parameter semantics",
		RunE: func(cmd *cobra.Command, args []string) error {
			specs := popdyn.Specs()
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(specs)
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "MODE\tSLOT\tLABEL\tUNIT\tMAX\tACTIVE")
			for _, spec := range specs {
				for i, slot := range spec.Slots {
					fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%g\t%t\n",
						spec.Mode, i, slot.Label, slot.Unit, slot.Max, slot.Active)
				}
			}
			return tw.Flush()
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "output as JSON")
	return cmd
}
