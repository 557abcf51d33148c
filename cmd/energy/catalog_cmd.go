package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"lg/gym-buddy-go-api/energy"
)

func newCatalogCmd(catalog *energy.Catalog) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "List catalog activities and exercises",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "activities",
			Short: "List aerobic and general activities",
			RunE: func(cmd *cobra.Command, args []string) error {
				items := catalog.Activities()
				if jsonOutput(cmd) {
					return writeJSON(cmd.OutOrStdout(), items)
				}
				w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(w, "ID\tCATEGORY\tLIGHT\tMODERATE\tVIGOROUS\tEPOC")
				for _, a := range items {
					fmt.Fprintf(w, "%s\t%s\t%.1f\t%.1f\t%.1f\t%.2f\n", a.ID, a.Category,
						a.MET(energy.IntensityLight), a.MET(energy.IntensityModerate), a.MET(energy.IntensityVigorous), a.EPOCFactor)
				}
				return w.Flush()
			},
		},
		&cobra.Command{
			Use:   "exercises",
			Short: "List strength exercises",
			RunE: func(cmd *cobra.Command, args []string) error {
				items := catalog.Exercises()
				if jsonOutput(cmd) {
					return writeJSON(cmd.OutOrStdout(), items)
				}
				w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(w, "ID\tMECHANIC\tPRIMARY")
				for _, e := range items {
					fmt.Fprintf(w, "%s\t%s\t%s\n", e.ID, e.Mechanic, strings.Join(e.PrimaryMuscles, ","))
				}
				return w.Flush()
			},
		},
	)
	return cmd
}
