package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"lg/gym-buddy-go-api/energy"
)

// profileFlags are shared by every command that personalises an estimate.
type profileFlags struct {
	age     int
	gender  string
	height  float64
	weight  float64
	fitness string
}

func (f *profileFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&f.age, "age", 30, "Age in years")
	cmd.Flags().StringVar(&f.gender, "gender", "male", "male or female")
	cmd.Flags().Float64Var(&f.height, "height", 0, "Height in cm (0 skips the BMI factor)")
	cmd.Flags().Float64Var(&f.weight, "weight", 70, "Body weight in kg")
	cmd.Flags().StringVar(&f.fitness, "fitness", string(energy.Intermediate), "beginner, intermediate, advanced or athlete")
}

func (f *profileFlags) profile() energy.Profile {
	return energy.Profile{
		Age:          f.age,
		Gender:       energy.Gender(strings.ToLower(strings.TrimSpace(f.gender))),
		HeightCM:     f.height,
		WeightKG:     f.weight,
		FitnessLevel: energy.FitnessLevel(strings.ToLower(strings.TrimSpace(f.fitness))),
	}
}

// newRootCmd creates the top-level "energy" command. The calculator is built
// once over the default catalog and shared by the subcommands.
func newRootCmd() *cobra.Command {
	calc := energy.NewCalculator(energy.DefaultCatalog())

	root := &cobra.Command{
		Use:           "energy",
		Short:         "Estimate calories burned and build nutrition plans",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().Bool("json", false, "Print the full result as JSON")

	root.AddCommand(
		newBurnCmd(calc),
		newStrengthCmd(calc),
		newPlanCmd(),
		newCatalogCmd(calc.Catalog()),
	)
	return root
}

func jsonOutput(cmd *cobra.Command) bool {
	v, _ := cmd.Flags().GetBool("json")
	return v
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printEstimate writes est as JSON or as a short human summary.
func printEstimate(cmd *cobra.Command, est energy.Estimate) error {
	out := cmd.OutOrStdout()
	if jsonOutput(cmd) {
		return writeJSON(out, est)
	}
	b := est.Breakdown
	fmt.Fprintf(out, "%s (%s, %s) %g min\n", est.ActivityID, est.Kind, est.Intensity, est.DurationMin)
	fmt.Fprintf(out, "  MET %.1f  base %.1f kcal\n", b.MET, b.BaseCalories)
	for _, a := range b.Adjustments {
		fmt.Fprintf(out, "  %-12s x%.2f  %+d kcal\n", a.Name, a.Factor, a.Calories)
	}
	if b.VolumeKG > 0 {
		fmt.Fprintf(out, "  volume %.0f kg  %.1f kcal\n", b.VolumeKG, b.VolumeCalories)
	}
	fmt.Fprintf(out, "  EPOC %+d kcal\n", b.EPOCCalories)
	fmt.Fprintf(out, "Total: %d kcal\n", est.TotalCalories)
	return nil
}
