package main

import (
	"github.com/spf13/cobra"

	"lg/gym-buddy-go-api/energy"
)

func newBurnCmd(calc *energy.Calculator) *cobra.Command {
	var pf profileFlags
	var activity, intensity, environment string
	var minutes, heartRate float64

	cmd := &cobra.Command{
		Use:   "burn",
		Short: "Estimate calories for an aerobic or general activity",
		RunE: func(cmd *cobra.Command, args []string) error {
			session := energy.ActivitySession{
				ActivityID:  activity,
				Intensity:   energy.Intensity(intensity),
				DurationMin: minutes,
				Environment: energy.Environment(environment),
			}
			if cmd.Flags().Changed("heart-rate") {
				session.HeartRate = &heartRate
			}
			est, err := calc.EstimateActivity(pf.profile(), session)
			if err != nil {
				return err
			}
			return printEstimate(cmd, est)
		},
	}

	pf.register(cmd)
	cmd.Flags().StringVar(&activity, "activity", "", "Activity id from the catalog")
	cmd.Flags().StringVar(&intensity, "intensity", string(energy.IntensityModerate), "light, moderate or vigorous")
	cmd.Flags().Float64Var(&minutes, "minutes", 0, "Duration in minutes")
	cmd.Flags().Float64Var(&heartRate, "heart-rate", 0, "Average heart rate (optional)")
	cmd.Flags().StringVar(&environment, "environment", "", "indoor, outdoor_hot, outdoor_cold or high_altitude")
	_ = cmd.MarkFlagRequired("activity")
	_ = cmd.MarkFlagRequired("minutes")
	return cmd
}

func newStrengthCmd(calc *energy.Calculator) *cobra.Command {
	var pf profileFlags
	var exercise, intensity string
	var sets, reps int
	var load, rest float64

	cmd := &cobra.Command{
		Use:   "strength",
		Short: "Estimate calories for a resistance exercise",
		RunE: func(cmd *cobra.Command, args []string) error {
			est, err := calc.EstimateStrength(pf.profile(), energy.StrengthSession{
				ExerciseID:  exercise,
				Sets:        sets,
				Reps:        reps,
				LoadKG:      load,
				RestSeconds: rest,
				Intensity:   energy.Intensity(intensity),
			})
			if err != nil {
				return err
			}
			return printEstimate(cmd, est)
		},
	}

	pf.register(cmd)
	cmd.Flags().StringVar(&exercise, "exercise", "", "Exercise id from the catalog")
	cmd.Flags().IntVar(&sets, "sets", 3, "Number of sets")
	cmd.Flags().IntVar(&reps, "reps", 10, "Reps per set")
	cmd.Flags().Float64Var(&load, "load", 0, "Load per rep in kg")
	cmd.Flags().Float64Var(&rest, "rest", 60, "Rest between sets in seconds")
	cmd.Flags().StringVar(&intensity, "intensity", string(energy.IntensityModerate), "light, moderate or vigorous")
	_ = cmd.MarkFlagRequired("exercise")
	_ = cmd.MarkFlagRequired("load")
	return cmd
}
