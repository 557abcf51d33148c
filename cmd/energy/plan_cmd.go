package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"lg/gym-buddy-go-api/energy"
)

func newPlanCmd() *cobra.Command {
	var in energy.PlanInput
	var gender, goal, activityLevel string

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Build a daily calorie and macro plan",
		RunE: func(cmd *cobra.Command, args []string) error {
			in.Gender = energy.Gender(gender)
			in.Goal = energy.ParseGoal(goal)
			in.ActivityLevel = energy.ActivityLevel(activityLevel)
			plan, err := energy.Plan(in)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if jsonOutput(cmd) {
				return writeJSON(out, plan)
			}
			fmt.Fprintf(out, "BMR %d  TDEE %d\n", plan.BMR, plan.TDEE)
			fmt.Fprintf(out, "Target: %d kcal/day\n", plan.TargetCalories)
			fmt.Fprintf(out, "Protein %dg  Carbs %dg  Fat %dg\n", plan.ProteinG, plan.CarbsG, plan.FatG)
			if in.WeeklyChangeKG != 0 && cmd.Flags().Changed("target") {
				target, _ := cmd.Flags().GetFloat64("target")
				weeks := energy.WeeksToTarget(in.WeightKG, target, in.WeeklyChangeKG)
				fmt.Fprintf(out, "Weeks to %.1f kg: %d\n", target, weeks)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&in.Age, "age", 30, "Age in years")
	cmd.Flags().StringVar(&gender, "gender", "male", "male or female")
	cmd.Flags().Float64Var(&in.HeightCM, "height", 175, "Height in cm")
	cmd.Flags().Float64Var(&in.WeightKG, "weight", 70, "Body weight in kg")
	cmd.Flags().Float64Var(&in.WeeklyChangeKG, "weekly-change", 0, "Signed kg per week; negative to lose")
	cmd.Flags().StringVar(&goal, "goal", string(energy.GoalMaintain), "lose_weight, gain_weight, increase_muscle_mass, reduce_body_fat or maintain")
	cmd.Flags().StringVar(&activityLevel, "activity-level", string(energy.ModeratelyActive), "sedentary, moderate or active")
	cmd.Flags().Float64("target", 0, "Target weight in kg, to print weeks to target")
	return cmd
}
