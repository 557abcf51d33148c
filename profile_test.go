package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lg/gym-buddy-go-api/energy"
)

func ptr[T any](v T) *T { return &v }

func TestProfileUpdates_Canonicalises(t *testing.T) {
	clauses, args, err := profileUpdates(patchProfileRequest{
		Sex:           ptr("F"),
		Goal:          ptr("Increase muscle mass"),
		ActivityLevel: ptr(" Moderate "),
		FitnessLevel:  ptr("Athlete"),
		DateOfBirth:   ptr("1990-04-12"),
		WeightKG:      ptr(62.5),
		PlanAuto:      ptr(false),
	})
	require.NoError(t, err)

	assert.Equal(t, "female", args["sex"])
	assert.Equal(t, string(energy.GoalBuildMuscle), args["goal"])
	assert.Equal(t, "moderate", args["activityLevel"])
	assert.Equal(t, "athlete", args["fitnessLevel"])
	assert.Equal(t, "1990-04-12", args["dateOfBirth"])
	assert.Equal(t, 62.5, args["weightKG"])
	assert.Equal(t, false, args["planAuto"])
	assert.Contains(t, clauses, "fitness_updated_at = now()")
	assert.Contains(t, clauses, "weight_kg = @weightKG")
}

func TestProfileUpdates_Empty(t *testing.T) {
	clauses, _, err := profileUpdates(patchProfileRequest{})
	require.NoError(t, err)
	assert.Empty(t, clauses)
}

func TestProfileUpdates_Rejects(t *testing.T) {
	cases := map[string]patchProfileRequest{
		"unknown sex":      {Sex: ptr("robot")},
		"bad dob":          {DateOfBirth: ptr("12/04/1990")},
		"zero height":      {HeightCM: ptr(0.0)},
		"negative weight":  {WeightKG: ptr(-70.0)},
		"huge target":      {TargetWeightKG: ptr(5000.0)},
		"reckless pace":    {WeeklyChangeKG: ptr(-3.0)},
		"blank goal":       {Goal: ptr("  ")},
		"unknown activity": {ActivityLevel: ptr("very_active")},
		"unknown fitness":  {FitnessLevel: ptr("olympian")},
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, _, err := profileUpdates(body)
			assert.ErrorIs(t, err, energy.ErrInvalidArgument)
		})
	}
}
