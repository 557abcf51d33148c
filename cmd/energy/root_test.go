package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lg/gym-buddy-go-api/energy"
)

func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	root := newRootCmd()
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

func TestBurn_JSON(t *testing.T) {
	out, err := runCmd(t, "burn", "--activity", "running", "--minutes", "30", "--json")
	require.NoError(t, err)

	var est energy.Estimate
	require.NoError(t, json.Unmarshal([]byte(out), &est))
	assert.Equal(t, 397, est.TotalCalories)
	assert.Equal(t, energy.KindActivity, est.Kind)
}

func TestBurn_Text(t *testing.T) {
	out, err := runCmd(t, "burn", "--activity", "running", "--minutes", "30")
	require.NoError(t, err)
	assert.Contains(t, out, "running (activity, moderate) 30 min")
	assert.Contains(t, out, "Total: 397 kcal")
}

func TestBurn_Errors(t *testing.T) {
	_, err := runCmd(t, "burn", "--activity", "underwater_basket", "--minutes", "30")
	assert.ErrorIs(t, err, energy.ErrNotFound)

	_, err = runCmd(t, "burn", "--activity", "running", "--minutes", "30", "--weight", "0")
	assert.ErrorIs(t, err, energy.ErrInvalidArgument)

	_, err = runCmd(t, "burn", "--minutes", "30")
	assert.ErrorContains(t, err, "activity")
}

func TestStrength_JSON(t *testing.T) {
	out, err := runCmd(t, "strength", "--exercise", "barbell_back_squat", "--load", "20", "--json")
	require.NoError(t, err)

	var est energy.Estimate
	require.NoError(t, json.Unmarshal([]byte(out), &est))
	assert.Equal(t, 67, est.TotalCalories)
	assert.Equal(t, 600.0, est.Breakdown.VolumeKG)
}

func TestPlan(t *testing.T) {
	out, err := runCmd(t, "plan", "--height", "170", "--weight", "70",
		"--weekly-change=-0.5", "--goal", "Lose weight", "--target", "65")
	require.NoError(t, err)
	assert.Contains(t, out, "BMR 1618  TDEE 2184")
	assert.Contains(t, out, "Target: 1634 kcal/day")
	assert.Contains(t, out, "Weeks to 65.0 kg: 10")
}

func TestCatalog(t *testing.T) {
	out, err := runCmd(t, "catalog", "activities")
	require.NoError(t, err)
	assert.Contains(t, out, "running")

	out, err = runCmd(t, "catalog", "exercises", "--json")
	require.NoError(t, err)
	var items []energy.StrengthExerciseDefinition
	require.NoError(t, json.Unmarshal([]byte(out), &items))
	assert.NotEmpty(t, items)
}
