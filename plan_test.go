package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lg/gym-buddy-go-api/energy"
)

var testNow = time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)

// makeProfile builds a fully-populated stored profile. Tests nil out fields to
// exercise the partial-profile paths.
func makeProfile() *userProfile {
	sex := "male"
	dob := DateOnly{time.Date(1996, 1, 1, 0, 0, 0, 0, time.UTC)}
	height, weight, target := 170.0, 70.0, 65.0
	goal := "lose_weight"
	return &userProfile{
		UserID:         1,
		Sex:            &sex,
		DateOfBirth:    &dob,
		HeightCM:       &height,
		WeightKG:       &weight,
		TargetWeightKG: &target,
		WeeklyChangeKG: -0.5,
		Goal:           &goal,
		ActivityLevel:  "moderate",
		FitnessLevel:   "intermediate",
		PlanAuto:       true,
	}
}

/* ─── Age ────────────────────────────────────────────────────────────── */

func TestAgeOn(t *testing.T) {
	dob := &DateOnly{time.Date(1996, 6, 16, 0, 0, 0, 0, time.UTC)}
	age, ok := ageOn(dob, testNow)
	require.True(t, ok)
	assert.Equal(t, 29, age, "birthday tomorrow")

	dob = &DateOnly{time.Date(1996, 6, 15, 0, 0, 0, 0, time.UTC)}
	age, _ = ageOn(dob, testNow)
	assert.Equal(t, 30, age)

	_, ok = ageOn(nil, testNow)
	assert.False(t, ok)
	_, ok = ageOn(&DateOnly{testNow.AddDate(1, 0, 0)}, testNow)
	assert.False(t, ok, "future DOB")
	_, ok = ageOn(&DateOnly{testNow.AddDate(-200, 0, 0)}, testNow)
	assert.False(t, ok, "older than 130")
}

/* ─── Conversion ─────────────────────────────────────────────────────── */

func TestEnergyProfile_FullProfile(t *testing.T) {
	p := energyProfile(makeProfile(), testNow)
	assert.Equal(t, 30, p.Age)
	assert.Equal(t, energy.Male, p.Gender)
	assert.Equal(t, 70.0, p.WeightKG)
	assert.Equal(t, 65.0, p.TargetWeightKG)
	assert.Equal(t, energy.Intermediate, p.FitnessLevel)
}

func TestEnergyProfile_MissingFieldsRejectedByCalculator(t *testing.T) {
	cases := []struct {
		name  string
		mutFn func(p *userProfile)
	}{
		{"nil Sex", func(p *userProfile) { p.Sex = nil }},
		{"nil DateOfBirth", func(p *userProfile) { p.DateOfBirth = nil }},
		{"nil WeightKG", func(p *userProfile) { p.WeightKG = nil }},
	}
	calc := energy.NewCalculator(energy.DefaultCatalog())
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := makeProfile()
			tc.mutFn(p)
			_, err := calc.EstimateActivity(energyProfile(p, testNow),
				energy.ActivitySession{ActivityID: "running", DurationMin: 30})
			assert.ErrorIs(t, err, energy.ErrInvalidArgument)
		})
	}
}

func TestProfileInput_Normalises(t *testing.T) {
	in := profileInput{Age: 30, Gender: "M", WeightKG: 70, FitnessLevel: "Advanced"}
	p := in.toEnergy()
	assert.Equal(t, energy.Male, p.Gender)
	assert.Equal(t, energy.Advanced, p.FitnessLevel)

	in.Gender = "robot"
	assert.Equal(t, energy.Gender("robot"), in.toEnergy().Gender)
}

/* ─── Derived fields ─────────────────────────────────────────────────── */

func TestPopulateDerived_FullProfile(t *testing.T) {
	p := makeProfile()
	populateDerived(p, testNow)

	require.NotNil(t, p.Age)
	assert.Equal(t, 30, *p.Age)
	require.NotNil(t, p.BMI)
	assert.Equal(t, 24.2, *p.BMI)
	assert.Equal(t, "normal", *p.BMICategory)
	require.NotNil(t, p.WeeksToTarget)
	assert.Equal(t, 10, *p.WeeksToTarget)
	assert.Equal(t, "2026-08-24", p.TargetDate.Format("2006-01-02"))

	require.NotNil(t, p.Plan)
	// BMR 1617.5, TDEE ×1.35, minus 550 for 0.5 kg/week.
	assert.Equal(t, 1618, p.Plan.BMR)
	assert.Equal(t, 2184, p.Plan.TDEE)
	assert.Equal(t, 1634, p.Plan.TargetCalories)
}

func TestPopulateDerived_PartialProfile(t *testing.T) {
	p := makeProfile()
	p.Goal = nil
	p.TargetWeightKG = nil
	p.HeightCM = nil
	populateDerived(p, testNow)

	assert.NotNil(t, p.Age)
	assert.Nil(t, p.BMI, "no height, no BMI")
	assert.Nil(t, p.WeeksToTarget)
	assert.Nil(t, p.Plan, "plan needs a goal and height")
}

/* ─── currentMonday ──────────────────────────────────────────────────── */

func TestCurrentMonday(t *testing.T) {
	monday := currentMonday()
	assert.Equal(t, time.Monday, monday.Weekday())
	assert.Equal(t, time.UTC, monday.Location())
	assert.Zero(t, monday.Hour()+monday.Minute()+monday.Second()+monday.Nanosecond())
}
