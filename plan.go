package main

import (
	"time"

	"lg/gym-buddy-go-api/energy"
)

// ageOn returns the whole years between dob and now. ok is false when dob is
// missing or the result is implausible (future DOB, or over 130 years).
func ageOn(dob *DateOnly, now time.Time) (int, bool) {
	if dob == nil || dob.IsZero() {
		return 0, false
	}
	age := now.Year() - dob.Year()
	if now.Before(dob.AddDate(age, 0, 0)) {
		age--
	}
	if age < 0 || age > 130 {
		return 0, false
	}
	return age, true
}

// energyProfile converts a stored profile into the calculator's model. Missing
// fields stay zero and the calculators reject them with ErrInvalidArgument.
func energyProfile(p *userProfile, now time.Time) energy.Profile {
	out := energy.Profile{
		WeeklyChangeKG: p.WeeklyChangeKG,
		FitnessLevel:   energy.FitnessLevel(p.FitnessLevel),
	}
	if age, ok := ageOn(p.DateOfBirth, now); ok {
		out.Age = age
	}
	if p.Sex != nil {
		out.Gender = energy.Gender(*p.Sex)
	}
	if p.HeightCM != nil {
		out.HeightCM = *p.HeightCM
	}
	if p.WeightKG != nil {
		out.WeightKG = *p.WeightKG
	}
	if p.TargetWeightKG != nil {
		out.TargetWeightKG = *p.TargetWeightKG
	}
	if p.FitnessUpdatedAt != nil {
		out.FitnessUpdatedAt = *p.FitnessUpdatedAt
	}
	return out
}

// toEnergy converts an inline preview profile. Gender and fitness level are
// normalised so "M" or "Advanced" behave like their canonical spellings.
func (in *profileInput) toEnergy() energy.Profile {
	p := energy.Profile{
		Age:            in.Age,
		Gender:         energy.Gender(in.Gender),
		HeightCM:       in.HeightCM,
		WeightKG:       in.WeightKG,
		TargetWeightKG: in.TargetWeightKG,
		WeeklyChangeKG: in.WeeklyChangeKG,
		FitnessLevel:   energy.FitnessLevel(in.FitnessLevel),
	}
	if g, err := energy.ParseGender(in.Gender); err == nil {
		p.Gender = g
	}
	if l, err := energy.ParseFitnessLevel(in.FitnessLevel); err == nil {
		p.FitnessLevel = l
	}
	return p
}

// planInput builds the nutrition planner's input from a stored profile.
func planInput(p *userProfile, now time.Time) energy.PlanInput {
	ep := energyProfile(p, now)
	in := energy.PlanInput{
		Age:            ep.Age,
		Gender:         ep.Gender,
		HeightCM:       ep.HeightCM,
		WeightKG:       ep.WeightKG,
		WeeklyChangeKG: p.WeeklyChangeKG,
		ActivityLevel:  energy.ActivityLevel(p.ActivityLevel),
	}
	if p.Goal != nil {
		in.Goal = energy.Goal(*p.Goal)
	}
	return in
}

// populateDerived fills the read-only fields of p. Each value is set only when
// the inputs it depends on are present, so half-finished profiles still render.
func populateDerived(p *userProfile, now time.Time) {
	ep := energyProfile(p, now)

	if age, ok := ageOn(p.DateOfBirth, now); ok {
		p.Age = &age
	}
	if bmi, ok := ep.RoundedBMI(); ok {
		category := energy.BMICategory(bmi)
		p.BMI = &bmi
		p.BMICategory = &category
	}
	if p.WeightKG != nil && p.TargetWeightKG != nil {
		weeks := ep.WeeksToTarget()
		target := DateOnly{energy.ProjectedTargetDate(now.UTC().Truncate(24*time.Hour), weeks)}
		p.WeeksToTarget = &weeks
		p.TargetDate = &target
	}
	if plan, err := energy.Plan(planInput(p, now)); err == nil {
		p.Plan = &plan
	}
}

// currentMonday returns the Monday of the current week at midnight UTC.
// AddDate handles month and year boundaries.
func currentMonday() time.Time {
	now := time.Now().UTC()
	weekday := int(now.Weekday()) // 0=Sun
	if weekday == 0 {
		weekday = 7
	}
	return now.AddDate(0, 0, -(weekday - 1)).Truncate(24 * time.Hour)
}
