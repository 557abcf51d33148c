package energy

import (
	"math"
	"time"
)

// Profile is the physiological model a calculation is personalised with.
// BMI is always derived from the current height and weight.
type Profile struct {
	Age              int
	Gender           Gender
	HeightCM         float64
	WeightKG         float64
	TargetWeightKG   float64
	WeeklyChangeKG   float64 // signed; positive means gain
	FitnessLevel     FitnessLevel
	FitnessUpdatedAt time.Time
}

// BMI returns weight / (height in metres)². ok is false when height or weight
// is not positive, in which case no BMI adjustment applies.
func (p Profile) BMI() (bmi float64, ok bool) {
	if !(p.HeightCM > 0) || !(p.WeightKG > 0) {
		return 0, false
	}
	m := p.HeightCM / 100
	return p.WeightKG / (m * m), true
}

// RoundedBMI is BMI rounded to one decimal, the precision shown to users.
func (p Profile) RoundedBMI() (float64, bool) {
	bmi, ok := p.BMI()
	if !ok {
		return 0, false
	}
	return math.Round(bmi*10) / 10, true
}

// BMICategory labels a BMI value using the same cut-offs as the BMI factor.
func BMICategory(bmi float64) string {
	switch {
	case bmi < 18.5:
		return "underweight"
	case bmi < 25:
		return "normal"
	case bmi < 30:
		return "overweight"
	default:
		return "obese"
	}
}

// WeeksToTarget returns the whole number of weeks needed to move from current
// to target at weeklyChangeKG per week. The rate magnitude is clamped to at
// least MinWeeklyChangeKG so a zero goal still yields a finite answer.
func (p Profile) WeeksToTarget() int {
	return WeeksToTarget(p.WeightKG, p.TargetWeightKG, p.WeeklyChangeKG)
}

// MinWeeklyChangeKG is the smallest rate used as a divisor.
const MinWeeklyChangeKG = 0.1

func WeeksToTarget(currentKG, targetKG, weeklyChangeKG float64) int {
	diff := math.Abs(targetKG - currentKG)
	if !(diff > 0) || math.IsInf(diff, 0) {
		return 0
	}
	rate := math.Abs(weeklyChangeKG)
	if !(rate >= MinWeeklyChangeKG) {
		rate = MinWeeklyChangeKG
	}
	return int(math.Ceil(diff / rate))
}

// ProjectedTargetDate is the date reached after weeks whole weeks from now.
func ProjectedTargetDate(now time.Time, weeks int) time.Time {
	return now.AddDate(0, 0, 7*weeks)
}

// ApplyRecommendation sets the profile's fitness level from a classifier
// recommendation and stamps the update time. It reports whether the level
// changed; the timestamp is refreshed either way.
func (p *Profile) ApplyRecommendation(rec Recommendation, now time.Time) bool {
	changed := p.FitnessLevel != rec.Level
	p.FitnessLevel = rec.Level
	p.FitnessUpdatedAt = now
	return changed
}

func (p Profile) validateForBurn() error {
	if err := requirePositive("weight_kg", p.WeightKG); err != nil {
		return err
	}
	if p.Age <= 0 {
		return invalid("age", "must be greater than zero")
	}
	if p.Gender != Male && p.Gender != Female {
		return invalid("gender", "must be male or female")
	}
	if _, err := ParseFitnessLevel(string(p.FitnessLevel)); err != nil {
		return err
	}
	return nil
}
