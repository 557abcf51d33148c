package energy

import "math"

// kcalPerKG is the approximate energy content of one kilogram of body mass.
const kcalPerKG = 7700.0

// PlanInput is everything the planner needs. Gender, Goal and ActivityLevel
// accept the same spellings as their Parse functions.
type PlanInput struct {
	Age            int
	Gender         Gender
	HeightCM       float64
	WeightKG       float64
	WeeklyChangeKG float64
	Goal           Goal
	ActivityLevel  ActivityLevel
}

// NutritionPlan is fully derived; it is re-computed, never edited.
type NutritionPlan struct {
	TargetCalories int `json:"target_calories"`
	ProteinG       int `json:"protein_g"`
	CarbsG         int `json:"carbs_g"`
	FatG           int `json:"fat_g"`
	BMR            int `json:"bmr"`
	TDEE           int `json:"tdee"`
}

// MacroSplit is the fraction of calories from each macronutrient.
type MacroSplit struct {
	Protein float64
	Carbs   float64
	Fat     float64
}

var macroSplits = map[Goal]MacroSplit{
	GoalLoseWeight:    {Protein: 0.30, Carbs: 0.40, Fat: 0.30},
	GoalReduceBodyFat: {Protein: 0.35, Carbs: 0.35, Fat: 0.30},
	GoalBuildMuscle:   {Protein: 0.35, Carbs: 0.45, Fat: 0.20},
	GoalGainWeight:    {Protein: 0.25, Carbs: 0.55, Fat: 0.20},
	GoalMaintain:      {Protein: 0.30, Carbs: 0.45, Fat: 0.25},
}

// MacroSplitFor resolves goal to its split, falling back to the maintain
// split for anything unrecognised.
func MacroSplitFor(goal Goal) MacroSplit {
	if s, ok := macroSplits[goal]; ok {
		return s
	}
	return macroSplits[GoalMaintain]
}

// ActivityMultiplier resolves level to its TDEE multiplier, falling back to
// moderate (1.35) for an empty or unknown level.
func ActivityMultiplier(level ActivityLevel) float64 {
	if m, ok := activityMultipliers[ActivityLevel(normalize(string(level)))]; ok {
		return m
	}
	return activityMultipliers[ModeratelyActive]
}

// BMR is the Mifflin–St Jeor basal metabolic rate in kcal/day.
func BMR(g Gender, weightKG, heightCM float64, age int) float64 {
	bmr := 10*weightKG + 6.25*heightCM - 5*float64(age)
	if g == Male {
		return bmr + 5
	}
	return bmr - 161
}

// Plan derives BMR, TDEE, a goal-adjusted calorie target and macro grams.
// The weekly change is applied by magnitude; the goal decides its direction.
func Plan(in PlanInput) (NutritionPlan, error) {
	if in.Age <= 0 {
		return NutritionPlan{}, invalid("age", "must be greater than zero")
	}
	if err := requirePositive("height_cm", in.HeightCM); err != nil {
		return NutritionPlan{}, err
	}
	if err := requirePositive("weight_kg", in.WeightKG); err != nil {
		return NutritionPlan{}, err
	}
	gender, err := ParseGender(string(in.Gender))
	if err != nil {
		return NutritionPlan{}, err
	}
	goal := ParseGoal(string(in.Goal))
	if goal == "" {
		return NutritionPlan{}, invalid("goal", "is required")
	}
	if math.IsNaN(in.WeeklyChangeKG) || math.IsInf(in.WeeklyChangeKG, 0) {
		return NutritionPlan{}, invalid("weekly_change_kg", "must be a finite number")
	}

	bmr := BMR(gender, in.WeightKG, in.HeightCM, in.Age)
	tdee := bmr * ActivityMultiplier(in.ActivityLevel)
	delta := math.Abs(in.WeeklyChangeKG) * kcalPerKG / 7

	target := tdee
	switch goal {
	case GoalLoseWeight, GoalReduceBodyFat:
		target = tdee - delta
	case GoalGainWeight:
		target = tdee + delta
	case GoalBuildMuscle:
		// Smaller surplus to limit fat gain.
		target = tdee + delta/2
	}

	calories := round(target)
	split := MacroSplitFor(goal)
	return NutritionPlan{
		TargetCalories: calories,
		ProteinG:       round(float64(calories) * split.Protein / 4),
		CarbsG:         round(float64(calories) * split.Carbs / 4),
		FatG:           round(float64(calories) * split.Fat / 9),
		BMR:            round(bmr),
		TDEE:           round(tdee),
	}, nil
}
