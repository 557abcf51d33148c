package energy

import "strings"

type Intensity string

const (
	IntensityLight    Intensity = "light"
	IntensityModerate Intensity = "moderate"
	IntensityVigorous Intensity = "vigorous"
)

// ParseIntensity normalises s. An empty string means moderate.
func ParseIntensity(s string) (Intensity, error) {
	switch Intensity(normalize(s)) {
	case "", IntensityModerate:
		return IntensityModerate, nil
	case IntensityLight:
		return IntensityLight, nil
	case IntensityVigorous:
		return IntensityVigorous, nil
	}
	return "", invalid("intensity", "must be one of: light, moderate, vigorous")
}

type Environment string

const (
	EnvIndoor       Environment = "indoor"
	EnvOutdoorHot   Environment = "outdoor_hot"
	EnvOutdoorCold  Environment = "outdoor_cold"
	EnvHighAltitude Environment = "high_altitude"
)

// ParseEnvironment normalises s. An empty string means indoor.
func ParseEnvironment(s string) (Environment, error) {
	switch e := Environment(normalize(s)); e {
	case "", EnvIndoor:
		return EnvIndoor, nil
	case EnvOutdoorHot, EnvOutdoorCold, EnvHighAltitude:
		return e, nil
	}
	return "", invalid("environment", "must be one of: indoor, outdoor_hot, outdoor_cold, high_altitude")
}

type Gender string

const (
	Male   Gender = "male"
	Female Gender = "female"
)

func ParseGender(s string) (Gender, error) {
	switch normalize(s) {
	case "male", "m":
		return Male, nil
	case "female", "f":
		return Female, nil
	}
	return "", invalid("gender", "must be male or female")
}

type FitnessLevel string

const (
	Beginner     FitnessLevel = "beginner"
	Intermediate FitnessLevel = "intermediate"
	Advanced     FitnessLevel = "advanced"
	Athlete      FitnessLevel = "athlete"
)

// ParseFitnessLevel normalises s. An empty string means intermediate, the
// neutral tier.
func ParseFitnessLevel(s string) (FitnessLevel, error) {
	switch l := FitnessLevel(normalize(s)); l {
	case "":
		return Intermediate, nil
	case Beginner, Intermediate, Advanced, Athlete:
		return l, nil
	}
	return "", invalid("fitness_level", "must be one of: beginner, intermediate, advanced, athlete")
}

type Category string

const (
	CategoryCardio      Category = "cardio"
	CategoryStrength    Category = "strength"
	CategorySports      Category = "sports"
	CategoryFlexibility Category = "flexibility"
	CategoryOther       Category = "other"
)

var validCategories = map[Category]bool{
	CategoryCardio: true, CategoryStrength: true, CategorySports: true,
	CategoryFlexibility: true, CategoryOther: true,
}

type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyExpert       Difficulty = "expert"
)

type Mechanic string

const (
	MechanicCompound  Mechanic = "compound"
	MechanicIsolation Mechanic = "isolation"
)

type Force string

const (
	ForcePush   Force = "push"
	ForcePull   Force = "pull"
	ForceStatic Force = "static"
)

type Goal string

const (
	GoalLoseWeight    Goal = "lose_weight"
	GoalGainWeight    Goal = "gain_weight"
	GoalBuildMuscle   Goal = "increase_muscle_mass"
	GoalReduceBodyFat Goal = "reduce_body_fat"
	GoalMaintain      Goal = "maintain"
)

// ParseGoal accepts the canonical values plus the free-text labels the
// onboarding flow sends ("Lose weight", "Increase muscle mass", ...).
// Unknown text is returned as-is so the planner can fall back to maintain.
func ParseGoal(s string) Goal {
	g := normalize(s)
	switch {
	case g == "":
		return ""
	case strings.Contains(g, "muscle"):
		return GoalBuildMuscle
	case strings.Contains(g, "fat"):
		return GoalReduceBodyFat
	case strings.Contains(g, "lose"), strings.Contains(g, "loss"):
		return GoalLoseWeight
	case strings.Contains(g, "gain"):
		return GoalGainWeight
	case strings.Contains(g, "maintain"):
		return GoalMaintain
	}
	return Goal(g)
}

type ActivityLevel string

const (
	Sedentary        ActivityLevel = "sedentary"
	ModeratelyActive ActivityLevel = "moderate"
	Active           ActivityLevel = "active"
)

// activityMultipliers is the single source of truth for valid activity levels.
var activityMultipliers = map[ActivityLevel]float64{
	Sedentary:        1.20,
	ModeratelyActive: 1.35,
	Active:           1.50,
}

// ValidActivityLevel reports whether s names a known activity level.
func ValidActivityLevel(s string) bool {
	_, ok := activityMultipliers[ActivityLevel(normalize(s))]
	return ok
}

func normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.NewReplacer(" ", "_", "-", "_").Replace(s)
}
