package energy

// Adjustment factors are multiplicative and centred on 1.0. Inputs outside a
// table clamp to the nearest defined bracket.

func AgeFactor(age int) float64 {
	switch {
	case age <= 25:
		return 1.05
	case age <= 35:
		return 1.00
	case age <= 45:
		return 0.97
	case age <= 55:
		return 0.95
	case age <= 65:
		return 0.92
	default:
		return 0.90
	}
}

func GenderFactor(g Gender) float64 {
	if g == Female {
		return 0.95
	}
	return 1.00
}

func FitnessFactor(l FitnessLevel) float64 {
	switch l {
	case Beginner:
		return 1.10
	case Advanced:
		return 0.92
	case Athlete:
		return 0.88
	default:
		return 1.00
	}
}

// BMIFactor uses ok=false for an absent BMI.
func BMIFactor(bmi float64, ok bool) float64 {
	if !ok {
		return 1.00
	}
	switch {
	case bmi < 18.5:
		return 0.95
	case bmi < 25:
		return 1.00
	case bmi < 30:
		return 1.05
	default:
		return 1.08
	}
}

func EnvironmentFactor(e Environment) float64 {
	switch e {
	case EnvOutdoorHot:
		return 1.08
	case EnvOutdoorCold:
		return 1.10
	case EnvHighAltitude:
		return 1.06
	default:
		return 1.00
	}
}

// IntensityMultiplier scales the EPOC bonus with effort.
func IntensityMultiplier(i Intensity) float64 {
	switch i {
	case IntensityVigorous:
		return 1.5
	case IntensityLight:
		return 0.5
	default:
		return 1.0
	}
}

// Factor is one named multiplicative adjustment.
type Factor struct {
	Name  string
	Value float64
}

// personalFactors are the profile-driven adjustments shared by both
// calculators, in breakdown order.
func personalFactors(p Profile) []Factor {
	bmi, ok := p.BMI()
	return []Factor{
		{Name: "age", Value: AgeFactor(p.Age)},
		{Name: "gender", Value: GenderFactor(p.Gender)},
		{Name: "fitness_level", Value: FitnessFactor(p.FitnessLevel)},
		{Name: "bmi", Value: BMIFactor(bmi, ok)},
	}
}

func product(factors []Factor) float64 {
	m := 1.0
	for _, f := range factors {
		m *= f.Value
	}
	return m
}
