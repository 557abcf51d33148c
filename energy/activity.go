package energy

// ActivitySession holds the inputs for one aerobic or general activity.
type ActivitySession struct {
	ActivityID  string
	Intensity   Intensity
	DurationMin float64
	// HeartRate is optional. It enters the blend as (age − HeartRate), not as a
	// raw BPM reading; see EstimateActivity.
	HeartRate   *float64
	Environment Environment
}

// Calculator turns catalog entries plus a profile into calorie estimates.
// It holds no mutable state and may be shared across goroutines.
type Calculator struct {
	catalog *Catalog
}

// NewCalculator binds a calculator to catalog.
func NewCalculator(catalog *Catalog) *Calculator {
	return &Calculator{catalog: catalog}
}

// Catalog exposes the calculator's reference data.
func (c *Calculator) Catalog() *Catalog { return c.catalog }

// EstimateActivity estimates calories burned for an aerobic/general session.
//
// base = MET × 3.5 × kg × min / 200, scaled by the age, gender, fitness, BMI
// and environment factors, then by (1 + EPOC fraction). With a heart rate the
// result is blended 60/40 with ((age − hr) × kg × min × 0.6309) / 200, a term
// kept for compatibility with recorded estimates even though it treats heart
// rate on the same scale as age.
func (c *Calculator) EstimateActivity(p Profile, s ActivitySession) (Estimate, error) {
	def, err := c.catalog.Activity(s.ActivityID)
	if err != nil {
		return Estimate{}, err
	}
	if err := requirePositive("duration_min", s.DurationMin); err != nil {
		return Estimate{}, err
	}
	if err := p.validateForBurn(); err != nil {
		return Estimate{}, err
	}
	intensity, err := ParseIntensity(string(s.Intensity))
	if err != nil {
		return Estimate{}, err
	}
	env, err := ParseEnvironment(string(s.Environment))
	if err != nil {
		return Estimate{}, err
	}

	met := def.MET(intensity)
	base := metCalories(met, p.WeightKG, s.DurationMin)

	factors := append(personalFactors(p), Factor{Name: "environment", Value: EnvironmentFactor(env)})
	adjusted := base * product(factors)

	epoc := epocFraction(def.EPOCFactor, intensity)
	final := adjusted * (1 + epoc)

	b := Breakdown{
		MET:              met,
		DurationMin:      s.DurationMin,
		BaseCalories:     base,
		Adjustments:      adjustments(factors, base),
		AdjustedCalories: adjusted,
		EPOCFraction:     epoc,
		EPOCCalories:     round(epoc * adjusted),
	}

	if s.HeartRate != nil {
		hr := (float64(p.Age) - *s.HeartRate) * p.WeightKG * s.DurationMin * 0.6309 / 200
		b.HeartRateKcal = &hr
		final = 0.6*final + 0.4*hr
	}

	return Estimate{
		Kind:          KindActivity,
		ActivityID:    def.ID,
		Intensity:     intensity,
		DurationMin:   s.DurationMin,
		TotalCalories: round(final),
		Breakdown:     b,
	}, nil
}
