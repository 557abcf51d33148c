package energy

import (
	"fmt"
	"math"
)

const (
	secondsPerRep = 3.0
	// strengthEPOCFactor is fixed for resistance work rather than read from
	// the activity catalog.
	strengthEPOCFactor = 1.12
	compoundMETBoost   = 1.2

	// Upper bounds for one logged exercise. Anything larger is a data entry
	// error, and int products beyond them could wrap.
	MaxSets        = 100
	MaxReps        = 1000
	MaxLoadKG      = 1000.0
	MaxRestSeconds = 3600.0
)

// strengthMETs is the beginner MET table for resistance work.
var strengthMETs = map[Intensity]float64{
	IntensityLight:    3.0,
	IntensityModerate: 5.0,
	IntensityVigorous: 6.0,
}

// StrengthSession holds the inputs for one resistance exercise.
type StrengthSession struct {
	ExerciseID  string
	Sets        int
	Reps        int
	LoadKG      float64
	RestSeconds float64
	Intensity   Intensity
}

// StrengthDuration returns the session length in whole minutes. Rest is
// counted sets−1 times since none follows the final set.
func StrengthDuration(sets, reps int, restSeconds float64) int {
	seconds := float64(sets)*float64(reps)*secondsPerRep + float64(sets-1)*restSeconds
	return int(math.Ceil(seconds / 60))
}

// EstimateStrength estimates calories burned for a resistance exercise as the
// sum of a volume term (kg moved × 0.05 compound / 0.03 otherwise) and a MET
// term over the derived duration, then applies a fixed EPOC bonus.
func (c *Calculator) EstimateStrength(p Profile, s StrengthSession) (Estimate, error) {
	def, err := c.catalog.Exercise(s.ExerciseID)
	if err != nil {
		return Estimate{}, err
	}
	if s.Sets <= 0 {
		return Estimate{}, invalid("sets", "must be greater than zero")
	}
	if s.Sets > MaxSets {
		return Estimate{}, invalid("sets", fmt.Sprintf("must be at most %d", MaxSets))
	}
	if s.Reps <= 0 {
		return Estimate{}, invalid("reps", "must be greater than zero")
	}
	if s.Reps > MaxReps {
		return Estimate{}, invalid("reps", fmt.Sprintf("must be at most %d", MaxReps))
	}
	if err := requirePositive("load_kg", s.LoadKG); err != nil {
		return Estimate{}, err
	}
	if s.LoadKG > MaxLoadKG {
		return Estimate{}, invalid("load_kg", fmt.Sprintf("must be at most %g", MaxLoadKG))
	}
	if !(s.RestSeconds >= 0) {
		return Estimate{}, invalid("rest_seconds", "must not be negative")
	}
	if s.RestSeconds > MaxRestSeconds {
		return Estimate{}, invalid("rest_seconds", fmt.Sprintf("must be at most %g", MaxRestSeconds))
	}
	if err := p.validateForBurn(); err != nil {
		return Estimate{}, err
	}
	intensity, err := ParseIntensity(string(s.Intensity))
	if err != nil {
		return Estimate{}, err
	}

	compound := def.Mechanic == MechanicCompound
	minutes := float64(StrengthDuration(s.Sets, s.Reps, s.RestSeconds))
	volume := float64(s.Sets) * float64(s.Reps) * s.LoadKG

	met := strengthMETs[intensity]
	coefficient := 0.03
	if compound {
		met *= compoundMETBoost
		coefficient = 0.05
	}

	volumeKcal := volume * coefficient
	base := metCalories(met, p.WeightKG, minutes)
	factors := personalFactors(p)
	metKcal := base * product(factors)

	// Volume captures mechanical work and MET the cardiovascular cost; they
	// are separate sinks and add rather than blend.
	total := volumeKcal + metKcal
	epoc := epocFraction(strengthEPOCFactor, intensity)

	return Estimate{
		Kind:          KindStrength,
		ActivityID:    def.ID,
		Intensity:     intensity,
		DurationMin:   minutes,
		TotalCalories: round(total * (1 + epoc)),
		Breakdown: Breakdown{
			MET:              met,
			DurationMin:      minutes,
			BaseCalories:     base,
			Adjustments:      adjustments(factors, base),
			AdjustedCalories: total,
			EPOCFraction:     epoc,
			EPOCCalories:     round(epoc * total),
			VolumeKG:         volume,
			VolumeCalories:   volumeKcal,
			METCalories:      metKcal,
		},
	}, nil
}
