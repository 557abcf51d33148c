package energy

import "math"

type Kind string

const (
	KindActivity Kind = "activity"
	KindStrength Kind = "strength"
)

// Adjustment records one factor and its rounded calorie contribution,
// (factor − 1) × base.
type Adjustment struct {
	Name     string  `json:"name"`
	Factor   float64 `json:"factor"`
	Calories int     `json:"calories"`
}

// Breakdown explains how TotalCalories was reached. Strength-only fields are
// zero for activity estimates.
type Breakdown struct {
	MET              float64      `json:"met"`
	DurationMin      float64      `json:"duration_min"`
	BaseCalories     float64      `json:"base_calories"`
	Adjustments      []Adjustment `json:"adjustments"`
	AdjustedCalories float64      `json:"adjusted_calories"`
	EPOCFraction     float64      `json:"epoc_fraction"`
	EPOCCalories     int          `json:"epoc_calories"`
	HeartRateKcal    *float64     `json:"heart_rate_kcal,omitempty"`

	VolumeKG       float64 `json:"volume_kg,omitempty"`
	VolumeCalories float64 `json:"volume_calories,omitempty"`
	METCalories    float64 `json:"met_calories,omitempty"`
}

// Estimate is an immutable calculation result. A new session produces a new
// Estimate; nothing updates one in place.
type Estimate struct {
	Kind          Kind      `json:"kind"`
	ActivityID    string    `json:"activity_id"`
	Intensity     Intensity `json:"intensity"`
	DurationMin   float64   `json:"duration_min"`
	TotalCalories int       `json:"total_calories"`
	Breakdown     Breakdown `json:"breakdown"`
}

// metCalories is the standard MET-to-kcal conversion: 3.5 ml O₂/kg/min per MET
// at roughly 5 kcal per litre of O₂.
func metCalories(met, weightKG, minutes float64) float64 {
	return met * 3.5 * weightKG * minutes / 200
}

// epocFraction is the post-exercise bonus as a fraction of the session burn.
func epocFraction(epocFactor float64, i Intensity) float64 {
	return (epocFactor - 1.0) * IntensityMultiplier(i)
}

func round(v float64) int {
	return int(math.Round(v))
}

func adjustments(factors []Factor, base float64) []Adjustment {
	out := make([]Adjustment, len(factors))
	for i, f := range factors {
		out[i] = Adjustment{Name: f.Name, Factor: f.Value, Calories: round((f.Value - 1) * base)}
	}
	return out
}
