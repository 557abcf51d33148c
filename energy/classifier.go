package energy

import (
	"fmt"
	"time"
)

// ClassifierWindow is the history span the classifier looks at.
const ClassifierWindow = 30 * 24 * time.Hour

// ActivityRecord is one logged session as the classifier sees it.
type ActivityRecord struct {
	Date        time.Time
	Intensity   Intensity
	DurationMin float64
}

// Recommendation is the classifier's suggestion. Applying it to a profile is a
// separate step (Profile.ApplyRecommendation).
type Recommendation struct {
	Level             FitnessLevel `json:"level"`
	Confidence        int          `json:"confidence"`
	Reason            string       `json:"reason"`
	ActivitiesPerWeek float64      `json:"activities_per_week"`
	AvgDurationMin    float64      `json:"avg_duration_min"`
	VigorousPct       float64      `json:"vigorous_pct"`
}

// Classify recommends a fitness tier from the records dated within the 30 days
// ending at now. Rules are checked from athlete down; the first match wins.
func Classify(records []ActivityRecord, now time.Time) Recommendation {
	start := now.Add(-ClassifierWindow)

	var count, vigorous int
	var minutes float64
	for _, r := range records {
		if r.Date.Before(start) || r.Date.After(now) {
			continue
		}
		count++
		minutes += r.DurationMin
		if r.Intensity == IntensityVigorous {
			vigorous++
		}
	}

	if count == 0 {
		return Recommendation{
			Level:      Beginner,
			Confidence: 50,
			Reason:     "no activity history in the last 30 days",
		}
	}

	weeks := ClassifierWindow.Hours() / 24 / 7
	rec := Recommendation{
		ActivitiesPerWeek: float64(count) / weeks,
		AvgDurationMin:    minutes / float64(count),
		VigorousPct:       float64(vigorous) / float64(count) * 100,
	}
	summary := fmt.Sprintf("%.1f sessions/week averaging %.0f min, %.0f%% vigorous",
		rec.ActivitiesPerWeek, rec.AvgDurationMin, rec.VigorousPct)

	switch {
	case rec.ActivitiesPerWeek >= 5 && rec.AvgDurationMin >= 60 && rec.VigorousPct >= 50:
		rec.Level, rec.Confidence = Athlete, 90
	case rec.ActivitiesPerWeek >= 4 && rec.AvgDurationMin >= 45 && rec.VigorousPct >= 30:
		rec.Level, rec.Confidence = Advanced, 85
	case rec.ActivitiesPerWeek >= 3 && rec.AvgDurationMin >= 30:
		rec.Level, rec.Confidence = Intermediate, 80
	default:
		rec.Level, rec.Confidence = Beginner, 75
	}
	rec.Reason = fmt.Sprintf("%s: %s", summary, rec.Level)
	return rec
}
