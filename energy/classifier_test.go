package energy

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var classifyNow = time.Date(2026, 3, 31, 18, 0, 0, 0, time.UTC)

// history spreads n sessions over the last 29 days, the first vigorous ones
// marked vigorous and the rest moderate.
func history(n, vigorous int, minutes float64) []ActivityRecord {
	out := make([]ActivityRecord, n)
	for i := range out {
		intensity := IntensityModerate
		if i < vigorous {
			intensity = IntensityVigorous
		}
		out[i] = ActivityRecord{
			Date:        classifyNow.Add(-time.Duration(i%29) * 24 * time.Hour),
			Intensity:   intensity,
			DurationMin: minutes,
		}
	}
	return out
}

func TestClassify_Tiers(t *testing.T) {
	cases := []struct {
		name       string
		records    []ActivityRecord
		level      FitnessLevel
		confidence int
	}{
		{"athlete", history(22, 11, 60), Athlete, 90},
		{"athlete short sessions fall to advanced", history(22, 11, 50), Advanced, 85},
		{"advanced", history(18, 6, 45), Advanced, 85},
		{"advanced without vigorous falls to intermediate", history(18, 5, 45), Intermediate, 80},
		{"intermediate", history(13, 0, 30), Intermediate, 80},
		{"too few sessions", history(12, 12, 90), Beginner, 75},
		{"too short", history(20, 0, 29), Beginner, 75},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := Classify(tc.records, classifyNow)
			assert.Equal(t, tc.level, rec.Level)
			assert.Equal(t, tc.confidence, rec.Confidence)
			assert.Contains(t, rec.Reason, string(tc.level))
		})
	}
}

func TestClassify_NoHistory(t *testing.T) {
	rec := Classify(nil, classifyNow)
	assert.Equal(t, Beginner, rec.Level)
	assert.Equal(t, 50, rec.Confidence)
	assert.Contains(t, rec.Reason, "no activity history")
}

func TestClassify_IgnoresRecordsOutsideWindow(t *testing.T) {
	old := history(30, 30, 90)
	for i := range old {
		old[i].Date = classifyNow.AddDate(0, 0, -31-i)
	}
	future := ActivityRecord{Date: classifyNow.Add(time.Hour), Intensity: IntensityVigorous, DurationMin: 90}

	rec := Classify(append(old, future), classifyNow)
	assert.Equal(t, 50, rec.Confidence)

	rec = Classify(append(old, history(13, 0, 30)...), classifyNow)
	assert.Equal(t, Intermediate, rec.Level)
	assert.InDelta(t, 13/(30.0/7), rec.ActivitiesPerWeek, 1e-9)
	assert.Equal(t, 30.0, rec.AvgDurationMin)
	assert.Equal(t, 0.0, rec.VigorousPct)
}

func TestApplyRecommendation_FeedsBackIntoEstimates(t *testing.T) {
	calc := testCalculator(t)
	p := neutralProfile()
	s := ActivitySession{ActivityID: "running", Intensity: IntensityModerate, DurationMin: 30}

	before, err := calc.EstimateActivity(p, s)
	require.NoError(t, err)

	rec := Classify(history(22, 11, 60), classifyNow)
	// Classifying alone leaves the profile untouched.
	assert.Equal(t, Intermediate, p.FitnessLevel)

	changed := p.ApplyRecommendation(rec, classifyNow)
	assert.True(t, changed)
	assert.Equal(t, Athlete, p.FitnessLevel)
	assert.Equal(t, classifyNow, p.FitnessUpdatedAt)

	after, err := calc.EstimateActivity(p, s)
	require.NoError(t, err)
	assert.Less(t, after.TotalCalories, before.TotalCalories)

	assert.False(t, p.ApplyRecommendation(rec, classifyNow.Add(time.Hour)))
	assert.Equal(t, classifyNow.Add(time.Hour), p.FitnessUpdatedAt)
}
