package energy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalog_Valid(t *testing.T) {
	c := DefaultCatalog()

	running, err := c.Activity("running")
	require.NoError(t, err)
	assert.Equal(t, 10.0, running.MET(IntensityModerate))
	assert.Equal(t, 1.08, running.EPOCFactor)

	yoga, err := c.Activity("yoga")
	require.NoError(t, err)
	assert.Equal(t, 1.0, yoga.EPOCFactor, "unset EPOC factor normalises to 1.0")

	squat, err := c.Exercise("barbell_back_squat")
	require.NoError(t, err)
	assert.Equal(t, MechanicCompound, squat.Mechanic)

	assert.Len(t, c.Activities(), len(DefaultActivities()))
	assert.Len(t, c.Exercises(), len(DefaultExercises()))
}

func TestNewCatalog_Rejects(t *testing.T) {
	mets := map[Intensity]float64{IntensityModerate: 4}
	cases := map[string][]ActivityDefinition{
		"empty id":     {{Category: CategoryCardio, METs: mets}},
		"duplicate":    {{ID: "a", Category: CategoryCardio, METs: mets}, {ID: "a", Category: CategoryCardio, METs: mets}},
		"no tiers":     {{ID: "a", Category: CategoryCardio}},
		"zero met":     {{ID: "a", Category: CategoryCardio, METs: map[Intensity]float64{IntensityLight: 0}}},
		"unknown tier": {{ID: "a", Category: CategoryCardio, METs: map[Intensity]float64{"extreme": 9}}},
		"bad category": {{ID: "a", Category: "esports", METs: mets}},
		"epoc below 1": {{ID: "a", Category: CategoryCardio, METs: mets, EPOCFactor: 0.9}},
	}
	for name, defs := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := NewCatalog(defs, nil)
			assert.ErrorIs(t, err, ErrInvalidArgument)
		})
	}

	_, err := NewCatalog(nil, []StrengthExerciseDefinition{{ID: "x"}, {ID: "x"}})
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestCatalog_ImmutableViews(t *testing.T) {
	defs := []ActivityDefinition{{ID: "a", Category: CategoryCardio, METs: map[Intensity]float64{IntensityModerate: 4}}}
	c, err := NewCatalog(defs, nil)
	require.NoError(t, err)

	defs[0].METs[IntensityModerate] = 99
	c.Activities()[0].METs[IntensityModerate] = 99

	a, err := c.Activity("a")
	require.NoError(t, err)
	assert.Equal(t, 4.0, a.MET(IntensityModerate))
}

func TestCatalog_NotFound(t *testing.T) {
	c := DefaultCatalog()
	_, err := c.Activity("quidditch")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = c.Exercise("quidditch")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.EqualError(t, err, `exercise "quidditch" not found`)
}

func TestFilterExercises(t *testing.T) {
	c := DefaultCatalog()

	ids := func(defs []StrengthExerciseDefinition) []string {
		out := make([]string, len(defs))
		for i, d := range defs {
			out[i] = d.ID
		}
		return out
	}

	assert.Len(t, c.FilterExercises(ExerciseFilter{}), len(DefaultExercises()))
	assert.Equal(t, []string{"plank", "pull_up", "push_up"},
		ids(c.FilterExercises(ExerciseFilter{Equipment: []string{"Body Only"}})))
	assert.Equal(t,
		[]string{"barbell_bench_press", "biceps_curl", "dumbbell_lunge", "lateral_raise", "plank", "pull_up", "push_up"},
		ids(c.FilterExercises(ExerciseFilter{Equipment: []string{"barbell", "dumbbell", "body-only"}, Levels: []string{"Beginner"}})))
	assert.Equal(t, []string{"barbell_back_squat", "dumbbell_lunge", "leg_extension", "leg_press"},
		ids(c.FilterExercises(ExerciseFilter{Muscle: "Quadriceps"})))
	assert.Empty(t, c.FilterExercises(ExerciseFilter{Levels: []string{"expert"}, Equipment: []string{"machine"}}))
}
