package energy

// DefaultActivities returns the production activity reference data. MET values
// follow the Compendium of Physical Activities; a fresh slice is built on every
// call so callers cannot alias each other's catalogs.
func DefaultActivities() []ActivityDefinition {
	tiers := func(light, moderate, vigorous float64) map[Intensity]float64 {
		m := map[Intensity]float64{}
		if light > 0 {
			m[IntensityLight] = light
		}
		if moderate > 0 {
			m[IntensityModerate] = moderate
		}
		if vigorous > 0 {
			m[IntensityVigorous] = vigorous
		}
		return m
	}

	return []ActivityDefinition{
		{ID: "running", Name: "Running", Category: CategoryCardio, METs: tiers(7.0, 10.0, 12.5), EPOCFactor: 1.08},
		{ID: "walking", Name: "Walking", Category: CategoryCardio, METs: tiers(2.5, 3.5, 5.0), EPOCFactor: 1.02},
		{ID: "hiking", Name: "Hiking", Category: CategoryCardio, METs: tiers(0, 6.0, 7.8), EPOCFactor: 1.04},
		{ID: "cycling", Name: "Cycling", Category: CategoryCardio, METs: tiers(4.0, 8.0, 10.0), EPOCFactor: 1.06},
		{ID: "stationary_bike", Name: "Stationary bike", Category: CategoryCardio, METs: tiers(3.5, 6.8, 8.8), EPOCFactor: 1.06},
		{ID: "swimming", Name: "Swimming", Category: CategoryCardio, METs: tiers(6.0, 8.0, 10.0), EPOCFactor: 1.07},
		{ID: "rowing", Name: "Rowing machine", Category: CategoryCardio, METs: tiers(4.8, 7.0, 8.5), EPOCFactor: 1.07},
		{ID: "elliptical", Name: "Elliptical trainer", Category: CategoryCardio, METs: tiers(0, 5.0, 7.0), EPOCFactor: 1.05},
		{ID: "jump_rope", Name: "Jump rope", Category: CategoryCardio, METs: tiers(8.8, 11.8, 12.3), EPOCFactor: 1.10},
		{ID: "stair_climbing", Name: "Stair climbing", Category: CategoryCardio, METs: tiers(4.0, 8.8, 9.0), EPOCFactor: 1.07},
		{ID: "hiit", Name: "HIIT", Category: CategoryCardio, METs: tiers(0, 8.0, 12.0), EPOCFactor: 1.15},
		{ID: "dancing", Name: "Dancing", Category: CategoryCardio, METs: tiers(3.0, 5.0, 7.3), EPOCFactor: 1.03},
		{ID: "circuit_training", Name: "Circuit training", Category: CategoryStrength, METs: tiers(0, 4.3, 8.0), EPOCFactor: 1.12},
		{ID: "weight_training", Name: "Weight training (general)", Category: CategoryStrength, METs: tiers(3.5, 5.0, 6.0), EPOCFactor: 1.12},
		{ID: "calisthenics", Name: "Calisthenics", Category: CategoryStrength, METs: tiers(2.8, 3.8, 8.0), EPOCFactor: 1.10},
		{ID: "basketball", Name: "Basketball", Category: CategorySports, METs: tiers(4.5, 6.5, 8.0), EPOCFactor: 1.06},
		{ID: "soccer", Name: "Soccer", Category: CategorySports, METs: tiers(0, 7.0, 10.0), EPOCFactor: 1.07},
		{ID: "tennis", Name: "Tennis", Category: CategorySports, METs: tiers(5.0, 7.3, 8.0), EPOCFactor: 1.05},
		{ID: "boxing", Name: "Boxing (bag)", Category: CategorySports, METs: tiers(0, 5.5, 7.8), EPOCFactor: 1.09},
		{ID: "martial_arts", Name: "Martial arts", Category: CategorySports, METs: tiers(0, 5.3, 10.3), EPOCFactor: 1.08},
		{ID: "yoga", Name: "Yoga", Category: CategoryFlexibility, METs: tiers(2.5, 3.0, 4.0)},
		{ID: "pilates", Name: "Pilates", Category: CategoryFlexibility, METs: tiers(0, 3.0, 0)},
		{ID: "stretching", Name: "Stretching", Category: CategoryFlexibility, METs: tiers(2.3, 0, 0)},
		{ID: "gardening", Name: "Gardening", Category: CategoryOther, METs: tiers(0, 3.8, 0)},
		{ID: "housework", Name: "Housework", Category: CategoryOther, METs: tiers(2.3, 3.3, 0)},
	}
}

// DefaultExercises returns the production strength exercise reference data.
func DefaultExercises() []StrengthExerciseDefinition {
	return []StrengthExerciseDefinition{
		{ID: "barbell_back_squat", Name: "Barbell back squat", PrimaryMuscles: []string{"quadriceps"}, SecondaryMuscles: []string{"glutes", "hamstrings", "lower back"}, Equipment: "barbell", Level: DifficultyIntermediate, Mechanic: MechanicCompound, Force: ForcePush},
		{ID: "barbell_deadlift", Name: "Barbell deadlift", PrimaryMuscles: []string{"lower back"}, SecondaryMuscles: []string{"glutes", "hamstrings", "forearms", "traps"}, Equipment: "barbell", Level: DifficultyIntermediate, Mechanic: MechanicCompound, Force: ForcePull},
		{ID: "barbell_bench_press", Name: "Barbell bench press", PrimaryMuscles: []string{"chest"}, SecondaryMuscles: []string{"shoulders", "triceps"}, Equipment: "barbell", Level: DifficultyBeginner, Mechanic: MechanicCompound, Force: ForcePush},
		{ID: "overhead_press", Name: "Standing overhead press", PrimaryMuscles: []string{"shoulders"}, SecondaryMuscles: []string{"triceps"}, Equipment: "barbell", Level: DifficultyIntermediate, Mechanic: MechanicCompound, Force: ForcePush},
		{ID: "bent_over_row", Name: "Bent-over barbell row", PrimaryMuscles: []string{"middle back"}, SecondaryMuscles: []string{"biceps", "lats", "shoulders"}, Equipment: "barbell", Level: DifficultyIntermediate, Mechanic: MechanicCompound, Force: ForcePull},
		{ID: "pull_up", Name: "Pull-up", PrimaryMuscles: []string{"lats"}, SecondaryMuscles: []string{"biceps", "middle back"}, Equipment: "body only", Level: DifficultyBeginner, Mechanic: MechanicCompound, Force: ForcePull},
		{ID: "push_up", Name: "Push-up", PrimaryMuscles: []string{"chest"}, SecondaryMuscles: []string{"shoulders", "triceps"}, Equipment: "body only", Level: DifficultyBeginner, Mechanic: MechanicCompound, Force: ForcePush},
		{ID: "dumbbell_lunge", Name: "Dumbbell lunge", PrimaryMuscles: []string{"quadriceps"}, SecondaryMuscles: []string{"glutes", "hamstrings"}, Equipment: "dumbbell", Level: DifficultyBeginner, Mechanic: MechanicCompound, Force: ForcePush},
		{ID: "leg_press", Name: "Leg press", PrimaryMuscles: []string{"quadriceps"}, SecondaryMuscles: []string{"glutes", "hamstrings"}, Equipment: "machine", Level: DifficultyBeginner, Mechanic: MechanicCompound, Force: ForcePush},
		{ID: "biceps_curl", Name: "Dumbbell biceps curl", PrimaryMuscles: []string{"biceps"}, SecondaryMuscles: []string{"forearms"}, Equipment: "dumbbell", Level: DifficultyBeginner, Mechanic: MechanicIsolation, Force: ForcePull},
		{ID: "triceps_pushdown", Name: "Cable triceps pushdown", PrimaryMuscles: []string{"triceps"}, Equipment: "cable", Level: DifficultyBeginner, Mechanic: MechanicIsolation, Force: ForcePush},
		{ID: "lateral_raise", Name: "Dumbbell lateral raise", PrimaryMuscles: []string{"shoulders"}, Equipment: "dumbbell", Level: DifficultyBeginner, Mechanic: MechanicIsolation, Force: ForcePush},
		{ID: "leg_extension", Name: "Leg extension", PrimaryMuscles: []string{"quadriceps"}, Equipment: "machine", Level: DifficultyBeginner, Mechanic: MechanicIsolation, Force: ForcePush},
		{ID: "lying_leg_curl", Name: "Lying leg curl", PrimaryMuscles: []string{"hamstrings"}, Equipment: "machine", Level: DifficultyBeginner, Mechanic: MechanicIsolation, Force: ForcePull},
		{ID: "calf_raise", Name: "Standing calf raise", PrimaryMuscles: []string{"calves"}, Equipment: "machine", Level: DifficultyBeginner, Mechanic: MechanicIsolation, Force: ForcePush},
		{ID: "plank", Name: "Plank", PrimaryMuscles: []string{"abdominals"}, Equipment: "body only", Level: DifficultyBeginner, Force: ForceStatic},
		{ID: "kettlebell_swing", Name: "Kettlebell swing", PrimaryMuscles: []string{"hamstrings"}, SecondaryMuscles: []string{"glutes", "lower back", "shoulders"}, Equipment: "kettlebells", Level: DifficultyIntermediate, Mechanic: MechanicCompound, Force: ForcePull},
		{ID: "clean_and_jerk", Name: "Clean and jerk", PrimaryMuscles: []string{"shoulders"}, SecondaryMuscles: []string{"quadriceps", "glutes", "traps", "triceps"}, Equipment: "barbell", Level: DifficultyExpert, Mechanic: MechanicCompound, Force: ForcePush},
	}
}

// DefaultCatalog builds the production catalog. The reference data is
// validated by NewCatalog, so a failure here is a programming error.
func DefaultCatalog() *Catalog {
	c, err := NewCatalog(DefaultActivities(), DefaultExercises())
	if err != nil {
		panic("energy: invalid default catalog: " + err.Error())
	}
	return c
}
