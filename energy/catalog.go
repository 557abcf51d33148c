package energy

import (
	"fmt"
	"sort"
)

// fallbackMET is the last link of the MET lookup chain, used when an activity
// defines neither the requested tier nor moderate.
const fallbackMET = 5.0

// ActivityDefinition is an immutable catalog entry for an aerobic or general
// activity.
type ActivityDefinition struct {
	ID         string                `json:"id"`
	Name       string                `json:"name"`
	Category   Category              `json:"category"`
	METs       map[Intensity]float64 `json:"mets"`
	EPOCFactor float64               `json:"epoc_factor"`
}

// MET resolves the MET value for tier: the tier itself, then moderate, then
// 5.0. Not every activity defines all three tiers.
func (a ActivityDefinition) MET(tier Intensity) float64 {
	if v, ok := a.METs[tier]; ok {
		return v
	}
	if v, ok := a.METs[IntensityModerate]; ok {
		return v
	}
	return fallbackMET
}

// StrengthExerciseDefinition is an immutable catalog entry for a resistance
// exercise.
type StrengthExerciseDefinition struct {
	ID               string     `json:"id"`
	Name             string     `json:"name"`
	PrimaryMuscles   []string   `json:"primary_muscles"`
	SecondaryMuscles []string   `json:"secondary_muscles"`
	Equipment        string     `json:"equipment,omitempty"`
	Level            Difficulty `json:"level"`
	Mechanic         Mechanic   `json:"mechanic,omitempty"`
	Force            Force      `json:"force,omitempty"`
}

// Catalog is the read-only reference data the calculators resolve identifiers
// against. It is safe for concurrent use once constructed.
type Catalog struct {
	activities map[string]ActivityDefinition
	exercises  map[string]StrengthExerciseDefinition
}

// NewCatalog validates and indexes the given definitions. Identifiers must be
// unique, every activity needs at least one positive MET tier, and an EPOC
// factor of zero is normalised to 1.0 (no post-exercise burn).
func NewCatalog(activities []ActivityDefinition, exercises []StrengthExerciseDefinition) (*Catalog, error) {
	c := &Catalog{
		activities: make(map[string]ActivityDefinition, len(activities)),
		exercises:  make(map[string]StrengthExerciseDefinition, len(exercises)),
	}

	for _, a := range activities {
		if a.ID == "" {
			return nil, invalid("activity.id", "must not be empty")
		}
		if _, dup := c.activities[a.ID]; dup {
			return nil, invalid("activity.id", fmt.Sprintf("duplicate %q", a.ID))
		}
		if !validCategories[a.Category] {
			return nil, invalid("activity.category", fmt.Sprintf("%q has unknown category %q", a.ID, a.Category))
		}
		if len(a.METs) == 0 {
			return nil, invalid("activity.mets", fmt.Sprintf("%q defines no intensity tier", a.ID))
		}
		mets := make(map[Intensity]float64, len(a.METs))
		for tier, v := range a.METs {
			if _, err := ParseIntensity(string(tier)); err != nil || tier == "" {
				return nil, invalid("activity.mets", fmt.Sprintf("%q has unknown tier %q", a.ID, tier))
			}
			if !(v > 0) {
				return nil, invalid("activity.mets", fmt.Sprintf("%q tier %s must be positive", a.ID, tier))
			}
			mets[tier] = v
		}
		a.METs = mets
		if a.EPOCFactor == 0 {
			a.EPOCFactor = 1.0
		}
		if a.EPOCFactor < 1.0 {
			return nil, invalid("activity.epoc_factor", fmt.Sprintf("%q must be at least 1.0", a.ID))
		}
		c.activities[a.ID] = a
	}

	for _, e := range exercises {
		if e.ID == "" {
			return nil, invalid("exercise.id", "must not be empty")
		}
		if _, dup := c.exercises[e.ID]; dup {
			return nil, invalid("exercise.id", fmt.Sprintf("duplicate %q", e.ID))
		}
		e.PrimaryMuscles = append([]string(nil), e.PrimaryMuscles...)
		e.SecondaryMuscles = append([]string(nil), e.SecondaryMuscles...)
		c.exercises[e.ID] = e
	}
	return c, nil
}

// Activity looks up an activity by identifier.
func (c *Catalog) Activity(id string) (ActivityDefinition, error) {
	a, ok := c.activities[id]
	if !ok {
		return ActivityDefinition{}, &NotFoundError{Kind: "activity", ID: id}
	}
	return a, nil
}

// Exercise looks up a strength exercise by identifier.
func (c *Catalog) Exercise(id string) (StrengthExerciseDefinition, error) {
	e, ok := c.exercises[id]
	if !ok {
		return StrengthExerciseDefinition{}, &NotFoundError{Kind: "exercise", ID: id}
	}
	return e, nil
}

// Activities returns every activity ordered by ID. Callers get copies of the
// MET maps, so the catalog stays immutable.
func (c *Catalog) Activities() []ActivityDefinition {
	out := make([]ActivityDefinition, 0, len(c.activities))
	for _, a := range c.activities {
		mets := make(map[Intensity]float64, len(a.METs))
		for k, v := range a.METs {
			mets[k] = v
		}
		a.METs = mets
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Exercises returns every strength exercise ordered by ID.
func (c *Catalog) Exercises() []StrengthExerciseDefinition {
	out := make([]StrengthExerciseDefinition, 0, len(c.exercises))
	for _, e := range c.exercises {
		e.PrimaryMuscles = append([]string(nil), e.PrimaryMuscles...)
		e.SecondaryMuscles = append([]string(nil), e.SecondaryMuscles...)
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// ExerciseFilter narrows the exercise list. Empty fields match everything;
// values within one field are alternatives. Matching ignores case, and
// spaces, hyphens and underscores are interchangeable ("Body Only" matches
// "body_only").
type ExerciseFilter struct {
	Equipment []string
	Levels    []string
	Muscle    string
}

// Match reports whether e passes every non-empty field of f. Muscle is
// checked against primary muscles only.
func (f ExerciseFilter) Match(e StrengthExerciseDefinition) bool {
	if !matchAny(f.Equipment, e.Equipment) {
		return false
	}
	if !matchAny(f.Levels, string(e.Level)) {
		return false
	}
	if m := normalize(f.Muscle); m != "" {
		for _, pm := range e.PrimaryMuscles {
			if normalize(pm) == m {
				return true
			}
		}
		return false
	}
	return true
}

func matchAny(wanted []string, value string) bool {
	filtered := false
	v := normalize(value)
	for _, w := range wanted {
		w = normalize(w)
		if w == "" {
			continue
		}
		filtered = true
		if w == v {
			return true
		}
	}
	return !filtered
}

// FilterExercises returns the exercises matching f, ordered by ID.
func (c *Catalog) FilterExercises(f ExerciseFilter) []StrengthExerciseDefinition {
	all := c.Exercises()
	out := all[:0]
	for _, e := range all {
		if f.Match(e) {
			out = append(out, e)
		}
	}
	return out
}
