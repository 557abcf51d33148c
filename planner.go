package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"lg/gym-buddy-go-api/energy"
)

/* ─── Request / Response types ───────────────────────────────────────── */

// weeklyPlanRequest is the body for POST /api/plans/weekly. Equipment and
// Level narrow the exercises offered to the planner.
type weeklyPlanRequest struct {
	DaysPerWeek int           `json:"days_per_week"`
	Focus       string        `json:"focus"`
	Notes       string        `json:"notes"`
	Equipment   []string      `json:"equipment"`
	Level       []string      `json:"level"`
	Profile     *profileInput `json:"profile"`
}

// plannedSession is one aerobic session of a planned day.
type plannedSession struct {
	ActivityID  string  `json:"activity_id"`
	Intensity   string  `json:"intensity"`
	DurationMin float64 `json:"duration_min"`
	Notes       string  `json:"notes,omitempty"`
	Calories    int     `json:"calories"`
}

// plannedExercise is one strength exercise of a planned day. A missing load on
// a body-only exercise is priced at the user's body weight.
type plannedExercise struct {
	ExerciseID  string   `json:"exercise_id"`
	Sets        int      `json:"sets"`
	Reps        repCount `json:"reps"`
	LoadKG      float64  `json:"load_kg"`
	RestSeconds float64  `json:"rest_seconds"`
	Intensity   string   `json:"intensity"`
	DurationMin float64  `json:"duration_min"`
	Calories    int      `json:"calories"`
}

// plannedDay is one weekday. Rest is true when the planner listed nothing
// for the day.
type plannedDay struct {
	Day        string            `json:"day"`
	Focus      string            `json:"focus"`
	Rest       bool              `json:"rest"`
	Activities []plannedSession  `json:"activities"`
	Exercises  []plannedExercise `json:"exercises"`
	Calories   int               `json:"calories"`
}

// weeklyPlanResponse is returned to the client. Entries naming something
// outside the offered catalog, or otherwise unpriceable, are listed in Skipped.
type weeklyPlanResponse struct {
	Days           []plannedDay          `json:"days"`
	WeeklyCalories int                   `json:"weekly_calories"`
	Skipped        []string              `json:"skipped,omitempty"`
	Notes          string                `json:"notes,omitempty"`
	NutritionPlan  *energy.NutritionPlan `json:"nutrition_plan,omitempty"`
}

// repCount accepts a number or a range such as "8-12", keeping the low end.
type repCount int

func (r *repCount) UnmarshalJSON(b []byte) error {
	var n int
	if err := json.Unmarshal(b, &n); err == nil {
		*r = repCount(n)
		return nil
	}
	var text string
	if err := json.Unmarshal(b, &text); err != nil {
		return fmt.Errorf("reps: %w", err)
	}
	low, _, _ := strings.Cut(strings.TrimSpace(text), "-")
	n, err := strconv.Atoi(strings.TrimSpace(low))
	if err != nil {
		return fmt.Errorf("reps: %q is not a count or range", text)
	}
	*r = repCount(n)
	return nil
}

// plannerConfig locates the OpenAI-compatible chat completions endpoint.
type plannerConfig struct {
	BaseURL string
	APIKey  string
	Model   string
	Timeout time.Duration
}

const daysInPlan = 7

/* ─── Prompt ─────────────────────────────────────────────────────────── */

const plannerSystemPrompt = `You are a personal trainer writing a 7-day training plan, Monday to Sunday. The user is:
- Sex: %s
- Age: %d years
- Height: %s
- Current weight: %.1f kg
- Target weight: %s
- Weekly goal: %s
- Goal: %s
- Fitness level: %s
%s
Aerobic activities (activity_id): %s.

Strength exercises (exercise_id: equipment, level, primary muscles):
%s
Use only the ids above. Intensity must be one of: light, moderate, vigorous.

Return a JSON object with a "notes" string and a "days" array of exactly 7 elements, one per weekday. Each day has:
- "day" (string, lowercase weekday)
- "focus" (string, e.g. "legs", "upper body", "cardio", "rest")
- "activities" (array of {"activity_id", "intensity", "duration_min", "notes"})
- "exercises" (array of {"exercise_id", "sets", "reps", "load_kg", "rest_seconds", "intensity"}; omit load_kg for body only exercises)
Rest days have focus "rest" and empty "activities" and "exercises".

Return only valid JSON, no explanation.`

// buildPlannerPrompt renders the system prompt for p. Nutrition targets are
// included when the stored profile can be planned.
func buildPlannerPrompt(p energy.Profile, goal string, plan *energy.NutritionPlan,
	activities []energy.ActivityDefinition, exercises []energy.StrengthExerciseDefinition) string {
	ids := make([]string, 0, len(activities))
	for _, a := range activities {
		ids = append(ids, a.ID)
	}
	var lines strings.Builder
	for _, e := range exercises {
		fmt.Fprintf(&lines, "- %s: %s, %s, %s\n", e.ID, orNotSet(e.Equipment), e.Level, strings.Join(e.PrimaryMuscles, ", "))
	}
	targets := ""
	if plan != nil {
		targets = fmt.Sprintf("- Daily calorie target: %d kcal (TDEE %d)\n", plan.TargetCalories, plan.TDEE)
	}
	level := p.FitnessLevel
	if level == "" {
		level = energy.Intermediate
	}

	height, target, weekly := "not set", "not set", "not set"
	if p.HeightCM > 0 {
		height = fmt.Sprintf("%.0f cm", p.HeightCM)
	}
	if p.TargetWeightKG > 0 {
		target = fmt.Sprintf("%.1f kg", p.TargetWeightKG)
	}
	if p.WeeklyChangeKG != 0 {
		weekly = fmt.Sprintf("%+.2f kg/week", p.WeeklyChangeKG)
	}

	return fmt.Sprintf(plannerSystemPrompt, p.Gender, p.Age, height, p.WeightKG, target, weekly,
		orNotSet(strings.TrimSpace(goal)), level, targets, strings.Join(ids, ", "), lines.String())
}

func orNotSet(s string) string {
	if s == "" {
		return "not set"
	}
	return s
}

func plannerUserPrompt(req weeklyPlanRequest) string {
	days := req.DaysPerWeek
	if days <= 0 || days > daysInPlan {
		days = 3
	}
	msg := fmt.Sprintf("Plan %d training days this week; the other days are rest days.", days)
	if f := strings.TrimSpace(req.Focus); f != "" {
		msg += " Focus: " + f + "."
	}
	if len(req.Equipment) > 0 {
		msg += " Available equipment: " + strings.Join(req.Equipment, ", ") + "."
	}
	if n := strings.TrimSpace(req.Notes); n != "" {
		msg += " Notes: " + n
	}
	return msg
}

/* ─── Chat completions client ────────────────────────────────────────── */

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model          string            `json:"model"`
	Messages       []chatMessage     `json:"messages"`
	Temperature    float64           `json:"temperature"`
	ResponseFormat map[string]string `json:"response_format"`
}

var errPlannerNotConfigured = errors.New("planner api key not set")

// callPlanner sends a chat completions request and returns the content of
// the first choice.
func callPlanner(ctx context.Context, cfg plannerConfig, messages []chatMessage) (string, error) {
	if cfg.APIKey == "" {
		return "", errPlannerNotConfigured
	}
	model := cfg.Model
	if model == "" {
		model = "gpt-4o-mini"
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 20 * time.Second
	}

	bodyBytes, err := json.Marshal(chatRequest{
		Model:          model,
		Messages:       messages,
		Temperature:    0.2,
		ResponseFormat: map[string]string{"type": "json_object"},
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		strings.TrimRight(cfg.BaseURL, "/")+"/v1/chat/completions", bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+cfg.APIKey)

	client := &http.Client{Timeout: timeout}
	resp, err := client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("planner returned status %d: %s", resp.StatusCode, string(respBytes))
	}

	var result struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(respBytes, &result); err != nil {
		return "", fmt.Errorf("unmarshal response: %w", err)
	}
	if len(result.Choices) == 0 {
		return "", fmt.Errorf("no choices in response")
	}
	return result.Choices[0].Message.Content, nil
}

/* ─── Handler ────────────────────────────────────────────────────────── */

// rawPlan is the planner's reply before validation.
type rawPlan struct {
	Days []struct {
		Day        string            `json:"day"`
		Focus      string            `json:"focus"`
		Activities []plannedSession  `json:"activities"`
		Exercises  []plannedExercise `json:"exercises"`
	} `json:"days"`
	Notes string `json:"notes"`
}

// generateWeeklyPlan asks the remote planner for a week of training and prices
// every activity and exercise with the calculator. The remote output is
// untrusted: entries are only kept if the calculator accepts them.
// POST /api/plans/weekly.
func (h *Handler) generateWeeklyPlan(c *gin.Context) {
	var req weeklyPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	var nutrition *energy.NutritionPlan
	var profile energy.Profile
	var goal string
	if req.Profile == nil && h.db != nil {
		stored, err := h.loadProfile(c)
		if err != nil {
			profileError(c, err)
			return
		}
		profile = energyProfile(&stored, h.clock())
		if stored.Goal != nil {
			goal = *stored.Goal
		}
		if plan, err := energy.Plan(planInput(&stored, h.clock())); err == nil {
			nutrition = &plan
		}
	} else if req.Profile != nil {
		profile = req.Profile.toEnergy()
		goal = req.Profile.Goal
	} else {
		apiError(c, http.StatusBadRequest, "profile is required")
		return
	}

	catalog := h.calc.Catalog()
	filter := energy.ExerciseFilter{Equipment: req.Equipment, Levels: req.Level}
	exercises := catalog.FilterExercises(filter)
	if len(exercises) == 0 {
		apiError(c, http.StatusBadRequest, "no exercises match the equipment and level filters")
		return
	}

	messages := []chatMessage{
		{Role: "system", Content: buildPlannerPrompt(profile, goal, nutrition, catalog.Activities(), exercises)},
		{Role: "user", Content: plannerUserPrompt(req)},
	}
	content, err := callPlanner(c.Request.Context(), h.planner, messages)
	if err != nil {
		log.Printf("[generateWeeklyPlan] planner error: %v", err)
		recordPlannerOutcome("upstream_error")
		apiError(c, http.StatusBadGateway, "planner request failed")
		return
	}

	var raw rawPlan
	if err := json.Unmarshal([]byte(content), &raw); err != nil {
		log.Printf("[generateWeeklyPlan] unparseable plan: %v", err)
		recordPlannerOutcome("bad_response")
		apiError(c, http.StatusBadGateway, "planner request failed")
		return
	}

	resp, err := h.pricePlan(profile, raw, filter)
	if err != nil {
		// Profile problems surface the same way as on the estimate routes.
		recordPlannerOutcome("invalid_profile")
		engineError(c, err)
		return
	}
	resp.NutritionPlan = nutrition
	recordPlannerOutcome("ok")

	c.JSON(http.StatusOK, resp)
}

// pricePlan estimates every entry of raw against p. A profile error aborts;
// an entry-level error only skips that entry. Exercises outside filter are
// skipped too, since the planner was never offered them. Days past the
// seventh are dropped.
func (h *Handler) pricePlan(p energy.Profile, raw rawPlan, filter energy.ExerciseFilter) (weeklyPlanResponse, error) {
	resp := weeklyPlanResponse{Days: []plannedDay{}, Notes: raw.Notes}
	for i, d := range raw.Days {
		if i == daysInPlan {
			resp.Skipped = append(resp.Skipped, fmt.Sprintf("%d extra days beyond a week", len(raw.Days)-daysInPlan))
			break
		}
		day := plannedDay{
			Day:        strings.ToLower(strings.TrimSpace(d.Day)),
			Focus:      d.Focus,
			Rest:       len(d.Activities) == 0 && len(d.Exercises) == 0,
			Activities: []plannedSession{},
			Exercises:  []plannedExercise{},
		}

		for _, s := range d.Activities {
			est, err := h.calc.EstimateActivity(p, energy.ActivitySession{
				ActivityID:  s.ActivityID,
				Intensity:   energy.Intensity(s.Intensity),
				DurationMin: s.DurationMin,
			})
			if err != nil {
				if perr := asProfileError(err); perr != nil {
					return weeklyPlanResponse{}, perr
				}
				resp.Skipped = append(resp.Skipped, fmt.Sprintf("%s %s: %v", day.Day, s.ActivityID, err))
				continue
			}
			s.Intensity = string(est.Intensity)
			s.Calories = est.TotalCalories
			day.Activities = append(day.Activities, s)
			day.Calories += est.TotalCalories
		}

		for _, e := range d.Exercises {
			def, err := h.calc.Catalog().Exercise(e.ExerciseID)
			if err == nil && !filter.Match(def) {
				resp.Skipped = append(resp.Skipped, fmt.Sprintf("%s %s: not in the offered exercises", day.Day, e.ExerciseID))
				continue
			}
			if err == nil && e.LoadKG <= 0 && bodyweight(def) {
				e.LoadKG = p.WeightKG
			}
			est, err := h.calc.EstimateStrength(p, energy.StrengthSession{
				ExerciseID:  e.ExerciseID,
				Sets:        e.Sets,
				Reps:        int(e.Reps),
				LoadKG:      e.LoadKG,
				RestSeconds: e.RestSeconds,
				Intensity:   energy.Intensity(e.Intensity),
			})
			if err != nil {
				if perr := asProfileError(err); perr != nil {
					return weeklyPlanResponse{}, perr
				}
				resp.Skipped = append(resp.Skipped, fmt.Sprintf("%s %s: %v", day.Day, e.ExerciseID, err))
				continue
			}
			e.Intensity = string(est.Intensity)
			e.DurationMin = est.DurationMin
			e.Calories = est.TotalCalories
			day.Exercises = append(day.Exercises, e)
			day.Calories += est.TotalCalories
		}

		resp.Days = append(resp.Days, day)
		resp.WeeklyCalories += day.Calories
	}
	return resp, nil
}

// asProfileError returns err when it rejects the profile rather than the
// planned entry, nil otherwise.
func asProfileError(err error) error {
	var invalid *energy.InvalidArgumentError
	if errors.As(err, &invalid) && profileField(invalid.Field) {
		return err
	}
	return nil
}

func profileField(field string) bool {
	switch field {
	case "weight_kg", "age", "gender", "fitness_level":
		return true
	}
	return false
}

func bodyweight(e energy.StrengthExerciseDefinition) bool {
	return strings.EqualFold(strings.TrimSpace(e.Equipment), "body only")
}
