package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lg/gym-buddy-go-api/energy"
)

// setupPlannerTest creates a Gin engine with a mock chat completions server and
// returns the router and a function to set the mock response. No DB needed:
// requests carry an inline profile.
func setupPlannerTest(t *testing.T) (*gin.Engine, func(int, any), func() []chatRequest) {
	t.Helper()
	var mockStatus int
	var mockBody any
	var mu sync.Mutex
	var seen []chatRequest

	mock := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err == nil {
			mu.Lock()
			seen = append(seen, req)
			mu.Unlock()
		}
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(mockStatus)
		json.NewEncoder(w).Encode(mockBody)
	}))
	t.Cleanup(mock.Close)

	gin.SetMode(gin.TestMode)
	h := &Handler{
		calc:    energy.NewCalculator(energy.DefaultCatalog()),
		planner: plannerConfig{BaseURL: mock.URL, APIKey: "test-key", Model: "test-model"},
	}
	router := gin.New()
	router.POST("/api/plans/weekly", func(c *gin.Context) {
		c.Set("user_id", 1)
		c.Next()
	}, h.generateWeeklyPlan)

	setMock := func(status int, body any) {
		mockStatus = status
		mockBody = body
	}
	requests := func() []chatRequest {
		mu.Lock()
		defer mu.Unlock()
		return append([]chatRequest(nil), seen...)
	}
	return router, setMock, requests
}

func doPlanRequest(router *gin.Engine, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/plans/weekly", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// chatResponse wraps content in the chat completions response shape.
func chatResponse(content string) map[string]any {
	return map[string]any{
		"choices": []map[string]any{
			{"message": map[string]any{"content": content}},
		},
	}
}

const inlineProfile = `"profile":{"age":30,"gender":"male","weight_kg":70,"fitness_level":"intermediate"}`

var testProfile = energy.Profile{Age: 30, Gender: energy.Male, WeightKG: 70, FitnessLevel: energy.Intermediate}

func decodePlan(t *testing.T, w *httptest.ResponseRecorder) weeklyPlanResponse {
	t.Helper()
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp weeklyPlanResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestWeeklyPlan_PricesActivities(t *testing.T) {
	router, setMock, seen := setupPlannerTest(t)
	setMock(http.StatusOK, chatResponse(`{"notes":"build base","days":[
		{"day":"Monday","focus":"cardio","activities":[
			{"activity_id":"running","intensity":"moderate","duration_min":30,"notes":"easy pace"}]},
		{"day":"wednesday","focus":"cardio","activities":[
			{"activity_id":"cycling","intensity":"Vigorous","duration_min":45}]}
	]}`))

	resp := decodePlan(t, doPlanRequest(router, `{"days_per_week":2,"focus":"endurance",`+inlineProfile+`}`))
	require.Len(t, resp.Days, 2)
	assert.Empty(t, resp.Skipped)
	assert.Equal(t, "build base", resp.Notes)
	assert.Equal(t, "monday", resp.Days[0].Day)
	assert.Equal(t, "vigorous", resp.Days[1].Activities[0].Intensity)
	assert.Equal(t, resp.Days[0].Calories+resp.Days[1].Calories, resp.WeeklyCalories)
	assert.Nil(t, resp.NutritionPlan, "inline profiles carry no plan")

	// Same session priced directly must match.
	est, err := energy.NewCalculator(energy.DefaultCatalog()).EstimateActivity(testProfile,
		energy.ActivitySession{ActivityID: "running", Intensity: energy.IntensityModerate, DurationMin: 30})
	require.NoError(t, err)
	assert.Equal(t, est.TotalCalories, resp.Days[0].Activities[0].Calories)

	require.Len(t, seen(), 1)
	sent := seen()[0]
	assert.Equal(t, "test-model", sent.Model)
	assert.Contains(t, sent.Messages[0].Content, "running")
	assert.Contains(t, sent.Messages[0].Content, "- barbell_back_squat: barbell, intermediate, quadriceps")
	assert.Contains(t, sent.Messages[1].Content, "Plan 2 training days")
	assert.Contains(t, sent.Messages[1].Content, "endurance")
}

func TestWeeklyPlan_StrengthAndRestDays(t *testing.T) {
	router, setMock, _ := setupPlannerTest(t)
	setMock(http.StatusOK, chatResponse(`{"days":[
		{"day":"monday","focus":"legs","activities":[],"exercises":[
			{"exercise_id":"barbell_back_squat","sets":3,"reps":"10-12","load_kg":20,"rest_seconds":60},
			{"exercise_id":"push_up","sets":3,"reps":15,"rest_seconds":60}]},
		{"day":"tuesday","focus":"rest","activities":[],"exercises":[]}
	]}`))

	resp := decodePlan(t, doPlanRequest(router, `{`+inlineProfile+`}`))
	require.Len(t, resp.Days, 2)
	assert.Empty(t, resp.Skipped)

	legs := resp.Days[0]
	assert.False(t, legs.Rest)
	require.Len(t, legs.Exercises, 2)
	squat := legs.Exercises[0]
	assert.Equal(t, repCount(10), squat.Reps, "a rep range keeps its low end")
	assert.Equal(t, 67, squat.Calories)
	assert.Equal(t, 4.0, squat.DurationMin)
	assert.Equal(t, "moderate", squat.Intensity)

	pushUp := legs.Exercises[1]
	assert.Equal(t, 70.0, pushUp.LoadKG, "body only exercises are priced at body weight")
	est, err := energy.NewCalculator(energy.DefaultCatalog()).EstimateStrength(testProfile, energy.StrengthSession{
		ExerciseID: "push_up", Sets: 3, Reps: 15, LoadKG: 70, RestSeconds: 60,
	})
	require.NoError(t, err)
	assert.Equal(t, est.TotalCalories, pushUp.Calories)
	assert.Equal(t, squat.Calories+pushUp.Calories, legs.Calories)

	rest := resp.Days[1]
	assert.True(t, rest.Rest)
	assert.Zero(t, rest.Calories)
	assert.Empty(t, rest.Exercises)
	assert.Equal(t, legs.Calories, resp.WeeklyCalories)
}

func TestWeeklyPlan_SkipsUnpriceableEntries(t *testing.T) {
	router, setMock, _ := setupPlannerTest(t)
	setMock(http.StatusOK, chatResponse(`{"days":[
		{"day":"monday","activities":[
			{"activity_id":"quidditch","intensity":"moderate","duration_min":60},
			{"activity_id":"walking","intensity":"light","duration_min":0}]},
		{"day":"friday","activities":[{"activity_id":"walking","intensity":"light","duration_min":40}],
		 "exercises":[{"exercise_id":"biceps_curl","sets":3,"reps":12}]}
	]}`))

	resp := decodePlan(t, doPlanRequest(router, `{`+inlineProfile+`}`))
	require.Len(t, resp.Days, 2)
	assert.Empty(t, resp.Days[0].Activities)
	assert.False(t, resp.Days[0].Rest, "a day whose entries were all skipped is not a rest day")
	require.Len(t, resp.Days[1].Activities, 1)
	assert.Empty(t, resp.Days[1].Exercises, "dumbbell curl without a load cannot be priced")
	require.Len(t, resp.Skipped, 3)
	assert.Contains(t, resp.Skipped[0], "quidditch")
	assert.Contains(t, resp.Skipped[2], "load_kg")
}

func TestWeeklyPlan_EquipmentFilter(t *testing.T) {
	router, setMock, seen := setupPlannerTest(t)
	setMock(http.StatusOK, chatResponse(`{"days":[
		{"day":"monday","focus":"full body","exercises":[
			{"exercise_id":"barbell_back_squat","sets":3,"reps":10,"load_kg":60},
			{"exercise_id":"pull_up","sets":3,"reps":8}]}
	]}`))

	resp := decodePlan(t, doPlanRequest(router, `{"equipment":["Body Only"],"level":["beginner"],`+inlineProfile+`}`))
	require.Len(t, resp.Days[0].Exercises, 1)
	assert.Equal(t, "pull_up", resp.Days[0].Exercises[0].ExerciseID)
	require.Len(t, resp.Skipped, 1)
	assert.Contains(t, resp.Skipped[0], "barbell_back_squat: not in the offered exercises")

	prompt := seen()[0].Messages[0].Content
	assert.Contains(t, prompt, "- push_up: body only")
	assert.NotContains(t, prompt, "- barbell_back_squat:")
	assert.Contains(t, seen()[0].Messages[1].Content, "Available equipment: Body Only.")
}

func TestWeeklyPlan_FilterMatchesNothing(t *testing.T) {
	router, _, seen := setupPlannerTest(t)

	w := doPlanRequest(router, `{"equipment":["machine"],"level":["expert"],`+inlineProfile+`}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, seen(), "no upstream call without exercises to offer")
}

func TestWeeklyPlan_DropsDaysPastAWeek(t *testing.T) {
	router, setMock, _ := setupPlannerTest(t)
	day := `{"day":"monday","focus":"rest"}`
	setMock(http.StatusOK, chatResponse(`{"days":[`+strings.Repeat(day+",", 8)+day+`]}`))

	resp := decodePlan(t, doPlanRequest(router, `{`+inlineProfile+`}`))
	assert.Len(t, resp.Days, daysInPlan)
	require.Len(t, resp.Skipped, 1)
	assert.Contains(t, resp.Skipped[0], "2 extra days")
}

func TestWeeklyPlan_InvalidProfile(t *testing.T) {
	router, setMock, _ := setupPlannerTest(t)
	setMock(http.StatusOK, chatResponse(`{"days":[
		{"day":"monday","activities":[{"activity_id":"running","intensity":"moderate","duration_min":30}]}
	]}`))

	w := doPlanRequest(router, `{"profile":{"age":30,"gender":"male","weight_kg":0}}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "weight_kg")
}

func TestWeeklyPlan_UpstreamError(t *testing.T) {
	router, setMock, _ := setupPlannerTest(t)
	setMock(http.StatusInternalServerError, map[string]string{"error": "server error"})

	w := doPlanRequest(router, `{`+inlineProfile+`}`)
	assert.Equal(t, http.StatusBadGateway, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "planner request failed", resp["error"])
}

func TestWeeklyPlan_MalformedContent(t *testing.T) {
	router, setMock, _ := setupPlannerTest(t)
	setMock(http.StatusOK, chatResponse(`not valid json at all`))

	w := doPlanRequest(router, `{`+inlineProfile+`}`)
	assert.Equal(t, http.StatusBadGateway, w.Code)

	setMock(http.StatusOK, chatResponse(`{"days":[{"day":"monday","exercises":[{"exercise_id":"push_up","sets":3,"reps":"lots"}]}]}`))
	w = doPlanRequest(router, `{`+inlineProfile+`}`)
	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestWeeklyPlan_RequiresProfileWithoutDB(t *testing.T) {
	router, _, seen := setupPlannerTest(t)

	w := doPlanRequest(router, `{"days_per_week":3}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, seen(), "no upstream call without a profile")
}

func TestCallPlanner_NoAPIKey(t *testing.T) {
	_, err := callPlanner(context.Background(), plannerConfig{BaseURL: "http://unused"}, nil)
	assert.ErrorIs(t, err, errPlannerNotConfigured)
}

func TestPlannerUserPrompt_ClampsDays(t *testing.T) {
	assert.Contains(t, plannerUserPrompt(weeklyPlanRequest{DaysPerWeek: 12}), "Plan 3 training days")
	assert.Contains(t, plannerUserPrompt(weeklyPlanRequest{DaysPerWeek: 5, Notes: "bad knee"}), "Notes: bad knee")
}

func TestBuildPlannerPrompt_ProfileFields(t *testing.T) {
	catalog := energy.DefaultCatalog()
	in := profileInput{
		Age: 30, Gender: "M", HeightCM: 170, WeightKG: 70, FitnessLevel: "Advanced",
		TargetWeightKG: 65, WeeklyChangeKG: -0.5, Goal: "Reduce body fat",
	}
	plan := &energy.NutritionPlan{TargetCalories: 1634, TDEE: 2184}

	prompt := buildPlannerPrompt(in.toEnergy(), in.Goal, plan, catalog.Activities(), catalog.Exercises())
	for _, want := range []string{
		"- Sex: male",
		"- Height: 170 cm",
		"- Current weight: 70.0 kg",
		"- Target weight: 65.0 kg",
		"- Weekly goal: -0.50 kg/week",
		"- Goal: Reduce body fat",
		"- Fitness level: advanced",
		"- Daily calorie target: 1634 kcal (TDEE 2184)",
	} {
		assert.Contains(t, prompt, want)
	}

	bare := buildPlannerPrompt(testProfile, "", nil, catalog.Activities(), catalog.Exercises())
	assert.Contains(t, bare, "- Height: not set")
	assert.Contains(t, bare, "- Goal: not set")
	assert.NotContains(t, bare, "Daily calorie target")
}

func TestRepCount_Unmarshal(t *testing.T) {
	cases := map[string]repCount{
		`12`:        12,
		`"8-12"`:    8,
		`" 15 "`:    15,
		`"10 - 12"`: 10,
	}
	for in, want := range cases {
		var r repCount
		require.NoError(t, json.Unmarshal([]byte(in), &r), in)
		assert.Equal(t, want, r, in)
	}

	var r repCount
	assert.Error(t, json.Unmarshal([]byte(`"to failure"`), &r))
	assert.Error(t, json.Unmarshal([]byte(`true`), &r))
}
