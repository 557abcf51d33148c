package main

import (
	"encoding/json"
	"time"

	"github.com/jackc/pgx/v5/pgtype"

	"lg/gym-buddy-go-api/energy"
)

// DateOnly wraps time.Time to serialize as "YYYY-MM-DD" in JSON.
type DateOnly struct{ time.Time }

func (d DateOnly) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Time.Format("2006-01-02") + `"`), nil
}

func (d *DateOnly) UnmarshalJSON(b []byte) error {
	t, err := time.Parse(`"2006-01-02"`, string(b))
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

// ScanDate implements pgtype.DateScanner so pgx can scan PostgreSQL date
// columns into DateOnly. NULL zeroes the time so *DateOnly fields can be nil.
func (d *DateOnly) ScanDate(v pgtype.Date) error {
	if !v.Valid {
		d.Time = time.Time{}
		return nil
	}
	d.Time = v.Time
	return nil
}

/* ─── Domain structs ─────────────────────────────────────────────────── */

// user maps to the users table. AuthToken and Password are hidden from JSON responses.
type user struct {
	ID        int        `json:"id" db:"id"`
	Username  string     `json:"username" db:"username"`
	Email     string     `json:"email" db:"email"`
	AuthToken string     `json:"-" db:"auth_token"`
	Password  string     `json:"-" db:"password"`
	CreatedAt *time.Time `json:"created_at" db:"created_at"`
}

// userProfile maps to user_profiles. Body metrics are nullable until the user
// finishes onboarding; the derived block below is filled by populateDerived.
type userProfile struct {
	UserID           int        `json:"user_id"            db:"user_id"`
	Sex              *string    `json:"sex"                db:"sex"`
	DateOfBirth      *DateOnly  `json:"date_of_birth"      db:"date_of_birth"`
	HeightCM         *float64   `json:"height_cm"          db:"height_cm"`
	WeightKG         *float64   `json:"weight_kg"          db:"weight_kg"`
	TargetWeightKG   *float64   `json:"target_weight_kg"   db:"target_weight_kg"`
	WeeklyChangeKG   float64    `json:"weekly_change_kg"   db:"weekly_change_kg"`
	Goal             *string    `json:"goal"               db:"goal"`
	ActivityLevel    string     `json:"activity_level"     db:"activity_level"`
	FitnessLevel     string     `json:"fitness_level"      db:"fitness_level"`
	FitnessUpdatedAt *time.Time `json:"fitness_updated_at" db:"fitness_updated_at"`
	PlanAuto         bool       `json:"plan_auto"          db:"plan_auto"`
	CalorieBudget    int        `json:"calorie_budget"     db:"calorie_budget"`
	ProteinTargetG   int        `json:"protein_target_g"   db:"protein_target_g"`
	CarbsTargetG     int        `json:"carbs_target_g"     db:"carbs_target_g"`
	FatTargetG       int        `json:"fat_target_g"       db:"fat_target_g"`
	BMR              *int       `json:"bmr"                db:"bmr"`
	TDEE             *int       `json:"tdee"               db:"tdee"`
	SetupComplete    bool       `json:"setup_complete"     db:"setup_complete"`
	UpdatedAt        time.Time  `json:"updated_at"         db:"updated_at"`

	// Derived on read, never stored. db:"-" keeps RowToStructByName from
	// looking for matching columns.
	Age           *int                  `json:"age,omitempty"             db:"-"`
	BMI           *float64              `json:"bmi,omitempty"             db:"-"`
	BMICategory   *string               `json:"bmi_category,omitempty"    db:"-"`
	WeeksToTarget *int                  `json:"weeks_to_target,omitempty" db:"-"`
	TargetDate    *DateOnly             `json:"target_date,omitempty"     db:"-"`
	Plan          *energy.NutritionPlan `json:"nutrition_plan,omitempty"  db:"-"`
}

// activityLogEntry maps to activity_log_entries. Breakdown is kept as raw
// JSON so the stored explanation round-trips untouched.
type activityLogEntry struct {
	ID          string          `json:"id"           db:"id"`
	UserID      int             `json:"user_id"      db:"user_id"`
	Date        DateOnly        `json:"date"         db:"date"`
	Kind        string          `json:"kind"         db:"kind"`
	ActivityID  string          `json:"activity_id"  db:"activity_id"`
	Intensity   string          `json:"intensity"    db:"intensity"`
	DurationMin float64         `json:"duration_min" db:"duration_min"`
	Sets        *int            `json:"sets"         db:"sets"`
	Reps        *int            `json:"reps"         db:"reps"`
	LoadKG      *float64        `json:"load_kg"      db:"load_kg"`
	RestSeconds *float64        `json:"rest_seconds" db:"rest_seconds"`
	HeartRate   *float64        `json:"heart_rate"   db:"heart_rate"`
	Environment *string         `json:"environment"  db:"environment"`
	Calories    int             `json:"calories"     db:"calories"`
	Breakdown   json.RawMessage `json:"breakdown"    db:"breakdown"`
	CreatedAt   time.Time       `json:"created_at"   db:"created_at"`
}

// weightEntry maps to weight_log.
type weightEntry struct {
	ID        int        `json:"id"         db:"id"`
	UserID    int        `json:"user_id"    db:"user_id"`
	Date      DateOnly   `json:"date"       db:"date"`
	WeightKG  float64    `json:"weight_kg"  db:"weight_kg"`
	CreatedAt *time.Time `json:"created_at" db:"created_at"`
}

// calorieLogItem maps to calorie_log_items. Nullable numeric fields use pointers
// so pgx can scan NULLs and JSON omits them naturally.
type calorieLogItem struct {
	ID        int        `json:"id" db:"id"`
	UserID    int        `json:"user_id" db:"user_id"`
	Date      DateOnly   `json:"date" db:"date"`
	ItemName  string     `json:"item_name" db:"item_name"`
	Type      string     `json:"type" db:"type"`
	Qty       *float64   `json:"qty" db:"qty"`
	Uom       *string    `json:"uom" db:"uom"`
	Calories  int        `json:"calories" db:"calories"`
	ProteinG  *float64   `json:"protein_g" db:"protein_g"`
	CarbsG    *float64   `json:"carbs_g" db:"carbs_g"`
	FatG      *float64   `json:"fat_g" db:"fat_g"`
	CreatedAt *time.Time `json:"created_at" db:"created_at"`
	UpdatedAt *time.Time `json:"updated_at" db:"updated_at"`
}

/* ─── Summaries ──────────────────────────────────────────────────────── */

// weekDayDBRow is one row of the week-summary GROUP BY query.
type weekDayDBRow struct {
	Date             DateOnly `db:"date"`
	CaloriesFood     int      `db:"calories_food"`
	CaloriesExercise int      `db:"calories_exercise"`
	ProteinG         float64  `db:"protein_g"`
	CarbsG           float64  `db:"carbs_g"`
	FatG             float64  `db:"fat_g"`
}

// activityDayDBRow is the per-date calorie total from activity_log_entries.
type activityDayDBRow struct {
	Date     DateOnly `db:"date"`
	Calories int      `db:"calories"`
}

// weekDaySummary is one day's entry in the week-summary response.
// Days with nothing logged have HasData=false.
type weekDaySummary struct {
	Date             DateOnly `json:"date"`
	CalorieBudget    int      `json:"calorie_budget"`
	CaloriesFood     int      `json:"calories_food"`
	CaloriesExercise int      `json:"calories_exercise"`
	NetCalories      int      `json:"net_calories"`
	CaloriesLeft     int      `json:"calories_left"`
	ProteinG         float64  `json:"protein_g"`
	CarbsG           float64  `json:"carbs_g"`
	FatG             float64  `json:"fat_g"`
	HasData          bool     `json:"has_data"`
}

// dailySummary is the response shape for GET /calorie-log/daily.
// CaloriesExercise covers both manual exercise items and estimated sessions.
type dailySummary struct {
	Date             string             `json:"date"`
	CalorieBudget    int                `json:"calorie_budget"`
	CaloriesFood     int                `json:"calories_food"`
	CaloriesExercise int                `json:"calories_exercise"`
	NetCalories      int                `json:"net_calories"`
	CaloriesLeft     int                `json:"calories_left"`
	ProteinG         float64            `json:"protein_g"`
	CarbsG           float64            `json:"carbs_g"`
	FatG             float64            `json:"fat_g"`
	Items            []calorieLogItem   `json:"items"`
	Activities       []activityLogEntry `json:"activities"`
	Profile          userProfile        `json:"profile"`
}

// progressStats aggregates the days returned by GET /calorie-log/progress.
type progressStats struct {
	DaysTracked         int `json:"days_tracked"`
	DaysOnBudget        int `json:"days_on_budget"`
	AvgCaloriesFood     int `json:"avg_calories_food"`
	AvgCaloriesExercise int `json:"avg_calories_exercise"`
	AvgNetCalories      int `json:"avg_net_calories"`
	TotalCaloriesLeft   int `json:"total_calories_left"`
}

type progressResponse struct {
	Days  []weekDaySummary `json:"days"`
	Stats progressStats    `json:"stats"`
}

/* ─── Request bodies ─────────────────────────────────────────────────── */

// createCalorieLogItemRequest is the request body for POST /api/calorie-log/items.
type createCalorieLogItemRequest struct {
	Date     string   `json:"date"`
	ItemName string   `json:"item_name"`
	Type     string   `json:"type"`
	Qty      *float64 `json:"qty"`
	Uom      *string  `json:"uom"`
	Calories int      `json:"calories"`
	ProteinG *float64 `json:"protein_g"`
	CarbsG   *float64 `json:"carbs_g"`
	FatG     *float64 `json:"fat_g"`
}

// profileInput is an inline profile for the estimate preview endpoints, so a
// caller can price a session for someone other than the stored profile.
// The goal fields only feed the weekly planner prompt.
type profileInput struct {
	Age            int     `json:"age"`
	Gender         string  `json:"gender"`
	HeightCM       float64 `json:"height_cm"`
	WeightKG       float64 `json:"weight_kg"`
	FitnessLevel   string  `json:"fitness_level"`
	TargetWeightKG float64 `json:"target_weight_kg"`
	WeeklyChangeKG float64 `json:"weekly_change_kg"`
	Goal           string  `json:"goal"`
}

// activitySessionRequest is the body for the aerobic estimate and log routes.
type activitySessionRequest struct {
	Date        string        `json:"date"`
	ActivityID  string        `json:"activity_id"`
	Intensity   string        `json:"intensity"`
	DurationMin float64       `json:"duration_min"`
	HeartRate   *float64      `json:"heart_rate"`
	Environment string        `json:"environment"`
	Profile     *profileInput `json:"profile"`
}

// strengthSessionRequest is the body for the strength estimate and log routes.
type strengthSessionRequest struct {
	Date        string        `json:"date"`
	ExerciseID  string        `json:"exercise_id"`
	Sets        int           `json:"sets"`
	Reps        int           `json:"reps"`
	LoadKG      float64       `json:"load_kg"`
	RestSeconds float64       `json:"rest_seconds"`
	Intensity   string        `json:"intensity"`
	Profile     *profileInput `json:"profile"`
}

// patchProfileRequest is the request body for PATCH /api/profile.
// All fields are pointers; only non-nil fields get written.
type patchProfileRequest struct {
	CalorieBudget  *int     `json:"calorie_budget"`
	ProteinTargetG *int     `json:"protein_target_g"`
	CarbsTargetG   *int     `json:"carbs_target_g"`
	FatTargetG     *int     `json:"fat_target_g"`
	Sex            *string  `json:"sex"`
	DateOfBirth    *string  `json:"date_of_birth"` // YYYY-MM-DD
	HeightCM       *float64 `json:"height_cm"`
	WeightKG       *float64 `json:"weight_kg"`
	TargetWeightKG *float64 `json:"target_weight_kg"`
	WeeklyChangeKG *float64 `json:"weekly_change_kg"`
	Goal           *string  `json:"goal"`
	ActivityLevel  *string  `json:"activity_level"`
	FitnessLevel   *string  `json:"fitness_level"`
	PlanAuto       *bool    `json:"plan_auto"`
	SetupComplete  *bool    `json:"setup_complete"`
}
