package main

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"lg/gym-buddy-go-api/energy"
)

func (r activitySessionRequest) session() energy.ActivitySession {
	return energy.ActivitySession{
		ActivityID:  r.ActivityID,
		Intensity:   energy.Intensity(r.Intensity),
		DurationMin: r.DurationMin,
		HeartRate:   r.HeartRate,
		Environment: energy.Environment(r.Environment),
	}
}

func (r strengthSessionRequest) session() energy.StrengthSession {
	return energy.StrengthSession{
		ExerciseID:  r.ExerciseID,
		Sets:        r.Sets,
		Reps:        r.Reps,
		LoadKG:      r.LoadKG,
		RestSeconds: r.RestSeconds,
		Intensity:   energy.Intensity(r.Intensity),
	}
}

// previewProfile resolves the profile a preview estimate is priced against:
// the inline one when the body carries it, otherwise the stored profile.
// Writes the error response and returns ok=false on failure.
func (h *Handler) previewProfile(c *gin.Context, inline *profileInput) (energy.Profile, bool) {
	if inline != nil {
		return inline.toEnergy(), true
	}
	if h.db == nil {
		apiError(c, http.StatusBadRequest, "profile is required")
		return energy.Profile{}, false
	}
	p, err := h.loadProfile(c)
	if err != nil {
		profileError(c, err)
		return energy.Profile{}, false
	}
	return energyProfile(&p, h.clock()), true
}

/* ─── Preview ────────────────────────────────────────────────────────── */

// estimateActivity prices an aerobic session without storing it.
// POST /api/activity-log/estimate.
func (h *Handler) estimateActivity(c *gin.Context) {
	var body activitySessionRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	p, ok := h.previewProfile(c, body.Profile)
	if !ok {
		return
	}
	est, err := h.calc.EstimateActivity(p, body.session())
	if err != nil {
		engineError(c, err)
		return
	}
	recordEstimate(est)
	c.JSON(http.StatusOK, est)
}

// estimateStrength prices a strength session without storing it.
// POST /api/activity-log/strength/estimate.
func (h *Handler) estimateStrength(c *gin.Context) {
	var body strengthSessionRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	p, ok := h.previewProfile(c, body.Profile)
	if !ok {
		return
	}
	est, err := h.calc.EstimateStrength(p, body.session())
	if err != nil {
		engineError(c, err)
		return
	}
	recordEstimate(est)
	c.JSON(http.StatusOK, est)
}

/* ─── Log ────────────────────────────────────────────────────────────── */

// logActivity estimates an aerobic session against the stored profile and
// appends it to the date's bucket.
// POST /api/activity-log. Date defaults to today.
func (h *Handler) logActivity(c *gin.Context) {
	var body activitySessionRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	date, err := parseDateOr(body.Date, h.clock().Format("2006-01-02"))
	if err != nil {
		apiError(c, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
		return
	}
	profile, err := h.loadProfile(c)
	if err != nil {
		profileError(c, err)
		return
	}

	est, err := h.calc.EstimateActivity(energyProfile(&profile, h.clock()), body.session())
	if err != nil {
		engineError(c, err)
		return
	}
	recordEstimate(est)

	args := pgx.NamedArgs{"heartRate": body.HeartRate}
	if env, err := energy.ParseEnvironment(body.Environment); err == nil {
		args["environment"] = string(env)
	}
	h.appendEntry(c, date, est, args)
}

// logStrength estimates a strength session against the stored profile and
// appends it to the date's bucket.
// POST /api/activity-log/strength. Date defaults to today.
func (h *Handler) logStrength(c *gin.Context) {
	var body strengthSessionRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	date, err := parseDateOr(body.Date, h.clock().Format("2006-01-02"))
	if err != nil {
		apiError(c, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
		return
	}
	profile, err := h.loadProfile(c)
	if err != nil {
		profileError(c, err)
		return
	}

	est, err := h.calc.EstimateStrength(energyProfile(&profile, h.clock()), body.session())
	if err != nil {
		engineError(c, err)
		return
	}
	recordEstimate(est)

	h.appendEntry(c, date, est, pgx.NamedArgs{
		"sets":        body.Sets,
		"reps":        body.Reps,
		"loadKG":      body.LoadKG,
		"restSeconds": body.RestSeconds,
	})
}

// appendEntry inserts est as a new activity_log_entries row. Session-specific
// columns come in through extra; anything absent is stored as NULL.
func (h *Handler) appendEntry(c *gin.Context, date string, est energy.Estimate, extra pgx.NamedArgs) {
	breakdown, err := json.Marshal(est.Breakdown)
	if err != nil {
		log.Printf("[appendEntry] marshal breakdown: %v", err)
		apiError(c, http.StatusInternalServerError, "failed to store activity")
		return
	}

	args := pgx.NamedArgs{
		"id":          uuid.NewString(),
		"userID":      c.GetInt("user_id"),
		"date":        date,
		"kind":        string(est.Kind),
		"activityID":  est.ActivityID,
		"intensity":   string(est.Intensity),
		"durationMin": est.DurationMin,
		"calories":    est.TotalCalories,
		"breakdown":   string(breakdown),
		"sets":        nil,
		"reps":        nil,
		"loadKG":      nil,
		"restSeconds": nil,
		"heartRate":   nil,
		"environment": nil,
	}
	for k, v := range extra {
		args[k] = v
	}

	entry, err := queryOne[activityLogEntry](h.db, c,
		`INSERT INTO activity_log_entries
			(id, user_id, date, kind, activity_id, intensity, duration_min,
			 sets, reps, load_kg, rest_seconds, heart_rate, environment, calories, breakdown)
		 VALUES
			(@id, @userID, @date, @kind, @activityID, @intensity, @durationMin,
			 @sets, @reps, @loadKG, @restSeconds, @heartRate, @environment, @calories, @breakdown::jsonb)
		 RETURNING *`, args)
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to store activity")
		return
	}

	c.JSON(http.StatusCreated, entry)
}

/* ─── Read / delete ──────────────────────────────────────────────────── */

// getActivityLog returns one date bucket in creation order.
// GET /api/activity-log?date=YYYY-MM-DD (defaults to today).
func (h *Handler) getActivityLog(c *gin.Context) {
	userID := c.GetInt("user_id")
	date, err := parseDateOr(c.Query("date"), h.clock().Format("2006-01-02"))
	if err != nil {
		apiError(c, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
		return
	}

	entries, err := h.activityBucket(c, userID, date)
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to fetch activity log")
		return
	}

	total := 0
	for _, e := range entries {
		total += e.Calories
	}
	c.JSON(http.StatusOK, gin.H{"date": date, "total_calories": total, "entries": entries})
}

// activityBucket loads a user's entries for one date. Never returns a nil slice.
func (h *Handler) activityBucket(c *gin.Context, userID int, date string) ([]activityLogEntry, error) {
	entries, err := queryMany[activityLogEntry](h.db, c,
		`SELECT * FROM activity_log_entries
		 WHERE user_id = @userID AND date = @date
		 ORDER BY created_at, id`,
		pgx.NamedArgs{"userID": userID, "date": date})
	if entries == nil {
		entries = []activityLogEntry{}
	}
	return entries, err
}

// deleteActivityLogEntry removes one record from a date bucket.
// DELETE /api/activity-log/:date/:id. Returns 204, or 404 when the id is not
// in that bucket for this user.
func (h *Handler) deleteActivityLogEntry(c *gin.Context) {
	userID := c.GetInt("user_id")
	date := c.Param("date")
	if _, err := time.Parse("2006-01-02", date); err != nil {
		apiError(c, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		apiError(c, http.StatusBadRequest, "invalid id")
		return
	}

	result, err := h.db.Exec(c,
		"DELETE FROM activity_log_entries WHERE id = @id AND user_id = @userID AND date = @date",
		pgx.NamedArgs{"id": id.String(), "userID": userID, "date": date})
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to delete activity")
		return
	}
	if result.RowsAffected() == 0 {
		apiError(c, http.StatusNotFound, "activity not found")
		return
	}

	c.Status(http.StatusNoContent)
}

/* ─── Classifier input ───────────────────────────────────────────────── */

// activityHistoryRow is the slice of an activity entry the classifier needs.
type activityHistoryRow struct {
	Date        DateOnly `db:"date"`
	Intensity   string   `db:"intensity"`
	DurationMin float64  `db:"duration_min"`
}

// classifierDays returns the first and last session dates inside the
// classifier window ending on now's calendar day, plus the instant to classify
// at so that every session dated on those days falls inside the window.
func classifierDays(now time.Time) (first, last string, asOf time.Time) {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	days := int(energy.ClassifierWindow / (24 * time.Hour))
	asOf = today.AddDate(0, 0, 1).Add(-time.Nanosecond)
	return today.AddDate(0, 0, -(days - 1)).Format("2006-01-02"), today.Format("2006-01-02"), asOf
}

// recentActivity loads the user's sessions dated within the classifier window
// ending today, and the instant to pass to energy.Classify. Sessions are
// selected by the date they were done, not when they were logged.
func (h *Handler) recentActivity(c *gin.Context, userID int, now time.Time) ([]energy.ActivityRecord, time.Time, error) {
	first, last, asOf := classifierDays(now)
	rows, err := queryMany[activityHistoryRow](h.db, c,
		`SELECT date, intensity, duration_min FROM activity_log_entries
		 WHERE user_id = @userID AND date BETWEEN @first AND @last`,
		pgx.NamedArgs{"userID": userID, "first": first, "last": last})
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, asOf, err
	}
	return historyRecords(rows), asOf, nil
}

func historyRecords(rows []activityHistoryRow) []energy.ActivityRecord {
	records := make([]energy.ActivityRecord, len(rows))
	for i, r := range rows {
		records[i] = energy.ActivityRecord{
			Date:        r.Date.Time,
			Intensity:   energy.Intensity(r.Intensity),
			DurationMin: r.DurationMin,
		}
	}
	return records
}
