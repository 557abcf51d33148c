package main

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
)

const maxWeightKG = 999.9

// getWeightLog returns weight entries for the authenticated user within [start, end].
// GET /api/weight-log?start=YYYY-MM-DD&end=YYYY-MM-DD. Both params required.
func (h *Handler) getWeightLog(c *gin.Context) {
	userID := c.GetInt("user_id")
	start := c.Query("start")
	end := c.Query("end")

	if start == "" || end == "" {
		apiError(c, http.StatusBadRequest, "start and end query params are required")
		return
	}
	if _, err := time.Parse("2006-01-02", start); err != nil {
		apiError(c, http.StatusBadRequest, "invalid start, expected YYYY-MM-DD")
		return
	}
	if _, err := time.Parse("2006-01-02", end); err != nil {
		apiError(c, http.StatusBadRequest, "invalid end, expected YYYY-MM-DD")
		return
	}
	if start > end {
		apiError(c, http.StatusBadRequest, "start must not be after end")
		return
	}

	entries, err := queryMany[weightEntry](h.db, c,
		`SELECT * FROM weight_log
		 WHERE user_id = @userID AND date >= @start AND date <= @end
		 ORDER BY date ASC`,
		pgx.NamedArgs{"userID": userID, "start": start, "end": end})
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to fetch weight log")
		return
	}
	if entries == nil {
		entries = []weightEntry{}
	}

	c.JSON(http.StatusOK, entries)
}

// upsertWeightEntry creates or replaces the weight entry for the given date.
// POST /api/weight-log. Body: { "date": "YYYY-MM-DD", "weight_kg": 82.4 }.
func (h *Handler) upsertWeightEntry(c *gin.Context) {
	userID := c.GetInt("user_id")

	var body struct {
		Date     string  `json:"date"`
		WeightKG float64 `json:"weight_kg"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	date, err := parseDateOr(body.Date, h.clock().Format("2006-01-02"))
	if err != nil {
		apiError(c, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
		return
	}
	if !validWeight(body.WeightKG) {
		apiError(c, http.StatusBadRequest, "weight_kg must be between 0 and 999.9")
		return
	}

	entry, err := queryOne[weightEntry](h.db, c,
		`INSERT INTO weight_log (user_id, date, weight_kg)
		 VALUES (@userID, @date, @weightKG)
		 ON CONFLICT (user_id, date) DO UPDATE SET weight_kg = EXCLUDED.weight_kg
		 RETURNING *`,
		pgx.NamedArgs{"userID": userID, "date": date, "weightKG": body.WeightKG})
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to upsert weight entry")
		return
	}
	h.syncProfileWeight(c, userID)

	c.JSON(http.StatusCreated, entry)
}

// updateWeightEntry partially updates an existing weight entry.
// PUT /api/weight-log/:id. Omitted fields keep their current values.
func (h *Handler) updateWeightEntry(c *gin.Context) {
	userID := c.GetInt("user_id")
	id := c.Param("id")

	var body struct {
		Date     *string  `json:"date"`
		WeightKG *float64 `json:"weight_kg"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if body.Date != nil {
		if _, err := time.Parse("2006-01-02", *body.Date); err != nil {
			apiError(c, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
			return
		}
	}
	if body.WeightKG != nil && !validWeight(*body.WeightKG) {
		apiError(c, http.StatusBadRequest, "weight_kg must be between 0 and 999.9")
		return
	}

	entry, err := queryOne[weightEntry](h.db, c,
		`UPDATE weight_log SET
			date      = COALESCE(@date, date),
			weight_kg = COALESCE(@weightKG, weight_kg)
		 WHERE id = @id AND user_id = @userID
		 RETURNING *`,
		pgx.NamedArgs{"id": id, "userID": userID, "date": body.Date, "weightKG": body.WeightKG})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			apiError(c, http.StatusNotFound, "weight entry not found")
		} else {
			apiError(c, http.StatusInternalServerError, "failed to update weight entry")
		}
		return
	}
	h.syncProfileWeight(c, userID)

	c.JSON(http.StatusOK, entry)
}

// deleteWeightEntry removes a weight log entry by ID.
// DELETE /api/weight-log/:id. Returns 204 on success, 404 if not found.
func (h *Handler) deleteWeightEntry(c *gin.Context) {
	userID := c.GetInt("user_id")
	id := c.Param("id")

	result, err := h.db.Exec(c,
		"DELETE FROM weight_log WHERE id = @id AND user_id = @userID",
		pgx.NamedArgs{"id": id, "userID": userID})
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to delete weight entry")
		return
	}
	if result.RowsAffected() == 0 {
		apiError(c, http.StatusNotFound, "weight entry not found")
		return
	}
	h.syncProfileWeight(c, userID)

	c.Status(http.StatusNoContent)
}

func validWeight(kg float64) bool {
	return kg > 0 && kg <= maxWeightKG
}

// syncProfileWeight copies the newest weight entry onto the profile so BMI and
// the calculators always see the latest weight, then re-derives the plan when
// plan_auto is on. A user with no entries keeps their profile weight.
// Failures are logged; the weight entry itself has already been written.
func (h *Handler) syncProfileWeight(c *gin.Context, userID int) {
	p, err := queryOne[userProfile](h.db, c,
		`UPDATE user_profiles SET
			weight_kg = latest.weight_kg, updated_at = now()
		 FROM (SELECT weight_kg FROM weight_log
		       WHERE user_id = @userID ORDER BY date DESC LIMIT 1) AS latest
		 WHERE user_profiles.user_id = @userID
		 RETURNING user_profiles.*`,
		pgx.NamedArgs{"userID": userID})
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			log.Printf("[syncProfileWeight] user %d: %v", userID, err)
		}
		return
	}
	if p.PlanAuto {
		h.refreshPlan(c, p)
	}
}
