package main

import (
	"errors"
	"log"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
)

// validItemTypes is the set of allowed values for the calorie_log_item_type enum.
// Reject unknown values with 400 rather than letting the DB return a cryptic 500.
var validItemTypes = map[string]bool{
	"breakfast": true,
	"lunch":     true,
	"dinner":    true,
	"snack":     true,
	"exercise":  true,
}

// getDailySummary returns calorie log items and computed totals for a given date.
// GET /api/calorie-log/daily?date=YYYY-MM-DD (defaults to today).
func (h *Handler) getDailySummary(c *gin.Context) {
	userID := c.GetInt("user_id")
	date, err := parseDateOr(c.Query("date"), h.clock().Format("2006-01-02"))
	if err != nil {
		apiError(c, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
		return
	}

	args := pgx.NamedArgs{"userID": userID, "date": date}
	items, err := queryMany[calorieLogItem](h.db, c,
		`SELECT * FROM calorie_log_items
		 WHERE user_id = @userID AND date = @date
		 ORDER BY created_at`, args)
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to fetch items")
		return
	}
	// Ensure items is an empty array (not null) in JSON
	if items == nil {
		items = []calorieLogItem{}
	}

	activities, err := h.activityBucket(c, userID, date)
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to fetch activities")
		return
	}

	profile, err := h.loadProfile(c)
	if err != nil {
		profileError(c, err)
		return
	}

	// Exercise calories are stored as positive integers; the type field is the
	// source of truth for direction (food adds, exercise subtracts). Estimated
	// sessions from the activity log count as exercise.
	var caloriesFood, caloriesExercise int
	var proteinG, carbsG, fatG float64
	for _, item := range items {
		if item.Type == "exercise" {
			caloriesExercise += item.Calories
		} else {
			caloriesFood += item.Calories
		}
		if item.ProteinG != nil {
			proteinG += *item.ProteinG
		}
		if item.CarbsG != nil {
			carbsG += *item.CarbsG
		}
		if item.FatG != nil {
			fatG += *item.FatG
		}
	}
	for _, a := range activities {
		caloriesExercise += a.Calories
	}

	populateDerived(&profile, h.clock())

	net := caloriesFood - caloriesExercise
	c.JSON(http.StatusOK, dailySummary{
		Date:             date,
		CalorieBudget:    profile.CalorieBudget,
		CaloriesFood:     caloriesFood,
		CaloriesExercise: caloriesExercise,
		NetCalories:      net,
		CaloriesLeft:     profile.CalorieBudget - net,
		ProteinG:         proteinG,
		CarbsG:           carbsG,
		FatG:             fatG,
		Items:            items,
		Activities:       activities,
		Profile:          profile,
	})
}

// activityCaloriesByDate sums estimated session calories per date in [start, end].
func (h *Handler) activityCaloriesByDate(c *gin.Context, userID int, start, end string) (map[string]int, error) {
	rows, err := queryMany[activityDayDBRow](h.db, c,
		`SELECT date, SUM(calories)::int AS calories
		 FROM activity_log_entries
		 WHERE user_id = @userID AND date >= @start AND date <= @end
		 GROUP BY date`,
		pgx.NamedArgs{"userID": userID, "start": start, "end": end})
	if err != nil {
		return nil, err
	}
	byDate := make(map[string]int, len(rows))
	for _, r := range rows {
		byDate[r.Date.Format("2006-01-02")] = r.Calories
	}
	return byDate, nil
}

// mergeDays folds activity-log calories into the food-log day rows. Dates with
// only estimated sessions get a row of their own; the result is date-ordered.
func mergeDays(rows []weekDayDBRow, activity map[string]int) []weekDayDBRow {
	byDate := make(map[string]int, len(rows))
	out := make([]weekDayDBRow, 0, len(rows)+len(activity))
	for _, r := range rows {
		byDate[r.Date.Format("2006-01-02")] = len(out)
		out = append(out, r)
	}
	for date, kcal := range activity {
		if i, ok := byDate[date]; ok {
			out[i].CaloriesExercise += kcal
			continue
		}
		d, err := time.Parse("2006-01-02", date)
		if err != nil {
			continue
		}
		out = append(out, weekDayDBRow{Date: DateOnly{d}, CaloriesExercise: kcal})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date.Time) })
	return out
}

// getWeekSummary returns per-day calorie totals for the Mon–Sun week containing
// week_start. Days with nothing logged are included with has_data=false.
// GET /api/calorie-log/week-summary?week_start=YYYY-MM-DD (defaults to current week).
func (h *Handler) getWeekSummary(c *gin.Context) {
	userID := c.GetInt("user_id")

	var weekStart time.Time
	if s := c.Query("week_start"); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			apiError(c, http.StatusBadRequest, "invalid week_start, expected YYYY-MM-DD")
			return
		}
		weekStart = t
	} else {
		weekStart = currentMonday()
	}
	start := weekStart.Format("2006-01-02")
	end := weekStart.AddDate(0, 0, 6).Format("2006-01-02")

	profile, err := h.loadProfile(c)
	if err != nil {
		profileError(c, err)
		return
	}
	rows, err := h.dayTotals(c, userID, start, end)
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to fetch week data")
		return
	}

	rowByDate := make(map[string]weekDayDBRow, len(rows))
	for _, r := range rows {
		rowByDate[r.Date.Format("2006-01-02")] = r
	}

	result := make([]weekDaySummary, 7)
	for i := range result {
		d := weekStart.AddDate(0, 0, i)
		row, ok := rowByDate[d.Format("2006-01-02")]
		if !ok {
			row = weekDayDBRow{Date: DateOnly{d}}
		}
		result[i] = daySummary(row, profile.CalorieBudget, ok)
	}

	c.JSON(http.StatusOK, result)
}

// dayTotals returns per-date food and exercise totals in [start, end],
// combining manual log items with estimated sessions. Only dates with data
// are returned.
func (h *Handler) dayTotals(c *gin.Context, userID int, start, end string) ([]weekDayDBRow, error) {
	// Exercise calories are positive in the DB; the type column decides direction.
	rows, err := queryMany[weekDayDBRow](h.db, c,
		`SELECT
			date,
			SUM(CASE WHEN type != 'exercise' THEN calories ELSE 0 END) AS calories_food,
			SUM(CASE WHEN type  = 'exercise' THEN calories ELSE 0 END) AS calories_exercise,
			COALESCE(SUM(protein_g), 0) AS protein_g,
			COALESCE(SUM(carbs_g),   0) AS carbs_g,
			COALESCE(SUM(fat_g),     0) AS fat_g
		 FROM calorie_log_items
		 WHERE user_id = @userID AND date >= @start AND date <= @end
		 GROUP BY date`,
		pgx.NamedArgs{"userID": userID, "start": start, "end": end})
	if err != nil {
		return nil, err
	}
	activity, err := h.activityCaloriesByDate(c, userID, start, end)
	if err != nil {
		return nil, err
	}
	return mergeDays(rows, activity), nil
}

func daySummary(row weekDayDBRow, budget int, hasData bool) weekDaySummary {
	net := row.CaloriesFood - row.CaloriesExercise
	return weekDaySummary{
		Date:             row.Date,
		CalorieBudget:    budget,
		CaloriesFood:     row.CaloriesFood,
		CaloriesExercise: row.CaloriesExercise,
		NetCalories:      net,
		CaloriesLeft:     budget - net,
		ProteinG:         row.ProteinG,
		CarbsG:           row.CarbsG,
		FatG:             row.FatG,
		HasData:          hasData,
	}
}

// getProgress returns per-day totals and aggregate stats for an arbitrary range.
// GET /api/calorie-log/progress?start=YYYY-MM-DD&end=YYYY-MM-DD. Both params required.
// Only days with data are returned; gap-filling is left to the client.
func (h *Handler) getProgress(c *gin.Context) {
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

	profile, err := h.loadProfile(c)
	if err != nil {
		profileError(c, err)
		return
	}
	rows, err := h.dayTotals(c, userID, start, end)
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to fetch progress data")
		return
	}

	days := make([]weekDaySummary, 0, len(rows))
	for _, row := range rows {
		days = append(days, daySummary(row, profile.CalorieBudget, true))
	}
	c.JSON(http.StatusOK, progressResponse{Days: days, Stats: progressFor(days)})
}

// progressFor aggregates tracked days. Averages are integer kcal.
func progressFor(days []weekDaySummary) progressStats {
	var stats progressStats
	for _, d := range days {
		stats.DaysTracked++
		if d.NetCalories <= d.CalorieBudget {
			stats.DaysOnBudget++
		}
		stats.AvgCaloriesFood += d.CaloriesFood
		stats.AvgCaloriesExercise += d.CaloriesExercise
		stats.AvgNetCalories += d.NetCalories
		stats.TotalCaloriesLeft += d.CaloriesLeft
	}
	if stats.DaysTracked > 0 {
		stats.AvgCaloriesFood /= stats.DaysTracked
		stats.AvgCaloriesExercise /= stats.DaysTracked
		stats.AvgNetCalories /= stats.DaysTracked
	}
	return stats
}

// getEarliestLogDate returns the earliest date with either a food log item or
// an estimated session. Used by clients for the "All Time" range start.
// GET /api/calorie-log/earliest-date. Returns { "date": null } with no data.
func (h *Handler) getEarliestLogDate(c *gin.Context) {
	userID := c.GetInt("user_id")

	var date *string
	err := h.db.QueryRow(c,
		`SELECT TO_CHAR(LEAST(
			(SELECT MIN(date) FROM calorie_log_items    WHERE user_id = @userID),
			(SELECT MIN(date) FROM activity_log_entries WHERE user_id = @userID)
		 ), 'YYYY-MM-DD')`,
		pgx.NamedArgs{"userID": userID}).Scan(&date)
	if err != nil {
		log.Printf("[getEarliestLogDate] user %d: %v", userID, err)
		apiError(c, http.StatusInternalServerError, "failed to fetch earliest date")
		return
	}

	c.JSON(http.StatusOK, gin.H{"date": date})
}

// createCalorieLogItem inserts a new calorie log entry.
// POST /api/calorie-log/items. Defaults date to today if omitted.
func (h *Handler) createCalorieLogItem(c *gin.Context) {
	userID := c.GetInt("user_id")

	var body createCalorieLogItemRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if body.ItemName == "" {
		apiError(c, http.StatusBadRequest, "item_name is required")
		return
	}
	if body.Type == "" {
		apiError(c, http.StatusBadRequest, "type is required")
		return
	}
	// Validate type against the enum; prevents a cryptic 500 from the DB constraint.
	if !validItemTypes[body.Type] {
		apiError(c, http.StatusBadRequest, "type must be one of: breakfast, lunch, dinner, snack, exercise")
		return
	}
	if body.Date == "" {
		body.Date = h.clock().Format("2006-01-02")
	}

	item, err := queryOne[calorieLogItem](h.db, c,
		`INSERT INTO calorie_log_items (user_id, date, item_name, type, qty, uom, calories, protein_g, carbs_g, fat_g)
		 VALUES (@userID, @date, @itemName, @type, @qty, @uom, @calories, @proteinG, @carbsG, @fatG)
		 RETURNING *`,
		pgx.NamedArgs{
			"userID": userID, "date": body.Date, "itemName": body.ItemName,
			"type": body.Type, "qty": body.Qty, "uom": body.Uom,
			"calories": body.Calories, "proteinG": body.ProteinG,
			"carbsG": body.CarbsG, "fatG": body.FatG,
		})
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to create item")
		return
	}

	c.JSON(http.StatusCreated, item)
}

// updateCalorieLogItem updates an existing calorie log entry.
// PUT /api/calorie-log/items/:id. Uses COALESCE so omitted fields keep their current value.
func (h *Handler) updateCalorieLogItem(c *gin.Context) {
	userID := c.GetInt("user_id")
	id := c.Param("id")

	var body struct {
		Date     *string  `json:"date"`
		ItemName *string  `json:"item_name"`
		Type     *string  `json:"type"`
		Qty      *float64 `json:"qty"`
		Uom      *string  `json:"uom"`
		Calories *int     `json:"calories"`
		ProteinG *float64 `json:"protein_g"`
		CarbsG   *float64 `json:"carbs_g"`
		FatG     *float64 `json:"fat_g"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if body.Type != nil && !validItemTypes[*body.Type] {
		apiError(c, http.StatusBadRequest, "type must be one of: breakfast, lunch, dinner, snack, exercise")
		return
	}

	item, err := queryOne[calorieLogItem](h.db, c,
		`UPDATE calorie_log_items SET
			date = COALESCE(@date, date),
			item_name = COALESCE(@itemName, item_name),
			type = COALESCE(@type, type),
			qty = COALESCE(@qty, qty),
			uom = COALESCE(@uom, uom),
			calories = COALESCE(@calories, calories),
			protein_g = COALESCE(@proteinG, protein_g),
			carbs_g = COALESCE(@carbsG, carbs_g),
			fat_g = COALESCE(@fatG, fat_g),
			updated_at = now()
		 WHERE id = @id AND user_id = @userID
		 RETURNING *`,
		pgx.NamedArgs{
			"id": id, "userID": userID,
			"date": body.Date, "itemName": body.ItemName, "type": body.Type,
			"qty": body.Qty, "uom": body.Uom, "calories": body.Calories,
			"proteinG": body.ProteinG, "carbsG": body.CarbsG, "fatG": body.FatG,
		})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			apiError(c, http.StatusNotFound, "item not found")
		} else {
			apiError(c, http.StatusInternalServerError, "failed to update item")
		}
		return
	}

	c.JSON(http.StatusOK, item)
}

// deleteCalorieLogItem removes a calorie log entry. Returns 204 on success.
// DELETE /api/calorie-log/items/:id.
func (h *Handler) deleteCalorieLogItem(c *gin.Context) {
	userID := c.GetInt("user_id")
	id := c.Param("id")

	result, err := h.db.Exec(c,
		"DELETE FROM calorie_log_items WHERE id = @id AND user_id = @userID",
		pgx.NamedArgs{"id": id, "userID": userID})
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to delete item")
		return
	}
	if result.RowsAffected() == 0 {
		apiError(c, http.StatusNotFound, "item not found")
		return
	}

	c.Status(http.StatusNoContent)
}
