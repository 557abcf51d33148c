package main

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"lg/gym-buddy-go-api/energy"
)

// listActivities returns the aerobic/general activity catalog, sorted by ID.
// GET /api/catalog/activities?category=cardio filters by category.
func (h *Handler) listActivities(c *gin.Context) {
	category := strings.ToLower(strings.TrimSpace(c.Query("category")))

	activities := h.calc.Catalog().Activities()
	out := make([]energy.ActivityDefinition, 0, len(activities))
	for _, a := range activities {
		if category == "" || string(a.Category) == category {
			out = append(out, a)
		}
	}
	c.JSON(http.StatusOK, out)
}

// listExercises returns the strength exercise catalog, sorted by ID.
// GET /api/catalog/exercises?muscle=quadriceps&equipment=barbell,dumbbell&level=beginner
// filters by primary muscle, equipment and level. Equipment and level accept
// repeated or comma-separated values.
func (h *Handler) listExercises(c *gin.Context) {
	c.JSON(http.StatusOK, h.calc.Catalog().FilterExercises(exerciseFilter(c)))
}

func exerciseFilter(c *gin.Context) energy.ExerciseFilter {
	return energy.ExerciseFilter{
		Equipment: queryList(c, "equipment"),
		Levels:    queryList(c, "level"),
		Muscle:    c.Query("muscle"),
	}
}

// queryList collects a repeated query parameter, splitting each value on commas.
func queryList(c *gin.Context, key string) []string {
	var out []string
	for _, v := range c.QueryArray(key) {
		out = append(out, splitAndTrim(v)...)
	}
	return out
}
