package main

import (
	"errors"
	"log"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"

	"lg/gym-buddy-go-api/energy"
)

// getProfile returns the authenticated user's profile with derived fields
// (age, BMI, weeks to target, nutrition plan) filled where inputs allow.
// GET /api/profile.
func (h *Handler) getProfile(c *gin.Context) {
	p, err := h.loadProfile(c)
	if err != nil {
		profileError(c, err)
		return
	}
	populateDerived(&p, h.clock())
	c.JSON(http.StatusOK, p)
}

// patchProfile updates only the provided profile fields. Pointer fields in the
// body distinguish "not provided" from zero. When plan_auto is on after the
// update, the stored budget and macro targets are re-derived.
// PATCH /api/profile.
func (h *Handler) patchProfile(c *gin.Context) {
	userID := c.GetInt("user_id")

	var body patchProfileRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	setClauses, args, err := profileUpdates(body)
	if err != nil {
		engineError(c, err)
		return
	}
	if len(setClauses) == 0 {
		apiError(c, http.StatusBadRequest, "no fields to update")
		return
	}
	args["userID"] = userID

	query := "UPDATE user_profiles SET " +
		strings.Join(setClauses, ", ") +
		", updated_at = now() WHERE user_id = @userID RETURNING *"

	p, err := queryOne[userProfile](h.db, c, query, args)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			apiError(c, http.StatusNotFound, "profile not found")
		} else {
			apiError(c, http.StatusInternalServerError, "failed to update profile")
		}
		return
	}

	if p.PlanAuto {
		p = h.refreshPlan(c, p)
	}
	populateDerived(&p, h.clock())

	c.JSON(http.StatusOK, p)
}

// profileUpdates validates body and builds the SET clause for the fields the
// client sent. Enumerated values are stored in their canonical spelling.
func profileUpdates(body patchProfileRequest) ([]string, pgx.NamedArgs, error) {
	setClauses := []string{}
	args := pgx.NamedArgs{}
	set := func(column, arg string, value any) {
		setClauses = append(setClauses, column+" = @"+arg)
		args[arg] = value
	}

	for _, f := range []struct {
		name  string
		value *float64
	}{
		{"height_cm", body.HeightCM},
		{"weight_kg", body.WeightKG},
		{"target_weight_kg", body.TargetWeightKG},
	} {
		if f.value != nil && !(*f.value > 0 && *f.value < 1000) {
			return nil, nil, &energy.InvalidArgumentError{Field: f.name, Reason: "must be between 0 and 1000"}
		}
	}
	if body.WeeklyChangeKG != nil && (math.IsNaN(*body.WeeklyChangeKG) || math.Abs(*body.WeeklyChangeKG) > 2) {
		return nil, nil, &energy.InvalidArgumentError{Field: "weekly_change_kg", Reason: "must be between -2 and 2"}
	}

	if body.CalorieBudget != nil {
		set("calorie_budget", "calorieBudget", *body.CalorieBudget)
	}
	if body.ProteinTargetG != nil {
		set("protein_target_g", "proteinTargetG", *body.ProteinTargetG)
	}
	if body.CarbsTargetG != nil {
		set("carbs_target_g", "carbsTargetG", *body.CarbsTargetG)
	}
	if body.FatTargetG != nil {
		set("fat_target_g", "fatTargetG", *body.FatTargetG)
	}
	if body.Sex != nil {
		g, err := energy.ParseGender(*body.Sex)
		if err != nil {
			return nil, nil, err
		}
		set("sex", "sex", string(g))
	}
	if body.DateOfBirth != nil {
		dob, err := time.Parse("2006-01-02", *body.DateOfBirth)
		if err != nil {
			return nil, nil, &energy.InvalidArgumentError{Field: "date_of_birth", Reason: "expected YYYY-MM-DD"}
		}
		set("date_of_birth", "dateOfBirth", dob.Format("2006-01-02"))
	}
	if body.HeightCM != nil {
		set("height_cm", "heightCM", *body.HeightCM)
	}
	if body.WeightKG != nil {
		set("weight_kg", "weightKG", *body.WeightKG)
	}
	if body.TargetWeightKG != nil {
		set("target_weight_kg", "targetWeightKG", *body.TargetWeightKG)
	}
	if body.WeeklyChangeKG != nil {
		set("weekly_change_kg", "weeklyChangeKG", *body.WeeklyChangeKG)
	}
	if body.Goal != nil {
		goal := energy.ParseGoal(*body.Goal)
		if goal == "" {
			return nil, nil, &energy.InvalidArgumentError{Field: "goal", Reason: "is required"}
		}
		set("goal", "goal", string(goal))
	}
	if body.ActivityLevel != nil {
		if !energy.ValidActivityLevel(*body.ActivityLevel) {
			return nil, nil, &energy.InvalidArgumentError{Field: "activity_level", Reason: "must be one of: sedentary, moderate, active"}
		}
		set("activity_level", "activityLevel", strings.ToLower(strings.TrimSpace(*body.ActivityLevel)))
	}
	if body.FitnessLevel != nil {
		l, err := energy.ParseFitnessLevel(*body.FitnessLevel)
		if err != nil {
			return nil, nil, err
		}
		set("fitness_level", "fitnessLevel", string(l))
		setClauses = append(setClauses, "fitness_updated_at = now()")
	}
	if body.PlanAuto != nil {
		set("plan_auto", "planAuto", *body.PlanAuto)
	}
	if body.SetupComplete != nil {
		set("setup_complete", "setupComplete", *body.SetupComplete)
	}
	return setClauses, args, nil
}

// refreshPlan re-derives the nutrition plan from p and stores it. A profile
// that cannot be planned yet (missing goal, height, ...) is returned as is.
func (h *Handler) refreshPlan(c *gin.Context, p userProfile) userProfile {
	plan, err := energy.Plan(planInput(&p, h.clock()))
	if err != nil {
		log.Printf("[refreshPlan] user %d not plannable yet: %v", p.UserID, err)
		return p
	}
	updated, err := h.savePlan(c, p.UserID, plan)
	if err != nil {
		log.Printf("[refreshPlan] plan update failed for user %d: %v", p.UserID, err)
		return p
	}
	return updated
}

// savePlan writes plan into the profile's budget and macro target columns.
func (h *Handler) savePlan(c *gin.Context, userID int, plan energy.NutritionPlan) (userProfile, error) {
	return queryOne[userProfile](h.db, c,
		`UPDATE user_profiles SET
			calorie_budget   = @calories,
			protein_target_g = @protein,
			carbs_target_g   = @carbs,
			fat_target_g     = @fat,
			bmr              = @bmr,
			tdee             = @tdee,
			updated_at       = now()
		 WHERE user_id = @userID
		 RETURNING *`,
		pgx.NamedArgs{
			"userID": userID, "calories": plan.TargetCalories,
			"protein": plan.ProteinG, "carbs": plan.CarbsG, "fat": plan.FatG,
			"bmr": plan.BMR, "tdee": plan.TDEE,
		})
}

// createNutritionPlan derives a plan from the current profile and persists it,
// regardless of plan_auto.
// POST /api/profile/nutrition-plan. 400 when the profile is incomplete.
func (h *Handler) createNutritionPlan(c *gin.Context) {
	p, err := h.loadProfile(c)
	if err != nil {
		profileError(c, err)
		return
	}
	plan, err := energy.Plan(planInput(&p, h.clock()))
	if err != nil {
		engineError(c, err)
		return
	}
	updated, err := h.savePlan(c, p.UserID, plan)
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to save nutrition plan")
		return
	}
	populateDerived(&updated, h.clock())
	c.JSON(http.StatusOK, updated)
}

/* ─── Fitness level ──────────────────────────────────────────────────── */

// getFitnessRecommendation classifies the last 30 days of the user's activity
// log. The profile is not changed.
// GET /api/profile/fitness-level/recommendation.
func (h *Handler) getFitnessRecommendation(c *gin.Context) {
	now := h.clock()
	records, asOf, err := h.recentActivity(c, c.GetInt("user_id"), now)
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to fetch activity history")
		return
	}
	rec := energy.Classify(records, asOf)
	recordClassification(rec)
	c.JSON(http.StatusOK, rec)
}

// applyFitnessRecommendation classifies recent activity and writes the
// recommended level onto the profile.
// POST /api/profile/fitness-level/apply.
func (h *Handler) applyFitnessRecommendation(c *gin.Context) {
	userID := c.GetInt("user_id")
	now := h.clock()

	p, err := h.loadProfile(c)
	if err != nil {
		profileError(c, err)
		return
	}
	records, asOf, err := h.recentActivity(c, userID, now)
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to fetch activity history")
		return
	}
	rec := energy.Classify(records, asOf)
	recordClassification(rec)

	ep := energyProfile(&p, now)
	changed := ep.ApplyRecommendation(rec, now)

	updated, err := queryOne[userProfile](h.db, c,
		`UPDATE user_profiles SET
			fitness_level = @level, fitness_updated_at = @updatedAt, updated_at = now()
		 WHERE user_id = @userID
		 RETURNING *`,
		pgx.NamedArgs{"userID": userID, "level": string(ep.FitnessLevel), "updatedAt": ep.FitnessUpdatedAt})
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to update fitness level")
		return
	}
	populateDerived(&updated, now)

	c.JSON(http.StatusOK, gin.H{"recommendation": rec, "changed": changed, "profile": updated})
}
