package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"lg/gym-buddy-go-api/energy"
)

// Handler holds shared dependencies (db pool, calculator, planner client) for
// all route handlers.
type Handler struct {
	db      *pgxpool.Pool
	calc    *energy.Calculator
	planner plannerConfig
	now     func() time.Time // overridable for tests
}

// newHandler wires a Handler from config. The catalog is loaded once and
// shared read-only by every request.
func newHandler(pool *pgxpool.Pool, catalog *energy.Catalog, cfg config) *Handler {
	return &Handler{
		db:   pool,
		calc: energy.NewCalculator(catalog),
		planner: plannerConfig{
			BaseURL: cfg.PlannerBaseURL,
			APIKey:  cfg.PlannerAPIKey,
			Model:   cfg.PlannerModel,
			Timeout: cfg.PlannerTimeout,
		},
		now: time.Now,
	}
}

func (h *Handler) clock() time.Time {
	if h.now == nil {
		return time.Now()
	}
	return h.now()
}

/* ─── Database helpers ────────────────────────────────────────────────── */

// queryOne runs a query and scans the first row into T using RowToStructByName.
// Logs query and scan errors (e.g. struct/column mismatches).
func queryOne[T any](pool *pgxpool.Pool, c *gin.Context, sql string, args pgx.NamedArgs) (T, error) {
	rows, err := pool.Query(c, sql, args)
	if err != nil {
		log.Printf("[queryOne] Query error: %v", err)
		var zero T
		return zero, err
	}
	result, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[T])
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		log.Printf("[queryOne] Scan error: %v", err)
	}
	return result, err
}

// queryMany runs a query and scans all rows into []T using RowToStructByName.
func queryMany[T any](pool *pgxpool.Pool, c *gin.Context, sql string, args pgx.NamedArgs) ([]T, error) {
	rows, err := pool.Query(c, sql, args)
	if err != nil {
		log.Printf("[queryMany] Query error: %v", err)
		return nil, err
	}
	results, err := pgx.CollectRows(rows, pgx.RowToStructByName[T])
	if err != nil {
		log.Printf("[queryMany] Scan error: %v", err)
	}
	return results, err
}

// loadProfile fetches the authenticated user's profile row.
func (h *Handler) loadProfile(c *gin.Context) (userProfile, error) {
	return queryOne[userProfile](h.db, c,
		"SELECT * FROM user_profiles WHERE user_id = @userID",
		pgx.NamedArgs{"userID": c.GetInt("user_id")})
}

// profileError reports a failed loadProfile.
func profileError(c *gin.Context, err error) {
	if errors.Is(err, pgx.ErrNoRows) {
		apiError(c, http.StatusNotFound, "profile not found")
		return
	}
	apiError(c, http.StatusInternalServerError, "failed to fetch profile")
}

/* ─── Responses ───────────────────────────────────────────────────────── */

// apiError returns a consistent JSON error response: {"error": "message"}.
func apiError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

// engineError maps a calculator error onto a response. Not-found and
// invalid-argument errors carry their message to the client; anything else
// is logged and hidden behind a 500.
func engineError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, energy.ErrNotFound):
		recordEngineError("not_found")
		apiError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, energy.ErrInvalidArgument):
		recordEngineError("invalid_argument")
		apiError(c, http.StatusBadRequest, err.Error())
	default:
		recordEngineError("internal")
		log.Printf("[engineError] %v", err)
		apiError(c, http.StatusInternalServerError, "calculation failed")
	}
}

// parseDateOr validates a YYYY-MM-DD value, substituting fallback when empty.
func parseDateOr(value, fallback string) (string, error) {
	if value == "" {
		value = fallback
	}
	if _, err := time.Parse("2006-01-02", value); err != nil {
		return "", err
	}
	return value, nil
}

/* ─── Server setup ────────────────────────────────────────────────────── */

// getDBPool creates a connection pool. We use a pool (not a single conn) because
// Neon closes idle connections after ~5 minutes.
func getDBPool(url string) *pgxpool.Pool {
	cfg, err := pgxpool.ParseConfig(url)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Unable to parse DB URL: %v\n", err)
		os.Exit(1)
	}
	// Simple protocol avoids "cached plan must not change result type" after
	// schema changes.
	cfg.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeSimpleProtocol
	pool, err := pgxpool.NewWithConfig(context.Background(), cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Unable to connect to database: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("DB pool ready!")
	return pool
}

// healthz reports liveness plus database reachability.
func (h *Handler) healthz(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()
	if h.db != nil {
		if err := h.db.Ping(ctx); err != nil {
			log.Printf("[healthz] db ping failed: %v", err)
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "db": "unreachable"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// registerRoutes registers all API routes on the router.
func (h *Handler) registerRoutes(router *gin.Engine) {
	// Public routes
	router.GET("/healthz", h.healthz)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.POST("/api/login", h.login)

	// Authenticated routes
	api := router.Group("/api", h.authMiddleware())
	api.GET("/catalog/activities", h.listActivities)
	api.GET("/catalog/exercises", h.listExercises)

	api.POST("/activity-log/estimate", h.estimateActivity)
	api.POST("/activity-log/strength/estimate", h.estimateStrength)
	api.POST("/activity-log", h.logActivity)
	api.POST("/activity-log/strength", h.logStrength)
	api.GET("/activity-log", h.getActivityLog)
	api.DELETE("/activity-log/:date/:id", h.deleteActivityLogEntry)

	api.GET("/profile", h.getProfile)
	api.PATCH("/profile", h.patchProfile)
	api.POST("/profile/nutrition-plan", h.createNutritionPlan)
	api.GET("/profile/fitness-level/recommendation", h.getFitnessRecommendation)
	api.POST("/profile/fitness-level/apply", h.applyFitnessRecommendation)

	api.GET("/weight-log", h.getWeightLog)
	api.POST("/weight-log", h.upsertWeightEntry)
	api.PUT("/weight-log/:id", h.updateWeightEntry)
	api.DELETE("/weight-log/:id", h.deleteWeightEntry)

	api.GET("/calorie-log/daily", h.getDailySummary)
	api.GET("/calorie-log/week-summary", h.getWeekSummary)
	api.GET("/calorie-log/progress", h.getProgress)
	api.GET("/calorie-log/earliest-date", h.getEarliestLogDate)
	api.POST("/calorie-log/items", h.createCalorieLogItem)
	api.PUT("/calorie-log/items/:id", h.updateCalorieLogItem)
	api.DELETE("/calorie-log/items/:id", h.deleteCalorieLogItem)

	api.POST("/plans/weekly", h.generateWeeklyPlan)
}
