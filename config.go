package main

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// config captures runtime settings. Values come from the environment, which
// godotenv may have populated from .env.
type config struct {
	HTTPAddress    string
	DatabaseURL    string
	PlannerBaseURL string
	PlannerAPIKey  string
	PlannerModel   string
	PlannerTimeout time.Duration
	CORSOrigins    []string
}

// loadConfig reads environment variables into config, applying defaults for local dev.
func loadConfig() config {
	return config{
		HTTPAddress:    getEnv("HTTP_ADDRESS", "localhost:3000"),
		DatabaseURL:    getEnv("DB_URL", "postgres://localhost:5432/gym_buddy?sslmode=disable"),
		PlannerBaseURL: getEnv("PLANNER_BASE_URL", "https://api.openai.com"),
		PlannerAPIKey:  getEnv("PLANNER_API_KEY", os.Getenv("OPENAI_API_KEY")),
		PlannerModel:   getEnv("PLANNER_MODEL", "gpt-4o-mini"),
		PlannerTimeout: getDurationEnv("PLANNER_TIMEOUT", 20*time.Second),
		CORSOrigins:    splitAndTrim(getEnv("CORS_ORIGINS", "*")),
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
		// Bare numbers are seconds.
		if secs, err := strconv.Atoi(value); err == nil && secs > 0 {
			return time.Duration(secs) * time.Second
		}
	}
	return fallback
}

func splitAndTrim(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
