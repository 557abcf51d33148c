package main

import (
	"github.com/prometheus/client_golang/prometheus"

	"lg/gym-buddy-go-api/energy"
)

var (
	estimatesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "gym_buddy",
		Subsystem: "energy",
		Name:      "estimates_total",
		Help:      "Calorie estimates computed, by kind (activity or strength).",
	}, []string{"kind"})
	estimateCalories = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "gym_buddy",
		Subsystem: "energy",
		Name:      "estimate_calories",
		Help:      "Total kcal of computed estimates.",
		Buckets:   []float64{25, 50, 100, 200, 300, 500, 750, 1000, 1500},
	}, []string{"kind"})
	engineErrorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "gym_buddy",
		Subsystem: "energy",
		Name:      "errors_total",
		Help:      "Calculator errors returned to clients, by reason.",
	}, []string{"reason"})
	classificationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "gym_buddy",
		Subsystem: "energy",
		Name:      "fitness_classifications_total",
		Help:      "Fitness-level recommendations produced, by recommended level.",
	}, []string{"level"})
	loginFailuresTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "gym_buddy",
		Subsystem: "auth",
		Name:      "login_failures_total",
		Help:      "Rejected login attempts.",
	})
	plannerRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "gym_buddy",
		Subsystem: "planner",
		Name:      "requests_total",
		Help:      "Remote weekly-plan requests, by outcome.",
	}, []string{"outcome"})
)

func init() {
	prometheus.MustRegister(estimatesTotal, estimateCalories, engineErrorsTotal,
		classificationsTotal, loginFailuresTotal, plannerRequestsTotal)
}

func recordEstimate(est energy.Estimate) {
	estimatesTotal.WithLabelValues(string(est.Kind)).Inc()
	estimateCalories.WithLabelValues(string(est.Kind)).Observe(float64(est.TotalCalories))
}

func recordEngineError(reason string) {
	engineErrorsTotal.WithLabelValues(reason).Inc()
}

func recordClassification(rec energy.Recommendation) {
	classificationsTotal.WithLabelValues(string(rec.Level)).Inc()
}

func recordPlannerOutcome(outcome string) {
	plannerRequestsTotal.WithLabelValues(outcome).Inc()
}

func recordLoginFailure() {
	loginFailuresTotal.Inc()
}
