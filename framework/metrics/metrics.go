// Package metrics exposes Prometheus counters for the submission gate, the
// account store and the activity widget.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Gate metrics
	FormSubmissions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "nutrition_form_submissions_total",
		Help: "Form submissions by form and outcome (accepted or rejected)",
	}, []string{"form", "outcome"})

	FieldViolations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "nutrition_field_violations_total",
		Help: "Invalid fields on rejected submissions",
	}, []string{"form", "field"})

	// Account metrics
	Registrations = promauto.NewCounter(prometheus.CounterOpts{
		Name: "nutrition_registrations_total",
		Help: "Accounts created",
	})

	LoginAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "nutrition_login_attempts_total",
		Help: "Login attempts by result",
	}, []string{"result"})

	// Activity metrics
	ActivityFetchFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "nutrition_activity_fetch_failures_total",
		Help: "Failed wearables API fetches by endpoint",
	}, []string{"endpoint"})

	ActivityFetchDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "nutrition_activity_fetch_duration_seconds",
		Help:    "Wearables API fetch latency",
		Buckets: prometheus.ExponentialBuckets(0.01, 2, 10), // 10ms to ~5s
	}, []string{"endpoint"})
)

// RecordSubmission records one submit attempt and, when rejected, each
// invalid field.
func RecordSubmission(form string, accepted bool, invalid []string) {
	outcome := "accepted"
	if !accepted {
		outcome = "rejected"
	}
	FormSubmissions.WithLabelValues(form, outcome).Inc()
	for _, field := range invalid {
		FieldViolations.WithLabelValues(form, field).Inc()
	}
}

// RecordLogin records a login attempt.
func RecordLogin(success bool) {
	result := "success"
	if !success {
		result = "failure"
	}
	LoginAttempts.WithLabelValues(result).Inc()
}

// RecordActivityFetch records a wearables fetch and its latency.
func RecordActivityFetch(endpoint string, seconds float64, err error) {
	ActivityFetchDuration.WithLabelValues(endpoint).Observe(seconds)
	if err != nil {
		ActivityFetchFailures.WithLabelValues(endpoint).Inc()
	}
}

// Handler serves the default registry in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.Handler()
}
