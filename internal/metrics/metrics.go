package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

// Auth attempt actions and results used as label values.
const (
	ActionRegister = "register"
	ActionLogin    = "login"

	ResultSuccess   = "success"
	ResultRejected  = "rejected"
	ResultDuplicate = "duplicate"
	ResultError     = "error"
	// ResultInvalid marks a request body rejected before it reached the handler.
	ResultInvalid = "invalid"
)

var (
	// RequestDuration tracks HTTP request duration in seconds by method, route, status.
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// RequestTotal counts HTTP requests by method, route, status.
	RequestTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	AuthAttemptsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "newsdesk",
			Name:      "auth_attempts_total",
			Help:      "Registration and login attempts by outcome, including bodies that failed validation",
		},
		[]string{"action", "result"},
	)

	ArticlesCreatedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "newsdesk",
			Name:      "articles_created_total",
			Help:      "Articles successfully stored",
		},
	)
)

func init() {
	prometheus.MustRegister(RequestDuration, RequestTotal, AuthAttemptsTotal, ArticlesCreatedTotal)
}

// RecordRequest records duration and count for an HTTP request.
func RecordRequest(method, path string, statusCode int, durationSeconds float64) {
	status := strconv.Itoa(statusCode)
	RequestDuration.WithLabelValues(method, path, status).Observe(durationSeconds)
	RequestTotal.WithLabelValues(method, path, status).Inc()
}

// RecordAuth counts one register or login attempt.
func RecordAuth(action, result string) {
	AuthAttemptsTotal.WithLabelValues(action, result).Inc()
}

// AuthRejected returns a hook that counts action as invalid, for use with
// middleware.ValidateBody.
func AuthRejected(action string) func(*http.Request) {
	return func(*http.Request) {
		RecordAuth(action, ResultInvalid)
	}
}

func IncArticlesCreated() {
	ArticlesCreatedTotal.Inc()
}
