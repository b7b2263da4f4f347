package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Request counters
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "djigbo",
			Subsystem: "api",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	// Request duration histogram
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "djigbo",
			Subsystem: "api",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60},
		},
		[]string{"method", "endpoint", "status"},
	)

	// Chat turns by provider and outcome
	ChatTurnsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "djigbo",
			Subsystem: "api",
			Name:      "chat_turns_total",
			Help:      "Total chat turns by model provider and outcome",
		},
		[]string{"provider", "status"},
	)

	// Model inference duration
	LLMDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "djigbo",
			Subsystem: "api",
			Name:      "llm_duration_seconds",
			Help:      "Model inference duration in seconds",
			Buckets:   []float64{0.5, 1, 2, 5, 10, 30, 60, 120},
		},
		[]string{"provider"},
	)

	// Provider errors
	ProviderErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "djigbo",
			Subsystem: "api",
			Name:      "provider_errors_total",
			Help:      "Total model provider call failures",
		},
		[]string{"provider"},
	)

	// Summary fallbacks
	SummaryFallbacksTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "djigbo",
			Subsystem: "api",
			Name:      "summary_fallbacks_total",
			Help:      "Summaries that degraded to the deterministic fallback",
		},
	)

	// Auth requests
	AuthRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "djigbo",
			Subsystem: "api",
			Name:      "auth_requests_total",
			Help:      "Total authentication attempts",
		},
		[]string{"status"},
	)

	// Pruned conversations
	ConversationsPrunedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "djigbo",
			Subsystem: "api",
			Name:      "conversations_pruned_total",
			Help:      "Conversation summaries removed by the retention job",
		},
	)

	// Mood check-ins
	MoodCheckinsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "djigbo",
			Subsystem: "api",
			Name:      "mood_checkins_total",
			Help:      "Total mood check-ins recorded",
		},
	)
)

// RecordRequest records an HTTP request and its duration.
func RecordRequest(method, endpoint, status string, durationSec float64) {
	RequestsTotal.WithLabelValues(method, endpoint, status).Inc()
	RequestDuration.WithLabelValues(method, endpoint, status).Observe(durationSec)
}

// RecordChatTurn records a chat turn outcome.
func RecordChatTurn(provider, status string) {
	ChatTurnsTotal.WithLabelValues(provider, status).Inc()
}

// RecordLLMDuration records the duration of a model inference call.
func RecordLLMDuration(provider string, durationSec float64) {
	LLMDuration.WithLabelValues(provider).Observe(durationSec)
}

// RecordProviderError records a model provider failure.
func RecordProviderError(provider string) {
	ProviderErrorsTotal.WithLabelValues(provider).Inc()
}

// RecordAuth records an authentication attempt.
func RecordAuth(status string) {
	AuthRequestsTotal.WithLabelValues(status).Inc()
}
