// Package metrics provides Prometheus metrics instrumentation.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestDuration tracks HTTP request duration.
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path", "status"},
	)

	// RequestsTotal tracks total HTTP requests.
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// BookingSubmissionsTotal counts booking submissions by mode and outcome.
	BookingSubmissionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "booking_submissions_total",
			Help: "Booking submissions by mode and result",
		},
		[]string{"mode", "result"},
	)

	// BookingDeletionsTotal counts confirmed deletions.
	BookingDeletionsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "booking_deletions_total",
			Help: "Bookings removed after confirmation",
		},
	)

	// BookingsActive tracks the size of the booking set.
	BookingsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "bookings_active",
			Help: "Number of bookings currently held",
		},
	)

	// RecommendationDuration tracks recommendation round trips.
	RecommendationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "recommendation_duration_seconds",
			Help:    "Recommendation gateway round trip duration",
			Buckets: []float64{.25, .5, 1, 2, 5, 10, 20, 30, 60},
		},
		[]string{"provider", "status"},
	)

	// LLMTokensTotal tracks total LLM tokens processed.
	LLMTokensTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "llm_tokens_total",
			Help: "Total LLM tokens processed",
		},
		[]string{"model", "direction"},
	)

	// RoomFetchTotal counts room directory refreshes by result.
	RoomFetchTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "room_fetch_total",
			Help: "Room directory fetches by result",
		},
		[]string{"result"},
	)

	// RoomsKnown tracks the size of the room directory.
	RoomsKnown = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "rooms_known",
			Help: "Number of rooms in the directory",
		},
	)

	// SSEConnectionsActive tracks active SSE connections.
	SSEConnectionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "sse_connections_active",
			Help: "Number of active SSE connections",
		},
	)
)

// RecordRequest records metrics for an HTTP request.
func RecordRequest(method, path, status string, duration float64) {
	RequestDuration.WithLabelValues(method, path, status).Observe(duration)
	RequestsTotal.WithLabelValues(method, path, status).Inc()
}

// RecordSubmission records the outcome of a booking submission.
func RecordSubmission(mode, result string) {
	BookingSubmissionsTotal.WithLabelValues(mode, result).Inc()
}

// RecordRecommendation records a recommendation round trip.
func RecordRecommendation(provider, status string, duration float64) {
	RecommendationDuration.WithLabelValues(provider, status).Observe(duration)
}

// RecordLLMTokens records token usage reported by a provider.
func RecordLLMTokens(model string, tokensIn, tokensOut int) {
	LLMTokensTotal.WithLabelValues(model, "in").Add(float64(tokensIn))
	LLMTokensTotal.WithLabelValues(model, "out").Add(float64(tokensOut))
}

// RecordRoomFetch records a room directory refresh.
func RecordRoomFetch(result string, rooms int) {
	RoomFetchTotal.WithLabelValues(result).Inc()
	if result == "success" {
		RoomsKnown.Set(float64(rooms))
	}
}

// IncrementSSEConnections increments the active SSE connection count.
func IncrementSSEConnections() {
	SSEConnectionsActive.Inc()
}

// DecrementSSEConnections decrements the active SSE connection count.
func DecrementSSEConnections() {
	SSEConnectionsActive.Dec()
}
