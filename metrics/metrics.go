package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry holds the application-specific Prometheus collectors.
	Registry = prometheus.NewRegistry()

	httpInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "calo",
			Subsystem: "http",
			Name:      "inflight_requests",
			Help:      "Current number of in-flight HTTP requests.",
		},
	)

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "calo",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"method", "path", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "calo",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10), // 5ms to ~5s
		},
		[]string{"method", "path"},
	)

	menuGenerations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "calo",
			Subsystem: "menus",
			Name:      "generations_total",
			Help:      "Total number of menu generations by outcome.",
		},
		[]string{"outcome"}, // "active" | "fallback"
	)

	menuGenerationDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "calo",
			Subsystem: "menus",
			Name:      "generation_duration_seconds",
			Help:      "Duration of background menu enhancement.",
			Buckets:   prometheus.ExponentialBuckets(0.5, 2, 8), // 0.5s to ~64s
		},
	)

	remindersDispatched = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "calo",
			Subsystem: "notifications",
			Name:      "reminders_dispatched_total",
			Help:      "Total number of scheduled reminders dispatched.",
		},
		[]string{"kind"}, // meal type or "menu_expiry"
	)
)

func init() {
	Registry.MustRegister(
		httpInFlight,
		httpRequests,
		httpDuration,
		menuGenerations,
		menuGenerationDuration,
		remindersDispatched,
	)
}

// Handler serves the registry on /metrics.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

func ObserveHTTP(method, path, status string, seconds float64) {
	httpRequests.WithLabelValues(method, path, status).Inc()
	httpDuration.WithLabelValues(method, path).Observe(seconds)
}

func HTTPInFlightInc() { httpInFlight.Inc() }
func HTTPInFlightDec() { httpInFlight.Dec() }

func ObserveMenuGeneration(outcome string, seconds float64) {
	menuGenerations.WithLabelValues(outcome).Inc()
	menuGenerationDuration.Observe(seconds)
}

func ReminderDispatched(kind string) {
	remindersDispatched.WithLabelValues(kind).Inc()
}
