package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry holds the portal's collectors. /metrics serves it.
	Registry = prometheus.NewRegistry()

	httpInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "recruitment_portal",
			Subsystem: "http",
			Name:      "inflight_requests",
			Help:      "Current number of in-flight HTTP requests.",
		},
	)

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "recruitment_portal",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"method", "route", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "recruitment_portal",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10),
		},
		[]string{"method", "route"},
	)

	workflowTransitions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "recruitment_portal",
			Subsystem: "workflow",
			Name:      "transitions_total",
			Help:      "Committed application workflow operations.",
		},
		[]string{"operation", "status"},
	)

	notificationsEmitted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "recruitment_portal",
			Name:      "notifications_emitted_total",
			Help:      "Notifications stored for delivery.",
		},
	)

	notificationDeliveries = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "recruitment_portal",
			Subsystem: "notifications",
			Name:      "deliveries_total",
			Help:      "Notification deliveries by channel and outcome.",
		},
		[]string{"channel", "success"},
	)

	jobsClosed = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "recruitment_portal",
			Subsystem: "scheduler",
			Name:      "jobs_closed_total",
			Help:      "Job postings closed after their deadline passed.",
		},
	)

	cacheLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "recruitment_portal",
			Subsystem: "cache",
			Name:      "lookups_total",
			Help:      "Job list cache lookups by result.",
		},
		[]string{"result"},
	)
)

func init() {
	Registry.MustRegister(
		httpInFlight,
		httpRequests,
		httpDuration,
		workflowTransitions,
		notificationsEmitted,
		notificationDeliveries,
		jobsClosed,
		cacheLookups,
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		prometheus.NewGoCollector(),
	)
}

// Handler returns an HTTP handler exposing the registered metrics.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

func RequestStarted() {
	httpInFlight.Inc()
}

func RequestFinished(method, route string, status int, duration time.Duration) {
	httpInFlight.Dec()
	if route == "" {
		route = "unmatched"
	}
	httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	httpDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

func RecordTransition(operation, status string) {
	workflowTransitions.WithLabelValues(operation, status).Inc()
}

func RecordNotificationsEmitted(n int) {
	if n <= 0 {
		return
	}
	notificationsEmitted.Add(float64(n))
}

func RecordDelivery(channel string, success bool) {
	notificationDeliveries.WithLabelValues(channel, strconv.FormatBool(success)).Inc()
}

func RecordJobsClosed(n int64) {
	if n <= 0 {
		return
	}
	jobsClosed.Add(float64(n))
}

func RecordCacheLookup(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	cacheLookups.WithLabelValues(result).Inc()
}
