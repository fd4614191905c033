package metrics

import (
	"regexp"
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// RequestDuration tracks HTTP request duration in seconds by method, path, status.
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// RequestTotal counts HTTP requests by method, path, status.
	RequestTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// ReminderJobs is the number of reminder jobs currently registered with the scheduler.
	ReminderJobs = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "reminder_jobs",
			Help: "Number of registered reminder jobs",
		},
	)

	// ReminderDispatchTotal counts reminder firings by kind (daily, weekly) and result (sent, skipped, error).
	ReminderDispatchTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reminder_dispatch_total",
			Help: "Total number of reminder dispatch attempts by kind and result",
		},
		[]string{"kind", "result"},
	)
)

var (
	numericPathSegment = regexp.MustCompile(`/[0-9]+(/|$)`)
	initOnce           sync.Once
)

func init() {
	initOnce.Do(func() {
		prometheus.MustRegister(RequestDuration, RequestTotal, ReminderJobs, ReminderDispatchTotal)
	})
}

// NormalizePath reduces cardinality by replacing numeric path segments with {id}.
// E.g. /entries/123 -> /entries/{id}.
func NormalizePath(path string) string {
	return numericPathSegment.ReplaceAllString(path, "/{id}$1")
}

// RecordRequest records duration and count for an HTTP request.
func RecordRequest(method, path string, statusCode int, durationSeconds float64) {
	path = NormalizePath(path)
	status := strconv.Itoa(statusCode)
	RequestDuration.WithLabelValues(method, path, status).Observe(durationSeconds)
	RequestTotal.WithLabelValues(method, path, status).Inc()
}

// SetReminderJobs sets the registered reminder jobs gauge.
func SetReminderJobs(n int) {
	ReminderJobs.Set(float64(n))
}

// IncReminderDispatch counts one reminder firing.
func IncReminderDispatch(kind, result string) {
	ReminderDispatchTotal.WithLabelValues(kind, result).Inc()
}
