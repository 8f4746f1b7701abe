package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	activeConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_active_connections",
			Help: "Number of active HTTP connections",
		},
	)

	reminderEmails = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reminder_emails_total",
			Help: "Reminder email attempts by result",
		},
		[]string{"result"},
	)

	remindersSynced = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reminders_synced_total",
			Help: "Reminders touched by the sync routine",
		},
		[]string{"action"},
	)

	lastSyncTimestamp = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "reminder_last_sync_timestamp_seconds",
			Help: "Unix time of the last finished reminder sync",
		},
	)
)

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// Metrics records request counts and latency labelled by the chi route pattern,
// so /api/employees/{id} is one series however many ids are requested.
func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		activeConnections.Inc()
		defer activeConnections.Dec()

		rw := &responseWriter{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(rw.statusCode)
		path := routePattern(r)

		httpRequestsTotal.WithLabelValues(r.Method, path, status).Inc()
		httpRequestDuration.WithLabelValues(r.Method, path).Observe(duration)
	})
}

func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if p := rctx.RoutePattern(); p != "" {
			return p
		}
	}
	return "unmatched"
}

// ReminderMetrics feeds the reminder pipeline counters.
type ReminderMetrics struct{}

func (ReminderMetrics) RecordReminderEmail(result string) {
	reminderEmails.WithLabelValues(result).Inc()
}

func (ReminderMetrics) RecordSync(upserted, resolved int) {
	remindersSynced.WithLabelValues("upserted").Add(float64(upserted))
	remindersSynced.WithLabelValues("resolved").Add(float64(resolved))
	lastSyncTimestamp.SetToCurrentTime()
}
