package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mahelper_http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "route", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "mahelper_http_request_duration_seconds",
		Help:    "Duration of HTTP requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route", "status"})

	recordsAppended = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mahelper_maintenance_records_appended_total",
		Help: "Maintenance records appended, by write path",
	}, []string{"source"})

	recordEdits = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mahelper_maintenance_record_edits_total",
		Help: "Maintenance record edits and deletes by outcome",
	}, []string{"operation", "result"})

	loginAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mahelper_login_attempts_total",
		Help: "Login attempts by identity kind and result",
	}, []string{"kind", "result"})

	selfPings = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mahelper_self_pings_total",
		Help: "Self health-check pings by result",
	}, []string{"result"})
)

// ObserveHTTPRequest records an HTTP request metric
func ObserveHTTPRequest(method, route, status string, duration time.Duration) {
	httpRequestsTotal.WithLabelValues(method, route, status).Inc()
	httpRequestDuration.WithLabelValues(method, route, status).Observe(duration.Seconds())
}

// RecordAppended counts one appended maintenance record
func RecordAppended(source string) {
	recordsAppended.WithLabelValues(source).Inc()
}

// RecordEdited counts a record edit or delete attempt
func RecordEdited(operation, result string) {
	recordEdits.WithLabelValues(operation, result).Inc()
}

// LoginAttempt counts a login attempt
func LoginAttempt(kind string, ok bool) {
	result := "failure"
	if ok {
		result = "success"
	}
	loginAttempts.WithLabelValues(kind, result).Inc()
}

// SelfPing counts a self health-check ping
func SelfPing(ok bool) {
	result := "failure"
	if ok {
		result = "success"
	}
	selfPings.WithLabelValues(result).Inc()
}
