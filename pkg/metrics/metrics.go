package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		},
		[]string{"method", "path", "status"},
	)

	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database query duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12),
		},
		[]string{"command"},
	)

	ReportCacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "report_cache_hits_total",
			Help: "Report cache hits per report kind",
		},
		[]string{"kind"},
	)

	ReportCacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "report_cache_misses_total",
			Help: "Report cache misses per report kind",
		},
		[]string{"kind"},
	)

	ReportComputations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "report_computations_total",
			Help: "Reports computed against the task store per kind and outcome",
		},
		[]string{"kind", "status"}, // status: success, no_data, failed
	)

	MailsSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mails_sent_total",
			Help: "Mails sent per kind and outcome",
		},
		[]string{"kind", "status"}, // kind: verification, reset_password, reminder
	)
)

func RecordHTTPRequestDuration(method, path, status string, duration time.Duration) {
	HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

func RecordDBQueryDuration(command string, duration time.Duration) {
	DBQueryDuration.WithLabelValues(command).Observe(duration.Seconds())
}

func IncrementReportCacheHit(kind string) {
	ReportCacheHits.WithLabelValues(kind).Inc()
}

func IncrementReportCacheMiss(kind string) {
	ReportCacheMisses.WithLabelValues(kind).Inc()
}

func IncrementReportComputation(kind, status string) {
	ReportComputations.WithLabelValues(kind, status).Inc()
}

func IncrementMailSent(kind, status string) {
	MailsSent.WithLabelValues(kind, status).Inc()
}
