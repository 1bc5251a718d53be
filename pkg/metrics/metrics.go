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
		[]string{"operation", "table"},
	)

	CacheLookupCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_lookup_count",
			Help: "Total number of cache lookups",
		},
		[]string{"cache", "result"}, // result: hit, miss
	)

	TasksMarkedDueCount = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tasks_marked_due_count",
			Help: "Total number of tasks flipped to the due status by the sweeper",
		},
	)

	CascadeDeleteCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "project_cascade_delete_count",
			Help: "Total number of project cascade deletes",
		},
		[]string{"status"}, // status: success, failed
	)

	OutboxPublishedCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "outbox_published_count",
			Help: "Total number of outbox events published to MQ",
		},
		[]string{"routing_key", "status"},
	)
)

func RecordHTTPRequestDuration(method, path, status string, duration time.Duration) {
	HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

func RecordDBQueryDuration(operation, table string, duration time.Duration) {
	DBQueryDuration.WithLabelValues(operation, table).Observe(duration.Seconds())
}

func IncrementCacheLookup(cache, result string) {
	CacheLookupCount.WithLabelValues(cache, result).Inc()
}

func IncrementCascadeDelete(status string) {
	CascadeDeleteCount.WithLabelValues(status).Inc()
}

func IncrementOutboxPublished(routingKey, status string) {
	OutboxPublishedCount.WithLabelValues(routingKey, status).Inc()
}
