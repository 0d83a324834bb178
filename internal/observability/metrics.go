package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "inkwell_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// SearchLatency records the latency of ranked search scoring passes.
	SearchLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "inkwell_search_latency_seconds",
		Help:    "Ranked post search latency in seconds",
		Buckets: prometheus.DefBuckets,
	})

	// SearchQueries counts search requests by outcome (results, related, empty).
	SearchQueries = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inkwell_search_queries_total",
		Help: "Total search queries by outcome",
	}, []string{"outcome"})

	// ReactionToggles counts reaction mutations by effect (added, changed, removed).
	ReactionToggles = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inkwell_reaction_toggles_total",
		Help: "Total reaction toggle mutations by effect",
	}, []string{"effect"})

	// CommentsCountDrift counts posts whose comments counter needed repair
	// during a reconcile sweep.
	CommentsCountDrift = promauto.NewCounter(prometheus.CounterOpts{
		Name: "inkwell_comments_count_drift_total",
		Help: "Posts whose comments_count was repaired by reconciliation",
	})
)

// ObserveQuery records the latency of a database query.
func ObserveQuery(operation, table string, start time.Time) {
	DatabaseQueryLatency.WithLabelValues(operation, table).Observe(time.Since(start).Seconds())
}
