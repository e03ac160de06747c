// Package observability provides metrics and tracing.
package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrorRate counts Redis errors by operation type.
	RedisErrorRate = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "commons_redis_error_rate_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "commons_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// ReactionToggles counts reaction toggle outcomes by target kind.
	ReactionToggles = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "commons_reaction_toggles_total",
		Help: "Total reaction toggles by target and outcome",
	}, []string{"target", "outcome"})

	// RoleAssignments counts membership role assignments by role name.
	RoleAssignments = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "commons_role_assignments_total",
		Help: "Total membership role assignments by role",
	}, []string{"role"})
)

// TrackQuery returns a function that records query latency when called (e.g. defer).
func TrackQuery(operation, table string) func() {
	start := time.Now()
	return func() {
		DatabaseQueryLatency.WithLabelValues(operation, table).Observe(time.Since(start).Seconds())
	}
}
