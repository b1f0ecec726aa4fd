/*
Package metrics declares the Prometheus collectors exported on /metrics.
*/
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// APIRequests counts GraphQL round trips by outcome (ok, graphql_error, unauthorized, transport_error).
	APIRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "journal",
		Subsystem: "link",
		Name:      "requests_total",
		Help:      "GraphQL requests sent through the network link, by outcome.",
	}, []string{"outcome"})

	// APILatency observes GraphQL round-trip latency.
	APILatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "journal",
		Subsystem: "link",
		Name:      "request_duration_seconds",
		Help:      "Latency of GraphQL requests sent through the network link.",
		Buckets:   prometheus.DefBuckets,
	})

	// SessionMutations counts Session Store mutations by kind (set, clear, rehydrate).
	SessionMutations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "journal",
		Subsystem: "session",
		Name:      "mutations_total",
		Help:      "Session store mutations, by kind.",
	}, []string{"kind"})

	// SnapshotWrites counts snapshot write-throughs by result (ok, error).
	SnapshotWrites = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "journal",
		Subsystem: "persist",
		Name:      "snapshot_writes_total",
		Help:      "Snapshot write-throughs to durable storage, by result.",
	}, []string{"result"})

	// RehydrateOutcome records how the boot-time snapshot read ended (restored, empty, corrupt, error).
	RehydrateOutcome = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "journal",
		Subsystem: "persist",
		Name:      "rehydrations_total",
		Help:      "Boot-time snapshot reads, by outcome.",
	}, []string{"outcome"})

	// RouteDecisions counts router decisions by kind (render, redirect, loading).
	RouteDecisions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "journal",
		Subsystem: "router",
		Name:      "decisions_total",
		Help:      "Auth-gated router decisions, by kind.",
	}, []string{"kind"})

	// LiveConnections tracks open live session feed connections.
	LiveConnections = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "journal",
		Subsystem: "live",
		Name:      "connections",
		Help:      "Open live session feed connections.",
	})
)
