/*
Package metrics provides Prometheus metrics collection and exposition for skyd.

The metrics package defines and registers all skyd metrics using the Prometheus
client library, providing observability into connection load, query throughput,
flush/snapshot outcomes, and poison state. Metrics are exposed via HTTP endpoint
for scraping by Prometheus servers.

# Architecture

	┌──────────────────── METRICS SYSTEM ──────────────────────┐
	│                                                            │
	│  ┌────────────────────────────────────────────┐          │
	│  │          Prometheus Registry                │          │
	│  │  - Global DefaultRegistry                   │          │
	│  │  - MustRegister at package init             │          │
	│  └──────────────────┬─────────────────────────┘          │
	│                     │                                      │
	│  ┌──────────────────▼─────────────────────────┐          │
	│  │           Metric Categories                 │          │
	│  │                                              │          │
	│  │  Connections: open, accepted, rejected       │          │
	│  │  Queries: count by verb/outcome, duration    │          │
	│  │  Keyspaces/tables: counts, keys per table    │          │
	│  │  Persistence: flush/snapshot outcome+duration│          │
	│  │  Poison: store poisoned gauge                │          │
	│  │  Auth: failures, user count                  │          │
	│  └──────────────────┬─────────────────────────┘          │
	│                     │                                      │
	│  ┌──────────────────▼─────────────────────────┐          │
	│  │          HTTP Metrics Endpoint               │          │
	│  │  - Path: /metrics                            │          │
	│  │  - Format: Prometheus text exposition        │          │
	│  │  - Handler: promhttp.Handler()               │          │
	│  └────────────────────────────────────────────┘           │
	└────────────────────────────────────────────────────────┘

# Metrics Catalog

Connection Metrics:

skyd_connections_open:
  - Type: Gauge
  - Description: Number of currently open client connections

skyd_connections_accepted_total / skyd_connections_rejected_total:
  - Type: Counter
  - Description: Accepted connections, and connections rejected at the
    admission gate once maxcon is reached

Query Metrics:

skyd_queries_total{verb, outcome}:
  - Type: Counter
  - Labels: verb (GET, SET, ...), outcome (okay, error)

skyd_query_duration_seconds{verb}:
  - Type: Histogram
  - Description: Per-verb query execution duration

Keyspace/Table Metrics:

skyd_keyspaces_total, skyd_tables_total:
  - Type: Gauge

skyd_keys_total{keyspace, table}:
  - Type: Gauge
  - Description: Key count per table, refreshed by the collector

Persistence Metrics:

skyd_flush_cycles_total{outcome}, skyd_flush_duration_seconds:
skyd_snapshots_total{outcome}, skyd_snapshot_duration_seconds:
  - Type: Counter / Histogram

skyd_store_poisoned:
  - Type: Gauge
  - Description: 1 when the store is poisoned after a failed failsafe
    flush, 0 otherwise

Auth Metrics:

skyd_auth_failures_total, skyd_users_total:
  - Type: Counter / Gauge

# Usage

	import "github.com/skytable/skyd/pkg/metrics"

	metrics.QueriesTotal.WithLabelValues("SET", "okay").Inc()

	timer := metrics.NewTimer()
	// ... execute query ...
	timer.ObserveDurationVec(metrics.QueryDuration, "SET")

	http.Handle("/metrics", metrics.Handler())

# Integration Points

This package integrates with:

  - pkg/server: connection open/accept/reject counters, per-verb
    query counters and durations
  - cmd/skyd: poison gauge, set from the BGSAVE scheduler's poison
    callback
  - Collector: keyspace, table, key and user gauges

FlushCyclesTotal, FlushDuration, SnapshotsTotal and AuthFailuresTotal
are registered, but nothing in the repository updates them.

# Design Patterns

Package Init Registration:
  - All metrics registered in init()
  - MustRegister panics on duplicate registration

Collector Pattern:
  - A ticker-driven Collector polls the live memstore and auth
    provider on an interval and republishes their shape as gauges,
    rather than updating gauges inline on every query

# See Also

  - Prometheus documentation: https://prometheus.io/docs/
  - Prometheus client library: https://github.com/prometheus/client_golang
*/
package metrics
