package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Connection metrics
	ConnectionsOpen = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "skyd_connections_open",
			Help: "Number of currently open client connections",
		},
	)

	ConnectionsAcceptedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "skyd_connections_accepted_total",
			Help: "Total number of client connections accepted",
		},
	)

	ConnectionsRejectedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "skyd_connections_rejected_total",
			Help: "Total number of connections rejected at the admission gate",
		},
	)

	// Query metrics
	QueriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "skyd_queries_total",
			Help: "Total number of queries executed by verb and outcome",
		},
		[]string{"verb", "outcome"},
	)

	QueryDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "skyd_query_duration_seconds",
			Help:    "Query execution duration in seconds by verb",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"verb"},
	)

	// Keyspace/table metrics
	KeyspacesTotal = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "skyd_keyspaces_total",
			Help: "Total number of keyspaces",
		},
	)

	TablesTotal = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "skyd_tables_total",
			Help: "Total number of tables across all keyspaces",
		},
	)

	KeysTotal = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "skyd_keys_total",
			Help: "Total number of keys by keyspace and table",
		},
		[]string{"keyspace", "table"},
	)

	// Persistence metrics
	FlushCyclesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "skyd_flush_cycles_total",
			Help: "Total number of bgsave flush cycles by outcome",
		},
		[]string{"outcome"},
	)

	FlushDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "skyd_flush_duration_seconds",
			Help:    "Time taken to complete a flush cycle in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	SnapshotsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "skyd_snapshots_total",
			Help: "Total number of snapshot attempts by outcome",
		},
		[]string{"outcome"},
	)

	SnapshotDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "skyd_snapshot_duration_seconds",
			Help:    "Time taken to write a snapshot in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	// Poison/failsafe state
	StorePoisoned = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "skyd_store_poisoned",
			Help: "Whether the store is poisoned after a failed flush (1 = poisoned, 0 = healthy)",
		},
	)

	// Auth metrics
	AuthFailuresTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "skyd_auth_failures_total",
			Help: "Total number of failed AUTH attempts",
		},
	)

	UsersTotal = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "skyd_users_total",
			Help: "Total number of registered users",
		},
	)
)

func init() {
	prometheus.MustRegister(ConnectionsOpen)
	prometheus.MustRegister(ConnectionsAcceptedTotal)
	prometheus.MustRegister(ConnectionsRejectedTotal)
	prometheus.MustRegister(QueriesTotal)
	prometheus.MustRegister(QueryDuration)
	prometheus.MustRegister(KeyspacesTotal)
	prometheus.MustRegister(TablesTotal)
	prometheus.MustRegister(KeysTotal)
	prometheus.MustRegister(FlushCyclesTotal)
	prometheus.MustRegister(FlushDuration)
	prometheus.MustRegister(SnapshotsTotal)
	prometheus.MustRegister(SnapshotDuration)
	prometheus.MustRegister(StorePoisoned)
	prometheus.MustRegister(AuthFailuresTotal)
	prometheus.MustRegister(UsersTotal)
}

// Handler returns the Prometheus HTTP handler
func Handler() http.Handler {
	return promhttp.Handler()
}

// Timer is a helper for timing operations
type Timer struct {
	start time.Time
}

// NewTimer creates a new timer
func NewTimer() *Timer {
	return &Timer{start: time.Now()}
}

// ObserveDuration records the duration to a histogram
func (t *Timer) ObserveDuration(histogram prometheus.Histogram) {
	duration := time.Since(t.start).Seconds()
	histogram.Observe(duration)
}

// ObserveDurationVec records the duration to a histogram vec with labels
func (t *Timer) ObserveDurationVec(histogram prometheus.ObserverVec, labels ...string) {
	duration := time.Since(t.start).Seconds()
	histogram.WithLabelValues(labels...).Observe(duration)
}

// Duration returns the elapsed time since timer started
func (t *Timer) Duration() time.Duration {
	return time.Since(t.start)
}
