package metrics

import (
	"context"
	"database/sql"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// DBQueryDuration buckets double from 1ms to about half a second.
	DBQueryDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "db_query_duration_seconds",
		Help:    "Store round trips by query name.",
		Buckets: prometheus.ExponentialBuckets(0.001, 2, 10),
	}, []string{"operation"})

	DBConnectionsActive = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "db_connections_active",
		Help: "Pool connections in use at the last sample.",
	})

	DBConnectionsIdle = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "db_connections_idle",
		Help: "Idle pool connections at the last sample.",
	})

	CircuitBreakerOpen = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "circuit_breaker_open",
		Help: "1 while the named breaker rejects calls, else 0.",
	}, []string{"circuit"})
)

// RecordDBQuery observes one store call; operation names the query, such as
// find_news or insert_news.
func RecordDBQuery(operation string, took time.Duration) {
	DBQueryDuration.WithLabelValues(operation).Observe(took.Seconds())
}

// SetCircuitBreakerOpen flips the gauge of circuit.
func SetCircuitBreakerOpen(circuit string, open bool) {
	g := CircuitBreakerOpen.WithLabelValues(circuit)
	if open {
		g.Set(1)
		return
	}
	g.Set(0)
}

// StatsSource is implemented by *sql.DB.
type StatsSource interface {
	Stats() sql.DBStats
}

func samplePool(src StatsSource) {
	s := src.Stats()
	DBConnectionsActive.Set(float64(s.InUse))
	DBConnectionsIdle.Set(float64(s.Idle))
}

// CollectDBStats samples src at once and then every interval until ctx ends.
func CollectDBStats(ctx context.Context, src StatsSource, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for samplePool(src); ; samplePool(src) {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
