package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	QueryDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "spdb_query_duration_seconds",
		Help:    "Statement execution latency distribution",
		Buckets: []float64{0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
	}, []string{"kind"})
	QueryTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "spdb_queries_total",
		Help: "Total number of executed statements",
	}, []string{"kind", "status"})
	DBUp = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "spdb_db_up",
		Help: "Database connectivity (1=up,0=down)",
	})
)
