// Package observability provides Prometheus metrics for monitoring.
package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	// Ingestion metrics
	BarsLoaded prometheus.Counter
	BarsStored prometheus.Counter
	LoadErrors *prometheus.CounterVec

	// Simulation metrics
	RunsStarted    prometheus.Counter
	RunsCompleted  prometheus.Counter
	RunsFailed     prometheus.Counter
	TradesRecorded prometheus.Counter
	RunDuration    *prometheus.HistogramVec
}

// NewMetrics creates a new Metrics instance with all metrics registered.
func NewMetrics(namespace string) *Metrics {
	if namespace == "" {
		namespace = "daily_backtest"
	}

	return &Metrics{
		BarsLoaded: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ingestion",
			Name:      "bars_loaded_total",
			Help:      "Total number of daily bars parsed from input files",
		}),
		BarsStored: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ingestion",
			Name:      "bars_stored_total",
			Help:      "Total number of daily bars stored to database",
		}),
		LoadErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ingestion",
			Name:      "load_errors_total",
			Help:      "Total number of load errors by type",
		}, []string{"error_type"}),

		RunsStarted: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "simulation",
			Name:      "runs_started_total",
			Help:      "Total number of backtest runs started",
		}),
		RunsCompleted: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "simulation",
			Name:      "runs_completed_total",
			Help:      "Total number of backtest runs completed",
		}),
		RunsFailed: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "simulation",
			Name:      "runs_failed_total",
			Help:      "Total number of backtest runs that failed",
		}),
		TradesRecorded: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "simulation",
			Name:      "trades_recorded_total",
			Help:      "Total number of realized trades recorded",
		}),
		RunDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "simulation",
			Name:      "run_duration_seconds",
			Help:      "Backtest run duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"strategy_type"}),
	}
}

// Handler returns an HTTP handler for the /metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}

// RecordRunDuration records one backtest run duration.
func (m *Metrics) RecordRunDuration(strategyType string, seconds float64) {
	m.RunDuration.WithLabelValues(strategyType).Observe(seconds)
}
