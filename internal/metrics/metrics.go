// Package metrics provides the centralized Prometheus registry for the
// prediction pipeline.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	registry *prometheus.Registry
	once     sync.Once
)

// Counter metrics
var (
	PipelineRunsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "fireball_picks",
		Name:      "pipeline_runs_total",
		Help:      "Total number of pipeline runs started",
	})
	PipelineFailuresTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "fireball_picks",
		Name:      "pipeline_failures_total",
		Help:      "Total number of pipeline runs that aborted",
	})
	GamesIngestedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "fireball_picks",
		Name:      "games_ingested_total",
		Help:      "Total number of game rows merged into the unified table",
	})
	SourceFetchErrorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fireball_picks",
		Name:      "source_fetch_errors_total",
		Help:      "Total number of failed source fetches, by source",
	}, []string{"source"})
	GamesScoredTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "fireball_picks",
		Name:      "games_scored_total",
		Help:      "Total number of games scored by the predictor",
	})
)

// Gauge metrics
var (
	UnifiedTableRows = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "fireball_picks",
		Name:      "unified_table_rows",
		Help:      "Current number of rows in the unified table",
	})
	TrainingRows = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "fireball_picks",
		Name:      "training_rows",
		Help:      "Number of rows the last model was trained on, by market",
	}, []string{"market"})
	BacktestAccuracy = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "fireball_picks",
		Name:      "backtest_accuracy",
		Help:      "Overall backtest accuracy from the last run, by market",
	}, []string{"market"})
)

// Registry returns the shared metrics registry, registering all metrics
// on first use
func Registry() *prometheus.Registry {
	once.Do(func() {
		registry = prometheus.NewRegistry()
		registry.MustRegister(
			PipelineRunsTotal,
			PipelineFailuresTotal,
			GamesIngestedTotal,
			SourceFetchErrorsTotal,
			GamesScoredTotal,
			UnifiedTableRows,
			TrainingRows,
			BacktestAccuracy,
		)
	})
	return registry
}

// Handler returns an HTTP handler serving the registry
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry(), promhttp.HandlerOpts{})
}
