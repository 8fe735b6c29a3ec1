package metrics

import (
	"fmt"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/vsinha/botplan/pkg/application/dto"
)

const (
	// Namespace for all metrics
	namespace = "botplan"
	// Subsystem for search metrics
	subsystem = "search"
)

// SearchMetricsCollector handles all blueprint search metrics
type SearchMetricsCollector struct {
	searchDuration *prometheus.HistogramVec
	searchesTotal  *prometheus.CounterVec
	statesExplored prometheus.Counter
	statesPruned   *prometheus.CounterVec
	bestYield      *prometheus.GaugeVec
}

// NewSearchMetricsCollector creates a new search metrics collector
func NewSearchMetricsCollector() *SearchMetricsCollector {
	return &SearchMetricsCollector{
		searchDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "duration_seconds",
				Help:      "Blueprint search duration distribution",
				Buckets:   []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1.0, 5.0, 30.0, 120.0},
			},
			[]string{"status"},
		),

		searchesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "searches_total",
				Help:      "Total number of blueprint searches by status",
			},
			[]string{"status"},
		),

		statesExplored: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "states_explored_total",
				Help:      "Total number of search states expanded",
			},
		),

		statesPruned: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "candidates_pruned_total",
				Help:      "Total number of build candidates discarded, by pruning rule",
			},
			[]string{"rule"},
		),

		bestYield: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "best_yield",
				Help:      "Best terminal resource yield of the latest search per blueprint",
			},
			[]string{"blueprint"},
		),
	}
}

// Register registers all search metrics with a Prometheus registry
func (c *SearchMetricsCollector) Register(reg prometheus.Registerer) error {
	metrics := []prometheus.Collector{
		c.searchDuration,
		c.searchesTotal,
		c.statesExplored,
		c.statesPruned,
		c.bestYield,
	}

	for _, metric := range metrics {
		if err := reg.Register(metric); err != nil {
			return fmt.Errorf("failed to register search metric: %w", err)
		}
	}

	return nil
}

// RecordSearch records the outcome of one blueprint search
func (c *SearchMetricsCollector) RecordSearch(result dto.SearchResult) {
	status := "complete"
	if result.Truncated {
		status = "truncated"
	}

	c.searchDuration.WithLabelValues(status).Observe(result.Duration.Seconds())
	c.searchesTotal.WithLabelValues(status).Inc()
	c.statesExplored.Add(float64(result.StatesExplored))
	for rule, n := range result.StatesPruned {
		c.statesPruned.WithLabelValues(rule).Add(float64(n))
	}
	c.bestYield.WithLabelValues(strconv.Itoa(result.BlueprintID)).Set(float64(result.Yield))
}

// WriteFile writes every metric gathered by g to path in the text exposition format
func WriteFile(path string, g prometheus.Gatherer) error {
	if err := prometheus.WriteToTextfile(path, g); err != nil {
		return fmt.Errorf("failed to write metrics to %s: %w", path, err)
	}
	return nil
}
