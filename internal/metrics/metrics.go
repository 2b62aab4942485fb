// Package metrics records engine query metrics in a private Prometheus
// registry that can be written to a node-exporter textfile.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels.
const (
	OutcomeOK    = "ok"
	OutcomeEmpty = "empty"
	OutcomeError = "error"
)

// Recorder owns the engine's collectors. A nil *Recorder discards
// everything, so components can take one unconditionally.
type Recorder struct {
	registry *prometheus.Registry

	queries  *prometheus.CounterVec
	results  *prometheus.HistogramVec
	duration *prometheus.HistogramVec
	catalog  prometheus.Gauge
}

// New returns a Recorder with its own registry.
func New() *Recorder {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Recorder{
		registry: reg,
		queries: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "chipmatch",
				Name:      "queries_total",
				Help:      "Engine queries by operation and outcome.",
			},
			[]string{"operation", "outcome"},
		),
		results: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "chipmatch",
				Name:      "query_results",
				Help:      "Number of records returned per query.",
				Buckets:   []float64{0, 1, 2, 5, 10, 25, 50, 100},
			},
			[]string{"operation"},
		),
		duration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "chipmatch",
				Name:      "query_duration_seconds",
				Help:      "Engine query latency in seconds.",
				Buckets:   []float64{0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05},
			},
			[]string{"operation"},
		),
		catalog: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "chipmatch",
			Name:      "catalog_records",
			Help:      "Records in the loaded catalog.",
		}),
	}
}

// ObserveQuery records one finished query. A nil err with zero results
// counts as the empty outcome.
func (r *Recorder) ObserveQuery(operation string, results int, elapsed time.Duration, err error) {
	if r == nil {
		return
	}
	outcome := OutcomeOK
	switch {
	case err != nil:
		outcome = OutcomeError
	case results == 0:
		outcome = OutcomeEmpty
	}
	r.queries.WithLabelValues(operation, outcome).Inc()
	if err == nil {
		r.results.WithLabelValues(operation).Observe(float64(results))
	}
	r.duration.WithLabelValues(operation).Observe(elapsed.Seconds())
}

// SetCatalogSize records how many records the catalog holds.
func (r *Recorder) SetCatalogSize(n int) {
	if r == nil {
		return
	}
	r.catalog.Set(float64(n))
}

// Registry exposes the underlying registry, mainly for tests.
func (r *Recorder) Registry() *prometheus.Registry {
	if r == nil {
		return nil
	}
	return r.registry
}

// WriteTextfile writes every metric to path in the text exposition
// format. The write is atomic.
func (r *Recorder) WriteTextfile(path string) error {
	if r == nil || path == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
