package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "tricalc"

// RunMetrics holds the Prometheus collectors for a single run. The
// registry is process-local, never the global default, so tests and
// concurrent runs do not interfere.
type RunMetrics struct {
	registry *prometheus.Registry

	evaluationsTotal  *prometheus.CounterVec
	evaluationSeconds *prometheus.HistogramVec
	triangleRows      prometheus.Gauge
	triangleCells     prometheus.Gauge
	parseSeconds      prometheus.Histogram
}

// NewRunMetrics creates a registry and registers all run collectors.
func NewRunMetrics() *RunMetrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &RunMetrics{
		registry: reg,
		evaluationsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "evaluations_total",
			Help:      "Path evaluations by rule and outcome.",
		}, []string{"rule", "outcome"}),
		evaluationSeconds: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "evaluation_duration_seconds",
			Help:      "Wall time of a single path evaluation.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10),
		}, []string{"rule"}),
		triangleRows: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "triangle_rows",
			Help:      "Height of the loaded triangle.",
		}),
		triangleCells: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "triangle_cells",
			Help:      "Cell count of the loaded triangle.",
		}),
		parseSeconds: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "parse_duration_seconds",
			Help:      "Wall time spent parsing the input triangle.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10),
		}),
	}
}

// ObserveEvaluation records one finished evaluation for the given rule.
func (m *RunMetrics) ObserveEvaluation(rule string, d time.Duration, err error) {
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	m.evaluationsTotal.WithLabelValues(rule, outcome).Inc()
	m.evaluationSeconds.WithLabelValues(rule).Observe(d.Seconds())
}

// ObserveTriangle records the dimensions of the loaded triangle.
func (m *RunMetrics) ObserveTriangle(rows, cells int) {
	m.triangleRows.Set(float64(rows))
	m.triangleCells.Set(float64(cells))
}

// ObserveParse records the time spent parsing the input.
func (m *RunMetrics) ObserveParse(d time.Duration) {
	m.parseSeconds.Observe(d.Seconds())
}

// WriteTextfile writes the registry in Prometheus text exposition
// format, suitable for the node_exporter textfile collector.
func (m *RunMetrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}

// Registry exposes the underlying registry for tests and gathering.
func (m *RunMetrics) Registry() *prometheus.Registry {
	return m.registry
}
