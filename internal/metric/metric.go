package metric

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics counts the content lines checked by a lint run. A nil *Metrics
// counts nothing.
type Metrics struct {
	registry *prometheus.Registry
	lines    prometheus.Counter
	errors   *prometheus.CounterVec
}

// New registers the icslint counters on a registry of their own.
func New() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)
	m := &Metrics{
		registry: registry,
		lines: factory.NewCounter(prometheus.CounterOpts{
			Name: "icslint_lines_total",
			Help: "The number of unfolded content lines checked",
		}),
		errors: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "icslint_errors_total",
			Help: "The number of content lines rejected, by grammar rule",
		}, []string{"rule"}),
	}
	slog.Debug("icslint metrics registered")
	return m
}

// Line counts one checked content line.
func (m *Metrics) Line() {
	if m == nil {
		return
	}
	m.lines.Inc()
}

// Error counts one line rejected by rule.
func (m *Metrics) Error(rule string) {
	if m == nil {
		return
	}
	m.errors.WithLabelValues(rule).Inc()
}

// WriteFile writes the counters to path in the text format read by the
// node_exporter textfile collector.
func (m *Metrics) WriteFile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}
