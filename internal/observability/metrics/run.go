package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// RunMetrics counts one CLI invocation. WriteTextfile dumps it for the
// node-exporter textfile collector.
type RunMetrics struct {
	registry *prometheus.Registry

	filesTotal        *prometheus.CounterVec
	inferenceDuration *prometheus.HistogramVec
	conversionsTotal  *prometheus.CounterVec
	movesTotal        *prometheus.CounterVec
}

func NewRunMetrics(service string) *RunMetrics {
	registry := prometheus.NewRegistry()
	constLabels := prometheus.Labels{"service": service}

	filesTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   "smartname",
			Name:        "files_total",
			Help:        "Files analyzed by mode and status.",
			ConstLabels: constLabels,
		},
		[]string{"mode", "status"},
	)
	inferenceDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace:   "smartname",
			Name:        "inference_duration_seconds",
			Help:        "Inference call duration by request shape and status.",
			Buckets:     []float64{0.5, 1, 2, 5, 10, 30, 60, 120, 300, 600},
			ConstLabels: constLabels,
		},
		[]string{"shape", "status"},
	)
	conversionsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   "smartname",
			Name:        "conversions_total",
			Help:        "External converter invocations by tool and status.",
			ConstLabels: constLabels,
		},
		[]string{"tool", "status"},
	)
	movesTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   "smartname",
			Name:        "moves_total",
			Help:        "Executed renames and moves by status.",
			ConstLabels: constLabels,
		},
		[]string{"status"},
	)

	registry.MustRegister(filesTotal, inferenceDuration, conversionsTotal, movesTotal)

	return &RunMetrics{
		registry:          registry,
		filesTotal:        filesTotal,
		inferenceDuration: inferenceDuration,
		conversionsTotal:  conversionsTotal,
		movesTotal:        movesTotal,
	}
}

func (m *RunMetrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *RunMetrics) ObserveInference(shape, status string, elapsed time.Duration) {
	m.inferenceDuration.WithLabelValues(shape, status).Observe(elapsed.Seconds())
}

func (m *RunMetrics) ObserveConversion(tool, status string) {
	m.conversionsTotal.WithLabelValues(tool, status).Inc()
}

func (m *RunMetrics) FileAnalyzed(mode string, err error) {
	m.filesTotal.WithLabelValues(mode, statusOf(err)).Inc()
}

func (m *RunMetrics) FileMoved(err error) {
	m.movesTotal.WithLabelValues(statusOf(err)).Inc()
}

// WriteTextfile writes the registry in text exposition format. An empty
// path is a no-op.
func (m *RunMetrics) WriteTextfile(path string) error {
	if path == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}

func statusOf(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}
