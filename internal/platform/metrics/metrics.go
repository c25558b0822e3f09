// internal/platform/metrics/metrics.go
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "phoneprobe"

// Valores de la etiqueta result de los intentos.
const (
	AttemptResponse = "response"
	AttemptError    = "error"
	AttemptCanceled = "canceled"
)

// Recorder agrupa los collectors en un registry propio, de modo que varias
// corridas en el mismo proceso no choquen. Un *Recorder nil no registra nada.
type Recorder struct {
	registry *prometheus.Registry

	attemptsTotal   *prometheus.CounterVec
	attemptDuration *prometheus.HistogramVec
	inflight        prometheus.Gauge
	outcomesTotal   *prometheus.CounterVec
	categoriesTotal *prometheus.CounterVec
	runDuration     prometheus.Histogram
}

// New crea un Recorder con su propio registry.
func New() *Recorder {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Recorder{
		registry: reg,
		attemptsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "probe_attempts_total",
				Help:      "Total number of transport attempts, labeled by result.",
			},
			[]string{"result"},
		),
		attemptDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "probe_attempt_duration_seconds",
				Help:      "Histogram of single attempt latencies, labeled by result.",
				Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
			},
			[]string{"result"},
		),
		inflight: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "probe_inflight",
				Help:      "Number of transport attempts currently in flight.",
			},
		),
		outcomesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "outcomes_total",
				Help:      "Final probe outcomes, labeled by category and status.",
			},
			[]string{"category", "status"},
		),
		categoriesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "categories_total",
				Help:      "Category task results, labeled by state.",
			},
			[]string{"state"},
		),
		runDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "run_duration_seconds",
				Help:      "Histogram of whole run durations.",
				Buckets:   []float64{1, 5, 15, 30, 60, 120, 300, 600},
			},
		),
	}
}

// Registry retorna el registry interno.
func (r *Recorder) Registry() *prometheus.Registry {
	if r == nil {
		return nil
	}
	return r.registry
}

// AttemptStarted marca un intento en curso.
func (r *Recorder) AttemptStarted() {
	if r == nil {
		return
	}
	r.inflight.Inc()
}

// AttemptFinished cierra un intento abierto con AttemptStarted.
func (r *Recorder) AttemptFinished(result string, d time.Duration) {
	if r == nil {
		return
	}
	r.inflight.Dec()
	r.attemptsTotal.WithLabelValues(result).Inc()
	r.attemptDuration.WithLabelValues(result).Observe(d.Seconds())
}

// ObserveOutcome cuenta un outcome final.
func (r *Recorder) ObserveOutcome(category, status string) {
	if r == nil {
		return
	}
	r.outcomesTotal.WithLabelValues(category, status).Inc()
}

// ObserveCategory cuenta una categoría terminada.
func (r *Recorder) ObserveCategory(state string) {
	if r == nil {
		return
	}
	r.categoriesTotal.WithLabelValues(state).Inc()
}

// ObserveRun registra la duración total de la corrida.
func (r *Recorder) ObserveRun(d time.Duration) {
	if r == nil {
		return
	}
	r.runDuration.Observe(d.Seconds())
}

// WriteTextfile vuelca los collectors en formato de texto para el textfile
// collector de node_exporter. Con path vacío no hace nada.
func (r *Recorder) WriteTextfile(path string) error {
	if r == nil || path == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
