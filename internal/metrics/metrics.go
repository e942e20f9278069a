// Package metrics exposes Prometheus instrumentation for the visibility
// engine: progress, durations, and worker occupancy for long batch runs.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	timestepsCompleted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "eorsky_timesteps_completed_total",
			Help: "Total number of time samples fully reduced to visibilities.",
		},
	)

	visibilityDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "eorsky_visibility_duration_seconds",
			Help:    "Wall-clock duration of complete visibility computations.",
			Buckets: prometheus.ExponentialBuckets(0.1, 4, 10),
		},
	)

	workersActive = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "eorsky_workers_active",
			Help: "Number of worker goroutines in the current computation.",
		},
	)

	pixelsSelected = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "eorsky_pixels_selected",
			Help:    "Number of sky pixels selected per pointing by the disc query.",
			Buckets: prometheus.ExponentialBuckets(64, 4, 10),
		},
	)
)

func init() {
	prometheus.MustRegister(timestepsCompleted)
	prometheus.MustRegister(visibilityDuration)
	prometheus.MustRegister(workersActive)
	prometheus.MustRegister(pixelsSelected)
}

// Handler returns the Prometheus metrics HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

// TimestepCompleted records one fully reduced time sample.
func TimestepCompleted() {
	timestepsCompleted.Inc()
}

// RecordComputation records the duration of a complete visibility run.
func RecordComputation(d time.Duration) {
	visibilityDuration.Observe(d.Seconds())
}

// SetWorkersActive records the size of the current worker fan-out.
func SetWorkersActive(n int) {
	workersActive.Set(float64(n))
}

// RecordPixelsSelected records the pixel count of one disc query.
func RecordPixelsSelected(n int) {
	pixelsSelected.Observe(float64(n))
}
