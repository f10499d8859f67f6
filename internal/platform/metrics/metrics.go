// Package metrics provides Prometheus instrumentation for the scanner.
//
// All helpers are nil-safe so wiring can pass a nil *Metrics in tests
// without guarding every call site
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the scanner
type Metrics struct {
	// Candidates emitted by the generation engine, by strategy
	CandidatesGenerated *prometheus.CounterVec

	// Probe outcomes by method and availability
	ProbesTotal *prometheus.CounterVec

	// Probe latencies by method
	ProbeLatency *prometheus.HistogramVec

	// Completed scan rounds
	RoundsTotal prometheus.Counter

	// Wall time per round
	RoundDuration prometheus.Histogram

	// Confirmed-available findings
	FindingsTotal prometheus.Counter

	// Premium candidates dropped by the price ceiling
	SkippedPremiumTotal prometheus.Counter

	// State checkpoints written
	CheckpointsTotal prometheus.Counter

	// Resolution batches currently in flight
	BatchesInFlight prometheus.Gauge
}

// New creates and registers all scanner metrics on the default registry
func New() *Metrics { return NewWith(prometheus.DefaultRegisterer) }

// NewWith creates and registers all scanner metrics on reg (tests pass a fresh registry)
func NewWith(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		CandidatesGenerated: f.NewCounterVec(prometheus.CounterOpts{
			Name: "radar_candidates_generated_total",
			Help: "Total candidate names emitted, by strategy",
		}, []string{"strategy"}),

		ProbesTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "radar_probes_total",
			Help: "Total availability probes, by method and resulting availability",
		}, []string{"method", "availability"}),

		ProbeLatency: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "radar_probe_duration_seconds",
			Help:    "Duration of availability probes by method",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"method"}),

		RoundsTotal: f.NewCounter(prometheus.CounterOpts{
			Name: "radar_rounds_total",
			Help: "Total completed scan rounds",
		}),

		RoundDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "radar_round_duration_seconds",
			Help:    "Wall time spent per scan round including the pacing delay",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		}),

		FindingsTotal: f.NewCounter(prometheus.CounterOpts{
			Name: "radar_findings_total",
			Help: "Total domains confirmed available",
		}),

		SkippedPremiumTotal: f.NewCounter(prometheus.CounterOpts{
			Name: "radar_skipped_premium_total",
			Help: "Total premium domains skipped by the price ceiling",
		}),

		CheckpointsTotal: f.NewCounter(prometheus.CounterOpts{
			Name: "radar_checkpoints_total",
			Help: "Total state checkpoints written",
		}),

		BatchesInFlight: f.NewGauge(prometheus.GaugeOpts{
			Name: "radar_batches_in_flight",
			Help: "Resolution batches currently being processed",
		}),
	}
}

// IncrementCandidates records candidates emitted by a strategy
func (m *Metrics) IncrementCandidates(strategy string, n int) {
	if m != nil {
		m.CandidatesGenerated.WithLabelValues(strategy).Add(float64(n))
	}
}

// IncrementProbe records a probe outcome
func (m *Metrics) IncrementProbe(method, availability string) {
	if m != nil {
		m.ProbesTotal.WithLabelValues(method, availability).Inc()
	}
}

// ObserveProbeLatency records the duration of a probe by method
func (m *Metrics) ObserveProbeLatency(method string, d time.Duration) {
	if m != nil {
		m.ProbeLatency.WithLabelValues(method).Observe(d.Seconds())
	}
}

// IncrementRound records a completed round and its duration
func (m *Metrics) IncrementRound(d time.Duration) {
	if m != nil {
		m.RoundsTotal.Inc()
		m.RoundDuration.Observe(d.Seconds())
	}
}

// IncrementFindings records confirmed-available findings
func (m *Metrics) IncrementFindings(n int) {
	if m != nil {
		m.FindingsTotal.Add(float64(n))
	}
}

// IncrementSkippedPremium records premium candidates dropped by the ceiling
func (m *Metrics) IncrementSkippedPremium() {
	if m != nil {
		m.SkippedPremiumTotal.Inc()
	}
}

// IncrementCheckpoints records a state checkpoint write
func (m *Metrics) IncrementCheckpoints() {
	if m != nil {
		m.CheckpointsTotal.Inc()
	}
}

// BatchStarted marks a resolution batch entering flight
func (m *Metrics) BatchStarted() {
	if m != nil {
		m.BatchesInFlight.Inc()
	}
}

// BatchDone marks a resolution batch leaving flight
func (m *Metrics) BatchDone() {
	if m != nil {
		m.BatchesInFlight.Dec()
	}
}
