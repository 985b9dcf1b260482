package search

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"hatparse/alg/transition"
)

// Metrics counts sentences, steps and failures of the driver loops. A nil
// *Metrics records nothing.
type Metrics struct {
	sentences *prometheus.CounterVec
	failures  *prometheus.CounterVec
	steps     *prometheus.HistogramVec
}

// NewMetrics registers the collectors with reg
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		sentences: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hatparse_sentences_total",
				Help: "Total number of sentences run through a driver loop",
			},
			[]string{"mode", "system"},
		),
		failures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hatparse_sentence_failures_total",
				Help: "Total number of sentences that failed, by error kind",
			},
			[]string{"mode", "system", "kind"},
		),
		steps: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "hatparse_sentence_steps",
				Help:    "Number of actions applied per sentence",
				Buckets: prometheus.ExponentialBuckets(4, 2, 9),
			},
			[]string{"mode", "system"},
		),
	}
}

// Observed records one sentence of the given mode (observe, parse, replay)
func (m *Metrics) Observed(mode, system string, steps int, err error) {
	if m == nil {
		return
	}
	m.sentences.WithLabelValues(mode, system).Inc()
	m.steps.WithLabelValues(mode, system).Observe(float64(steps))
	if err != nil {
		m.failures.WithLabelValues(mode, system, transition.ErrorKind(err)).Inc()
	}
}
