// Package metrics exposes Prometheus collectors for password generation and analysis.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "passforge"

// Metrics owns a private registry so several instances can coexist in tests.
type Metrics struct {
	registry *prometheus.Registry

	// generations counts generation calls.
	// Labels: preset, outcome (success, exhausted, invalid, error)
	generations *prometheus.CounterVec

	// attempts is the number of candidates drawn per successful password.
	attempts prometheus.Histogram

	// generationDuration measures a single Generate call.
	generationDuration prometheus.Histogram

	// analyses counts analyses by strength score.
	// Labels: score (1-5)
	analyses *prometheus.CounterVec

	// entropy is the distribution of estimated entropy in bits.
	entropy prometheus.Histogram

	// dictionaryWords is the size of the active weak-password list.
	dictionaryWords prometheus.Gauge

	// httpRequests counts API requests.
	// Labels: method, route, status
	httpRequests *prometheus.CounterVec
}

// New registers all collectors, plus Go and process collectors, on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		generations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "generations_total",
			Help:      "Total password generation calls by preset and outcome",
		}, []string{"preset", "outcome"}),
		attempts: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "generation_attempts",
			Help:      "Candidates drawn before a compliant password was found",
			Buckets:   []float64{1, 2, 3, 5, 10, 20, 50, 100},
		}),
		generationDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "generation_duration_seconds",
			Help:      "Time spent generating a single password",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 10),
		}),
		analyses: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "analyses_total",
			Help:      "Total strength analyses by score",
		}, []string{"score"}),
		entropy: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "entropy_bits",
			Help:      "Estimated entropy of analyzed passwords in bits",
			Buckets:   []float64{28, 36, 60, 80, 100, 128, 256},
		}),
		dictionaryWords: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "dictionary_words",
			Help:      "Number of words in the active weak-password dictionary",
		}),
		httpRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests by method, route and status",
		}, []string{"method", "route", "status"}),
	}
}

// ObserveGeneration records one generation call. attempts is ignored unless outcome is success.
func (m *Metrics) ObserveGeneration(preset, outcome string, attempts int, elapsed time.Duration) {
	m.generations.WithLabelValues(preset, outcome).Inc()
	m.generationDuration.Observe(elapsed.Seconds())
	if outcome == "success" {
		m.attempts.Observe(float64(attempts))
	}
}

func (m *Metrics) ObserveAnalysis(score int, entropyBits float64) {
	m.analyses.WithLabelValues(strconv.Itoa(score)).Inc()
	m.entropy.Observe(entropyBits)
}

func (m *Metrics) SetDictionaryWords(n int) {
	m.dictionaryWords.Set(float64(n))
}

func (m *Metrics) ObserveHTTPRequest(method, route string, status int) {
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
}

// Registry exposes the underlying registry for gathering in tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
