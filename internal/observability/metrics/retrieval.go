package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/kirillkom/nerdvana-retrieval/internal/core/domain"
)

func (m *ServerMetrics) registerRetrieval() {
	m.resolutionTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "resolver",
			Name:      "resolutions_total",
			Help:      "Topic resolutions by source and confidence.",
		},
		[]string{"service", "source", "confidence"},
	)
	m.retrievalTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "retrieval",
			Name:      "requests_total",
			Help:      "Retrievals by mode and lexical fallback reason.",
		},
		[]string{"service", "mode", "fallback_reason"},
	)
	m.retrievalSources = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "retrieval",
			Name:      "sources",
			Help:      "Distribution of sources returned per retrieval.",
			Buckets:   []float64{0, 1, 2, 3, 4, 5, 6, 8, 12},
		},
		[]string{"service", "mode"},
	)
	m.retrievalDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "retrieval",
			Name:      "duration_seconds",
			Help:      "Retrieval duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "mode"},
	)
	m.embeddingTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "embedding",
			Name:      "requests_total",
			Help:      "Embedding calls by outcome.",
		},
		[]string{"service", "outcome"},
	)
	m.embeddingDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "embedding",
			Name:      "duration_seconds",
			Help:      "Embedding call duration in seconds.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2, 5},
		},
		[]string{"service"},
	)
	m.breakerState = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "resilience",
			Name:      "breaker_state",
			Help:      "Circuit breaker state per operation: 0 closed, 1 half-open, 2 open.",
		},
		[]string{"service", "operation"},
	)
	m.breakerTransitions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "resilience",
			Name:      "breaker_transitions_total",
			Help:      "Circuit breaker transitions by target state.",
		},
		[]string{"service", "operation", "to"},
	)
}

func (m *ServerMetrics) ObserveResolution(source domain.ContextSource, confidence domain.ContextConfidence) {
	m.resolutionTotal.WithLabelValues(m.service, string(source), string(confidence)).Inc()
}

func (m *ServerMetrics) ObserveRetrieval(mode domain.RetrievalMode, fallbackReason string, sourceCount int, duration time.Duration) {
	if fallbackReason == "" {
		fallbackReason = "none"
	}
	m.retrievalTotal.WithLabelValues(m.service, string(mode), fallbackReason).Inc()
	m.retrievalSources.WithLabelValues(m.service, string(mode)).Observe(float64(sourceCount))
	m.retrievalDuration.WithLabelValues(m.service, string(mode)).Observe(duration.Seconds())
}

func (m *ServerMetrics) ObserveEmbedding(outcome string, duration time.Duration) {
	m.embeddingTotal.WithLabelValues(m.service, outcome).Inc()
	m.embeddingDuration.WithLabelValues(m.service).Observe(duration.Seconds())
}

// ObserveBreakerState takes the state name reported by the circuit breaker.
func (m *ServerMetrics) ObserveBreakerState(operation, state string) {
	value := 0.0
	switch state {
	case "half-open":
		value = 1
	case "open":
		value = 2
	}
	m.breakerState.WithLabelValues(m.service, operation).Set(value)
	m.breakerTransitions.WithLabelValues(m.service, operation, state).Inc()
}
