package metrics

import "github.com/prometheus/client_golang/prometheus"

// Recommendation pipeline Prometheus metrics.
var (
	SearchRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "assessrec",
			Name:      "search_requests_total",
			Help:      "Total number of vector search requests",
		},
		[]string{"source", "outcome"},
	)

	SearchRequestDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "assessrec",
			Name:      "search_request_duration_seconds",
			Help:      "Vector search duration in seconds",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
	)

	SearchDurationFallbackTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "assessrec",
			Name:      "search_duration_fallback_total",
			Help:      "Searches where the duration cap removed every candidate and unfiltered results were returned",
		},
	)

	GenerationRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "assessrec",
			Name:      "generation_requests_total",
			Help:      "Total number of query generation requests",
		},
		[]string{"model", "status"},
	)

	GenerationRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "assessrec",
			Name:      "generation_request_duration_seconds",
			Help:      "Query generation duration in seconds",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"model"},
	)

	ScrapeRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "assessrec",
			Name:      "scrape_requests_total",
			Help:      "Total number of job page scrape attempts",
		},
		[]string{"strategy", "status"},
	)
)

var pipelineMetricsRegistered bool

// RegisterPipelineMetrics registers recommendation pipeline metrics. Must be called once from main.
func RegisterPipelineMetrics() {
	if pipelineMetricsRegistered {
		return
	}
	prometheus.MustRegister(SearchRequestsTotal)
	prometheus.MustRegister(SearchRequestDuration)
	prometheus.MustRegister(SearchDurationFallbackTotal)
	prometheus.MustRegister(GenerationRequestsTotal)
	prometheus.MustRegister(GenerationRequestDuration)
	prometheus.MustRegister(ScrapeRequestsTotal)
	pipelineMetricsRegistered = true
}
