package metrics

import "github.com/prometheus/client_golang/prometheus"

// Retrieval and generation pipeline metrics.
var (
	RetrievalRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "satark",
			Name:      "retrieval_requests_total",
			Help:      "Total number of hybrid retrieval requests",
		},
		[]string{"collection", "status"},
	)

	RetrievalDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "satark",
			Name:      "retrieval_duration_seconds",
			Help:      "Hybrid retrieval duration in seconds",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"collection"},
	)

	RetrievalDegradedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "satark",
			Name:      "retrieval_degraded_total",
			Help:      "Retrieval requests that lost a search arm",
		},
		[]string{"arm"}, // "vector" / "keyword"
	)

	GenerationRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "satark",
			Name:      "generation_requests_total",
			Help:      "Total number of LLM generation requests",
		},
		[]string{"model", "status"},
	)

	GenerationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "satark",
			Name:      "generation_duration_seconds",
			Help:      "LLM generation duration in seconds",
			Buckets:   []float64{0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		},
		[]string{"model"},
	)

	DocumentsIngestedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "satark",
			Name:      "documents_ingested_total",
			Help:      "Total documents processed by ingestion",
		},
		[]string{"doc_type", "status"},
	)

	ChunksIndexedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "satark",
			Name:      "chunks_indexed_total",
			Help:      "Total chunks written to the vector index",
		},
		[]string{"collection"},
	)
)

var pipelineMetricsRegistered bool

// RegisterPipelineMetrics registers retrieval and generation metrics. Must be called once from main.
func RegisterPipelineMetrics() {
	if pipelineMetricsRegistered {
		return
	}
	prometheus.MustRegister(RetrievalRequestsTotal)
	prometheus.MustRegister(RetrievalDuration)
	prometheus.MustRegister(RetrievalDegradedTotal)
	prometheus.MustRegister(GenerationRequestsTotal)
	prometheus.MustRegister(GenerationDuration)
	prometheus.MustRegister(DocumentsIngestedTotal)
	prometheus.MustRegister(ChunksIndexedTotal)
	pipelineMetricsRegistered = true
}
