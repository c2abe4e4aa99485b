package metrics

import "github.com/prometheus/client_golang/prometheus"

// Retrieval and benchmark Prometheus metrics.
var (
	RetrievalQueriesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "lexidex",
			Name:      "retrieval_queries_total",
			Help:      "Total number of retrieval queries",
		},
	)

	RetrievalSlicesIngested = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "lexidex",
			Name:      "retrieval_slices_ingested_total",
			Help:      "Total knowledge slices ingested into the index",
		},
	)

	RetrievalHitsReturned = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "lexidex",
			Name:      "retrieval_hits_returned",
			Help:      "Hits returned per retrieval query",
			Buckets:   []float64{0, 1, 2, 3, 5, 10, 20, 50},
		},
	)

	BenchmarkRunDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "lexidex",
			Name:      "benchmark_run_duration_seconds",
			Help:      "Benchmark suite duration per adapter in seconds",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		},
		[]string{"adapter"},
	)
)

// RegisterRetrievalMetrics registers the retrieval metric collectors with the
// default registry. Called once from the composition root; no init() so the
// benchmark CLI can opt out.
func RegisterRetrievalMetrics() {
	prometheus.MustRegister(
		RetrievalQueriesTotal,
		RetrievalSlicesIngested,
		RetrievalHitsReturned,
		BenchmarkRunDuration,
	)
}
