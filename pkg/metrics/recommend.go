package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// Latency of the Recommend HTTP handler
	RecommendLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "recommend_latency_seconds",
		Help:    "Latency of the recommendations handler",
		Buckets: prometheus.DefBuckets,
	})

	// Total number of recommendation requests served
	RecommendRequests = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "recommend_requests_total",
		Help: "Total number of recommendation requests",
	})

	// Calls made to the text-generation endpoint
	GenerationCalls = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "recommend_generation_calls_total",
		Help: "Total number of text-generation API calls",
	})

	// Generation calls that errored, timed out or produced unusable output
	GenerationFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "recommend_generation_failures_total",
		Help: "Total number of failed or unusable text-generation calls",
	})

	// Requests that were answered (partly) by the rule fallback engine
	FallbackServed = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "recommend_fallback_served_total",
		Help: "Total number of requests served with rule-based fallback items",
	})

	// Results returned, partitioned by candidate source
	ResultsBySource = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "recommend_results_total",
		Help: "Total number of recommendation results by source",
	}, []string{"source"})
)

func Init() {
	prometheus.MustRegister(
		RecommendLatency,
		RecommendRequests,
		GenerationCalls,
		GenerationFailures,
		FallbackServed,
		ResultsBySource,
	)
}
