package metrics

import "github.com/prometheus/client_golang/prometheus"

// Search Prometheus metrics.
var (
	SearchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "tradehub",
			Name:      "searches_total",
			Help:      "Total number of listing searches",
		},
		[]string{"sort", "status"},
	)

	SearchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "tradehub",
			Name:      "search_duration_seconds",
			Help:      "Listing search duration in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"sort"},
	)

	SearchResultsReturned = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "tradehub",
			Name:      "search_results_returned",
			Help:      "Number of listings returned per search page",
			Buckets:   []float64{0, 1, 5, 10, 20, 50, 100},
		},
		[]string{"sort"},
	)
)

var searchMetricsRegistered bool

// RegisterSearchMetrics registers Prometheus search metrics. Must be called once from main.
func RegisterSearchMetrics() {
	if searchMetricsRegistered {
		return
	}
	prometheus.MustRegister(SearchesTotal)
	prometheus.MustRegister(SearchDuration)
	prometheus.MustRegister(SearchResultsReturned)
	searchMetricsRegistered = true
}
