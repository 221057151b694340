package metrics

import "github.com/prometheus/client_golang/prometheus"

// Provider and search-cycle Prometheus metrics.
var (
	ProviderRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "nearby",
			Name:      "provider_requests_total",
			Help:      "Total number of upstream provider requests",
		},
		[]string{"provider", "status"},
	)

	ProviderRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "nearby",
			Name:      "provider_request_duration_seconds",
			Help:      "Upstream provider request duration in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"provider"},
	)

	ProviderErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "nearby",
			Name:      "provider_errors_total",
			Help:      "Total upstream provider errors",
		},
		[]string{"provider", "error_type"},
	)

	SearchCyclesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "nearby",
			Name:      "search_cycles_total",
			Help:      "Search cycles by outcome",
		},
		[]string{"outcome"}, // ready / no_results / error / superseded
	)

	NeighborPlaces = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "nearby",
			Name:      "neighbor_places",
			Help:      "Neighbor places currently rendered",
		},
	)
)

var providerMetricsRegistered bool

// RegisterProviderMetrics registers provider and search metrics. Must be called once from main.
func RegisterProviderMetrics() {
	if providerMetricsRegistered {
		return
	}
	prometheus.MustRegister(ProviderRequestsTotal)
	prometheus.MustRegister(ProviderRequestDuration)
	prometheus.MustRegister(ProviderErrorsTotal)
	prometheus.MustRegister(SearchCyclesTotal)
	prometheus.MustRegister(NeighborPlaces)
	providerMetricsRegistered = true
}
