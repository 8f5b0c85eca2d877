package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	CompareRequestsTotal    prometheus.Counter
	SeriesRequestsTotal     prometheus.Counter
	ConversionRequestsTotal prometheus.Counter

	ProviderFetchesTotal *prometheus.CounterVec
	CacheEventsTotal     *prometheus.CounterVec
}

func NewMetrics() *Metrics {
	return &Metrics{
		HTTPRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"path", "method", "status_code"},
		),

		HTTPRequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"path", "method"},
		),

		CompareRequestsTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "compare_requests_total",
				Help: "Total number of rate comparison requests",
			},
		),

		SeriesRequestsTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "series_requests_total",
				Help: "Total number of rate series requests",
			},
		),

		ConversionRequestsTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "conversion_requests_total",
				Help: "Total number of currency conversion requests",
			},
		),

		ProviderFetchesTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "provider_fetches_total",
				Help: "Total number of upstream provider fetches by outcome",
			},
			[]string{"provider", "outcome"},
		),

		CacheEventsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cache_events_total",
				Help: "Total number of rate cache lookups by outcome",
			},
			[]string{"cache", "event"},
		),
	}
}
