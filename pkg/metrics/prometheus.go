package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all prometheus metrics
type Metrics struct {
	LookupsTotal    prometheus.Counter
	LookupsNotFound prometheus.Counter
	ScansTotal      prometheus.Counter
	RendersTotal    *prometheus.CounterVec
	ProviderErrors  *prometheus.CounterVec
	ProviderLatency prometheus.Histogram
}

// NewMetrics creates new prometheus metrics on the default registerer.
func NewMetrics(namespace string) *Metrics {
	return NewMetricsWith(namespace, prometheus.DefaultRegisterer)
}

// NewMetricsWith creates new prometheus metrics on a specific registerer.
// Tests use this with a private registry to avoid duplicate registration.
func NewMetricsWith(namespace string, reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		LookupsTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "lookups_total",
			Help:      "The total number of flight identifier lookups",
		}),
		LookupsNotFound: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "lookups_not_found_total",
			Help:      "Lookups that produced no live flight",
		}),
		ScansTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "proximity_scans_total",
			Help:      "The total number of proximity scans",
		}),
		RendersTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "renders_total",
			Help:      "Rendered artifacts by kind",
		}, []string{"kind"}),
		ProviderErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "provider_errors_total",
			Help:      "Upstream provider failures by operation",
		}, []string{"operation"}),
		ProviderLatency: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "provider_request_seconds",
			Help:      "Round-trip time of provider requests",
			Buckets:   prometheus.DefBuckets,
		}),
	}
}
