package live

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// metrics holds the Prometheus metrics for the live channel.
type metrics struct {
	changesSent    prometheus.Counter
	activeSessions prometheus.Gauge
	renderDuration prometheus.Histogram
	wsErrors       *prometheus.CounterVec
}

var (
	globalMetrics     *metrics
	globalMetricsOnce sync.Once
)

// getMetrics lazily registers the metrics on the default registerer.
func getMetrics() *metrics {
	globalMetricsOnce.Do(func() {
		globalMetrics = &metrics{
			changesSent: promauto.NewCounter(prometheus.CounterOpts{
				Namespace: "enliven",
				Name:      "changes_sent_total",
				Help:      "Total number of change records sent to clients",
			}),
			activeSessions: promauto.NewGauge(prometheus.GaugeOpts{
				Namespace: "enliven",
				Name:      "active_sessions",
				Help:      "Number of active WebSocket sessions",
			}),
			renderDuration: promauto.NewHistogram(prometheus.HistogramOpts{
				Namespace: "enliven",
				Name:      "render_duration_seconds",
				Help:      "Initial document render duration in seconds",
				Buckets:   prometheus.DefBuckets,
			}),
			wsErrors: promauto.NewCounterVec(prometheus.CounterOpts{
				Namespace: "enliven",
				Name:      "websocket_errors_total",
				Help:      "Total WebSocket errors by type",
			}, []string{"type"}),
		}
	})
	return globalMetrics
}
