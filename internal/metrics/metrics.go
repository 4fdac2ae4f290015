package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors for the monitor pipeline.
type Metrics struct {
	EventsRecorded    *prometheus.CounterVec
	AlertsTriggered   *prometheus.CounterVec
	AlertFailures     *prometheus.CounterVec
	PublishErrors     prometheus.Counter
	BufferSize        prometheus.Gauge
	AlertsRedelivered prometheus.Counter
}

// New registers and returns all collectors on the default registry.
func New() *Metrics {
	return &Metrics{
		EventsRecorded: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "sentinel_events_recorded_total",
			Help: "Security events recorded, by event type and severity",
		}, []string{"type", "severity"}),
		AlertsTriggered: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "sentinel_alerts_triggered_total",
			Help: "Alert dispatches triggered, by event type",
		}, []string{"type"}),
		AlertFailures: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "sentinel_alert_failures_total",
			Help: "Alert deliveries that failed, by channel",
		}, []string{"channel"}),
		PublishErrors: promauto.NewCounter(prometheus.CounterOpts{
			Name: "sentinel_event_publish_errors_total",
			Help: "Event bus publish errors",
		}),
		BufferSize: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "sentinel_event_buffer_size",
			Help: "Current number of events held in the in-memory buffer",
		}),
		AlertsRedelivered: promauto.NewCounter(prometheus.CounterOpts{
			Name: "sentinel_alerts_redelivered_total",
			Help: "Dead-lettered alerts delivered on retry",
		}),
	}
}
