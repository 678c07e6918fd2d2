package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics exposes Prometheus collectors for the batch pipeline.
type Metrics struct {
	eventsValid   prometheus.Counter
	eventsDropped *prometheus.CounterVec
	alertsTotal   prometheus.Counter
	services      prometheus.Gauge
}

// NewMetrics creates the heartwatch collectors and registers them on
// the default registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		eventsValid: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "heartwatch_events_valid_total",
			Help: "Raw records that passed validation.",
		}),
		eventsDropped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "heartwatch_events_dropped_total",
			Help: "Raw records dropped during validation, by reason.",
		}, []string{"reason"}),
		alertsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "heartwatch_alerts_total",
			Help: "Missed-heartbeat alerts generated.",
		}),
		services: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "heartwatch_services",
			Help: "Distinct services observed in the last batch.",
		}),
	}

	prometheus.MustRegister(m.eventsValid, m.eventsDropped, m.alertsTotal, m.services)
	return m
}

// AddValidEvents records raw records that survived validation.
func (m *Metrics) AddValidEvents(n int) {
	m.eventsValid.Add(float64(n))
}

// AddDroppedEvents records raw records dropped for one reason.
func (m *Metrics) AddDroppedEvents(reason string, n int) {
	m.eventsDropped.WithLabelValues(reason).Add(float64(n))
}

// AddAlerts records generated alerts.
func (m *Metrics) AddAlerts(n int) {
	m.alertsTotal.Add(float64(n))
}

// SetServices records the number of distinct services in the batch.
func (m *Metrics) SetServices(n int) {
	m.services.Set(float64(n))
}
