// Package observability exposes Prometheus metrics for the webhook
// ingestion path.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics aggregates the counters published by the HTTP adapter.
type Metrics struct {
	WebhooksReceived   *prometheus.CounterVec
	ExtractionFailures *prometheus.CounterVec
	Routed             *prometheus.CounterVec
}

// NewMetrics creates and registers the ingestion counters on the given
// registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		WebhooksReceived: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "zapflow",
			Name:      "webhooks_received_total",
			Help:      "Inbound webhook payloads accepted for mapping.",
		}, []string{"mapping"}),
		ExtractionFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "zapflow",
			Name:      "extraction_failures_total",
			Help:      "Payloads where the phone field could not be extracted.",
		}, []string{"mapping"}),
		Routed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "zapflow",
			Name:      "webhooks_routed_total",
			Help:      "Mapped contacts handed to the delivery collaborator, by funnel.",
		}, []string{"mapping", "funnel"}),
	}
	reg.MustRegister(m.WebhooksReceived, m.ExtractionFailures, m.Routed)
	return m
}
