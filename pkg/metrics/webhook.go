package metrics

import "github.com/prometheus/client_golang/prometheus"

// WebhookMetrics records payment webhook deliveries by outcome.
type WebhookMetrics struct {
	received *prometheus.CounterVec
	rejected *prometheus.CounterVec
	replayed prometheus.Counter
}

// NewWebhookMetrics registers the webhook metrics on the provided registerer.
func NewWebhookMetrics(reg prometheus.Registerer) *WebhookMetrics {
	if reg == nil {
		return &WebhookMetrics{}
	}
	received := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "webhook_received",
		Help: "Accepted webhook deliveries by event type.",
	}, []string{"event_type"})
	rejected := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "webhook_rejected",
		Help: "Rejected webhook deliveries by reason.",
	}, []string{"reason"})
	replayed := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "webhook_replayed",
		Help: "Deliveries skipped by the idempotency guard.",
	})
	reg.MustRegister(received, rejected, replayed)
	return &WebhookMetrics{
		received: received,
		rejected: rejected,
		replayed: replayed,
	}
}

// IncReceived increments the accepted counter for the event type.
func (w *WebhookMetrics) IncReceived(eventType string) {
	if w == nil || w.received == nil {
		return
	}
	w.received.WithLabelValues(normalizeLabel(eventType)).Inc()
}

// IncRejected increments the rejected counter for the named reason.
func (w *WebhookMetrics) IncRejected(reason string) {
	if w == nil || w.rejected == nil {
		return
	}
	w.rejected.WithLabelValues(normalizeLabel(reason)).Inc()
}

// IncReplayed increments the idempotency replay counter.
func (w *WebhookMetrics) IncReplayed() {
	if w == nil || w.replayed == nil {
		return
	}
	w.replayed.Inc()
}
