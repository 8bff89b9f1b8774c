package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// MintMetrics records outcomes and latency of item creation orders.
type MintMetrics struct {
	duration *prometheus.HistogramVec
	success  *prometheus.CounterVec
	failure  *prometheus.CounterVec
	timeout  prometheus.Counter
}

// NewMintMetrics registers the mint metrics on the provided registerer.
func NewMintMetrics(reg prometheus.Registerer) *MintMetrics {
	if reg == nil {
		return &MintMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "mint_duration_seconds",
		Help:    "Time from order submission to finalized mint in seconds.",
		Buckets: []float64{1, 2.5, 5, 10, 20, 30, 60, 120},
	}, []string{"kind"})
	success := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "mint_success",
		Help: "Finalized creation orders.",
	}, []string{"kind"})
	failure := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "mint_failure",
		Help: "Failed creation orders.",
	}, []string{"kind"})
	timeout := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "mint_poll_timeout",
		Help: "Creation orders abandoned after the poll deadline.",
	})
	reg.MustRegister(duration, success, failure, timeout)
	return &MintMetrics{
		duration: duration,
		success:  success,
		failure:  failure,
		timeout:  timeout,
	}
}

// ObserveDuration records how long the named order kind took to finalize.
func (m *MintMetrics) ObserveDuration(kind string, duration time.Duration) {
	if m == nil || m.duration == nil {
		return
	}
	m.duration.WithLabelValues(normalizeLabel(kind)).Observe(duration.Seconds())
}

// IncSuccess increments the finalized counter for the named order kind.
func (m *MintMetrics) IncSuccess(kind string) {
	if m == nil || m.success == nil {
		return
	}
	m.success.WithLabelValues(normalizeLabel(kind)).Inc()
}

// IncFailure increments the failure counter for the named order kind.
func (m *MintMetrics) IncFailure(kind string) {
	if m == nil || m.failure == nil {
		return
	}
	m.failure.WithLabelValues(normalizeLabel(kind)).Inc()
}

// IncTimeout increments the poll deadline counter.
func (m *MintMetrics) IncTimeout() {
	if m == nil || m.timeout == nil {
		return
	}
	m.timeout.Inc()
}

func normalizeLabel(kind string) string {
	if kind == "" {
		return "unknown"
	}
	return kind
}
