// Package metrics expone métricas Prometheus de las confirmaciones de reubicaciones.
package metrics

import (
	"time"

	"github.com/jhoicas/stock-relocation/internal/application/relocation"
	"github.com/prometheus/client_golang/prometheus"
)

var _ relocation.ConfirmMetrics = (*ConfirmMetrics)(nil)

// ConfirmMetrics contadores de reubicaciones confirmadas/rechazadas y duración de cada lote.
type ConfirmMetrics struct {
	relocations *prometheus.CounterVec
	duration    prometheus.Histogram
}

// NewConfirmMetrics registra las métricas en reg.
func NewConfirmMetrics(reg prometheus.Registerer) *ConfirmMetrics {
	m := &ConfirmMetrics{
		relocations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "stock",
			Subsystem: "relocation",
			Name:      "confirmations_total",
			Help:      "Reubicaciones procesadas al confirmar, por resultado.",
		}, []string{"result"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "stock",
			Subsystem: "relocation",
			Name:      "confirm_duration_seconds",
			Help:      "Duración de cada confirmación por lotes.",
			Buckets:   prometheus.DefBuckets,
		}),
	}
	reg.MustRegister(m.relocations, m.duration)
	return m
}

// ObserveConfirm registra el resultado de una confirmación.
func (m *ConfirmMetrics) ObserveConfirm(confirmed, rejected int, elapsed time.Duration) {
	m.relocations.WithLabelValues("confirmed").Add(float64(confirmed))
	m.relocations.WithLabelValues("rejected").Add(float64(rejected))
	m.duration.Observe(elapsed.Seconds())
}
