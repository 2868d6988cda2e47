package metrics_test

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-relocation/internal/infrastructure/metrics"
)

func TestObserveConfirm(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.NewConfirmMetrics(reg)

	m.ObserveConfirm(2, 1, 150*time.Millisecond)
	m.ObserveConfirm(1, 0, 50*time.Millisecond)

	families, err := reg.Gather()
	require.NoError(t, err)

	counts := map[string]float64{}
	var observations uint64
	for _, mf := range families {
		switch mf.GetName() {
		case "stock_relocation_confirmations_total":
			for _, metric := range mf.GetMetric() {
				for _, lp := range metric.GetLabel() {
					if lp.GetName() == "result" {
						counts[lp.GetValue()] = metric.GetCounter().GetValue()
					}
				}
			}
		case "stock_relocation_confirm_duration_seconds":
			observations = mf.GetMetric()[0].GetHistogram().GetSampleCount()
		}
	}
	assert.Equal(t, 3.0, counts["confirmed"])
	assert.Equal(t, 1.0, counts["rejected"])
	assert.Equal(t, uint64(2), observations)
}

func TestNewConfirmMetrics_RegistroDuplicado(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics.NewConfirmMetrics(reg)
	assert.Panics(t, func() { metrics.NewConfirmMetrics(reg) })
}
