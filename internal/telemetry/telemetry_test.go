package telemetry_test

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"github.com/nisaacdz/blockify/internal/telemetry"
)

func TestObserveAppendUpdatesGaugeAndCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := telemetry.NewChainMetrics(reg, "test")

	m.ObserveAppend(3, 1)
	m.ObserveAppend(2, 2)

	metrics, err := reg.Gather()
	require.NoError(t, err)

	var found bool
	for _, mf := range metrics {
		if mf.GetName() == "blockify_chain_length" {
			found = true
			require.Equal(t, float64(2), mf.Metric[0].GetGauge().GetValue())
		}
	}
	require.True(t, found)
}

func TestNilMetricsAreSafe(t *testing.T) {
	var m *telemetry.ChainMetrics
	require.NotPanics(t, func() {
		m.ObserveAppend(1, 1)
		m.ObserveAppendError()
		m.SetLength(5)
	})
}
