// Package telemetry wires prometheus counters and gauges around chain
// operations. A *ChainMetrics is always safe to use nil: every method
// guards itself so that a Chain built without a metrics collaborator
// never hits a nil-pointer dereference, mirroring the nil-safe optional
// collaborator pattern the teacher's health monitor uses.
package telemetry

import "github.com/prometheus/client_golang/prometheus"

// ChainMetrics groups the counters and gauges a Chain backend reports.
type ChainMetrics struct {
	appendsTotal      prometheus.Counter
	appendErrorsTotal prometheus.Counter
	chainLength       prometheus.Gauge
	blockRecordsTotal prometheus.Counter
}

// NewChainMetrics registers and returns a ChainMetrics on reg. Pass
// prometheus.DefaultRegisterer for the global registry, or a dedicated
// *prometheus.Registry in tests to avoid duplicate-registration panics
// across test runs.
func NewChainMetrics(reg prometheus.Registerer, chainName string) *ChainMetrics {
	labels := prometheus.Labels{"chain": chainName}

	m := &ChainMetrics{
		appendsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "blockify_chain_appends_total",
			Help:        "Total number of successful chain appends.",
			ConstLabels: labels,
		}),
		appendErrorsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "blockify_chain_append_errors_total",
			Help:        "Total number of failed chain append attempts.",
			ConstLabels: labels,
		}),
		chainLength: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "blockify_chain_length",
			Help:        "Current number of blocks on the chain.",
			ConstLabels: labels,
		}),
		blockRecordsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "blockify_block_records_total",
			Help:        "Total number of records committed across all appended blocks.",
			ConstLabels: labels,
		}),
	}

	reg.MustRegister(m.appendsTotal, m.appendErrorsTotal, m.chainLength, m.blockRecordsTotal)
	return m
}

// ObserveAppend records a successful append of a block holding
// recordCount records, landing the chain at newLength.
func (m *ChainMetrics) ObserveAppend(recordCount int, newLength uint64) {
	if m == nil {
		return
	}
	m.appendsTotal.Inc()
	m.blockRecordsTotal.Add(float64(recordCount))
	m.chainLength.Set(float64(newLength))
}

// ObserveAppendError records a failed append attempt.
func (m *ChainMetrics) ObserveAppendError() {
	if m == nil {
		return
	}
	m.appendErrorsTotal.Inc()
}

// SetLength sets the chain-length gauge directly, used when a backend
// is opened against existing data and needs to seed the gauge before
// the first append.
func (m *ChainMetrics) SetLength(length uint64) {
	if m == nil {
		return
	}
	m.chainLength.Set(float64(length))
}
