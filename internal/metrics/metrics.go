// Package metrics exports gas/block/peer counters in Prometheus text
// format, the way n42blockchain's node carries github.com/VictoriaMetrics/metrics
// for its own operational counters.
package metrics

import (
	"io"

	"github.com/VictoriaMetrics/metrics"
)

var (
	blocksSealed  = metrics.NewCounter("tinychain_blocks_sealed_total")
	callsExecuted = metrics.NewCounter("tinychain_calls_executed_total")
	callsReverted = metrics.NewCounter("tinychain_calls_reverted_total")
	gasUsedTotal  = metrics.NewCounter("tinychain_gas_used_total")
)

// RecordCall updates the per-call counters after the VM finishes running.
func RecordCall(gasUsed uint64, reverted bool) {
	callsExecuted.Inc()
	gasUsedTotal.Add(int(gasUsed))
	if reverted {
		callsReverted.Inc()
	}
}

// RecordBlock increments the sealed-block counter.
func RecordBlock() { blocksSealed.Inc() }

// SetPeerCount registers a gauge reporting the live peer count, reading it
// lazily from fn each scrape — grounded on the gauge-callback pattern
// VictoriaMetrics/metrics itself documents for "current value" metrics.
func SetPeerCount(fn func() float64) {
	metrics.NewGauge("tinychain_peer_count", fn)
}

// WritePrometheus writes every registered metric in Prometheus exposition
// format to w, for internal/rpc's /metrics endpoint.
func WritePrometheus(w io.Writer) {
	metrics.WritePrometheus(w, true)
}
