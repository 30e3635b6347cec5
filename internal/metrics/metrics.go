// Package metrics defines the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "splitconsole"

// Metrics groups the service collectors.
type Metrics struct {
	RPCRequests    *prometheus.CounterVec
	RPCDuration    *prometheus.HistogramVec
	Computations   prometheus.Counter
	Suggestions    prometheus.Histogram
	SkippedRecords *prometheus.CounterVec
	SettledEntries prometheus.Counter
}

// New registers the collectors with reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		RPCRequests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rpc_requests_total",
			Help:      "RPC calls by procedure and result code.",
		}, []string{"procedure", "code"}),
		RPCDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "rpc_duration_seconds",
			Help:      "RPC latency by procedure.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"procedure"}),
		Computations: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "balance_computations_total",
			Help:      "Settlement engine runs.",
		}),
		Suggestions: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "settlement_suggestions",
			Help:      "Number of suggested transfers per engine run.",
			Buckets:   []float64{0, 1, 2, 3, 5, 8, 13, 21},
		}),
		SkippedRecords: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "skipped_records_total",
			Help:      "Ledger records left out of a computation, by reason.",
		}, []string{"reason"}),
		SettledEntries: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "settled_entries_total",
			Help:      "Split entries marked settled.",
		}),
	}
}
