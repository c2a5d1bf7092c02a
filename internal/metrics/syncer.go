// Package metrics holds the Prometheus collectors of the wallet daemon.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	syncTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blockinsight7000",
		Subsystem: "wallet_syncer",
		Name:      "sync_total",
		Help:      "Count of wallet sync passes.",
	}, []string{"network", "status"})

	syncDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "blockinsight7000",
		Subsystem: "wallet_syncer",
		Name:      "sync_duration_seconds",
		Help:      "Duration of a wallet sync pass.",
		Buckets:   []float64{.01, .05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60, 120, 300},
	}, []string{"network", "status"})

	syncBlocks = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "blockinsight7000",
		Subsystem: "wallet_syncer",
		Name:      "sync_blocks",
		Help:      "Number of blocks fetched per sync pass.",
		Buckets:   prometheus.ExponentialBuckets(1, 2, 14),
	}, []string{"network"})

	blockTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blockinsight7000",
		Subsystem: "wallet_syncer",
		Name:      "block_total",
		Help:      "Count of blocks scanned by the wallet.",
	}, []string{"network", "status"})

	blockDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "blockinsight7000",
		Subsystem: "wallet_syncer",
		Name:      "block_duration_seconds",
		Help:      "Duration of scanning a single block.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"network", "status"})

	walletHeight = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "blockinsight7000",
		Subsystem: "wallet_syncer",
		Name:      "height",
		Help:      "Last block height scanned by the wallet.",
	}, []string{"network"})

	reorgTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blockinsight7000",
		Subsystem: "wallet_syncer",
		Name:      "reorg_total",
		Help:      "Count of chain reorganizations the wallet rewound.",
	}, []string{"network"})

	retryTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blockinsight7000",
		Subsystem: "wallet_syncer",
		Name:      "retry_total",
		Help:      "Count of retried daemon operations.",
	}, []string{"network", "operation"})
)

// Syncer tracks metrics for the wallet synchronization loop.
type Syncer struct {
	network string
}

// NewSyncer constructs a Syncer collector for the given network.
func NewSyncer(network string) *Syncer {
	if network == "" {
		network = "unknown"
	}
	return &Syncer{network: network}
}

// ObserveSync records a sync pass outcome, its duration and the number of blocks it fetched.
func (m Syncer) ObserveSync(err error, blocks uint64, started time.Time) {
	status := statusOf(err)
	syncTotal.WithLabelValues(m.network, status).Inc()
	syncDuration.WithLabelValues(m.network, status).Observe(time.Since(started).Seconds())
	syncBlocks.WithLabelValues(m.network).Observe(float64(blocks))
}

// ObserveBlock records a scanned block. The height gauge only moves on success.
func (m Syncer) ObserveBlock(err error, height uint64, started time.Time) {
	status := statusOf(err)
	blockTotal.WithLabelValues(m.network, status).Inc()
	blockDuration.WithLabelValues(m.network, status).Observe(time.Since(started).Seconds())
	if err == nil {
		walletHeight.WithLabelValues(m.network).Set(float64(height))
	}
}

// ObserveReorg records a rewind to height.
func (m Syncer) ObserveReorg(height uint64) {
	reorgTotal.WithLabelValues(m.network).Inc()
	walletHeight.WithLabelValues(m.network).Set(float64(height))
}

func (m Syncer) ObserveRetry(operation string, _ error) {
	retryTotal.WithLabelValues(m.network, operation).Inc()
}

func statusOf(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}
