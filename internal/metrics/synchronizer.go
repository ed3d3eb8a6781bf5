package metrics

import (
	"time"

	"github.com/goodnatureofminers/blockinsight7000-watcher/internal/watch/model"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	synchronizerBlocksAddedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "synchronizer",
		Name:      "blocks_added_total",
		Help:      "Count of blocks appended to the active chain.",
	}, []string{"coin", "network"})

	synchronizerBlocksRemovedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "synchronizer",
		Name:      "blocks_removed_total",
		Help:      "Count of blocks retracted from the active chain by reorganizations.",
	}, []string{"coin", "network"})

	synchronizerTipHeight = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "synchronizer",
		Name:      "tip_height",
		Help:      "Height of the local chain tip.",
	}, []string{"coin", "network"})

	synchronizerProcessTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "synchronizer",
		Name:      "process_total",
		Help:      "Count of blocks handed to the synchronizer.",
	}, []string{"coin", "network", "status"})

	synchronizerProcessDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "synchronizer",
		Name:      "process_duration_seconds",
		Help:      "Duration of processing a fetched block including listener notifications.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"coin", "network", "status"})
)

// Synchronizer tracks the progress of the local chain.
type Synchronizer struct {
	coin    string
	network string
}

func NewSynchronizer(coin model.Coin, network model.Network) *Synchronizer {
	return &Synchronizer{coin: orUnknown(string(coin)), network: orUnknown(string(network))}
}

func (m Synchronizer) ObserveBlockAdded(height uint64) {
	synchronizerBlocksAddedTotal.WithLabelValues(m.coin, m.network).Inc()
	synchronizerTipHeight.WithLabelValues(m.coin, m.network).Set(float64(height))
}

func (m Synchronizer) ObserveBlockRemoved(height uint64) {
	synchronizerBlocksRemovedTotal.WithLabelValues(m.coin, m.network).Inc()
	if height > 0 {
		synchronizerTipHeight.WithLabelValues(m.coin, m.network).Set(float64(height - 1))
	}
}

// ObserveProcess records a ProcessBlock outcome and duration.
func (m Synchronizer) ObserveProcess(err error, started time.Time) {
	s := status(err)
	synchronizerProcessTotal.WithLabelValues(m.coin, m.network, s).Inc()
	synchronizerProcessDuration.WithLabelValues(m.coin, m.network, s).Observe(time.Since(started).Seconds())
}
