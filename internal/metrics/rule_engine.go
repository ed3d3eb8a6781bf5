package metrics

import (
	"time"

	"github.com/goodnatureofminers/blockinsight7000-watcher/internal/watch/model"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ruleTerminalTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "rule_engine",
		Name:      "terminal_total",
		Help:      "Count of rules reaching a terminal status.",
	}, []string{"kind", "status"})

	ruleActiveTimers = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "rule_engine",
		Name:      "active_timers",
		Help:      "Number of pending rules with a running timeout.",
	}, []string{"kind"})

	callbackDeliveriesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "rule_engine",
		Name:      "callback_deliveries_total",
		Help:      "Count of callback delivery attempts.",
	}, []string{"status"})

	callbackDeliveryDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "rule_engine",
		Name:      "callback_delivery_duration_seconds",
		Help:      "Duration of callback deliveries including retries.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"status"})
)

// RuleEngine tracks rule outcomes and callback deliveries.
type RuleEngine struct{}

func NewRuleEngine() *RuleEngine {
	return &RuleEngine{}
}

func (m RuleEngine) ObserveTerminal(kind model.RuleKind, status model.RuleStatus) {
	ruleTerminalTotal.WithLabelValues(string(kind), string(status)).Inc()
}

func (m RuleEngine) SetActiveTimers(kind model.RuleKind, count int) {
	ruleActiveTimers.WithLabelValues(string(kind)).Set(float64(count))
}

func (m RuleEngine) ObserveDelivery(err error, started time.Time) {
	s := status(err)
	callbackDeliveriesTotal.WithLabelValues(s).Inc()
	callbackDeliveryDuration.WithLabelValues(s).Observe(time.Since(started).Seconds())
}
