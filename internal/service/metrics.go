package service

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/fleshka4/tradingpair/internal/apperrors"
)

// Metrics holds the Prometheus metrics of the pool service.
type Metrics struct {
	opDuration *prometheus.HistogramVec
	opsTotal   *prometheus.CounterVec
	rollbacks  prometheus.Counter
	persistErr prometheus.Counter
	tradeCount prometheus.Gauge
}

// NewMetrics creates and registers the service metrics.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		opDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "pool_operation_duration_seconds",
			Help:    "Time taken by a pool operation, including persistence.",
			Buckets: prometheus.DefBuckets,
		}, []string{"operation"}),
		opsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "pool_operations_total",
			Help: "Pool operations, labeled by operation and error kind.",
		}, []string{"operation", "result"}),
		rollbacks: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pool_rollbacks_total",
			Help: "Failed operations whose state was restored from the pre-call snapshot.",
		}),
		persistErr: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pool_persist_errors_total",
			Help: "Snapshots that could not be saved after a successful operation.",
		}),
		tradeCount: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "pool_trade_count",
			Help: "Number of swaps executed by the pool.",
		}),
	}
	reg.MustRegister(m.opDuration, m.opsTotal, m.rollbacks, m.persistErr, m.tradeCount)
	return m
}

func (m *Metrics) observe(op string, elapsed time.Duration, err error) {
	if m == nil {
		return
	}
	m.opDuration.WithLabelValues(op).Observe(elapsed.Seconds())
	m.opsTotal.WithLabelValues(op, apperrors.KindOf(err)).Inc()
}

func (m *Metrics) rolledBack() {
	if m == nil {
		return
	}
	m.rollbacks.Inc()
}

func (m *Metrics) persistFailed() {
	if m == nil {
		return
	}
	m.persistErr.Inc()
}

func (m *Metrics) setTradeCount(n int64) {
	if m == nil {
		return
	}
	m.tradeCount.Set(float64(n))
}
