package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors of the contract client.
type Metrics struct {
	trackedTransactions      prometheus.Counter
	pendingTransactions      prometheus.Gauge
	confirmationsObserved    prometheus.Counter
	confirmationWaitFailures prometheus.Counter
	trackerNotifications     prometheus.Counter
	duplicateObservations    prometheus.Counter

	stakeAggregations *prometheus.CounterVec
}

// New creates a new Metrics instance and registers all collectors.
// If registry is nil, prometheus.DefaultRegisterer is used.
func New(registry prometheus.Registerer) *Metrics {
	if registry == nil {
		registry = prometheus.DefaultRegisterer
	}
	factory := promauto.With(registry)

	return &Metrics{
		trackedTransactions: factory.NewCounter(prometheus.CounterOpts{
			Name: "vega_tracked_transactions_total",
			Help: "Total number of distinct transactions tracked",
		}),
		pendingTransactions: factory.NewGauge(prometheus.GaugeOpts{
			Name: "vega_pending_transactions",
			Help: "Number of tracked transactions below their required confirmation depth",
		}),
		confirmationsObserved: factory.NewCounter(prometheus.CounterOpts{
			Name: "vega_confirmations_observed_total",
			Help: "Total number of confirmation depths observed",
		}),
		confirmationWaitFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "vega_confirmation_wait_failures_total",
			Help: "Total number of failed confirmation waits",
		}),
		trackerNotifications: factory.NewCounter(prometheus.CounterOpts{
			Name: "vega_tracker_notifications_total",
			Help: "Total number of tracker subscriber notifications",
		}),
		duplicateObservations: factory.NewCounter(prometheus.CounterOpts{
			Name: "vega_duplicate_observations_total",
			Help: "Total number of contract events ignored because their transaction was already tracked",
		}),
		stakeAggregations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "vega_stake_aggregations_total",
			Help: "Total number of stake event aggregations by contract and status",
		}, []string{"contract", "status"}),
	}
}

// Nop returns a Metrics instance registered on a private registry.
func Nop() *Metrics {
	return New(prometheus.NewRegistry())
}

func (m *Metrics) TransactionTracked() {
	m.trackedTransactions.Inc()
	m.pendingTransactions.Inc()
}

func (m *Metrics) TransactionFinalized() {
	m.pendingTransactions.Dec()
}

func (m *Metrics) ConfirmationObserved() {
	m.confirmationsObserved.Inc()
}

func (m *Metrics) ConfirmationWaitFailed() {
	m.confirmationWaitFailures.Inc()
}

func (m *Metrics) Notified() {
	m.trackerNotifications.Inc()
}

func (m *Metrics) DuplicateObservation() {
	m.duplicateObservations.Inc()
}

func (m *Metrics) StakeAggregation(contract string, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	m.stakeAggregations.WithLabelValues(contract, status).Inc()
}
