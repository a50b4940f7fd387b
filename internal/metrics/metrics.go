package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	LoansCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "circulation_loans_created_total",
		Help: "Total number of loans successfully created.",
	})

	LoansReturnedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "circulation_loans_returned_total",
		Help: "Total number of loans returned.",
	})

	HoldsQueuedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "circulation_holds_queued_total",
		Help: "Total number of reservations placed into item queues.",
	})

	HoldsPreparedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "circulation_holds_prepared_total",
		Help: "Total number of reservations matched to a copy and readied for pickup.",
	})

	HoldsExpiredTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "circulation_holds_expired_total",
		Help: "Total number of reservations expired by the sweeper.",
	})

	OperationErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "circulation_operation_errors_total",
		Help: "Total number of errors encountered during specific operations.",
	},
		[]string{"operation"},
	)

	ActiveLoanCacheItems = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "circulation_active_loan_cache_items",
		Help: "Current number of loans in the active-loan cache.",
	})
)
