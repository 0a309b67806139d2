package models

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	syncRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sitewise_aggregate_sync_runs_total",
		Help: "Derived-aggregate recomputations, by ledger.",
	}, []string{"ledger"})

	fulfillmentEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sitewise_fulfillment_events_total",
		Help: "Quantity-producing events applied to requirements, by producer.",
	}, []string{"producer"})

	unmatchedPurchases = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sitewise_unmatched_purchases_total",
		Help: "Tagged purchase lines with no matching requirement in their site.",
	})
)
