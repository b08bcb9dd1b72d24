package graph

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	outcomeCompleted           = "completed"
	outcomeCompletedWithErrors = "completed_with_errors"
	outcomeFailed              = "failed"
)

var (
	// dispatchTotal counts terminal notifications per operation and outcome.
	dispatchTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gqlclient_dispatch_total",
			Help: "Total number of mutation dispatches by outcome",
		},
		[]string{"operation", "outcome"},
	)

	dispatchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gqlclient_dispatch_duration_seconds",
			Help:    "Round-trip time of mutation requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	dispatchInflight = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "gqlclient_dispatch_inflight",
			Help: "Mutation requests awaiting a response",
		},
		[]string{"operation"},
	)
)

func init() {
	prometheus.MustRegister(dispatchTotal)
	prometheus.MustRegister(dispatchDuration)
	prometheus.MustRegister(dispatchInflight)
}
