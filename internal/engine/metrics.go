package engine

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	mutationsCommitted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "feedkit_client",
			Name:      "mutations_committed_total",
			Help:      "Mutations confirmed by the backend.",
		},
		[]string{"family"},
	)

	mutationsRolledBack = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "feedkit_client",
			Name:      "mutations_rolledback_total",
			Help:      "Mutations that failed and had their local effect reverted.",
		},
		[]string{"family"},
	)
)
