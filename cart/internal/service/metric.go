package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	operationAdd    = "add"
	operationRemove = "remove"
	operationUpdate = "update"
)

var cartOperationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "storefront",
		Subsystem: "cart",
		Name:      "operations_total",
		Help:      "Cart operations by operation and outcome.",
	},
	[]string{"operation", "outcome"},
)
