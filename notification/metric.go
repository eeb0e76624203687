package notification

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var noticesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "storefront",
		Subsystem: "cart",
		Name:      "notices_total",
		Help:      "Notices raised by cart operations, by level.",
	},
	[]string{"level"},
)

// Metric counts notices per level on the default prometheus registry.
type Metric struct{}

func (Metric) Notify(_ context.Context, n Notice) {
	noticesTotal.WithLabelValues(string(n.Level)).Inc()
}
