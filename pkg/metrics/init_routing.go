package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initRoutingMetrics() {
	r.RoutesTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "qnetsim_routes_total",
			Help: "Total number of routing requests by outcome",
		},
		[]string{"outcome"},
	)

	r.RouteWalksTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "qnetsim_route_walks_total",
			Help: "Total number of evaluated path walks",
		},
	)

	r.RouteAttemptsUsed = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "qnetsim_route_attempts_used",
			Help:    "Evaluated walks consumed per routing request",
			Buckets: []float64{0, 1, 2, 3, 4, 5, 6, 8, 10},
		},
	)

	r.DeliveriesTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "qnetsim_deliveries_total",
			Help: "Total number of quantum state delivery requests by outcome",
		},
		[]string{"outcome"},
	)

	r.RepeatersStructural = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "qnetsim_structural_repeaters",
			Help: "Virtual repeater nodes inserted by structural enhancement",
		},
	)
}
