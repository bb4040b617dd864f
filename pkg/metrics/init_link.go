package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initLinkMetrics() {
	r.LinkTrialsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "qnetsim_link_trials_total",
			Help: "Total number of link transmission trials",
		},
		[]string{"class", "result"},
	)

	r.LinkFailuresTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "qnetsim_link_failures_total",
			Help: "Total number of failed link trials by failure cause",
		},
		[]string{"cause"},
	)

	r.TraversalsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "qnetsim_link_traversals_total",
			Help: "Total number of evaluated path traversals per link class",
		},
		[]string{"class"},
	)

	r.BottlenecksActive = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "qnetsim_bottlenecks_active",
			Help: "Number of links currently over the bottleneck threshold",
		},
	)
}
