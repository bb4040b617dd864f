package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/qnetlab/qnetsim/pkg/linksim"
)

// Registry bundles all simulator metrics behind one prometheus
// registry so two simulators in one process never collide on collector
// registration.
type Registry struct {
	registry *prometheus.Registry

	// Link trial metrics.
	LinkTrialsTotal   *prometheus.CounterVec // class, result
	LinkFailuresTotal *prometheus.CounterVec // cause

	// Congestion metrics.
	TraversalsTotal   *prometheus.CounterVec // class
	BottlenecksActive prometheus.Gauge

	// Routing and delivery metrics.
	RoutesTotal         *prometheus.CounterVec // outcome
	RouteWalksTotal     prometheus.Counter
	RouteAttemptsUsed   prometheus.Histogram
	DeliveriesTotal     *prometheus.CounterVec // outcome
	RepeatersStructural prometheus.Gauge
}

// NewRegistry creates a Registry with all collectors registered.
func NewRegistry() *Registry {
	r := &Registry{registry: prometheus.NewRegistry()}
	r.initLinkMetrics()
	r.initRoutingMetrics()
	return r
}

// Handler returns an HTTP handler exposing this registry in the
// prometheus text format.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// RecordTrial records one evaluated link trial.
func (r *Registry) RecordTrial(class string, out linksim.Outcome) {
	if !out.Applicable {
		return
	}
	result := "success"
	if !out.Success {
		result = "failure"
		r.LinkFailuresTotal.WithLabelValues(out.Cause.String()).Inc()
	}
	r.LinkTrialsTotal.WithLabelValues(class, result).Inc()
}

// RecordTraversal records one evaluated path traversal of a link.
func (r *Registry) RecordTraversal(class string) {
	r.TraversalsTotal.WithLabelValues(class).Inc()
}

// SetActiveBottlenecks publishes the current bottleneck count.
func (r *Registry) SetActiveBottlenecks(n int) {
	r.BottlenecksActive.Set(float64(n))
}

// RecordRoute records a finished routing request with the number of
// evaluated walks it used.
func (r *Registry) RecordRoute(outcome string, walks int) {
	r.RoutesTotal.WithLabelValues(outcome).Inc()
	r.RouteAttemptsUsed.Observe(float64(walks))
}

// RecordWalk records one evaluated path walk.
func (r *Registry) RecordWalk() {
	r.RouteWalksTotal.Inc()
}

// RecordDelivery records a quantum-state delivery request outcome.
func (r *Registry) RecordDelivery(outcome string) {
	r.DeliveriesTotal.WithLabelValues(outcome).Inc()
}

// SetStructuralRepeaters publishes how many virtual repeater nodes a
// structural enhancement pass inserted.
func (r *Registry) SetStructuralRepeaters(n int) {
	r.RepeatersStructural.Set(float64(n))
}
