// Package congestion tracks per-link traffic and flags overloaded
// links as bottlenecks for congestion-aware routing.
package congestion

import (
	"github.com/qnetlab/qnetsim/pkg/metrics"
	"github.com/qnetlab/qnetsim/pkg/topology"
)

// Defaults for the tracker.
const (
	DefaultBottleneckThreshold = 100
	DefaultCongestedWeight     = 1000.0
)

// Tracker maintains the traffic counters on the shared topology store.
// Delivery requests are processed one at a time, so traversal recording
// needs no locking; TrafficCount only ever grows within a run.
type Tracker struct {
	Threshold       int
	CongestedWeight float64

	// Metrics is optional; when set, traversals and bottleneck counts
	// are published to it.
	Metrics *metrics.Registry
}

// NewTracker returns a tracker with default threshold and weight.
func NewTracker() *Tracker {
	return &Tracker{
		Threshold:       DefaultBottleneckThreshold,
		CongestedWeight: DefaultCongestedWeight,
	}
}

// RecordTraversal increments the link's traffic counter for one
// evaluated traversal.
func (t *Tracker) RecordTraversal(link *topology.Link) {
	link.TrafficCount++
	if t.Metrics != nil {
		t.Metrics.RecordTraversal(link.Class.String())
	}
}

// IsBottleneck reports whether the link's accumulated traffic is
// strictly above the threshold.
func (t *Tracker) IsBottleneck(link *topology.Link) bool {
	return link.TrafficCount > t.Threshold
}

// Weight is the cost function for congestion-aware path search:
// bottleneck links cost CongestedWeight, everything else costs 1.
func (t *Tracker) Weight(link *topology.Link) float64 {
	if t.IsBottleneck(link) {
		return t.CongestedWeight
	}
	return 1
}

// Bottlenecks returns every link currently over the threshold, and
// publishes the count when metrics are wired.
func (t *Tracker) Bottlenecks(s *topology.Store) []*topology.Link {
	var out []*topology.Link
	for _, l := range s.Links() {
		if t.IsBottleneck(l) {
			out = append(out, l)
		}
	}
	if t.Metrics != nil {
		t.Metrics.SetActiveBottlenecks(len(out))
	}
	return out
}
