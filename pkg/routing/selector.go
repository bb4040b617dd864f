// Package routing implements the path selector: quantum-only path
// preference, hybrid fallback, bounded retry around failed links, and
// congestion-aware rerouting.
package routing

import (
	"github.com/qnetlab/qnetsim/pkg/congestion"
	"github.com/qnetlab/qnetsim/pkg/linksim"
	"github.com/qnetlab/qnetsim/pkg/logging"
	"github.com/qnetlab/qnetsim/pkg/metrics"
	"github.com/qnetlab/qnetsim/pkg/topology"
)

// DefaultMaxAttempts bounds how many evaluated walks one routing
// request may consume.
const DefaultMaxAttempts = 5

// Selector computes and evaluates delivery paths over a topology.
// One Route call owns its view of the topology exclusively; calls must
// be serialized by the caller (the simulation runner processes one
// request to completion before the next).
type Selector struct {
	Store    *topology.Store
	Tracker  *congestion.Tracker
	Enhancer *linksim.Enhancer

	// MaxAttempts bounds evaluated walks per request; zero means
	// DefaultMaxAttempts.
	MaxAttempts int

	// AvoidBottlenecks enables congestion-aware rerouting of flagged
	// edges on hybrid paths.
	AvoidBottlenecks bool

	Logger  logging.Logger
	Metrics *metrics.Registry
}

// NewSelector wires a selector with defaults and a no-op logger.
func NewSelector(store *topology.Store, tracker *congestion.Tracker, enhancer *linksim.Enhancer) *Selector {
	return &Selector{
		Store:       store,
		Tracker:     tracker,
		Enhancer:    enhancer,
		MaxAttempts: DefaultMaxAttempts,
		Logger:      logging.NewNopLogger(),
	}
}

// Route runs the full state machine for one delivery request:
//
//	SelectQuantumOnly -> SelectHybrid -> Evaluate ->
//	    (Success | RetryExcludeEdge -> SelectHybrid | Exhausted)
//
// The quantum-only attempt happens only between two quantum endpoints
// and falls through for free when no all-quantum path exists; once it
// is actually evaluated it consumes the shared retry budget like any
// hybrid walk. Stochastic link failure is ordinary control flow here,
// never an error: the only errors are unknown endpoints.
func (s *Selector) Route(source, target string, rng linksim.Rand) (*Result, error) {
	srcNode, err := s.Store.Node(source)
	if err != nil {
		return nil, err
	}
	tgtNode, err := s.Store.Node(target)
	if err != nil {
		return nil, err
	}

	res := &Result{State: StateExhausted}
	if source == target {
		res.Path = []string{source}
		res.State = StateSuccess
		return res, nil
	}

	maxAttempts := s.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	view := s.Store.Snapshot()

	if srcNode.Class == topology.QuantumNode && tgtNode.Class == topology.QuantumNode {
		if qPath := shortestPath(view, source, target, true); qPath != nil {
			s.Logger.Info("trying quantum-only path",
				logging.Source(source), logging.Target(target), logging.PathIDs(qPath))
			report := s.walk(view, qPath, rng)
			report.QuantumOnly = true
			res.Attempts = append(res.Attempts, report)
			if !report.Failed {
				s.finish(res, StateSuccess, qPath)
				return res, nil
			}
			view.ExcludeLink(report.FailedA, report.FailedB)
		}
	}

	for len(res.Attempts) < maxAttempts {
		path := shortestPath(view, source, target, false)
		if path == nil {
			s.Logger.Info("no remaining path",
				logging.Source(source), logging.Target(target))
			break
		}
		if s.AvoidBottlenecks {
			path = s.rerouteBottlenecks(view, path)
		}
		s.Logger.Info("attempting hybrid path",
			logging.Source(source), logging.Target(target),
			logging.PathIDs(path), logging.Attempt(len(res.Attempts)+1))
		report := s.walk(view, path, rng)
		res.Attempts = append(res.Attempts, report)
		if !report.Failed {
			s.finish(res, StateSuccess, path)
			return res, nil
		}
		s.Logger.Info("retrying without failed link",
			logging.Edge(report.FailedA, report.FailedB))
		view.ExcludeLink(report.FailedA, report.FailedB)
	}

	s.finish(res, StateExhausted, nil)
	return res, nil
}

func (s *Selector) finish(res *Result, state State, path []string) {
	res.State = state
	res.Path = path
	if s.Metrics != nil {
		s.Metrics.RecordRoute(state.String(), res.Walks())
	}
	if state == StateSuccess {
		s.Logger.Info("message delivered", logging.PathIDs(path))
	} else {
		s.Logger.Warn("message delivery failed", logging.Attempt(res.Walks()))
	}
}

// walk evaluates the path edge by edge. Quantum links go through the
// enhancement overlay, classical links through the plain classical
// trial. Every evaluated traversal is recorded with the congestion
// tracker; the first failing edge aborts the walk.
func (s *Selector) walk(view *topology.View, path []string, rng linksim.Rand) AttemptReport {
	report := AttemptReport{Path: path}
	if s.Metrics != nil {
		s.Metrics.RecordWalk()
	}
	for i := 0; i+1 < len(path); i++ {
		a, b := path[i], path[i+1]
		link, err := view.GetLink(a, b)
		if err != nil {
			// Path was computed over this view, so the link must
			// exist; treat a miss as a failed edge.
			report.Failed = true
			report.FailedA, report.FailedB = a, b
			return report
		}

		var out linksim.Outcome
		if link.Class == topology.QuantumLink {
			out = s.Enhancer.Evaluate(link, rng)
		} else {
			out = linksim.EvaluateClassical(link, rng)
		}
		s.Tracker.RecordTraversal(link)
		if s.Metrics != nil {
			s.Metrics.RecordTrial(link.Class.String(), out)
		}
		report.Outcomes = append(report.Outcomes, EdgeOutcome{A: link.A, B: link.B, Outcome: out})

		if !out.Success {
			s.Logger.Info("link failed",
				logging.Edge(a, b),
				logging.LinkClass(link.Class.String()),
				logging.Cause(out.Cause.String()))
			report.Failed = true
			report.FailedA, report.FailedB = a, b
			return report
		}
	}
	return report
}

// rerouteBottlenecks replaces each flagged edge on the path with a
// minimum-congestion-weight detour between its endpoints, keeping the
// direct edge when the search finds nothing better than the edge
// itself (a replacement of length 2 is the same edge again).
func (s *Selector) rerouteBottlenecks(view *topology.View, path []string) []string {
	out := []string{path[0]}
	for i := 0; i+1 < len(path); i++ {
		a, b := path[i], path[i+1]
		link, err := view.GetLink(a, b)
		if err == nil && s.Tracker.IsBottleneck(link) {
			if alt := minWeightPath(view, a, b, s.Tracker.Weight); len(alt) > 2 {
				s.Logger.Info("rerouting around bottleneck",
					logging.Edge(a, b), logging.PathIDs(alt))
				out = append(out, alt[1:]...)
				continue
			}
		}
		out = append(out, b)
	}
	return out
}
